package utils

import "testing"

func TestAverage(t *testing.T) {
	tests := []struct {
		in   []int
		want int
	}{
		{nil, 0},
		{[]int{7}, 7},
		{[]int{1, 2}, 2}, // 1.5 rounds away from zero
		{[]int{0, 0, 1}, 0},
		{[]int{1, 2, 2}, 2},
		{[]int{100, 150, 200}, 150},
		{[]int{255, 255, 254}, 255},
	}

	for _, tt := range tests {
		if got := Average(tt.in...); got != tt.want {
			t.Errorf("Average(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAbs(t *testing.T) {
	for in, want := range map[int]int{-3: 3, 0: 0, 4: 4} {
		if got := Abs(in); got != want {
			t.Errorf("Abs(%d) = %d, want %d", in, got, want)
		}
	}
}
