package filters

import (
	"math"
	"testing"

	"github.com/anas-shakeel/bmp-complement/internal/bmp"
)

func TestComplement(t *testing.T) {
	tests := []struct {
		in   bmp.Pixel
		want byte
	}{
		{bmp.Pixel{B: 0, G: 0, R: 0}, 255},
		{bmp.Pixel{B: 255, G: 255, R: 255}, 0},
		{bmp.Pixel{B: 100, G: 150, R: 200}, 105},
		{bmp.Pixel{B: 1, G: 1, R: 2}, 254}, // 1.33 rounds down
		{bmp.Pixel{B: 1, G: 2, R: 2}, 253}, // 1.67 rounds up
		{bmp.Pixel{B: 255, G: 0, R: 0}, 170},
		{bmp.Pixel{B: 0, G: 0, R: 1}, 255},
	}

	for _, tt := range tests {
		got := Complement(tt.in)
		if got != (bmp.Pixel{B: tt.want, G: tt.want, R: tt.want}) {
			t.Errorf("Complement(%+v) = %+v, want all channels %d", tt.in, got, tt.want)
		}
	}
}

func TestComplementMatchesFloatAverage(t *testing.T) {
	for b := 0; b < 256; b += 15 {
		for g := 0; g < 256; g += 17 {
			for r := 0; r < 256; r += 5 {
				p := bmp.Pixel{B: byte(b), G: byte(g), R: byte(r)}
				got := Complement(p)
				if got.B != got.G || got.G != got.R {
					t.Fatalf("Complement(%+v) = %+v is not gray", p, got)
				}
				want := 255 - byte(math.Round(float64(b+g+r)/3.0))
				if got.B != want {
					t.Fatalf("Complement(%+v) = %d, want %d", p, got.B, want)
				}
			}
		}
	}
}

func TestComplementIsLossy(t *testing.T) {
	// Colored pixels lose their chroma after one pass
	p := bmp.Pixel{B: 1, G: 2, R: 2}
	if twice := Complement(Complement(p)); twice == p {
		t.Errorf("Complement(Complement(%+v)) = original, want a lossy round trip", p)
	}

	// Gray pixels involve no rounding and come back unchanged
	for _, v := range []byte{0, 10, 128, 255} {
		gray := bmp.Pixel{B: v, G: v, R: v}
		if twice := Complement(Complement(gray)); twice != gray {
			t.Errorf("Complement(Complement(%+v)) = %+v", gray, twice)
		}
	}
}

func TestComplementBitmap(t *testing.T) {
	b, _ := bmp.New(2, 1)
	b.Pixels[0][0] = bmp.Pixel{B: 100, G: 150, R: 200}
	b.Pixels[0][1] = bmp.Pixel{B: 255, G: 255, R: 255}

	ComplementBitmap(b)

	if b.Pixels[0][0] != (bmp.Pixel{B: 105, G: 105, R: 105}) {
		t.Errorf("pixel 0 = %+v", b.Pixels[0][0])
	}
	if b.Pixels[0][1] != (bmp.Pixel{}) {
		t.Errorf("pixel 1 = %+v", b.Pixels[0][1])
	}
}
