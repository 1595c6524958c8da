// Filters perform color manipulation and per-pixel operations
package filters

import (
	"github.com/anas-shakeel/bmp-complement/internal/bmp"
	"github.com/anas-shakeel/bmp-complement/internal/utils"
)

// Grayscale returns the rounded average of the three channels.
func Grayscale(p bmp.Pixel) byte {
	return byte(utils.Average(int(p.B), int(p.G), int(p.R)))
}

// Complement converts p to gray and inverts it. All three channels of the
// result hold 255 - Grayscale(p).
func Complement(p bmp.Pixel) bmp.Pixel {
	v := 255 - Grayscale(p)
	return bmp.Pixel{B: v, G: v, R: v}
}

// ComplementBitmap applies Complement to every pixel of b in place.
func ComplementBitmap(b *bmp.Bitmap) {
	// Iterate rows
	for row := range b.Pixels {
		// Iterate pixels in row
		for col := range b.Pixels[row] {
			b.Pixels[row][col] = Complement(b.Pixels[row][col])
		}
	}
}
