// bmp package implements the fixed-layout parts of 24-bit uncompressed bitmaps
package bmp

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

type Pixel struct {
	B, G, R byte
}

// Returns the Pixels in bytes as BGR (Blue, Green, Red)
func (p Pixel) BytesBGR() []byte {
	return []byte{p.B, p.G, p.R}
}

// PixelFromBGR builds a Pixel from a 3-byte file triplet.
func PixelFromBGR(b []byte) Pixel {
	return Pixel{B: b[0], G: b[1], R: b[2]}
}

// Total bytes in a row of a 24-bit bitmap (incl. padding)
func Stride(width int) int {
	if width <= 0 {
		return 0
	}
	return ((width*BytesPerPixel + 3) / 4) * 4
}

// Padding bytes at the end of every row, 0..3
func RowPadding(width int) int {
	if width <= 0 {
		return 0
	}
	return Stride(width) - width*BytesPerPixel
}

// Bitmap is an in-memory 24-bit bitmap. Pixels[0] is the top row.
type Bitmap struct {
	BFHeader *FileHeader
	BIHeader *InfoHeader
	Stride   int
	Padding  int
	Pixels   [][]Pixel
}

// Creates and returns a bitmap image (24 bit uncompressed)
func New(width, height int) (*Bitmap, error) {
	if width <= 0 {
		return nil, errors.New("width must be greater than 0")
	} else if height <= 0 {
		return nil, errors.New("height must be greater than 0")
	}

	stride := Stride(width)
	biSizeImage := uint32(stride * height)
	fileSize := HeadersSize + biSizeImage // Size of the whole bitmap file

	bfh := FileHeader{Type: [2]byte{'B', 'M'}, OffBits: HeadersSize, Size: fileSize}
	bih := InfoHeader{Size: InfoHeaderSize, Width: int32(width), Height: int32(height), Planes: 1, BitCount: 24, SizeImage: biSizeImage}

	pixels := make([][]Pixel, height)
	for i := 0; i < height; i++ {
		pixels[i] = make([]Pixel, width)
	}

	return &Bitmap{
		BFHeader: &bfh,
		BIHeader: &bih,
		Stride:   stride,
		Padding:  stride - width*BytesPerPixel,
		Pixels:   pixels,
	}, nil
}

// Fill sets every pixel of the bitmap to p
func (b *Bitmap) Fill(p Pixel) {
	for row := range b.Pixels {
		for col := range b.Pixels[row] {
			b.Pixels[row][col] = p
		}
	}
}

// WriteTo encodes the bitmap, bottom row first.
func (b *Bitmap) WriteTo(dst io.Writer) (int64, error) {
	height := len(b.Pixels)
	paddingBytes := make([]byte, b.Padding)

	// Create a buffer (to reduce syscalls)
	w := bufio.NewWriter(dst)
	cw := &countingWriter{w: w}

	if err := WriteHeaders(cw, b.BFHeader, b.BIHeader); err != nil {
		return cw.n, err
	}

	// BottomUp: last row first
	for row := 0; row < height; row++ {
		for _, p := range b.Pixels[height-row-1] {
			if _, err := cw.Write(p.BytesBGR()); err != nil {
				return cw.n, err
			}
		}
		if _, err := cw.Write(paddingBytes); err != nil {
			return cw.n, err
		}
	}

	return cw.n, w.Flush()
}

// Bytes returns the encoded bitmap
func (b *Bitmap) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = b.WriteTo(&buf) // bytes.Buffer never fails
	return buf.Bytes()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
