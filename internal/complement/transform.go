// Package complement streams a 24-bit bitmap through the grayscale complement
// filter, one scan line at a time.
package complement

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	xbmp "golang.org/x/image/bmp"

	"github.com/anas-shakeel/bmp-complement/internal/bmp"
	"github.com/anas-shakeel/bmp-complement/internal/filters"
	"github.com/anas-shakeel/bmp-complement/internal/utils"
)

// ErrNotAchromatic is returned by Verify when an output pixel has differing channels.
var ErrNotAchromatic = errors.New("complement: output pixel is not achromatic")

type Options struct {
	// LegacyExtraRow processes |height|+1 rows instead of |height|. The extra
	// row lies past the pixel array; whatever is missing there reads as zero.
	LegacyExtraRow bool
	// Permissive zero-fills truncated headers and scan lines instead of
	// failing with bmp.ErrMalformedInput.
	Permissive bool
	// Validate rejects anything but an uncompressed 24-bit "BM" file.
	Validate bool
}

// Stats describes a finished (or aborted) transform.
type Stats struct {
	Width        int
	Height       int // absolute value of the header height
	Rows         int // scan lines written
	Padding      int // padding bytes per scan line
	Pixels       int
	ShortReads   int // headers, gaps or rows that were zero-filled
	BytesWritten int64
}

// Transform reads a bitmap from src and writes its grayscale complement to
// dst. The headers (and any bytes between them and the pixel array) are copied
// unchanged; dst is flushed before Transform returns.
func Transform(dst io.Writer, src io.Reader, opts Options) (stats Stats, err error) {
	r := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	w := &countingWriter{w: bw}
	defer func() { stats.BytesWritten = w.n }()

	fh, ih, err := bmp.ReadHeaders(r)
	if err != nil {
		if !opts.Permissive {
			return stats, err
		}
		stats.ShortReads++
	}
	if opts.Validate {
		if err := bmp.Validate(fh, ih); err != nil {
			return stats, err
		}
	}
	if err := bmp.WriteHeaders(w, fh, ih); err != nil {
		return stats, fmt.Errorf("writing headers: %w", err)
	}

	// Bytes between the info header and OffBits travel with the headers
	if gap := bmp.PixelGap(fh); gap > 0 {
		if _, err := io.CopyN(w, r, gap); err != nil {
			if w.err != nil {
				return stats, fmt.Errorf("writing header gap: %w", err)
			}
			if !opts.Permissive {
				return stats, fmt.Errorf("%w: pixel offset %d past end of input: %w", bmp.ErrMalformedInput, fh.OffBits, normalizeEOF(err))
			}
			stats.ShortReads++
		}
	}

	stats.Width = max(int(ih.Width), 0)
	stats.Height = utils.Abs(int(ih.Height))
	stats.Padding = bmp.RowPadding(stats.Width)

	rows := stats.Height
	if opts.LegacyExtraRow {
		rows++
	}

	var (
		px      [bmp.BytesPerPixel]byte
		padding [3]byte
		zeros   [3]byte
	)
	for i := 0; i < rows; i++ {
		// Only the legacy extra row may run past the end of the input unasked
		zeroFill := opts.Permissive || i >= stats.Height
		short := false

		for j := 0; j < stats.Width; j++ {
			clear(px[:])
			if !short {
				if _, err := io.ReadFull(r, px[:]); err != nil {
					if !zeroFill {
						return stats, fmt.Errorf("%w: scan line %d of %d: %w", bmp.ErrMalformedInput, i, stats.Height, normalizeEOF(err))
					}
					short = true
				}
			}

			p := filters.Complement(bmp.PixelFromBGR(px[:]))
			if _, err := w.Write([]byte{p.B, p.G, p.R}); err != nil {
				return stats, fmt.Errorf("writing scan line %d: %w", i, err)
			}
			stats.Pixels++
		}

		// Input padding is skipped, output padding is always zero
		if stats.Padding > 0 && !short {
			if _, err := io.ReadFull(r, padding[:stats.Padding]); err != nil {
				if !zeroFill {
					return stats, fmt.Errorf("%w: padding of scan line %d: %w", bmp.ErrMalformedInput, i, normalizeEOF(err))
				}
				short = true
			}
		}
		if _, err := w.Write(zeros[:stats.Padding]); err != nil {
			return stats, fmt.Errorf("writing scan line %d: %w", i, err)
		}

		if short {
			stats.ShortReads++
		}
		stats.Rows++
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("flushing output: %w", err)
	}
	return stats, nil
}

// Verify decodes a transformed bitmap and checks that every pixel is gray.
//
// The decoder only accepts pixel arrays right after a 40-byte info header, so
// any gap before OffBits is dropped and the headers are rewritten to that
// layout before decoding.
func Verify(r io.Reader) error {
	fh, ih, err := bmp.ReadHeaders(r)
	if err != nil {
		return fmt.Errorf("decoding output: %w", err)
	}
	if gap := bmp.PixelGap(fh); gap > 0 {
		if _, err := io.CopyN(io.Discard, r, gap); err != nil {
			return fmt.Errorf("decoding output: %w: %w", bmp.ErrMalformedInput, normalizeEOF(err))
		}
	}
	plain := *fh
	plain.OffBits = bmp.HeadersSize
	info := *ih
	info.Size = bmp.InfoHeaderSize

	var headers bytes.Buffer
	if err := bmp.WriteHeaders(&headers, &plain, &info); err != nil {
		return err
	}

	img, err := xbmp.Decode(io.MultiReader(&headers, r))
	if err != nil {
		return fmt.Errorf("decoding output: %w", err)
	}
	return checkAchromatic(img)
}

func checkAchromatic(img image.Image) error {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != g || g != bl {
				return fmt.Errorf("%w: (%d,%d) = rgb(%d,%d,%d)", ErrNotAchromatic, x, y, r>>8, g>>8, bl>>8)
			}
		}
	}
	return nil
}

func normalizeEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// countingWriter counts bytes and remembers the first write error, so a short
// io.CopyN can be told apart from a failing destination.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}
	return n, err
}
