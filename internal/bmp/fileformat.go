// BMP-specific structs and types
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	FileHeaderSize = 14                              // Size of BITMAPFILEHEADER on disk
	InfoHeaderSize = 40                              // Size of BITMAPINFOHEADER on disk
	HeadersSize    = FileHeaderSize + InfoHeaderSize // Offset of the pixel array in a plain 24-bit bitmap
	BytesPerPixel  = 3                               // B, G, R (no reserved byte)
)

var (
	// ErrMalformedInput means the input ended before a complete header or scan line.
	ErrMalformedInput = errors.New("bmp: malformed input")
	// ErrUnsupportedFormat means the headers describe something other than an uncompressed 24-bit bitmap.
	ErrUnsupportedFormat = errors.New("bmp: unsupported format")
)

// The FileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The InfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].
type InfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels (negative: top-down)
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// MarshalBinary packs the header into its 14-byte file layout.
func (h *FileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderSize)
	b[0], b[1] = h.Type[0], h.Type[1]
	binary.LittleEndian.PutUint32(b[2:6], h.Size)
	binary.LittleEndian.PutUint16(b[6:8], h.Reserved1)
	binary.LittleEndian.PutUint16(b[8:10], h.Reserved2)
	binary.LittleEndian.PutUint32(b[10:14], h.OffBits)
	return b, nil
}

func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderSize {
		return fmt.Errorf("%w: file header needs %d bytes, got %d", ErrMalformedInput, FileHeaderSize, len(b))
	}
	h.Type = [2]byte{b[0], b[1]}
	h.Size = binary.LittleEndian.Uint32(b[2:6])
	h.Reserved1 = binary.LittleEndian.Uint16(b[6:8])
	h.Reserved2 = binary.LittleEndian.Uint16(b[8:10])
	h.OffBits = binary.LittleEndian.Uint32(b[10:14])
	return nil
}

// MarshalBinary packs the header into its 40-byte file layout.
func (h *InfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, InfoHeaderSize)
	le := binary.LittleEndian
	le.PutUint32(b[0:4], h.Size)
	le.PutUint32(b[4:8], uint32(h.Width))
	le.PutUint32(b[8:12], uint32(h.Height))
	le.PutUint16(b[12:14], h.Planes)
	le.PutUint16(b[14:16], h.BitCount)
	le.PutUint32(b[16:20], h.Compression)
	le.PutUint32(b[20:24], h.SizeImage)
	le.PutUint32(b[24:28], uint32(h.XPixelsPerM))
	le.PutUint32(b[28:32], uint32(h.YPixelsPerM))
	le.PutUint32(b[32:36], h.ColorsUsed)
	le.PutUint32(b[36:40], h.ColorsImportant)
	return b, nil
}

func (h *InfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < InfoHeaderSize {
		return fmt.Errorf("%w: info header needs %d bytes, got %d", ErrMalformedInput, InfoHeaderSize, len(b))
	}
	le := binary.LittleEndian
	h.Size = le.Uint32(b[0:4])
	h.Width = int32(le.Uint32(b[4:8]))
	h.Height = int32(le.Uint32(b[8:12]))
	h.Planes = le.Uint16(b[12:14])
	h.BitCount = le.Uint16(b[14:16])
	h.Compression = le.Uint32(b[16:20])
	h.SizeImage = le.Uint32(b[20:24])
	h.XPixelsPerM = int32(le.Uint32(b[24:28]))
	h.YPixelsPerM = int32(le.Uint32(b[28:32]))
	h.ColorsUsed = le.Uint32(b[32:36])
	h.ColorsImportant = le.Uint32(b[36:40])
	return nil
}

// ReadHeaders reads the file header and then the info header (54 bytes).
//
// Field values are not interpreted. If r ends early the missing bytes read as
// zero, both headers are still returned, and the error wraps ErrMalformedInput.
func ReadHeaders(r io.Reader) (*FileHeader, *InfoHeader, error) {
	var raw [HeadersSize]byte
	n, err := io.ReadFull(r, raw[:])

	var fh FileHeader
	var ih InfoHeader
	fh.UnmarshalBinary(raw[:FileHeaderSize])
	ih.UnmarshalBinary(raw[FileHeaderSize:])

	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return &fh, &ih, fmt.Errorf("%w: headers truncated at byte %d: %w", ErrMalformedInput, n, err)
	}
	return &fh, &ih, nil
}

// WriteHeaders writes both headers, file header first, exactly as given.
func WriteHeaders(w io.Writer, fh *FileHeader, ih *InfoHeader) error {
	fb, _ := fh.MarshalBinary()
	if _, err := w.Write(fb); err != nil {
		return err
	}
	ib, _ := ih.MarshalBinary()
	_, err := w.Write(ib)
	return err
}

// Validate reports whether the headers describe an uncompressed 24-bit bitmap
func Validate(fh *FileHeader, ih *InfoHeader) error {
	if fh.Type != [2]byte{'B', 'M'} {
		return fmt.Errorf("%w: signature %q is not \"BM\"", ErrUnsupportedFormat, fh.Type[:])
	}
	if ih.BitCount != 24 || ih.Compression != 0 {
		return fmt.Errorf("%w: %d bits per pixel, compression %d (only 24-bit uncompressed is supported)",
			ErrUnsupportedFormat, ih.BitCount, ih.Compression)
	}
	return nil
}

// PixelGap returns the number of bytes between the end of the info header and
// the pixel array (extended DIB headers, gaps).
func PixelGap(fh *FileHeader) int64 {
	if fh.OffBits <= HeadersSize {
		return 0
	}
	return int64(fh.OffBits) - HeadersSize
}
