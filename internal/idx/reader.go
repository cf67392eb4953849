package idx

import (
	"encoding/binary"
	"fmt"
	"io"
)

// IDX magic numbers for unsigned-byte tensors.
const (
	ImageMagic = 0x00000803 // 2051: rank-3 (count, rows, cols)
	LabelMagic = 0x00000801 // 2049: rank-1 (count)
)

// ImageHeader is the 16-byte header of an IDX image file.
type ImageHeader struct {
	Count int
	Rows  int
	Cols  int
}

// Size returns the number of pixels per image.
func (h ImageHeader) Size() int { return h.Rows * h.Cols }

// LabelHeader is the 8-byte header of an IDX label file.
type LabelHeader struct {
	Count int
}

// readChunk caps the up-front allocation for a header-declared count.
const readChunk = 4096

// readUint32s reads n big-endian uint32 header fields.
func readUint32s(r io.Reader, n int) ([]uint32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read header: %w", shortRead(err))
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(buf[4*i:])
	}
	return out, nil
}

// readMagic reads the leading magic number and checks it against want.
func readMagic(r io.Reader, want uint32, kind string) error {
	magic, err := readUint32s(r, 1)
	if err != nil {
		return err
	}
	if magic[0] != want {
		return fmt.Errorf("%s file: got 0x%08x, want 0x%08x: %w", kind, magic[0], want, ErrInvalidMagic)
	}
	return nil
}

func shortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrShortRead
	}
	return err
}

// ReadImageHeader reads and validates an image file header.
//
// IDX layout for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes, row-major
func ReadImageHeader(r io.Reader) (ImageHeader, error) {
	if err := readMagic(r, ImageMagic, "image"); err != nil {
		return ImageHeader{}, err
	}
	fields, err := readUint32s(r, 3)
	if err != nil {
		return ImageHeader{}, err
	}
	return ImageHeader{Count: int(fields[0]), Rows: int(fields[1]), Cols: int(fields[2])}, nil
}

// ReadLabelHeader reads and validates a label file header.
//
// IDX layout for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
func ReadLabelHeader(r io.Reader) (LabelHeader, error) {
	if err := readMagic(r, LabelMagic, "label"); err != nil {
		return LabelHeader{}, err
	}
	fields, err := readUint32s(r, 1)
	if err != nil {
		return LabelHeader{}, err
	}
	return LabelHeader{Count: int(fields[0])}, nil
}

// ReadImageData reads n images of size bytes each, positioned after the header.
//
// Storage grows as images arrive, so a corrupt count fails with ErrShortRead
// instead of reserving memory for data that is not there.
func ReadImageData(r io.Reader, n, size int) ([][]byte, error) {
	images := make([][]byte, 0, min(n, readChunk))
	for i := 0; i < n; i++ {
		img := make([]byte, size)
		if _, err := io.ReadFull(r, img); err != nil {
			return nil, fmt.Errorf("read image %d: %w", i, shortRead(err))
		}
		images = append(images, img)
	}
	return images, nil
}

// ReadLabelData reads n label bytes, positioned after the header.
func ReadLabelData(r io.Reader, n int) ([]byte, error) {
	labels := make([]byte, 0, min(n, readChunk))
	buf := make([]byte, readChunk)
	for len(labels) < n {
		chunk := buf[:min(n-len(labels), readChunk)]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, fmt.Errorf("read labels: %w", shortRead(err))
		}
		labels = append(labels, chunk...)
	}
	return labels, nil
}

// clamp bounds a requested count to what is available.
func clamp(limit, available int) int {
	if limit <= 0 || limit > available {
		return available
	}
	return limit
}
