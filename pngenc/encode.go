// Package pngenc writes 8-bit RGBA PNG files with unfiltered rows.
package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"appicons/raster"

	"github.com/klauspost/compress/zlib"
)

var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var (
	typeIHDR = [4]byte{'I', 'H', 'D', 'R'}
	typeIDAT = [4]byte{'I', 'D', 'A', 'T'}
	typeIEND = [4]byte{'I', 'E', 'N', 'D'}
)

const (
	bitDepth       = 8
	colorTypeRGBA  = 6
	filterNone     = 0
	bytesPerPixel  = 4
	maxDimension   = math.MaxInt32
	headerDataSize = 13
)

var (
	ErrSizeMismatch       = errors.New("pixel count does not match dimensions")
	ErrInvalidDimensions  = errors.New("invalid image dimensions")
	ErrUnsupportedCompLvl = errors.New("unsupported compression level")
)

type CompressionLevel int

const (
	DefaultCompression CompressionLevel = iota
	NoCompression
	BestSpeed
	BestCompression
)

func (l CompressionLevel) zlibLevel() (int, error) {
	switch l {
	case DefaultCompression:
		return zlib.DefaultCompression, nil
	case NoCompression:
		return zlib.NoCompression, nil
	case BestSpeed:
		return zlib.BestSpeed, nil
	case BestCompression:
		return zlib.BestCompression, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedCompLvl, l)
}

type Encoder struct {
	CompressionLevel CompressionLevel
}

// Encode writes pix as a PNG with the default compression level.
func Encode(w io.Writer, width, height int, pix []raster.Pixel) error {
	var enc Encoder
	return enc.Encode(w, width, height, pix)
}

func EncodeBuffer(w io.Writer, buf *raster.Buffer) error {
	return Encode(w, buf.Width, buf.Height, buf.Pix)
}

// Encode validates its input before anything reaches w, so a rejected
// image produces no output at all.
func (e *Encoder) Encode(w io.Writer, width, height int, pix []raster.Pixel) error {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) != width*height {
		return fmt.Errorf("%w: have %d pixels, %dx%d needs %d", ErrSizeMismatch, len(pix), width, height, width*height)
	}

	level, err := e.CompressionLevel.zlibLevel()
	if err != nil {
		return err
	}

	data, err := compressRows(width, height, pix, level)
	if err != nil {
		return err
	}

	if _, err := w.Write(Signature[:]); err != nil {
		return fmt.Errorf("could not write signature: %w", err)
	}
	if err := writeChunk(w, typeIHDR, header(width, height)); err != nil {
		return err
	}
	if err := writeChunk(w, typeIDAT, data); err != nil {
		return err
	}
	return writeChunk(w, typeIEND, nil)
}

func header(width, height int) []byte {
	b := make([]byte, 0, headerDataSize)
	b = binary.BigEndian.AppendUint32(b, uint32(width))
	b = binary.BigEndian.AppendUint32(b, uint32(height))
	return append(b, bitDepth, colorTypeRGBA, 0, 0, 0)
}

func compressRows(width, height int, pix []raster.Pixel, level int) ([]byte, error) {
	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, level)
	if err != nil {
		return nil, fmt.Errorf("could not create zlib writer: %w", err)
	}

	row := make([]byte, 1+width*bytesPerPixel)
	row[0] = filterNone
	for y := range height {
		line := pix[y*width : (y+1)*width]
		for x, p := range line {
			i := 1 + x*bytesPerPixel
			row[i], row[i+1], row[i+2], row[i+3] = p.R, p.G, p.B, p.A
		}
		if _, err := zw.Write(row); err != nil {
			return nil, fmt.Errorf("could not compress row %d: %w", y, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("could not finish zlib stream: %w", err)
	}
	return out.Bytes(), nil
}

// writeChunk frames data as length, type, data, CRC-32 of type+data.
func writeChunk(w io.Writer, typ [4]byte, data []byte) error {
	var head [8]byte
	binary.BigEndian.PutUint32(head[:4], uint32(len(data)))
	copy(head[4:], typ[:])

	crc := crc32.NewIEEE()
	crc.Write(typ[:])
	crc.Write(data)

	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("could not write %s chunk header: %w", typ[:], err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write %s chunk data: %w", typ[:], err)
	}
	if _, err := w.Write(binary.BigEndian.AppendUint32(nil, crc.Sum32())); err != nil {
		return fmt.Errorf("could not write %s chunk checksum: %w", typ[:], err)
	}
	return nil
}
