package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
)

var (
	ErrBadSignature = errors.New("not a PNG signature")
	ErrBadCRC       = errors.New("chunk checksum mismatch")
	ErrTruncated    = errors.New("truncated PNG stream")
	ErrBadHeader    = errors.New("malformed IHDR chunk")
)

// maxChunkData bounds a single chunk so a corrupt length cannot trigger a
// huge allocation.
const maxChunkData = 1 << 30

// Chunk is a decoded chunk. Length is the value stored in the file and CRC
// the stored checksum; ReadChunks has already compared both.
type Chunk struct {
	Type   [4]byte
	Data   []byte
	Length uint32
	CRC    uint32
}

func (c Chunk) Is(typ string) bool {
	return string(c.Type[:]) == typ
}

type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          byte
	ColorType         byte
	CompressionMethod byte
	FilterMethod      byte
	InterlaceMethod   byte
}

// ReadChunks reads a PNG stream up to and including IEND and checks every
// chunk checksum. It does not interpret chunk contents.
func ReadChunks(r io.Reader) ([]Chunk, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrTruncated, err)
	}
	if sig != Signature {
		return nil, fmt.Errorf("%w: % x", ErrBadSignature, sig[:])
	}

	var res []Chunk
	for {
		c, err := readChunk(r)
		if err != nil {
			return res, fmt.Errorf("chunk #%d: %w", len(res), err)
		}
		res = append(res, c)
		if c.Type == typeIEND {
			return res, nil
		}
	}
}

func readChunk(r io.Reader) (Chunk, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Chunk{}, fmt.Errorf("%w: header: %w", ErrTruncated, err)
	}

	c := Chunk{Length: binary.BigEndian.Uint32(head[:4])}
	copy(c.Type[:], head[4:])
	if c.Length > maxChunkData {
		return c, fmt.Errorf("%s chunk too large: %d bytes", c.Type[:], c.Length)
	}

	c.Data = make([]byte, c.Length)
	if _, err := io.ReadFull(r, c.Data); err != nil {
		return c, fmt.Errorf("%w: %s data: %w", ErrTruncated, c.Type[:], err)
	}

	var tail [4]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return c, fmt.Errorf("%w: %s checksum: %w", ErrTruncated, c.Type[:], err)
	}
	c.CRC = binary.BigEndian.Uint32(tail[:])

	crc := crc32.NewIEEE()
	crc.Write(c.Type[:])
	crc.Write(c.Data)
	if sum := crc.Sum32(); sum != c.CRC {
		return c, fmt.Errorf("%w: %s stored %08x, computed %08x", ErrBadCRC, c.Type[:], c.CRC, sum)
	}

	return c, nil
}

func ParseHeader(c Chunk) (Header, error) {
	if c.Type != typeIHDR {
		return Header{}, fmt.Errorf("%w: unexpected type %s", ErrBadHeader, c.Type[:])
	}
	if len(c.Data) != headerDataSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrBadHeader, len(c.Data))
	}

	return Header{
		Width:             binary.BigEndian.Uint32(c.Data[0:4]),
		Height:            binary.BigEndian.Uint32(c.Data[4:8]),
		BitDepth:          c.Data[8],
		ColorType:         c.Data[9],
		CompressionMethod: c.Data[10],
		FilterMethod:      c.Data[11],
		InterlaceMethod:   c.Data[12],
	}, nil
}

// RawData joins the IDAT payloads and inflates them into the filtered
// scanline stream.
func RawData(chunks []Chunk) ([]byte, error) {
	var compressed bytes.Buffer
	for _, c := range chunks {
		if c.Type == typeIDAT {
			compressed.Write(c.Data)
		}
	}
	if compressed.Len() == 0 {
		return nil, errors.New("no IDAT chunk")
	}

	zr, err := zlib.NewReader(&compressed)
	if err != nil {
		return nil, fmt.Errorf("could not open zlib stream: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("could not inflate image data: %w", err)
	}
	return raw, nil
}
