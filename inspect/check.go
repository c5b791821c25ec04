package inspect

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"appicons/pngenc"
)

type fileInfo struct {
	Width  int
	Height int
	Chunks int
	Bytes  int
}

// checkFile validates the framing, header and scanlines of an RGBA PNG and
// then decodes it with image/png as an independent reader. size of 0
// accepts any dimensions; otherwise both must equal size.
func checkFile(name string, size int) (fileInfo, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return fileInfo{}, fmt.Errorf("could not read %q: %w", name, err)
	}

	chunks, err := pngenc.ReadChunks(bytes.NewReader(data))
	if err != nil {
		return fileInfo{}, err
	}

	hdr, err := pngenc.ParseHeader(chunks[0])
	if err != nil {
		return fileInfo{}, err
	}
	if hdr.BitDepth != 8 || hdr.ColorType != 6 {
		return fileInfo{}, fmt.Errorf("unexpected format: bit depth %d, color type %d", hdr.BitDepth, hdr.ColorType)
	}
	if hdr.CompressionMethod != 0 || hdr.FilterMethod != 0 || hdr.InterlaceMethod != 0 {
		return fileInfo{}, fmt.Errorf("unexpected methods: compression %d, filter %d, interlace %d",
			hdr.CompressionMethod, hdr.FilterMethod, hdr.InterlaceMethod)
	}

	width, height := int(hdr.Width), int(hdr.Height)
	if size > 0 && (width != size || height != size) {
		return fileInfo{}, fmt.Errorf("size is %dx%d, want %dx%d", width, height, size, size)
	}

	raw, err := pngenc.RawData(chunks)
	if err != nil {
		return fileInfo{}, err
	}
	if err := checkScanlines(raw, width, height); err != nil {
		return fileInfo{}, err
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fileInfo{}, fmt.Errorf("could not decode: %w", err)
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		return fileInfo{}, fmt.Errorf("decoded bounds %v disagree with header %dx%d", b, width, height)
	}

	return fileInfo{Width: width, Height: height, Chunks: len(chunks), Bytes: len(data)}, nil
}

func checkScanlines(raw []byte, width, height int) error {
	stride := 1 + 4*width
	if len(raw) != stride*height {
		return fmt.Errorf("image data is %d bytes, want %d", len(raw), stride*height)
	}
	for y := range height {
		if f := raw[y*stride]; f != 0 {
			return fmt.Errorf("row %d uses filter %d", y, f)
		}
	}
	return nil
}
