package raster

import (
	"image"
	"image/color"
)

// Pixel is one straight-alpha RGBA sample, 8 bits per channel.
type Pixel struct {
	R, G, B, A uint8
}

func PixelOf(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}

func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Buffer is a row-major pixel grid. The pixel at (x, y) is Pix[y*Width+x].
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

func (b *Buffer) Offset(x, y int) int {
	return y*b.Width + x
}

func (b *Buffer) PixelAt(x, y int) Pixel {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return Pixel{}
	}
	return b.Pix[b.Offset(x, y)]
}

func (b *Buffer) SetPixel(x, y int, p Pixel) {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return
	}
	b.Pix[b.Offset(x, y)] = p
}

func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) At(x, y int) color.Color {
	return b.PixelAt(x, y).NRGBA()
}

func (b *Buffer) Set(x, y int, c color.Color) {
	b.SetPixel(x, y, PixelOf(c))
}
