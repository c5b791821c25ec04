package raster

import (
	"image"
	"image/color"
	"math"

	"appicons/okcolor"

	"golang.org/x/image/draw"
)

const (
	iconScale     = 0.4
	adaptiveScale = 0.25 // keeps the mark inside the launcher safe zone
)

// Theme holds the three colors an icon is made of.
type Theme struct {
	Background color.NRGBA
	Fill       color.NRGBA
	Edge       color.NRGBA
}

var DefaultTheme = Theme{
	Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	Fill:       color.NRGBA{R: 17, G: 17, B: 17, A: 255},
	Edge:       color.NRGBA{R: 100, G: 100, B: 100, A: 255},
}

type Options struct {
	Adaptive bool
	Theme    Theme
	// SmoothEdge replaces the flat edge color with an OKLab blend of fill
	// and background weighted by how much of the pixel the circle covers.
	SmoothEdge bool
}

// Radius returns the circle radius in whole pixels for an icon of the given size.
func Radius(size int, adaptive bool) int {
	scale := iconScale
	if adaptive {
		scale = adaptiveScale
	}
	return int(float64(size) * scale)
}

// DrawIcon renders a size x size icon with the default theme.
func DrawIcon(size int, adaptive bool) *Buffer {
	return DrawIconWith(size, Options{Adaptive: adaptive, Theme: DefaultTheme})
}

func DrawIconWith(size int, opts Options) *Buffer {
	buf := NewBuffer(size, size)
	draw.Draw(buf, buf.Bounds(), image.NewUniform(opts.Theme.Background), image.Point{}, draw.Src)

	cx, cy := size/2, size/2
	radius := float64(Radius(size, opts.Adaptive))

	fill := PixelOf(opts.Theme.Fill)
	edge := PixelOf(opts.Theme.Edge)

	for y := range size {
		dy := float64(y - cy)
		for x := range size {
			dx := float64(x - cx)
			dist := math.Sqrt(dx*dx + dy*dy)

			switch {
			case dist < radius-1:
				buf.Pix[buf.Offset(x, y)] = fill
			case dist < radius:
				if opts.SmoothEdge {
					buf.Pix[buf.Offset(x, y)] = PixelOf(okcolor.Mix(opts.Theme.Background, opts.Theme.Fill, radius-dist))
				} else {
					buf.Pix[buf.Offset(x, y)] = edge
				}
			}
		}
	}

	return buf
}
