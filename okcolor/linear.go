package okcolor

import (
	"image/color"
	"math"
)

// LinearRGBA is a color in linear-light sRGB primaries with straight alpha.
// Channels are nominally in [0, 1].
type LinearRGBA struct {
	R float64
	G float64
	B float64
	A float64
}

var LinearRGBAModel = color.ModelFunc(linearRGBAConvert)

func linearRGBAConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LinearRGBA:
		return c
	case Lab:
		return lc.LinearRGBA()
	}

	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return LinearRGBA{
		R: toLinear(float64(n.R) / 65535),
		G: toLinear(float64(n.G) / 65535),
		B: toLinear(float64(n.B) / 65535),
		A: float64(n.A) / 65535,
	}
}

func (lc LinearRGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: quantize(fromLinear(clamp(lc.R, 0, 1))),
		G: quantize(fromLinear(clamp(lc.G, 0, 1))),
		B: quantize(fromLinear(clamp(lc.B, 0, 1))),
		A: quantize(clamp(lc.A, 0, 1)),
	}
}

func (lc LinearRGBA) RGBA() (uint32, uint32, uint32, uint32) {
	return lc.NRGBA().RGBA()
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	}
	return x * 12.92
}

func quantize(x float64) uint8 {
	return uint8(math.Round(x * 255))
}

func clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}
