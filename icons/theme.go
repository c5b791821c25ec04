package icons

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"appicons/raster"
)

func parseHexColor(s string) (color.NRGBA, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, errors.New("missing leading #")
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("could not read color: %w", err)
	}

	// short forms repeat each nibble: #abc == #aabbcc
	nibble := func(shift int) uint8 {
		n := uint8(v>>shift) & 0x0f
		return n | n<<4
	}
	octet := func(shift int) uint8 {
		return uint8(v >> shift)
	}

	switch len(digits) {
	case 3:
		return color.NRGBA{R: nibble(8), G: nibble(4), B: nibble(0), A: 0xff}, nil
	case 4:
		return color.NRGBA{R: nibble(12), G: nibble(8), B: nibble(4), A: nibble(0)}, nil
	case 6:
		return color.NRGBA{R: octet(16), G: octet(8), B: octet(0), A: 0xff}, nil
	case 8:
		return color.NRGBA{R: octet(24), G: octet(16), B: octet(8), A: octet(0)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA")
}

// themeFromPalette maps the first three palette entries to background,
// fill and edge.
func themeFromPalette(pal color.Palette) (raster.Theme, error) {
	if len(pal) < 3 {
		return raster.Theme{}, fmt.Errorf("need at least 3 colors, have %d", len(pal))
	}

	nrgba := func(c color.Color) color.NRGBA {
		return color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return raster.Theme{
		Background: nrgba(pal[0]),
		Fill:       nrgba(pal[1]),
		Edge:       nrgba(pal[2]),
	}, nil
}
