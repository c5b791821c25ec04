package icons

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"appicons/palette"
	"appicons/parallel"
	"appicons/pngenc"
	"appicons/raster"

	"github.com/alecthomas/kong"
)

// Job is one icon file to produce.
type Job struct {
	Name     string
	Adaptive bool
}

var DefaultJobs = []Job{
	{Name: "icon.png", Adaptive: false},
	{Name: "adaptive-icon.png", Adaptive: true},
	{Name: "splash-icon.png", Adaptive: true},
}

const DefaultDest = "assets"

type CLICmd struct {
	Dest        string `help:"Destination folder for generated icons" default:"assets"`
	Size        int    `help:"Icon width and height in pixels" default:"1024"`
	Background  string `help:"Background color (#RGB, #RGBA, #RRGGBB or #RRGGBBAA)" group:"theme"`
	Fill        string `help:"Circle fill color" group:"theme"`
	Edge        string `help:"Circle edge color" group:"theme"`
	Palette     string `help:"RIFF PAL file whose first three entries are the background, fill and edge colors. Color flags override it." group:"theme"`
	SmoothEdge  bool   `help:"Blend the circle edge into the background instead of using the edge color" default:"false" group:"theme"`
	Compression string `help:"zlib compression level" enum:"default,none,speed,best" default:"default"`

	Theme raster.Theme            `kong:"-"`
	Level pngenc.CompressionLevel `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Dest == "" {
		c.Dest = DefaultDest
	}
	if c.Size <= 0 {
		return fmt.Errorf("invalid icon size: %d", c.Size)
	}

	level, err := parseCompression(c.Compression)
	if err != nil {
		return err
	}
	c.Level = level

	c.Theme = raster.DefaultTheme
	if c.Palette != "" {
		pal, err := palette.Load(c.Palette)
		if err != nil {
			return err
		}
		if c.Theme, err = themeFromPalette(pal); err != nil {
			return fmt.Errorf("invalid palette %q: %w", c.Palette, err)
		}
	}

	overrides := []struct {
		flag  string
		value string
		dest  *color.NRGBA
	}{
		{"background", c.Background, &c.Theme.Background},
		{"fill", c.Fill, &c.Theme.Fill},
		{"edge", c.Edge, &c.Theme.Edge},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		col, err := parseHexColor(o.value)
		if err != nil {
			return fmt.Errorf("invalid %s color %q: %w", o.flag, o.value, err)
		}
		*o.dest = col
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	return c.Generate(pool, os.Stdout)
}

// Generate renders every default job into c.Dest and prints one
// confirmation line per written file to out.
func (c *CLICmd) Generate(pool *parallel.Pool, out io.Writer) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	enc := pngenc.Encoder{CompressionLevel: c.Level}
	var outMu sync.Mutex
	var generatedCount, errCount atomic.Uint64
	for _, job := range DefaultJobs {
		pool.Do(func() {
			path := filepath.Join(c.Dest, job.Name)
			logger := slog.Default().With("file", path, "adaptive", job.Adaptive)

			buf := raster.DrawIconWith(c.Size, raster.Options{
				Adaptive:   job.Adaptive,
				Theme:      c.Theme,
				SmoothEdge: c.SmoothEdge,
			})
			logger.Debug("rasterized", "size", c.Size, "radius", raster.Radius(c.Size, job.Adaptive))

			if err := save(&enc, buf, c.Dest, job.Name); err != nil {
				errCount.Add(1)
				logger.Error("could not save icon", "error", err)
				return
			}
			generatedCount.Add(1)

			outMu.Lock()
			defer outMu.Unlock()
			fmt.Fprintf(out, "Generated %s\n", path)
		})
	}

	pool.Wait()

	generated := generatedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "generated", generated, "errors", errors, "total", generated+errors)

	if errors > 0 {
		return fmt.Errorf("error generating %d icons", errors)
	}
	return nil
}

func parseCompression(s string) (pngenc.CompressionLevel, error) {
	switch s {
	case "", "default":
		return pngenc.DefaultCompression, nil
	case "none":
		return pngenc.NoCompression, nil
	case "speed":
		return pngenc.BestSpeed, nil
	case "best":
		return pngenc.BestCompression, nil
	}
	return 0, fmt.Errorf("unsupported compression level: %s", s)
}
