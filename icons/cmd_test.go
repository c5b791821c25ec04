package icons

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"appicons/palette"
	"appicons/parallel"
	"appicons/pngenc"
	"appicons/raster"

	"github.com/google/go-cmp/cmp"
)

func newCmd(t *testing.T, dest string) *CLICmd {
	t.Helper()
	c := &CLICmd{Dest: dest, Size: 48, Compression: "default"}
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGenerate(t *testing.T) {
	for _, workers := range []int{1, 3} {
		dest := filepath.Join(t.TempDir(), "assets")
		c := newCmd(t, dest)

		var out bytes.Buffer
		if err := c.Generate(parallel.Start(workers), &out); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		sort.Strings(lines)
		want := []string{
			"Generated " + filepath.Join(dest, "adaptive-icon.png"),
			"Generated " + filepath.Join(dest, "icon.png"),
			"Generated " + filepath.Join(dest, "splash-icon.png"),
		}
		if d := cmp.Diff(want, lines); d != "" {
			t.Errorf("workers=%d: output (-want +got):\n%s", workers, d)
		}

		entries, err := os.ReadDir(dest)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != len(DefaultJobs) {
			t.Errorf("workers=%d: %d entries in destination, want %d", workers, len(entries), len(DefaultJobs))
		}

		for _, job := range DefaultJobs {
			f, err := os.Open(filepath.Join(dest, job.Name))
			if err != nil {
				t.Fatal(err)
			}
			img, err := png.Decode(f)
			f.Close()
			if err != nil {
				t.Fatalf("%s: %v", job.Name, err)
			}

			expected := raster.DrawIcon(48, job.Adaptive)
			for y := range 48 {
				for x := range 48 {
					if got, want := img.At(x, y), expected.At(x, y); got != want {
						t.Fatalf("%s: pixel (%d,%d) = %v, want %v", job.Name, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestGenerateDestIsFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "assets")
	if err := os.WriteFile(dest, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newCmd(t, dest)
	var out bytes.Buffer
	if err := c.Generate(parallel.Start(1), &out); err == nil {
		t.Fatal("expected an error when the destination is a file")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestSaveLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	bad := &raster.Buffer{Width: 4, Height: 4, Pix: make([]raster.Pixel, 3)}

	err := save(&pngenc.Encoder{}, bad, dir, "icon.png")
	if !errors.Is(err, pngenc.ErrSizeMismatch) {
		t.Fatalf("err = %v, want %v", err, pngenc.ErrSizeMismatch)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		t.Errorf("leftover file %q", e.Name())
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "icon.png")
	if err := os.WriteFile(name, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := save(&pngenc.Encoder{}, raster.DrawIcon(8, false), dir, "icon.png"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngenc.Signature[:]) {
		t.Errorf("file was not replaced: % x", data[:min(len(data), 8)])
	}
}

func TestValidate(t *testing.T) {
	c := &CLICmd{Dest: "x", Size: 16, Fill: "#f00", Edge: "#00ff0080", Compression: "best"}
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}

	want := raster.Theme{
		Background: raster.DefaultTheme.Background,
		Fill:       color.NRGBA{R: 255, A: 255},
		Edge:       color.NRGBA{G: 255, A: 128},
	}
	if d := cmp.Diff(want, c.Theme); d != "" {
		t.Errorf("theme (-want +got):\n%s", d)
	}
	if c.Level != pngenc.BestCompression {
		t.Errorf("level = %d, want %d", c.Level, pngenc.BestCompression)
	}

	for _, bad := range []*CLICmd{
		{Size: 0},
		{Size: -4},
		{Size: 8, Background: "white"},
		{Size: 8, Fill: "#12"},
		{Size: 8, Compression: "huge"},
		{Size: 8, Palette: filepath.Join(t.TempDir(), "missing.pal")},
	} {
		if err := bad.Validate(nil); err == nil {
			t.Errorf("%+v: expected a validation error", *bad)
		}
	}
}

func TestValidatePalette(t *testing.T) {
	name := filepath.Join(t.TempDir(), "theme.pal")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	pal := color.Palette{
		color.NRGBA{R: 0, G: 0, B: 64, A: 255},
		color.NRGBA{R: 250, G: 200, B: 0, A: 255},
		color.NRGBA{R: 120, G: 100, B: 30, A: 255},
	}
	if _, err := palette.WriteTo(f, []color.Palette{pal}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	c := &CLICmd{Size: 8, Palette: name, Background: "#fff"}
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}
	want := raster.Theme{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Fill:       pal[1].(color.NRGBA),
		Edge:       pal[2].(color.NRGBA),
	}
	if d := cmp.Diff(want, c.Theme); d != "" {
		t.Errorf("theme (-want +got):\n%s", d)
	}

	short := filepath.Join(t.TempDir(), "short.pal")
	f, err = os.Create(short)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := palette.WriteTo(f, []color.Palette{pal[:2]}); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := (&CLICmd{Size: 8, Palette: short}).Validate(nil); err == nil {
		t.Error("two-color palette: expected an error")
	}
}

func TestParseHexColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#fff":      {R: 255, G: 255, B: 255, A: 255},
		"#1234":     {R: 0x11, G: 0x22, B: 0x33, A: 0x44},
		"#111111":   {R: 17, G: 17, B: 17, A: 255},
		"#64646480": {R: 100, G: 100, B: 100, A: 128},
	}
	for in, want := range cases {
		got, err := parseHexColor(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "fff", "#", "#ggg", "#12345", "#1234567", "#-12"} {
		if _, err := parseHexColor(in); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}
