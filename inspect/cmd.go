package inspect

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"appicons/icons"
	"appicons/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Files []string `arg:"" optional:"" help:"PNG files to check. Defaults to the generated icons in --dest."`
	Dest  string   `help:"Folder holding the generated icons" default:"assets"`
	Size  int      `help:"Expected width and height, 0 to accept any size" default:"0"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Size < 0 {
		return fmt.Errorf("invalid expected size: %d", c.Size)
	}

	if c.Dest == "" {
		c.Dest = icons.DefaultDest
	}
	if len(c.Files) == 0 {
		for _, job := range icons.DefaultJobs {
			c.Files = append(c.Files, filepath.Join(c.Dest, job.Name))
		}
	}
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	var okCount, errCount atomic.Uint64
	for _, name := range c.Files {
		pool.Do(func() {
			logger := slog.Default().With("file", name)

			info, err := checkFile(name, c.Size)
			if err != nil {
				errCount.Add(1)
				logger.Error("invalid icon", "error", err)
				return
			}
			okCount.Add(1)
			logger.Info("verified", "width", info.Width, "height", info.Height, "chunks", info.Chunks, "bytes", info.Bytes)
		})
	}

	pool.Wait()

	ok := okCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "verified", ok, "errors", errors, "total", ok+errors)

	if errors > 0 {
		return fmt.Errorf("%d of %d files failed verification", errors, ok+errors)
	}
	return nil
}
