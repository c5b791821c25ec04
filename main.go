package main

import (
	"fmt"
	"log/slog"
	"os"

	"appicons/icons"
	"appicons/inspect"
	"appicons/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers   int    `help:"Number of parallel jobs, 0 for one per CPU" default:"0"`
	LogLevel  string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `help:"Log output format" enum:"text,json" default:"text"`

	Generate icons.CLICmd  `cmd:"" default:"withargs" help:"Generate the application icons (default)"`
	Verify   inspect.CLICmd `cmd:"" help:"Check generated icons for format conformance"`
}

func (c *cli) AfterApply() error {
	logger, err := newLogger(c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	}
	return nil, fmt.Errorf("unsupported log format: %s", format)
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("appicons"),
		kong.Description("Generate the app icon, adaptive icon and splash icon PNG files."),
		kong.UsageOnError(),
	)

	pool := parallel.Start(c.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	kctx.FatalIfErrorf(kctx.Run(pool))
}
