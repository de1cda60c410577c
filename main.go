package main

import (
	"log/slog"
	"os"
	"strings"

	"pixelart/convert"
	"pixelart/palette"
	"pixelart/parallel"
	"pixelart/serve"
	"pixelart/theme"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers  int    `help:"Number of parallel workers, all CPUs if 0" default:"0" short:"j"`
	LogLevel string `help:"Minimum level of log messages" enum:"debug,info,warn,error" default:"info" env:"PIXELART_LOG_LEVEL"`

	Convert convert.CLICmd `cmd:"" help:"Turn every image of a folder into pixel art"`
	Theme   theme.CLICmd   `cmd:"" help:"Print the UI theme derived from a palette"`
	Palette palette.CLICmd `cmd:"" help:"Inspect and export palettes"`
	Serve   serve.CLICmd   `cmd:"" help:"Serve the pixelizer over HTTP"`
}

func (c *cli) AfterApply() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pixelart"),
		kong.Description("Convert pictures into palette constrained pixel art."),
		kong.UsageOnError(),
		kong.Vars{"palettes": strings.Join(palette.Names(), ", ")},
	)

	pool := parallel.Start(c.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	err := kctx.Run(parallel.WorkerFunc(pool.Do), parallel.WaitFunc(pool.Wait), kctx.Selected().Name)
	pool.Wait(true)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
