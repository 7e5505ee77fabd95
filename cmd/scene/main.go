package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"matcap-scene/internal/commands"
	"matcap-scene/internal/config"
	"matcap-scene/internal/env"
	"matcap-scene/internal/logger"
)

// raylib needs every GL call on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if _, err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := commands.NewRegistry("run")
	reg.Register(runCommand())
	reg.Register(inspectCommand(os.Stdout))

	err := reg.Execute(ctx, os.Args[1:])
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintln(os.Stderr, "scene:", err)
		if errors.Is(err, commands.ErrUnknown) {
			reg.Usage(os.Stderr)
		}
		os.Exit(1)
	}
}

// common are the flags every subcommand shares.
type common struct {
	configPath string
	assets     string
	seed       int64
	seedSet    bool
	fs         *flag.FlagSet
}

func newCommon(name string) *common {
	c := &common{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	def := os.Getenv(config.EnvConfig)
	if def == "" {
		def = config.DefaultPath
	}
	c.fs.StringVar(&c.configPath, "config", def, "YAML config file")
	c.fs.StringVar(&c.assets, "assets", "", "asset root: directory, .zip pack or http(s) URL")
	c.fs.Int64Var(&c.seed, "seed", 0, "scatter seed, 0 picks one from the clock")
	return c
}

// load reads the config file, then the environment, then the flags, and validates the result.
func (c *common) load() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	c.fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			c.seedSet = true
		}
	})
	if c.assets != "" {
		cfg.Assets.Root = c.assets
	}
	if c.seedSet {
		cfg.Scatter.Seed = c.seed
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, console io.Writer) (*logger.Logger, error) {
	lvl, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logger.New(logger.Options{Level: lvl, Path: cfg.Log.Path, Console: console})
}
