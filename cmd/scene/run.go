package main

import (
	"context"
	"errors"
	"io"

	rl "github.com/gen2brain/raylib-go/raylib"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/commands"
	"matcap-scene/internal/debug"
	"matcap-scene/internal/graphics"
	"matcap-scene/internal/render"
	"matcap-scene/internal/viewer"
)

func runCommand() *commands.Command {
	c := newCommon("run")
	frames := c.fs.Uint64("frames", 0, "stop after this many frames, 0 runs until the window closes")
	return &commands.Command{
		Name:    "run",
		Summary: "open the window and render the scene",
		FlagSet: c.fs,
		Run: func(ctx context.Context, _ []string) error {
			return run(ctx, c, *frames)
		},
	}
}

func run(ctx context.Context, c *common, frames uint64) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer log.Close()
	rl.SetTraceLogCallback(log.Raylib)

	src, err := assets.NewSource(cfg.Assets.Root)
	if err != nil {
		return err
	}
	if cl, ok := src.(io.Closer); ok {
		defer cl.Close()
	}
	log.Info("scene: starting", "assets", src.String(), "seed", cfg.Scatter.Seed)

	win := graphics.OpenWindow(graphics.WindowOptions{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		TargetFPS:  cfg.Window.TargetFPS,
		MSAA:       cfg.Window.MSAA,
	}, log.Logger)
	defer win.Close()

	r := render.New(log.Logger)
	defer r.Close()

	app := viewer.New(cfg, r, log.Logger)
	win.OnResize(app.Viewport.Resize)
	r.Overlay = app.Debug.Draw
	app.Load(ctx, assets.NewLoader(src, log.Logger))

	loop := &graphics.Loop{
		Scheduler: win,
		MaxFrames: frames,
		Update: func(f graphics.Frame) {
			if graphics.KeyPressed(debug.ToggleKey) {
				app.Debug.Toggle()
			}
			app.Update(f, graphics.OrbitInput())
		},
		Render: func(graphics.Frame) {
			r.Render(app.Scene, app.Camera)
		},
	}
	err = loop.Run(ctx)
	size := app.Viewport.Size()
	log.Info("scene: stopped", "state", app.State().String(),
		"width", size.Width, "height", size.Height, "ratio", app.Viewport.PixelRatio())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
