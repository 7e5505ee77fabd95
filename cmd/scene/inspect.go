package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/commands"
	"matcap-scene/internal/graphics"
	"matcap-scene/internal/orbit"
	"matcap-scene/internal/viewer"
)

// headless discards viewport changes.
type headless struct{}

func (headless) SetSize(int, int)      {}
func (headless) SetPixelRatio(float32) {}

func inspectCommand(out io.Writer) *commands.Command {
	c := newCommon("inspect")
	timeout := c.fs.Duration("timeout", 30*time.Second, "give up waiting for the font after this long")
	return &commands.Command{
		Name:    "inspect",
		Summary: "populate the scene without a window and print what was built",
		FlagSet: c.fs,
		Run: func(ctx context.Context, _ []string) error {
			return inspect(ctx, c, *timeout, out)
		},
	}
}

// inspect drives the same frame loop as run, off a ticker, until the scene is populated.
func inspect(ctx context.Context, c *common, timeout time.Duration, out io.Writer) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer log.Close()

	src, err := assets.NewSource(cfg.Assets.Root)
	if err != nil {
		return err
	}
	if cl, ok := src.(io.Closer); ok {
		defer cl.Close()
	}

	app := viewer.New(cfg, headless{}, log.Logger)
	app.Load(ctx, assets.NewLoader(src, log.Logger))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := graphics.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	loop := &graphics.Loop{
		Scheduler: ticker,
		Update: func(f graphics.Frame) {
			app.Update(f, orbit.Input{})
			if app.State() != viewer.Loading {
				cancel()
			}
		},
	}
	err = loop.Run(ctx)
	switch app.State() {
	case viewer.Ready:
	case viewer.Failed:
		return fmt.Errorf("inspect: scene not populated: %w", app.Err())
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("inspect: font still loading after %s", timeout)
		}
		return err
	}
	report(out, app)
	return nil
}

func report(w io.Writer, app *viewer.App) {
	st := app.Stats()
	fmt.Fprintf(w, "meshes: %d (text %d)\n", st.Total, st.TextMeshes)
	for _, d := range app.Builder.Families.Families() {
		fmt.Fprintf(w, "  %-10s %-9s %d\n", d.Name, d.Kind, st.Families[d.Name])
	}
	for i, b := range st.TextBounds {
		size := b.Size()
		fmt.Fprintf(w, "text %d: %.3f x %.3f x %.3f\n", i+1, size[0], size[1], size[2])
	}
	p := st.Placement
	fmt.Fprintf(w, "position: %.2f .. %.2f\n", p.MinPos, p.MaxPos)
	fmt.Fprintf(w, "rotation: %.3f .. %.3f\n", p.MinRot, p.MaxRot)
	fmt.Fprintf(w, "scale:    %.3f .. %.3f\n", p.MinScale, p.MaxScale)
}
