package graphics

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WindowOptions configures the host window.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
	MSAA       bool
}

// Window is the raylib host. It schedules frames for Loop and reports size changes.
// All methods must be called from the thread that opened it.
type Window struct {
	log      *slog.Logger
	onResize []func(width, height int, dpr float32)
	width    int
	height   int
}

// OpenWindow creates the window and GL context. Raylib keeps one window per process.
func OpenWindow(opts WindowOptions, log *slog.Logger) *Window {
	if log == nil {
		log = slog.Default()
	}
	flags := uint32(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	if opts.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)

	// zero takes the monitor size
	w, h := opts.Width, opts.Height
	if opts.Fullscreen {
		w, h = 0, 0
	}
	rl.InitWindow(int32(w), int32(h), opts.Title)
	rl.SetWindowMinSize(1, 1)
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}
	log.Info("window: opened", "width", rl.GetScreenWidth(), "height", rl.GetScreenHeight(), "dpr", PixelRatio())
	return &Window{log: log}
}

// OnResize registers fn for every size change, including the initial size on the first frame.
func (w *Window) OnResize(fn func(width, height int, dpr float32)) {
	w.onResize = append(w.onResize, fn)
}

// NextFrame returns false once the user closed the window or ctx is done.
// Frame pacing happens in rl.EndDrawing at the end of the previous frame.
func (w *Window) NextFrame(ctx context.Context) bool {
	if ctx.Err() != nil || rl.WindowShouldClose() {
		return false
	}
	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
	if width != w.width || height != w.height || rl.IsWindowResized() {
		w.width, w.height = width, height
		dpr := PixelRatio()
		w.log.Debug("window: resized", "width", width, "height", height, "dpr", dpr)
		for _, fn := range w.onResize {
			fn(width, height, dpr)
		}
	}
	return true
}

// Close destroys the window and its GL context.
func (w *Window) Close() {
	rl.CloseWindow()
}

// PixelRatio is the device pixel ratio of the current monitor.
func PixelRatio() float32 {
	s := rl.GetWindowScaleDPI()
	if s.X <= 0 {
		return 1
	}
	return s.X
}
