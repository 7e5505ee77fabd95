// Package debug draws the on-screen debug overlay: optional FPS and heap counters and a
// panel of registered controls, toggled at runtime.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// counters are refreshed every updateInterval frames to limit allocations
	updateInterval = 30
)

// ToggleKey shows or hides the control panel.
const ToggleKey = rl.KeyF1

// Control is one entry on the panel.
type Control interface {
	Label() string
	Value() string
}

// Panel starts with no controls; callers register them with Add. All overlays are off by default.
type Panel struct {
	ShowFPS      bool
	ShowMemAlloc bool
	Visible      bool

	controls   []Control
	frameCount uint32
	fpsText    string
	memText    string

	fps  func() int32
	heap func() uint64
}

// New returns a hidden panel with no controls, reading FPS and heap size from the runtime.
func New() *Panel {
	return &Panel{fps: rl.GetFPS, heap: heapAlloc}
}

func heapAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

// Add registers c at the bottom of the panel.
func (p *Panel) Add(c Control) {
	p.controls = append(p.controls, c)
}

// Controls returns the registered controls in order.
func (p *Panel) Controls() []Control {
	return p.controls
}

// Toggle shows or hides the control list.
func (p *Panel) Toggle() {
	p.Visible = !p.Visible
}

// Lines returns the overlay text for this frame, top to bottom.
func (p *Panel) Lines() []string {
	p.frameCount++
	refresh := p.frameCount%updateInterval == 0
	var out []string
	if p.ShowFPS {
		if refresh || p.fpsText == "" {
			p.fpsText = fmt.Sprintf("FPS: %d", p.fps())
		}
		out = append(out, p.fpsText)
	}
	if p.ShowMemAlloc {
		if refresh || p.memText == "" {
			p.memText = fmt.Sprintf("Mem: %.2f MiB", float64(p.heap())/(1024*1024))
		}
		out = append(out, p.memText)
	}
	if p.Visible {
		if len(p.controls) == 0 {
			out = append(out, "debug: no controls")
		}
		for _, c := range p.controls {
			out = append(out, c.Label()+": "+c.Value())
		}
	}
	return out
}

// Draw renders Lines right-aligned at the top of the screen. Call it inside BeginDrawing.
func (p *Panel) Draw() {
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range p.Lines() {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}

// Func adapts a label and a value getter to a Control.
type Func struct {
	Name string
	Get  func() string
}

func (f Func) Label() string { return f.Name }
func (f Func) Value() string { return f.Get() }
