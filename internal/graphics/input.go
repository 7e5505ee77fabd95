package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"matcap-scene/internal/orbit"
)

// OrbitInput reads this frame's pointer state: left drag rotates, right or middle drag
// pans, the wheel dollies. ViewportHeight is left for the caller.
func OrbitInput() orbit.Input {
	in := orbit.Input{Wheel: rl.GetMouseWheelMove()}
	d := rl.GetMouseDelta()
	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		in.Rotate[0], in.Rotate[1] = d.X, d.Y
	case rl.IsMouseButtonDown(rl.MouseButtonRight), rl.IsMouseButtonDown(rl.MouseButtonMiddle):
		in.Pan[0], in.Pan[1] = d.X, d.Y
	}
	return in
}

// KeyPressed reports whether key went down this frame.
func KeyPressed(key int32) bool {
	return rl.IsKeyPressed(key)
}
