package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix converts a column-major mgl32 matrix to raylib's layout.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func vector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// TargetSize is the drawing-buffer size for a window of w×h at the given pixel ratio.
// Both sides are at least 1.
func TargetSize(w, h int, ratio float32) (int32, int32) {
	if ratio <= 0 {
		ratio = 1
	}
	tw := int32(float32(w)*ratio + 0.5)
	th := int32(float32(h)*ratio + 0.5)
	return max(tw, 1), max(th, 1)
}
