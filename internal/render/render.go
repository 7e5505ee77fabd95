// Package render draws a scene through raylib. It must be used from the thread that
// opened the window.
package render

import (
	"image"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/camera"
	"matcap-scene/internal/geometry"
	"matcap-scene/internal/scene"
)

// DefaultClear is shown wherever nothing is drawn, including before the background loads.
var DefaultClear = color.RGBA{A: 255}

type textureState struct {
	tex    rl.Texture2D
	failed bool
}

// Renderer draws into an off-screen target sized by the pixel ratio, then blits it to
// the window. GPU resources are created on first use and reused across frames.
type Renderer struct {
	Clear   color.RGBA
	Overlay func()

	log    *slog.Logger
	width  int
	height int
	ratio  float32

	target     rl.RenderTexture2D
	targetW    int32
	targetH    int32
	matcap     rl.Shader
	skyShader  rl.Shader
	skyCube    rl.Mesh
	skyMat     rl.Material
	skySource  *assets.CubeMap
	skyLoaded  bool
	meshes     map[*geometry.Geometry]*gpuMesh
	textures   map[*assets.Texture]*textureState
	materials  map[*scene.Material]rl.Material
}

// New loads the shaders. The window must already be open.
func New(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	r := &Renderer{
		Clear:     DefaultClear,
		log:       log,
		ratio:     1,
		meshes:    make(map[*geometry.Geometry]*gpuMesh),
		textures:  make(map[*assets.Texture]*textureState),
		materials: make(map[*scene.Material]rl.Material),
	}
	r.matcap = loadMatcapShader()
	if !rl.IsShaderValid(r.matcap) {
		log.Warn("render: matcap shader failed to compile, using the default shader")
	}
	r.skyShader = loadSkyboxShader()
	if !rl.IsShaderValid(r.skyShader) {
		log.Warn("render: skybox shader failed to compile, background disabled")
	}
	return r
}

// SetSize sets the output size in window pixels.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

// SetPixelRatio sets drawing-buffer pixels per window pixel.
func (r *Renderer) SetPixelRatio(ratio float32) {
	r.ratio = ratio
}

// Render draws s from cam and presents the frame. rl.EndDrawing paces the frame rate.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	if r.width <= 0 || r.height <= 0 {
		r.SetSize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	r.ensureTarget()

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(r.Clear)
	rl.BeginMode3D(rl.Camera3D{
		Position:   vector3(cam.Position),
		Target:     vector3(cam.Target),
		Up:         vector3(cam.Up),
		Fovy:       cam.FOV,
		Projection: rl.CameraPerspective,
	})
	// BeginMode3D uses raylib's own clip planes; replace both matrices with the camera's.
	rl.SetMatrixProjection(Matrix(cam.ProjectionMatrix()))
	rl.SetMatrixModelview(Matrix(cam.ViewMatrix()))

	r.drawBackground(s.Background)
	for _, m := range s.Meshes() {
		r.drawMesh(m)
	}

	rl.EndMode3D()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(r.Clear)
	src := rl.NewRectangle(0, 0, float32(r.targetW), -float32(r.targetH))
	dst := rl.NewRectangle(0, 0, float32(r.width), float32(r.height))
	rl.DrawTexturePro(r.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	if r.Overlay != nil {
		r.Overlay()
	}
	rl.EndDrawing()
}

func (r *Renderer) ensureTarget() {
	w, h := TargetSize(r.width, r.height, r.ratio)
	if w == r.targetW && h == r.targetH && rl.IsRenderTextureValid(r.target) {
		return
	}
	if r.target.ID != 0 {
		rl.UnloadRenderTexture(r.target)
	}
	r.target = rl.LoadRenderTexture(w, h)
	rl.SetTextureFilter(r.target.Texture, rl.FilterBilinear)
	r.targetW, r.targetH = w, h
	r.log.Debug("render: drawing buffer", "width", w, "height", h, "ratio", r.ratio)
}

func (r *Renderer) drawMesh(m *scene.Mesh) {
	if m.Geometry == nil || m.Geometry.VertexCount() == 0 {
		return
	}
	gm, ok := r.meshes[m.Geometry]
	if !ok {
		gm = upload(m.Geometry)
		r.meshes[m.Geometry] = gm
		r.log.Debug("render: uploaded geometry", "mesh", m.Name, "vertices", m.Geometry.VertexCount(), "chunks", len(gm.meshes))
	}
	gm.draw(r.material(m.Material), Matrix(m.ModelMatrix()))
}

// material returns the raylib material for m, attaching the matcap once its image has loaded.
func (r *Renderer) material(m *scene.Material) rl.Material {
	mat, ok := r.materials[m]
	if !ok {
		mat = rl.LoadMaterialDefault()
		if rl.IsShaderValid(r.matcap) {
			mat.Shader = r.matcap
		}
		r.materials[m] = mat
	}
	if m == nil || m.Matcap == nil {
		return mat
	}
	if tex, ok := r.texture(m.Matcap); ok && mat.GetMap(rl.MapAlbedo).Texture.ID != tex.ID {
		rl.SetMaterialTexture(&mat, rl.MapAlbedo, tex)
		r.materials[m] = mat
	}
	return mat
}

func (r *Renderer) texture(t *assets.Texture) (rl.Texture2D, bool) {
	st, ok := r.textures[t]
	if ok {
		return st.tex, !st.failed && st.tex.ID != 0
	}
	img, ready, err := t.Poll()
	if !ready {
		return rl.Texture2D{}, false
	}
	st = &textureState{}
	r.textures[t] = st
	if err != nil {
		st.failed = true
		return rl.Texture2D{}, false
	}
	st.tex = loadTexture(img)
	rl.SetTextureFilter(st.tex, rl.FilterBilinear)
	return st.tex, st.tex.ID != 0
}

func loadTexture(img image.Image) rl.Texture2D {
	ri := rl.NewImageFromImage(img)
	defer rl.UnloadImage(ri)
	return rl.LoadTextureFromImage(ri)
}

// drawBackground draws the cube map once it has loaded. A failed or pending load leaves
// the clear color.
func (r *Renderer) drawBackground(bg *assets.CubeMap) {
	if bg == nil || !rl.IsShaderValid(r.skyShader) {
		return
	}
	if bg != r.skySource {
		strip, ready, err := bg.Poll()
		if !ready {
			return
		}
		r.skySource = bg
		if err != nil {
			return
		}
		r.loadSkybox(strip)
	}
	if !r.skyLoaded {
		return
	}
	rl.DisableBackfaceCulling()
	rl.DisableDepthMask()
	rl.DrawMesh(r.skyCube, r.skyMat, rl.MatrixIdentity())
	rl.EnableDepthMask()
	rl.EnableBackfaceCulling()
}

func (r *Renderer) loadSkybox(strip *image.RGBA) {
	ri := rl.NewImageFromImage(strip)
	tex := rl.LoadTextureCubemap(ri, rl.CubemapLayoutLineHorizontal)
	rl.UnloadImage(ri)
	if !rl.IsTextureValid(tex) {
		r.log.Warn("render: cube map upload failed", "faces", len(r.skySource.Faces))
		return
	}
	if !r.skyLoaded {
		r.skyCube = rl.GenMeshCube(1, 1, 1)
		r.skyMat = rl.LoadMaterialDefault()
		r.skyMat.Shader = r.skyShader
	} else {
		rl.UnloadTexture(r.skyMat.GetMap(rl.MapCubemap).Texture)
	}
	rl.SetMaterialTexture(&r.skyMat, rl.MapCubemap, tex)
	r.skyLoaded = true
	r.log.Info("render: background ready", "size", tex.Width)
}

// Close releases every GPU resource the renderer created.
func (r *Renderer) Close() {
	for g, m := range r.meshes {
		m.unload()
		delete(r.meshes, g)
	}
	for t, st := range r.textures {
		if st.tex.ID != 0 {
			rl.UnloadTexture(st.tex)
		}
		delete(r.textures, t)
	}
	for m, mat := range r.materials {
		releaseMaterial(mat)
		delete(r.materials, m)
	}
	if r.skyLoaded {
		rl.UnloadTexture(r.skyMat.GetMap(rl.MapCubemap).Texture)
		releaseMaterial(r.skyMat)
		rl.UnloadMesh(&r.skyCube)
		r.skyLoaded = false
	}
	if r.target.ID != 0 {
		rl.UnloadRenderTexture(r.target)
	}
	for _, s := range []rl.Shader{r.matcap, r.skyShader} {
		if rl.IsShaderValid(s) {
			rl.UnloadShader(s)
		}
	}
}

// releaseMaterial frees the map array of a material from rl.LoadMaterialDefault. Its shader
// and textures belong to the renderer and are unloaded on their own.
func releaseMaterial(mat rl.Material) {
	rl.UnloadMaterial(detach(mat, rl.GetShaderIdDefault(), rl.GetTextureIdDefault()))
}

// detach returns mat with its shader and every map texture pointed at the given defaults,
// which rl.UnloadMaterial leaves alone.
func detach(mat rl.Material, shaderID, textureID uint32) rl.Material {
	mat.Shader.ID = shaderID
	if mat.Maps == nil {
		return mat
	}
	for i := int32(0); i < rl.MaxMaterialMaps; i++ {
		mat.GetMap(i).Texture.ID = textureID
	}
	return mat
}
