// Package viewer holds the application state shared by the render loop: the scene, the
// camera and its controls, the viewport, and the pending asset loads.
package viewer

import (
	"context"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"matcap-scene/internal/assets"
	"matcap-scene/internal/camera"
	"matcap-scene/internal/config"
	"matcap-scene/internal/debug"
	"matcap-scene/internal/fonts"
	"matcap-scene/internal/graphics"
	"matcap-scene/internal/orbit"
	"matcap-scene/internal/primitives"
	"matcap-scene/internal/scene"
	"matcap-scene/internal/typeface"
	"matcap-scene/internal/viewport"
)

// State tracks scene population.
type State int

const (
	// Loading renders the background only while the font is pending.
	Loading State = iota
	Ready
	// Failed is final: the font or the population failed and the scene stays empty.
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// App is owned by the render goroutine. Loads resolve on their own goroutines and are
// only observed here through their futures.
type App struct {
	Scene    *scene.Scene
	Camera   *camera.Perspective
	Controls *orbit.Controls
	Viewport *viewport.Controller
	Builder  *scene.Builder
	Debug    *debug.Panel

	Font   *assets.Future[typeface.Font]
	Matcap *assets.Texture

	cfg   config.Config
	log   *slog.Logger
	state State
	err   error
	stats scene.Stats
}

// New builds the camera, controls and empty scene from cfg. surface receives viewport changes.
func New(cfg config.Config, surface viewport.Surface, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	cam := camera.New()
	cam.FOV, cam.Near, cam.Far = cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far
	cam.Position = mgl32.Vec3(cfg.Camera.Position)
	cam.UpdateProjectionMatrix()

	ctl := orbit.New(cam)
	ctl.EnableDamping = cfg.Controls.Damping
	ctl.DampingFactor = cfg.Controls.DampingFactor
	ctl.RotateSpeed = cfg.Controls.RotateSpeed
	ctl.PanSpeed = cfg.Controls.PanSpeed
	ctl.ZoomSpeed = cfg.Controls.ZoomSpeed
	ctl.MinDistance = cfg.Controls.MinDistance
	if cfg.Controls.MaxDistance > 0 {
		ctl.MaxDistance = cfg.Controls.MaxDistance
	}

	s := scene.New()
	s.Add(cam)

	panel := debug.New()
	panel.ShowFPS = cfg.Debug.ShowFPS
	panel.ShowMemAlloc = cfg.Debug.ShowMemAlloc
	panel.Visible = cfg.Debug.ShowPanel

	families := primitives.NewRegistry(cfg.Families)
	return &App{
		Scene:    s,
		Camera:   cam,
		Controls: ctl,
		Viewport: viewport.New(cam, surface, log),
		Builder:  scene.NewBuilder(cfg.Text, families, cfg.Scatter.Options(), log),
		Debug:    panel,
		cfg:      cfg,
		log:      log,
	}
}

// Load starts the cube map, matcap and font loads. The cube map becomes the scene
// background right away; the renderer shows it once it resolves.
func (a *App) Load(ctx context.Context, loader *assets.Loader) {
	a.Scene.Background = loader.CubeMap(ctx, a.cfg.Assets.CubeMap)
	a.Matcap = loader.Texture(ctx, a.cfg.Assets.Matcap)

	name := a.cfg.Assets.Font
	if dir, ok := loader.Source().(assets.Dir); ok && !dir.Exists(name) {
		if found, err := fonts.Locate(string(dir), name); err == nil {
			a.log.Info("viewer: font not at configured path, using fallback", "font", name, "found", found)
			name = found
		}
	}
	a.Font = loader.Font(ctx, name)
}

// Update advances one frame: input and damping first, then population once the font
// has resolved.
func (a *App) Update(_ graphics.Frame, in orbit.Input) {
	if in.ViewportHeight <= 0 {
		in.ViewportHeight = float32(a.Viewport.Size().Height)
	}
	a.Controls.Apply(in)
	a.Controls.Update()
	a.populate()
}

func (a *App) populate() {
	if a.state != Loading || a.Font == nil {
		return
	}
	font, ready, err := a.Font.Poll()
	if !ready {
		return
	}
	if err != nil {
		a.state, a.err = Failed, err
		a.log.Warn("viewer: font failed, scene stays empty", "err", err)
		return
	}
	stats, err := a.Builder.Populate(a.Scene, font, a.Matcap)
	if err != nil {
		a.state, a.err = Failed, err
		a.log.Error("viewer: populate", "err", err)
		return
	}
	a.stats = stats
	a.state = Ready
}

// State reports how far population has got.
func (a *App) State() State {
	return a.state
}

// Err returns why population failed.
func (a *App) Err() error {
	return a.err
}

// Stats describes the population, valid once State is Ready.
func (a *App) Stats() scene.Stats {
	return a.stats
}
