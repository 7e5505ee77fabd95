package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"matcap-scene/internal/typeface"
)

// Texture is a handle to a 2D image that may still be loading.
type Texture struct {
	Name string
	*Future[image.Image]
}

// CubeMap is a handle to six cube faces, ordered +X, -X, +Y, -Y, +Z, -Z. Once loaded the faces
// are packed left to right into one strip image whose height is the face size.
type CubeMap struct {
	Faces [6]string
	*Future[*image.RGBA]
}

// NewTexture wraps a future as a texture handle.
func NewTexture(name string, f *Future[image.Image]) *Texture {
	return &Texture{Name: name, Future: f}
}

// NewCubeMap wraps a future as a cube map handle.
func NewCubeMap(faces [6]string, f *Future[*image.RGBA]) *CubeMap {
	return &CubeMap{Faces: faces, Future: f}
}

// Loader starts asset loads on background goroutines. Results are handed back through futures.
type Loader struct {
	src Source
	log *slog.Logger
}

// NewLoader returns a loader reading from src. A nil log uses slog.Default.
func NewLoader(src Source, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{src: src, log: log}
}

// Source returns the source the loader reads from.
func (l *Loader) Source() Source {
	return l.src
}

func track[T any](l *Loader, kind, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	l.log.Info("assets: loading", "kind", kind, "name", name, "source", l.src.String())
	v, err := fn()
	if err != nil {
		l.log.Warn("assets: load failed", "kind", kind, "name", name, "err", err)
		return v, err
	}
	l.log.Info("assets: loaded", "kind", kind, "name", name, "elapsed", time.Since(start))
	return v, nil
}

// Image decodes one image synchronously.
func (l *Loader) Image(ctx context.Context, name string) (image.Image, error) {
	data, err := readAll(ctx, l.src, name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return img, nil
}

// Texture starts loading a 2D image.
func (l *Loader) Texture(ctx context.Context, name string) *Texture {
	f := Go(ctx, func(ctx context.Context) (image.Image, error) {
		return track(l, "texture", name, func() (image.Image, error) {
			return l.Image(ctx, name)
		})
	})
	return NewTexture(name, f)
}

// CubeMap starts loading six faces in parallel. Any face failing fails the whole cube map.
func (l *Loader) CubeMap(ctx context.Context, faces [6]string) *CubeMap {
	f := Go(ctx, func(ctx context.Context) (*image.RGBA, error) {
		return track(l, "cubemap", faces[0], func() (*image.RGBA, error) {
			return l.loadStrip(ctx, faces)
		})
	})
	return NewCubeMap(faces, f)
}

func (l *Loader) loadStrip(ctx context.Context, faces [6]string) (*image.RGBA, error) {
	var imgs [6]image.Image
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range faces {
		g.Go(func() error {
			img, err := l.Image(gctx, name)
			if err != nil {
				return err
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ComposeStrip(imgs)
}

// ComposeStrip packs six faces into a horizontal strip. Faces are resized to the height of the
// first face when their size differs.
func ComposeStrip(faces [6]image.Image) (*image.RGBA, error) {
	if faces[0] == nil {
		return nil, fmt.Errorf("assets: cube map face 0 missing")
	}
	size := faces[0].Bounds().Dy()
	if size <= 0 {
		return nil, fmt.Errorf("assets: cube map face 0 is empty")
	}
	strip := image.NewRGBA(image.Rect(0, 0, size*6, size))
	for i, face := range faces {
		if face == nil {
			return nil, fmt.Errorf("assets: cube map face %d missing", i)
		}
		var rgba *image.RGBA
		if b := face.Bounds(); b.Dx() != size || b.Dy() != size {
			rgba = transform.Resize(face, size, size, transform.Linear)
		} else {
			rgba = clone.AsRGBA(face)
		}
		dst := image.Rect(i*size, 0, (i+1)*size, size)
		draw.Draw(strip, dst, rgba, rgba.Bounds().Min, draw.Src)
	}
	return strip, nil
}

// Font starts loading a font. Typeface JSON (.json) and OpenType (.ttf, .otf, .ttc) are accepted.
func (l *Loader) Font(ctx context.Context, name string) *Future[typeface.Font] {
	return Go(ctx, func(ctx context.Context) (typeface.Font, error) {
		return track(l, "font", name, func() (typeface.Font, error) {
			return l.loadFont(ctx, name)
		})
	})
}

func (l *Loader) loadFont(ctx context.Context, name string) (typeface.Font, error) {
	data, err := readAll(ctx, l.src, name)
	if err != nil {
		return nil, err
	}
	var f *typeface.OutlineFont
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json":
		f, err = typeface.ParseJSON(data, typeface.WithLogger(l.log))
	case ".ttf", ".otf", ".ttc":
		f, err = typeface.ParseOpenType(data, typeface.WithLogger(l.log))
	default:
		return nil, fmt.Errorf("assets: unsupported font format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
