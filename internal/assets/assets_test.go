package assets

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyFont = `{"familyName": "Tiny", "resolution": 1000, "boundingBox": {"yMin": 0, "yMax": 1000},
	"glyphs": {"A": {"ha": 600, "o": "m 0 0 l 500 0 l 250 700 z"}}}`

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, data, 0644))
}

var faceColors = [6]color.RGBA{
	{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255},
	{255, 255, 0, 255}, {0, 255, 255, 255}, {255, 0, 255, 255},
}

func cubeFaces() [6]string {
	return [6]string{
		"textures/matcaps/1.png", "textures/matcaps/2.png", "textures/matcaps/3.png",
		"textures/matcaps/4.png", "textures/matcaps/5.png", "textures/matcaps/6.png",
	}
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestFuturePending(t *testing.T) {
	f, resolve := NewPending[int]()
	_, ready, _ := f.Poll()
	assert.False(t, ready)

	resolve(7, nil)
	resolve(9, errors.New("ignored"))
	v, ready, err := f.Poll()
	assert.True(t, ready)
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFutureWaitCancelled(t *testing.T) {
	f, _ := NewPending[string]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFutureGo(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (string, error) { return "ok", nil })
	v, err := f.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	select {
	case <-f.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fonts/a.json", []byte("x"))
	src, err := NewSource(dir)
	require.NoError(t, err)
	rc, err := src.Open(context.Background(), "/fonts/a.json")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "x", string(data))

	_, err = src.Open(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, src.(Dir).Exists("fonts/a.json"))
}

func TestNewSourceMissingDir(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "fonts/a.json", cleanName("/fonts/a.json"))
	assert.Equal(t, "etc/passwd", cleanName("../../etc/passwd"))
	assert.Equal(t, "a/b.png", cleanName(`a\b.png`))
}

func TestZipSource(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pack.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range map[string]string{
		"pack/fonts/a.json": "font",
		"../evil.txt":       "nope",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	src, err := NewSource(p)
	require.NoError(t, err)
	z := src.(*Zip)
	defer z.Close()

	rc, err := z.Open(context.Background(), "/fonts/a.json")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "font", string(data))

	assert.Equal(t, []string{"pack/fonts/a.json"}, z.Names())
	_, err = z.Open(context.Background(), "evil.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pack.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestZipTwoFoldersNeedFullNames(t *testing.T) {
	z, err := OpenZip(writeZip(t, map[string]string{
		"a/fonts/x.json": "a",
		"b/fonts/x.json": "b",
	}))
	require.NoError(t, err)
	defer z.Close()

	assert.Equal(t, []string{"a/fonts/x.json", "b/fonts/x.json"}, z.Names())
	for i := 0; i < 10; i++ {
		_, err = z.Open(context.Background(), "fonts/x.json")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	rc, err := z.Open(context.Background(), "b/fonts/x.json")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "b", string(data))
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != defaultUserAgent {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/assets/fonts/a.json":
			_, _ = w.Write([]byte("font"))
		case "/assets/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewSource(srv.URL + "/assets/")
	require.NoError(t, err)
	rc, err := src.Open(context.Background(), "/fonts/a.json")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "font", string(data))

	_, err = src.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = src.Open(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoaderTexture(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "textures/matcaps/3.png", pngBytes(t, 4, 4, color.White))
	l := NewLoader(Dir(dir), nil)

	tex := l.Texture(context.Background(), "textures/matcaps/3.png")
	img, err := tex.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, "textures/matcaps/3.png", tex.Name)

	bad := l.Texture(context.Background(), "textures/none.png")
	_, err = bad.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoaderCubeMap(t *testing.T) {
	dir := t.TempDir()
	for i, name := range cubeFaces() {
		size := 8
		if i == 3 {
			size = 16
		}
		writeFile(t, dir, name, pngBytes(t, size, size, faceColors[i]))
	}
	l := NewLoader(Dir(dir), nil)
	cm := l.CubeMap(context.Background(), cubeFaces())
	strip, err := cm.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 8), strip.Bounds())
	for i, want := range faceColors {
		assert.Equal(t, want, strip.RGBAAt(i*8+4, 4), "face %d", i)
	}
}

func TestLoaderCubeMapMissingFace(t *testing.T) {
	dir := t.TempDir()
	for i, name := range cubeFaces() {
		if i == 5 {
			continue
		}
		writeFile(t, dir, name, pngBytes(t, 8, 8, faceColors[i]))
	}
	cm := NewLoader(Dir(dir), nil).CubeMap(context.Background(), cubeFaces())
	_, err := cm.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoaderFont(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fonts/tiny.typeface.json", []byte(tinyFont))
	writeFile(t, dir, "fonts/tiny.woff", []byte("x"))
	l := NewLoader(Dir(dir), nil)

	f, err := l.Font(context.Background(), "/fonts/tiny.typeface.json").Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "Tiny", f.Family())
	assert.Len(t, f.Shapes("AA", 1, 4), 2)

	_, err = l.Font(context.Background(), "fonts/tiny.woff").Wait(waitCtx(t))
	assert.Error(t, err)
	_, err = l.Font(context.Background(), "fonts/none.json").Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrNotFound)
}
