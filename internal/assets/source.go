// Package assets loads textures, cube maps and fonts from a directory, a zip pack or an HTTP server.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound reports a name the source does not hold.
var ErrNotFound = errors.New("assets: not found")

// Source opens named assets. Names use forward slashes; a leading slash is ignored.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// NewSource picks a source for root: an http(s) base URL, a .zip pack, or a local directory.
func NewSource(root string) (Source, error) {
	lower := strings.ToLower(root)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return NewHTTP(root), nil
	case strings.HasSuffix(lower, ".zip"):
		return OpenZip(root)
	}
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: %s is not a directory", root)
	}
	return Dir(root), nil
}

// cleanName normalizes an asset name so it cannot climb above the source root.
func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
}

// Dir serves assets from a local directory.
type Dir string

func (d Dir) Open(_ context.Context, name string) (io.ReadCloser, error) {
	p := filepath.Join(string(d), filepath.FromSlash(cleanName(name)))
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("assets: %w", err)
	}
	return f, nil
}

// Exists reports whether name is a regular file in the directory.
func (d Dir) Exists(name string) bool {
	info, err := os.Stat(filepath.Join(string(d), filepath.FromSlash(cleanName(name))))
	return err == nil && !info.IsDir()
}

func (d Dir) String() string {
	return "dir:" + string(d)
}

func readAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return data, nil
}
