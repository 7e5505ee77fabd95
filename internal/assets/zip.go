package assets

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
)

// Zip serves assets from a zip pack. Entries are matched by their cleaned path; when a pack
// wraps everything in one top-level folder, names are also matched under that folder.
type Zip struct {
	path    string
	r       *zip.ReadCloser
	entries map[string]*zip.File
	// root is the single folder wrapping every entry, or "".
	root string
}

// OpenZip indexes the pack at p. Entries whose names would escape the pack root are skipped.
func OpenZip(p string) (*Zip, error) {
	r, err := zip.OpenReader(p)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("assets: open zip: %w", err)
	}
	z := &Zip{path: p, r: r, entries: make(map[string]*zip.File, len(r.File))}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || escapes(f.Name) {
			continue
		}
		z.entries[path.Clean(f.Name)] = f
	}
	z.root = wrapper(z.entries)
	return z, nil
}

// wrapper returns the top-level folder shared by every entry, or "" when entries sit at
// the root or under more than one folder.
func wrapper(entries map[string]*zip.File) string {
	root := ""
	for name := range entries {
		top, _, ok := strings.Cut(name, "/")
		if !ok || (root != "" && top != root) {
			return ""
		}
		root = top
	}
	return root
}

func escapes(name string) bool {
	name = strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(name, "/") {
		return true
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

func (z *Zip) Open(_ context.Context, name string) (io.ReadCloser, error) {
	name = cleanName(name)
	f, ok := z.entries[name]
	if !ok && z.root != "" {
		f, ok = z.entries[z.root+"/"+name]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, z.path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("assets: zip entry %s: %w", name, err)
	}
	return rc, nil
}

// Names lists the entries of the pack in sorted order.
func (z *Zip) Names() []string {
	out := make([]string, 0, len(z.entries))
	for name := range z.entries {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Close releases the pack file.
func (z *Zip) Close() error {
	return z.r.Close()
}

func (z *Zip) String() string {
	return "zip:" + z.path
}
