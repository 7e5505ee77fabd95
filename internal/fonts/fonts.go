// Package fonts finds font files on disk when the configured path does not exist.
package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the font formats the loader can parse.
var Exts = []string{".json", ".ttf", ".otf", ".ttc"}

// BaseDirs returns candidate font directories relative to root, nearest first.
func BaseDirs(root string) []string {
	return []string{
		filepath.Join(root, "fonts"),
		filepath.Join(root, "assets", "fonts"),
		filepath.Join(root, "..", "..", "assets", "fonts"),
	}
}

// IsFont reports whether path has a font extension.
func IsFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanDir returns the slash-separated paths of every font file under dir, relative to dir.
// A missing dir yields no paths.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !IsFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and drops spaces, dashes, underscores and dots.
func normalizeForMatch(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "", ".", "").Replace(strings.ToLower(s))
}

// SearchTerm reduces a font path to the family part used for fuzzy matching:
// "/fonts/helvetiker_regular.typeface.json" gives "helvetiker".
func SearchTerm(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	for _, suffix := range []string{"_regular", "-regular", "_bold", "-bold"} {
		if strings.HasSuffix(strings.ToLower(base), suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}
	return base
}

// FindFont searches BaseDirs(root) for a font whose path contains search, ignoring case
// and separators. When several match, a "regular" face wins; otherwise the first found.
func FindFont(root, search string) (string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var matches []string
	for _, base := range BaseDirs(root) {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

// Locate resolves name under root. When root/name is missing it falls back to FindFont
// with the name's family, returning the match relative to root.
func Locate(root, name string) (string, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "/")
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(clean))); err == nil {
		return clean, nil
	}
	full, err := FindFont(root, SearchTerm(clean))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
