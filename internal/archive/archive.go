// Package archive writes exported documents to disk: one .conll file per
// document, optionally zipped for import into annotation tools.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is one rendered document.
type File struct {
	ID    string
	Conll string
}

// ConllName maps a provenance id to its output file name: everything before
// the first dot, plus ".conll".
func ConllName(id string) string {
	base := filepath.Base(id)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		base = "document"
	}
	return base + ".conll"
}

// WriteDir writes every file into dir, creating it if needed. Two ids that
// map to the same file name are rejected rather than silently overwritten.
func WriteDir(dir string, files []File) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create %s: %w", dir, err)
	}

	seen := make(map[string]string, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		name := ConllName(f.ID)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("archive: %q and %q both map to %s", prev, f.ID, name)
		}
		seen[name] = f.ID

		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(f.Conll), 0o644); err != nil {
			return nil, fmt.Errorf("archive: write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Zip archives the regular files of dir (non-recursively) into zipPath.
func Zip(dir, zipPath string) (err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("archive: read %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", zipPath, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	for _, name := range names {
		if err := addFile(zw, filepath.Join(dir, name), name); err != nil {
			return err
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("archive: open %s: %w", path, err)
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("archive: add %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("archive: copy %s: %w", name, err)
	}
	return nil
}
