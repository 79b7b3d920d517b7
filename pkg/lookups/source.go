package lookups

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format is the on-disk encoding of a lookup source.
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// FormatFromPath infers the encoding from a file extension. Anything that is
// not a msgpack extension is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk", ".mp":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// Source is a named lookup table on disk with an explicit category.
type Source struct {
	Name     string
	Category Category
	Path     string
	Format   Format
}

// NewFileSource builds a Source whose name and format derive from path.
func NewFileSource(path string, category Category) Source {
	base := filepath.Base(path)
	return Source{
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
		Category: category,
		Path:     path,
		Format:   FormatFromPath(path),
	}
}

// DiscoverSources lists the lookup files in dir and categorizes them by file
// name (see CategoryFromName). Files that match no category are ignored.
// The result is sorted by file name so later files override earlier ones
// deterministically.
func DiscoverSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("lookups: read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var sources []Source
	for _, name := range names {
		cat, ok := CategoryFromName(name)
		if !ok {
			continue
		}
		sources = append(sources, NewFileSource(filepath.Join(dir, name), cat))
	}
	return sources, nil
}
