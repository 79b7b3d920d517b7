package docstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("Roma"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("New York"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	s := New()
	n, err := s.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{"a.txt", "b.txt"}, s.AllIDs())
	assert.Equal(t, "Roma", s.Get("b.txt").Text)
	assert.Equal(t, []Document{{ID: "a.txt", Text: "New York"}, {ID: "b.txt", Text: "Roma"}}, s.All())
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := New().LoadDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestUpsertRemove(t *testing.T) {
	s := New()
	s.Upsert("x", "one")
	s.Upsert("x", "two")
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, "two", s.Get("x").Text)

	s.Remove("x")
	assert.Nil(t, s.Get("x"))

	s.Hydrate([]Document{{ID: "a"}, {ID: "b"}})
	s.Clear()
	assert.Equal(t, 0, s.Count())
}
