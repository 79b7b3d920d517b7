package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/conllkit/pkg/lookups"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conllkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "latin"
tokenizer = "whitespace"
misc = true
workers = 2
extra_tags = ["CITY"]

[[lookup]]
name = "lemmas"
path = "lookups/la_lemma.json"
category = "lemma"

[[lookup]]
path = "/abs/la_ents.msgpack"
category = "entity"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "latin", cfg.Name)
	assert.Equal(t, "whitespace", cfg.Tokenizer)
	assert.True(t, cfg.Misc)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{"CITY"}, cfg.ExtraTags)
	assert.Equal(t, "conll_export", cfg.Output, "unset keys keep defaults")

	sources, err := cfg.Sources()
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "lemmas", sources[0].Name)
	assert.Equal(t, lookups.CategoryLemma, sources[0].Category)
	assert.Equal(t, filepath.Join(dir, "lookups", "la_lemma.json"), sources[0].Path)

	assert.Equal(t, "la_ents", sources[1].Name)
	assert.Equal(t, lookups.CategoryEntity, sources[1].Category)
	assert.Equal(t, lookups.FormatMsgpack, sources[1].Format)
	assert.Equal(t, "/abs/la_ents.msgpack", sources[1].Path)
}

func TestLoad_BadCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[lookup]]
path = "x.json"
category = "morph"
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Workers = -1
	cfg.Tokenizer = ""
	cfg.Lookups = []Lookup{{Category: lookups.CategoryLemma}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "tokenizer")
	assert.Contains(t, err.Error(), "path must be set")
}

func TestSources_Discovery(t *testing.T) {
	dir := t.TempDir()
	lookupsDir := filepath.Join(dir, "lookups")
	require.NoError(t, os.Mkdir(lookupsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lookupsDir, "la_pos.json"), []byte(`{}`), 0o644))

	cfg := Default()
	cfg.LookupsDir = lookupsDir

	sources, err := cfg.Sources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, lookups.CategoryPOS, sources[0].Category)

	cfg.LookupsDir = filepath.Join(dir, "missing")
	_, err = cfg.Sources()
	assert.Error(t, err)
}
