package rbtranslations_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/mnlipp/rbtranslations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSource(t *testing.T) {
	source := &rbtranslations.MapSource{
		Data: map[string]map[string]string{
			"":   {"greeting": "Hello"},
			"de": {"greeting": "Hallo"},
		},
	}

	locales, err := source.Locales(context.Background(), "messages")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "de"}, locales)

	catalog, err := source.Load(context.Background(), "messages", "de")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", catalog["greeting"])

	_, err = source.Load(context.Background(), "messages", "fr")
	assert.ErrorIs(t, err, rbtranslations.ErrCatalogNotFound)
}

func TestDirSource(t *testing.T) {
	source := rbtranslations.NewDirSource("testdata")

	locales, err := source.Locales(context.Background(), "messages")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "de", "de_DE"}, locales)

	catalog, err := source.Load(context.Background(), "messages", "de")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", catalog["greeting"])
	assert.Equal(t, "%{count} Einträge", catalog["items.other"])

	base, err := source.Load(context.Background(), "messages", "")
	require.NoError(t, err)
	assert.Equal(t, "Hello", base["greeting"])

	_, err = source.Load(context.Background(), "messages", "fr")
	assert.ErrorIs(t, err, rbtranslations.ErrCatalogNotFound)
}

func TestDirSourceIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("messages.properties", "greeting = Hello\n")
	write("messages_de.properties", "greeting = Hallo\n")
	write("errors.properties", "boom = Boom\n")
	write("messages.txt", "not a catalog\n")
	write("README.md", "docs\n")

	source := rbtranslations.NewDirSource(dir)

	locales, err := source.Locales(context.Background(), "messages")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "de"}, locales)
}

func TestDirSourceMixedFormats(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("messages.properties", "greeting = Hello\n")
	write("messages_fr.yaml", "greeting: Bonjour\nnested:\n  deep: valeur\n")
	write("messages_es.json", `{"greeting": "Hola"}`)
	write("messages_it.toml", "greeting = \"Ciao\"\n")

	source := rbtranslations.NewDirSource(dir)

	locales, err := source.Locales(context.Background(), "messages")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "es", "fr", "it"}, locales)

	fr, err := source.Load(context.Background(), "messages", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", fr["greeting"])
	// Nested documents are flattened to dotted keys.
	assert.Equal(t, "valeur", fr["nested.deep"])

	es, err := source.Load(context.Background(), "messages", "es")
	require.NoError(t, err)
	assert.Equal(t, "Hola", es["greeting"])

	it, err := source.Load(context.Background(), "messages", "it")
	require.NoError(t, err)
	assert.Equal(t, "Ciao", it["greeting"])
}

func TestDirSourceMissingDirectory(t *testing.T) {
	source := rbtranslations.NewDirSource("does/not/exist")

	_, err := source.Locales(context.Background(), "messages")
	assert.ErrorIs(t, err, rbtranslations.ErrFailedToAccessDirectory)
}

func TestDirSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := rbtranslations.NewDirSource("testdata")
	_, err := source.Load(ctx, "messages", "de")
	assert.ErrorIs(t, err, rbtranslations.ErrLoadingCancelled)
}

func TestFSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"l10n/messages.properties":    {Data: []byte("greeting = Hello\n")},
		"l10n/messages_de.properties": {Data: []byte("greeting = Hallo\n")},
		"l10n/messages_fr.yml":        {Data: []byte("greeting: Bonjour\n")},
	}

	source := rbtranslations.NewFSSource(fsys, "l10n")

	locales, err := source.Locales(context.Background(), "messages")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "de", "fr"}, locales)

	catalog, err := source.Load(context.Background(), "messages", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", catalog["greeting"])

	_, err = source.Load(context.Background(), "messages", "it")
	assert.ErrorIs(t, err, rbtranslations.ErrCatalogNotFound)
}

func TestFSSourceRootDir(t *testing.T) {
	fsys := fstest.MapFS{
		"messages.properties": {Data: []byte("greeting = Hello\n")},
	}

	source := rbtranslations.NewFSSource(fsys, "")

	locales, err := source.Locales(context.Background(), "messages")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, locales)

	catalog, err := source.Load(context.Background(), "messages", "")
	require.NoError(t, err)
	assert.Equal(t, "Hello", catalog["greeting"])
}
