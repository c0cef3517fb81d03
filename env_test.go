package rbtranslations_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnlipp/rbtranslations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.properties"),
		[]byte("greeting = Hello\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages_de.properties"),
		[]byte("greeting = Hallo\n"), 0o644))

	t.Setenv("RBTRANSLATIONS_DIR", dir)
	t.Setenv("RBTRANSLATIONS_DEFAULT_LOCALE", "de")

	translator, err := rbtranslations.NewFromEnv(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "messages", translator.Basename())
	assert.Equal(t, "de", translator.DefaultLocale())
	// Unknown locales fall back to the configured default.
	assert.Equal(t, "Hallo", translator.T("ja", "greeting"))
}

func TestNewFromEnvCustomBasename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "errors.properties"),
		[]byte("io = I/O failure\n"), 0o644))

	t.Setenv("RBTRANSLATIONS_DIR", dir)
	t.Setenv("RBTRANSLATIONS_BASENAME", "errors")

	translator, err := rbtranslations.NewFromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "I/O failure", translator.T("en", "io"))
}

func TestNewFromEnvMissingDir(t *testing.T) {
	t.Setenv("RBTRANSLATIONS_DIR", "")

	_, err := rbtranslations.NewFromEnv(context.Background())
	assert.Error(t, err)
}

func TestNewFromEnvOptionsOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.properties"),
		[]byte("greeting = Hello\n"), 0o644))

	t.Setenv("RBTRANSLATIONS_DIR", dir)

	translator, err := rbtranslations.NewFromEnv(context.Background(),
		rbtranslations.WithFallbackToKey(false))
	require.NoError(t, err)

	assert.Equal(t, "", translator.T("en", "missing.key"))
}
