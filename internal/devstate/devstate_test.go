package devstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableAndClear(t *testing.T) {
	s := New(t.TempDir())

	assert.False(t, s.Enabled())

	require.NoError(t, s.Enable())
	assert.True(t, s.Enabled())

	require.NoError(t, s.Clear())
	assert.False(t, s.Enabled())
}

func TestClearIsIdempotent(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}

func TestFlagFileContents(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.Enable())

	data, err := os.ReadFile(filepath.Join(dir, Key))
	require.NoError(t, err)
	assert.Equal(t, "true", string(data))
}

func TestGarbageFlagFileIsInactive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Key), []byte("yes"), 0600))

	assert.False(t, New(dir).Enabled())
}
