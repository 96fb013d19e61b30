package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respira/internal/core/model"
	"respira/internal/ui/preferences"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(t.TempDir(), "Respira")

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), "Respira")
	want := preferences.Settings{
		FallbackTechnique: model.Diaphragmatic,
		RecommendTimeout:  4 * time.Second,
		ShowCountdown:     false,
		AnimateCircle:     false,
	}

	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadIgnoresOutOfRangeValues(t *testing.T) {
	store := NewStore(t.TempDir(), "Respira")
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	content := "fallback_technique: YOGA\nrecommend_timeout_seconds: 600\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o644))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadRejectsBrokenYaml(t *testing.T) {
	store := NewStore(t.TempDir(), "Respira")
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("show_countdown: [unclosed"), 0o644))

	settings, err := store.Load()
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
