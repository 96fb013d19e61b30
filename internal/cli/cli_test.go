package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respira/internal/config"
	"respira/internal/core/model"
	"respira/internal/recommend"
)

// isolate keeps the user's real config file and API key out of the run.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("RESPIRA_RECOMMEND_PROVIDER", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(&bytes.Buffer{})
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestTechniquesListsCatalog(t *testing.T) {
	isolate(t)

	out, err := execute(t, "techniques")
	require.NoError(t, err)
	for _, technique := range model.Techniques() {
		assert.Contains(t, out, string(technique.ID))
		assert.Contains(t, out, technique.Name)
	}
	assert.Contains(t, out, "4-7-8")
	assert.Contains(t, out, "4-4-4-4")
}

func TestRecommendWithKeywordProvider(t *testing.T) {
	isolate(t)

	out, err := execute(t, "recommend", "--provider", "keyword", "--emotion", "Tengo un ataque de pánico")
	require.NoError(t, err)
	assert.Contains(t, out, "Técnica 4-7-8 (RELAX_4_7_8)")
	assert.Contains(t, out, "Inhala por la nariz 4s")
}

func TestRecommendJSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "recommend", "--provider", "keyword", "--json", "me", "cuesta", "concentrarme")
	require.NoError(t, err)

	var rec recommend.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, model.BoxBreathing, rec.TechniqueID)
	assert.NotEmpty(t, rec.Reasoning)
}

func TestRecommendRequiresInput(t *testing.T) {
	isolate(t)

	_, err := execute(t, "recommend", "--provider", "keyword")
	assert.Error(t, err)
}

func TestUnknownProvider(t *testing.T) {
	isolate(t)

	_, err := execute(t, "recommend", "--provider", "oracle", "--emotion", "Tengo miedo")
	assert.ErrorContains(t, err, "oracle")
}

func TestBreatheRejectsBadFlags(t *testing.T) {
	isolate(t)

	_, err := execute(t, "breathe", "--technique", "SQUARE")
	assert.ErrorIs(t, err, model.ErrUnknownTechnique)

	_, err = execute(t, "breathe", "--technique", "box_breathing", "--cycles", "-1")
	assert.Error(t, err)
}

func TestNewProviderWithoutKeyFallsBackToKeywords(t *testing.T) {
	t.Setenv("RESPIRA_TEST_KEY", "")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := newProvider(context.Background(), config.RecommendConfig{
		Provider:  config.ProviderGemini,
		APIKeyEnv: "RESPIRA_TEST_KEY",
	}, logger)
	require.NoError(t, err)
	assert.IsType(t, &recommend.KeywordProvider{}, provider)
}

func TestPatternString(t *testing.T) {
	assert.Equal(t, "5-5", patternString(model.MustLookup(model.Diaphragmatic)))
	assert.Equal(t, "6-6", patternString(model.MustLookup(model.SlowPaced)))
}
