package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"respira/internal/core/model"
	"respira/internal/recommend"
)

func TestDefaultSettingsRecommendOptions(t *testing.T) {
	options := DefaultSettings().RecommendOptions()
	assert.Equal(t, model.BoxBreathing, options.Fallback)
	assert.Equal(t, recommend.DefaultTimeout, options.Timeout)
}

func TestTechniqueNameLookupRoundTrip(t *testing.T) {
	for _, id := range model.TechniqueIDs {
		got, ok := techniqueByName(techniqueName(id))
		assert.True(t, ok, id)
		assert.Equal(t, id, got)
	}
	_, ok := techniqueByName("Yoga")
	assert.False(t, ok)
}

func TestParsePositiveInt(t *testing.T) {
	value, ok := parsePositiveInt("12")
	assert.True(t, ok)
	assert.Equal(t, 12, value)

	for _, input := range []string{"", "0", "-3", "ten"} {
		_, ok := parsePositiveInt(input)
		assert.False(t, ok, input)
	}
}
