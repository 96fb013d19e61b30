package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTechniquesAreValid(t *testing.T) {
	for _, technique := range Techniques() {
		require.NoError(t, technique.Validate(), technique.ID)
	}
	assert.Len(t, Techniques(), 4)
}

func TestValidateRejectsBrokenPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern []Phase
	}{
		{name: "empty", pattern: nil},
		{name: "zero duration", pattern: []Phase{{Type: PhaseInhale, Duration: 0}}},
		{name: "negative duration", pattern: []Phase{{Type: PhaseInhale, Duration: 4}, {Type: PhaseExhale, Duration: -1}}},
		{name: "unknown type", pattern: []Phase{{Type: "sigh", Duration: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Technique{ID: "custom", Pattern: tt.pattern}.Validate()
			assert.ErrorIs(t, err, ErrInvalidTechnique)
		})
	}
}

func TestParseTechniqueID(t *testing.T) {
	id, err := ParseTechniqueID(" box_breathing ")
	require.NoError(t, err)
	assert.Equal(t, BoxBreathing, id)

	_, err = ParseTechniqueID("WIM_HOF")
	assert.ErrorIs(t, err, ErrUnknownTechnique)
}

func TestLookupReturnsIndependentCopy(t *testing.T) {
	first := MustLookup(Relax478)
	first.Pattern[0].Duration = 99

	second := MustLookup(Relax478)
	assert.Equal(t, 4, second.Pattern[0].Duration)
	assert.Equal(t, 19, second.CycleSeconds())
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("NOPE")
	assert.ErrorIs(t, err, ErrUnknownTechnique)
}
