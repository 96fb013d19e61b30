package screens

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"respira/internal/core/model"
)

func TestPatternSummary(t *testing.T) {
	assert.Equal(t, "4s inhala · 7s mantén · 8s exhala", PatternSummary(model.MustLookup(model.Relax478)))
	assert.Equal(t, "4s inhala · 4s mantén · 4s exhala · 4s espera", PatternSummary(model.MustLookup(model.BoxBreathing)))
}

func TestFinishedMessage(t *testing.T) {
	assert.Contains(t, FinishedMessage(0), "Vuelve")
	assert.Equal(t, "Has completado 1 ciclo de respiración.", FinishedMessage(1))
	assert.Equal(t, "Has completado 3 ciclos de respiración.", FinishedMessage(3))
}
