package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respira/internal/core/breathing"
	"respira/internal/core/model"
)

func TestLabelsFollowSessionLifecycle(t *testing.T) {
	engine, err := breathing.New(model.MustLookup(model.Relax478), breathing.Config{TickInterval: time.Hour})
	require.NoError(t, err)
	defer engine.Close()

	snap := engine.Snapshot()
	assert.Equal(t, "Pulsa Iniciar", InstructionText(snap))
	assert.Equal(t, "Iniciar", ToggleText(snap))
	assert.Empty(t, CountdownText(snap))
	assert.Empty(t, CyclesText(snap))

	engine.Start()
	snap = engine.Snapshot()
	assert.Equal(t, "Inhala por la nariz", InstructionText(snap))
	assert.Equal(t, "Pausar", ToggleText(snap))
	assert.Equal(t, "4", CountdownText(snap))

	for i := 0; i < 20; i++ {
		engine.Tick()
	}
	engine.Pause()
	snap = engine.Snapshot()
	assert.Equal(t, "Continuar", ToggleText(snap))
	assert.Equal(t, "Inhala por la nariz", InstructionText(snap))
	assert.Empty(t, CountdownText(snap))
	assert.Equal(t, "Ciclos completados: 1", CyclesText(snap))
}
