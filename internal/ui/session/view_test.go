package session

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respira/internal/core/breathing"
	"respira/internal/core/model"
)

func newView(t *testing.T, config Config, onFinish func()) (*View, *breathing.Engine) {
	t.Helper()
	test.NewTempApp(t)
	engine, err := breathing.New(model.MustLookup(model.BoxBreathing), breathing.Config{TickInterval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	view := New(engine, config, onFinish)
	t.Cleanup(view.Detach)
	return view, engine
}

func TestUpdateConfigRerendersFromEngine(t *testing.T) {
	view, engine := newView(t, Config{ShowCountdown: true}, nil)
	assert.Equal(t, "Pulsa Iniciar", view.instruction.Text)
	assert.Equal(t, "Respiración en Caja", view.title.Text)
	assert.Len(t, view.dots.Objects, 4)

	engine.Start()
	view.UpdateConfig(Config{ShowCountdown: true})
	assert.Equal(t, "Inhala", view.instruction.Text)
	assert.Equal(t, "4", view.countdown.Text)
	assert.Equal(t, "Pausar", view.toggle.Text)

	view.UpdateConfig(Config{ShowCountdown: false})
	assert.Empty(t, view.countdown.Text)
	assert.Equal(t, float32(1.3), view.animator.Scale())
}

func TestAttachFollowsEventsUntilSessionEnds(t *testing.T) {
	finished := make(chan struct{}, 1)
	view, engine := newView(t, Config{ShowCountdown: true}, func() {
		finished <- struct{}{}
	})
	view.Attach(engine.Subscribe(8))

	engine.Start()
	engine.Tick()
	engine.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("session end was not reported")
	}
}
