package breathing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"respira/internal/core/model"
)

// ErrClosed indicates the Engine has been shut down.
var ErrClosed = errors.New("engine closed")

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
}

// Engine is the phase-cycle state machine that drives a breathing session.
//
// All operations serialize on a single mutex, so a tick is atomic with respect
// to Pause, Stop and ReplaceTechnique. Each ticker run carries a generation
// number; cancelling bumps the generation and waits for the ticker goroutine
// to exit, so a superseded ticker can never mutate the session.
type Engine struct {
	mu         sync.Mutex
	options    Config
	technique  model.Technique
	phaseIndex int
	remaining  int
	active     bool
	cycles     int
	ended      bool
	closed     bool
	generation uint64
	stopCh     chan struct{}
	doneCh     chan struct{}
	events     []chan Event
}

// New creates an Engine for the given technique.
func New(technique model.Technique, options Config) (*Engine, error) {
	if err := technique.Validate(); err != nil {
		return nil, err
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	engine := &Engine{options: options}
	engine.resetLocked(technique)
	return engine, nil
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Start begins the countdown. Calling it on an active session is a no-op.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.active || engine.ended || engine.closed {
		return
	}
	engine.active = true
	engine.startTickerLocked()
	engine.emitLocked(EventStateChange, time.Now())
}

// Resume continues a paused session from the frozen remaining time.
func (engine *Engine) Resume() {
	engine.Start()
}

// Pause freezes the countdown without touching the phase or remaining time.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	if !engine.active {
		engine.mu.Unlock()
		return
	}
	engine.active = false
	done := engine.cancelTickerLocked()
	engine.emitLocked(EventStateChange, time.Now())
	engine.mu.Unlock()

	waitDone(done)
}

// Toggle pauses an active session and starts an inactive one.
func (engine *Engine) Toggle() {
	if engine.Snapshot().Active {
		engine.Pause()
		return
	}
	engine.Start()
}

// Stop ends the session. Counters stay readable through Snapshot.
// The session-ended event fires once; later calls are no-ops until the
// technique is replaced.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.ended || engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.active = false
	engine.ended = true
	done := engine.cancelTickerLocked()
	engine.emitLocked(EventSessionEnded, time.Now())
	engine.mu.Unlock()

	waitDone(done)
}

// ReplaceTechnique discards the session and starts over with technique.
// An invalid technique is rejected and the current session is kept.
func (engine *Engine) ReplaceTechnique(technique model.Technique) error {
	if err := technique.Validate(); err != nil {
		return fmt.Errorf("replace technique: %w", err)
	}

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return ErrClosed
	}
	done := engine.cancelTickerLocked()
	engine.resetLocked(technique)
	engine.emitLocked(EventTechniqueChange, time.Now())
	engine.mu.Unlock()

	waitDone(done)
	return nil
}

// Close stops the ticker and closes all observer channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.active = false
	done := engine.cancelTickerLocked()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	waitDone(done)
	for _, ch := range events {
		close(ch)
	}
}

// Tick advances the countdown by one second. It does nothing while paused.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.active {
		return
	}
	engine.advanceLocked(time.Now())
}

// Snapshot returns the current session state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Technique returns the technique driving the session.
func (engine *Engine) Technique() model.Technique {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.technique.Clone()
}

func (engine *Engine) run(generation uint64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case tickTime := <-ticker.C:
			engine.tickGeneration(generation, tickTime)
		}
	}
}

func (engine *Engine) tickGeneration(generation uint64, tickTime time.Time) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if generation != engine.generation || !engine.active {
		return
	}
	engine.advanceLocked(tickTime)
}

func (engine *Engine) advanceLocked(now time.Time) {
	if engine.remaining > 1 {
		engine.remaining--
		engine.emitLocked(EventTick, now)
		return
	}

	nextIndex := (engine.phaseIndex + 1) % len(engine.technique.Pattern)
	wrapped := nextIndex == 0
	if wrapped {
		engine.cycles++
	}
	engine.phaseIndex = nextIndex
	engine.remaining = engine.technique.Pattern[nextIndex].Duration

	engine.emitLocked(EventPhaseChange, now)
	if wrapped {
		engine.emitLocked(EventCycleComplete, now)
	}
}

func (engine *Engine) resetLocked(technique model.Technique) {
	engine.technique = technique.Clone()
	engine.phaseIndex = 0
	engine.remaining = engine.technique.Pattern[0].Duration
	engine.cycles = 0
	engine.active = false
	engine.ended = false
}

func (engine *Engine) startTickerLocked() {
	engine.generation++
	engine.stopCh = make(chan struct{})
	engine.doneCh = make(chan struct{})
	go engine.run(engine.generation, engine.stopCh, engine.doneCh)
}

// cancelTickerLocked invalidates the running ticker and returns a channel
// that closes once its goroutine has exited. The caller must wait on it
// after releasing the lock.
func (engine *Engine) cancelTickerLocked() <-chan struct{} {
	engine.generation++
	if engine.stopCh == nil {
		return nil
	}
	close(engine.stopCh)
	done := engine.doneCh
	engine.stopCh = nil
	engine.doneCh = nil
	return done
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		TechniqueID:      engine.technique.ID,
		Phase:            engine.technique.Pattern[engine.phaseIndex],
		PhaseIndex:       engine.phaseIndex,
		PhaseCount:       len(engine.technique.Pattern),
		SecondsRemaining: engine.remaining,
		Active:           engine.active,
		CyclesCompleted:  engine.cycles,
		Ended:            engine.ended,
	}
}

func (engine *Engine) emitLocked(eventType EventType, at time.Time) {
	event := Event{
		Type:     eventType,
		Snapshot: engine.snapshotLocked(),
		At:       at,
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func waitDone(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}
