package breathing

import (
	"time"

	"respira/internal/core/model"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventTick            EventType = "tick"
	EventPhaseChange     EventType = "phase_change"
	EventCycleComplete   EventType = "cycle_complete"
	EventTechniqueChange EventType = "technique_change"
	EventSessionEnded    EventType = "session_ended"
)

// Event represents an Engine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Snapshot is an immutable view of the session state.
type Snapshot struct {
	TechniqueID      model.TechniqueID
	Phase            model.Phase
	PhaseIndex       int
	PhaseCount       int
	SecondsRemaining int
	Active           bool
	CyclesCompleted  int
	Ended            bool
}

// Pristine reports whether the session has not run since the last reset.
func (snapshot Snapshot) Pristine() bool {
	return !snapshot.Active &&
		snapshot.CyclesCompleted == 0 &&
		snapshot.PhaseIndex == 0 &&
		snapshot.SecondsRemaining == snapshot.Phase.Duration
}

// PhaseProgress returns the elapsed fraction of the current phase.
func (snapshot Snapshot) PhaseProgress() float64 {
	if snapshot.Phase.Duration <= 0 {
		return 0
	}
	elapsed := snapshot.Phase.Duration - snapshot.SecondsRemaining
	return float64(elapsed) / float64(snapshot.Phase.Duration)
}
