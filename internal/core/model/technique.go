package model

import (
	"errors"
	"fmt"
)

// ErrInvalidTechnique indicates a technique that cannot drive a session.
var ErrInvalidTechnique = errors.New("invalid technique")

// PhaseType identifies what the user does during a phase.
type PhaseType string

const (
	PhaseInhale    PhaseType = "inhale"
	PhaseHold      PhaseType = "hold"
	PhaseExhale    PhaseType = "exhale"
	PhaseHoldEmpty PhaseType = "hold_empty"
)

// Valid reports whether the phase type is one of the known types.
func (phaseType PhaseType) Valid() bool {
	switch phaseType {
	case PhaseInhale, PhaseHold, PhaseExhale, PhaseHoldEmpty:
		return true
	default:
		return false
	}
}

// Phase is one timed segment of a breathing pattern.
type Phase struct {
	Type     PhaseType
	Duration int // seconds
	Label    string
}

// Technique is a named, ordered, repeating sequence of phases.
type Technique struct {
	ID          TechniqueID
	Name        string
	Description string
	Pattern     []Phase
}

// Validate checks the pattern invariants required by the engine.
func (technique Technique) Validate() error {
	if len(technique.Pattern) == 0 {
		return fmt.Errorf("%w: %q has no phases", ErrInvalidTechnique, technique.ID)
	}
	for index, phase := range technique.Pattern {
		if !phase.Type.Valid() {
			return fmt.Errorf("%w: %q phase %d has unknown type %q", ErrInvalidTechnique, technique.ID, index, phase.Type)
		}
		if phase.Duration < 1 {
			return fmt.Errorf("%w: %q phase %d has duration %d", ErrInvalidTechnique, technique.ID, index, phase.Duration)
		}
	}
	return nil
}

// CycleSeconds returns the length of one full traversal of the pattern.
func (technique Technique) CycleSeconds() int {
	total := 0
	for _, phase := range technique.Pattern {
		total += phase.Duration
	}
	return total
}

// Clone returns a copy that does not share the pattern slice.
func (technique Technique) Clone() Technique {
	technique.Pattern = append([]Phase(nil), technique.Pattern...)
	return technique
}
