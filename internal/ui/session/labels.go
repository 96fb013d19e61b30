package session

import (
	"fmt"
	"strconv"

	"respira/internal/core/breathing"
)

// InstructionText is the line shown inside the breathing circle.
func InstructionText(snapshot breathing.Snapshot) string {
	if snapshot.Pristine() {
		return "Pulsa Iniciar"
	}
	return snapshot.Phase.Label
}

// ToggleText is the label of the start/pause button.
func ToggleText(snapshot breathing.Snapshot) string {
	switch {
	case snapshot.Active:
		return "Pausar"
	case snapshot.Pristine():
		return "Iniciar"
	default:
		return "Continuar"
	}
}

// CountdownText renders the seconds left in the phase, empty while paused.
func CountdownText(snapshot breathing.Snapshot) string {
	if !snapshot.Active {
		return ""
	}
	return strconv.Itoa(snapshot.SecondsRemaining)
}

// CyclesText renders the completed cycle counter, empty before the first one.
func CyclesText(snapshot breathing.Snapshot) string {
	if snapshot.CyclesCompleted == 0 {
		return ""
	}
	return fmt.Sprintf("Ciclos completados: %d", snapshot.CyclesCompleted)
}
