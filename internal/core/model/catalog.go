package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTechnique indicates an identifier outside the catalog.
var ErrUnknownTechnique = errors.New("unknown technique")

// TechniqueID is the stable identifier of a catalog technique.
type TechniqueID string

const (
	Relax478      TechniqueID = "RELAX_4_7_8"
	BoxBreathing  TechniqueID = "BOX_BREATHING"
	Diaphragmatic TechniqueID = "DIAPHRAGMATIC"
	SlowPaced     TechniqueID = "SLOW_PACED"
)

// TechniqueIDs lists every catalog identifier in display order.
var TechniqueIDs = []TechniqueID{Relax478, BoxBreathing, Diaphragmatic, SlowPaced}

// EmotionOptions are the preset answers offered by the check-in screen.
var EmotionOptions = []string{
	"Estoy nerviosa",
	"Estoy alterada",
	"Tengo un ataque de pánico",
	"Tengo miedo",
	"Necesito relajarme",
}

var catalog = map[TechniqueID]Technique{
	Relax478: {
		ID:          Relax478,
		Name:        "Técnica 4-7-8",
		Description: "Ideal para la ansiedad severa y ataques de pánico. Actúa como un tranquilizante natural para el sistema nervioso.",
		Pattern: []Phase{
			{Type: PhaseInhale, Duration: 4, Label: "Inhala por la nariz"},
			{Type: PhaseHold, Duration: 7, Label: "Mantén el aire"},
			{Type: PhaseExhale, Duration: 8, Label: "Exhala por la boca"},
		},
	},
	BoxBreathing: {
		ID:          BoxBreathing,
		Name:        "Respiración en Caja",
		Description: "Perfecta para recuperar la concentración y calmar los nervios. Utilizada por profesionales en situaciones de alto estrés.",
		Pattern: []Phase{
			{Type: PhaseInhale, Duration: 4, Label: "Inhala"},
			{Type: PhaseHold, Duration: 4, Label: "Mantén"},
			{Type: PhaseExhale, Duration: 4, Label: "Exhala"},
			{Type: PhaseHoldEmpty, Duration: 4, Label: "Espera vacío"},
		},
	},
	Diaphragmatic: {
		ID:          Diaphragmatic,
		Name:        "Respiración Diafragmática",
		Description: "Ayuda a reducir el cortisol y bajar el ritmo cardíaco. Enfócate en inflar tu abdomen, no tu pecho.",
		Pattern: []Phase{
			{Type: PhaseInhale, Duration: 5, Label: "Inhala profundo (infla abdomen)"},
			{Type: PhaseExhale, Duration: 5, Label: "Exhala lento"},
		},
	},
	SlowPaced: {
		ID:          SlowPaced,
		Name:        "Respiración Lenta Constante",
		Description: "Equilibra tu sistema nervioso cuando te sientes alterado pero no en pánico.",
		Pattern: []Phase{
			{Type: PhaseInhale, Duration: 6, Label: "Inhala suavemente"},
			{Type: PhaseExhale, Duration: 6, Label: "Exhala suavemente"},
		},
	},
}

// ParseTechniqueID normalizes and validates an identifier.
func ParseTechniqueID(value string) (TechniqueID, error) {
	id := TechniqueID(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := catalog[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTechnique, value)
	}
	return id, nil
}

// Lookup returns a copy of the catalog technique with the given id.
func Lookup(id TechniqueID) (Technique, error) {
	technique, ok := catalog[id]
	if !ok {
		return Technique{}, fmt.Errorf("%w: %q", ErrUnknownTechnique, id)
	}
	return technique.Clone(), nil
}

// MustLookup returns a catalog technique or panics.
func MustLookup(id TechniqueID) Technique {
	technique, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return technique
}

// Techniques returns every catalog technique in display order.
func Techniques() []Technique {
	techniques := make([]Technique, 0, len(TechniqueIDs))
	for _, id := range TechniqueIDs {
		techniques = append(techniques, MustLookup(id))
	}
	return techniques
}
