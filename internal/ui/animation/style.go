package animation

import (
	"fmt"
	"image/color"

	"respira/internal/core/model"
)

// VisualState is what the breathing circle currently depicts.
type VisualState string

// StateIdle is shown whenever the session is not counting down.
const StateIdle VisualState = "idle"

// Style describes how the breathing circle is drawn.
type Style struct {
	Fill   color.NRGBA
	Stroke color.NRGBA
	Scale  float32
}

var (
	sky200   = rgb(0xba, 0xe6, 0xfd)
	sky400   = rgb(0x38, 0xbd, 0xf8)
	sky600   = rgb(0x02, 0x84, 0xc7)
	ocean300 = rgb(0x5b, 0x9b, 0xd5)
	ocean500 = rgb(0x1e, 0x5f, 0xa8)
	mist100  = rgb(0xf1, 0xf5, 0xf9)
	mist200  = rgb(0xe2, 0xe8, 0xf0)
	mist300  = rgb(0xcb, 0xd5, 0xe1)
	mist400  = rgb(0x94, 0xa3, 0xb8)
)

var styles = map[VisualState]Style{
	VisualState(model.PhaseInhale):    {Fill: sky400, Stroke: sky200, Scale: 1.3},
	VisualState(model.PhaseHold):      {Fill: sky600, Stroke: sky400, Scale: 1.35},
	VisualState(model.PhaseExhale):    {Fill: ocean500, Stroke: ocean300, Scale: 0.85},
	VisualState(model.PhaseHoldEmpty): {Fill: mist400, Stroke: mist300, Scale: 0.85},
	StateIdle:                         {Fill: mist200, Stroke: mist100, Scale: 1.0},
}

// StateFor projects the phase and activity onto a visual state.
func StateFor(phaseType model.PhaseType, active bool) VisualState {
	if !active || !phaseType.Valid() {
		return StateIdle
	}
	return VisualState(phaseType)
}

// StyleFor returns the circle style for the phase and activity.
func StyleFor(phaseType model.PhaseType, active bool) Style {
	return styles[StateFor(phaseType, active)]
}

// Hex returns the colour as #rrggbb, the form terminal renderers expect.
func Hex(value color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", value.R, value.G, value.B)
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
