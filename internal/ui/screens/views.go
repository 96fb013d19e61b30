package screens

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"respira/internal/core/model"
	"respira/internal/recommend"
)

// Callbacks defines the user intents the views forward.
type Callbacks struct {
	OnBegin          func()
	OnEmotion        func(string)
	OnDescription    func(string)
	OnSubmit         func()
	OnStartBreathing func()
	OnReset          func()
}

// Welcome builds the landing view.
func Welcome(callbacks Callbacks, logo fyne.Resource) fyne.CanvasObject {
	image := canvas.NewImageFromResource(logo)
	image.FillMode = canvas.ImageFillContain
	image.SetMinSize(fyne.NewSize(144, 144))

	title := widget.NewLabelWithStyle("Respira Contigo", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle("Tu espacio seguro para recuperar la calma y respirar mejor.", fyne.TextAlignCenter, fyne.TextStyle{})
	subtitle.Wrapping = fyne.TextWrapWord

	begin := widget.NewButton("Comenzar", func() { call(callbacks.OnBegin) })
	begin.Importance = widget.HighImportance

	return container.NewCenter(container.NewVBox(image, title, subtitle, begin))
}

// Input builds the check-in view.
func Input(callbacks Callbacks, req recommend.Request) fyne.CanvasObject {
	submit := widget.NewButton("Continuar", func() { call(callbacks.OnSubmit) })
	submit.Importance = widget.HighImportance

	current := req
	refresh := func() {
		if current.Empty() {
			submit.Disable()
			return
		}
		submit.Enable()
	}

	emotions := widget.NewRadioGroup(model.EmotionOptions, func(selected string) {
		current.Emotion = selected
		if callbacks.OnEmotion != nil {
			callbacks.OnEmotion(selected)
		}
		refresh()
	})
	emotions.SetSelected(req.Emotion)

	description := widget.NewMultiLineEntry()
	description.SetPlaceHolder("Ej: Siento un nudo en el pecho...")
	description.SetMinRowsVisible(3)
	description.Wrapping = fyne.TextWrapWord
	description.SetText(req.Description)
	description.OnChanged = func(text string) {
		current.Description = text
		if callbacks.OnDescription != nil {
			callbacks.OnDescription(text)
		}
		refresh()
	}
	refresh()

	return container.NewBorder(
		widget.NewLabelWithStyle("¿Cómo te sientes ahora?", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		submit,
		nil,
		nil,
		container.NewVBox(
			emotions,
			widget.NewLabel("¿Quieres contarlo con tus palabras? (opcional)"),
			description,
		),
	)
}

// Loading builds the view shown while the recommendation resolves.
func Loading() fyne.CanvasObject {
	progress := widget.NewProgressBarInfinite()
	return container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle("Analizando tu estado...", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Buscando la técnica ideal para ti", fyne.TextAlignCenter, fyne.TextStyle{}),
		progress,
	))
}

// Recommendation builds the view that presents the chosen technique.
func Recommendation(callbacks Callbacks, technique model.Technique, rec recommend.Recommendation) fyne.CanvasObject {
	reasoning := widget.NewLabel(rec.Reasoning)
	reasoning.Wrapping = fyne.TextWrapWord

	description := widget.NewLabel(technique.Description)
	description.Wrapping = fyne.TextWrapWord

	start := widget.NewButton("Empezar a respirar", func() { call(callbacks.OnStartBreathing) })
	start.Importance = widget.HighImportance
	back := widget.NewButton("Volver", func() { call(callbacks.OnReset) })
	back.Importance = widget.LowImportance

	return container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle("Te recomendamos", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		widget.NewLabelWithStyle(technique.Name, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		reasoning,
		description,
		widget.NewLabelWithStyle(PatternSummary(technique), fyne.TextAlignCenter, fyne.TextStyle{Monospace: true}),
		start,
		back,
	))
}

// Finished builds the closing view.
func Finished(callbacks Callbacks, cycles int) fyne.CanvasObject {
	again := widget.NewButton("Volver al inicio", func() { call(callbacks.OnReset) })
	again.Importance = widget.HighImportance

	return container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle("Bien hecho", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(FinishedMessage(cycles), fyne.TextAlignCenter, fyne.TextStyle{}),
		again,
	))
}

// PatternSummary renders a pattern as "4s inhala · 7s mantén · ...".
func PatternSummary(technique model.Technique) string {
	parts := make([]string, 0, len(technique.Pattern))
	for _, phase := range technique.Pattern {
		parts = append(parts, fmt.Sprintf("%ds %s", phase.Duration, strings.ToLower(phaseVerb(phase.Type))))
	}
	return strings.Join(parts, " · ")
}

// FinishedMessage summarizes a completed session.
func FinishedMessage(cycles int) string {
	switch cycles {
	case 0:
		return "Cada respiración cuenta. Vuelve cuando lo necesites."
	case 1:
		return "Has completado 1 ciclo de respiración."
	default:
		return fmt.Sprintf("Has completado %d ciclos de respiración.", cycles)
	}
}

func phaseVerb(phaseType model.PhaseType) string {
	switch phaseType {
	case model.PhaseInhale:
		return "Inhala"
	case model.PhaseHold:
		return "Mantén"
	case model.PhaseExhale:
		return "Exhala"
	case model.PhaseHoldEmpty:
		return "Espera"
	default:
		return string(phaseType)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
