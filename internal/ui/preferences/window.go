package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"respira/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	fallback      *widget.Select
	timeout       *widget.Entry
	showCountdown *widget.Check
	animate       *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Respira · Preferencias")

	fallback := widget.NewSelect(techniqueNames(), nil)
	timeout := widget.NewEntry()
	showCountdown := widget.NewCheck("Mostrar la cuenta atrás", nil)
	animate := widget.NewCheck("Animar el círculo", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Recomendación", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Técnica si no hay conexión"),
		fallback,
		container.NewHBox(widget.NewLabel("Tiempo máximo de espera"), timeout, widget.NewLabel("seg")),
		widget.NewLabelWithStyle("Sesión", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		showCountdown,
		animate,
	)

	saveButton := widget.NewButton("Guardar", nil)
	cancelButton := widget.NewButton("Cancelar", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 320))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		fallback:      fallback,
		timeout:       timeout,
		showCountdown: showCountdown,
		animate:       animate,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.fallback.SetSelected(techniqueName(settings.FallbackTechnique))
	prefs.timeout.SetText(fmt.Sprintf("%d", int(settings.RecommendTimeout.Seconds())))
	prefs.showCountdown.SetChecked(settings.ShowCountdown)
	prefs.animate.SetChecked(settings.AnimateCircle)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if id, ok := techniqueByName(prefs.fallback.Selected); ok {
		settings.FallbackTechnique = id
	}
	if seconds, ok := parsePositiveInt(prefs.timeout.Text); ok {
		settings.RecommendTimeout = time.Duration(seconds) * time.Second
	}
	settings.ShowCountdown = prefs.showCountdown.Checked
	settings.AnimateCircle = prefs.animate.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func techniqueNames() []string {
	names := make([]string, 0, len(model.TechniqueIDs))
	for _, technique := range model.Techniques() {
		names = append(names, technique.Name)
	}
	return names
}

func techniqueName(id model.TechniqueID) string {
	technique, err := model.Lookup(id)
	if err != nil {
		return ""
	}
	return technique.Name
}

func techniqueByName(name string) (model.TechniqueID, bool) {
	for _, technique := range model.Techniques() {
		if technique.Name == name {
			return technique.ID, true
		}
	}
	return "", false
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
