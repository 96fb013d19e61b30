package terminal

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"respira/internal/core/breathing"
	"respira/internal/core/model"
	"respira/internal/recommend"
)

// ErrAborted is returned when the user leaves the check-in form.
var ErrAborted = errors.New("check-in aborted")

// CheckIn asks how the user feels and returns the resulting request.
func CheckIn(ctx context.Context, in io.Reader, out io.Writer) (recommend.Request, error) {
	var req recommend.Request

	options := make([]huh.Option[string], 0, len(model.EmotionOptions)+1)
	options = append(options, huh.NewOption("Prefiero no elegir", ""))
	for _, emotion := range model.EmotionOptions {
		options = append(options, huh.NewOption(emotion, emotion))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("¿Cómo te sientes ahora?").
				Options(options...).
				Value(&req.Emotion),
			huh.NewText().
				Title("Cuéntanos un poco más (opcional)").
				CharLimit(500).
				Value(&req.Description),
		),
	).WithInput(in).WithOutput(out)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return recommend.Request{}, ErrAborted
		}
		return recommend.Request{}, err
	}
	return req, nil
}

// Run drives a breathing session in the terminal until it ends and returns
// the final snapshot.
func Run(ctx context.Context, engine *breathing.Engine, options Options, in io.Reader, out io.Writer) (breathing.Snapshot, error) {
	program := tea.NewProgram(NewModel(engine, options),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	engine.Stop()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return engine.Snapshot(), err
	}
	if m, ok := final.(Model); ok && m.snapshot.Ended {
		return m.snapshot, nil
	}
	return engine.Snapshot(), nil
}
