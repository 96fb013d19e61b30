package session

import (
	"context"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"respira/internal/core/breathing"
	"respira/internal/ui/animation"
)

// Config defines session visuals.
type Config struct {
	ShowCountdown bool
	AnimateCircle bool
}

// View renders a breathing session and forwards user intents to the engine.
type View struct {
	engine      *breathing.Engine
	config      Config
	root        fyne.CanvasObject
	title       *canvas.Text
	dots        *fyne.Container
	circle      *canvas.Circle
	glow        *canvas.Circle
	stage       *circleLayout
	stageBox    *fyne.Container
	instruction *canvas.Text
	countdown   *canvas.Text
	cycles      *widget.Label
	toggle      *widget.Button
	animator    *animation.Engine
	cancelCtx   context.CancelFunc
	onFinish    func()

	mu      sync.Mutex
	last    breathing.Snapshot
	visual  animation.VisualState
	started bool
}

const (
	circleFraction = float32(0.55)
	glowScale      = float32(1.15)
)

// New creates a session view bound to engine.
func New(engine *breathing.Engine, config Config, onFinish func()) *View {
	title := canvas.NewText("", titleColor())
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 24

	glow := canvas.NewCircle(color.NRGBA{R: 0xe0, G: 0xf2, B: 0xfe, A: 0x66})
	circle := canvas.NewCircle(color.NRGBA{})
	circle.StrokeWidth = 2

	instruction := canvas.NewText("", color.White)
	instruction.Alignment = fyne.TextAlignCenter
	instruction.TextStyle = fyne.TextStyle{Bold: true}
	instruction.TextSize = 20

	countdown := canvas.NewText("", color.White)
	countdown.Alignment = fyne.TextAlignCenter
	countdown.TextSize = 48

	stage := &circleLayout{scale: 1}
	stageBox := container.New(stage, glow, circle, container.NewCenter(container.NewVBox(instruction, countdown)))

	view := &View{
		engine:      engine,
		config:      config,
		title:       title,
		dots:        container.NewHBox(),
		circle:      circle,
		glow:        glow,
		stage:       stage,
		stageBox:    stageBox,
		instruction: instruction,
		countdown:   countdown,
		cycles:      widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		onFinish:    onFinish,
	}

	view.toggle = widget.NewButton("", engine.Toggle)
	view.toggle.Importance = widget.HighImportance
	finish := widget.NewButton("Terminar", func() {
		engine.Stop()
	})
	finish.Importance = widget.LowImportance

	view.animator = animation.New(animation.DefaultConfig(), func(float32) {
		fyne.Do(func() {
			view.stage.scale = view.animator.Scale()
			view.stageBox.Refresh()
		})
	})

	controls := container.NewVBox(container.NewGridWithColumns(2, view.toggle, finish), view.cycles)
	header := container.NewVBox(title, container.NewCenter(view.dots))
	view.root = container.NewBorder(header, controls, nil, nil, stageBox)

	view.render(engine.Snapshot())
	return view
}

// Content returns the view's canvas object.
func (view *View) Content() fyne.CanvasObject {
	return view.root
}

// Attach starts following engine events until Detach.
func (view *View) Attach(events <-chan breathing.Event) {
	view.Detach()
	ctx, cancel := context.WithCancel(context.Background())
	view.cancelCtx = cancel

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				fyne.Do(func() {
					view.render(event.Snapshot)
				})
				if event.Type == breathing.EventSessionEnded && view.onFinish != nil {
					fyne.Do(view.onFinish)
				}
			}
		}
	}()
}

// Detach stops following events and animations.
func (view *View) Detach() {
	if view.cancelCtx != nil {
		view.cancelCtx()
		view.cancelCtx = nil
	}
	view.animator.Stop()
}

// UpdateConfig updates session visuals.
func (view *View) UpdateConfig(config Config) {
	view.config = config
	view.render(view.engine.Snapshot())
}

func (view *View) render(snapshot breathing.Snapshot) {
	technique := view.engine.Technique()
	view.title.Text = technique.Name
	view.title.Refresh()

	view.renderDots(snapshot)

	style := animation.StyleFor(snapshot.Phase.Type, snapshot.Active)
	view.circle.FillColor = style.Fill
	view.circle.StrokeColor = style.Stroke
	view.circle.Refresh()
	view.glow.Hidden = !snapshot.Active
	view.glow.Refresh()

	view.instruction.Text = InstructionText(snapshot)
	view.instruction.Refresh()
	if view.config.ShowCountdown {
		view.countdown.Text = CountdownText(snapshot)
	} else {
		view.countdown.Text = ""
	}
	view.countdown.Refresh()

	view.cycles.SetText(CyclesText(snapshot))
	view.toggle.SetText(ToggleText(snapshot))

	view.animate(snapshot, style)
}

func (view *View) animate(snapshot breathing.Snapshot, style animation.Style) {
	state := animation.StateFor(snapshot.Phase.Type, snapshot.Active)

	view.mu.Lock()
	changed := !view.started || state != view.visual || snapshot.PhaseIndex != view.last.PhaseIndex
	view.started = true
	view.visual = state
	view.last = snapshot
	view.mu.Unlock()

	if !changed {
		return
	}
	if !view.config.AnimateCircle {
		view.animator.Jump(style.Scale)
		return
	}
	if state == animation.StateIdle {
		view.animator.Settle(context.Background(), style.Scale)
		return
	}
	remaining := time.Duration(snapshot.SecondsRemaining) * time.Second
	view.animator.AnimateTo(context.Background(), style.Scale, remaining)
}

func (view *View) renderDots(snapshot breathing.Snapshot) {
	objects := make([]fyne.CanvasObject, 0, snapshot.PhaseCount)
	for index := 0; index < snapshot.PhaseCount; index++ {
		dot := canvas.NewRectangle(color.NRGBA{R: 0xcb, G: 0xd5, B: 0xe1, A: 0xff})
		dot.CornerRadius = 4
		size := fyne.NewSize(8, 8)
		if index == snapshot.PhaseIndex {
			dot.FillColor = color.NRGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}
			size = fyne.NewSize(32, 8)
		}
		dot.SetMinSize(size)
		objects = append(objects, dot)
	}
	view.dots.Objects = objects
	view.dots.Refresh()
}

func titleColor() color.Color {
	return color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
}

// circleLayout centers the glow, the circle and the text overlay, sizing the
// circle by the current animation scale.
type circleLayout struct {
	scale float32
}

func (layout *circleLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	glow := objects[0]
	circle := objects[1]
	overlay := objects[2]

	side := minFloat(size.Width, size.Height) * circleFraction
	scaled := side * layout.scale
	placeCentered(circle, size, scaled)
	placeCentered(glow, size, scaled*glowScale)
	placeCentered(overlay, size, side)
}

func (layout *circleLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	overlay := objects[2].MinSize()
	side := maxFloat(overlay.Width, overlay.Height) * 1.6
	return fyne.NewSize(side, side)
}

func placeCentered(object fyne.CanvasObject, size fyne.Size, side float32) {
	if side < 0 {
		side = 0
	}
	object.Resize(fyne.NewSize(side, side))
	object.Move(fyne.NewPos((size.Width-side)/2, (size.Height-side)/2))
}

func minFloat(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
