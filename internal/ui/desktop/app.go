// Package desktop runs the fyne application: check-in, recommendation and
// breathing session in one window, with a tray menu and preferences.
package desktop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/google/uuid"

	"respira/internal/core/breathing"
	"respira/internal/core/model"
	"respira/internal/platform"
	"respira/internal/recommend"
	"respira/internal/storage"
	"respira/internal/ui/preferences"
	"respira/internal/ui/screens"
	"respira/internal/ui/session"
	"respira/internal/ui/tray"
	"respira/resources"
)

const (
	// AppName names the window, the config directory and the instance lock.
	AppName = "Respira"
	appID   = "com.respira.app"
)

// Options configures the desktop application.
type Options struct {
	Provider     recommend.Provider
	Store        *storage.Store
	TickInterval time.Duration
	Logger       *slog.Logger
}

// Run starts the desktop app and blocks until it quits. A second launch
// brings the running window to front and returns nil.
func Run(ctx context.Context, options Options) error {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	guard, err := platform.AcquireSingleInstance(AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("already running, activated existing window", slog.Any("error", err))
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings := preferences.DefaultSettings()
	if options.Store != nil {
		loaded, loadErr := options.Store.Load()
		if loadErr != nil {
			logger.Warn("load preferences, using defaults", slog.Any("error", loadErr))
		} else {
			settings = loaded
		}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	c := newController(ctx, fyneApp, options, settings)
	guard.OnActivate(func() {
		fyne.Do(c.show)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		c.attachTray(desktopApp)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	c.window.Show()
	fyneApp.Run()
	c.closeSession()
	return nil
}

type controller struct {
	ctx     context.Context
	app     fyne.App
	window  fyne.Window
	nav     *screens.Navigator
	prefs   *preferences.Window
	tray    *tray.Manager
	desktop desktop.App
	options Options
	logger  *slog.Logger

	mu        sync.Mutex
	settings  preferences.Settings
	service   *recommend.Service
	engine    *breathing.Engine
	view      *session.View
	sessionID string
	cycles    int
}

func newController(ctx context.Context, fyneApp fyne.App, options Options, settings preferences.Settings) *controller {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Provider == nil {
		options.Provider = recommend.NewKeywordProvider()
	}

	c := &controller{
		ctx:      ctx,
		app:      fyneApp,
		window:   fyneApp.NewWindow(AppName),
		options:  options,
		logger:   options.Logger.With(slog.String("component", "desktop")),
		settings: settings,
	}
	c.service = c.newService(settings)
	c.nav = screens.NewNavigator(c.render)
	c.prefs = preferences.New(fyneApp, settings, c.applySettings)

	c.window.Resize(fyne.NewSize(420, 640))
	c.window.SetCloseIntercept(func() {
		if c.tray != nil {
			c.window.Hide()
			return
		}
		c.app.Quit()
	})
	c.render(c.nav.View())
	return c
}

func (c *controller) newService(settings preferences.Settings) *recommend.Service {
	options := settings.RecommendOptions()
	options.Logger = c.options.Logger
	return recommend.NewService(c.options.Provider, options)
}

func (c *controller) attachTray(desktopApp desktop.App) {
	c.desktop = desktopApp
	c.tray = tray.New(desktopApp, tray.Callbacks{
		OnShow:        c.show,
		OnPreferences: c.prefs.Show,
		OnTogglePause: func() {
			if engine := c.currentEngine(); engine != nil {
				engine.Toggle()
			}
		},
		OnNewSession: func() {
			c.closeSession()
			c.nav.Reset()
			c.show()
		},
		OnQuit: c.app.Quit,
	})
	desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.LogoPaused))
}

func (c *controller) show() {
	c.window.Show()
	c.window.RequestFocus()
}

func (c *controller) callbacks() screens.Callbacks {
	return screens.Callbacks{
		OnBegin:          c.logTransition(c.nav.Begin),
		OnEmotion:        c.nav.SetEmotion,
		OnDescription:    c.nav.SetDescription,
		OnSubmit:         c.submit,
		OnStartBreathing: c.logTransition(c.nav.StartBreathing),
		OnReset: func() {
			c.closeSession()
			c.nav.Reset()
		},
	}
}

func (c *controller) logTransition(transition func() error) func() {
	return func() {
		if err := transition(); err != nil {
			c.logger.Debug("ignored view transition", slog.Any("error", err))
		}
	}
}

func (c *controller) submit() {
	req, err := c.nav.Submit()
	if errors.Is(err, screens.ErrEmptyRequest) {
		dialog.ShowInformation("Respira", "Elige cómo te sientes o escribe unas palabras.", c.window)
		return
	}
	if err != nil {
		c.logger.Debug("ignored submit", slog.Any("error", err))
		return
	}

	c.mu.Lock()
	service := c.service
	c.mu.Unlock()

	go func() {
		rec := service.Recommend(c.ctx, req)
		fyne.Do(func() {
			if err := c.nav.Resolve(rec); err != nil {
				c.logger.Debug("recommendation arrived late", slog.Any("error", err))
			}
		})
	}()
}

// render swaps the window content for view.
func (c *controller) render(view screens.View) {
	callbacks := c.callbacks()
	switch view {
	case screens.ViewWelcome:
		c.window.SetContent(screens.Welcome(callbacks, resources.MustLogo(resources.LogoActive)))
		if c.tray != nil {
			c.tray.SetIdle()
			c.desktop.SetSystemTrayIcon(resources.MustLogo(resources.LogoPaused))
		}
	case screens.ViewInput:
		c.window.SetContent(screens.Input(callbacks, c.nav.Request()))
	case screens.ViewLoading:
		c.window.SetContent(screens.Loading())
	case screens.ViewRecommendation:
		rec := c.nav.Recommendation()
		c.window.SetContent(screens.Recommendation(callbacks, model.MustLookup(rec.TechniqueID), rec))
	case screens.ViewBreathing:
		c.openSession(model.MustLookup(c.nav.Recommendation().TechniqueID))
	case screens.ViewFinished:
		c.mu.Lock()
		cycles := c.cycles
		c.mu.Unlock()
		c.window.SetContent(screens.Finished(callbacks, cycles))
	}
}

func (c *controller) openSession(technique model.Technique) {
	c.closeSession()

	engine, err := breathing.New(technique, breathing.Config{TickInterval: c.options.TickInterval})
	if err != nil {
		c.logger.Error("open session", slog.Any("error", err))
		c.nav.Reset()
		return
	}

	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()

	view := session.New(engine, sessionConfig(settings), c.sessionEnded)
	view.Attach(engine.Subscribe(32))
	go c.followTray(engine.Subscribe(32))

	sessionID := uuid.NewString()
	c.mu.Lock()
	c.engine = engine
	c.view = view
	c.sessionID = sessionID
	c.cycles = 0
	c.mu.Unlock()

	c.logger.Info("session opened",
		slog.String("session", sessionID),
		slog.String("technique", string(technique.ID)),
	)
	c.window.SetContent(view.Content())
}

func (c *controller) followTray(events <-chan breathing.Event) {
	for event := range events {
		snapshot := event.Snapshot
		fyne.Do(func() {
			if c.tray == nil {
				return
			}
			c.tray.SetSnapshot(snapshot)
			icon := resources.LogoPaused
			if snapshot.Active {
				icon = resources.LogoActive
			}
			c.desktop.SetSystemTrayIcon(resources.MustLogo(icon))
		})
	}
}

func (c *controller) sessionEnded() {
	c.mu.Lock()
	engine := c.engine
	sessionID := c.sessionID
	c.mu.Unlock()
	if engine == nil {
		return
	}

	snapshot := engine.Snapshot()
	c.mu.Lock()
	c.cycles = snapshot.CyclesCompleted
	c.mu.Unlock()

	c.logger.Info("session ended",
		slog.String("session", sessionID),
		slog.Int("cycles", snapshot.CyclesCompleted),
	)
	if err := c.nav.Finish(); err != nil {
		c.logger.Debug("ignored finish", slog.Any("error", err))
	}
}

func (c *controller) closeSession() {
	c.mu.Lock()
	engine := c.engine
	view := c.view
	c.engine = nil
	c.view = nil
	c.mu.Unlock()

	if view != nil {
		view.Detach()
	}
	if engine != nil {
		engine.Close()
	}
}

func (c *controller) currentEngine() *breathing.Engine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine
}

func (c *controller) applySettings(settings preferences.Settings) {
	c.mu.Lock()
	c.settings = settings
	c.service = c.newService(settings)
	view := c.view
	c.mu.Unlock()

	if view != nil {
		view.UpdateConfig(sessionConfig(settings))
	}
	if c.options.Store != nil {
		if err := c.options.Store.Save(settings); err != nil {
			c.logger.Error("save preferences", slog.Any("error", err))
			dialog.ShowError(err, c.window)
		}
	}
}

func sessionConfig(settings preferences.Settings) session.Config {
	return session.Config{
		ShowCountdown: settings.ShowCountdown,
		AnimateCircle: settings.AnimateCircle,
	}
}
