package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"

	"respira/internal/core/breathing"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnTogglePause func()
	OnNewSession  func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
	setTooltip  func(string)
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	return newManager(app, callbacks, systray.SetTooltip)
}

func newManager(app desktop.App, callbacks Callbacks, setTooltip func(string)) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "sin sesión",
		setTooltip:  setTooltip,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pausar", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})
	manager.pauseItem.Disabled = true

	manager.refreshStatus()
	return manager
}

// SetSnapshot updates the status line and pause item from a session snapshot.
func (manager *Manager) SetSnapshot(snapshot breathing.Snapshot) {
	manager.statusLabel = StatusText(snapshot)
	manager.pauseItem.Disabled = snapshot.Ended
	if snapshot.Active {
		manager.pauseItem.Label = "Pausar"
	} else {
		manager.pauseItem.Label = "Continuar"
	}
	manager.refreshStatus()
}

// SetIdle shows that no session is open.
func (manager *Manager) SetIdle() {
	manager.statusLabel = "sin sesión"
	manager.pauseItem.Disabled = true
	manager.pauseItem.Label = "Pausar"
	manager.refreshStatus()
}

// StatusText renders the tray status for a snapshot.
func StatusText(snapshot breathing.Snapshot) string {
	switch {
	case snapshot.Ended:
		return fmt.Sprintf("sesión terminada (%d ciclos)", snapshot.CyclesCompleted)
	case snapshot.Active:
		return fmt.Sprintf("%s · %ds", snapshot.Phase.Label, snapshot.SecondsRemaining)
	default:
		return "en pausa"
	}
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Estado: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Respira",
		manager.statusItem,
		fyne.NewMenuItem("Mostrar", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.pauseItem,
		fyne.NewMenuItem("Nueva sesión", func() {
			if manager.callbacks.OnNewSession != nil {
				manager.callbacks.OnNewSession()
			}
		}),
		fyne.NewMenuItem("Preferencias", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Salir", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
	// The tray exists once a menu has been set.
	manager.setTooltip("Respira · " + manager.statusLabel)
}
