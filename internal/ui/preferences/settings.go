package preferences

import (
	"time"

	"respira/internal/core/model"
	"respira/internal/recommend"
)

// Settings defines editable user preferences.
type Settings struct {
	FallbackTechnique model.TechniqueID
	RecommendTimeout  time.Duration
	ShowCountdown     bool
	AnimateCircle     bool
}

// DefaultSettings returns default settings for Respira.
func DefaultSettings() Settings {
	return Settings{
		FallbackTechnique: model.BoxBreathing,
		RecommendTimeout:  recommend.DefaultTimeout,
		ShowCountdown:     true,
		AnimateCircle:     true,
	}
}

// RecommendOptions converts settings to recommendation service options.
func (settings Settings) RecommendOptions() recommend.Options {
	return recommend.Options{
		Timeout:  settings.RecommendTimeout,
		Fallback: settings.FallbackTechnique,
	}
}
