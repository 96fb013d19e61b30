package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"respira/internal/core/model"
	"respira/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FallbackTechnique       string `yaml:"fallback_technique"`
	RecommendTimeoutSeconds int    `yaml:"recommend_timeout_seconds"`
	ShowCountdown           *bool  `yaml:"show_countdown"`
	AnimateCircle           *bool  `yaml:"animate_circle"`
}

// Store reads and writes preferences under a config directory.
type Store struct {
	path string
}

// NewStore creates a Store rooted at <configDir>/<appName>/settings.yaml.
func NewStore(configDir, appName string) *Store {
	return &Store{path: filepath.Join(configDir, appName, settingsFileName)}
}

// DefaultStore creates a Store in the OS-standard config directory.
func DefaultStore(appName string) (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return NewStore(configDir, appName), nil
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *Store) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	showCountdown := settings.ShowCountdown
	animateCircle := settings.AnimateCircle
	fileData := yamlSettings{
		FallbackTechnique:       string(settings.FallbackTechnique),
		RecommendTimeoutSeconds: int(settings.RecommendTimeout / time.Second),
		ShowCountdown:           &showCountdown,
		AnimateCircle:           &animateCircle,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if id, err := model.ParseTechniqueID(fileData.FallbackTechnique); err == nil {
		settings.FallbackTechnique = id
	}
	if fileData.RecommendTimeoutSeconds > 0 && fileData.RecommendTimeoutSeconds <= 60 {
		settings.RecommendTimeout = time.Duration(fileData.RecommendTimeoutSeconds) * time.Second
	}
	if fileData.ShowCountdown != nil {
		settings.ShowCountdown = *fileData.ShowCountdown
	}
	if fileData.AnimateCircle != nil {
		settings.AnimateCircle = *fileData.AnimateCircle
	}
}
