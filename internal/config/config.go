package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds runtime configuration.
type Config struct {
	Recommend RecommendConfig
	Engine    EngineConfig
	Log       LogConfig
}

// RecommendConfig holds recommendation provider settings.
type RecommendConfig struct {
	Provider  string
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
	Model     string
	Timeout   time.Duration
}

// EngineConfig holds breathing engine settings.
type EngineConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

const (
	ProviderGemini  = "gemini"
	ProviderKeyword = "keyword"
)

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"provider":  "recommend.provider",
	"model":     "recommend.model",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// Load reads configuration from defaults, an optional file, RESPIRA_* env
// vars and flags, in increasing precedence. A missing file is not an error
// unless path was given explicitly.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("recommend.provider", ProviderGemini)
	v.SetDefault("recommend.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("recommend.api_key", "")
	v.SetDefault("recommend.model", "gemini-2.5-flash")
	v.SetDefault("recommend.timeout", 10*time.Second)
	v.SetDefault("engine.tick_interval", time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("RESPIRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "Respira"))
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Recommend.Provider = strings.ToLower(strings.TrimSpace(c.Recommend.Provider))
	return c, nil
}

// ResolveAPIKey returns the configured key, falling back to the named env var.
func (c RecommendConfig) ResolveAPIKey() string {
	if key := strings.TrimSpace(c.APIKey); key != "" {
		return key
	}
	if c.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}
