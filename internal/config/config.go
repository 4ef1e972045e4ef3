// Package config loads tuturo settings from defaults, an optional YAML file
// and TUTURO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/logging"
	"github.com/abhisek/tuturo/internal/pathway"
)

// Config is the complete application configuration.
type Config struct {
	LLM     llm.Config     `mapstructure:"llm"`
	Pathway pathway.Config `mapstructure:"pathway"`
	Log     logging.Config `mapstructure:"log"`
	Server  ServerConfig   `mapstructure:"server"`

	// DB is the audit database path. Empty selects store.DefaultDBPath.
	DB string `mapstructure:"db"`

	// Profile holds onboarding answers; ProfileFile points at a YAML file
	// with more of them. Inline answers win.
	Profile     curriculum.Profile `mapstructure:"profile"`
	ProfileFile string             `mapstructure:"profile_file"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	Mode        string `mapstructure:"mode"` // gin mode: debug, release, test
	MaxSessions int    `mapstructure:"max_sessions"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LLM:     llm.DefaultConfig(),
		Pathway: pathway.DefaultConfig(),
		Log:     logging.DefaultConfig(),
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			Mode:        "release",
			MaxSessions: 1024,
		},
	}
}

// keyEnv lists the provider keys and the environment variables they are
// read from.
var keyEnv = map[string]string{
	"llm.provider":           "TUTURO_PROVIDER",
	"llm.anthropic.api_key":  "TUTURO_ANTHROPIC_API_KEY",
	"llm.openai.api_key":     "TUTURO_OPENAI_API_KEY",
	"llm.gemini.api_key":     "TUTURO_GEMINI_API_KEY",
	"llm.openrouter.api_key": "TUTURO_OPENROUTER_API_KEY",
}

// Loader reads configuration and reloads it when the config file changes.
type Loader struct {
	v *viper.Viper

	mu  sync.RWMutex
	cfg Config
}

// NewLoader reads the config file at path, or searches ./tuturo.yaml and
// $HOME/.config/tuturo/tuturo.yaml when path is empty. A missing file is
// not an error.
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("TUTURO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range keyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tuturo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tuturo")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	l := &Loader{v: v}
	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.cfg = cfg
	return l, nil
}

func setDefaults(v *viper.Viper, d Config) {
	// llm.provider stays unset so IsSet tells an explicit choice apart.
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.LLM.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.max_jitter", d.LLM.Retry.MaxJitter)
	v.SetDefault("llm.breaker.failure_threshold", d.LLM.Breaker.FailureThreshold)
	v.SetDefault("llm.breaker.open_timeout", d.LLM.Breaker.OpenTimeout)
	v.SetDefault("llm.breaker.half_open_requests", d.LLM.Breaker.HalfOpenRequests)
	v.SetDefault("llm.rate_limit.requests_per_minute", d.LLM.RateLimit.RequestsPerMinute)
	v.SetDefault("llm.rate_limit.burst", d.LLM.RateLimit.Burst)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("pathway.curriculum_max_tokens", d.Pathway.CurriculumMaxTokens)
	v.SetDefault("pathway.theory_max_tokens", d.Pathway.TheoryMaxTokens)
	v.SetDefault("pathway.temperature", d.Pathway.Temperature)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.max_sessions", d.Server.MaxSessions)

	v.SetDefault("db", d.DB)
	v.SetDefault("profile_file", d.ProfileFile)
}

// decode turns the current viper state into a Config. Provider keys fall
// back to the conventional *_API_KEY variables when none is configured.
func (l *Loader) decode() (Config, error) {
	cfg := Default()
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(); ok {
			if !l.v.IsSet("llm.provider") {
				cfg.LLM.Provider = found.Provider
			}
			fillKeys(&cfg.LLM, found)
		}
	}

	profile := curriculum.DefaultProfile()
	if cfg.ProfileFile != "" {
		fromFile, err := curriculum.LoadProfile(cfg.ProfileFile)
		if err != nil {
			return Config{}, err
		}
		profile = profile.Merge(fromFile)
	}
	cfg.Profile = profile.Merge(cfg.Profile)

	return cfg, nil
}

func fillKeys(dst *llm.Config, src llm.Config) {
	if dst.Anthropic.APIKey == "" {
		dst.Anthropic.APIKey = src.Anthropic.APIKey
	}
	if dst.OpenAI.APIKey == "" {
		dst.OpenAI.APIKey = src.OpenAI.APIKey
	}
	if dst.Gemini.APIKey == "" {
		dst.Gemini.APIKey = src.Gemini.APIKey
	}
	if dst.OpenRouter.APIKey == "" {
		dst.OpenRouter.APIKey = src.OpenRouter.APIKey
	}
}

// Config returns the most recently loaded configuration.
func (l *Loader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// ConfigFile returns the config file in use, or "" when running on
// defaults and environment only.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch reloads the configuration whenever the config file is written and
// hands the new value to onChange. Reloads that fail to decode keep the
// previous configuration and are reported through onError. Watch is a
// no-op without a config file.
func (l *Loader) Watch(onChange func(Config), onError func(error)) {
	if l.ConfigFile() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		l.mu.Lock()
		l.cfg = cfg
		l.mu.Unlock()
		if onChange != nil {
			onChange(cfg)
		}
	})
	l.v.WatchConfig()
}
