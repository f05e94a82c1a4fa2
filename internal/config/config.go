package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// BackendURLEnv selects the translation backend base URL. It wins over the
// config file.
const BackendURLEnv = "PYTHON_BACKEND_URL"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
	UI      UIConfig      `mapstructure:"ui"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds each outbound call. Zero keeps the transport default,
	// which never gives up on a hung backend.
	Timeout time.Duration `mapstructure:"timeout"`
	// ProbeOnStart runs one health check at boot, for the log only.
	ProbeOnStart bool `mapstructure:"probe_on_start"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SessionConfig struct {
	CookieName      string        `mapstructure:"cookie_name"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type UIConfig struct {
	Title     string     `mapstructure:"title"`
	Languages []Language `mapstructure:"languages"`
}

// Language is one entry of the UI's target language picker. The relay never
// checks requests against this list.
type Language struct {
	ID    string `mapstructure:"id" json:"id"`
	Label string `mapstructure:"label" json:"label"`
	Code  string `mapstructure:"code" json:"code"`
}

// DefaultLanguages is the picker used when the config names none.
func DefaultLanguages() []Language {
	return []Language{
		{ID: "hindi", Label: "Hindi", Code: "hi"},
		{ID: "bengali", Label: "Bengali", Code: "bn"},
		{ID: "tamil", Label: "Tamil", Code: "ta"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", time.Duration(0))
	v.SetDefault("server.max_header_bytes", 1<<20)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", time.Duration(0))
	v.SetDefault("backend.probe_on_start", true)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"})
	v.SetDefault("cors.exposed_headers", []string{"X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("session.cookie_name", "translit_session")
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.cleanup_interval", 5*time.Minute)

	v.SetDefault("ui.title", "English Transliteration")
}

// Load reads configPath (skipped when empty), then layers TRANSLIT_* and
// PYTHON_BACKEND_URL environment variables on top.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TRANSLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend.base_url", BackendURLEnv, "TRANSLIT_BACKEND_BASE_URL"); err != nil {
		return nil, fmt.Errorf("bind %s: %w", BackendURLEnv, err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Backend.BaseURL), "/")
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url must not be empty")
	}
	if len(cfg.UI.Languages) == 0 {
		cfg.UI.Languages = DefaultLanguages()
	}

	return cfg, nil
}
