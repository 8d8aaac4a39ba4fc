package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

const (
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"

	DefaultEndpoint = "http://localhost:3001/api/data"
	DefaultMonths   = 12
	DefaultTheme    = "Catppuccin Mocha"

	defaultTimeoutSeconds = 15
	defaultLayoutDelayMS  = 100
)

// Environment overrides, applied after the settings file is read.
const (
	EnvConfigPath = "BRANCHBOARD_CONFIG"
	EnvEndpoint   = "BRANCHBOARD_ENDPOINT"
	EnvMonths     = "BRANCHBOARD_MONTHS"
	EnvDebug      = "BRANCHBOARD_DEBUG"
)

type SourceConfig struct {
	Kind           string `json:"kind"`
	Endpoint       string `json:"endpoint"`
	Months         int    `json:"months"`
	DatabasePath   string `json:"database_path,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type UIConfig struct {
	Title         string `json:"title"`
	Locale        string `json:"locale"`
	LayoutDelayMS int    `json:"layout_delay_ms"`
}

type Config struct {
	Source SourceConfig `json:"source"`
	UI     UIConfig     `json:"ui"`
	Theme  string       `json:"theme"`
}

func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Kind:           SourceHTTP,
			Endpoint:       DefaultEndpoint,
			Months:         DefaultMonths,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		UI: UIConfig{
			Title:         "Branch Dashboard",
			Locale:        "en",
			LayoutDelayMS: defaultLayoutDelayMS,
		},
		Theme: DefaultTheme,
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "branchboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "branchboard")
}

func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the settings file at path. A missing file yields defaults.
// Environment overrides are applied in both cases.
func LoadFrom(path string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	normalize(&cfg)
	return cfg, nil
}

func readFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Source.Endpoint = v
		cfg.Source.Kind = SourceHTTP
	}
	if v := strings.TrimSpace(os.Getenv(EnvMonths)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Source.Months = n
		}
	}
}

func normalize(cfg *Config) {
	def := DefaultConfig()

	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	if cfg.Source.Kind != SourceSQLite {
		cfg.Source.Kind = SourceHTTP
	}
	if strings.TrimSpace(cfg.Source.Endpoint) == "" {
		cfg.Source.Endpoint = def.Source.Endpoint
	}
	if cfg.Source.Months <= 0 {
		cfg.Source.Months = def.Source.Months
	}
	if cfg.Source.TimeoutSeconds <= 0 {
		cfg.Source.TimeoutSeconds = def.Source.TimeoutSeconds
	}
	if cfg.UI.LayoutDelayMS <= 0 {
		cfg.UI.LayoutDelayMS = def.UI.LayoutDelayMS
	}
	if strings.TrimSpace(cfg.UI.Locale) == "" {
		cfg.UI.Locale = def.UI.Locale
	}
	if strings.TrimSpace(cfg.UI.Title) == "" {
		cfg.UI.Title = def.UI.Title
	}
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
}

// Validate reports configuration that cannot produce a data source.
func (c Config) Validate() error {
	if c.Source.Kind == SourceSQLite && strings.TrimSpace(c.Source.DatabasePath) == "" {
		return fmt.Errorf("source kind %q requires database_path", SourceSQLite)
	}
	return nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveTheme persists a theme name into the config file (read-modify-write).
func SaveTheme(theme string) error {
	return SaveThemeTo(ConfigPath(), theme)
}

// SaveThemeTo writes only the file's own values back, so environment
// overrides active in this process are not persisted.
func SaveThemeTo(path string, theme string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := readFile(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Theme = theme
	return SaveTo(path, cfg)
}
