package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds neonmap configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Export ExportConfig `toml:"export"`
	Editor EditorConfig `toml:"editor"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig selects the persistence adapter.
type StoreConfig struct {
	Driver  string   `toml:"driver"` // "badger" or "http"
	Path    string   `toml:"path"`
	URL     string   `toml:"url"`
	Token   string   `toml:"token"`
	Timeout Duration `toml:"timeout"`

	// The local store checks access against this principal.
	Owner      int64   `toml:"owner"`
	Workspaces []int64 `toml:"workspaces"`
	Projects   []int64 `toml:"projects"`
}

type ExportConfig struct {
	Directory   string  `toml:"directory"`
	PixelRatio  float64 `toml:"pixel_ratio"`
	JPEGQuality int     `toml:"jpeg_quality"`
	Background  string  `toml:"background"`
}

type EditorConfig struct {
	Confirmations bool   `toml:"confirmations"`
	RejectCycles  bool   `toml:"reject_cycles"`
	Theme         string `toml:"theme"` // "dark" or "light"
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	// Token, when set, is required as a bearer token on API requests.
	Token string `toml:"token"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration is a time.Duration written as a string such as "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

const (
	DriverBadger = "badger"
	DriverHTTP   = "http"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:  DriverBadger,
			Path:    filepath.Join(Dir(), "data"),
			URL:     "http://localhost:8080/api",
			Timeout: Duration{10 * time.Second},
			Owner:   1,
		},
		Export: ExportConfig{
			PixelRatio:  2,
			JPEGQuality: 95,
			Background:  "#020617",
		},
		Editor: EditorConfig{
			Confirmations: true,
			Theme:         "dark",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(Dir(), "neonmap.log"),
		},
	}
}

// Dir returns the neonmap config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "neonmap")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	cfg.Store.Path = ExpandPath(cfg.Store.Path)
	cfg.Export.Directory = ExpandPath(cfg.Export.Directory)
	cfg.Log.File = ExpandPath(cfg.Log.File)
	return cfg, cfg.Validate()
}

// Save writes the config to path, or the default location when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverBadger, DriverHTTP:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Editor.Theme {
	case "dark", "light":
	default:
		return errors.Errorf("unknown theme %q", c.Editor.Theme)
	}
	if c.Export.PixelRatio <= 0 {
		return errors.New("export.pixel_ratio must be positive")
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		return errors.New("export.jpeg_quality must be between 1 and 100")
	}
	return nil
}

// ExpandPath resolves a leading ~ and makes the path absolute. Empty stays
// empty.
func ExpandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if abs, err := filepath.Abs(value); err == nil {
			value = abs
		}
	}
	return value
}

// ExportPath returns where an export artifact named filename is written,
// creating the export directory when needed.
func (c *ExportConfig) ExportPath(filename string) (string, error) {
	if c.Directory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.Directory, 0o755); err != nil {
		return "", errors.Wrap(err, "create export directory")
	}
	return filepath.Join(c.Directory, filename), nil
}
