package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	DefaultListenAddr      = ":8080"
	DefaultBaseURL         = "https://boxtrack.app"
	DefaultErrorCorrection = "M"
	DefaultQREncoder       = "skip2"
	DefaultMaxBatch        = 500
)

// Config holds the settings of the label server and CLIs.
type Config struct {
	ListenAddr      string `json:"listen_addr"`
	BaseURL         string `json:"base_url"`
	ErrorCorrection string `json:"error_correction"`
	QREncoder       string `json:"qr_encoder"`
	MaxBatch        int    `json:"max_batch"`
	// LogFile is empty for stderr.
	LogFile string `json:"log_file"`
}

var (
	config     Config
	configErr  error
	configOnce sync.Once
)

// LoadConfig reads config.json from the project root once. A missing file
// yields the defaults.
func LoadConfig() (Config, error) {
	configOnce.Do(func() {
		config, configErr = LoadConfigFile(filepath.Join(GetProjectRoot(), "config.json"))
	})
	return config, configErr
}

// LoadConfigFile reads the config at path, fills defaults for missing keys and
// applies environment overrides.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ErrorCorrection == "" {
		c.ErrorCorrection = DefaultErrorCorrection
	}
	if c.QREncoder == "" {
		c.QREncoder = DefaultQREncoder
	}
	if c.MaxBatch == 0 {
		c.MaxBatch = DefaultMaxBatch
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BOXTRACK_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("BOXTRACK_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("BOXTRACK_QR_ENCODER"); v != "" {
		c.QREncoder = v
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// Validate checks the names and limits in c.
func (c Config) Validate() error {
	switch strings.ToUpper(c.ErrorCorrection) {
	case "L", "M", "Q", "H":
	default:
		return fmt.Errorf("config: unknown error_correction %q", c.ErrorCorrection)
	}
	switch c.QREncoder {
	case "skip2", "boombuler":
	default:
		return fmt.Errorf("config: unknown qr_encoder %q", c.QREncoder)
	}
	if c.MaxBatch < 0 {
		return fmt.Errorf("config: max_batch must be positive, got %d", c.MaxBatch)
	}
	return nil
}

// GetProjectRoot returns the absolute path to the project root directory.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "." // fallback
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "." // fallback
}
