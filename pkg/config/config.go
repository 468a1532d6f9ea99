package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Default service endpoints for the two build variants. A local
// development build talks to a backend on the loopback address; the
// authenticated build talks to the hosted deployment.
const (
	DefaultLocalServiceURL  = "http://127.0.0.1:8000"
	DefaultHostedServiceURL = "https://voice-social-poster.onrender.com"
)

// Config is the full runtime configuration, populated from the
// environment. Every endpoint and capability flag is overridable.
type Config struct {
	// ServiceURL is the post-generation service base URL. When empty it
	// resolves to the local or hosted default depending on AuthRequired.
	ServiceURL string `env:"VOICEPOST_SERVICE_URL"`

	StockImageURL  string `env:"VOICEPOST_STOCK_IMAGE_URL" envDefault:"https://loremflickr.com"`
	StockImageSize int    `env:"VOICEPOST_STOCK_IMAGE_SIZE" envDefault:"800"`

	// SpeechServiceURL is the websocket transcription endpoint. Empty
	// means the voice feature is unavailable in this environment.
	SpeechServiceURL string `env:"VOICEPOST_SPEECH_URL"`
	SpeechLocale     string `env:"VOICEPOST_SPEECH_LOCALE" envDefault:"en-US"`

	Workspace   string `env:"VOICEPOST_WORKSPACE" envDefault:"~/.voicepost"`
	DownloadDir string `env:"VOICEPOST_DOWNLOAD_DIR"`

	// ImageUploadEnabled and AuthRequired select the app variant. The
	// authenticated variant omits image upload entirely.
	ImageUploadEnabled bool `env:"VOICEPOST_IMAGE_UPLOAD" envDefault:"true"`
	AuthRequired       bool `env:"VOICEPOST_AUTH_REQUIRED" envDefault:"false"`

	UserID      string `env:"VOICEPOST_USER_ID"`
	AccessToken string `env:"VOICEPOST_ACCESS_TOKEN"`

	LogLevel string `env:"VOICEPOST_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and resolves variant-dependent defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.ServiceURL == "" {
		if cfg.AuthRequired {
			cfg.ServiceURL = DefaultHostedServiceURL
		} else {
			cfg.ServiceURL = DefaultLocalServiceURL
		}
	}
	cfg.ServiceURL = strings.TrimRight(cfg.ServiceURL, "/")

	// The authenticated variant has no image-upload surface.
	if cfg.AuthRequired {
		cfg.ImageUploadEnabled = false
	}

	if cfg.DownloadDir == "" {
		cfg.DownloadDir = filepath.Join(cfg.WorkspacePath(), "downloads")
	}

	return cfg, nil
}

// WorkspacePath returns the workspace directory with ~ expanded.
func (c *Config) WorkspacePath() string {
	return expandHome(c.Workspace)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
