package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultLocalServiceURL, cfg.ServiceURL)
	assert.Equal(t, "https://loremflickr.com", cfg.StockImageURL)
	assert.Equal(t, 800, cfg.StockImageSize)
	assert.Equal(t, "en-US", cfg.SpeechLocale)
	assert.True(t, cfg.ImageUploadEnabled)
	assert.False(t, cfg.AuthRequired)
	assert.NotEmpty(t, cfg.DownloadDir)
}

func TestLoadAuthenticatedVariant(t *testing.T) {
	t.Setenv("VOICEPOST_AUTH_REQUIRED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHostedServiceURL, cfg.ServiceURL)
	// The authenticated variant has no image-upload surface.
	assert.False(t, cfg.ImageUploadEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VOICEPOST_SERVICE_URL", "http://localhost:9999/")
	t.Setenv("VOICEPOST_SPEECH_URL", "ws://localhost:7000/stt")
	t.Setenv("VOICEPOST_USER_ID", "u-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.ServiceURL)
	assert.Equal(t, "ws://localhost:7000/stt", cfg.SpeechServiceURL)
	assert.Equal(t, "u-1", cfg.UserID)
}

func TestWorkspacePathExpandsHome(t *testing.T) {
	t.Setenv("VOICEPOST_WORKSPACE", "~/.voicepost-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotContains(t, cfg.WorkspacePath(), "~")
}
