package main

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	viper.Reset()
	initConfig()

	cfg, err := loadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Listen)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenAI.Model)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, 2, cfg.Uploads.MaxFiles)
	assert.Equal(t, 10*time.Second, cfg.Extract.URLTimeout)
	assert.Equal(t, "festival", cfg.TTS.FestivalBin)
	assert.Equal(t, 128, cfg.TTS.CacheSize)
	assert.Equal(t, "", cfg.Auth.APIKey)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigFromEnv(t *testing.T) {
	viper.Reset()
	os.Setenv("PODFORGE_LISTEN", "0.0.0.0:9090")
	os.Setenv("PODFORGE_ENV", "development")
	os.Setenv("GOOGLE_GENAI_API_KEY", "genai-key")
	os.Setenv("ELEVENLABS_API_KEY", "el-key")
	os.Setenv("PODFORGE_API_KEY", "auth-key")
	os.Setenv("PODFORGE_LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("PODFORGE_LISTEN")
		os.Unsetenv("PODFORGE_ENV")
		os.Unsetenv("GOOGLE_GENAI_API_KEY")
		os.Unsetenv("ELEVENLABS_API_KEY")
		os.Unsetenv("PODFORGE_API_KEY")
		os.Unsetenv("PODFORGE_LOG_LEVEL")
	}()

	initConfig()

	cfg, err := loadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Listen)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "genai-key", cfg.GenAI.APIKey)
	assert.Equal(t, "el-key", cfg.TTS.ElevenLabsAPIKey)
	assert.Equal(t, "auth-key", cfg.Auth.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
