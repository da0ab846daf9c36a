package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	TTS     TTSConfig     `mapstructure:"tts"`
	Uploads UploadsConfig `mapstructure:"uploads"`
	Extract ExtractConfig `mapstructure:"extract"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen       string        `mapstructure:"listen"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// GenAIConfig holds generative-text provider settings.
type GenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TTSConfig holds text-to-speech backend settings.
type TTSConfig struct {
	ElevenLabsAPIKey string `mapstructure:"elevenlabs_api_key"`
	OpenAIAPIKey     string `mapstructure:"openai_api_key"`
	FestivalBin      string `mapstructure:"festival_bin"`
	CacheSize        int    `mapstructure:"cache_size"`
}

// UploadsConfig holds file upload intake settings.
type UploadsConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
	MaxFiles    int    `mapstructure:"max_files"`
}

// ExtractConfig holds URL content extraction settings.
type ExtractConfig struct {
	URLTimeout       time.Duration `mapstructure:"url_timeout"`
	MaxContentLength int           `mapstructure:"max_content_length"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:       "0.0.0.0:3000",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			Environment:  "production",
		},
		GenAI: GenAIConfig{
			APIKey:  "",
			Model:   "gemini-2.0-flash",
			Timeout: 60 * time.Second,
		},
		TTS: TTSConfig{
			ElevenLabsAPIKey: "",
			OpenAIAPIKey:     "",
			FestivalBin:      "festival",
			CacheSize:        128,
		},
		Uploads: UploadsConfig{
			Dir:         "uploads",
			MaxFileSize: 10 << 20,
			MaxFiles:    2,
		},
		Extract: ExtractConfig{
			URLTimeout:       10 * time.Second,
			MaxContentLength: 10000,
		},
		Auth: AuthConfig{
			APIKey: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load returns a Config populated with defaults and environment overrides.
func Load() (*Config, error) {
	return LoadWithDefaults(nil)
}

// LoadWithDefaults loads configuration using defaults and optional overrides map (for tests).
func LoadWithDefaults(overrides map[string]interface{}) (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)

	if overrides != nil {
		raw, err := json.Marshal(overrides)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PODFORGE_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("PODFORGE_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("PODFORGE_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if v := os.Getenv("PODFORGE_ENV"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("GOOGLE_GENAI_API_KEY"); v != "" {
		cfg.GenAI.APIKey = v
	}
	if v := os.Getenv("PODFORGE_GENAI_MODEL"); v != "" {
		cfg.GenAI.Model = v
	}
	if v := os.Getenv("PODFORGE_GENAI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.GenAI.Timeout = d
		}
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		cfg.TTS.ElevenLabsAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.TTS.OpenAIAPIKey = v
	}
	if v := os.Getenv("PODFORGE_FESTIVAL_BIN"); v != "" {
		cfg.TTS.FestivalBin = v
	}
	if v := os.Getenv("PODFORGE_TTS_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TTS.CacheSize = n
		}
	}
	if v := os.Getenv("PODFORGE_UPLOADS_DIR"); v != "" {
		cfg.Uploads.Dir = v
	}
	if v := os.Getenv("PODFORGE_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Uploads.MaxFileSize = n
		}
	}
	if v := os.Getenv("PODFORGE_URL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Extract.URLTimeout = d
		}
	}
	if v := os.Getenv("PODFORGE_MAX_CONTENT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Extract.MaxContentLength = n
		}
	}
	if v := os.Getenv("PODFORGE_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("PODFORGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PODFORGE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
