package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podforge/podforge/internal/api"
	"github.com/podforge/podforge/internal/config"
	"github.com/podforge/podforge/internal/extract"
	"github.com/podforge/podforge/internal/genai"
	"github.com/podforge/podforge/internal/ingest"
	"github.com/podforge/podforge/internal/tts"
)

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	logger.Info().
		Str("listen", cfg.Server.Listen).
		Str("model", cfg.GenAI.Model).
		Str("log_level", cfg.Logging.Level).
		Msg("Starting podforge server")

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("create uploads directory: %w", err)
	}

	ctx := context.Background()
	generator, err := genai.NewGemini(ctx, &cfg.GenAI)
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}
	defer generator.Close()

	aggregator := ingest.New(
		extract.NewURLExtractor(cfg.Extract.URLTimeout, cfg.Extract.MaxContentLength),
		extract.NewFileExtractor(),
		logger,
	)

	backends, err := buildBackends(cfg, logger)
	if err != nil {
		return err
	}

	router := api.NewRouter(cfg, generator, aggregator, backends, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Listen).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}

// buildBackends wires every configured TTS backend under its route segment.
// The on-device backend is never wrapped in the cache: it produces no bytes.
func buildBackends(cfg *config.Config, logger zerolog.Logger) (map[string]tts.Synthesizer, error) {
	backends := map[string]tts.Synthesizer{
		api.BackendWebSpeech: tts.NewWebSpeech(),
		api.BackendFestival:  tts.WithCache(tts.NewFestival(cfg.TTS.FestivalBin), cfg.TTS.CacheSize),
	}

	if cfg.TTS.ElevenLabsAPIKey != "" {
		eleven, err := tts.NewElevenLabs(cfg.TTS.ElevenLabsAPIKey)
		if err != nil {
			return nil, fmt.Errorf("create elevenlabs backend: %w", err)
		}
		backends[api.BackendElevenLabs] = tts.WithCache(eleven, cfg.TTS.CacheSize)
	} else {
		logger.Warn().Msg("ELEVENLABS_API_KEY not set - elevenlabs backend disabled")
	}

	if cfg.TTS.OpenAIAPIKey != "" {
		oa, err := tts.NewOpenAI(cfg.TTS.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("create openai backend: %w", err)
		}
		backends[api.BackendOpenAI] = tts.WithCache(oa, cfg.TTS.CacheSize)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set - openai backend disabled")
	}

	return backends, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if v := viper.GetString("server.listen"); v != "" {
		cfg.Server.Listen = v
	}
	if v := viper.GetDuration("server.read_timeout"); v != 0 {
		cfg.Server.ReadTimeout = v
	}
	if v := viper.GetDuration("server.write_timeout"); v != 0 {
		cfg.Server.WriteTimeout = v
	}
	if v := viper.GetString("server.environment"); v != "" {
		cfg.Server.Environment = v
	}
	if v := viper.GetString("genai.api_key"); v != "" {
		cfg.GenAI.APIKey = v
	}
	if v := viper.GetString("genai.model"); v != "" {
		cfg.GenAI.Model = v
	}
	if v := viper.GetDuration("genai.timeout"); v != 0 {
		cfg.GenAI.Timeout = v
	}
	if v := viper.GetString("tts.elevenlabs_api_key"); v != "" {
		cfg.TTS.ElevenLabsAPIKey = v
	}
	if v := viper.GetString("tts.openai_api_key"); v != "" {
		cfg.TTS.OpenAIAPIKey = v
	}
	if v := viper.GetString("tts.festival_bin"); v != "" {
		cfg.TTS.FestivalBin = v
	}
	if viper.IsSet("tts.cache_size") {
		cfg.TTS.CacheSize = viper.GetInt("tts.cache_size")
	}
	if v := viper.GetString("uploads.dir"); v != "" {
		cfg.Uploads.Dir = v
	}
	if v := viper.GetInt64("uploads.max_file_size"); v != 0 {
		cfg.Uploads.MaxFileSize = v
	}
	if v := viper.GetInt("uploads.max_files"); v != 0 {
		cfg.Uploads.MaxFiles = v
	}
	if v := viper.GetDuration("extract.url_timeout"); v != 0 {
		cfg.Extract.URLTimeout = v
	}
	if v := viper.GetInt("extract.max_content_length"); v != 0 {
		cfg.Extract.MaxContentLength = v
	}
	if v := viper.GetString("auth.api_key"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := viper.GetString("logging.level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		cfg.Logging.Format = v
	}

	return cfg, nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
