package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "podforge-server",
	Short: "Podcast script generation and TTS API server",
	Long: `podforge-server generates podcast scripts from a prompt plus optional
source material (uploaded documents and web pages) using a generative-text
provider, and converts finished scripts to speech through pluggable TTS
backends.

Start the server:
  podforge-server

Start with custom settings:
  podforge-server --listen 0.0.0.0:3000 --genai-model gemini-2.0-flash

Use environment variables:
  PODFORGE_LISTEN=0.0.0.0:3000 GOOGLE_GENAI_API_KEY=... podforge-server`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("podforge-server %s\n", Version)
		fmt.Printf("  Commit:     %s\n", Commit)
		fmt.Printf("  Build Date: %s\n", BuildDate)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.Flags().String("listen", "0.0.0.0:3000", "Server listen address")
	rootCmd.Flags().Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	rootCmd.Flags().Duration("write-timeout", 120*time.Second, "HTTP write timeout")
	rootCmd.Flags().String("environment", "production", "Deployment environment (development, production)")

	rootCmd.Flags().String("genai-model", "gemini-2.0-flash", "Generative-text model")
	rootCmd.Flags().Duration("genai-timeout", 60*time.Second, "Generation request timeout")

	rootCmd.Flags().String("uploads-dir", "uploads", "Directory for temporary uploads")
	rootCmd.Flags().String("festival-bin", "festival", "Server-side synthesis binary")
	rootCmd.Flags().Int("tts-cache-size", 128, "Max cached TTS results per backend (0 = no cache)")

	rootCmd.Flags().String("api-key", "", "API key for authentication (empty = no auth)")

	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-format", "json", "Log format (json, text)")

	bindFlags()

	rootCmd.AddCommand(versionCmd)
}

func bindFlags() {
	bindings := []struct {
		key  string
		flag string
	}{
		{"server.listen", "listen"},
		{"server.read_timeout", "read-timeout"},
		{"server.write_timeout", "write-timeout"},
		{"server.environment", "environment"},
		{"genai.model", "genai-model"},
		{"genai.timeout", "genai-timeout"},
		{"uploads.dir", "uploads-dir"},
		{"tts.festival_bin", "festival-bin"},
		{"tts.cache_size", "tts-cache-size"},
		{"auth.api_key", "api-key"},
		{"logging.level", "log-level"},
		{"logging.format", "log-format"},
	}

	for _, b := range bindings {
		flag := rootCmd.Flags().Lookup(b.flag)
		if flag == nil {
			continue
		}
		_ = viper.BindPFlag(b.key, flag)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PODFORGE")
	viper.AutomaticEnv()

	viper.BindEnv("server.listen", "PODFORGE_LISTEN")
	viper.BindEnv("server.environment", "PODFORGE_ENV")
	viper.BindEnv("genai.api_key", "GOOGLE_GENAI_API_KEY")
	viper.BindEnv("genai.model", "PODFORGE_GENAI_MODEL")
	viper.BindEnv("tts.elevenlabs_api_key", "ELEVENLABS_API_KEY")
	viper.BindEnv("tts.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("tts.festival_bin", "PODFORGE_FESTIVAL_BIN")
	viper.BindEnv("tts.cache_size", "PODFORGE_TTS_CACHE_SIZE")
	viper.BindEnv("uploads.dir", "PODFORGE_UPLOADS_DIR")
	viper.BindEnv("auth.api_key", "PODFORGE_API_KEY")
	viper.BindEnv("logging.level", "PODFORGE_LOG_LEVEL")
	viper.BindEnv("logging.format", "PODFORGE_LOG_FORMAT")

	viper.SetDefault("server.listen", "0.0.0.0:3000")
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)
	viper.SetDefault("server.environment", "production")
	viper.SetDefault("genai.model", "gemini-2.0-flash")
	viper.SetDefault("genai.timeout", 60*time.Second)
	viper.SetDefault("uploads.dir", "uploads")
	viper.SetDefault("uploads.max_file_size", 10<<20)
	viper.SetDefault("uploads.max_files", 2)
	viper.SetDefault("extract.url_timeout", 10*time.Second)
	viper.SetDefault("extract.max_content_length", 10000)
	viper.SetDefault("tts.festival_bin", "festival")
	viper.SetDefault("tts.cache_size", 128)
	viper.SetDefault("auth.api_key", "")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	bindFlags()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
