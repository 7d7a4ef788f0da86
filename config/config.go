package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress  string   `mapstructure:"SERVER_ADDRESS"`  // e.g., ":8080"
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"` // CORS origins for the browser frontend

	// AI Configuration
	OpenAIKey     string `mapstructure:"OPENAI_API_KEY"`  // API key for the model provider
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"` // Optional endpoint override
	ModelID       string `mapstructure:"MODEL_ID"`        // Chat model for code generation
	VisionModelID string `mapstructure:"VISION_MODEL_ID"` // Vision model for screenshot description

	// Preview Configuration
	SandboxDefineURL string `mapstructure:"SANDBOX_DEFINE_URL"` // Optional bundler define endpoint for react-mui bundles
	SnackEmbedURL    string `mapstructure:"SNACK_EMBED_URL"`    // Mobile sandbox embed endpoint
	DartPadEmbedURL  string `mapstructure:"DARTPAD_EMBED_URL"`  // Dart playground embed endpoint
	DartPadURLBudget int    `mapstructure:"DARTPAD_URL_BUDGET"` // Safe URL length for the Dart playground

	// Publish Configuration
	OutputDir string `mapstructure:"OUTPUT_DIR"` // Directory generated projects are published to

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"` // "text" or "json"
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)     // Path to look for the config file in
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")

	// Defaults also register the keys so AutomaticEnv can resolve them.
	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("MODEL_ID", "gpt-4o")
	viper.SetDefault("VISION_MODEL_ID", "gpt-4o")
	viper.SetDefault("SANDBOX_DEFINE_URL", "")
	viper.SetDefault("SNACK_EMBED_URL", "https://snack.expo.dev/embedded")
	viper.SetDefault("DARTPAD_EMBED_URL", "https://dartpad.dev/embed-flutter.html")
	viper.SetDefault("DARTPAD_URL_BUDGET", 7000)
	viper.SetDefault("OUTPUT_DIR", "output")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	viper.AutomaticEnv() // Read environment variables that match keys

	err = viper.ReadInConfig()
	if err != nil {
		// If config file not found, continue on env vars and defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// A missing key is reported here but only fails the first model call,
	// so the preview and publish routes stay usable.
	if config.OpenAIKey == "" {
		log.Println("WARN: OPENAI_API_KEY is not set. Model invocations will fail until it is provided.")
	}

	return
}
