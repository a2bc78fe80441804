package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// geminiOpenAIBaseURL is Gemini's OpenAI-compatible endpoint.
const geminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Config holds the application configuration
type Config struct {
	LLM         LLMConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Environment string
	LogLevel    string
}

// LLMConfig holds the LLM configuration
type LLMConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig holds the history database configuration
type DatabaseConfig struct {
	Path string
}

// Load loads the configuration from the environment. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("gemini_base_url", geminiOpenAIBaseURL)
	v.SetDefault("system_prompt", "")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8000")
	v.SetDefault("history_db_path", "chat_history.db")
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	config := Config{
		LLM: LLMConfig{
			APIKey:       v.GetString("gemini_api_key"),
			BaseURL:      v.GetString("gemini_base_url"),
			Model:        v.GetString("gemini_model"),
			SystemPrompt: v.GetString("system_prompt"),
		},
		Server: ServerConfig{
			Host: v.GetString("server_host"),
			Port: v.GetString("server_port"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("history_db_path"),
		},
		Environment: v.GetString("environment"),
		LogLevel:    v.GetString("log_level"),
	}

	return &config, nil
}
