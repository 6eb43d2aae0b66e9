package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	JWTSecret              string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	OpenAIAPIKey           string
	ChatModel              string
	ChatMaxTokens          int
	ChatTemperature        float32
	AdminUIDs              string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// AdminUIDList splits the configured reviewer allow-list into identifiers.
// Entries are comma separated; whitespace is trimmed and empty entries are
// dropped. An unset list yields an empty slice, not an error.
func (c Config) AdminUIDList() []string {
	if strings.TrimSpace(c.AdminUIDs) == "" {
		return nil
	}

	parts := strings.Split(c.AdminUIDs, ",")
	uids := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		uids = append(uids, trimmed)
	}

	return uids
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MAUM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "MAUM API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cloudinary.folder", "maum/drawings")
	v.SetDefault("chat.model", "gpt-3.5-turbo")
	v.SetDefault("chat.max_tokens", 300)
	v.SetDefault("chat.temperature", 0.7)

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		OpenAIAPIKey:           v.GetString("openai_api_key"),
		ChatModel:              v.GetString("chat.model"),
		ChatMaxTokens:          v.GetInt("chat.max_tokens"),
		ChatTemperature:        float32(v.GetFloat64("chat.temperature")),
		AdminUIDs:              v.GetString("admin.uids"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("openai api key must be provided")
	}

	if cfg.ChatMaxTokens <= 0 {
		cfg.ChatMaxTokens = 300
	}

	return cfg, nil
}
