package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile           = ".env"
	defaultRequestsPerSecond = 5
	defaultRedirectURI       = "http://localhost"
	defaultDBName            = "league.db"
	defaultPort              = "8080"
	defaultDraftFile         = "draft.csv"
)

// Load reads configuration for the server from environment variables and the
// env file. PORT and DB_NAME are required.
func Load() Config {
	return load(true)
}

// LoadCLI reads configuration for the command line tool. Nothing is required.
func LoadCLI() Config {
	return load(false)
}

func load(strict bool) Config {
	envFile := getEnvDefault("ENV_FILE", defaultEnvFile)
	err := godotenv.Load(envFile)
	if err != nil {
		log.Info("No .env file found, reading from environment variables", "file", envFile)
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		if strict {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
		return fallback
	}

	cfg := Config{
		DBName:     getEnv("DB_NAME", defaultDBName),
		Port:       getEnv("PORT", defaultPort),
		EnvFile:    envFile,
		LogLevel:   getEnvDefault("LOG_LEVEL", "info"),
		MedalsFile: getEnvDefault("MEDALS_FILE", ""),
		DraftFile:  getEnvDefault("DRAFT_FILE", defaultDraftFile),
		Halo: HaloConfig{
			SpartanToken:      getEnvDefault("SPARTAN_TOKEN", ""),
			ClearanceToken:    getEnvDefault("CLEARANCE_TOKEN", ""),
			RequestsPerSecond: getEnvFloat("HALO_REQUESTS_PER_SECOND", defaultRequestsPerSecond),
		},
		Azure: AzureConfig{
			ClientID:     getEnvDefault("AZURE_CLIENT_ID", ""),
			ClientSecret: getEnvDefault("AZURE_CLIENT_SECRET", ""),
			RedirectURI:  getEnvDefault("AZURE_REDIRECT_URI", defaultRedirectURI),
			RefreshToken: getEnvDefault("AZURE_REFRESH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnvDefault("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvDefault("SLACK_CHANNEL_ID", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnvDefault("GCP_PROJECT", ""),
	}
	return cfg
}

// ParseLevel maps LOG_LEVEL to a log level, defaulting to info.
func (c Config) ParseLevel() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", c.LogLevel)
		return log.InfoLevel
	}
	return level
}

func getEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn("Invalid number in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return f
}
