package config

import (
	"os"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Storage
	StorageBackend string // "jsonfile" (default) or "postgres"
	DataDir        string
	DatabaseURL    string
	TablePrefix    string

	// Auth; authentication is disabled when JWKSURL is empty
	JWKSURL string

	// AI providers
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string

	// Export
	WkhtmltopdfPath string

	// Template library
	TemplateDir string

	// Log files; written alongside stdout outside dev
	LogDir      string
	LogMaxFiles int

	Debug bool
}

// Load reads configuration from the environment with sensible dev
// defaults.
func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		StorageBackend: getEnv("STORAGE_BACKEND", "jsonfile"),
		DataDir:        getEnv("DATA_DIR", "data/documents"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		TablePrefix:    getTablePrefix(env),

		JWKSURL: getEnv("JWKS_URL", ""),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", ""),

		WkhtmltopdfPath: getEnv("WKHTMLTOPDF_PATH", ""),

		TemplateDir: getEnv("TEMPLATE_DIR", "data/templates"),

		LogDir:      getEnv("LOG_DIR", "logs"),
		LogMaxFiles: 10,

		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the postgres table prefix for the environment.
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
