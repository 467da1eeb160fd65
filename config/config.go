package config

import "os"

// Config holds the environment-derived settings for the server. Everything
// has a local-development default except the Gemini key; without the key the
// server still runs, with the research endpoints disabled.
type Config struct {
	Port         string
	DatabaseURL  string // Postgres connection string; SQLite is used when empty
	SQLitePath   string
	GeminiAPIKey string
	GeminiModel  string
}

const defaultModel = "gemini-3-flash-preview"

func Load() Config {
	return Config{
		Port:         envOr("PORT", "8090"),
		DatabaseURL:  firstEnv("DATABASE_URL", "POSTGRES_URL"),
		SQLitePath:   envOr("THESIS_RADAR_DB", "thesis-radar.db"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", defaultModel),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
