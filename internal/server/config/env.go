package config

import (
	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from the process environment. A local
// .env file, if present, is loaded first without overriding variables that
// are already set.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
