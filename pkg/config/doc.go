// Package config loads application configuration from environment variables.
//
// Configuration is described by plain structs with `env:` tags handled by
// github.com/caarlos0/env. On the first Load call the package also reads an
// optional .env file via github.com/joho/godotenv, so local development does
// not require exporting variables manually.
//
// # Usage
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure and is intended for configuration the process
// cannot start without.
package config
