// Package config loads environment configuration into structs.
//
// A .env file in the working directory is loaded once (godotenv; a missing
// file is fine) and values are parsed with caarlos0/env using the `env` and
// `envDefault` struct tags. Each configuration type is parsed once and
// cached; later Load calls for the same type copy the cached value.
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parse skips the cache and is what tests use.
package config
