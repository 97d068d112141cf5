// Package config loads typed configuration from the environment.
//
// Each package declares a Config struct with caarlos0/env tags; the binary
// loads them once at startup:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Values from a .env file (joho/godotenv) fill in variables missing from the
// process environment.
package config
