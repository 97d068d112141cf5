package main

// appConfig holds the settings of the server binary. Component settings
// live in the Config of each package.
type appConfig struct {
	Env             string `env:"APP_ENV" envDefault:"development"`
	Name            string `env:"APP_NAME" envDefault:"shopreviews"`
	LogLevel        string `env:"LOG_LEVEL"`
	Storage         string `env:"APP_STORAGE" envDefault:"postgres"` // postgres or memory
	DefaultLanguage string `env:"APP_DEFAULT_LANGUAGE" envDefault:"en"`
	MetricsPath     string `env:"APP_METRICS_PATH" envDefault:"/metrics"`
	ReviewsPath     string `env:"APP_REVIEWS_PATH" envDefault:"/account_reviewlist"`
}

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
	sessionRedis    = "redis"
)

func (c appConfig) isDevelopment() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}
