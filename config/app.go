package config

import "time"

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	TokenTTL time.Duration

	// Per-route-class rate limits. The limiter itself is class-agnostic;
	// routes pick one of these pairs.
	RateAuth     RateClass
	RatePosts    RateClass
	RateComments RateClass
	RateGeneral  RateClass

	// Allow-lists for post image URLs.
	ImageHosts []string
	ImageExts  []string
}

type RateClass struct {
	Limit  int
	Window time.Duration
}

// Dev reports whether the app runs in a development-like mode. Error
// envelopes include internal details only when this is true.
func (a App) Dev() bool { return a.Env != "production" }
