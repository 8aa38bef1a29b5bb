package config

import (
	"log/slog"
	"os"
	"time"
)

func Load() App {
	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),
		Env:         getenv("APP_ENV", "dev"),

		TokenTTL: 7 * 24 * time.Hour,

		RateAuth:     RateClass{Limit: 5, Window: 15 * time.Minute},
		RatePosts:    RateClass{Limit: 10, Window: time.Minute},
		RateComments: RateClass{Limit: 20, Window: time.Minute},
		RateGeneral:  RateClass{Limit: 100, Window: time.Minute},

		ImageHosts: []string{
			"images.unsplash.com",
			"plus.unsplash.com",
			"res.cloudinary.com",
			"i.imgur.com",
		},
		ImageExts: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
