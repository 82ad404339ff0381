package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		Env:         getenv("APP_ENV", "dev"),
		Rental: Rental{
			RentalDurationDays:    getenvInt("RENTAL_DURATION_DAYS", 21),
			ExtensionDurationDays: getenvInt("EXTENSION_DURATION_DAYS", 14),
			MaxExtensions:         getenvInt("MAX_EXTENSIONS", 2),
		},
	}
	if err := cfg.Rental.Validate(); err != nil {
		slog.Error("invalid rental config", "err", err)
		panic(err)
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("invalid int env", "key", k, "value", v)
		panic("invalid int env " + k)
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
