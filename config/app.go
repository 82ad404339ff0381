package config

import "fmt"

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	Rental Rental
}

// Rental holds the process-wide lending constants. Built once in Load and
// injected into the rental service; nothing reads the environment after
// startup.
type Rental struct {
	RentalDurationDays    int `env:"RENTAL_DURATION_DAYS" default:"21"`
	ExtensionDurationDays int `env:"EXTENSION_DURATION_DAYS" default:"14"`
	MaxExtensions         int `env:"MAX_EXTENSIONS" default:"2"`
}

func (r Rental) Validate() error {
	if r.RentalDurationDays <= 0 {
		return fmt.Errorf("rental duration must be positive, got %d", r.RentalDurationDays)
	}
	if r.ExtensionDurationDays <= 0 {
		return fmt.Errorf("extension duration must be positive, got %d", r.ExtensionDurationDays)
	}
	if r.MaxExtensions < 0 {
		return fmt.Errorf("max extensions must not be negative, got %d", r.MaxExtensions)
	}
	return nil
}
