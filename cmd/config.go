package cmd

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all runtime settings, parsed from the environment.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	SMTPHost     string `env:"SMTP_HOST,required"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM,required"`

	// PendingOrderTTL is how long an order may sit unpaid before the
	// expiration sweep cancels it.
	PendingOrderTTL time.Duration `env:"PENDING_ORDER_TTL" envDefault:"30m"`

	// ReturnReminderAge is how long a return may sit in awaiting_shipment
	// before the customer gets a shipment reminder.
	ReturnReminderAge time.Duration `env:"RETURN_REMINDER_AGE" envDefault:"168h"`

	// MirrorReturnResolutions controls whether rejected/completed returns
	// are annotated on the parent order's ledger.
	MirrorReturnResolutions bool `env:"MIRROR_RETURN_RESOLUTIONS" envDefault:"true"`
}

// ParseConfig reads the configuration from the environment.
func ParseConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
