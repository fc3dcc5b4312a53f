package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the whole process-wide configuration surface, loaded once at
// startup. Nothing here is hot-reloadable; the signing key in particular is
// read-only for the lifetime of the process.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"taskboard"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	TOTPIssuer string `env:"TOTP_ISSUER" envDefault:"TaskBoard"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	AdminEmail     string `env:"ADMIN_EMAIL"`
	AdminPassword  string `env:"ADMIN_PASSWORD"`
	AdminFirstName string `env:"ADMIN_FIRST_NAME" envDefault:"Admin"`
	AdminLastName  string `env:"ADMIN_LAST_NAME" envDefault:"Admin"`
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
