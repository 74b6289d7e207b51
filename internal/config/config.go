// internal/config/config.go
//
// Process configuration.
//
// Values come from the environment, optionally seeded from a .env file in the
// working directory (existing variables win). Every field has a default, so
// a bare `develordle play` works without any setup.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"PORT"       envDefault:"8080"    validate:"required,numeric"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"    validate:"oneof=trace debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`
	// LogFile is where logs go; empty means stderr for serve and nowhere for play.
	LogFile string `env:"LOG_FILE"`

	WordsFile   string        `env:"WORDS_FILE"   validate:"omitempty,file"`
	StrictWords bool          `env:"STRICT_WORDS" envDefault:"false"`
	TargetMode  string        `env:"TARGET_MODE"  envDefault:"random" validate:"oneof=random daily"`
	DailySalt   string        `env:"DAILY_SALT"   envDefault:"develordle"`
	RevealDelay time.Duration `env:"REVEAL_DELAY" envDefault:"300ms" validate:"gt=0"`
	NoticeTTL   time.Duration `env:"NOTICE_TTL"   envDefault:"2s"    validate:"gt=0"`

	ClientOrigin   string        `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`
	JWTSecret      string        `env:"JWT_SECRET"       envDefault:"dev_secret_change_me" validate:"min=8"`
	SessionTTL     time.Duration `env:"SESSION_TTL"      envDefault:"2h" validate:"gt=0"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS"   envDefault:"10" validate:"gt=0"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"20" validate:"gte=1"`
}

var validate = validator.New()

// Load reads .env (if present) and the environment into a validated Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
