package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"example.com/numwordle/internal/game"
)

// Config describes all runtime settings for the game.
//
// Load it once in main, validate, and pass it down; nothing reads the
// environment after startup.
type Config struct {
	Env string `env:"APP_ENV" envDefault:"dev"` // dev|prod

	Log struct {
		Format string `env:"FORMAT" envDefault:"text"` // text|json
		Level  string `env:"LEVEL"`                    // debug|info|warn|error; default depends on Env
	} `envPrefix:"LOG_"`

	Game struct {
		Language string `env:"LANGUAGE"` // menu selection key; empty asks the player
		Digits   int    `env:"DIGITS"`   // 0 asks the player
	} `envPrefix:"GAME_"`

	Locales struct {
		Dir string `env:"DIR"` // empty uses the embedded catalogs
	} `envPrefix:"LOCALES_"`
}

// LoadFromEnv reads the given .env files (default ".env"; missing files are
// skipped), then the process environment. Variables already set in the
// environment win over file values.
func LoadFromEnv(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel(c.Env)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultLogLevel keeps prod runs to errors only; dev shows warnings.
func DefaultLogLevel(appEnv string) string {
	if appEnv == "prod" {
		return "error"
	}
	return "warn"
}

func (c Config) Validate() error {
	if c.Env != "dev" && c.Env != "prod" {
		return fmt.Errorf("unsupported APP_ENV=%q (want dev|prod)", c.Env)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want text|json)", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL=%q (want debug|info|warn|error)", c.Log.Level)
	}
	if c.Game.Digits != 0 && !game.ValidDigitCount(c.Game.Digits) {
		return fmt.Errorf("GAME_DIGITS=%d: %w", c.Game.Digits, game.ErrInvalidDigitCount)
	}
	return nil
}
