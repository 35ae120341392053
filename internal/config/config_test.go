package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/numwordle/internal/game"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "LOG_FORMAT", "LOG_LEVEL", "GAME_LANGUAGE", "GAME_DIGITS", "LOCALES_DIR"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	c, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "dev", c.Env)
	assert.Equal(t, "text", c.Log.Format)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "", c.Game.Language)
	assert.Equal(t, 0, c.Game.Digits)
	assert.Equal(t, "", c.Locales.Dir)
}

func TestLoadFromEnv_Environment(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GAME_LANGUAGE", "3")
	t.Setenv("GAME_DIGITS", "5")
	t.Setenv("LOCALES_DIR", "/tmp/locales")

	c, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "3", c.Game.Language)
	assert.Equal(t, 5, c.Game.Digits)
	assert.Equal(t, "/tmp/locales", c.Locales.Dir)
}

func TestLoadFromEnv_DotEnvFile(t *testing.T) {
	t.Setenv("GAME_DIGITS", "")
	require.NoError(t, os.Unsetenv("GAME_DIGITS"))
	t.Setenv("GAME_LANGUAGE", "2")

	path := filepath.Join(t.TempDir(), "game.env")
	require.NoError(t, os.WriteFile(path, []byte("GAME_DIGITS=7\nGAME_LANGUAGE=4\n"), 0o600))

	c, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, 7, c.Game.Digits)
	assert.Equal(t, "2", c.Game.Language, "process environment wins over the file")
}

func TestLoadFromEnv_BadDigits(t *testing.T) {
	t.Setenv("GAME_DIGITS", "abc")
	_, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)

	t.Setenv("GAME_DIGITS", "11")
	_, err = LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, game.ErrInvalidDigitCount)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Env = "dev"
		c.Log.Format = "text"
		c.Log.Level = "info"
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"prod", func(c *Config) { c.Env = "prod" }, true},
		{"unknown env", func(c *Config) { c.Env = "staging" }, false},
		{"json", func(c *Config) { c.Log.Format = "json" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, false},
		{"one digit", func(c *Config) { c.Game.Digits = 1 }, true},
		{"ten digits", func(c *Config) { c.Game.Digits = 10 }, true},
		{"eleven digits", func(c *Config) { c.Game.Digits = 11 }, false},
		{"negative digits", func(c *Config) { c.Game.Digits = -1 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadFromEnv_ProdDefaultsToErrorLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Setenv("APP_ENV", "prod")

	c, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "prod", c.Env)
	assert.Equal(t, "error", c.Log.Level)

	t.Setenv("LOG_LEVEL", "debug")
	c, err = LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level, "explicit level wins over the env default")
}
