// Package cli parses command-line flags on top of the environment config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"example.com/numwordle/internal/config"
	"example.com/numwordle/internal/game"
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Parse applies flags from args over base. It returns the merged config, a
// flag telling the caller to exit cleanly (help was printed), or an
// *ExitError with code 2 for bad usage.
func Parse(args []string, output io.Writer, base config.Config) (config.Config, bool, error) {
	flagSet := flag.NewFlagSet("numwordle", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
numwordle - guess the secret number; every digit in it is different.

Usage:
  numwordle [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	langFlag := flagSet.String("lang", base.Game.Language, "Language selection key (1=English, 2=Ukrainian, 3=German, 4=Spanish). Empty asks.")
	digitsFlag := flagSet.Int("digits", base.Game.Digits, fmt.Sprintf("Number of digits in the secret (%d-%d). 0 asks.", game.MinDigits, game.MaxDigits))
	localesFlag := flagSet.String("locales", base.Locales.Dir, "Directory with <locale>.json catalogs. Empty uses the built-in ones.")
	logFormatFlag := flagSet.String("log-format", base.Log.Format, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", base.Log.Level, "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return config.Config{}, true, nil
		}
		return config.Config{}, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return config.Config{}, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	c := base
	c.Game.Language = strings.TrimSpace(*langFlag)
	c.Game.Digits = *digitsFlag
	c.Locales.Dir = *localesFlag
	c.Log.Format = strings.ToLower(*logFormatFlag)
	c.Log.Level = strings.ToLower(*logLevelFlag)

	if err := c.Validate(); err != nil {
		return config.Config{}, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return c, false, nil
}
