package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"example.com/numwordle/internal/app"
	"example.com/numwordle/internal/cli"
	"example.com/numwordle/internal/config"
	"example.com/numwordle/internal/i18n"
)

const exitInterrupted = 130

func main() {
	// minimal logger until the configured one exists
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Message)
	}
	os.Exit(exitCode(err))
}

// run owns everything between argument parsing and the end of the game.
// Player-facing messages for game failures are printed by the app itself.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", app.ErrUnexpected, r)
			fmt.Fprintln(out, genericMessage()+": "+err.Error())
		}
	}()

	envCfg, err := config.LoadFromEnv()
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	cfg, shouldExit, err := cli.Parse(args, out, envCfg)
	if err != nil || shouldExit {
		return err
	}

	log := app.NewLogger(cfg.Log.Level, cfg.Log.Format, errOut)
	a, err := app.New(cfg, log, app.Options{In: in, Out: out})
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	return a.Run(ctx)
}

// genericMessage renders the fallback error text in the base locale; no
// language has been chosen when a failure escapes the app.
func genericMessage() string {
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return app.ErrUnexpected.Error()
	}
	return bundle.Translator(i18n.BaseLocale).Sprintf(i18n.KeyErrorGeneric)
}

func exitCode(err error) int {
	var exitErr *cli.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, app.ErrAborted):
		return exitInterrupted
	default:
		return 1
	}
}
