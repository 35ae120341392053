package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"example.com/numwordle/internal/config"
	"example.com/numwordle/internal/console"
	"example.com/numwordle/internal/ctxlog"
	"example.com/numwordle/internal/game"
	"example.com/numwordle/internal/i18n"
)

var (
	// ErrAborted is returned by Run when its context is cancelled mid-game.
	ErrAborted = errors.New("game aborted")
	// ErrUnexpected wraps a panic recovered during a game.
	ErrUnexpected = errors.New("unexpected failure")
)

type App struct {
	cfg    config.Config
	log    *slog.Logger
	bundle *i18n.Bundle
	con    *console.Console
	gen    *game.Generator

	// tr follows the player's language once chosen.
	tr *i18n.Translator
}

type Options struct {
	In   io.Reader
	Out  io.Writer
	Rand *rand.Rand // optional; nil seeds from the runtime
}

func New(cfg config.Config, log *slog.Logger, opts Options) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	bundle, err := loadBundle(cfg.Locales.Dir)
	if err != nil {
		return nil, err
	}
	if cfg.Game.Language != "" {
		if _, ok := bundle.Lookup(cfg.Game.Language); !ok {
			return nil, fmt.Errorf("unknown language selection %q", cfg.Game.Language)
		}
	}

	return &App{
		cfg:    cfg,
		log:    log,
		bundle: bundle,
		con:    console.New(opts.In, opts.Out),
		gen:    game.NewGenerator(opts.Rand),
		tr:     bundle.Translator(i18n.BaseLocale),
	}, nil
}

func loadBundle(dir string) (*i18n.Bundle, error) {
	if dir == "" {
		return i18n.LoadEmbedded()
	}
	b, err := i18n.LoadFromFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("locales %s: %w", dir, err)
	}
	return b, nil
}

// Run plays one game to the end. Failures are reported to the player in
// their language before being returned: ErrAborted on cancellation,
// console.ErrInputClosed when input runs out, anything else as a generic
// error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.log)
	defer a.con.Close()

	err := a.playRecovered(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		a.log.Info("game aborted")
		_ = a.con.Println("\n" + a.tr.Sprintf(i18n.KeyAborted))
		return fmt.Errorf("%w: %w", ErrAborted, err)
	case errors.Is(err, console.ErrInputClosed):
		a.log.Info("input closed")
		_ = a.con.Println("\n" + a.tr.Sprintf(i18n.KeyInputClosed))
		return err
	default:
		a.log.Error("game failed", "err", err)
		_ = a.con.Println(a.tr.Sprintf(i18n.KeyErrorGeneric) + ": " + err.Error())
		return err
	}
}

func (a *App) playRecovered(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()
	return a.play(ctx)
}

func (a *App) play(ctx context.Context) error {
	lang, err := a.selectLanguage(ctx)
	if err != nil {
		return err
	}
	a.tr = a.bundle.Translator(lang.Locale)

	if err := a.con.Println(a.tr.Sprintf(i18n.KeyGreeting)); err != nil {
		return err
	}

	digits, err := a.selectDigits(ctx)
	if err != nil {
		return err
	}

	sess, err := game.NewSession(a.gen, digits)
	if err != nil {
		return err
	}
	log := ctxlog.FromContext(ctx).With("session", sess.ID())
	log.Info("game started", "digits", digits, "locale", a.tr.Locale(), "language", a.tr.Sprintf(i18n.KeyLanguageName))

	for !sess.Finished() {
		input, err := a.con.ReadLine(ctx, a.tr.Sprintf(i18n.KeyGuessPrompt))
		if err != nil {
			return err
		}

		res, err := sess.Submit(strings.TrimSpace(input))
		if err != nil {
			return err
		}

		switch r := res.(type) {
		case game.Score:
			log.Debug("round scored", "round", sess.Round(), "green", r.Green, "yellow", r.Yellow)
		case game.Invalid:
			log.Debug("guess rejected", "kind", r.Kind.String())
		}
		if err := a.con.Println(a.describe(sess.Round(), res)); err != nil {
			return err
		}
	}

	secret, _ := sess.Secret()
	log.Info("game won", "rounds", sess.Round())
	return a.con.Println(a.tr.Sprintf(i18n.KeyWin, secret, sess.Round()))
}

func (a *App) describe(round int, res game.Result) string {
	switch r := res.(type) {
	case game.Score:
		return a.tr.Sprintf(i18n.KeyGuessResult, round, r.Green, r.Yellow)
	case game.Invalid:
		switch r.Kind {
		case game.WrongLength:
			return a.tr.Sprintf(i18n.KeyErrorLength)
		case game.RepeatedDigit:
			return a.tr.Sprintf(i18n.KeyErrorRepeat)
		case game.NonDigitCharacter:
			return a.tr.Sprintf(i18n.KeyErrorDigit)
		}
	}
	return a.tr.Sprintf(i18n.KeyErrorGeneric)
}

func (a *App) selectLanguage(ctx context.Context) (i18n.Language, error) {
	if a.cfg.Game.Language != "" {
		lang, _ := a.bundle.Lookup(a.cfg.Game.Language)
		return lang, nil
	}
	if langs := a.bundle.Languages(); len(langs) == 1 {
		return langs[0], nil
	}

	prompt := a.bundle.Menu() + "\n> "
	for {
		input, err := a.con.ReadLine(ctx, prompt)
		if err != nil {
			return i18n.Language{}, err
		}
		if lang, ok := a.bundle.Lookup(input); ok {
			return lang, nil
		}
		if err := a.con.Println(a.tr.Sprintf(i18n.KeyLanguageInvalid)); err != nil {
			return i18n.Language{}, err
		}
	}
}

func (a *App) selectDigits(ctx context.Context) (int, error) {
	if a.cfg.Game.Digits != 0 {
		return a.cfg.Game.Digits, nil
	}

	for {
		input, err := a.con.ReadLine(ctx, a.tr.Sprintf(i18n.KeyDigitsPrompt, game.MinDigits, game.MaxDigits))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err == nil && game.ValidDigitCount(n) {
			return n, nil
		}
		if err := a.con.Println(a.tr.Sprintf(i18n.KeyDigitsInvalid, game.MinDigits, game.MaxDigits)); err != nil {
			return 0, err
		}
	}
}
