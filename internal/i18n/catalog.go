// Package i18n loads the game's message catalogs and renders localized text.
//
// Each locale is one JSON file:
//
//	{"locale": "en", "messages": {"greeting": "...", ...}}
//
// Message values are printf-style templates with positional verbs (%[1]d) and
// are rendered through golang.org/x/text/message for the locale's tag.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is used before a language has been chosen.
const BaseLocale = "en"

const (
	KeyLanguageName    = "language.name"
	KeyLanguageChoice  = "language.choice"
	KeyLanguagePrompt  = "language.prompt"
	KeyLanguageInvalid = "language.invalid"
	KeyGreeting        = "greeting"
	KeyDigitsPrompt    = "digits.prompt"
	KeyDigitsInvalid   = "digits.invalid"
	KeyGuessPrompt     = "guess.prompt"
	KeyGuessResult     = "guess.result"
	KeyErrorLength     = "error.length"
	KeyErrorRepeat     = "error.repeat"
	KeyErrorDigit      = "error.digit"
	KeyErrorGeneric    = "error.generic"
	KeyWin             = "win"
	KeyAborted         = "aborted"
	KeyInputClosed     = "input.closed"
)

// RequiredKeys must be present in every locale file.
var RequiredKeys = []string{
	KeyLanguageName,
	KeyLanguageChoice,
	KeyLanguagePrompt,
	KeyLanguageInvalid,
	KeyGreeting,
	KeyDigitsPrompt,
	KeyDigitsInvalid,
	KeyGuessPrompt,
	KeyGuessResult,
	KeyErrorLength,
	KeyErrorRepeat,
	KeyErrorDigit,
	KeyErrorGeneric,
	KeyWin,
	KeyAborted,
	KeyInputClosed,
}

// Language maps a menu selection to the catalog resource that serves it.
type Language struct {
	Key    string
	Locale string
	File   string
}

// Languages is the selection table, in menu order. Adding a language means
// adding a row here and shipping its file.
var Languages = []Language{
	{Key: "1", Locale: "en", File: "en.json"},
	{Key: "2", Locale: "uk", File: "uk.json"},
	{Key: "3", Locale: "de", File: "de.json"},
	{Key: "4", Locale: "es", File: "es.json"},
}

type localeFile struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

// Bundle holds every loaded locale.
type Bundle struct {
	builder   *catalog.Builder
	languages []Language
	messages  map[string]map[string]string
}

//go:embed locales/*.json
var embeddedLocales embed.FS

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("embedded locales: %w", err)
	}
	return LoadFromFS(sub)
}

// LoadFromFS loads the files named by Languages from the root of fsys.
// The base locale is mandatory; other files may be absent, in which case
// their language is left out of the menu.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	b := &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		messages: map[string]map[string]string{},
	}

	for _, lang := range Languages {
		data, err := fs.ReadFile(fsys, lang.File)
		if errors.Is(err, fs.ErrNotExist) && lang.Locale != BaseLocale {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", lang.File, err)
		}
		if err := b.add(lang, data); err != nil {
			return nil, err
		}
		b.languages = append(b.languages, lang)
	}

	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) add(lang Language, data []byte) error {
	var file localeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse catalog %s: %w", lang.File, err)
	}

	locale := strings.TrimSpace(file.Locale)
	if locale != lang.Locale {
		return fmt.Errorf("catalog %s: locale %q must be %q", lang.File, locale, lang.Locale)
	}
	if _, dup := b.messages[locale]; dup {
		return fmt.Errorf("catalog %s: locale %q already loaded", lang.File, locale)
	}

	var missing []string
	for _, key := range RequiredKeys {
		if strings.TrimSpace(file.Messages[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("catalog %s: missing keys %s", lang.File, strings.Join(missing, ", "))
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale tag %q: %w", lang.File, locale, err)
	}

	keys := make([]string, 0, len(file.Messages))
	for key := range file.Messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := b.builder.SetString(tag, key, file.Messages[key]); err != nil {
			return fmt.Errorf("catalog %s: key %q: %w", lang.File, key, err)
		}
	}

	b.messages[locale] = file.Messages
	return nil
}

// Languages returns the loaded languages in menu order.
func (b *Bundle) Languages() []Language {
	return append([]Language(nil), b.languages...)
}

// Lookup resolves a menu selection. Surrounding whitespace is ignored.
func (b *Bundle) Lookup(key string) (Language, bool) {
	key = strings.TrimSpace(key)
	for _, lang := range b.languages {
		if lang.Key == key {
			return lang, true
		}
	}
	return Language{}, false
}

// HasLocale reports whether the locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.messages[locale]
	return ok
}

// Translator returns a Translator for locale, or for the base locale if
// locale was not loaded.
func (b *Bundle) Translator(locale string) *Translator {
	if !b.HasLocale(locale) {
		locale = BaseLocale
	}
	tag := language.MustParse(locale)
	return &Translator{
		locale:  locale,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

// Menu renders the language selection menu: the base locale's prompt
// followed by each language's own choice line.
func (b *Bundle) Menu() string {
	var sb strings.Builder
	sb.WriteString(b.Translator(BaseLocale).Sprintf(KeyLanguagePrompt))
	for _, lang := range b.languages {
		sb.WriteString("\n\t")
		sb.WriteString(b.Translator(lang.Locale).Sprintf(KeyLanguageChoice, lang.Key))
	}
	return sb.String()
}

// Translator renders messages for one locale.
type Translator struct {
	locale  string
	printer *message.Printer
}

func (t *Translator) Locale() string { return t.locale }

// Sprintf renders the message stored under key with args. Integers are
// printed as plain digits, without locale grouping.
func (t *Translator) Sprintf(key string, args ...any) string {
	out := make([]any, len(args))
	for i, a := range args {
		if n, ok := a.(int); ok {
			a = plainInt(n)
		}
		out[i] = a
	}
	return t.printer.Sprintf(key, out...)
}

// plainInt bypasses the printer's number formatting.
type plainInt int

func (n plainInt) Format(f fmt.State, verb rune) {
	if verb == 'd' || verb == 'v' {
		_, _ = io.WriteString(f, strconv.Itoa(int(n)))
		return
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), int(n))
}
