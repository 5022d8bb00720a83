// Package locale provides per-user language preferences and message
// localization for the bot's user-facing strings.
//
// Messages are addressed by key constants and rendered with named {placeholder}
// substitution. Lookup falls back from the user's language to the configured
// default and finally to English; a key missing everywhere renders as the key
// itself so a catalog gap never breaks a reply.
package locale

import (
	"fmt"
	"strings"
)

// Code identifies one of the supported display languages.
type Code string

const (
	English Code = "english"
	French  Code = "french"
	Spanish Code = "spanish"
	Twi     Code = "twi"
)

// IsValid reports whether c is a recognised language code.
func (c Code) IsValid() bool {
	switch c {
	case English, French, Spanish, Twi:
		return true
	}
	return false
}

// Title returns the human-readable native name of the language, as shown on
// the language selection keyboard.
func (c Code) Title() string {
	switch c {
	case English:
		return "English"
	case French:
		return "Français"
	case Spanish:
		return "Español"
	case Twi:
		return "Twi"
	default:
		return string(c)
	}
}

// Codes lists all supported languages in keyboard order.
func Codes() []Code {
	return []Code{English, French, Spanish, Twi}
}

// ParseSelection maps a free-text language selection to its code,
// case-insensitively, accepting both the native name ("français") and the
// internal name ("french"). ok is false for any other text, which the caller
// then treats as an ordinary search query.
func ParseSelection(text string) (Code, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "english":
		return English, true
	case "français", "french":
		return French, true
	case "español", "spanish":
		return Spanish, true
	case "twi":
		return Twi, true
	}
	return "", false
}

// Args holds named placeholder values for message rendering.
type Args map[string]any

// Message keys.
const (
	KeyGreeting       = "greeting"
	KeyPick           = "pick"
	KeyCancel         = "cancel"
	KeyDownloading    = "downloading"
	KeySent           = "sent"
	KeyNoResults      = "no_results"
	KeySetLang        = "set_lang"
	KeyLangSet        = "lang_set"
	KeyInvalidSession = "invalid_session"
	KeySessionExpired = "session_expired"
	KeySearchError    = "search_error"
	KeyDownloadError  = "download_error"
	KeyHelp           = "help"
	KeyLegal          = "legal"
)

// Localizer renders message keys into localized strings using a user's
// preferred language. It is safe for concurrent use; the catalog is immutable
// after construction.
type Localizer struct {
	prefs       *PrefStore
	defaultLang Code
}

// NewLocalizer creates a Localizer reading preferences from prefs and falling
// back to defaultLang for users without a stored preference.
func NewLocalizer(prefs *PrefStore, defaultLang Code) *Localizer {
	if !defaultLang.IsValid() {
		defaultLang = English
	}
	return &Localizer{prefs: prefs, defaultLang: defaultLang}
}

// Text renders key for userID with the given args.
func (l *Localizer) Text(userID int64, key string, args Args) string {
	lang := l.prefs.Get(userID)
	return render(lookup(lang, l.defaultLang, key), args)
}

// lookup resolves key through the fallback chain lang → def → English → key.
func lookup(lang, def Code, key string) string {
	for _, c := range []Code{lang, def, English} {
		if msgs, ok := catalog[c]; ok {
			if s, ok := msgs[key]; ok {
				return s
			}
		}
	}
	return key
}

// render substitutes {name} placeholders with their arg values.
func render(template string, args Args) string {
	if len(args) == 0 {
		return template
	}
	pairs := make([]string, 0, len(args)*2)
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
