// Package i18n resolves request languages and localizes framework copy.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys for framework-owned copy.
const (
	KeyInvalidRequestTitle   = "ajax.invalid_request.title"
	KeyInvalidRequestMessage = "ajax.invalid_request.message"
	KeyUnknownErrorTitle     = "ajax.unknown_error.title"
	KeyUnknownErrorMessage   = "ajax.unknown_error.message"
	KeyEventNotFound         = "ajax.event_not_found"
)

// LangParam is the query parameter used to force a language.
const LangParam = "lang"

var supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[string]string{
	language.AmericanEnglish: {
		KeyInvalidRequestTitle:   "Invalid Request Value",
		KeyInvalidRequestMessage: "A value in the request was found to be incorrect.",
		KeyUnknownErrorTitle:     "Unknown Error",
		KeyUnknownErrorMessage:   "An AJAX call resulted in an unknown server error",
		KeyEventNotFound:         "The Event To Be Triggered Could Not Be Found",
	},
	language.BrazilianPortuguese: {
		KeyInvalidRequestTitle:   "Valor de requisição inválido",
		KeyInvalidRequestMessage: "Um valor da requisição foi considerado incorreto.",
		KeyUnknownErrorTitle:     "Erro desconhecido",
		KeyUnknownErrorMessage:   "Uma chamada AJAX resultou em um erro desconhecido no servidor",
		KeyEventNotFound:         "O evento a ser disparado não foi encontrado",
	},
}

var builder = mustBuildCatalog()

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: register " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Default returns the fallback language.
func Default() language.Tag {
	return language.AmericanEnglish
}

// Supported returns the languages with registered copy.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match maps arbitrary tags onto a supported language.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[idx]
}

// ResolveTag picks the request language from the lang query parameter, then
// Accept-Language, then the default.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if r.URL != nil {
		if raw := strings.TrimSpace(r.URL.Query().Get(LangParam)); raw != "" {
			if tag, err := language.Parse(raw); err == nil {
				return Match(tag)
			}
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return Match(tags...)
		}
	}
	return Default()
}

// Printer returns a message printer bound to the framework catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag), message.Catalog(builder))
}

// Localizer formats framework copy for one language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ForRequest returns the localizer for the request language.
func ForRequest(r *http.Request) Localizer {
	return Printer(ResolveTag(r))
}
