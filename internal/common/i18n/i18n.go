// Package i18n holds the Indonesian/English message catalog and the per-request
// locale. A locale is an explicit value: chosen at startup from config, resolved
// per request, carried in the context and changed only by an explicit action.
package i18n

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported UI language.
type Locale string

const (
	Indonesian Locale = "id"
	English    Locale = "en"

	// CookieName stores the locale chosen through the language switcher.
	CookieName = "iwms_lang"
)

// Key identifies a catalog message.
type Key string

const (
	KeyLoadFailed     Key = "errors.load_failed"
	KeyRenderFailed   Key = "errors.render_failed"
	KeyRetry          Key = "actions.retry"
	KeyNoData         Key = "common.no_data"
	KeyDashboardTitle Key = "dashboard.title"
	KeyOverview       Key = "nav.overview"
	KeyLanguage       Key = "nav.language"
)

var catalog = map[Locale]map[Key]string{
	Indonesian: {
		KeyLoadFailed:     "Terjadi kesalahan saat memuat data. Silakan coba lagi nanti.",
		KeyRenderFailed:   "Terjadi kesalahan saat menampilkan halaman ini.",
		KeyRetry:          "Coba lagi",
		KeyNoData:         "Tidak ada data",
		KeyDashboardTitle: "Dasbor IWMS",
		KeyOverview:       "Ringkasan",
		KeyLanguage:       "Bahasa",
	},
	English: {
		KeyLoadFailed:     "An error occurred while loading data. Please try again later.",
		KeyRenderFailed:   "An error occurred while displaying this page.",
		KeyRetry:          "Try again",
		KeyNoData:         "No data",
		KeyDashboardTitle: "IWMS Dashboard",
		KeyOverview:       "Overview",
		KeyLanguage:       "Language",
	},
}

var supported = []language.Tag{language.Indonesian, language.English}

var matcher = language.NewMatcher(supported)

// Parse returns the supported locale for s, or fallback when s is not supported.
func Parse(s string, fallback Locale) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case Indonesian:
		return Indonesian
	case English:
		return English
	}
	return fallback
}

// Translator renders catalog messages for one locale.
type Translator struct {
	locale Locale
}

// NewTranslator returns a translator for locale, falling back to Indonesian
// for unsupported values.
func NewTranslator(locale Locale) Translator {
	if _, ok := catalog[locale]; !ok {
		locale = Indonesian
	}
	return Translator{locale: locale}
}

func (t Translator) Locale() Locale { return t.locale }

// T returns the message for key. Missing keys fall back to Indonesian and then to
// the key itself.
func (t Translator) T(key Key, args ...interface{}) string {
	msg, ok := catalog[t.locale][key]
	if !ok {
		msg, ok = catalog[Indonesian][key]
	}
	if !ok {
		return string(key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Resolver picks the locale for a request.
type Resolver struct {
	Default Locale
}

// Resolve applies, in order: the "lang" query parameter, the locale cookie,
// the Accept-Language header, and the configured default.
func (r Resolver) Resolve(req *http.Request) Locale {
	def := Parse(string(r.Default), Indonesian)

	if q := req.URL.Query().Get("lang"); q != "" {
		return Parse(q, def)
	}
	if c, err := req.Cookie(CookieName); err == nil && c.Value != "" {
		return Parse(c.Value, def)
	}
	if accept := req.Header.Get("Accept-Language"); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return Locale(supported[idx].String())
			}
		}
	}
	return def
}

type ctxKey struct{}

// NewContext returns a context carrying locale.
func NewContext(ctx context.Context, locale Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// FromContext returns the locale stored in ctx, or Indonesian.
func FromContext(ctx context.Context) Locale {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(Locale); ok {
			return l
		}
	}
	return Indonesian
}

// TranslatorFromContext is NewTranslator(FromContext(ctx)).
func TranslatorFromContext(ctx context.Context) Translator {
	return NewTranslator(FromContext(ctx))
}

// Middleware resolves the request locale and stores it in the request context.
func (r Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		locale := r.Resolve(req)
		next.ServeHTTP(w, req.WithContext(NewContext(req.Context(), locale)))
	})
}
