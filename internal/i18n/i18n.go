// Package i18n provides localized user-facing messages. Catalogs are
// embedded; Indonesian is the default language with English fallback.
// An unknown key resolves to the raw key itself so that a missing
// translation never hides an error.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds the loaded message catalogs.
type Bundle struct {
	bundle *goi18n.Bundle
}

// NewBundle loads the embedded catalogs.
func NewBundle() (*Bundle, error) {
	b := goi18n.NewBundle(language.Indonesian)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, name := range []string{"locales/id.json", "locales/en.json"} {
		if _, err := b.LoadMessageFileFS(localeFS, name); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", name, err)
		}
	}

	return &Bundle{bundle: b}, nil
}

// Localizer resolves keys for one request's language preference.
type Localizer struct {
	loc *goi18n.Localizer
}

// Localizer returns a localizer for the given Accept-Language values,
// most preferred first.
func (b *Bundle) Localizer(langs ...string) *Localizer {
	return &Localizer{loc: goi18n.NewLocalizer(b.bundle, langs...)}
}

// T resolves a message key, falling back to the key itself when no
// catalog carries it.
func (l *Localizer) T(key string) string {
	msg, err := l.loc.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// Tf resolves a message key with template data.
func (l *Localizer) Tf(key string, data map[string]any) string {
	msg, err := l.loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return key
	}
	return msg
}
