// Package i18n translates user-facing messages into English, Portuguese and Dutch.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client asks for nothing we support.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the request header consulted by GetLocale.
	AcceptLanguageHeader = "Accept-Language"

	localeContextKey = "i18n.locale"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks messages up in a locale → key → text catalogue.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator over the built-in catalogue.
func NewTranslator() *Translator {
	return &Translator{messages: messages}
}

// Locales lists the supported locales.
func Locales() []string {
	return []string{"en", "pt", "nl"}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, then in DefaultLocale,
// then the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the best supported locale from the Accept-Language header,
// honouring q-values. The choice is cached on the context.
func GetLocale(c *gin.Context) string {
	if v, ok := c.Get(localeContextKey); ok {
		if locale, ok := v.(string); ok {
			return locale
		}
	}
	locale := negotiate(c.GetHeader(AcceptLanguageHeader))
	c.Set(localeContextKey, locale)
	return locale
}

type languageRange struct {
	tag     string
	quality float64
}

// negotiate parses a header such as "fr-CH, fr;q=0.9, nl;q=0.8, *;q=0.5".
func negotiate(header string) string {
	if header == "" {
		return DefaultLocale
	}

	var ranges []languageRange
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if base, _, found := strings.Cut(tag, "-"); found {
			tag = base
		}
		if tag == "" {
			continue
		}

		q := 1.0
		if name, value, ok := strings.Cut(strings.TrimSpace(params), "="); ok && strings.TrimSpace(name) == "q" {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, languageRange{tag: tag, quality: q})
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].quality > ranges[j].quality
	})
	for _, r := range ranges {
		if r.tag == "*" {
			return DefaultLocale
		}
		if _, ok := messages[r.tag]; ok {
			return r.tag
		}
	}
	return DefaultLocale
}
