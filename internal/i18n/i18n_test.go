package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator_Shared(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestTranslator_Translate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name     string
		key      string
		locale   string
		expected string
	}{
		{name: "english", key: ErrKeyInvalidRequest, locale: "en", expected: "Invalid request"},
		{name: "portuguese", key: ErrKeyInvalidRequest, locale: "pt", expected: "Requisição inválida"},
		{name: "dutch", key: ErrKeyInvalidRequest, locale: "nl", expected: "Ongeldig verzoek"},
		{name: "empty locale uses english", key: ErrKeyInvalidRequest, locale: "", expected: "Invalid request"},
		{name: "unsupported locale uses english", key: ErrKeyInvalidRequest, locale: "fr", expected: "Invalid request"},
		{name: "unknown key is returned as is", key: "unknown.key", locale: "pt", expected: "unknown.key"},
		{name: "incomplete input", key: ErrKeyIncompleteInput, locale: "pt", expected: "Faltam dados obrigatórios"},
		{name: "session not found", key: ErrKeySessionNotFound, locale: "nl", expected: "Chatsessie niet gevonden of verlopen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, translator.Translate(tt.key, tt.locale))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		acceptLanguage string
		expected       string
	}{
		{name: "no header", acceptLanguage: "", expected: DefaultLocale},
		{name: "single language", acceptLanguage: "pt", expected: "pt"},
		{name: "region is ignored", acceptLanguage: "nl-BE", expected: "nl"},
		{name: "case insensitive", acceptLanguage: "PT-br", expected: "pt"},
		{name: "first supported wins at equal quality", acceptLanguage: "fr-CH, nl, pt", expected: "nl"},
		{name: "highest quality wins", acceptLanguage: "en;q=0.2, pt;q=0.8, nl;q=0.5", expected: "pt"},
		{name: "unsupported languages are skipped", acceptLanguage: "fr-CH, fr;q=0.9, nl;q=0.8, *;q=0.5", expected: "nl"},
		{name: "q=0 excludes a language", acceptLanguage: "nl;q=0, fr", expected: DefaultLocale},
		{name: "wildcard", acceptLanguage: "*", expected: DefaultLocale},
		{name: "malformed quality is skipped", acceptLanguage: "pt;q=high, nl;q=0.1", expected: "nl"},
		{name: "nothing supported", acceptLanguage: "de, fr", expected: DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptLanguage != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.acceptLanguage)
			}
			assert.Equal(t, tt.expected, GetLocale(c))
		})
	}
}

func TestGetLocale_CachedOnContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(AcceptLanguageHeader, "nl")
	assert.Equal(t, "nl", GetLocale(c))

	c.Request.Header.Set(AcceptLanguageHeader, "pt")
	assert.Equal(t, "nl", GetLocale(c))
}

func TestCatalogue_Complete(t *testing.T) {
	english := messages[DefaultLocale]
	for _, locale := range Locales() {
		t.Run(locale, func(t *testing.T) {
			catalogue, ok := messages[locale]
			assert.True(t, ok)
			assert.Len(t, catalogue, len(english))
			for key := range english {
				assert.NotEmpty(t, catalogue[key], key)
			}
		})
	}
}
