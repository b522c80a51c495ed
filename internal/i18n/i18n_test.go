package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":           LocaleZH,
		"zh":         LocaleZH,
		"zh_CN":      LocaleZH,
		"zh-HK":      LocaleTW,
		"zh-Hant-TW": LocaleTW,
		"en":         LocaleEN,
		"en-GB":      LocaleEN,
		"fr-FR":      LocaleZH,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("normalize %q want %s got %s", raw, want, got)
		}
	}
}

func TestResolveLocalePriority(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/quote?lang=en-US", nil)
	c.Request.Header.Set("X-Locale", "zh-TW")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("query lang should win, got %s", got)
	}

	c.Request = httptest.NewRequest("GET", "/quote", nil)
	c.Request.Header.Set("X-Locale", "zh-TW")
	c.Request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if got := ResolveLocale(c); got != LocaleTW {
		t.Fatalf("X-Locale should beat Accept-Language, got %s", got)
	}

	c.Request = httptest.NewRequest("GET", "/quote", nil)
	c.Request.Header.Set("Accept-Language", "fr-FR,en;q=0.8")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("first supported Accept-Language tag should be used, got %s", got)
	}
}

func TestParseAcceptLanguageWeights(t *testing.T) {
	cases := map[string]string{
		"en;q=0.1, zh-TW;q=0.9": LocaleTW,
		"zh-CN;q=0.5, en-US":    LocaleEN,
		"zh-HK":                 LocaleTW,
		"fr-FR, zh-TW;q=0.5":    LocaleTW,
		"fr-FR, de;q=0.9":       LocaleZH,
		"":                      LocaleZH,
		";;;":                   LocaleZH,
	}
	for header, want := range cases {
		if got := parseAcceptLanguage(header); got != want {
			t.Fatalf("accept-language %q want %s got %s", header, want, got)
		}
	}
}

func TestTranslateFallbacks(t *testing.T) {
	if got := T(LocaleEN, "error.pricing_rule_not_found"); got == "error.pricing_rule_not_found" {
		t.Fatalf("known key should translate")
	}
	if got := T(LocaleEN, "error.__missing__"); got != "error.__missing__" {
		t.Fatalf("unknown key should fall back to itself, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.quote_too_long", 24); got != "Booking duration cannot exceed 24 hours" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestAllLocalesShareKeys(t *testing.T) {
	base := messages[DefaultLocale]
	for _, locale := range []string{LocaleTW, LocaleEN} {
		for key := range base {
			if _, ok := messages[locale][key]; !ok {
				t.Fatalf("locale %s missing key %s", locale, key)
			}
		}
		if len(messages[locale]) != len(base) {
			t.Fatalf("locale %s key count mismatch: %d vs %d", locale, len(messages[locale]), len(base))
		}
	}
}
