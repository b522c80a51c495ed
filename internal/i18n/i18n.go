package i18n

import (
	"fmt"
	"strings"

	"github.com/venue-next/internal/constants"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleZH = constants.LocaleZhCN
	LocaleTW = constants.LocaleZhTW
	LocaleEN = constants.LocaleEnUS
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleZH

// 匹配器候选与 constants.SupportedLocales 下标一一对应，首项为默认语言
var localeMatcher = newLocaleMatcher(constants.SupportedLocales)

func newLocaleMatcher(locales []string) language.Matcher {
	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tags = append(tags, language.MustParse(locale))
	}
	return language.NewMatcher(tags)
}

// T 翻译消息键，缺失时依次回退到默认语言与键本身
func T(locale, key string) string {
	locale = NormalizeLocale(locale)
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}

// ResolveLocale 解析请求语言：lang 参数 > X-Locale > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	if header := strings.TrimSpace(c.GetHeader("X-Locale")); header != "" {
		return NormalizeLocale(header)
	}
	return parseAcceptLanguage(c.GetHeader("Accept-Language"))
}

// NormalizeLocale 归一化语言标签
func NormalizeLocale(raw string) string {
	tag := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	switch {
	case tag == "":
		return DefaultLocale
	case tag == "zh-tw" || tag == "zh-hk" || tag == "zh-hant" || strings.HasPrefix(tag, "zh-hant-"):
		return LocaleTW
	case strings.HasPrefix(tag, "zh"):
		return LocaleZH
	case strings.HasPrefix(tag, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// parseAcceptLanguage 按 q 权重匹配支持的语言
func parseAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(constants.SupportedLocales) {
		return DefaultLocale
	}
	return constants.SupportedLocales[index]
}
