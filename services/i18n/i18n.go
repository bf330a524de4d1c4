package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed *.json
var locales embed.FS

// catalog maps dotted message keys to text, e.g. "nav.home" -> "Home".
type catalog map[string]string

// Args fills {name} placeholders in a message.
type Args map[string]interface{}

var (
	mutex       sync.RWMutex
	catalogs    = map[string]catalog{}
	defaultLang = "en"
)

// supported lists the UI languages in matcher order; the first is the default.
var supported = []string{"en", "zh"}

// matchTags and matchLangs are parallel: both Chinese scripts map to zh.
var (
	matchTags  = []language.Tag{language.English, language.TraditionalChinese, language.SimplifiedChinese}
	matchLangs = []string{"en", "zh", "zh"}
	matcher    = language.NewMatcher(matchTags)
)

// Load reads every embedded <lang>.json file. The catalogs are swapped in
// only once all files parse, so a bad file leaves the previous set in place.
func Load() error {
	names, err := fs.Glob(locales, "*.json")
	if err != nil {
		return fmt.Errorf("list embedded locales: %w", err)
	}

	loaded := make(map[string]catalog, len(names))
	for _, name := range names {
		cat, err := readCatalog(name)
		if err != nil {
			return err
		}
		lang := strings.TrimSuffix(name, ".json")
		loaded[lang] = cat
		log.Printf("[INFO] Loaded locale: %s (%d keys)", lang, len(cat))
	}

	mutex.Lock()
	catalogs = loaded
	mutex.Unlock()
	return nil
}

func readCatalog(name string) (catalog, error) {
	content, err := locales.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read locale %s: %w", name, err)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(content, &tree); err != nil {
		return nil, fmt.Errorf("parse locale %s: %w", name, err)
	}
	cat := catalog{}
	cat.add("", tree)
	return cat, nil
}

// add stores node under key. Objects nest with dots; other JSON values are
// kept in their printed form.
func (c catalog) add(key string, node interface{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for child, sub := range v {
			if key != "" {
				child = key + "." + child
			}
			c.add(child, sub)
		}
	case string:
		c[key] = v
	default:
		c[key] = fmt.Sprint(v)
	}
}

// T translates key into the language stored in ctx.
// Missing keys fall back to the default language, and then to the key itself.
func T(ctx context.Context, key string, args ...Args) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate translates key into lang.
func Translate(lang, key string, args ...Args) string {
	mutex.RLock()
	defer mutex.RUnlock()

	for _, l := range []string{lang, defaultLang} {
		if text, ok := catalogs[l][key]; ok {
			return format(text, args...)
		}
	}
	return key
}

// format fills {name} placeholders. With several Args the later ones win;
// placeholders without a value are left as written.
func format(text string, args ...Args) string {
	if len(args) == 0 || !strings.Contains(text, "{") {
		return text
	}
	merged := Args{}
	for _, a := range args {
		for k, v := range a {
			merged[k] = v
		}
	}
	pairs := make([]string, 0, 2*len(merged))
	for k, v := range merged {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Default returns the fallback UI language.
func Default() string {
	return defaultLang
}

// Supported returns the UI languages the site ships messages for.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether lang is one of the shipped UI languages.
func IsSupported(lang string) bool {
	for _, s := range supported {
		if s == lang {
			return true
		}
	}
	return false
}

// Match picks the best supported language for an Accept-Language header value.
// zh-HK, zh-TW and zh-Hant all resolve to zh; anything unmatched gives the default.
func Match(acceptLanguage string) string {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return defaultLang
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return defaultLang
	}
	return matchLangs[index]
}

// Keys for context storage
type contextKey string

const LocaleContextKey contextKey = "locale"

// GetLocale extracts the locale from the context, defaulting to "en".
// The value is stored by the Locale middleware.
func GetLocale(ctx context.Context) string {
	if val := ctx.Value(LocaleContextKey); val != nil {
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}
	return defaultLang
}

// WithLocale returns a copy of ctx carrying lang.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}
