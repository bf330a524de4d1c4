package middleware

import (
	"net/http"
	"strings"
	"time"

	"portfolio_site_go/config"
	"portfolio_site_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const (
	// LangParam is the query parameter used to switch language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "lang"
)

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Configured default
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	fallback := cfg.DefaultLocale
	if !i18n.IsSupported(fallback) {
		fallback = i18n.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := strings.ToLower(strings.TrimSpace(c.QueryParam(LangParam)))
			if i18n.IsSupported(lang) {
				c.SetCookie(languageCookie(lang, cfg.IsProduction()))
			} else {
				lang = ""
				if cookie, err := c.Cookie(LangCookieName); err == nil && i18n.IsSupported(cookie.Value) {
					lang = cookie.Value
				}
			}

			if lang == "" {
				if accept := c.Request().Header.Get("Accept-Language"); strings.TrimSpace(accept) != "" {
					lang = i18n.Match(accept)
				} else {
					lang = fallback
				}
			}

			// Echo context for handlers, request context for templates
			c.Set("locale", lang)
			ctx := i18n.WithLocale(c.Request().Context(), lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func languageCookie(lang string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     LangCookieName,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour), // 1 year
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok && lang != "" {
		return lang
	}
	return i18n.Default()
}
