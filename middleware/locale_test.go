package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio_site_go/config"
	"portfolio_site_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runLocale(t *testing.T, cfg *config.Config, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Locale(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
	return c, rec
}

func langCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == LangCookieName {
			return cookie
		}
	}
	return nil
}

func TestLocale(t *testing.T) {
	cfg := &config.Config{Environment: "development", DefaultLocale: "en"}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=zh", nil)
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "zh", c.Get("locale"))
		cookie := langCookie(rec)
		if assert.NotNil(t, cookie) {
			assert.Equal(t, "zh", cookie.Value)
			assert.False(t, cookie.Secure)
		}
	})

	t.Run("UnsupportedQueryParamIgnored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "zh"})
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "zh", c.Get("locale"))
		assert.Nil(t, langCookie(rec))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "zh"})
		req.Header.Set("Accept-Language", "en-GB")
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "zh", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "zh-HK,zh;q=0.9,en;q=0.8")
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "zh", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, _ := runLocale(t, &config.Config{DefaultLocale: "zh"}, req)

		assert.Equal(t, "zh", c.Get("locale"))
	})

	t.Run("UnsupportedDefaultFallsBackToEnglish", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, _ := runLocale(t, &config.Config{DefaultLocale: "fr"}, req)

		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("RequestContext", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/?lang=zh", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Locale(cfg)(func(c echo.Context) error {
			assert.Equal(t, "zh", i18n.GetLocale(c.Request().Context()))
			return c.NoContent(http.StatusOK)
		})

		assert.NoError(t, handler(c))
	})

	t.Run("SecureCookieInProduction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		_, rec := runLocale(t, &config.Config{Environment: "production", DefaultLocale: "en"}, req)

		cookie := langCookie(rec)
		if assert.NotNil(t, cookie) {
			assert.True(t, cookie.Secure)
		}
	})
}

func TestGetLocale(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "en", GetLocale(c))

	c.Set("locale", "zh")
	assert.Equal(t, "zh", GetLocale(c))
}
