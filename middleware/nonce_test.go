package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	assert.NoError(t, err)
	assert.Len(t, nonce1, 22)

	nonce2, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()

	t.Run("SetsContextAndHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := CSPNonce()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		err := handler(c)
		assert.NoError(t, err)

		nonce := templ.GetNonce(c.Request().Context())
		assert.Len(t, nonce, 22)

		csp := rec.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, "nonce-"+nonce)
		assert.Contains(t, csp, "script-src")
	})

	t.Run("NewNoncePerRequest", func(t *testing.T) {
		var seen []string
		handler := CSPNonce()(func(c echo.Context) error {
			seen = append(seen, templ.GetNonce(c.Request().Context()))
			return c.NoContent(http.StatusOK)
		})

		for i := 0; i < 2; i++ {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			assert.NoError(t, handler(c))
		}
		assert.Len(t, seen, 2)
		assert.NotEqual(t, seen[0], seen[1])
	})
}

func TestContentSecurityPolicy(t *testing.T) {
	csp := ContentSecurityPolicy("abc")

	assert.Contains(t, csp, "script-src 'self' 'nonce-abc' https://www.googletagmanager.com")
	assert.Contains(t, csp, "https://*.google-analytics.com")
	assert.Contains(t, csp, "connect-src 'self'")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.NotContains(t, csp, "unsafe-eval")
	assert.NotContains(t, csp, "unsafe-inline")
}
