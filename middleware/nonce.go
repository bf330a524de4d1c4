package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"portfolio_site_go/services/analytics"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// gtag loads from the tag manager and reports to the GA collection hosts.
var (
	gaConnectOrigins = []string{"https://*.google-analytics.com", "https://*.analytics.google.com", analytics.GTagOrigin}
	gaImageOrigins   = []string{"https://*.google-analytics.com", analytics.GTagOrigin}
)

// GenerateNonce returns 16 random bytes, base64url encoded.
func GenerateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ContentSecurityPolicy is the header value for one page view. Scripts run
// only from the site itself, the gtag loader, or inline with nonce.
func ContentSecurityPolicy(nonce string) string {
	directives := []string{
		"default-src 'self'",
		fmt.Sprintf("script-src 'self' 'nonce-%s' %s", nonce, analytics.GTagOrigin),
		"style-src 'self'",
		"img-src 'self' data: " + strings.Join(gaImageOrigins, " "),
		"connect-src 'self' " + strings.Join(gaConnectOrigins, " "),
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}

// CSPNonce sets a fresh nonce and the matching Content-Security-Policy on
// every request. Templates read the nonce back with templ.GetNonce.
func CSPNonce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				c.Logger().Errorf("Failed to generate nonce: %v", err)
				nonce = strings.ReplaceAll(uuid.NewString(), "-", "")
			}

			ctx := templ.WithNonce(c.Request().Context(), nonce)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Header().Set("Content-Security-Policy", ContentSecurityPolicy(nonce))
			return next(c)
		}
	}
}
