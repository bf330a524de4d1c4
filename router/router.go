// Package router defines the site's named routes and reverse routing.
package router

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

// Route names.
const (
	Home       = "home"
	PostList   = "post-list"
	PostDetail = "post-detail"
	Sitemap    = "sitemap"
	Robots     = "robots"
	Healthz    = "healthz"
)

// Route paths, keyed by name.
var paths = map[string]string{
	Home:       "/",
	PostList:   "/blog",
	PostDetail: "/blog/post/:id",
	Sitemap:    "/sitemap.xml",
	Robots:     "/robots.txt",
	Healthz:    "/healthz",
}

// StaticPrefix is where files from the static directory are served.
const StaticPrefix = "/static"

// Handlers is the set of page handlers the router wires up.
type Handlers interface {
	Home(c echo.Context) error
	PostList(c echo.Context) error
	PostDetail(c echo.Context) error
	Sitemap(c echo.Context) error
	Robots(c echo.Context) error
	Healthz(c echo.Context) error
	HTTPErrorHandler(err error, c echo.Context)
}

// Register adds the named routes, static files and the error handler to e.
func Register(e *echo.Echo, h Handlers, staticDir string) {
	e.HTTPErrorHandler = h.HTTPErrorHandler

	e.GET(paths[Home], h.Home).Name = Home
	e.GET(paths[PostList], h.PostList).Name = PostList
	e.GET(paths[PostDetail], h.PostDetail).Name = PostDetail

	e.GET(paths[Sitemap], h.Sitemap).Name = Sitemap
	e.GET(paths[Robots], h.Robots).Name = Robots
	e.GET(paths[Healthz], h.Healthz).Name = Healthz

	e.Static(StaticPrefix, staticDir)
}

// Path returns the path pattern of a named route.
func Path(name string) (string, bool) {
	p, ok := paths[name]
	return p, ok
}

// URL reverse-routes name with params filling its :placeholders in order.
// Routes registered on e win; otherwise the built-in table is used, so URLs
// can be built before the server is wired. Unknown names return "".
func URL(e *echo.Echo, name string, params ...interface{}) string {
	if e != nil {
		if u := e.Reverse(name, params...); u != "" {
			return u
		}
	}

	pattern, ok := paths[name]
	if !ok {
		return ""
	}
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if len(params) == 0 {
			break
		}
		segments[i] = fmt.Sprint(params[0])
		params = params[1:]
	}
	return strings.Join(segments, "/")
}
