// Package handlers serves the site's pages from the backend API.
package handlers

import (
	"log"
	"net/http"
	"time"

	"portfolio_site_go/config"
	"portfolio_site_go/middleware"
	"portfolio_site_go/models"
	"portfolio_site_go/services/analytics"
	"portfolio_site_go/services/api"
	"portfolio_site_go/services/dateformat"
	"portfolio_site_go/services/i18n"
	"portfolio_site_go/templates/components"
	"portfolio_site_go/templates/pages"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// latestPostCount is how many posts the home page previews.
const latestPostCount = 3

// Handler holds what the page handlers share.
type Handler struct {
	cfg       *config.Config
	api       *api.Client
	dates     *dateformat.Formatter
	analytics *analytics.Loader
	site      config.SiteInfo
	backend   BackendStatus
	now       func() time.Time
}

// BackendStatus is the last scheduled backend check.
type BackendStatus interface {
	Status() (reachable bool, checkedAt time.Time)
}

// New builds a Handler. The display zone comes from cfg.DisplayTimezone;
// an invalid zone is logged and offsets are kept instead. backend may be
// nil, in which case /healthz pings the API itself.
func New(cfg *config.Config, client *api.Client, backend BackendStatus) *Handler {
	loc, err := cfg.Location()
	if err != nil {
		log.Printf("[WARNING] %v, keeping timestamp offsets", err)
	}

	return &Handler{
		cfg:       cfg,
		api:       client,
		dates:     &dateformat.Formatter{DefaultLocale: cfg.DefaultLocale, Location: loc},
		analytics: analytics.New(cfg.GAMeasurementID),
		site:      config.Site,
		backend:   backend,
		now:       time.Now,
	}
}

// page is one rendered page: the body plus its head metadata.
type page struct {
	status         int
	seo            *models.SEO
	body           templ.Component
	structuredData interface{}
	events         []analytics.Event
}

func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func (h *Handler) render(c echo.Context, p page) error {
	lang := middleware.GetLocale(c)
	if p.status == 0 {
		p.status = http.StatusOK
	}
	if p.seo != nil {
		p.seo.Locale = lang
		p.seo.AltLocales = alternateLocales(lang)
	}

	props := components.LayoutProps{
		SEO:            p.seo,
		Lang:           lang,
		Path:           c.Request().URL.Path,
		Analytics:      h.analytics,
		Events:         p.events,
		Site:           h.site,
		Year:           h.now().Year(),
		StructuredData: p.structuredData,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(p.status)
	return render(c, components.Layout(props, p.body))
}

func (h *Handler) notFound(c echo.Context) error {
	seo := h.baseSEO("", c.Request().URL.Path).WithNoIndex()
	return h.render(c, page{status: http.StatusNotFound, seo: seo, body: pages.NotFound()})
}

// backendError renders a 502 page. The backend's message is logged, never shown.
func (h *Handler) backendError(c echo.Context, err error) error {
	c.Logger().Errorf("Backend request failed for %s: %v", c.Request().URL.Path, err)
	seo := h.baseSEO("", c.Request().URL.Path).WithNoIndex()
	return h.render(c, page{
		status: http.StatusBadGateway,
		seo:    seo,
		body:   pages.Error(pages.ErrorData{Status: http.StatusBadGateway}),
	})
}

// HTTPErrorHandler renders localized error pages for unmatched routes and
// errors returned by handlers.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	} else {
		c.Logger().Errorf("Unhandled error for %s: %v", c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		if herr := c.NoContent(code); herr != nil {
			c.Logger().Error(herr)
		}
		return
	}

	var renderErr error
	switch code {
	case http.StatusNotFound:
		renderErr = h.notFound(c)
	default:
		data := pages.ErrorData{Status: code}
		if code == http.StatusTooManyRequests {
			lang := middleware.GetLocale(c)
			data.Title = i18n.Translate(lang, "errors.rate_limited_title")
			data.Body = i18n.Translate(lang, "errors.rate_limited_body")
		}
		seo := h.baseSEO("", c.Request().URL.Path).WithNoIndex()
		renderErr = h.render(c, page{status: code, seo: seo, body: pages.Error(data)})
	}
	if renderErr != nil {
		c.Logger().Error(renderErr)
	}
}
