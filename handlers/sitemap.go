package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"portfolio_site_go/config"
	"portfolio_site_go/router"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Sitemap generates the XML sitemap: static pages plus every published post.
func (h *Handler) Sitemap(c echo.Context) error {
	baseURL := h.cfg.AppURL
	e := c.Echo()

	urls := []SitemapURL{
		{Loc: config.AbsoluteURL(baseURL, router.URL(e, router.Home)), ChangeFreq: "weekly", Priority: 1.0},
		{Loc: config.AbsoluteURL(baseURL, router.URL(e, router.PostList)), ChangeFreq: "weekly", Priority: 0.8},
	}

	posts, err := h.api.AllPosts(c.Request().Context(), config.MaxPostsPerPage)
	if err != nil {
		// Keep whatever was fetched before the failure
		c.Logger().Errorf("Failed to fetch posts for sitemap: %v", err)
	}

	for _, post := range publishedOnly(posts) {
		entry := SitemapURL{
			Loc:        config.AbsoluteURL(baseURL, router.URL(e, router.PostDetail, post.ID)),
			ChangeFreq: "monthly",
			Priority:   0.6,
		}
		entry.LastMod = rfc3339(post.PublishedAt())
		urls = append(urls, entry)
	}

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// Robots serves robots.txt pointing crawlers at the sitemap.
func (h *Handler) Robots(c echo.Context) error {
	sitemap := config.AbsoluteURL(h.cfg.AppURL, router.URL(c.Echo(), router.Sitemap))
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: %s\n\nSitemap: %s\n",
		router.URL(c.Echo(), router.Healthz), sitemap)
	return c.String(http.StatusOK, body)
}
