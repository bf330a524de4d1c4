package components

import (
	"net/url"

	"portfolio_site_go/config"
	"portfolio_site_go/middleware"
	"portfolio_site_go/models"
	"portfolio_site_go/services/analytics"
)

// LayoutProps is everything the page shell needs besides the body.
type LayoutProps struct {
	SEO       *models.SEO
	Lang      string
	Path      string // request path, used for the language switch and page_view
	Analytics *analytics.Loader
	// Events are extra gtag events sent once the page loads.
	Events []analytics.Event
	Site   config.SiteInfo
	Year   int
	// StructuredData, when set, is emitted as JSON-LD.
	StructuredData interface{}
}

func (p LayoutProps) seo() *models.SEO {
	if p.SEO != nil {
		return p.SEO
	}
	return models.NewSEO(p.Site.Title, p.Site.Description)
}

func (p LayoutProps) currentPath() string {
	if p.Path == "" {
		return "/"
	}
	return p.Path
}

// WithLang returns rawURL with its lang query parameter set.
func WithLang(rawURL, lang string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(middleware.LangParam, lang)
	u.RawQuery = q.Encode()
	return u.String()
}

func langClass(lang, current string) string {
	if lang == current {
		return "lang active"
	}
	return "lang"
}

type socialLink struct {
	label, href string
}

func socialLinks(s config.Socials) []socialLink {
	var links []socialLink
	for _, l := range []socialLink{
		{"GitHub", s.GitHub},
		{"LinkedIn", s.LinkedIn},
		{"Instagram", s.Instagram},
		{"Email", s.Email},
	} {
		if l.href != "" {
			links = append(links, l)
		}
	}
	return links
}
