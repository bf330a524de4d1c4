package models

// Open Graph object types used by the site.
const (
	OGTypeWebsite = "website"
	OGTypeArticle = "article"
)

// SEO is the metadata rendered into a page's <head>.
type SEO struct {
	Title       string
	Description string
	Keywords    string
	// Canonical is absolute; it doubles as og:url and the x-default alternate.
	Canonical string
	// Image is the absolute og:image and twitter:image URL.
	Image       string
	OGTitle     string // empty uses Title
	OGDesc      string // empty uses Description
	OGType      string
	TwitterCard string
	NoIndex     bool
	Locale      string
	AltLocales  []string
	Article     *ArticleMeta
}

// ArticleMeta carries the og article:* properties of a blog post.
type ArticleMeta struct {
	PublishedTime string // RFC 3339
	Author        string
	Tags          []string
}

// NewSEO returns website metadata with a large image card.
func NewSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      OGTypeWebsite,
		TwitterCard: "summary_large_image",
	}
}

func (s *SEO) WithCanonical(url string) *SEO {
	s.Canonical = url
	return s
}

func (s *SEO) WithImage(url string) *SEO {
	s.Image = url
	return s
}

func (s *SEO) WithNoIndex() *SEO {
	s.NoIndex = true
	return s
}

// AsArticle switches the page to an og article.
func (s *SEO) AsArticle(meta ArticleMeta) *SEO {
	s.OGType = OGTypeArticle
	s.Article = &meta
	return s
}

// SocialTitle is the title shared on social cards.
func (s *SEO) SocialTitle() string {
	if s.OGTitle != "" {
		return s.OGTitle
	}
	return s.Title
}

// SocialDescription is the description shared on social cards.
func (s *SEO) SocialDescription() string {
	if s.OGDesc != "" {
		return s.OGDesc
	}
	return s.Description
}

// HreflangLocales lists the current locale followed by its alternates,
// skipping blanks.
func (s *SEO) HreflangLocales() []string {
	out := make([]string, 0, len(s.AltLocales)+1)
	for _, l := range append([]string{s.Locale}, s.AltLocales...) {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// OGLocale maps a UI language to an Open Graph locale, e.g. zh -> zh_HK.
func OGLocale(lang string) string {
	if lang == "zh" {
		return "zh_HK"
	}
	return "en_GB"
}
