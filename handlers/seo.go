package handlers

import (
	"strings"
	"time"

	"portfolio_site_go/config"
	"portfolio_site_go/models"
	"portfolio_site_go/services"
	"portfolio_site_go/services/dateformat"
	"portfolio_site_go/services/i18n"
)

// descriptionLength is the meta description budget for post pages.
const descriptionLength = 160

// baseSEO returns site-wide metadata for path. An empty title uses the site title.
func (h *Handler) baseSEO(title, path string) *models.SEO {
	if title == "" {
		title = h.site.Title
	}
	seo := models.NewSEO(title, h.site.Description).
		WithCanonical(config.AbsoluteURL(h.cfg.AppURL, path)).
		WithImage(config.AbsoluteURL(h.cfg.AppURL, h.site.OGImage))
	seo.Keywords = h.site.Keywords
	return seo
}

// homeSEO is the landing page's metadata.
func (h *Handler) homeSEO() *models.SEO {
	return h.baseSEO("", "/")
}

// blogSEO is the post index's metadata.
func (h *Handler) blogSEO(lang, path string) *models.SEO {
	seo := h.baseSEO(i18n.Translate(lang, "meta.blog_title", i18n.Args{"site": h.site.Author}), path)
	seo.Description = i18n.Translate(lang, "meta.blog_description", i18n.Args{"author": h.site.Author})
	return seo
}

// postSEO describes a single post as an article.
func (h *Handler) postSEO(post *models.Post, path string) *models.SEO {
	seo := h.baseSEO(post.Title+" | "+h.site.Author, path).AsArticle(models.ArticleMeta{
		PublishedTime: rfc3339(post.PublishedAt()),
		Author:        h.site.Author,
		Tags:          post.Tags,
	})
	seo.Description = services.Excerpt(post.Excerpt, post.Content, descriptionLength)
	if len(post.Tags) > 0 {
		seo.Keywords = joinTags(post.Tags)
	}
	return seo
}

// alternateLocales lists the supported languages other than lang, for hreflang.
func alternateLocales(lang string) []string {
	var alts []string
	for _, l := range i18n.Supported() {
		if l != lang {
			alts = append(alts, l)
		}
	}
	return alts
}

func joinTags(tags []string) string {
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ", ")
}

// rfc3339 normalizes a backend timestamp to UTC RFC 3339, or "" when unparseable.
func rfc3339(raw string) string {
	t, ok := dateformat.Parse(raw)
	if !ok {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// personSchema is the schema.org description of the site's author.
func (h *Handler) personSchema(lang string) map[string]interface{} {
	var sameAs []string
	for _, s := range []string{h.site.Socials.GitHub, h.site.Socials.LinkedIn, h.site.Socials.Instagram} {
		if s != "" {
			sameAs = append(sameAs, s)
		}
	}
	return map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Person",
		"name":        h.site.Author,
		"url":         h.cfg.AppURL,
		"description": h.site.Personal(lang).About,
		"sameAs":      sameAs,
	}
}

// postSchema is the schema.org BlogPosting for a post.
func (h *Handler) postSchema(post *models.Post, canonical string) map[string]interface{} {
	schema := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": post.Title,
		"url":      canonical,
		"author": map[string]interface{}{
			"@type": "Person",
			"name":  h.site.Author,
		},
	}
	if published := rfc3339(post.PublishedAt()); published != "" {
		schema["datePublished"] = published
	}
	if len(post.Tags) > 0 {
		schema["keywords"] = joinTags(post.Tags)
	}
	return schema
}
