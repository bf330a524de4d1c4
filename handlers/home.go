package handlers

import (
	"portfolio_site_go/middleware"
	"portfolio_site_go/models"
	"portfolio_site_go/router"
	"portfolio_site_go/services"
	"portfolio_site_go/services/dateformat"
	"portfolio_site_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// excerptLength bounds excerpts derived from post bodies on list pages.
const excerptLength = 200

// Home renders the landing page. Backend failures here degrade to empty
// sections instead of an error page.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	lang := middleware.GetLocale(c)

	projects, err := h.api.ListProjects(ctx)
	if err != nil {
		c.Logger().Warnf("Failed to load projects: %v", err)
	}

	var posts []models.Post
	if latest, err := h.api.ListPosts(ctx, 1, latestPostCount); err != nil {
		c.Logger().Warnf("Failed to load latest posts: %v", err)
	} else {
		posts = publishedOnly(latest.Items)
	}

	data := pages.HomeData{
		Personal: h.site.Personal(lang),
		Socials:  h.site.Socials,
		Projects: projects,
		Posts:    h.postCards(c, posts, lang),
		BlogURL:  router.URL(c.Echo(), router.PostList),
	}

	return h.render(c, page{
		seo:            h.homeSEO(),
		body:           pages.Home(data),
		structuredData: h.personSchema(lang),
	})
}

// postCards prepares posts for a list, formatting dates for lang.
func (h *Handler) postCards(c echo.Context, posts []models.Post, lang string) []pages.PostCard {
	cards := make([]pages.PostCard, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		cards = append(cards, pages.PostCard{
			URL:     router.URL(c.Echo(), router.PostDetail, p.ID),
			Title:   p.Title,
			Excerpt: services.Excerpt(p.Excerpt, p.Content, excerptLength),
			Date:    h.dates.FormatDate(p.PublishedAt(), lang, dateformat.StyleMedium),
			ISODate: p.PublishedAt(),
			Tags:    p.Tags,
		})
	}
	return cards
}

func publishedOnly(posts []models.Post) []models.Post {
	out := posts[:0:0]
	for _, p := range posts {
		if p.IsPublished {
			out = append(out, p)
		}
	}
	return out
}
