package pages

import (
	"bytes"
	"context"
	"os"
	"testing"

	"portfolio_site_go/config"
	"portfolio_site_go/models"
	"portfolio_site_go/services/i18n"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func render(t *testing.T, lang string, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	ctx := i18n.WithLocale(context.Background(), lang)
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestHome(t *testing.T) {
	data := HomeData{
		Personal: config.Site.Personal("en"),
		Socials:  config.Site.Socials,
		Projects: []models.Project{{
			Title:       "Portfolio <v2>",
			Description: "This site",
			Tags:        []string{"Go", " "},
			GitHubURL:   "https://github.com/tomsin9/portfolio",
		}},
		Posts:   []PostCard{{URL: "/blog/post/1", Title: "Hello", Date: "4 Feb 2026", ISODate: "2026-02-04T09:08:32"}},
		BlogURL: "/blog",
	}

	html := render(t, "en", Home(data))

	assert.Contains(t, html, "Tom <span class='text-zinc-500'>SIN</span>")
	assert.Contains(t, html, "Portfolio &lt;v2&gt;")
	assert.Contains(t, html, `<li class="tag">Go</li>`)
	assert.NotContains(t, html, `<li class="tag"> </li>`)
	assert.Contains(t, html, `href="https://github.com/tomsin9/portfolio"`)
	assert.Contains(t, html, `<time datetime="2026-02-04T09:08:32">4 Feb 2026</time>`)
	assert.Contains(t, html, "View all posts")
}

func TestHomeEmptyProjects(t *testing.T) {
	html := render(t, "zh", Home(HomeData{Personal: config.Site.Personal("zh")}))

	assert.Contains(t, html, i18n.Translate("zh", "home.projects_empty"))
	assert.NotContains(t, html, "latest-posts")
}

func TestPostList(t *testing.T) {
	t.Run("Pagination", func(t *testing.T) {
		html := render(t, "en", PostList(PostListData{
			Posts:   []PostCard{{URL: "/blog/post/2", Title: "Second"}},
			Page:    2,
			Pages:   3,
			PrevURL: "/blog?page=1",
			NextURL: "/blog?page=3",
		}))

		assert.Contains(t, html, `href="/blog?page=1"`)
		assert.Contains(t, html, `href="/blog?page=3"`)
		assert.Contains(t, html, "Page 2 of 3")
	})

	t.Run("Empty", func(t *testing.T) {
		html := render(t, "en", PostList(PostListData{Page: 1, Pages: 1}))

		assert.Contains(t, html, "No posts yet.")
		assert.NotContains(t, html, "pagination")
	})
}

func TestPostDetail(t *testing.T) {
	html := render(t, "zh", PostDetail(PostDetailData{
		Title:    "標題",
		DateTime: "2026年2月4日 上午09:08",
		ISODate:  "2026-02-04T09:08:32",
		HTML:     "<p>Body</p>",
		BackURL:  "/blog",
	}))

	assert.Contains(t, html, "<h1>標題</h1>")
	assert.Contains(t, html, "2026年2月4日 上午09:08")
	assert.Contains(t, html, `<div class="prose"><p>Body</p></div>`)
	assert.Contains(t, html, `<a href="/blog" class="back">`)
}

func TestProjectLinksAreSanitized(t *testing.T) {
	html := render(t, "en", Home(HomeData{Projects: []models.Project{{
		Title:     "Bad link",
		GitHubURL: "javascript:alert(1)",
		LiveURL:   "https://tomsinp.com",
	}}}))

	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, `href="`+string(templ.FailedSanitizationURL)+`"`)
	assert.Contains(t, html, `href="https://tomsinp.com"`)
}

func TestErrorPages(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		html := render(t, "en", NotFound())
		assert.Contains(t, html, "404")
		assert.Contains(t, html, "Page not found")
	})

	t.Run("BackendFallbackCopy", func(t *testing.T) {
		html := render(t, "en", Error(ErrorData{Status: 502}))
		assert.Contains(t, html, "502")
		assert.Contains(t, html, "Something went wrong")
	})
}
