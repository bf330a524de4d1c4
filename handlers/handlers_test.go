package handlers

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"testing"
	"time"

	"portfolio_site_go/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/projects/", http.StatusOK, []map[string]interface{}{
		{"id": 1, "title": "Portfolio", "description": "This site", "category": "Web", "tags": []string{"Go"}, "order": "1"},
	})
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusOK, postPage(samplePosts(), 2, 1, 3))

	rec := get(e, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en-GB">`)
	assert.Contains(t, body, "Portfolio")
	assert.Contains(t, body, "Second post")
	assert.Contains(t, body, "4 Feb 2026")
	assert.NotContains(t, body, "Draft")
	assert.Contains(t, body, `href="/blog/post/2"`)
	assert.Contains(t, body, `"@type":"Person"`)
	assert.Contains(t, body, "googletagmanager.com/gtag/js?id=G-TEST123")
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "googletagmanager")
}

func TestHomeChinese(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/projects/", http.StatusOK, []interface{}{})
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusOK, postPage(samplePosts(), 2, 1, 3))

	rec := get(e, "/?lang=zh")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="zh-HK">`)
	assert.Contains(t, rec.Body.String(), "2026年2月4日")
}

func TestHomeBackendDown(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/projects/", http.StatusInternalServerError, map[string]string{"detail": "boom"})
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusInternalServerError, map[string]string{"detail": "boom"})

	rec := get(e, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Projects are on their way.")
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestPostList(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusOK, postPage(samplePosts(), 5, 2, 2))

	rec := get(e, "/blog?page=2")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Second post")
	assert.Contains(t, body, "Body two")
	assert.NotContains(t, body, "Draft")
	assert.Contains(t, body, `href="/blog" rel="prev"`)
	assert.Contains(t, body, `href="/blog?page=3" rel="next"`)
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, `<link rel="canonical" href="https://tomsinp.com/blog?page=2">`)

	reqs := mock.Requests()
	require.NotEmpty(t, reqs)
	last := reqs[len(reqs)-1]
	assert.Equal(t, "2", last.URL.Query().Get("page"))
	assert.Equal(t, "2", last.URL.Query().Get("size"))
}

func TestPostListInvalidPage(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusOK, postPage(nil, 0, 1, 2))

	for _, target := range []string{"/blog?page=abc", "/blog?page=-3", "/blog?page=0"} {
		t.Run(target, func(t *testing.T) {
			rec := get(e, target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "No posts yet.")

			reqs := mock.Requests()
			assert.Equal(t, "1", reqs[len(reqs)-1].URL.Query().Get("page"))
		})
	}
}

func TestPostListBackendError(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusInternalServerError, map[string]string{"detail": "db down"})

	rec := get(e, "/blog")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestPostDetail(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/2", http.StatusOK, map[string]interface{}{
		"id": 2, "title": "Second post", "excerpt": "Short summary",
		"content":      "## Heading\n\n<script>alert(1)</script>\n\n[site](https://example.com)",
		"tags":         []string{"go", "web"},
		"is_published": true,
		"created_at":   "2026-02-04T09:08:32.000078",
	})

	rec := get(e, "/blog/post/2")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Second post</h1>")
	assert.Contains(t, body, "Published 4 February 2026 at 09:08 am")
	assert.Contains(t, body, "Heading</h2>")
	assert.NotContains(t, body, "alert(1)</script>")
	assert.Contains(t, body, `<meta name="description" content="Short summary">`)
	assert.Contains(t, body, `<meta property="og:type" content="article">`)
	assert.Contains(t, body, `<meta property="article:published_time" content="2026-02-04T09:08:32Z">`)
	assert.Contains(t, body, `<meta property="article:tag" content="web">`)
	assert.Contains(t, body, `"@type":"BlogPosting"`)
	assert.Contains(t, body, `"datePublished":"2026-02-04T09:08:32Z"`)
	assert.Contains(t, body, `gtag('event', "page_view", {"page_path":"/blog/post/2","send_to":"G-TEST123"});`)
	assert.Contains(t, body, `gtag('event', "select_content", {"content_type":"post","item_id":"2"});`)
}

func TestPostDetailNotFound(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/9", http.StatusNotFound, map[string]string{"detail": "Post not found"})
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/3", http.StatusOK, map[string]interface{}{
		"id": 3, "title": "Draft", "is_published": false,
	})

	tests := []struct {
		name   string
		target string
	}{
		{"Backend 404", "/blog/post/9"},
		{"Non-numeric id", "/blog/post/abc"},
		{"Zero id", "/blog/post/0"},
		{"Unpublished", "/blog/post/3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(e, tt.target)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "Page not found")
			assert.Contains(t, rec.Body.String(), `content="noindex, nofollow"`)
		})
	}
}

func TestPostDetailBackendError(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/2", http.StatusServiceUnavailable, map[string]string{"detail": "down"})

	rec := get(e, "/blog/post/2")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	e, _, _ := setupServer(t)

	rec := get(e, "/nope", "Accept-Language", "zh-HK")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
	assert.Contains(t, rec.Body.String(), `<html lang="zh-HK">`)
}

func TestSitemap(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusOK, postPage(samplePosts(), 2, 1, 100))

	rec := get(e, "/sitemap.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	var set SitemapURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.URLs, 3)
	assert.Equal(t, "https://tomsinp.com/", set.URLs[0].Loc)
	assert.Equal(t, "https://tomsinp.com/blog", set.URLs[1].Loc)
	assert.Equal(t, "https://tomsinp.com/blog/post/2", set.URLs[2].Loc)
	assert.Equal(t, "2026-02-04T09:08:32Z", set.URLs[2].LastMod)
}

func TestSitemapBackendDown(t *testing.T) {
	e, mock, _ := setupServer(t)
	mock.HandleJSON(http.MethodGet, "/api/v1/blog/", http.StatusBadGateway, map[string]string{"detail": "down"})

	rec := get(e, "/sitemap.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	var set SitemapURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	assert.Len(t, set.URLs, 2)
}

func TestRobots(t *testing.T) {
	e, _, _ := setupServer(t)

	rec := get(e, "/robots.txt")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://tomsinp.com/sitemap.xml")
	assert.Contains(t, rec.Body.String(), "Disallow: /healthz")
}

func TestHealthz(t *testing.T) {
	t.Run("BackendUp", func(t *testing.T) {
		e, mock, _ := setupServer(t)
		mock.HandleJSON(http.MethodGet, "/", http.StatusOK, map[string]string{"message": "ok"})

		rec := get(e, "/healthz")

		require.Equal(t, http.StatusOK, rec.Code)
		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "ok", status.Status)
		assert.Equal(t, "ok", status.Backend)
		assert.Equal(t, "2026-02-04T12:00:00Z", status.Time)
	})

	t.Run("BackendDown", func(t *testing.T) {
		e, _, _ := setupServer(t)

		rec := get(e, "/healthz")

		require.Equal(t, http.StatusOK, rec.Code)
		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "unreachable", status.Backend)
	})

	t.Run("ScheduledResult", func(t *testing.T) {
		e, mock, h := setupServer(t)
		checked := time.Date(2026, 2, 4, 11, 55, 0, 0, time.UTC)
		h.backend = fakeBackend{reachable: false, checkedAt: checked}

		rec := get(e, "/healthz")

		require.Equal(t, http.StatusOK, rec.Code)
		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "unreachable", status.Backend)
		assert.Equal(t, "2026-02-04T11:55:00Z", status.CheckedAt)
		assert.Empty(t, mock.Requests())
	})

	t.Run("NoScheduledResultYet", func(t *testing.T) {
		e, mock, h := setupServer(t)
		h.backend = fakeBackend{}
		mock.HandleJSON(http.MethodGet, "/", http.StatusOK, map[string]string{"message": "ok"})

		rec := get(e, "/healthz")

		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "ok", status.Backend)
		assert.Equal(t, "2026-02-04T12:00:00Z", status.CheckedAt)
		assert.Len(t, mock.Requests(), 1)
	})
}

type fakeBackend struct {
	reachable bool
	checkedAt time.Time
}

func (f fakeBackend) Status() (bool, time.Time) {
	return f.reachable, f.checkedAt
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("x"))
	assert.Equal(t, 1, parsePage("0"))
	assert.Equal(t, 4, parsePage("4"))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/blog", pageURL("/blog", 1))
	assert.Equal(t, "/blog?page=3", pageURL("/blog", 3))
}

func TestRateLimitedPage(t *testing.T) {
	e, _, _ := setupServer(t)
	e.Use(middleware.NewRateLimiter(middleware.RateLimitConfig{Requests: 1}).Middleware())

	require.Equal(t, http.StatusOK, get(e, "/robots.txt").Code)

	rec := get(e, "/robots.txt?lang=zh")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "請稍候")
	assert.Contains(t, rec.Body.String(), `<p class="status">429</p>`)
}
