package components

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"portfolio_site_go/config"
	"portfolio_site_go/models"
	"portfolio_site_go/services/analytics"
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

func body(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

func renderLayout(t *testing.T, lang string, props LayoutProps) string {
	t.Helper()
	ctx := i18n.WithLocale(context.Background(), lang)
	ctx = templ.WithNonce(ctx, "n0nce")

	var buf bytes.Buffer
	require.NoError(t, Layout(props, body("<p>page body</p>")).Render(ctx, &buf))
	return buf.String()
}

func TestLayout(t *testing.T) {
	seo := models.NewSEO("Blog | Tom", "Posts").
		WithCanonical("https://tomsinp.com/blog")
	seo.Locale = "en"
	seo.AltLocales = []string{"zh"}

	html := renderLayout(t, "en", LayoutProps{
		SEO:       seo,
		Lang:      "en",
		Path:      "/blog",
		Analytics: analytics.New("G-TEST123"),
		Site:      config.Site,
		Year:      2026,
	})

	assert.Contains(t, html, `<html lang="en-GB">`)
	assert.Contains(t, html, "<title>Blog | Tom</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://tomsinp.com/blog">`)
	assert.Contains(t, html, `hreflang="zh" href="https://tomsinp.com/blog?lang=zh"`)
	assert.Contains(t, html, `<meta property="og:locale" content="en_GB">`)
	assert.Contains(t, html, `src="https://www.googletagmanager.com/gtag/js?id=G-TEST123" nonce="n0nce"`)
	assert.Contains(t, html, `<script nonce="n0nce">`)
	assert.Contains(t, html, `gtag('config', "G-TEST123", {"send_page_view":false});`)
	assert.Contains(t, html, `gtag('event', "page_view", {"page_path":"/blog","send_to":"G-TEST123"});`)
	assert.Contains(t, html, "document.addEventListener('click'")
	assert.Equal(t, 1, strings.Count(html, `"page_view"`))
	assert.Contains(t, html, "<p>page body</p>")
	assert.Contains(t, html, `href="/blog?lang=zh"`)
	assert.Contains(t, html, "© 2026 Tom SIN")
}

func TestHeadArticle(t *testing.T) {
	seo := models.NewSEO("Hello", "First post").
		WithCanonical("https://tomsinp.com/blog/post/2").
		WithImage("https://tomsinp.com/static/images/og-image-square.png").
		AsArticle(models.ArticleMeta{
			PublishedTime: "2026-02-04T09:08:32Z",
			Author:        "Tom SIN",
			Tags:          []string{"go", ""},
		})

	var buf bytes.Buffer
	require.NoError(t, Head(seo, "zh").Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `<meta property="og:type" content="article">`)
	assert.Contains(t, html, `<meta property="article:published_time" content="2026-02-04T09:08:32Z">`)
	assert.Contains(t, html, `<meta property="article:author" content="Tom SIN">`)
	assert.Equal(t, 1, strings.Count(html, "article:tag"))
	assert.Contains(t, html, `<meta name="twitter:image" content="https://tomsinp.com/static/images/og-image-square.png">`)
	assert.Contains(t, html, `<meta property="og:locale" content="zh_HK">`)
}

func TestLayoutWithoutAnalytics(t *testing.T) {
	html := renderLayout(t, "zh", LayoutProps{Lang: "zh", Site: config.Site, Analytics: analytics.New("")})

	assert.Contains(t, html, `<html lang="zh-HK">`)
	assert.Contains(t, html, "<title>"+config.Site.Title+"</title>")
	assert.NotContains(t, html, "googletagmanager")
	assert.NotContains(t, html, `rel="canonical"`)
}

func TestLayoutEvents(t *testing.T) {
	html := renderLayout(t, "en", LayoutProps{
		Lang:      "en",
		Path:      "/blog/post/2",
		Analytics: analytics.New("G-TEST123"),
		Events: []analytics.Event{{
			Name:   "select_content",
			Params: map[string]interface{}{"content_type": "post", "item_id": "2"},
		}},
		Site: config.Site,
	})

	assert.Contains(t, html, `gtag('event', "page_view", {"page_path":"/blog/post/2","send_to":"G-TEST123"});`)
	assert.Contains(t, html, `gtag('event', "select_content", {"content_type":"post","item_id":"2"});`)
	// gtag loader, bootstrap, the event, the click listener and site.js
	assert.Equal(t, 5, strings.Count(html, `nonce="n0nce"`))
}

func TestStructuredData(t *testing.T) {
	html := renderLayout(t, "en", LayoutProps{
		Lang:           "en",
		Site:           config.Site,
		StructuredData: map[string]string{"name": "</script>"},
	})

	assert.Contains(t, html, `<script id="structured-data" type="application/ld+json" nonce="n0nce">`)
	assert.NotContains(t, html, `"</script>"`)

	html = renderLayout(t, "en", LayoutProps{Lang: "en", Site: config.Site})
	assert.NotContains(t, html, "application/ld+json")
}

func TestWithLang(t *testing.T) {
	assert.Equal(t, "/blog?lang=zh", WithLang("/blog", "zh"))
	assert.Equal(t, "/blog?lang=en&page=2", WithLang("/blog?page=2&lang=zh", "en"))
}
