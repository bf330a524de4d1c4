package handlers

import (
	"net/http"
	"strconv"

	"portfolio_site_go/middleware"
	"portfolio_site_go/router"
	"portfolio_site_go/services"
	"portfolio_site_go/services/analytics"
	"portfolio_site_go/services/api"
	"portfolio_site_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// PostList renders one page of the blog index from ?page= (default 1).
func (h *Handler) PostList(c echo.Context) error {
	lang := middleware.GetLocale(c)
	pageNum := parsePage(c.QueryParam("page"))

	result, err := h.api.ListPosts(c.Request().Context(), pageNum, h.cfg.PostsPerPage)
	if err != nil {
		return h.backendError(c, err)
	}

	blogURL := router.URL(c.Echo(), router.PostList)
	data := pages.PostListData{
		Posts: h.postCards(c, publishedOnly(result.Items), lang),
		Page:  result.Page,
		Pages: result.TotalPages(),
	}
	if result.HasPrev() {
		data.PrevURL = pageURL(blogURL, result.Page-1)
	}
	if result.HasNext() {
		data.NextURL = pageURL(blogURL, result.Page+1)
	}

	seo := h.blogSEO(lang, pageURL(blogURL, pageNum))
	if len(data.Posts) == 0 && pageNum > 1 {
		seo.WithNoIndex()
	}
	return h.render(c, page{seo: seo, body: pages.PostList(data)})
}

// PostDetail renders a single published post.
func (h *Handler) PostDetail(c echo.Context) error {
	lang := middleware.GetLocale(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return h.notFound(c)
	}

	post, err := h.api.GetPost(c.Request().Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			return h.notFound(c)
		}
		return h.backendError(c, err)
	}
	if !post.IsPublished {
		return h.notFound(c)
	}

	body, err := services.RenderMarkdown(post.Content)
	if err != nil {
		c.Logger().Errorf("Failed to render post %d: %v", id, err)
		return h.render(c, page{
			status: http.StatusInternalServerError,
			seo:    h.baseSEO("", c.Request().URL.Path).WithNoIndex(),
			body:   pages.Error(pages.ErrorData{Status: http.StatusInternalServerError}),
		})
	}

	path := router.URL(c.Echo(), router.PostDetail, id)
	seo := h.postSEO(post, path)
	data := pages.PostDetailData{
		Title:    post.Title,
		DateTime: h.dates.FormatDateTime(post.PublishedAt(), lang),
		ISODate:  post.PublishedAt(),
		HTML:     body,
		Tags:     post.Tags,
		BackURL:  router.URL(c.Echo(), router.PostList),
	}

	return h.render(c, page{
		seo:            seo,
		body:           pages.PostDetail(data),
		structuredData: h.postSchema(post, seo.Canonical),
		events: []analytics.Event{{
			Name:   "select_content",
			Params: map[string]interface{}{"content_type": "post", "item_id": strconv.Itoa(id)},
		}},
	})
}

// parsePage reads a 1-based page number; anything invalid is page 1.
func parsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// pageURL links to a page of the blog index; page 1 is the bare URL.
func pageURL(blogURL string, n int) string {
	if n <= 1 {
		return blogURL
	}
	return blogURL + "?page=" + strconv.Itoa(n)
}
