package models

// Post is a blog post as returned by the backend.
// Timestamps are kept as the raw ISO 8601 strings the API sends.
type Post struct {
	ID          int      `json:"id,omitempty"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content,omitempty"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	Date        string   `json:"date,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// PublishedAt returns the best timestamp for display.
func (p *Post) PublishedAt() string {
	if p.Date != "" {
		return p.Date
	}
	return p.CreatedAt
}

// PostPage is one page of the backend's paginated post list.
type PostPage struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}

// TotalPages returns the number of pages, at least 1.
func (p *PostPage) TotalPages() int {
	if p.Size <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// HasPrev reports whether a newer page exists.
func (p *PostPage) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether an older page exists.
func (p *PostPage) HasNext() bool {
	return p.Page < p.TotalPages()
}

// PostPatch is a partial update; nil fields are left unchanged.
type PostPatch struct {
	Title       *string   `json:"title,omitempty"`
	Excerpt     *string   `json:"excerpt,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	IsPublished *bool     `json:"is_published,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Excerpt == nil && p.Content == nil && p.Tags == nil && p.IsPublished == nil
}
