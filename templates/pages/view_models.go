package pages

import (
	"portfolio_site_go/config"
	"portfolio_site_go/models"
)

// PostCard is a post prepared for a list: dates are already formatted.
type PostCard struct {
	URL     string
	Title   string
	Excerpt string
	Date    string
	ISODate string
	Tags    []string
}

// HomeData holds the data for the landing page
type HomeData struct {
	Personal config.Personal
	Socials  config.Socials
	Projects []models.Project
	Posts    []PostCard
	BlogURL  string
}

// PostListData holds one page of the blog index
type PostListData struct {
	Posts   []PostCard
	Page    int
	Pages   int
	PrevURL string // empty on the first page
	NextURL string // empty on the last page
}

// PostDetailData holds a rendered post
type PostDetailData struct {
	Title    string
	DateTime string
	ISODate  string
	HTML     string // sanitized
	Tags     []string
	BackURL  string
}

// ErrorData holds the copy for an error page
type ErrorData struct {
	Status int
	Title  string
	Body   string
}
