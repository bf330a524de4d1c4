package config

import "strings"

// Socials holds the profile links shown in the header and footer.
type Socials struct {
	GitHub    string
	LinkedIn  string
	Instagram string
	Email     string
}

// Personal holds the per-language hero and about text.
type Personal struct {
	HeroTitle string // trusted HTML
	About     string
	Location  string
}

// SiteInfo is the static description of the site and its author.
type SiteInfo struct {
	URL         string
	Title       string
	Author      string
	Keywords    string
	Description string
	OGImage     string
	Socials     Socials
	personal    map[string]Personal
}

// Site is the portfolio's static metadata.
var Site = SiteInfo{
	URL:         "https://tomsinp.com",
	Title:       "Tom Sin - Full-Stack Web Developer",
	Author:      "Tom SIN",
	Keywords:    "Tom Sin, Full-Stack Web Developer, Django, Vue.js, Python, web development, portfolio",
	Description: "Tom Sin is a full-stack web developer specializing in modern web technologies. Explore my portfolio, blog, and projects.",
	OGImage:     "/static/images/og-image-square.png",
	Socials: Socials{
		GitHub:    "https://github.com/tomsin9/",
		LinkedIn:  "https://linkedin.com/in/tom-sin/",
		Instagram: "https://instagram.com/sin9_",
		Email:     "mailto:contact@tomsinp.com",
	},
	personal: map[string]Personal{
		"zh": {
			HeroTitle: "Tom <span class='text-zinc-500'>SIN</span>",
			About:     "一位來自香港的開發者，擅長於從零開始構建簡潔且實用的網站及網頁應用程式。",
			Location:  "香港",
		},
		"en": {
			HeroTitle: "Tom <span class='text-zinc-500'>SIN</span>",
			About:     "A developer based in Hong Kong. I specialize in building clean, functional websites and web applications from scratch.",
			Location:  "Hong Kong",
		},
	},
}

// Personal returns the blurbs for lang, falling back to English.
func (s SiteInfo) Personal(lang string) Personal {
	if p, ok := s.personal[lang]; ok {
		return p
	}
	return s.personal["en"]
}

// AbsoluteURL joins base and path; absolute inputs are returned unchanged.
func AbsoluteURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
