package services

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithXHTML()),
	)

	// contentPolicy sanitizes rendered post bodies (XSS protection).
	contentPolicy = newContentPolicy()
	// textPolicy strips every tag, for plain-text excerpts.
	textPolicy = bluemonday.StrictPolicy()

	whitespace = regexp.MustCompile(`\s+`)
)

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Keep fenced code languages for client-side highlighting
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+-]+$`)).OnElements("code")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderMarkdown converts a post body to sanitized HTML.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return contentPolicy.Sanitize(buf.String()), nil
}

// Excerpt returns the post summary, or the first maxRunes characters of the
// body as plain text when the summary is empty.
func Excerpt(excerpt, content string, maxRunes int) string {
	if s := strings.TrimSpace(excerpt); s != "" {
		return s
	}

	rendered, err := RenderMarkdown(content)
	if err != nil {
		rendered = content
	}
	text := html.UnescapeString(textPolicy.Sanitize(rendered))
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))

	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
