// Package analytics renders the Google Analytics 4 (gtag.js) snippets.
//
// When no measurement ID is configured every method returns an empty
// string and pages render without any analytics code.
package analytics

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// GTagOrigin is the origin gtag.js is loaded from; it must be allowed by the CSP.
const GTagOrigin = "https://www.googletagmanager.com"

// Loader builds the gtag snippets for one measurement ID.
type Loader struct {
	measurementID string
}

// New returns a Loader for id. Surrounding whitespace is ignored.
func New(measurementID string) *Loader {
	return &Loader{measurementID: strings.TrimSpace(measurementID)}
}

// Enabled reports whether a measurement ID is configured.
func (l *Loader) Enabled() bool {
	return l != nil && l.measurementID != ""
}

// ScriptSrc returns the async gtag.js URL.
func (l *Loader) ScriptSrc() string {
	if !l.Enabled() {
		return ""
	}
	return GTagOrigin + "/gtag/js?id=" + url.QueryEscape(l.measurementID)
}

// Event is a custom GA4 event recorded when a page loads.
type Event struct {
	Name   string
	Params map[string]interface{}
}

// BootstrapScript sets up dataLayer and the gtag stub, then records the
// 'js' and 'config' commands, as Google's own snippet does. The automatic
// page view is turned off; PageViewScript sends exactly one per page.
func (l *Loader) BootstrapScript() string {
	if !l.Enabled() {
		return ""
	}
	return "window.dataLayer = window.dataLayer || [];\n" +
		"function gtag(){dataLayer.push(arguments);}\n" +
		"gtag('js', new Date());\n" +
		fmt.Sprintf("gtag('config', %s, {\"send_page_view\":false});\n", jsString(l.measurementID))
}

// PageViewScript reports a page view for path.
func (l *Loader) PageViewScript(path string) string {
	if !l.Enabled() {
		return ""
	}
	return l.EventScript("page_view", map[string]interface{}{
		"page_path": path,
		"send_to":   l.measurementID,
	})
}

// EventScript reports a custom event. Nil params are sent as undefined.
func (l *Loader) EventScript(name string, params map[string]interface{}) string {
	if !l.Enabled() || strings.TrimSpace(name) == "" {
		return ""
	}
	arg := "undefined"
	if params != nil {
		arg = jsObject(params)
	}
	return fmt.Sprintf("if (typeof gtag === 'function') { gtag('event', %s, %s); }\n", jsString(name), arg)
}

// OutboundClickScript installs a click listener that reports links to
// other hosts as GA4 "click" events with outbound set.
func (l *Loader) OutboundClickScript() string {
	event := l.EventScript("click", map[string]interface{}{
		"outbound":       true,
		"transport_type": "beacon",
	})
	if event == "" {
		return ""
	}
	return "document.addEventListener('click', function (e) {\n" +
		"  var link = e.target.closest ? e.target.closest('a[href]') : null;\n" +
		"  if (!link || !link.host || link.host === window.location.host) { return; }\n" +
		"  " + event +
		"});\n"
}

// jsString encodes s as a JavaScript string literal that is safe inside a
// <script> element (json.Marshal escapes <, > and &).
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func jsObject(v map[string]interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Failed to encode analytics params: %v", err)
		return "{}"
	}
	return string(b)
}
