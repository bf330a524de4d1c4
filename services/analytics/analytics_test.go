package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledLoader(t *testing.T) {
	for _, id := range []string{"", "   "} {
		l := New(id)
		assert.False(t, l.Enabled())
		assert.Empty(t, l.ScriptSrc())
		assert.Empty(t, l.BootstrapScript())
		assert.Empty(t, l.PageViewScript("/blog"))
		assert.Empty(t, l.EventScript("click", nil))
		assert.Empty(t, l.OutboundClickScript())
	}

	var nilLoader *Loader
	assert.False(t, nilLoader.Enabled())
	assert.Empty(t, nilLoader.PageViewScript("/"))
}

func TestScriptSrc(t *testing.T) {
	l := New(" G-ABC123 ")
	assert.True(t, l.Enabled())
	assert.Equal(t, "https://www.googletagmanager.com/gtag/js?id=G-ABC123", l.ScriptSrc())

	odd := New("G-A&B")
	assert.Equal(t, "https://www.googletagmanager.com/gtag/js?id=G-A%26B", odd.ScriptSrc())
}

func TestBootstrapScript(t *testing.T) {
	script := New("G-ABC123").BootstrapScript()
	assert.Contains(t, script, "window.dataLayer = window.dataLayer || [];")
	assert.Contains(t, script, "function gtag(){dataLayer.push(arguments);}")
	assert.Contains(t, script, "gtag('js', new Date());")
	assert.Contains(t, script, `gtag('config', "G-ABC123", {"send_page_view":false});`)
}

func TestPageViewScript(t *testing.T) {
	script := New("G-ABC123").PageViewScript("/blog/post/1")
	assert.Equal(t, `if (typeof gtag === 'function') { gtag('event', "page_view", {"page_path":"/blog/post/1","send_to":"G-ABC123"}); }`+"\n", script)

	// Paths cannot break out of the script element.
	script = New("G-ABC123").PageViewScript("/</script><script>alert(1)")
	assert.NotContains(t, script, "</script>")
}

func TestEventScript(t *testing.T) {
	l := New("G-ABC123")

	script := l.EventScript("select_content", map[string]interface{}{"content_type": "post", "item_id": 7})
	assert.Equal(t, `if (typeof gtag === 'function') { gtag('event', "select_content", {"content_type":"post","item_id":7}); }`+"\n", script)

	script = l.EventScript("share", nil)
	assert.Contains(t, script, `gtag('event', "share", undefined)`)

	assert.Empty(t, l.EventScript("  ", nil))
}

func TestOutboundClickScript(t *testing.T) {
	script := New("G-ABC123").OutboundClickScript()

	assert.Contains(t, script, "document.addEventListener('click'")
	assert.Contains(t, script, "link.host === window.location.host")
	assert.Contains(t, script, `gtag('event', "click", {"outbound":true,"transport_type":"beacon"})`)
}
