package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// inlineScript wraps gtag code in a <script> tagged with the request nonce.
// code comes from analytics.Loader, which JSON-encodes every dynamic value.
func inlineScript(code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if code == "" {
			return nil
		}
		open := `<script nonce="` + templ.EscapeString(templ.GetNonce(ctx)) + `">` + "\n"
		_, err := io.WriteString(w, open+code+"</script>")
		return err
	})
}
