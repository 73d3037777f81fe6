package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// html writes markup, remembering the first write error so components can
// emit a page without checking every call.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s HTML-escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// navActive reports whether href is the current page or one of its parents.
// The homepage only matches itself.
func navActive(href, current string) bool {
	href = strings.TrimSuffix(href, "/")
	current = strings.TrimSuffix(current, "/")
	if href == "" {
		return current == ""
	}
	return current == href || strings.HasPrefix(current, href+"/")
}
