package tui

import (
	"fmt"
	"strings"

	"github.com/wcrum/krb-tui/internal/highlight"
)

const documentPlaceholder = "Loading..."

// documentState is the body of the view-document dialog.
type documentState struct {
	loading bool
	err     string
	content string
	lines   []highlight.Line
	offset  int
}

func (ds *documentState) startLoading() {
	*ds = documentState{loading: true}
}

func (ds *documentState) setContent(content string) {
	ds.loading = false
	ds.err = ""
	ds.content = content
	ds.lines = highlight.Annotate(content).Lines
	ds.offset = 0
}

func (ds *documentState) setError(message string) {
	ds.loading = false
	ds.err = message
	ds.content = ""
	ds.lines = nil
	ds.offset = 0
}

func (ds *documentState) scrollDown(amount, viewHeight int) {
	maxOffset := len(ds.lines) - viewHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	ds.offset = min(ds.offset+amount, maxOffset)
}

func (ds *documentState) scrollUp(amount int) {
	ds.offset = max(ds.offset-amount, 0)
}

func (ds *documentState) jumpToBottom(viewHeight int) {
	ds.offset = max(len(ds.lines)-viewHeight, 0)
}

// body returns the inline text shown instead of the document while it is
// loading or after it failed.
func (ds *documentState) body() (string, bool) {
	switch {
	case ds.loading:
		return documentPlaceholder, true
	case ds.err != "":
		return "Error: " + ds.err, true
	}
	return "", false
}

func renderDocument(ds *documentState, s styles, name string, width, viewHeight int) string {
	var b strings.Builder

	header := fmt.Sprintf("  YAML: %s", sanitizeLine(name))
	if ds.content != "" {
		header += fmt.Sprintf(" [%d lines]", len(ds.lines))
	}
	b.WriteString(s.header.Render(header))
	b.WriteString("\n")

	if text, ok := ds.body(); ok {
		if ds.err != "" {
			b.WriteString("  " + s.errorText.Render(sanitizeLine(text)))
		} else {
			b.WriteString("  " + s.muted.Render(text))
		}
		b.WriteString("\n")
		return b.String()
	}
	if len(ds.lines) == 0 {
		b.WriteString("  " + s.muted.Render("(empty document)") + "\n")
		return b.String()
	}

	end := min(ds.offset+viewHeight, len(ds.lines))
	for i := ds.offset; i < end; i++ {
		b.WriteString("  ")
		b.WriteString(clipLine(ds.lines[i], width-2).Terminal(s.annotate))
		b.WriteString("\n")
	}
	return b.String()
}

// clipLine cuts a line to maxLen runes without splitting span classes.
func clipLine(line highlight.Line, maxLen int) highlight.Line {
	if maxLen <= 0 {
		return nil
	}
	out := make(highlight.Line, 0, len(line))
	left := maxLen
	for _, span := range line {
		r := []rune(span.Text)
		if len(r) <= left {
			out = append(out, span)
			left -= len(r)
			continue
		}
		out = append(out, highlight.Span{Text: string(r[:left]), Class: span.Class})
		break
	}
	return out
}

func documentHelpKeys() string {
	return "j/k:scroll  g/G:top/bottom  c:copy  esc:close"
}
