// Package highlight annotates YAML-like documents line by line for display.
//
// It is a lexical pass, not a parser: each line is classified on its own and
// never validated. Annotated text is kept raw inside spans and only leaves the
// package through HTML or Terminal, both of which escape it for their surface.
package highlight

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Class tags a span for styling. The zero value means untagged text.
type Class string

const (
	ClassNone    Class = ""
	ClassComment Class = "comment"
	ClassKey     Class = "key"
	ClassString  Class = "string"
	ClassNumber  Class = "number"
	ClassBoolean Class = "boolean"
)

// Span is a run of text sharing one class.
type Span struct {
	Text  string
	Class Class
}

// Line is the annotated form of one input line.
type Line []Span

// Document is an annotated document, one Line per input line.
type Document struct {
	Lines []Line
}

// Styler decorates already sanitized text for a terminal.
type Styler func(class Class, text string) string

// Annotate splits doc on newlines and classifies every line. CRLF line endings
// are normalized; tabs and all other characters are kept verbatim.
func Annotate(doc string) Document {
	if doc == "" {
		return Document{}
	}
	raw := strings.Split(doc, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, annotateLine(strings.TrimSuffix(l, "\r")))
	}
	return Document{Lines: lines}
}

func annotateLine(line string) Line {
	if strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "#") {
		return Line{{Text: line, Class: ClassComment}}
	}

	key, sep, value, ok := splitKeyValue(line)
	if !ok {
		return plain(line)
	}

	out := make(Line, 0, 3)
	if key != "" {
		out = append(out, Span{Text: key})
	}
	out = append(out, Span{Text: sep, Class: ClassKey})
	out = append(out, Span{Text: value, Class: classifyValue(value)})
	return out
}

func plain(line string) Line {
	if line == "" {
		return Line{}
	}
	return Line{{Text: line}}
}

// splitKeyValue splits at the first colon that still has text after it. The
// separator takes the colon plus following whitespace but always leaves at
// least one character for the value.
func splitKeyValue(line string) (key, sep, value string, ok bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != ':' || i+1 >= len(line) {
			continue
		}
		end := i + 1
		for end < len(line) {
			r, size := utf8.DecodeRuneInString(line[end:])
			if !unicode.IsSpace(r) {
				break
			}
			end += size
		}
		if end == len(line) {
			// whitespace only: hand the last rune back to the value
			_, size := utf8.DecodeLastRuneInString(line[i+1:])
			end = len(line) - size
		}
		return line[:i], line[i:end], line[end:], true
	}
	return "", "", "", false
}

func classifyValue(value string) Class {
	v := strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(v, `"`), strings.HasPrefix(v, "'"):
		return ClassString
	case v != "" && isNumeric(v):
		return ClassNumber
	case v == "true", v == "false", v == "null":
		return ClassBoolean
	default:
		return ClassNone
	}
}

// numberPattern accepts signed decimals with optional exponent, signed
// Infinity, and unsigned 0x/0o/0b integers. Go spellings such as inf, NaN,
// digit underscores and hex floats are not numbers here.
var numberPattern = regexp.MustCompile(
	`^(?:[+-]?(?:(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?|Infinity)|0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+)$`)

func isNumeric(v string) bool {
	return numberPattern.MatchString(v)
}

// HTML renders the document as escaped markup. Tagged spans become
// <span class="hl-CLASS"> elements; lines are joined with newlines.
func (d Document) HTML() string {
	var b strings.Builder
	for i, line := range d.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, s := range line {
			if s.Class == ClassNone {
				b.WriteString(html.EscapeString(s.Text))
				continue
			}
			fmt.Fprintf(&b, `<span class="hl-%s">%s</span>`, s.Class, html.EscapeString(s.Text))
		}
	}
	return b.String()
}

// Terminal renders one line for a terminal. Control characters other than tab
// are replaced before style sees the text, so server content cannot inject
// escape sequences.
func (l Line) Terminal(style Styler) string {
	var b strings.Builder
	for _, s := range l {
		text := Sanitize(s.Text)
		if style != nil {
			text = style(s.Class, text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// Terminal renders the whole document, see Line.Terminal.
func (d Document) Terminal(style Styler) string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.Terminal(style)
	}
	return strings.Join(out, "\n")
}

// Text returns the unescaped text of the line.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Sanitize replaces control characters except tab with U+FFFD.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\t' && unicode.IsControl(r) {
			return utf8.RuneError
		}
		return r
	}, s)
}
