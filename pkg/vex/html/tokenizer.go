// Package html is a forgiving, streaming tokenizer for template markup.
//
// It scans the markup once, left to right, and reports start tags, end tags,
// text and comments to a Handler in document order. It never fails: malformed
// input is reported through Options.Warn and recovered from.
package html

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Attr is a raw attribute as written in a start tag.
type Attr struct {
	Name  string
	Value string
	Start int
	End   int
}

// Handler receives tokenizer events.
type Handler interface {
	Start(tag string, attrs []Attr, unary bool, start, end int)
	End(tag string, start, end int)
	Chars(text string, start, end int)
	Comment(text string, start, end int)
}

// Options configures the tokenizer.
type Options struct {
	// ExpectHTML enables HTML auto-closing of <p> and can-be-left-open tags.
	ExpectHTML bool

	// IsUnaryTag overrides the built-in void element table.
	IsUnaryTag func(tag string) bool

	// CanBeLeftOpenTag overrides the built-in optional end tag table.
	CanBeLeftOpenTag func(tag string) bool

	ShouldDecodeNewlines        bool
	ShouldDecodeNewlinesForHref bool

	// ShouldKeepComment reports <!-- --> comments instead of skipping them.
	ShouldKeepComment bool

	// Warn receives recoverable diagnostics. May be nil.
	Warn func(msg string)
}

const ncname = `[a-zA-Z_][\-\.0-9_a-zA-Z\x{00B7}\x{00C0}-\x{00D6}\x{00D8}-\x{00F6}\x{00F8}-\x{037D}` +
	`\x{037F}-\x{1FFF}\x{200C}-\x{200D}\x{203F}-\x{2040}\x{2070}-\x{218F}\x{2C00}-\x{2FEF}` +
	`\x{3001}-\x{D7FF}\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}]*`

const qnameCapture = `((?:` + ncname + `:)?` + ncname + `)`

const attrValue = `(?:\s*(=)\s*(?:"([^"]*)"+|'([^']*)'+|([^\s"'=<>` + "`" + `]+)))?`

var (
	attributeRE        = regexp.MustCompile(`^\s*([^\s"'<>/=]+)` + attrValue)
	dynamicArgAttrRE   = regexp.MustCompile(`^\s*((?:v-[\w-]+:|@|:|#)\[[^=]+?\][^\s"'<>/=]*)` + attrValue)
	startTagOpenRE     = regexp.MustCompile(`^<` + qnameCapture)
	startTagCloseRE    = regexp.MustCompile(`^\s*(/?)>`)
	endTagRE           = regexp.MustCompile(`^</` + qnameCapture + `[^>]*>`)
	doctypeRE          = regexp.MustCompile(`(?i)^<!DOCTYPE [^>]+>`)
	rawEndTagRECache   sync.Map // lower-cased tag -> *regexp.Regexp
	attrDecoder        = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&amp;", "&", "&#39;", "'")
	attrNewlineDecoder = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&amp;", "&", "&#39;", "'",
		"&#10;", "\n", "&#9;", "\t")
)

func rawEndTagRE(tag string) *regexp.Regexp {
	if re, ok := rawEndTagRECache.Load(tag); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(tag) + `[^>]*>`)
	actual, _ := rawEndTagRECache.LoadOrStore(tag, re)
	return actual.(*regexp.Regexp)
}

type stackEntry struct {
	tag      string
	lowerTag string
	attrs    []Attr
	start    int
	end      int
}

type startTagMatch struct {
	tagName    string
	attrs      []Attr
	unarySlash string
	start      int
	end        int
}

type tokenizer struct {
	html    string
	index   int
	stack   []stackEntry
	lastTag string
	opts    Options
	h       Handler
}

// Parse tokenizes markup and reports events to h.
func Parse(markup string, opts Options, h Handler) {
	if opts.IsUnaryTag == nil {
		opts.IsUnaryTag = IsUnaryTag
	}
	if opts.CanBeLeftOpenTag == nil {
		opts.CanBeLeftOpenTag = CanBeLeftOpenTag
	}
	t := &tokenizer{html: markup, opts: opts, h: h}
	t.run()
}

func (t *tokenizer) warn(format string, args ...interface{}) {
	if t.opts.Warn != nil {
		t.opts.Warn(fmt.Sprintf(format, args...))
	}
}

func (t *tokenizer) advance(n int) {
	t.index += n
	t.html = t.html[n:]
}

func (t *tokenizer) run() {
	for t.html != "" {
		last := t.html
		if t.lastTag == "" || !IsPlainTextElement(t.lastTag) {
			textEnd := strings.IndexByte(t.html, '<')
			if textEnd == 0 && t.scanMarkup() {
				continue
			}

			var text string
			if textEnd >= 0 {
				rest := t.html[textEnd:]
				// a '<' that does not open any markup is plain text
				for !looksLikeMarkup(rest) {
					next := strings.IndexByte(rest[1:], '<')
					if next < 0 {
						break
					}
					textEnd += next + 1
					rest = t.html[textEnd:]
				}
				text = t.html[:textEnd]
			} else {
				text = t.html
			}

			if text != "" {
				start := t.index
				t.advance(len(text))
				t.h.Chars(text, start, t.index)
			}
		} else {
			t.scanRawText()
		}

		if t.html == last {
			t.h.Chars(t.html, t.index, t.index+len(t.html))
			if len(t.stack) == 0 {
				t.warn("Mal-formatted tag at end of template: %q", t.html)
			}
			break
		}
	}

	// close all remaining open tags
	t.parseEndTag("", t.index, t.index)
}

func looksLikeMarkup(s string) bool {
	return endTagRE.MatchString(s) ||
		startTagOpenRE.MatchString(s) ||
		strings.HasPrefix(s, "<!--") ||
		strings.HasPrefix(s, "<![")
}

// scanMarkup consumes a comment, doctype or tag at the current position.
// It reports false when nothing could be consumed.
func (t *tokenizer) scanMarkup() bool {
	if strings.HasPrefix(t.html, "<!--") {
		if end := strings.Index(t.html, "-->"); end >= 0 {
			if t.opts.ShouldKeepComment {
				t.h.Comment(t.html[4:end], t.index, t.index+end+3)
			}
			t.advance(end + 3)
			return true
		}
	}

	if strings.HasPrefix(t.html, "<![") {
		if end := strings.Index(t.html, "]>"); end >= 0 {
			t.advance(end + 2)
			return true
		}
	}

	if m := doctypeRE.FindString(t.html); m != "" {
		t.advance(len(m))
		return true
	}

	if m := endTagRE.FindStringSubmatch(t.html); m != nil {
		start := t.index
		t.advance(len(m[0]))
		t.parseEndTag(m[1], start, t.index)
		return true
	}

	if match := t.parseStartTag(); match != nil {
		t.handleStartTag(match)
		if shouldIgnoreFirstNewline(t.lastTag, t.html) {
			t.advance(1)
		}
		return true
	}
	return false
}

// parseStartTag matches a complete start tag. On failure the input position
// is left untouched.
func (t *tokenizer) parseStartTag() *startTagMatch {
	open := startTagOpenRE.FindStringSubmatch(t.html)
	if open == nil {
		return nil
	}
	savedHTML, savedIndex := t.html, t.index

	match := &startTagMatch{tagName: open[1], start: t.index}
	t.advance(len(open[0]))
	for {
		if end := startTagCloseRE.FindStringSubmatch(t.html); end != nil {
			match.unarySlash = end[1]
			t.advance(len(end[0]))
			match.end = t.index
			return match
		}
		loc := dynamicArgAttrRE.FindStringSubmatchIndex(t.html)
		if loc == nil {
			loc = attributeRE.FindStringSubmatchIndex(t.html)
		}
		if loc == nil {
			break
		}
		attr := Attr{Name: t.html[loc[2]:loc[3]], Start: t.index}
		for g := 3; g <= 5; g++ {
			if s, e := loc[2*g], loc[2*g+1]; s >= 0 && e > s {
				attr.Value = t.html[s:e]
				break
			}
		}
		t.advance(loc[1])
		attr.End = t.index
		match.attrs = append(match.attrs, attr)
	}

	t.html, t.index = savedHTML, savedIndex
	return nil
}

func (t *tokenizer) handleStartTag(match *startTagMatch) {
	tagName := match.tagName

	if t.opts.ExpectHTML {
		if t.lastTag == "p" && IsNonPhrasingTag(tagName) {
			t.parseEndTag(t.lastTag, match.start, match.start)
		}
		if t.opts.CanBeLeftOpenTag(tagName) && t.lastTag == tagName {
			t.parseEndTag(tagName, match.start, match.start)
		}
	}

	unary := t.opts.IsUnaryTag(tagName) || match.unarySlash != ""

	attrs := make([]Attr, len(match.attrs))
	for i, a := range match.attrs {
		decodeNewlines := t.opts.ShouldDecodeNewlines
		if tagName == "a" && a.Name == "href" {
			decodeNewlines = t.opts.ShouldDecodeNewlinesForHref
		}
		attrs[i] = Attr{Name: a.Name, Value: decodeAttr(a.Value, decodeNewlines), Start: a.Start, End: a.End}
	}

	if !unary {
		t.stack = append(t.stack, stackEntry{
			tag:      tagName,
			lowerTag: strings.ToLower(tagName),
			attrs:    attrs,
			start:    match.start,
			end:      match.end,
		})
		t.lastTag = tagName
	}

	t.h.Start(tagName, attrs, unary, match.start, match.end)
}

func decodeAttr(value string, decodeNewlines bool) string {
	if decodeNewlines {
		return attrNewlineDecoder.Replace(value)
	}
	return attrDecoder.Replace(value)
}

// scanRawText consumes the body of a script, style or textarea element.
func (t *tokenizer) scanRawText() {
	stackedTag := strings.ToLower(t.lastTag)
	loc := rawEndTagRE(stackedTag).FindStringIndex(t.html)

	text := t.html
	endTagLength := 0
	if loc != nil {
		text = t.html[:loc[0]]
		endTagLength = loc[1] - loc[0]
	}

	start := t.index
	if shouldIgnoreFirstNewline(stackedTag, text) {
		text = text[1:]
		start++
	}
	if text != "" {
		t.h.Chars(text, start, start+len(text))
	}

	if loc == nil {
		t.advance(len(t.html))
		t.warn("tag <%s> has no matching end tag.", t.lastTag)
		t.parseEndTag(stackedTag, t.index, t.index)
		return
	}
	t.advance(loc[1])
	t.parseEndTag(stackedTag, t.index-endTagLength, t.index)
}

// parseEndTag closes tagName and every element opened after it. An empty
// tagName closes everything.
func (t *tokenizer) parseEndTag(tagName string, start, end int) {
	pos := 0
	lowerTag := ""
	if tagName != "" {
		lowerTag = strings.ToLower(tagName)
		for pos = len(t.stack) - 1; pos >= 0; pos-- {
			if t.stack[pos].lowerTag == lowerTag {
				break
			}
		}
	}

	if pos >= 0 {
		for i := len(t.stack) - 1; i >= pos; i-- {
			if i > pos || tagName == "" {
				t.warn("tag <%s> has no matching end tag.", t.stack[i].tag)
			}
			t.h.End(t.stack[i].tag, start, end)
		}
		t.stack = t.stack[:pos]
		t.lastTag = ""
		if pos > 0 {
			t.lastTag = t.stack[pos-1].tag
		}
		return
	}

	switch lowerTag {
	case "br":
		t.h.Start(tagName, nil, true, start, end)
	case "p":
		t.h.Start(tagName, nil, false, start, end)
		t.h.End(tagName, start, end)
	}
}
