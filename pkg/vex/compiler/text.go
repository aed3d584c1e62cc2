package compiler

import (
	"regexp"
	"strings"
	"sync"
)

// Token is one segment of interpolated text: a literal or a binding.
type Token struct {
	Literal   string
	Binding   string
	IsBinding bool
}

// TextResult is the compiled form of interpolated text.
type TextResult struct {
	// Expression concatenates all segments, e.g. "a "+_s(b)+" c".
	Expression string
	// Tokens keeps literal segments as strings and bindings as markers.
	Tokens []Token
}

var (
	defaultTagRE = regexp.MustCompile(`(?s)\{\{(.+?)\}\}`)
	delimiterREs sync.Map // [2]string -> *regexp.Regexp
)

func delimiterRE(delimiters *[2]string) *regexp.Regexp {
	if delimiters == nil {
		return defaultTagRE
	}
	if re, ok := delimiterREs.Load(*delimiters); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(delimiters[0]) + `(.+?)` + regexp.QuoteMeta(delimiters[1]))
	actual, _ := delimiterREs.LoadOrStore(*delimiters, re)
	return actual.(*regexp.Regexp)
}

// ParseText extracts interpolations from text. It returns nil when text has
// none. Expressions are passed through parseFilters; nil means ParseFilters.
func ParseText(text string, delimiters *[2]string, parseFilters func(string) string) *TextResult {
	if parseFilters == nil {
		parseFilters = ParseFilters
	}
	matches := delimiterRE(delimiters).FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	var (
		parts     []string
		tokens    []Token
		lastIndex int
	)
	for _, m := range matches {
		if m[0] > lastIndex {
			literal := text[lastIndex:m[0]]
			tokens = append(tokens, Token{Literal: literal})
			parts = append(parts, JSONString(literal))
		}
		exp := parseFilters(strings.TrimSpace(text[m[2]:m[3]]))
		parts = append(parts, "_s("+exp+")")
		tokens = append(tokens, Token{Binding: exp, IsBinding: true})
		lastIndex = m[1]
	}
	if lastIndex < len(text) {
		literal := text[lastIndex:]
		tokens = append(tokens, Token{Literal: literal})
		parts = append(parts, JSONString(literal))
	}

	return &TextResult{
		Expression: strings.Join(parts, "+"),
		Tokens:     tokens,
	}
}
