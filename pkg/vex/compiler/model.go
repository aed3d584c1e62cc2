package compiler

import (
	"strings"
)

// ModelPath is an assignable expression split into object and key, so that
// a[b].c becomes {Exp: "a[b]", Key: `"c"`} and a[b] becomes {Exp: "a", Key: "b"}.
type ModelPath struct {
	Exp    string
	Key    string
	HasKey bool
}

// ParseModel splits a v-model expression into its target object and key.
func ParseModel(val string) ModelPath {
	val = strings.TrimSpace(val)
	n := len(val)

	if !strings.Contains(val, "[") || strings.LastIndexByte(val, ']') < n-1 {
		if i := strings.LastIndexByte(val, '.'); i > -1 {
			return ModelPath{Exp: val[:i], Key: `"` + val[i+1:] + `"`, HasKey: true}
		}
		return ModelPath{Exp: val}
	}

	s := modelScanner{str: val}
	for !s.eof() {
		c := s.next()
		if isQuote(c) {
			s.skipString(c)
		} else if c == '[' {
			s.parseBracket()
		}
	}
	return ModelPath{
		Exp:    val[:s.exprPos],
		Key:    val[s.exprPos+1 : s.exprEndPos],
		HasKey: true,
	}
}

type modelScanner struct {
	str        string
	index      int
	exprPos    int
	exprEndPos int
}

func (s *modelScanner) eof() bool { return s.index >= len(s.str) }

func (s *modelScanner) next() byte {
	s.index++
	return byteAt(s.str, s.index)
}

func (s *modelScanner) parseBracket() {
	depth := 1
	s.exprPos = s.index
	for !s.eof() {
		c := s.next()
		if isQuote(c) {
			s.skipString(c)
			continue
		}
		if c == '[' {
			depth++
		}
		if c == ']' {
			depth--
		}
		if depth == 0 {
			s.exprEndPos = s.index
			break
		}
	}
}

func (s *modelScanner) skipString(quote byte) {
	for !s.eof() {
		if s.next() == quote {
			break
		}
	}
}

func isQuote(c byte) bool { return c == '"' || c == '\'' }

// GenAssignmentCode returns code assigning assignment to value. Keyed paths go
// through $set so new properties stay reactive.
func GenAssignmentCode(value, assignment string) string {
	res := ParseModel(value)
	if !res.HasKey {
		return value + "=" + assignment
	}
	return "$set(" + res.Exp + ", " + res.Key + ", " + assignment + ")"
}

// GenComponentModel records the two-way binding descriptor for v-model on a
// component.
func GenComponentModel(el *Element, value string, modifiers Modifiers) {
	const base = "$$v"
	valueExp := base
	if modifiers.Has("trim") {
		valueExp = "(typeof " + base + " === 'string'? " + base + ".trim(): " + base + ")"
	}
	if modifiers.Has("number") {
		valueExp = "_n(" + valueExp + ")"
	}
	el.Model = &ComponentModel{
		Value:      "(" + value + ")",
		Expression: JSONString(value),
		Callback:   "function (" + base + ") {" + GenAssignmentCode(value, valueExp) + "}",
	}
}
