package compiler

import (
	"strconv"
	"strings"
)

// Normalization levels of a children array, consumed by the runtime.
const (
	normalizeNone   = 0
	normalizeSimple = 1 // components may return arrays, flatten one level
	normalizeDeep   = 2 // nested arrays from v-for, <template> or <slot>
)

// genChildren returns the children argument of a construction call, or "" when
// el has no children. checkSkip enables the normalization hint.
func (s *codegenState) genChildren(el *Element, checkSkip bool) string {
	children := el.Children
	if len(children) == 0 {
		return ""
	}
	s.depth++
	defer func() { s.depth-- }()

	// a single v-for child is returned as is
	if first, ok := children[0].(*Element); ok && len(children) == 1 &&
		first.For != "" && first.Tag != "template" && first.Tag != "slot" {
		code := s.genChild(first)
		if checkSkip && s.maybeComponent(first) {
			code += ",1"
		}
		return code
	}

	level := normalizeNone
	if checkSkip {
		level = s.normalizationType(children)
	}
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = s.genNode(c)
	}
	code := "[" + strings.Join(parts, ",") + "]"
	if level != normalizeNone {
		code += "," + strconv.Itoa(level)
	}
	return code
}

// genChild generates a nested element, substituting an empty node once the
// nesting limit is exceeded.
func (s *codegenState) genChild(el *Element) string {
	if s.depth > s.maxDepth {
		if !s.overflowed {
			s.overflowed = true
			s.warn("template nesting exceeds "+strconv.Itoa(s.maxDepth)+
				" levels; deeper elements are not rendered.", false)
		}
		return "_e()"
	}
	return s.genElement(el)
}

func (s *codegenState) normalizationType(children []Node) int {
	res := normalizeNone
	for _, c := range children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if needsNormalization(el) || anyBranch(el, needsNormalization) {
			return normalizeDeep
		}
		if s.maybeComponent(el) || anyBranch(el, s.maybeComponent) {
			res = normalizeSimple
		}
	}
	return res
}

func anyBranch(el *Element, pred func(*Element) bool) bool {
	for _, c := range el.IfConditions {
		if pred(c.Block) {
			return true
		}
	}
	return false
}

func needsNormalization(el *Element) bool {
	return el.For != "" || el.Tag == "template" || el.Tag == "slot"
}

func (s *codegenState) genNode(n Node) string {
	switch n := n.(type) {
	case *Element:
		return s.genChild(n)
	case *Comment:
		return genComment(n)
	case *Text:
		return genText(n)
	}
	return "_e()"
}

func genText(t *Text) string {
	if t.Expression != "" {
		return "_v(" + t.Expression + ")"
	}
	return "_v(" + transformSpecialNewlines(JSONString(t.Text)) + ")"
}

func genComment(c *Comment) string {
	return "_e(" + JSONString(c.Text) + ")"
}
