package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// CodegenResult is the generated program text of one template.
type CodegenResult struct {
	// Render is the primary render function body.
	Render string
	// StaticRenderFns are the hoisted static subtrees, referenced from Render
	// by index through _m(i).
	StaticRenderFns []string
}

// codegenState is owned by a single Generate call. Nested inline templates get
// their own state.
type codegenState struct {
	opts            *Options
	warn            WarnFunc
	directives      map[string]DirectiveFunc
	isReservedTag   func(string) bool
	dataGenFns      []DataGenerator
	transforms      []CodeTransformer
	onceID          int
	staticRenderFns []string
	pre             bool
	depth           int
	maxDepth        int
	overflowed      bool
}

func newCodegenState(opts *Options) *codegenState {
	s := &codegenState{
		opts:          opts,
		warn:          opts.warnFunc(),
		directives:    make(map[string]DirectiveFunc, len(baseDirectives)),
		isReservedTag: opts.isReservedTag(),
		maxDepth:      opts.maxDepth(),
	}
	for name, fn := range baseDirectives {
		s.directives[name] = fn
	}
	if opts != nil {
		for name, fn := range opts.Directives {
			s.directives[name] = fn
		}
	}
	for _, m := range opts.modules() {
		if g, ok := m.(DataGenerator); ok {
			s.dataGenFns = append(s.dataGenFns, g)
		}
		if t, ok := m.(CodeTransformer); ok {
			s.transforms = append(s.transforms, t)
		}
	}
	return s
}

// maybeComponent reports whether el may render a component.
func (s *codegenState) maybeComponent(el *Element) bool {
	return el.Component != "" || !s.isReservedTag(el.Tag)
}

// Generate produces the render program of ast. A nil ast renders an empty div.
// Static roots must have been marked beforehand, see Optimize.
func Generate(ast *Element, opts *Options) *CodegenResult {
	return newCodegenState(opts).generate(ast)
}

func (s *codegenState) generate(ast *Element) *CodegenResult {
	code := `_c("div")`
	if ast != nil {
		code = s.genElement(ast)
	}
	fns := s.staticRenderFns
	if fns == nil {
		fns = []string{}
	}
	return &CodegenResult{
		Render:          "with(this){return " + code + "}",
		StaticRenderFns: fns,
	}
}

func (s *codegenState) genElement(el *Element) string {
	switch {
	case el.StaticRoot && !el.isResolved(resolvedStatic):
		return s.genStatic(el)
	case el.Once && !el.isResolved(resolvedOnce):
		return s.genOnce(el)
	case el.For != "" && !el.isResolved(resolvedFor):
		return s.genFor(el)
	case el.If != "" && !el.isResolved(resolvedIf):
		return s.genIf(el)
	case el.Tag == "template" && el.SlotTarget == "" && !s.pre:
		if children := s.genChildren(el, false); children != "" {
			return children
		}
		return "void 0"
	case el.Tag == "slot":
		return s.genSlot(el)
	}

	if el.Pre {
		prev := s.pre
		s.pre = true
		defer func() { s.pre = prev }()
	}

	var code string
	if el.Component != "" {
		code = s.genComponent(el.Component, el)
	} else {
		var b strings.Builder
		b.WriteString("_c('")
		b.WriteString(el.Tag)
		b.WriteByte('\'')
		if !el.Plain {
			b.WriteByte(',')
			b.WriteString(s.genData(el))
		}
		if !el.InlineTemplate {
			if children := s.genChildren(el, true); children != "" {
				b.WriteByte(',')
				b.WriteString(children)
			}
		}
		b.WriteByte(')')
		code = b.String()
	}
	for _, t := range s.transforms {
		code = t.TransformCode(el, code)
	}
	return code
}

// genStatic hoists el into the static render functions.
func (s *codegenState) genStatic(el *Element) string {
	el.markResolved(resolvedStatic)
	code := s.genElement(el)
	s.staticRenderFns = append(s.staticRenderFns, "with(this){return "+code+"}")
	ref := "_m(" + strconv.Itoa(len(s.staticRenderFns)-1)
	if el.StaticInFor {
		ref += ",true"
	}
	return ref + ")"
}

// genOnce renders v-once nodes.
func (s *codegenState) genOnce(el *Element) string {
	el.markResolved(resolvedOnce)
	if el.If != "" && !el.isResolved(resolvedIf) {
		return s.genIf(el)
	}
	if !el.StaticInFor {
		return s.genStatic(el)
	}
	key := ""
	for p := el.Parent; p != nil; p = p.Parent {
		if p.For != "" {
			key = p.Key
			break
		}
	}
	if key == "" {
		s.warn("v-once can only be used inside v-for that is keyed. ", false)
		return s.genElement(el)
	}
	code := s.genElement(el)
	id := s.onceID
	s.onceID++
	return "_o(" + code + "," + strconv.Itoa(id) + "," + key + ")"
}

func (s *codegenState) genFor(el *Element) string {
	if s.maybeComponent(el) && el.Tag != "slot" && el.Tag != "template" && el.Key == "" {
		s.warn(fmt.Sprintf("<%s v-for=\"%s in %s\">: component lists rendered with "+
			"v-for should have explicit keys.", el.Tag, el.Alias, el.For), true)
	}
	el.markResolved(resolvedFor)
	return s.genForWith(el, s.genElement)
}

// genForWith wraps gen(el) in an _l call iterating el's v-for source.
func (s *codegenState) genForWith(el *Element, gen func(*Element) string) string {
	var params strings.Builder
	params.WriteString(el.Alias)
	if el.Iterator1 != "" {
		params.WriteByte(',')
		params.WriteString(el.Iterator1)
	}
	if el.Iterator2 != "" {
		params.WriteByte(',')
		params.WriteString(el.Iterator2)
	}
	return "_l((" + el.For + "),function(" + params.String() + "){return " + gen(el) + "})"
}

func (s *codegenState) genIf(el *Element) string {
	el.markResolved(resolvedIf)
	return s.genIfConditions(el.IfConditions)
}

func (s *codegenState) genIfConditions(conds []IfCondition) string {
	if len(conds) == 0 {
		return "_e()"
	}
	cond := conds[0]
	// v-if with v-once should generate code like (a)?_m(0):_m(1)
	gen := s.genElement
	if cond.Block.Once {
		gen = s.genOnce
	}
	if cond.Exp == "" {
		return gen(cond.Block)
	}
	return "(" + cond.Exp + ")?" + gen(cond.Block) + ":" + s.genIfConditions(conds[1:])
}

func (s *codegenState) genComponent(name string, el *Element) string {
	code := "_c(" + name + "," + s.genData(el)
	if !el.InlineTemplate {
		if children := s.genChildren(el, true); children != "" {
			code += "," + children
		}
	}
	return code + ")"
}

func (s *codegenState) genSlot(el *Element) string {
	name := el.SlotName
	if name == "" {
		name = `"default"`
	}
	children := s.genChildren(el, false)
	res := "_t(" + name
	if children != "" {
		res += "," + children
	}

	attrs := ""
	if len(el.Attrs) > 0 {
		parts := make([]string, len(el.Attrs))
		for i, a := range el.Attrs {
			parts[i] = camelize(a.Name) + ":" + a.Value
		}
		attrs = "{" + strings.Join(parts, ",") + "}"
	}
	bind, hasBind := el.AttrsMap["v-bind"]
	if (attrs != "" || hasBind) && children == "" {
		res += ",null"
	}
	if attrs != "" {
		res += "," + attrs
	}
	if hasBind {
		if attrs == "" {
			res += ",null"
		}
		res += "," + bind
	}
	return res + ")"
}
