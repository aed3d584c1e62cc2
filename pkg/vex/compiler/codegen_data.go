package compiler

import (
	"strings"
)

// genData builds the data object of a construction call. Field order is part
// of the output contract.
func (s *codegenState) genData(el *Element) string {
	var b strings.Builder
	b.WriteByte('{')

	// directives first. They may mutate the element's other properties
	// before those get generated.
	if dirs := s.genDirectives(el); dirs != "" {
		b.WriteString(dirs)
		b.WriteByte(',')
	}
	if el.Key != "" {
		b.WriteString("key:" + el.Key + ",")
	}
	if el.Ref != "" {
		b.WriteString("ref:" + el.Ref + ",")
	}
	if el.RefInFor {
		b.WriteString("refInFor:true,")
	}
	if el.Pre {
		b.WriteString("pre:true,")
	}
	// record original tag name for components using "is" attribute
	if el.Component != "" {
		b.WriteString(`tag:"` + el.Tag + `",`)
	}
	for _, g := range s.dataGenFns {
		b.WriteString(g.GenData(el))
	}
	if len(el.Attrs) > 0 {
		b.WriteString("attrs:{" + genProps(el.Attrs) + "},")
	}
	if len(el.Props) > 0 {
		b.WriteString("domProps:{" + genProps(el.Props) + "},")
	}
	if el.Events.Len() > 0 {
		b.WriteString(genHandlers(&el.Events, false) + ",")
	}
	if el.NativeEvents.Len() > 0 {
		b.WriteString(genHandlers(&el.NativeEvents, true) + ",")
	}
	// only for non-scoped slots
	if el.SlotTarget != "" && el.SlotScope == "" {
		b.WriteString("slot:" + el.SlotTarget + ",")
	}
	if len(el.ScopedSlots) > 0 {
		b.WriteString(s.genScopedSlots(el.ScopedSlots) + ",")
	}
	if m := el.Model; m != nil {
		b.WriteString("model:{value:" + m.Value + ",callback:" + m.Callback + ",expression:" + m.Expression + "},")
	}
	if el.InlineTemplate {
		if tpl := s.genInlineTemplate(el); tpl != "" {
			b.WriteString(tpl + ",")
		}
	}

	data := strings.TrimSuffix(b.String(), ",") + "}"
	if el.WrapData != nil {
		data = el.WrapData(data)
	}
	if el.WrapListeners != nil {
		data = el.WrapListeners(data)
	}
	return data
}

// genDirectives runs build-time directive compilers and renders the runtime
// descriptors of the directives that still need one.
func (s *codegenState) genDirectives(el *Element) string {
	if len(el.Directives) == 0 {
		return ""
	}
	var b strings.Builder
	for _, dir := range el.Directives {
		needRuntime := true
		if gen, ok := s.directives[dir.Name]; ok {
			// compile-time directive that manipulates AST.
			// returns true if it also needs a runtime counterpart.
			needRuntime = gen(el, dir, s.warn)
		}
		if !needRuntime {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{name:"` + dir.Name + `",rawName:"` + dir.RawName + `"`)
		if dir.Value != "" {
			b.WriteString(",value:(" + dir.Value + "),expression:" + JSONString(dir.Value))
		}
		if dir.Arg != "" {
			b.WriteString(`,arg:"` + dir.Arg + `"`)
		}
		if dir.Modifiers != nil {
			b.WriteString(",modifiers:" + dir.Modifiers.JSON())
		}
		b.WriteByte('}')
	}
	if b.Len() == 0 {
		return ""
	}
	return "directives:[" + b.String() + "]"
}

func genProps(props []Attr) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = `"` + p.Name + `":` + transformSpecialNewlines(p.Value)
	}
	return strings.Join(parts, ",")
}

func (s *codegenState) genScopedSlots(slots []ScopedSlot) string {
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = s.genScopedSlot(slot.Name, slot.Element)
	}
	return "scopedSlots:_u([" + strings.Join(parts, ",") + "])"
}

func (s *codegenState) genScopedSlot(key string, el *Element) string {
	if el.For != "" && !el.isResolved(resolvedFor) {
		el.markResolved(resolvedFor)
		return s.genForWith(el, func(el *Element) string {
			return s.genScopedSlot(key, el)
		})
	}

	s.depth++
	defer func() { s.depth-- }()

	var body string
	if el.Tag == "template" {
		body = s.genChildren(el, false)
		if body == "" {
			body = "undefined"
		}
		if el.If != "" {
			body = el.If + "?" + body + ":undefined"
		}
	} else {
		body = s.genChild(el)
	}
	return "{key:" + key + ",fn:function(" + el.SlotScope + "){return " + body + "}}"
}

// genInlineTemplate compiles the single child of an inline-template component
// with a fresh state, embedding its static render functions.
func (s *codegenState) genInlineTemplate(el *Element) string {
	var ast *Element
	if len(el.Children) > 0 {
		ast, _ = el.Children[0].(*Element)
	}
	if len(el.Children) != 1 || ast == nil {
		s.warn("Inline-template components must have exactly one child element.", false)
	}
	if ast == nil {
		return ""
	}

	nested := newCodegenState(s.opts)
	nested.depth = s.depth + 1
	res := nested.generate(ast)

	fns := make([]string, len(res.StaticRenderFns))
	for i, code := range res.StaticRenderFns {
		fns[i] = "function(){" + code + "}"
	}
	return "inlineTemplate:{render:function(){" + res.Render + "},staticRenderFns:[" + strings.Join(fns, ",") + "]}"
}
