package compiler

// Optimize marks static subtrees so the code generator can hoist them out of
// the render function. Static roots are rendered once and reused on every
// re-render.
func Optimize(root *Element, opts *Options) {
	if root == nil {
		return
	}
	o := &optimizer{
		staticKeys:    map[string]bool{},
		isReservedTag: opts.isReservedTag(),
	}
	for _, m := range opts.modules() {
		if k, ok := m.(StaticKeyer); ok {
			for _, key := range k.StaticKeys() {
				o.staticKeys[key] = true
			}
		}
	}
	o.markStatic(root)
	o.markStaticRoots(root, false)
}

type optimizer struct {
	staticKeys    map[string]bool
	isReservedTag func(string) bool
}

func (o *optimizer) markStatic(n Node) {
	switch n := n.(type) {
	case *Text:
		n.Static = n.Expression == ""
	case *Comment:
		n.Static = true
	case *Element:
		n.Static = o.isStatic(n)
		// do not make component slot content static, so that the component
		// can mutate it and hot reloading keeps working
		if !o.isReservedTag(n.Tag) && n.Tag != "slot" && !n.HasAttr("inline-template") {
			return
		}
		for _, child := range n.Children {
			o.markStatic(child)
			if !isStaticNode(child) {
				n.Static = false
			}
		}
		for _, cond := range tail(n.IfConditions) {
			o.markStatic(cond.Block)
			if !cond.Block.Static {
				n.Static = false
			}
		}
	}
}

func (o *optimizer) markStaticRoots(el *Element, inFor bool) {
	if el.Static || el.Once {
		el.StaticInFor = inFor
	}
	// a node with a single text child is cheaper to re-render than to hoist
	if el.Static && len(el.Children) > 0 && !(len(el.Children) == 1 && isLiteral(el.Children[0])) {
		el.StaticRoot = true
		return
	}
	el.StaticRoot = false
	for _, child := range el.Children {
		if c, ok := child.(*Element); ok {
			o.markStaticRoots(c, inFor || el.For != "")
		}
	}
	for _, cond := range tail(el.IfConditions) {
		o.markStaticRoots(cond.Block, inFor)
	}
}

func (o *optimizer) isStatic(el *Element) bool {
	if el.Pre {
		return true
	}
	return !el.HasBindings &&
		el.If == "" && el.For == "" &&
		el.Tag != "slot" && el.Tag != "component" &&
		o.isReservedTag(el.Tag) &&
		!isDirectChildOfTemplateFor(el) &&
		o.onlyStaticKeys(el)
}

// onlyStaticKeys reports whether every field set on el beyond the base
// element shape is listed by a platform module as hoistable.
func (o *optimizer) onlyStaticKeys(el *Element) bool {
	for _, key := range setFields(el) {
		if !o.staticKeys[key] {
			return false
		}
	}
	return true
}

// setFields names the optional element fields that carry a value.
func setFields(el *Element) []string {
	var keys []string
	add := func(set bool, name string) {
		if set {
			keys = append(keys, name)
		}
	}
	add(el.Namespace != "", "ns")
	add(el.Forbidden, "forbidden")
	add(el.Processed, "processed")
	add(el.Once, "once")
	add(el.ElseIf != "", "elseif")
	add(el.Else, "else")
	add(el.Key != "", "key")
	add(el.Ref != "", "ref")
	add(el.SlotName != "", "slotName")
	add(el.SlotTarget != "", "slotTarget")
	add(el.SlotScope != "", "slotScope")
	add(len(el.ScopedSlots) > 0, "scopedSlots")
	add(el.Component != "", "component")
	add(el.InlineTemplate, "inlineTemplate")
	add(len(el.Props) > 0, "props")
	add(len(el.Directives) > 0, "directives")
	add(el.Events.Len() > 0, "events")
	add(el.NativeEvents.Len() > 0, "nativeEvents")
	add(el.Model != nil, "model")
	add(el.WrapData != nil, "wrapData")
	add(el.WrapListeners != nil, "wrapListeners")
	add(el.StaticClass != "", "staticClass")
	add(el.ClassBinding != "", "classBinding")
	add(el.StaticStyle != "", "staticStyle")
	add(el.StyleBinding != "", "styleBinding")
	return keys
}

func isDirectChildOfTemplateFor(el *Element) bool {
	for p := el.Parent; p != nil; p = p.Parent {
		if p.Tag != "template" {
			return false
		}
		if p.For != "" {
			return true
		}
	}
	return false
}

func isStaticNode(n Node) bool {
	switch n := n.(type) {
	case *Element:
		return n.Static
	case *Text:
		return n.Static
	case *Comment:
		return n.Static
	}
	return false
}

func isLiteral(n Node) bool {
	return n.Type() == NodeText
}

func tail(conds []IfCondition) []IfCondition {
	if len(conds) < 2 {
		return nil
	}
	return conds[1:]
}
