package compiler

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dirRE         = regexp.MustCompile(`^v-|^@|^:`)
	bindRE        = regexp.MustCompile(`^:|^v-bind:`)
	onRE          = regexp.MustCompile(`^@|^v-on:`)
	argRE         = regexp.MustCompile(`:(.*)$`)
	modifierRE    = regexp.MustCompile(`\.[^.]+`)
	forAliasRE    = regexp.MustCompile(`(?s)^(.*?)\s+(?:in|of)\s+(.*)$`)
	forIteratorRE = regexp.MustCompile(`,([^,\}\]]*)(?:,([^,\}\]]*))?$`)
)

// ParseFor splits a v-for expression into source, alias and iterators. It
// returns nil when exp has no "in" or "of" separator.
func ParseFor(exp string) *ForResult {
	m := forAliasRE.FindStringSubmatch(exp)
	if m == nil {
		return nil
	}
	res := &ForResult{For: strings.TrimSpace(m[2])}
	alias := strings.TrimSpace(m[1])
	alias = strings.TrimSuffix(strings.TrimPrefix(alias, "("), ")")
	if loc := forIteratorRE.FindStringSubmatchIndex(alias); loc != nil {
		res.Iterator1 = strings.TrimSpace(alias[loc[2]:loc[3]])
		if loc[4] >= 0 {
			res.Iterator2 = strings.TrimSpace(alias[loc[4]:loc[5]])
		}
		alias = alias[:loc[0]] + alias[loc[1]:]
	}
	res.Alias = strings.TrimSpace(alias)
	return res
}

// AddIfCondition appends a branch to el's conditional group. It reports false
// when the group already ends with a default branch.
func AddIfCondition(el *Element, cond IfCondition) bool {
	if n := len(el.IfConditions); n > 0 && el.IfConditions[n-1].Exp == "" {
		return false
	}
	el.IfConditions = append(el.IfConditions, cond)
	return true
}

func processPre(el *Element) {
	if _, ok := GetAndRemoveAttr(el, "v-pre", false); ok {
		el.Pre = true
	}
}

// processRawAttrs keeps every attribute literal inside a v-pre subtree.
func processRawAttrs(el *Element) {
	if len(el.AttrsList) > 0 {
		el.Attrs = make([]Attr, len(el.AttrsList))
		for i, a := range el.AttrsList {
			el.Attrs[i] = Attr{Name: a.Name, Value: JSONString(a.Value)}
		}
	} else if !el.Pre {
		// non root node in pre blocks with no attributes
		el.Plain = true
	}
}

// ProcessFor extracts v-for from el.
func (c *ParseContext) ProcessFor(el *Element) {
	exp, _ := GetAndRemoveAttr(el, "v-for", false)
	if exp == "" {
		return
	}
	res := ParseFor(exp)
	if res == nil {
		c.Warn("Invalid v-for expression: "+exp, false)
		return
	}
	el.For = res.For
	el.Alias = res.Alias
	el.Iterator1 = res.Iterator1
	el.Iterator2 = res.Iterator2
}

func (c *ParseContext) processIf(el *Element) {
	if exp, _ := GetAndRemoveAttr(el, "v-if", false); exp != "" {
		el.If = exp
		AddIfCondition(el, IfCondition{Exp: exp, Block: el})
		return
	}
	if _, ok := GetAndRemoveAttr(el, "v-else", false); ok {
		el.Else = true
	}
	if exp, _ := GetAndRemoveAttr(el, "v-else-if", false); exp != "" {
		el.ElseIf = exp
	}
}

func processOnce(el *Element) {
	if _, ok := GetAndRemoveAttr(el, "v-once", false); ok {
		el.Once = true
	}
}

// ProcessElement runs key, ref, slot and component extraction, the platform
// transforms, and attribute classification. It returns the element to keep,
// which a transform may have replaced.
func (c *ParseContext) ProcessElement(el *Element) *Element {
	c.processKey(el)

	// determine whether this is a plain element after removing structural
	// attributes
	el.Plain = el.Key == "" && len(el.AttrsList) == 0

	c.processRef(el)
	c.processSlot(el)
	c.processComponent(el)
	for _, t := range c.transforms {
		if replaced := t.TransformNode(el, c); replaced != nil {
			el = replaced
		}
	}
	c.processAttrs(el)
	return el
}

func (c *ParseContext) processKey(el *Element) {
	exp := c.GetBindingAttr(el, "key", true)
	if exp == "" {
		return
	}
	if el.Tag == "template" {
		c.Warn("<template> cannot be keyed. Place the key on real elements instead.", false)
	}
	el.Key = exp
}

func (c *ParseContext) processRef(el *Element) {
	ref := c.GetBindingAttr(el, "ref", true)
	if ref == "" {
		return
	}
	el.Ref = ref
	el.RefInFor = inFor(el)
}

func inFor(el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p.For != "" {
			return true
		}
	}
	return false
}

func (c *ParseContext) processSlot(el *Element) {
	if el.Tag == "slot" {
		el.SlotName = c.GetBindingAttr(el, "name", true)
		if el.Key != "" {
			c.Warn("`key` does not work on <slot> because slots are abstract outlets "+
				"and can possibly expand into multiple elements. "+
				"Use the key on a wrapping element instead.", false)
		}
		return
	}

	if el.Tag == "template" {
		scope, _ := GetAndRemoveAttr(el, "scope", false)
		if scope != "" {
			c.Warn(`the "scope" attribute for scoped slots is deprecated and replaced by "slot-scope", `+
				`which can also be used on plain elements in addition to <template> to denote scoped slots.`, true)
		} else {
			scope, _ = GetAndRemoveAttr(el, "slot-scope", false)
		}
		el.SlotScope = scope
	} else if scope, _ := GetAndRemoveAttr(el, "slot-scope", false); scope != "" {
		if el.HasAttr("v-for") {
			c.Warn(fmt.Sprintf("Ambiguous combined usage of slot-scope and v-for on <%s> "+
				"(v-for takes higher priority). Use a wrapper <template> for the "+
				"scoped slot to make it clearer.", el.Tag), true)
		}
		el.SlotScope = scope
	}

	binding := c.GetBindingAttr(el, "slot", true)
	if binding == "" {
		return
	}
	el.SlotTarget = binding
	if binding == `""` {
		el.SlotTarget = `"default"`
	}
	// preserve slot as an attribute for native shadow DOM compat, only for
	// non-scoped slots
	if el.Tag != "template" && el.SlotScope == "" {
		AddAttr(el, "slot", binding)
	}
}

func (c *ParseContext) processComponent(el *Element) {
	if binding := c.GetBindingAttr(el, "is", true); binding != "" {
		el.Component = binding
	}
	if _, ok := GetAndRemoveAttr(el, "inline-template", false); ok {
		el.InlineTemplate = true
	}
}

func parseModifiers(name string) Modifiers {
	found := modifierRE.FindAllString(name, -1)
	if found == nil {
		return nil
	}
	mods := make(Modifiers, 0, len(found))
	for _, m := range found {
		if !mods.Has(m[1:]) {
			mods = append(mods, m[1:])
		}
	}
	return mods
}

// processAttrs classifies the remaining raw attributes into bindings,
// listeners, directives and literal attributes.
func (c *ParseContext) processAttrs(el *Element) {
	for _, a := range el.AttrsList {
		name, rawName, value := a.Name, a.Name, a.Value

		if !dirRE.MatchString(name) {
			c.processLiteralAttr(el, name, value)
			continue
		}

		// mark element as dynamic
		el.HasBindings = true
		modifiers := parseModifiers(name)
		if modifiers != nil {
			name = modifierRE.ReplaceAllString(name, "")
		}

		switch {
		case bindRE.MatchString(name):
			name = bindRE.ReplaceAllString(name, "")
			value = c.parseFilters(value)
			isProp := false
			if modifiers.Has("prop") {
				isProp = true
				name = camelize(name)
				if name == "innerHtml" {
					name = "innerHTML"
				}
			}
			if modifiers.Has("camel") {
				name = camelize(name)
			}
			if modifiers.Has("sync") {
				c.AddHandler(el, "update:"+camelize(name), GenAssignmentCode(value, "$event"), nil, false)
			}
			if isProp || (el.Component == "" && c.mustUseProp(el.Tag, el.AttrsMap["type"], name)) {
				AddProp(el, name, value)
			} else {
				AddAttr(el, name, value)
			}
		case onRE.MatchString(name):
			name = onRE.ReplaceAllString(name, "")
			c.AddHandler(el, name, value, modifiers, false)
		default:
			name = dirRE.ReplaceAllString(name, "")
			arg := ""
			if m := argRE.FindStringSubmatchIndex(name); m != nil {
				arg = name[m[2]:m[3]]
				name = name[:m[0]]
			}
			AddDirective(el, name, rawName, value, arg, modifiers)
			if name == "model" {
				c.checkForAliasModel(el, value)
			}
		}
	}
}

func (c *ParseContext) processLiteralAttr(el *Element, name, value string) {
	if c.ParseText(value) != nil {
		c.Warn(fmt.Sprintf(`%s="%s": Interpolation inside attributes is not supported. `+
			`Use v-bind or the colon shorthand instead. For example, `+
			`instead of <div id="{{ val }}">, use <div :id="val">.`, name, value), false)
	}
	AddAttr(el, name, JSONString(value))
	// muted is not picked up by the DOM when set as an attribute on a
	// freshly created element
	if el.Component == "" && name == "muted" && c.mustUseProp(el.Tag, el.AttrsMap["type"], name) {
		AddProp(el, name, "true")
	}
}

func (c *ParseContext) checkForAliasModel(el *Element, value string) {
	for e := el; e != nil; e = e.Parent {
		if e.For != "" && e.Alias == value {
			c.Warn(fmt.Sprintf(`<%s v-model="%s">: You are binding v-model directly to a v-for iteration alias. `+
				`This will not be able to modify the v-for source array because writing to the alias `+
				`is like modifying a function local variable. Consider using an array of `+
				`objects and use v-model on an object property instead.`, el.Tag, value), false)
			return
		}
	}
}
