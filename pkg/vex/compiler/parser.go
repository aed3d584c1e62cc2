package compiler

import (
	"fmt"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/recera/vexc/pkg/vex/html"
)

// ParseContext carries the resolved options of one Parse call. Platform hooks
// receive it to reuse the directive pipeline.
type ParseContext struct {
	opts            *Options
	warn            WarnFunc
	delimiters      *[2]string
	filters         func(string) string
	isPreTag        func(string) bool
	mustUseProp     func(tag, typ, attr string) bool
	getTagNamespace func(string) string
	preTransforms   []PreTransformer
	transforms      []Transformer
	postTransforms  []PostTransformer
}

func newParseContext(opts *Options) *ParseContext {
	if opts == nil {
		opts = &Options{}
	}
	c := &ParseContext{
		opts:            opts,
		warn:            opts.warnFunc(),
		delimiters:      opts.delimiters(),
		filters:         opts.filterParser(),
		isPreTag:        orNo(opts.IsPreTag),
		mustUseProp:     opts.mustUseProp(),
		getTagNamespace: opts.getTagNamespace(),
	}
	for _, m := range opts.Modules {
		if t, ok := m.(PreTransformer); ok {
			c.preTransforms = append(c.preTransforms, t)
		}
		if t, ok := m.(Transformer); ok {
			c.transforms = append(c.transforms, t)
		}
		if t, ok := m.(PostTransformer); ok {
			c.postTransforms = append(c.postTransforms, t)
		}
	}
	return c
}

// Options returns the options this context was created with.
func (c *ParseContext) Options() *Options { return c.opts }

// Warn reports a diagnostic.
func (c *ParseContext) Warn(msg string, tip bool) { c.warn(msg, tip) }

// ParseText extracts interpolations using the configured delimiters.
func (c *ParseContext) ParseText(text string) *TextResult {
	return ParseText(text, c.delimiters, c.filters)
}

func (c *ParseContext) parseFilters(exp string) string { return c.filters(exp) }

// parser builds the AST from tokenizer events
type parser struct {
	ctx           *ParseContext
	template      string
	stack         []*Element
	root          *Element
	currentParent *Element
	inVPre        bool
	inPre         bool
	warned        bool
}

// Parse builds the AST of template. It returns nil when the template has no
// root element. Parse never fails; problems are reported through opts.Warn.
func Parse(template string, opts *Options) *Element {
	ctx := newParseContext(opts)
	p := &parser{ctx: ctx, template: template}
	o := ctx.opts
	html.Parse(template, html.Options{
		ExpectHTML:                  o.ExpectHTML,
		IsUnaryTag:                  o.IsUnaryTag,
		CanBeLeftOpenTag:            o.CanBeLeftOpenTag,
		ShouldDecodeNewlines:        o.ShouldDecodeNewlines,
		ShouldDecodeNewlinesForHref: o.ShouldDecodeNewlinesForHref,
		ShouldKeepComment:           o.Comments,
		Warn:                        func(msg string) { ctx.Warn(msg, false) },
	}, p)
	return p.root
}

func (p *parser) warnOnce(msg string) {
	if !p.warned {
		p.warned = true
		p.ctx.Warn(msg, false)
	}
}

func (p *parser) Start(tag string, rawAttrs []html.Attr, unary bool, start, end int) {
	ctx := p.ctx

	// inherit the parent namespace if there is one
	ns := ""
	if p.currentParent != nil {
		ns = p.currentParent.Namespace
	}
	if ns == "" {
		ns = ctx.getTagNamespace(tag)
	}

	attrs := make([]Attr, len(rawAttrs))
	for i, a := range rawAttrs {
		attrs[i] = Attr{Name: a.Name, Value: a.Value, Start: a.Start, End: a.End}
	}
	el := NewElement(tag, attrs, p.currentParent, func(msg string) { ctx.Warn(msg, false) })
	el.Start, el.End = start, end
	el.Namespace = ns

	if isForbiddenTag(el) {
		el.Forbidden = true
		ctx.Warn("Templates should only be responsible for mapping the state to the UI. "+
			"Avoid placing tags with side-effects in your templates, such as <"+tag+">, "+
			"as they will not be parsed.", false)
	}

	for _, t := range ctx.preTransforms {
		if replaced := t.PreTransformNode(el, ctx); replaced != nil {
			el = replaced
		}
	}

	if !p.inVPre {
		processPre(el)
		if el.Pre {
			p.inVPre = true
		}
	}
	if ctx.isPreTag(el.Tag) {
		p.inPre = true
	}
	if p.inVPre {
		processRawAttrs(el)
	} else if !el.Processed {
		// structural directives
		ctx.ProcessFor(el)
		ctx.processIf(el)
		processOnce(el)
		el = ctx.ProcessElement(el)
	}

	if p.root == nil {
		p.root = el
		p.checkRootConstraints(el)
	} else if len(p.stack) == 0 {
		// allow root elements chained with v-if, v-else-if and v-else
		if p.root.If != "" && (el.ElseIf != "" || el.Else) &&
			AddIfCondition(p.root, IfCondition{Exp: el.ElseIf, Block: el}) {
			p.checkRootConstraints(el)
		} else {
			p.warnOnce("Component template should contain exactly one root element. " +
				"If you are using v-if on multiple elements, use v-else-if to chain them instead.")
		}
	}

	if p.currentParent != nil && !el.Forbidden {
		switch {
		case el.ElseIf != "" || el.Else:
			p.processIfConditions(el, p.currentParent)
		case el.SlotScope != "":
			p.currentParent.Plain = false
			name := el.SlotTarget
			if name == "" {
				name = `"default"`
			}
			p.currentParent.setScopedSlot(name, el)
		default:
			p.currentParent.Children = append(p.currentParent.Children, el)
			el.Parent = p.currentParent
		}
	}

	if !unary {
		p.currentParent = el
		p.stack = append(p.stack, el)
	} else {
		p.closeElement(el)
	}
}

func (p *parser) checkRootConstraints(el *Element) {
	if el.Tag == "slot" || el.Tag == "template" {
		p.warnOnce("Cannot use <" + el.Tag + "> as component root element because it may contain multiple nodes.")
	}
	if el.HasAttr("v-for") {
		p.warnOnce("Cannot use v-for on stateful component root element because it renders multiple elements.")
	}
}

func (p *parser) End(tag string, start, end int) {
	if len(p.stack) == 0 {
		return
	}
	el := p.stack[len(p.stack)-1]

	// remove trailing whitespace
	if n := len(el.Children); n > 0 && isSpaceText(el.Children[n-1]) && !p.inPre {
		el.Children = el.Children[:n-1]
	}

	p.stack = p.stack[:len(p.stack)-1]
	p.currentParent = nil
	if len(p.stack) > 0 {
		p.currentParent = p.stack[len(p.stack)-1]
	}
	p.closeElement(el)
}

func (p *parser) closeElement(el *Element) {
	if el.Pre {
		p.inVPre = false
	}
	if p.ctx.isPreTag(el.Tag) {
		p.inPre = false
	}
	for _, t := range p.ctx.postTransforms {
		t.PostTransformNode(el, p.ctx)
	}
}

func (p *parser) Chars(text string, start, end int) {
	if p.currentParent == nil {
		if text == p.template {
			p.warnOnce("Component template requires a root element, rather than just text.")
		} else if trimmed := strings.TrimSpace(text); trimmed != "" {
			p.warnOnce(`text "` + trimmed + `" outside root element will be ignored.`)
		}
		return
	}

	children := p.currentParent.Children
	switch {
	case p.inPre || strings.TrimSpace(text) != "":
		if !isTextTag(p.currentParent) {
			text = xhtml.UnescapeString(text)
		}
	case !p.ctx.opts.TrimWhitespace && len(children) > 0:
		// only preserve whitespace if it's not right after a start tag
		text = " "
	default:
		text = ""
	}
	if text == "" {
		return
	}

	if !p.inVPre && text != " " {
		if res := p.ctx.ParseText(text); res != nil {
			p.currentParent.Children = append(children, &Text{
				Text:       text,
				Expression: res.Expression,
				Tokens:     res.Tokens,
				Start:      start,
				End:        end,
			})
			return
		}
	}
	if text != " " || len(children) == 0 || !isSpaceText(children[len(children)-1]) {
		p.currentParent.Children = append(children, &Text{Text: text, Start: start, End: end})
	}
}

func (p *parser) Comment(text string, start, end int) {
	if p.currentParent == nil {
		return
	}
	p.currentParent.Children = append(p.currentParent.Children, &Comment{Text: text, Start: start, End: end})
}

// processIfConditions attaches an else / else-if element to the conditional
// group of its nearest preceding element sibling.
func (p *parser) processIfConditions(el *Element, parent *Element) {
	prev := p.findPrevElement(parent)
	if prev != nil && prev.If != "" && AddIfCondition(prev, IfCondition{Exp: el.ElseIf, Block: el}) {
		return
	}
	directive := "else"
	if el.ElseIf != "" {
		directive = `else-if="` + el.ElseIf + `"`
	}
	p.ctx.Warn(fmt.Sprintf("v-%s used on element <%s> without corresponding v-if.", directive, el.Tag), false)
}

// findPrevElement drops trailing non-element children of parent and returns
// the last element child.
func (p *parser) findPrevElement(parent *Element) *Element {
	for i := len(parent.Children) - 1; i >= 0; i-- {
		if el, ok := parent.Children[i].(*Element); ok {
			return el
		}
		if text := nodeText(parent.Children[i]); text != " " {
			p.ctx.Warn(`text "`+strings.TrimSpace(text)+`" between v-if and v-else(-if) will be ignored.`, false)
		}
		parent.Children = parent.Children[:i]
	}
	return nil
}

func nodeText(n Node) string {
	switch n := n.(type) {
	case *Text:
		return n.Text
	case *Comment:
		return n.Text
	}
	return ""
}

func isSpaceText(n Node) bool {
	t, ok := n.(*Text)
	return ok && t.Expression == "" && t.Text == " "
}

func isTextTag(el *Element) bool {
	return el.Tag == "script" || el.Tag == "style"
}

func isForbiddenTag(el *Element) bool {
	if el.Tag == "style" {
		return true
	}
	if el.Tag == "script" {
		typ := el.AttrsMap["type"]
		return typ == "" || typ == "text/javascript"
	}
	return false
}
