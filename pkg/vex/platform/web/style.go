package web

import (
	"regexp"
	"strings"

	"github.com/recera/vexc/pkg/vex/compiler"
)

// styleModule splits style into a static declaration object and a :style
// binding.
type styleModule struct{}

func (styleModule) TransformNode(el *compiler.Element, ctx *compiler.ParseContext) *compiler.Element {
	if static, _ := compiler.GetAndRemoveAttr(el, "style", false); static != "" {
		if ctx.ParseText(static) != nil {
			ctx.Warn(interpolationWarning("style", static), false)
		}
		el.StaticStyle = ParseStyleText(static).JSON()
	}
	if binding := ctx.GetBindingAttr(el, "style", false); binding != "" {
		el.StyleBinding = binding
	}
	return nil
}

func (styleModule) GenData(el *compiler.Element) string {
	data := ""
	if el.StaticStyle != "" {
		data += "staticStyle:" + el.StaticStyle + ","
	}
	if el.StyleBinding != "" {
		data += "style:(" + el.StyleBinding + "),"
	}
	return data
}

func (styleModule) StaticKeys() []string { return []string{"staticStyle"} }

// Declarations is an ordered set of CSS declarations. Redeclared properties
// keep their first position and take the last value.
type Declarations struct {
	names  []string
	values map[string]string
}

// Get returns the value of property name.
func (d *Declarations) Get(name string) (string, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Names returns the property names in declaration order.
func (d *Declarations) Names() []string { return d.names }

func (d *Declarations) set(name, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, ok := d.values[name]; !ok {
		d.names = append(d.names, name)
	}
	d.values[name] = value
}

// JSON renders the declarations as a JSON object.
func (d *Declarations) JSON() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range d.names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(compiler.JSONString(name))
		b.WriteByte(':')
		b.WriteString(compiler.JSONString(d.values[name]))
	}
	b.WriteByte('}')
	return b.String()
}

var propertyDelimiterRE = regexp.MustCompile(`:(.+)`)

// ParseStyleText parses an inline style attribute. Semicolons inside
// parentheses, as in url(data:...;base64,...), do not split declarations.
func ParseStyleText(cssText string) *Declarations {
	res := &Declarations{}
	for _, item := range splitDeclarations(cssText) {
		if item == "" {
			continue
		}
		loc := propertyDelimiterRE.FindStringSubmatchIndex(item)
		if loc == nil {
			continue
		}
		res.set(strings.TrimSpace(item[:loc[0]]), strings.TrimSpace(item[loc[2]:loc[3]]))
	}
	return res
}

// splitDeclarations splits on ';' unless a ')' follows before any '('.
func splitDeclarations(s string) []string {
	var parts []string
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != ';' || closesParen(s[i+1:]) {
			continue
		}
		parts = append(parts, s[last:i])
		last = i + 1
	}
	return append(parts, s[last:])
}

func closesParen(rest string) bool {
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			return false
		case ')':
			return true
		}
	}
	return false
}
