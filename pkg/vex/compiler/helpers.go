package compiler

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONString quotes s as a script string literal. HTML characters are kept
// as written.
func JSONString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return strings.TrimSuffix(buf.String(), "\n")
}

// transformSpecialNewlines escapes U+2028 and U+2029, which are line
// terminators inside script string literals.
func transformSpecialNewlines(text string) string {
	text = strings.ReplaceAll(text, "\u2028", `\u2028`)
	return strings.ReplaceAll(text, "\u2029", `\u2029`)
}

// camelize turns kebab-case into camelCase.
func camelize(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '-' && i+1 < len(s) && isWordChar(s[i+1]) {
			b.WriteString(strings.ToUpper(s[i+1 : i+2]))
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isWordChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// GetAndRemoveAttr removes the raw attribute name from el's attribute list and
// returns its value. The attribute map keeps the entry unless removeFromMap.
func GetAndRemoveAttr(el *Element, name string, removeFromMap bool) (string, bool) {
	val, ok := el.AttrsMap[name]
	if ok {
		for i, a := range el.AttrsList {
			if a.Name == name {
				el.AttrsList = append(el.AttrsList[:i:i], el.AttrsList[i+1:]...)
				break
			}
		}
	}
	if removeFromMap {
		delete(el.AttrsMap, name)
	}
	return val, ok
}

// GetBindingAttr extracts :name / v-bind:name as an expression, or, when
// getStatic is set, a plain name attribute as a JSON string. A nil
// parseFilters means ParseFilters.
func GetBindingAttr(el *Element, name string, getStatic bool, parseFilters func(string) string) string {
	dynamic, _ := GetAndRemoveAttr(el, ":"+name, false)
	if dynamic == "" {
		dynamic, _ = GetAndRemoveAttr(el, "v-bind:"+name, false)
	}
	if dynamic != "" {
		if parseFilters == nil {
			parseFilters = ParseFilters
		}
		return parseFilters(dynamic)
	}
	if getStatic {
		if static, ok := GetAndRemoveAttr(el, name, false); ok {
			return JSONString(static)
		}
	}
	return ""
}

// GetBindingAttr is GetBindingAttr with the context's filter parser.
func (c *ParseContext) GetBindingAttr(el *Element, name string, getStatic bool) string {
	return GetBindingAttr(el, name, getStatic, c.filters)
}

// AddAttr appends a compiled attribute binding.
func AddAttr(el *Element, name, value string) {
	el.Attrs = append(el.Attrs, Attr{Name: name, Value: value})
	el.Plain = false
}

// AddProp appends a compiled DOM property binding.
func AddProp(el *Element, name, value string) {
	el.Props = append(el.Props, Attr{Name: name, Value: value})
	el.Plain = false
}

// AddRawAttr adds an attribute as if it had been written in the markup.
func AddRawAttr(el *Element, name, value string) {
	el.AttrsMap[name] = value
	el.AttrsList = append(el.AttrsList, Attr{Name: name, Value: value})
}

// AddDirective appends a runtime directive occurrence.
func AddDirective(el *Element, name, rawName, value, arg string, modifiers Modifiers) {
	el.Directives = append(el.Directives, &Directive{
		Name:      name,
		RawName:   rawName,
		Value:     value,
		Arg:       arg,
		Modifiers: modifiers,
	})
	el.Plain = false
}

// AddHandler registers an event handler with the context's diagnostics.
func (c *ParseContext) AddHandler(el *Element, name, value string, modifiers Modifiers, important bool) {
	AddHandler(el, name, value, modifiers, important, c.warn)
}

// AddHandler registers an event handler. Event modifiers that change the
// listener kind are folded into the event name: capture '!', once '~',
// passive '&'. important handlers are placed first.
func AddHandler(el *Element, name, value string, modifiers Modifiers, important bool, warn WarnFunc) {
	if modifiers.Has("prevent") && modifiers.Has("passive") && warn != nil {
		warn("passive and prevent can't be used together. "+
			"Passive handler can't prevent default event.", false)
	}

	// right and middle clicks never fire click
	if name == "click" {
		if modifiers.Has("right") {
			name = "contextmenu"
			modifiers = modifiers.Without("right")
		} else if modifiers.Has("middle") {
			name = "mouseup"
		}
	}

	if modifiers.Has("capture") {
		modifiers = modifiers.Without("capture")
		name = "!" + name
	}
	if modifiers.Has("once") {
		modifiers = modifiers.Without("once")
		name = "~" + name
	}
	if modifiers.Has("passive") {
		modifiers = modifiers.Without("passive")
		name = "&" + name
	}

	events := &el.Events
	if modifiers.Has("native") {
		modifiers = modifiers.Without("native")
		events = &el.NativeEvents
	}

	events.add(name, &Handler{Value: strings.TrimSpace(value), Modifiers: modifiers}, important)
	el.Plain = false
}
