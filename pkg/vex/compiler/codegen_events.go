package compiler

import (
	"regexp"
	"strings"
)

var (
	fnExpRE      = regexp.MustCompile(`^\s*([\w$]+|\([^)]*?\))\s*=>|^function\s*\(`)
	simplePathRE = regexp.MustCompile(`^\s*[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*|\['[^']*?']|\["[^"]*?"]|\[\d+]|\[[A-Za-z_$][\w$]*])*\s*$`)
)

// keyCodes and keyNames are the built-in key aliases. Values are program text.
var (
	keyCodes = map[string]string{
		"esc":    "27",
		"tab":    "9",
		"enter":  "13",
		"space":  "32",
		"up":     "38",
		"left":   "37",
		"right":  "39",
		"down":   "40",
		"delete": "[8,46]",
	}
	keyNames = map[string]string{
		"esc":    `"Escape"`,
		"tab":    `"Tab"`,
		"enter":  `"Enter"`,
		"space":  `" "`,
		"up":     `["Up","ArrowUp"]`,
		"left":   `["Left","ArrowLeft"]`,
		"right":  `["Right","ArrowRight"]`,
		"down":   `["Down","ArrowDown"]`,
		"delete": `["Backspace","Delete"]`,
	}
)

func genGuard(condition string) string {
	return "if(" + condition + ")return null;"
}

var modifierCode = map[string]string{
	"stop":    "$event.stopPropagation();",
	"prevent": "$event.preventDefault();",
	"self":    genGuard("$event.target !== $event.currentTarget"),
	"ctrl":    genGuard("!$event.ctrlKey"),
	"shift":   genGuard("!$event.shiftKey"),
	"alt":     genGuard("!$event.altKey"),
	"meta":    genGuard("!$event.metaKey"),
	"left":    genGuard("'button' in $event && $event.button !== 0"),
	"middle":  genGuard("'button' in $event && $event.button !== 1"),
	"right":   genGuard("'button' in $event && $event.button !== 2"),
}

var systemModifiers = []string{"ctrl", "shift", "alt", "meta"}

// genHandlers renders the on / nativeOn field of a data object.
func genHandlers(events *Handlers, native bool) string {
	var b strings.Builder
	if native {
		b.WriteString("nativeOn:{")
	} else {
		b.WriteString("on:{")
	}
	for i, name := range events.Names() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"` + name + `":`)
		handlers := events.Get(name)
		if len(handlers) == 1 {
			b.WriteString(genHandler(handlers[0]))
			continue
		}
		parts := make([]string, len(handlers))
		for j, h := range handlers {
			parts[j] = genHandler(h)
		}
		b.WriteString("[" + strings.Join(parts, ",") + "]")
	}
	b.WriteByte('}')
	return b.String()
}

func genHandler(h *Handler) string {
	if h == nil {
		return "function(){}"
	}
	isMethodPath := simplePathRE.MatchString(h.Value)
	isFunctionExpression := fnExpRE.MatchString(h.Value)

	if h.Modifiers == nil {
		if isMethodPath || isFunctionExpression {
			return h.Value
		}
		// inline statement
		return "function($event){" + h.Value + "}"
	}

	var (
		code   strings.Builder
		guards strings.Builder
		keys   []string
	)
	for _, m := range h.Modifiers {
		if mc, ok := modifierCode[m]; ok {
			guards.WriteString(mc)
			// left/right are also key aliases
			if _, isKey := keyCodes[m]; isKey {
				keys = append(keys, m)
			}
		} else if m == "exact" {
			var others []string
			for _, sys := range systemModifiers {
				if !h.Modifiers.Has(sys) {
					others = append(others, "$event."+sys+"Key")
				}
			}
			guards.WriteString(genGuard(strings.Join(others, "||")))
		} else {
			keys = append(keys, m)
		}
	}
	if len(keys) > 0 {
		code.WriteString(genKeyFilter(keys))
	}
	code.WriteString(guards.String())

	var handlerCode string
	switch {
	case isMethodPath:
		handlerCode = h.Value + "($event)"
	case isFunctionExpression:
		handlerCode = "(" + h.Value + ")($event)"
	default:
		handlerCode = h.Value
	}
	return "function($event){" + code.String() + handlerCode + "}"
}

func genKeyFilter(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = genFilterCode(k)
	}
	return "if(!('button' in $event)&&" + strings.Join(parts, "&&") + ")return null;"
}

func genFilterCode(key string) string {
	if code := leadingInt(key); code != "" {
		return "$event.keyCode!==" + code
	}
	keyCode, ok := keyCodes[key]
	if !ok {
		keyCode = "undefined"
	}
	keyName, ok := keyNames[key]
	if !ok {
		keyName = "undefined"
	}
	return "_k($event.keyCode," + JSONString(key) + "," + keyCode + ",$event.key," + keyName + ")"
}

// leadingInt returns the non-zero decimal prefix of s, or "".
func leadingInt(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return strings.TrimLeft(s[:end], "0")
}
