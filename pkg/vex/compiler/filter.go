package compiler

import (
	"strings"
)

// ParseFilters rewrites pipe syntax into filter calls:
//
//	a | f | g(1)  =>  _f("g")(_f("f")(a),1)
//
// Pipes inside strings, template literals, regex literals and brackets, and
// the || operator, are left alone.
func ParseFilters(exp string) string {
	var (
		inSingle, inDouble, inTemplate, inRegex bool
		curly, square, paren                    int
		lastFilterIndex                         int
		expression                              string
		haveExpression                          bool
		filters                                 []string
		c, prev                                 byte
		i                                       int
	)

	pushFilter := func() {
		filters = append(filters, strings.TrimSpace(exp[lastFilterIndex:i]))
		lastFilterIndex = i + 1
	}

	for i = 0; i < len(exp); i++ {
		prev = c
		c = exp[i]
		switch {
		case inSingle:
			if c == '\'' && prev != '\\' {
				inSingle = false
			}
		case inDouble:
			if c == '"' && prev != '\\' {
				inDouble = false
			}
		case inTemplate:
			if c == '`' && prev != '\\' {
				inTemplate = false
			}
		case inRegex:
			if c == '/' && prev != '\\' {
				inRegex = false
			}
		case c == '|' && byteAt(exp, i+1) != '|' && byteAt(exp, i-1) != '|' &&
			curly == 0 && square == 0 && paren == 0:
			if !haveExpression {
				// first filter, end of expression
				lastFilterIndex = i + 1
				expression = strings.TrimSpace(exp[:i])
				haveExpression = true
			} else {
				pushFilter()
			}
		default:
			switch c {
			case '"':
				inDouble = true
			case '\'':
				inSingle = true
			case '`':
				inTemplate = true
			case '(':
				paren++
			case ')':
				paren--
			case '[':
				square++
			case ']':
				square--
			case '{':
				curly++
			case '}':
				curly--
			}
			if c == '/' {
				// a slash opens a regex unless it follows something divisible
				j := i - 1
				var p byte
				for ; j >= 0; j-- {
					p = exp[j]
					if p != ' ' {
						break
					}
				}
				if j < 0 || !isValidDivisionChar(p) {
					inRegex = true
				}
			}
		}
	}

	if !haveExpression {
		expression = strings.TrimSpace(exp[:i])
	} else if lastFilterIndex != 0 {
		pushFilter()
	}

	for _, f := range filters {
		expression = wrapFilter(expression, f)
	}
	return expression
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func isValidDivisionChar(c byte) bool {
	return isWordChar(c) || c == ')' || c == '.' || c == '+' || c == '-' || c == '$' || c == ']'
}

func wrapFilter(exp, filter string) string {
	i := strings.IndexByte(filter, '(')
	if i < 0 {
		return `_f("` + filter + `")(` + exp + `)`
	}
	name := filter[:i]
	args := filter[i+1:]
	if args != ")" {
		return `_f("` + name + `")(` + exp + `,` + args
	}
	return `_f("` + name + `")(` + exp + args
}
