package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		exp  string
		want string
	}{
		{"a", "a"},
		{" a ", "a"},
		{"a | b", `_f("b")(a)`},
		{"a | b | c", `_f("c")(_f("b")(a))`},
		{"a | b(1, 2)", `_f("b")(a,1, 2)`},
		{"a | b()", `_f("b")(a)`},
		{"a || b", "a || b"},
		{"'a|b' | f", `_f("f")('a|b')`},
		{`"a|b" | f`, `_f("f")("a|b")`},
		{"`${a}|b` | f", "_f(\"f\")(`${a}|b`)"},
		{"a[b | c]", "a[b | c]"},
		{"fn(a | b)", "fn(a | b)"},
		{"{a: b | c}", "{a: b | c}"},
		{"x / 2 | f", `_f("f")(x / 2)`},
		{"/a|b/.test(c)", "/a|b/.test(c)"},
	}

	for _, tt := range tests {
		t.Run(tt.exp, func(t *testing.T) {
			if got := ParseFilters(tt.exp); got != tt.want {
				t.Errorf("ParseFilters(%q) = %q, want %q", tt.exp, got, tt.want)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		delimiters *[2]string
		want       *TextResult
	}{
		{
			name: "no interpolation",
			text: "hello",
			want: nil,
		},
		{
			name: "single binding",
			text: "{{ msg }}",
			want: &TextResult{
				Expression: "_s(msg)",
				Tokens:     []Token{{Binding: "msg", IsBinding: true}},
			},
		},
		{
			name: "literals around a filtered binding",
			text: "a {{ b | f }} c",
			want: &TextResult{
				Expression: `"a "+_s(_f("f")(b))+" c"`,
				Tokens: []Token{
					{Literal: "a "},
					{Binding: `_f("f")(b)`, IsBinding: true},
					{Literal: " c"},
				},
			},
		},
		{
			name: "adjacent bindings",
			text: "{{a}}{{b}}",
			want: &TextResult{
				Expression: "_s(a)+_s(b)",
				Tokens: []Token{
					{Binding: "a", IsBinding: true},
					{Binding: "b", IsBinding: true},
				},
			},
		},
		{
			name: "literal needs quoting",
			text: "say \"{{a}}\"\n",
			want: &TextResult{
				Expression: `"say \""+_s(a)+"\"\n"`,
				Tokens: []Token{
					{Literal: `say "`},
					{Binding: "a", IsBinding: true},
					{Literal: "\"\n"},
				},
			},
		},
		{
			name:       "custom delimiters",
			text:       "x ${ a } {{ b }}",
			delimiters: &[2]string{"${", "}"},
			want: &TextResult{
				Expression: `"x "+_s(a)+" {{ b }}"`,
				Tokens: []Token{
					{Literal: "x "},
					{Binding: "a", IsBinding: true},
					{Literal: " {{ b }}"},
				},
			},
		},
		{
			name:       "custom delimiters ignore the default pair",
			text:       "{{ b }}",
			delimiters: &[2]string{"[[", "]]"},
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseText(tt.text, tt.delimiters, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseText(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestParseTextCustomFilterParser(t *testing.T) {
	res := ParseText("{{ a | b }}", nil, func(exp string) string { return "[" + exp + "]" })
	if res == nil || res.Expression != "_s([a | b])" {
		t.Fatalf("unexpected result: %+v", res)
	}
}
