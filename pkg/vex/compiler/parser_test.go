package compiler

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type diagnostics struct {
	errors []string
	tips   []string
}

func (d *diagnostics) warn(msg string, tip bool) {
	if tip {
		d.tips = append(d.tips, msg)
	} else {
		d.errors = append(d.errors, msg)
	}
}

func parse(t *testing.T, template string, configure ...func(*Options)) (*Element, *diagnostics) {
	t.Helper()
	d := &diagnostics{}
	opts := testOptions()
	opts.Warn = d.warn
	for _, f := range configure {
		f(opts)
	}
	return Parse(template, opts), d
}

// describe renders children compactly: element tags, quoted text, !comments.
func describe(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *Element:
			out = append(out, "<"+n.Tag+">")
		case *Text:
			if n.Expression != "" {
				out = append(out, "{"+n.Expression+"}")
			} else {
				out = append(out, `"`+n.Text+`"`)
			}
		case *Comment:
			out = append(out, "!"+n.Text)
		}
	}
	return out
}

func TestParseFor(t *testing.T) {
	tests := []struct {
		exp  string
		want *ForResult
	}{
		{"item in items", &ForResult{For: "items", Alias: "item"}},
		{"item of items", &ForResult{For: "items", Alias: "item"}},
		{"(item, index) in items", &ForResult{For: "items", Alias: "item", Iterator1: "index"}},
		{"(value, key, index) in object", &ForResult{For: "object", Alias: "value", Iterator1: "key", Iterator2: "index"}},
		{"{ a, b } in list", &ForResult{For: "list", Alias: "{ a, b }"}},
		{"({ a, b }, i) in list", &ForResult{For: "list", Alias: "{ a, b }", Iterator1: "i"}},
		{"[a, b] in pairs", &ForResult{For: "pairs", Alias: "[a, b]"}},
		{"n in 10", &ForResult{For: "10", Alias: "n"}},
		{"items", nil},
	}

	for _, tt := range tests {
		t.Run(tt.exp, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseFor(tt.exp)); diff != "" {
				t.Errorf("ParseFor(%q) mismatch (-want +got):\n%s", tt.exp, diff)
			}
		})
	}
}

func TestParseInvalidFor(t *testing.T) {
	root, d := parse(t, `<div><p v-for="items">x</p></div>`)
	p := root.Children[0].(*Element)
	if p.For != "" {
		t.Errorf("invalid v-for was kept: %q", p.For)
	}
	if len(d.errors) != 1 || !strings.Contains(d.errors[0], "Invalid v-for expression: items") {
		t.Errorf("unexpected diagnostics: %q", d.errors)
	}
}

func TestParseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		template string
		trim     bool
		want     []string
	}{
		{
			name:     "condensed between elements",
			template: "<div>\n  <span>a</span>\n  <span>b</span>\n</div>",
			want:     []string{"<span>", `" "`, "<span>"},
		},
		{
			name:     "trimmed between elements",
			template: "<div>\n  <span>a</span>\n  <span>b</span>\n</div>",
			trim:     true,
			want:     []string{"<span>", "<span>"},
		},
		{
			name:     "text keeps inner spacing",
			template: "<div>  a  b  </div>",
			want:     []string{`"  a  b  "`},
		},
		{
			name:     "entities decoded",
			template: "<div>a &lt; b &amp;&amp; c</div>",
			want:     []string{`"a < b && c"`},
		},
		{
			name:     "interpolation",
			template: "<div>hi {{ name }}</div>",
			want:     []string{`{"hi "+_s(name)}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := parse(t, tt.template, func(o *Options) { o.TrimWhitespace = tt.trim })
			if diff := cmp.Diff(tt.want, describe(root.Children)); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePreKeepsWhitespace(t *testing.T) {
	root, _ := parse(t, "<pre>\n  a\n  <b>x</b> </pre>")
	want := []string{"\"  a\n  \"", "<b>", `" "`}
	if diff := cmp.Diff(want, describe(root.Children)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestParseComments(t *testing.T) {
	root, _ := parse(t, "<div><!-- note --><span></span></div>")
	if diff := cmp.Diff([]string{"<span>"}, describe(root.Children)); diff != "" {
		t.Errorf("comments should be dropped (-want +got):\n%s", diff)
	}

	root, _ = parse(t, "<div><!-- note --><span></span></div>", func(o *Options) { o.Comments = true })
	if diff := cmp.Diff([]string{"! note ", "<span>"}, describe(root.Children)); diff != "" {
		t.Errorf("comments should be kept (-want +got):\n%s", diff)
	}
}

func TestParseConditionals(t *testing.T) {
	root, d := parse(t, `<div><p v-if="a">1</p> <p v-else-if="b">2</p>
		<p v-else>3</p></div>`)

	if diff := cmp.Diff([]string{"<p>"}, describe(root.Children)); diff != "" {
		t.Fatalf("branches should not be children (-want +got):\n%s", diff)
	}
	p := root.Children[0].(*Element)
	var got []string
	for _, c := range p.IfConditions {
		got = append(got, c.Exp+"|"+c.Block.Tag)
	}
	if diff := cmp.Diff([]string{"a|p", "b|p", "|p"}, got); diff != "" {
		t.Errorf("conditions mismatch (-want +got):\n%s", diff)
	}
	if len(d.errors) != 0 {
		t.Errorf("unexpected diagnostics: %q", d.errors)
	}
}

func TestParseConditionalDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "else without if",
			template: `<div><p v-else>x</p></div>`,
			want:     "v-else used on element <p> without corresponding v-if.",
		},
		{
			name:     "else-if without if",
			template: `<div><p></p><p v-else-if="b">x</p></div>`,
			want:     `v-else-if="b" used on element <p> without corresponding v-if.`,
		},
		{
			name:     "text between branches",
			template: `<div><p v-if="a"></p>oops<p v-else></p></div>`,
			want:     `text "oops" between v-if and v-else(-if) will be ignored.`,
		},
		{
			name:     "branch after default",
			template: `<div><p v-if="a"></p><p v-else></p><p v-else></p></div>`,
			want:     "v-else used on element <p> without corresponding v-if.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d := parse(t, tt.template)
			if diff := cmp.Diff([]string{tt.want}, d.errors); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRootConstraints(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{
			name:     "text only",
			template: "hello",
			want:     []string{"Component template requires a root element, rather than just text."},
		},
		{
			name:     "text outside root",
			template: "<div></div> tail ",
			want:     []string{`text "tail" outside root element will be ignored.`},
		},
		{
			name:     "two roots",
			template: "<div></div><span></span>",
			want: []string{"Component template should contain exactly one root element. " +
				"If you are using v-if on multiple elements, use v-else-if to chain them instead."},
		},
		{
			name:     "template root",
			template: "<template><div></div></template>",
			want:     []string{"Cannot use <template> as component root element because it may contain multiple nodes."},
		},
		{
			name:     "v-for root",
			template: `<div v-for="i in l"></div>`,
			want:     []string{"Cannot use v-for on stateful component root element because it renders multiple elements."},
		},
		{
			name:     "chained roots",
			template: `<div v-if="a"></div><span v-else></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d := parse(t, tt.template)
			if diff := cmp.Diff(tt.want, d.errors); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseScopedSlot(t *testing.T) {
	root, d := parse(t, `<my-list><template slot-scope="props" slot="row">{{ props.x }}</template><span>x</span></my-list>`)

	if diff := cmp.Diff([]string{"<span>"}, describe(root.Children)); diff != "" {
		t.Errorf("scoped slot should not be a child (-want +got):\n%s", diff)
	}
	if len(root.ScopedSlots) != 1 {
		t.Fatalf("got %d scoped slots, want 1", len(root.ScopedSlots))
	}
	slot := root.ScopedSlots[0]
	if slot.Name != `"row"` || slot.Element.SlotScope != "props" {
		t.Errorf("unexpected scoped slot %q scope %q", slot.Name, slot.Element.SlotScope)
	}
	if root.Plain {
		t.Error("element with scoped slots must not be plain")
	}
	if len(d.errors)+len(d.tips) != 0 {
		t.Errorf("unexpected diagnostics: %q %q", d.errors, d.tips)
	}
}

func TestParseSlotDiagnostics(t *testing.T) {
	_, d := parse(t, `<div><template scope="p">{{p}}</template></div>`)
	if len(d.tips) != 1 || !strings.Contains(d.tips[0], `"scope" attribute`) {
		t.Errorf("expected a deprecation tip, got %q", d.tips)
	}

	_, d = parse(t, `<div><my-row v-for="r in rows" slot-scope="p"></my-row></div>`)
	if len(d.tips) != 1 || !strings.Contains(d.tips[0], "Ambiguous combined usage of slot-scope and v-for on <my-row>") {
		t.Errorf("expected an ambiguity tip, got %q", d.tips)
	}
}

func TestParseSlotTarget(t *testing.T) {
	root, _ := parse(t, `<my-card><span slot="header">h</span><span slot="">d</span></my-card>`)
	header := root.Children[0].(*Element)
	if header.SlotTarget != `"header"` {
		t.Errorf("SlotTarget = %q", header.SlotTarget)
	}
	if diff := cmp.Diff([]Attr{{Name: "slot", Value: `"header"`}}, header.Attrs); diff != "" {
		t.Errorf("slot attribute should be preserved (-want +got):\n%s", diff)
	}
	if def := root.Children[1].(*Element); def.SlotTarget != `"default"` {
		t.Errorf("empty slot should target default, got %q", def.SlotTarget)
	}
}

func TestParseAttributes(t *testing.T) {
	root, _ := parse(t, `<div id="app" :title="t | upper" :inner-html.prop="h" :view-box.camel="vb"
		@click.right="menu" @click.middle="mid" @scroll.capture.once.passive="onScroll"
		v-custom:arg.mod="val"></div>`)

	wantAttrs := []Attr{
		{Name: "id", Value: `"app"`},
		{Name: "title", Value: `_f("upper")(t)`},
		{Name: "viewBox", Value: "vb"},
	}
	if diff := cmp.Diff(wantAttrs, root.Attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Attr{{Name: "innerHTML", Value: "h"}}, root.Props); diff != "" {
		t.Errorf("props mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"contextmenu", "mouseup", "&~!scroll"}, root.Events.Names()); diff != "" {
		t.Errorf("event names mismatch (-want +got):\n%s", diff)
	}
	if mods := root.Events.Get("mouseup")[0].Modifiers; !mods.Has("middle") {
		t.Errorf("middle modifier should be kept, got %v", mods)
	}
	if mods := root.Events.Get("&~!scroll")[0].Modifiers; mods == nil || len(mods) != 0 {
		t.Errorf("consumed modifiers should leave an empty set, got %#v", mods)
	}

	wantDirs := []*Directive{{
		Name:      "custom",
		RawName:   "v-custom:arg.mod",
		Value:     "val",
		Arg:       "arg",
		Modifiers: Modifiers{"mod"},
	}}
	if diff := cmp.Diff(wantDirs, root.Directives); diff != "" {
		t.Errorf("directives mismatch (-want +got):\n%s", diff)
	}
	if !root.HasBindings || root.Plain {
		t.Errorf("HasBindings = %v, Plain = %v", root.HasBindings, root.Plain)
	}
}

func TestParseNativeAndSync(t *testing.T) {
	root, _ := parse(t, `<my-input :value.sync="form.name" @focus.native="onFocus" @change="a" v-on:change="b"></my-input>`)

	if diff := cmp.Diff([]Attr{{Name: "value", Value: "form.name"}}, root.Attrs); diff != "" {
		t.Errorf("component bindings stay attributes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"update:value", "change"}, root.Events.Names()); diff != "" {
		t.Errorf("event names mismatch (-want +got):\n%s", diff)
	}
	if got := root.Events.Get("update:value")[0].Value; got != `$set(form, "name", $event)` {
		t.Errorf("sync handler = %q", got)
	}
	if got := len(root.Events.Get("change")); got != 2 {
		t.Errorf("got %d change handlers, want 2", got)
	}
	if diff := cmp.Diff([]string{"focus"}, root.NativeEvents.Names()); diff != "" {
		t.Errorf("native event names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMustUseProp(t *testing.T) {
	root, _ := parse(t, `<div><input :value="v"><video muted></video></div>`)
	input := root.Children[0].(*Element)
	if diff := cmp.Diff([]Attr{{Name: "value", Value: "v"}}, input.Props); diff != "" {
		t.Errorf("input props mismatch (-want +got):\n%s", diff)
	}
	video := root.Children[1].(*Element)
	if diff := cmp.Diff([]Attr{{Name: "muted", Value: "true"}}, video.Props); diff != "" {
		t.Errorf("video props mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "duplicate attribute",
			template: `<div id="a" id="b"></div>`,
			want:     "duplicate attribute: id",
		},
		{
			name:     "forbidden style",
			template: `<div><style>a{}</style></div>`,
			want:     "such as <style>",
		},
		{
			name:     "keyed template",
			template: `<div><template :key="k"></template></div>`,
			want:     "<template> cannot be keyed.",
		},
		{
			name:     "v-model on iteration alias",
			template: `<div><input v-for="item in items" v-model="item"></div>`,
			want:     `<input v-model="item">: You are binding v-model directly to a v-for iteration alias.`,
		},
		{
			name:     "passive prevent",
			template: `<div @touchstart.passive.prevent="f"></div>`,
			want:     "passive and prevent can't be used together.",
		},
		{
			name:     "unclosed element",
			template: `<div><span></div>`,
			want:     "tag <span> has no matching end tag.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d := parse(t, tt.template)
			if len(d.errors) != 1 || !strings.Contains(d.errors[0], tt.want) {
				t.Errorf("want one diagnostic containing %q, got %q", tt.want, d.errors)
			}
		})
	}
}

func TestParseForbiddenTagIsDropped(t *testing.T) {
	root, _ := parse(t, `<div><script>alert(1)</script><script type="text/x-template"></script></div>`)
	if diff := cmp.Diff([]string{"<script>"}, describe(root.Children)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRefInFor(t *testing.T) {
	root, _ := parse(t, `<ul><li v-for="i in l"><span ref="item"></span></li><p ref="other"></p></ul>`)
	span := root.Children[0].(*Element).Children[0].(*Element)
	if span.Ref != `"item"` || !span.RefInFor {
		t.Errorf("span ref = %q, inFor = %v", span.Ref, span.RefInFor)
	}
	p := root.Children[1].(*Element)
	if p.Ref != `"other"` || p.RefInFor {
		t.Errorf("p ref = %q, inFor = %v", p.Ref, p.RefInFor)
	}
}

func TestParseDelimiters(t *testing.T) {
	root, _ := parse(t, `<div>${ a } {{ b }}</div>`, func(o *Options) { o.Delimiters = [2]string{"${", "}"} })
	want := []string{`{_s(a)+" {{ b }}"}`}
	if diff := cmp.Diff(want, describe(root.Children)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

type replacingModule struct{}

func (replacingModule) PreTransformNode(el *Element, ctx *ParseContext) *Element {
	if el.Tag != "x-alias" {
		return nil
	}
	return NewElement("div", el.AttrsList, el.Parent, nil)
}

type closeRecorder struct{ closed []string }

func (r *closeRecorder) PostTransformNode(el *Element, ctx *ParseContext) {
	r.closed = append(r.closed, el.Tag)
}

func TestParseModules(t *testing.T) {
	rec := &closeRecorder{}
	root, _ := parse(t, `<section><x-alias id="a"></x-alias><br></section>`, func(o *Options) {
		o.Modules = []Module{replacingModule{}, rec}
	})
	if diff := cmp.Diff([]string{"<div>", "<br>"}, describe(root.Children)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"div", "br", "section"}, rec.closed); diff != "" {
		t.Errorf("post transform order mismatch (-want +got):\n%s", diff)
	}
}
