package compiler

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		tpl    string
		opts   func(*Options)
		render string
	}{
		{
			name:   "method handler",
			tpl:    `<div @click="go"></div>`,
			render: `_c('div',{on:{"click":go}})`,
		},
		{
			name:   "inline statement",
			tpl:    `<div @click="go(1)"></div>`,
			render: `_c('div',{on:{"click":function($event){go(1)}}})`,
		},
		{
			name:   "arrow function",
			tpl:    `<div @click="() => go(1)"></div>`,
			render: `_c('div',{on:{"click":() => go(1)}})`,
		},
		{
			name:   "stop modifier",
			tpl:    `<div @click.stop="go"></div>`,
			render: `_c('div',{on:{"click":function($event){$event.stopPropagation();go($event)}}})`,
		},
		{
			name:   "key alias",
			tpl:    `<input @keyup.enter="submit">`,
			render: `_c('input',{on:{"keyup":function($event){if(!('button' in $event)&&_k($event.keyCode,"enter",13,$event.key,"Enter"))return null;submit($event)}}})`,
		},
		{
			name:   "numeric key code",
			tpl:    `<input @keyup.13="submit">`,
			render: `_c('input',{on:{"keyup":function($event){if(!('button' in $event)&&$event.keyCode!==13)return null;submit($event)}}})`,
		},
		{
			name:   "unknown key",
			tpl:    `<input @keyup.page-down="next">`,
			render: `_c('input',{on:{"keyup":function($event){if(!('button' in $event)&&_k($event.keyCode,"page-down",undefined,$event.key,undefined))return null;next($event)}}})`,
		},
		{
			name:   "exact modifier",
			tpl:    `<div @click.ctrl.exact="go"></div>`,
			render: `_c('div',{on:{"click":function($event){if(!$event.ctrlKey)return null;if($event.shiftKey||$event.altKey||$event.metaKey)return null;go($event)}}})`,
		},
		{
			name:   "once modifier",
			tpl:    `<div @click.once="go"></div>`,
			render: `_c('div',{on:{"~click":function($event){go($event)}}})`,
		},
		{
			name:   "multiple handlers",
			tpl:    `<div @click="a" v-on:click="b"></div>`,
			render: `_c('div',{on:{"click":[a,b]}})`,
		},
		{
			name:   "native listeners",
			tpl:    `<my-button @click.native="go"></my-button>`,
			render: `_c('my-button',{nativeOn:{"click":function($event){go($event)}}})`,
		},
		{
			name:   "sync modifier",
			tpl:    `<my-comp :foo.sync="bar"></my-comp>`,
			render: `_c('my-comp',{attrs:{"foo":bar},on:{"update:foo":function($event){bar=$event}}})`,
		},
		{
			name:   "dom props",
			tpl:    `<video muted :text-content.prop="t"></video>`,
			render: `_c('video',{attrs:{"muted":""},domProps:{"muted":true,"textContent":t}})`,
		},
		{
			name:   "custom directive",
			tpl:    `<div v-custom:arg.mod="val"></div>`,
			render: `_c('div',{directives:[{name:"custom",rawName:"v-custom:arg.mod",value:(val),expression:"val",arg:"arg",modifiers:{"mod":true}}]})`,
		},
		{
			name:   "directive without value",
			tpl:    `<div v-focus></div>`,
			render: `_c('div',{directives:[{name:"focus",rawName:"v-focus"}]})`,
		},
		{
			name:   "build time directive",
			tpl:    `<div v-upper="x"></div>`,
			opts: func(o *Options) {
				o.Directives = map[string]DirectiveFunc{
					"upper": func(el *Element, dir *Directive, warn WarnFunc) bool {
						AddProp(el, "textContent", "_s("+dir.Value+").toUpperCase()")
						return false
					},
				}
			},
			render: `_c('div',{domProps:{"textContent":_s(x).toUpperCase()}})`,
		},
		{
			name:   "object binding",
			tpl:    `<div v-bind="obj" :id="a"></div>`,
			render: `_c('div',_b({attrs:{"id":a}},'div',obj,false))`,
		},
		{
			name:   "object listeners",
			tpl:    `<div v-on="listeners"></div>`,
			render: `_c('div',_g({},listeners))`,
		},
		{
			name:   "cloak",
			tpl:    `<div v-cloak></div>`,
			render: `_c('div',{})`,
		},
		{
			name:   "key and refs",
			tpl:    `<ul><li v-for="i in l" :key="i.id" ref="row"></li></ul>`,
			render: `_c('ul',_l((l),function(i){return _c('li',{key:i.id,ref:"row",refInFor:true})}))`,
		},
		{
			name:   "for with iterators",
			tpl:    `<ul><li v-for="(v, k, n) in obj">{{k}}</li></ul>`,
			render: `_c('ul',_l((obj),function(v,k,n){return _c('li',[_v(_s(k))])}))`,
		},
		{
			name:   "dynamic component",
			tpl:    `<component :is="view" :foo="bar"></component>`,
			render: `_c(view,{tag:"component",attrs:{"foo":bar}})`,
		},
		{
			name:   "slot outlet",
			tpl:    `<div><slot name="foo" :a="b">fallback</slot></div>`,
			render: `_c('div',[_t("foo",[_v("fallback")],{a:b})],2)`,
		},
		{
			name:   "slot with bound object",
			tpl:    `<div><slot v-bind="obj"></slot></div>`,
			render: `_c('div',[_t("default",null,null,obj)],2)`,
		},
		{
			name:   "slot target",
			tpl:    `<my-card><span slot="header">h</span></my-card>`,
			render: `_c('my-card',[_c('span',{attrs:{"slot":"header"},slot:"header"},[_v("h")])])`,
		},
		{
			name:   "empty slot target keeps the raw attribute",
			tpl:    `<my-card><span slot="">d</span></my-card>`,
			render: `_c('my-card',[_c('span',{attrs:{"slot":""},slot:"default"},[_v("d")])])`,
		},
		{
			name:   "template slot target",
			tpl:    `<my-card><template slot="header">h</template></my-card>`,
			render: `_c('my-card',[_c('template',{slot:"header"},[_v("h")])],2)`,
		},
		{
			name:   "scoped slot",
			tpl:    `<my-list><template slot-scope="props" slot="row"><span>{{props.x}}</span></template></my-list>`,
			render: `_c('my-list',{scopedSlots:_u([{key:"row",fn:function(props){return [_c('span',[_v(_s(props.x))])]}}])})`,
		},
		{
			name:   "conditional scoped slot",
			tpl:    `<my-list><template v-if="ok" slot-scope="p">{{p}}</template></my-list>`,
			render: `_c('my-list',{scopedSlots:_u([{key:"default",fn:function(p){return ok?[_v(_s(p))]:undefined}}])})`,
		},
		{
			name:   "scoped slot in for",
			tpl:    `<my-list><span v-for="n in names" :slot="n" slot-scope="s">{{s}}</span></my-list>`,
			render: `_c('my-list',{scopedSlots:_u([_l((names),function(n){return {key:n,fn:function(s){return _c('span',{},[_v(_s(s))])}}})])})`,
		},
		{
			name:   "children normalization",
			tpl:    `<div><my-comp></my-comp><span></span></div>`,
			render: `_c('div',[_c('my-comp'),_c('span')],1)`,
		},
		{
			name:   "branch normalization",
			tpl:    `<div><span v-if="a"></span><my-comp v-else></my-comp></div>`,
			render: `_c('div',[(a)?_c('span'):_c('my-comp')],1)`,
		},
		{
			name:   "comments",
			tpl:    `<div><!-- hi --></div>`,
			opts:   func(o *Options) { o.Comments = true },
			render: `_c('div',[_e(" hi ")])`,
		},
		{
			name:   "line separators are escaped",
			tpl:    "<div>a\u2028b</div>",
			render: `_c('div',[_v("a\u2028b")])`,
		},
		{
			name:   "code transforms",
			tpl:    `<div :id="a"></div>`,
			opts:   func(o *Options) { o.Modules = []Module{wrapModule{}} },
			render: `wrap(_c('div',{attrs:{"id":a},x:1}))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			if tt.opts != nil {
				tt.opts(opts)
			}
			root := Parse(tt.tpl, opts)
			Optimize(root, opts)
			got := Generate(root, opts).Render
			want := "with(this){return " + tt.render + "}"
			if got != want {
				t.Errorf("render mismatch\n got: %s\nwant: %s", got, want)
			}
		})
	}
}

type wrapModule struct{}

func (wrapModule) GenData(el *Element) string { return "" }

func (wrapModule) TransformCode(el *Element, code string) string { return "wrap(" + code + ")" }

func (wrapModule) TransformNode(el *Element, ctx *ParseContext) *Element {
	el.WrapData = func(code string) string { return strings.TrimSuffix(code, "}") + ",x:1}" }
	return nil
}

func TestGenerateNil(t *testing.T) {
	res := Generate(nil, nil)
	if res.Render != `with(this){return _c("div")}` {
		t.Errorf("Render = %q", res.Render)
	}
	if res.StaticRenderFns == nil || len(res.StaticRenderFns) != 0 {
		t.Errorf("StaticRenderFns = %#v", res.StaticRenderFns)
	}
}

func TestGenerateWithoutOptimize(t *testing.T) {
	opts := testOptions()
	root := Parse(`<div><p><b>x</b></p></div>`, opts)
	res := Generate(root, opts)
	if want := `with(this){return _c('div',[_c('p',[_c('b',[_v("x")])])])}`; res.Render != want {
		t.Errorf("Render = %s, want %s", res.Render, want)
	}
	if len(res.StaticRenderFns) != 0 {
		t.Errorf("nothing should be hoisted without static roots: %q", res.StaticRenderFns)
	}
}

func TestGenerateInlineTemplateDiagnostics(t *testing.T) {
	var errors []string
	opts := testOptions()
	opts.Warn = func(msg string, tip bool) { errors = append(errors, msg) }
	res := Compile(`<my-comp inline-template><p></p><p></p></my-comp>`, opts)

	if len(errors) != 1 || errors[0] != "Inline-template components must have exactly one child element." {
		t.Errorf("unexpected diagnostics: %q", errors)
	}
	if !strings.Contains(res.Render, "inlineTemplate:{render:function(){with(this){return _c('p')}},staticRenderFns:[]}") {
		t.Errorf("first child should still be compiled: %s", res.Render)
	}
}
