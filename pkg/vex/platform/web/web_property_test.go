//go:build property
// +build property

package web

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/recera/vexc/pkg/vex/compiler"
)

var fragments = []interface{}{
	`<p>static</p>`,
	`<p class="a"><b>x</b></p>`,
	`<span>{{ msg | upper }}</span>`,
	`<li v-for="(item, i) in items" :key="i">{{ item }}</li>`,
	`<my-item v-for="item in items"></my-item>`,
	`<div v-if="a">a</div><div v-else-if="b">b</div><div v-else>c</div>`,
	`<span v-once>{{ once }}</span>`,
	`<input v-model.trim="form.name">`,
	`<input v-model="v" :type="t">`,
	`<select v-model="s"><option :value="1">1</option></select>`,
	`<slot name="footer" :x="y">fallback</slot>`,
	`<my-list><template slot-scope="p" slot="row">{{ p.x }}</template></my-list>`,
	`<component :is="view" @click.native.stop="go"></component>`,
	`<button @keyup.enter.exact="submit($event)">ok</button>`,
	`<svg><circle r="1"></circle></svg>`,
	`<div v-pre>{{ raw }}</div>`,
	`<p style="color: red" :style="s">{{ a }}</p>`,
	`<!-- comment -->`,
	`text with <b>bold</b>`,
	`<p>unclosed`,
	`</stray>`,
	`<div id="{{ bad }}"></div>`,
}

var staticRefRE = regexp.MustCompile(`_m\((\d+)`)

func templateGen() gopter.Gen {
	return gen.SliceOfN(6, gen.OneConstOf(fragments...)).Map(func(parts []string) string {
		return "<div>" + strings.Join(parts, "") + "</div>"
	})
}

func TestCompileProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("compilation is deterministic", prop.ForAll(
		func(tpl string) bool {
			a := compiler.Compile(tpl, Options())
			b := compiler.Compile(tpl, Options())
			return a.Render == b.Render &&
				strings.Join(a.StaticRenderFns, "\x00") == strings.Join(b.StaticRenderFns, "\x00") &&
				len(a.Errors) == len(b.Errors) && len(a.Tips) == len(b.Tips)
		},
		templateGen(),
	))

	properties.Property("every static reference has a function", prop.ForAll(
		func(tpl string) bool {
			res := compiler.Compile(tpl, Options())
			for _, m := range staticRefRE.FindAllStringSubmatch(res.Render, -1) {
				i, _ := strconv.Atoi(m[1])
				if i >= len(res.StaticRenderFns) {
					return false
				}
			}
			return strings.HasPrefix(res.Render, "with(this){return ") && strings.HasSuffix(res.Render, "}")
		},
		templateGen(),
	))

	properties.Property("production output matches development output", prop.ForAll(
		func(tpl string) bool {
			opts := Options()
			opts.Production = true
			prod := compiler.Compile(tpl, opts)
			dev := compiler.Compile(tpl, Options())
			return prod.Render == dev.Render && len(prod.Errors) == 0 && len(prod.Tips) == 0
		},
		templateGen(),
	))

	properties.Property("arbitrary input never panics", prop.ForAll(
		func(tpl string) (ok bool) {
			defer func() {
				if r := recover(); r != nil {
					t.Logf("panic on %q: %v", tpl, r)
					ok = false
				}
			}()
			compiler.Compile(tpl, Options())
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestParseStyleTextProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("declared properties are kept once with the last value", prop.ForAll(
		func(names []string, values []string) bool {
			var decls []string
			want := make(map[string]string)
			for i, name := range names {
				decls = append(decls, fmt.Sprintf("%s: %s", name, values[i]))
				want[name] = values[i]
			}
			d := ParseStyleText(strings.Join(decls, ";"))
			if len(d.Names()) != len(want) {
				return false
			}
			for name, v := range want {
				if got, ok := d.Get(name); !ok || got != v {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(8, gen.OneConstOf("color", "margin", "top", "font-size")),
		gen.SliceOfN(8, gen.AlphaString().Map(func(s string) string { return "v" + s })),
	))

	properties.TestingRun(t)
}
