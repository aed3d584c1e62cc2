// Package web is the browser platform of the VEX compiler: HTML and SVG tag
// knowledge, class and style handling, and the v-model, v-text and v-html
// directives.
package web

import (
	"github.com/recera/vexc/pkg/vex/compiler"
	"github.com/recera/vexc/pkg/vex/html"
)

// Modules returns the platform modules in hook order.
func Modules() []compiler.Module {
	return []compiler.Module{classModule{}, styleModule{}, modelModule{}}
}

// Directives returns the build-time directive compilers of the platform.
func Directives() map[string]compiler.DirectiveFunc {
	return map[string]compiler.DirectiveFunc{
		"model": modelDirective,
		"text":  textDirective,
		"html":  htmlDirective,
	}
}

// Options returns compiler options for browser templates. Callers may adjust
// the returned value, it is not shared.
func Options() *compiler.Options {
	return &compiler.Options{
		ExpectHTML:       true,
		Modules:          Modules(),
		Directives:       Directives(),
		IsPreTag:         IsPreTag,
		IsUnaryTag:       html.IsUnaryTag,
		MustUseProp:      MustUseProp,
		CanBeLeftOpenTag: html.CanBeLeftOpenTag,
		IsReservedTag:    IsReservedTag,
		GetTagNamespace:  GetTagNamespace,
	}
}
