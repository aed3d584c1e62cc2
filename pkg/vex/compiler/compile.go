// Package compiler turns VEX templates into render programs.
//
// The pipeline is Parse -> Optimize -> Generate. Compile runs all three and
// collects diagnostics. Platform behaviour (reserved tags, class and style
// handling, v-model) is injected through Options; see the web package for the
// browser platform.
package compiler

// CompiledResult is the output of Compile.
type CompiledResult struct {
	AST             *Element
	Render          string
	StaticRenderFns []string
	// Errors and Tips collect the warnings and advisory messages emitted
	// while compiling. Both are empty in production mode.
	Errors []string
	Tips   []string
}

// Compile parses, optimizes and generates template. Diagnostics are returned
// in the result and also forwarded to opts.Warn.
func Compile(template string, opts *Options) *CompiledResult {
	res := &CompiledResult{}

	var o Options
	if opts != nil {
		o = *opts
	}
	forward := o.warnFunc()
	if !o.Production {
		o.Warn = func(msg string, tip bool) {
			if tip {
				res.Tips = append(res.Tips, msg)
			} else {
				res.Errors = append(res.Errors, msg)
			}
			forward(msg, tip)
		}
	}

	res.AST = Parse(template, &o)
	Optimize(res.AST, &o)
	code := Generate(res.AST, &o)
	res.Render = code.Render
	res.StaticRenderFns = code.StaticRenderFns
	return res
}
