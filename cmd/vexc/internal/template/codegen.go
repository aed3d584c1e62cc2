package template

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/recera/vexc/pkg/vex/compiler"
)

// GenerateModule renders res as an ES module exporting render and
// staticRenderFns. Render programs use with(this), which strict module code
// rejects, so each one is built through the Function constructor.
func GenerateModule(res *Result) string {
	var code strings.Builder

	fmt.Fprintf(&code, "// Code generated by vexc from %s. DO NOT EDIT.\n\n", filepath.ToSlash(res.Source))
	fmt.Fprintf(&code, "export const render = new Function(%s);\n\n", compiler.JSONString(res.Render))

	if len(res.StaticRenderFns) == 0 {
		code.WriteString("export const staticRenderFns = [];\n")
		return code.String()
	}
	code.WriteString("export const staticRenderFns = [\n")
	for _, fn := range res.StaticRenderFns {
		fmt.Fprintf(&code, "  new Function(%s),\n", compiler.JSONString(fn))
	}
	code.WriteString("];\n")
	return code.String()
}
