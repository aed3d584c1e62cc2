package web

import (
	"fmt"

	"github.com/recera/vexc/pkg/vex/compiler"
)

// classModule splits class into a static part and a :class binding.
type classModule struct{}

func (classModule) TransformNode(el *compiler.Element, ctx *compiler.ParseContext) *compiler.Element {
	if static, _ := compiler.GetAndRemoveAttr(el, "class", false); static != "" {
		if ctx.ParseText(static) != nil {
			ctx.Warn(interpolationWarning("class", static), false)
		}
		el.StaticClass = compiler.JSONString(static)
	}
	if binding := ctx.GetBindingAttr(el, "class", false); binding != "" {
		el.ClassBinding = binding
	}
	return nil
}

func (classModule) GenData(el *compiler.Element) string {
	data := ""
	if el.StaticClass != "" {
		data += "staticClass:" + el.StaticClass + ","
	}
	if el.ClassBinding != "" {
		data += "class:" + el.ClassBinding + ","
	}
	return data
}

func (classModule) StaticKeys() []string { return []string{"staticClass"} }

func interpolationWarning(name, value string) string {
	return fmt.Sprintf(`%s="%s": Interpolation inside attributes is not supported. `+
		`Use v-bind or the colon shorthand instead. For example, `+
		`instead of <div %s="{{ val }}">, use <div :%s="val">.`, name, value, name, name)
}
