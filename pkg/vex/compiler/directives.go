package compiler

// baseDirectives are compiled for every platform. Platform directives of the
// same name take precedence.
var baseDirectives = map[string]DirectiveFunc{
	"on":    onDirective,
	"bind":  bindDirective,
	"cloak": func(*Element, *Directive, WarnFunc) bool { return false },
}

// onDirective compiles argument-less v-on="listeners".
func onDirective(el *Element, dir *Directive, warn WarnFunc) bool {
	if len(dir.Modifiers) > 0 {
		warn("v-on without argument does not support modifiers.", false)
	}
	value := dir.Value
	el.WrapListeners = func(code string) string {
		return "_g(" + code + "," + value + ")"
	}
	return false
}

// bindDirective compiles argument-less v-bind="object".
func bindDirective(el *Element, dir *Directive, _ WarnFunc) bool {
	tag, value := el.Tag, dir.Value
	isProp := "false"
	if dir.Modifiers.Has("prop") {
		isProp = "true"
	}
	sync := ""
	if dir.Modifiers.Has("sync") {
		sync = ",true"
	}
	el.WrapData = func(code string) string {
		return "_b(" + code + ",'" + tag + "'," + value + "," + isProp + sync + ")"
	}
	return false
}
