package web

import "github.com/recera/vexc/pkg/vex/compiler"

func textDirective(el *compiler.Element, dir *compiler.Directive, _ compiler.WarnFunc) bool {
	if dir.Value != "" {
		compiler.AddProp(el, "textContent", "_s("+dir.Value+")")
	}
	return false
}

func htmlDirective(el *compiler.Element, dir *compiler.Directive, _ compiler.WarnFunc) bool {
	if dir.Value != "" {
		compiler.AddProp(el, "innerHTML", "_s("+dir.Value+")")
	}
	return false
}
