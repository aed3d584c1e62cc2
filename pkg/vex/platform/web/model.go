package web

import (
	"fmt"

	"github.com/recera/vexc/pkg/vex/compiler"
)

// rangeEvent is the listener name the runtime maps to input or change
// depending on the browser.
const rangeEvent = "__r"

// modelModule expands <input v-model :type="t"> into one branch per input
// kind, because checkbox, radio and text inputs bind differently:
//
//	<input v-if="t === 'checkbox'" type="checkbox">
//	<input v-else-if="t === 'radio'" type="radio">
//	<input v-else :type="t">
type modelModule struct{}

func (modelModule) PreTransformNode(el *compiler.Element, ctx *compiler.ParseContext) *compiler.Element {
	if el.Tag != "input" {
		return nil
	}
	m := el.AttrsMap
	if _, ok := m["v-model"]; !ok {
		return nil
	}

	var typeBinding string
	if m[":type"] != "" || m["v-bind:type"] != "" {
		typeBinding = ctx.GetBindingAttr(el, "type", true)
	}
	if _, static := m["type"]; !static && typeBinding == "" && m["v-bind"] != "" {
		typeBinding = "(" + m["v-bind"] + ").type"
	}
	if typeBinding == "" {
		return nil
	}

	ifCondition, _ := compiler.GetAndRemoveAttr(el, "v-if", true)
	ifExtra := ""
	if ifCondition != "" {
		ifExtra = "&&(" + ifCondition + ")"
	}
	_, hasElse := compiler.GetAndRemoveAttr(el, "v-else", true)
	elseIfCondition, _ := compiler.GetAndRemoveAttr(el, "v-else-if", true)

	// 1. checkbox
	branch0 := compiler.CloneElement(el)
	ctx.ProcessFor(branch0)
	compiler.AddRawAttr(branch0, "type", "checkbox")
	branch0 = ctx.ProcessElement(branch0)
	branch0.Processed = true
	branch0.If = "(" + typeBinding + ")==='checkbox'" + ifExtra
	compiler.AddIfCondition(branch0, compiler.IfCondition{Exp: branch0.If, Block: branch0})

	// 2. radio
	branch1 := compiler.CloneElement(el)
	compiler.GetAndRemoveAttr(branch1, "v-for", true)
	compiler.AddRawAttr(branch1, "type", "radio")
	branch1 = ctx.ProcessElement(branch1)
	compiler.AddIfCondition(branch0, compiler.IfCondition{
		Exp:   "(" + typeBinding + ")==='radio'" + ifExtra,
		Block: branch1,
	})

	// 3. other
	branch2 := compiler.CloneElement(el)
	compiler.GetAndRemoveAttr(branch2, "v-for", true)
	compiler.AddRawAttr(branch2, ":type", typeBinding)
	branch2 = ctx.ProcessElement(branch2)
	compiler.AddIfCondition(branch0, compiler.IfCondition{Exp: ifCondition, Block: branch2})

	if hasElse {
		branch0.Else = true
	} else if elseIfCondition != "" {
		branch0.ElseIf = elseIfCondition
	}
	return branch0
}

// modelDirective compiles v-model on form elements and components.
func modelDirective(el *compiler.Element, dir *compiler.Directive, warn compiler.WarnFunc) bool {
	value, modifiers := dir.Value, dir.Modifiers
	tag, typ := el.Tag, el.AttrsMap["type"]

	if tag == "input" && typ == "file" {
		warn(fmt.Sprintf("<%s v-model=\"%s\" type=\"file\">:\n"+
			"File inputs are read only. Use a v-on:change listener instead.", tag, value), false)
	}

	switch {
	case el.Component != "":
		compiler.GenComponentModel(el, value, modifiers)
		// component v-model doesn't need extra runtime
		return false
	case tag == "select":
		genSelect(el, value, modifiers, warn)
	case tag == "input" && typ == "checkbox":
		genCheckboxModel(el, value, modifiers, warn)
	case tag == "input" && typ == "radio":
		genRadioModel(el, value, modifiers, warn)
	case tag == "input" || tag == "textarea":
		genDefaultModel(el, value, modifiers, warn)
	case !IsReservedTag(tag):
		compiler.GenComponentModel(el, value, modifiers)
		return false
	default:
		warn(fmt.Sprintf("<%s v-model=\"%s\">: v-model is not supported on this element type. "+
			"If you are working with contenteditable, it's recommended to wrap a library "+
			"dedicated for that purpose inside a custom component.", tag, value), false)
	}
	// ensure runtime directive metadata
	return true
}

func bindingOr(el *compiler.Element, name, fallback string) string {
	if b := compiler.GetBindingAttr(el, name, true, nil); b != "" {
		return b
	}
	return fallback
}

func genCheckboxModel(el *compiler.Element, value string, modifiers compiler.Modifiers, warn compiler.WarnFunc) {
	valueBinding := bindingOr(el, "value", "null")
	trueValue := bindingOr(el, "true-value", "true")
	falseValue := bindingOr(el, "false-value", "false")

	checked := "Array.isArray(" + value + ")?_i(" + value + "," + valueBinding + ")>-1"
	if trueValue == "true" {
		checked += ":(" + value + ")"
	} else {
		checked += ":_q(" + value + "," + trueValue + ")"
	}
	compiler.AddProp(el, "checked", checked)

	item := valueBinding
	if modifiers.Has("number") {
		item = "_n(" + valueBinding + ")"
	}
	compiler.AddHandler(el, "change",
		"var $$a="+value+","+
			"$$el=$event.target,"+
			"$$c=$$el.checked?("+trueValue+"):("+falseValue+");"+
			"if(Array.isArray($$a)){"+
			"var $$v="+item+","+
			"$$i=_i($$a,$$v);"+
			"if($$el.checked){$$i<0&&("+compiler.GenAssignmentCode(value, "$$a.concat([$$v])")+")}"+
			"else{$$i>-1&&("+compiler.GenAssignmentCode(value, "$$a.slice(0,$$i).concat($$a.slice($$i+1))")+")}"+
			"}else{"+compiler.GenAssignmentCode(value, "$$c")+"}",
		nil, true, warn)
}

func genRadioModel(el *compiler.Element, value string, modifiers compiler.Modifiers, warn compiler.WarnFunc) {
	valueBinding := bindingOr(el, "value", "null")
	if modifiers.Has("number") {
		valueBinding = "_n(" + valueBinding + ")"
	}
	compiler.AddProp(el, "checked", "_q("+value+","+valueBinding+")")
	compiler.AddHandler(el, "change", compiler.GenAssignmentCode(value, valueBinding), nil, true, warn)
}

func genSelect(el *compiler.Element, value string, modifiers compiler.Modifiers, warn compiler.WarnFunc) {
	val := "val"
	if modifiers.Has("number") {
		val = "_n(val)"
	}
	selectedVal := "Array.prototype.filter" +
		".call($event.target.options,function(o){return o.selected})" +
		`.map(function(o){var val = "_value" in o ? o._value : o.value;` +
		"return " + val + "})"
	code := "var $$selectedVal = " + selectedVal + "; " +
		compiler.GenAssignmentCode(value, "$event.target.multiple ? $$selectedVal : $$selectedVal[0]")
	compiler.AddHandler(el, "change", code, nil, true, warn)
}

func genDefaultModel(el *compiler.Element, value string, modifiers compiler.Modifiers, warn compiler.WarnFunc) {
	typ := el.AttrsMap["type"]

	// v-bind:value would be overwritten by the value binding v-model expands to
	boundValue, binding := el.AttrsMap["v-bind:value"], "v-bind:value"
	if boundValue == "" {
		boundValue, binding = el.AttrsMap[":value"], ":value"
	}
	typeBinding := el.AttrsMap["v-bind:type"] + el.AttrsMap[":type"]
	if boundValue != "" && typeBinding == "" {
		warn(fmt.Sprintf(`%s="%s" conflicts with v-model on the same element `+
			`because the latter already expands to a value binding internally`, binding, boundValue), false)
	}

	lazy, number, trim := modifiers.Has("lazy"), modifiers.Has("number"), modifiers.Has("trim")
	needCompositionGuard := !lazy && typ != "range"
	event := "input"
	if lazy {
		event = "change"
	} else if typ == "range" {
		event = rangeEvent
	}

	valueExp := "$event.target.value"
	if trim {
		valueExp = "$event.target.value.trim()"
	}
	if number {
		valueExp = "_n(" + valueExp + ")"
	}
	code := compiler.GenAssignmentCode(value, valueExp)
	if needCompositionGuard {
		code = "if($event.target.composing)return;" + code
	}

	compiler.AddProp(el, "value", "("+value+")")
	compiler.AddHandler(el, event, code, nil, true, warn)
	if trim || number {
		compiler.AddHandler(el, "blur", "$forceUpdate()", nil, false, warn)
	}
}
