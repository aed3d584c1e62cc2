package compiler

import (
	"strings"
)

// AST node types for VEX templates

// NodeType identifies the kind of an AST node.
type NodeType int

const (
	// NodeElement is an *Element
	NodeElement NodeType = iota + 1
	// NodeExpression is a *Text carrying an interpolation
	NodeExpression
	// NodeText is a literal *Text or a *Comment
	NodeText
)

// Node is the interface for all AST nodes
type Node interface {
	Type() NodeType
}

// Attr is a name/value pair. For raw attributes Value is the source text; for
// Element.Attrs and Element.Props it is program text.
type Attr struct {
	Name  string
	Value string
	Start int
	End   int
}

// IfCondition is one branch of a conditional group. The branch without Exp
// is the default and is always last.
type IfCondition struct {
	Exp   string
	Block *Element
}

// ForResult is a parsed v-for expression.
type ForResult struct {
	For       string
	Alias     string
	Iterator1 string
	Iterator2 string
}

// Directive is a custom directive occurrence on an element.
type Directive struct {
	Name      string
	RawName   string
	Value     string
	Arg       string
	Modifiers Modifiers
}

// Handler is one event listener registration.
type Handler struct {
	Value     string
	Modifiers Modifiers
}

// ComponentModel is the two-way binding descriptor of a component v-model.
type ComponentModel struct {
	Value      string
	Callback   string
	Expression string
}

// ScopedSlot is a scoped slot registered on its parent element.
type ScopedSlot struct {
	Name    string
	Element *Element
}

// Element represents a markup element
type Element struct {
	Tag       string
	AttrsList []Attr
	AttrsMap  map[string]string
	Parent    *Element
	Children  []Node
	Start     int
	End       int

	Namespace   string
	Forbidden   bool
	Processed   bool
	Plain       bool
	Pre         bool
	HasBindings bool

	For       string
	Alias     string
	Iterator1 string
	Iterator2 string

	If           string
	ElseIf       string
	Else         bool
	IfConditions []IfCondition

	Once bool

	Key      string
	Ref      string
	RefInFor bool

	SlotName    string
	SlotTarget  string
	SlotScope   string
	ScopedSlots []ScopedSlot

	Component      string
	InlineTemplate bool

	Attrs        []Attr
	Props        []Attr
	Directives   []*Directive
	Events       Handlers
	NativeEvents Handlers
	Model        *ComponentModel

	// WrapData and WrapListeners post-process the generated data object.
	WrapData      func(code string) string
	WrapListeners func(code string) string

	// platform module state
	StaticClass  string
	ClassBinding string
	StaticStyle  string
	StyleBinding string

	// set by the optimizer
	Static      bool
	StaticRoot  bool
	StaticInFor bool

	resolved resolution
}

// Type implements Node.
func (*Element) Type() NodeType { return NodeElement }

// Text is a text node. Expression and Tokens are set for interpolated text.
type Text struct {
	Text       string
	Expression string
	Tokens     []Token
	Static     bool
	Start      int
	End        int
}

// Type implements Node.
func (t *Text) Type() NodeType {
	if t.Expression != "" {
		return NodeExpression
	}
	return NodeText
}

// Comment is a preserved markup comment.
type Comment struct {
	Text   string
	Static bool
	Start  int
	End    int
}

// Type implements Node.
func (*Comment) Type() NodeType { return NodeText }

// NewElement creates an element with its attribute map built from attrs.
// Duplicate attribute names are reported through warn.
func NewElement(tag string, attrs []Attr, parent *Element, warn func(string)) *Element {
	return &Element{
		Tag:       tag,
		AttrsList: attrs,
		AttrsMap:  makeAttrsMap(attrs, warn),
		Parent:    parent,
	}
}

// CloneElement returns a fresh unprocessed copy of el's tag and raw attributes.
func CloneElement(el *Element) *Element {
	attrs := make([]Attr, len(el.AttrsList))
	copy(attrs, el.AttrsList)
	return NewElement(el.Tag, attrs, el.Parent, nil)
}

func makeAttrsMap(attrs []Attr, warn func(string)) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, dup := m[a.Name]; dup && warn != nil {
			warn("duplicate attribute: " + a.Name)
		}
		m[a.Name] = a.Value
	}
	return m
}

// HasAttr reports whether the raw attribute name was written on el, even if
// it has since been extracted.
func (el *Element) HasAttr(name string) bool {
	_, ok := el.AttrsMap[name]
	return ok
}

// setScopedSlot registers a scoped slot, replacing one of the same name in place.
func (el *Element) setScopedSlot(name string, slot *Element) {
	for i := range el.ScopedSlots {
		if el.ScopedSlots[i].Name == name {
			el.ScopedSlots[i].Element = slot
			return
		}
	}
	el.ScopedSlots = append(el.ScopedSlots, ScopedSlot{Name: name, Element: slot})
}

// resolution records which structural categories the code generator has
// already dispatched for a node. Bits are only ever set.
type resolution uint8

const (
	resolvedStatic resolution = 1 << iota
	resolvedOnce
	resolvedFor
	resolvedIf
)

func (el *Element) isResolved(r resolution) bool { return el.resolved&r != 0 }

func (el *Element) markResolved(r resolution) { el.resolved |= r }

// Modifiers is an insertion ordered set of modifier names. A nil set means
// no modifiers were written; an empty non-nil set means all were consumed.
type Modifiers []string

// Has reports whether name is in the set.
func (m Modifiers) Has(name string) bool {
	for _, n := range m {
		if n == name {
			return true
		}
	}
	return false
}

// Without returns a copy of m without name. The result is never nil.
func (m Modifiers) Without(name string) Modifiers {
	out := make(Modifiers, 0, len(m))
	for _, n := range m {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// JSON renders the set as a JSON object of true values.
func (m Modifiers) JSON() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(JSONString(n))
		b.WriteString(":true")
	}
	b.WriteByte('}')
	return b.String()
}

// Handlers maps event names to their ordered handler sequences, keeping the
// order in which event names were first registered.
type Handlers struct {
	names  []string
	byName map[string][]*Handler
}

// Len returns the number of distinct event names.
func (h *Handlers) Len() int { return len(h.names) }

// Names returns event names in registration order.
func (h *Handlers) Names() []string { return h.names }

// Get returns the handlers registered for name.
func (h *Handlers) Get(name string) []*Handler { return h.byName[name] }

func (h *Handlers) add(name string, handler *Handler, important bool) {
	if h.byName == nil {
		h.byName = make(map[string][]*Handler)
	}
	existing, ok := h.byName[name]
	if !ok {
		h.names = append(h.names, name)
	}
	if important {
		h.byName[name] = append([]*Handler{handler}, existing...)
		return
	}
	h.byName[name] = append(existing, handler)
}
