package compiler

// WarnFunc receives diagnostics. tip marks advisory messages.
type WarnFunc func(msg string, tip bool)

// DirectiveFunc compiles a directive at build time. It reports whether the
// directive still needs a runtime descriptor.
type DirectiveFunc func(el *Element, dir *Directive, warn WarnFunc) bool

// Module is a platform extension. A module takes part in a compile phase by
// implementing one or more of the hook interfaces below.
type Module interface{}

// PreTransformer runs before structural directives are processed. It may
// return a replacement element, or nil to keep el.
type PreTransformer interface {
	PreTransformNode(el *Element, ctx *ParseContext) *Element
}

// Transformer runs after key/ref/slot/component extraction and before
// attribute classification. It may return a replacement element, or nil.
type Transformer interface {
	TransformNode(el *Element, ctx *ParseContext) *Element
}

// PostTransformer runs when an element is closed.
type PostTransformer interface {
	PostTransformNode(el *Element, ctx *ParseContext)
}

// DataGenerator contributes fields to an element's data object. The returned
// text is a sequence of `key:value,` entries.
type DataGenerator interface {
	GenData(el *Element) string
}

// CodeTransformer may wrap or rewrite the generated construction call.
type CodeTransformer interface {
	TransformCode(el *Element, code string) string
}

// StaticKeyer lists module-owned element fields that do not prevent static
// hoisting (for example "staticClass").
type StaticKeyer interface {
	StaticKeys() []string
}

// Options configures parsing and code generation.
type Options struct {
	// Delimiters replaces the default {{ }} interpolation delimiters when set.
	Delimiters [2]string

	// TrimWhitespace drops whitespace-only text between elements instead of
	// condensing it to a single space.
	TrimWhitespace bool

	// Comments keeps markup comments in the AST.
	Comments bool

	// ExpectHTML enables HTML auto-closing rules in the tokenizer.
	ExpectHTML bool

	ShouldDecodeNewlines        bool
	ShouldDecodeNewlinesForHref bool

	IsReservedTag    func(tag string) bool
	MustUseProp      func(tag, typ, attr string) bool
	GetTagNamespace  func(tag string) string
	IsUnaryTag       func(tag string) bool
	IsPreTag         func(tag string) bool
	CanBeLeftOpenTag func(tag string) bool

	Modules    []Module
	Directives map[string]DirectiveFunc

	// FilterParser resolves pipe syntax in expressions. Defaults to ParseFilters.
	FilterParser func(exp string) string

	// Warn receives diagnostics. May be nil.
	Warn WarnFunc

	// Production suppresses all diagnostics. Output is unaffected.
	Production bool

	// MaxDepth bounds element nesting during code generation. Zero means 512.
	MaxDepth int
}

const defaultMaxDepth = 512

func (o *Options) warnFunc() WarnFunc {
	if o == nil || o.Production || o.Warn == nil {
		return func(string, bool) {}
	}
	return o.Warn
}

func (o *Options) delimiters() *[2]string {
	if o == nil || o.Delimiters[0] == "" || o.Delimiters[1] == "" {
		return nil
	}
	return &o.Delimiters
}

func (o *Options) filterParser() func(string) string {
	if o == nil || o.FilterParser == nil {
		return ParseFilters
	}
	return o.FilterParser
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return o.MaxDepth
}

func no(string) bool { return false }

func orNo(f func(string) bool) func(string) bool {
	if f == nil {
		return no
	}
	return f
}

func (o *Options) isReservedTag() func(string) bool {
	if o == nil {
		return no
	}
	return orNo(o.IsReservedTag)
}

func (o *Options) mustUseProp() func(tag, typ, attr string) bool {
	if o == nil || o.MustUseProp == nil {
		return func(string, string, string) bool { return false }
	}
	return o.MustUseProp
}

func (o *Options) getTagNamespace() func(string) string {
	if o == nil || o.GetTagNamespace == nil {
		return func(string) string { return "" }
	}
	return o.GetTagNamespace
}

func (o *Options) modules() []Module {
	if o == nil {
		return nil
	}
	return o.Modules
}
