// Package markdown implements the Markdown annotated-text builder: a
// thin walk over an already-parsed Markdown AST that reproduces the
// same text/markup split and dummy-substitution behavior as the LaTeX
// builder, adapted to a tree instead of a character stream. Producing
// the AST itself (choosing and running a CommonMark parser) is a host
// concern; this package only walks one.
package markdown

import "latexannotate/internal/dummy"

// Node is the minimal AST contract the walker needs. A host wires its
// parser's tree into this interface; StartOffset/EndOffset are byte
// offsets into the source string passed to Builder.AddCode with any
// leading YAML front matter removed, using the same half-open
// [start, end) convention throughout this package.
type Node interface {
	Kind() string
	StartOffset() int
	EndOffset() int
	Children() []Node
}

// Action is what the walker does with every node of a given kind.
type Action string

const (
	ActionDefault     Action = "default"
	ActionIgnore      Action = "ignore"
	ActionDummy       Action = "dummy"
	ActionPluralDummy Action = "pluralDummy"
)

// NodeSignature attaches an action to a node kind, e.g. "CodeBlock" ->
// ignore, "Heading" -> default.
type NodeSignature struct {
	Name           string
	Action         Action
	DummyGenerator *dummy.Generator
}

// DefaultNodeSignatures is the built-in catalogue: fenced/indented code
// and raw HTML blocks are ignored outright since their contents are not
// prose; images and autolinks collapse to a single dummy noun.
func DefaultNodeSignatures() []NodeSignature {
	return []NodeSignature{
		{Name: "CodeBlock", Action: ActionIgnore},
		{Name: "FencedCodeBlock", Action: ActionIgnore},
		{Name: "IndentedCodeBlock", Action: ActionIgnore},
		{Name: "Code", Action: ActionIgnore},
		{Name: "HtmlBlock", Action: ActionIgnore},
		{Name: "HtmlInline", Action: ActionIgnore},
		{Name: "HtmlCommentBlock", Action: ActionIgnore},
		{Name: "Image", Action: ActionDummy, DummyGenerator: dummy.Default()},
		{Name: "AutoLink", Action: ActionDummy, DummyGenerator: dummy.Default()},
		{Name: "Reference", Action: ActionIgnore},
	}
}
