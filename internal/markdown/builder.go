package markdown

import (
	"html"
	"regexp"
	"strings"

	"latexannotate/internal/dummy"
	"latexannotate/internal/settings"
	"latexannotate/internal/sink"
)

var yamlFrontMatterPattern = regexp.MustCompile(`(?ms)\A---\s*?$.*?^---\s*?$`)

// Builder walks a Markdown AST and produces an AnnotatedText with the
// same newline-folding and dummy-substitution conventions as the LaTeX
// builder. Create with NewBuilder; it may be reused once a previous
// AddCode call has returned.
type Builder struct {
	language       string
	nodeSignatures []NodeSignature

	code          string
	pos           int
	dummyCounter  int
	nodeTypeStack []string
	sink          *sink.AnnotatedText
}

// NewBuilder returns a Builder with the default node catalogue and
// American English dummy agreement.
func NewBuilder() *Builder {
	return &Builder{
		language:       "en-US",
		nodeSignatures: DefaultNodeSignatures(),
	}
}

// SetSettings applies a host-supplied configuration, merging its node
// overrides into the default catalogue.
func (b *Builder) SetSettings(s *settings.Settings) {
	if s == nil {
		return
	}
	b.language = s.LanguageShortCode

	for name, action := range s.MarkdownNodes {
		var act Action
		var gen *dummy.Generator

		switch settings.Action(action) {
		case settings.ActionDefault:
			act = ActionDefault
		case settings.ActionIgnore:
			act = ActionIgnore
		case settings.ActionDummy:
			act = ActionDummy
			gen = dummy.Default()
		case settings.ActionPluralDummy:
			act = ActionDummy
			gen = dummy.DefaultPlural()
		default:
			continue
		}

		b.nodeSignatures = append(b.nodeSignatures, NodeSignature{Name: name, Action: act, DummyGenerator: gen})
	}
}

// AddCode walks root over src and returns the resulting AnnotatedText.
// A leading YAML front-matter block ("---" ... "---") is stripped and
// added as markup before the walk begins, each of its line breaks
// contributing a "\n" to the plain text; root's
// offsets must be relative to src with that block removed, since that
// is the substring a host is expected to have fed its parser.
func (b *Builder) AddCode(src string, root Node) (*sink.AnnotatedText, error) {
	b.sink = sink.New()
	b.pos = 0
	b.dummyCounter = 0
	b.nodeTypeStack = b.nodeTypeStack[:0]

	remainder := src
	if loc := yamlFrontMatterPattern.FindStringIndex(src); loc != nil && loc[0] == 0 {
		b.code = src
		b.addMarkupUpTo(loc[1])
		remainder = src[loc[1]:]
	}

	// Node offsets are relative to remainder: whatever the host parsed
	// after any front matter has already been stripped from its input.
	b.code = remainder
	b.pos = 0

	if root != nil {
		b.visitChildren(root)
	}
	if b.pos < len(b.code) {
		b.addMarkupUpTo(len(b.code))
	}

	return b.sink, nil
}

func (b *Builder) visitChildren(node Node) {
	for _, child := range node.Children() {
		b.visit(child)
	}
}

func (b *Builder) isInIgnoredNodeType() bool {
	result := false
	for _, nodeType := range b.nodeTypeStack {
		for _, sig := range b.nodeSignatures {
			if sig.Name == nodeType {
				result = sig.Action == ActionIgnore
			}
		}
	}
	return result
}

// isDummyNodeType reports whether nodeType's latest registered
// signature says dummy. Note this only decides WHETHER to substitute a
// dummy, not which DummyGenerator to use: substitution always uses the
// default (singular) generator, mirroring the original Markdown
// builder's zero-argument generateDummy — unlike the LaTeX builder, a
// per-signature plural generator is not threaded through here.
func (b *Builder) isDummyNodeType(nodeType string) bool {
	result := false
	for _, sig := range b.nodeSignatures {
		if sig.Name == nodeType {
			result = sig.Action == ActionDummy
		}
	}
	return result
}

func (b *Builder) isInNodeType(nodeType string) bool {
	for _, t := range b.nodeTypeStack {
		if t == nodeType {
			return true
		}
	}
	return false
}

func (b *Builder) visit(node Node) {
	nodeType := node.Kind()

	switch {
	case b.isInIgnoredNodeType():
		b.addMarkupUpTo(node.EndOffset())

	case b.isDummyNodeType(nodeType):
		b.addMarkupNode(node, b.generateDummy())

	case nodeType == "Text":
		b.addMarkupUpTo(node.StartOffset())
		b.addTextUpTo(node.EndOffset())

	case nodeType == "HtmlEntity":
		b.addMarkupNode(node, html.UnescapeString(b.code[node.StartOffset():node.EndOffset()]))

	default:
		if nodeType == "Paragraph" {
			b.addMarkupUpTo(node.StartOffset())
		}
		b.nodeTypeStack = append(b.nodeTypeStack, nodeType)
		b.visitChildren(node)
		b.nodeTypeStack = b.nodeTypeStack[:len(b.nodeTypeStack)-1]
	}
}

// addMarkupUpTo emits everything between the current position and
// newPos as markup, folding every line break it crosses into a single
// space (inside a paragraph) or newline (elsewhere) the way Markdown
// itself folds soft line breaks in prose but preserves block structure.
func (b *Builder) addMarkupUpTo(newPos int) {
	inParagraph := b.isInNodeType("Paragraph")

	for b.pos < len(b.code) && b.pos < newPos {
		curPos := -1
		if rel := strings.IndexByte(b.code[b.pos:], '\r'); rel != -1 {
			curPos = rel + b.pos
		}

		if curPos == -1 || curPos >= newPos {
			nl := strings.IndexByte(b.code[b.pos:], '\n')
			if nl == -1 {
				curPos = -1
			} else {
				curPos = nl + b.pos
			}
			if curPos == -1 || curPos >= newPos {
				break
			}
		}

		if curPos > b.pos {
			b.sink.AddMarkup(b.code[b.pos:curPos])
		}
		fold := "\n"
		if inParagraph {
			fold = " "
		}
		b.sink.AddMarkupInterpretAs(b.code[curPos:curPos+1], fold)
		b.pos = curPos + 1
	}

	if newPos > b.pos {
		b.sink.AddMarkup(b.code[b.pos:newPos])
		b.pos = newPos
	}
}

func (b *Builder) addMarkupNode(node Node, interpretAs string) {
	b.addMarkupUpTo(node.StartOffset())
	newPos := node.EndOffset()
	if interpretAs == "" {
		b.sink.AddMarkup(b.code[b.pos:newPos])
	} else {
		b.sink.AddMarkupInterpretAs(b.code[b.pos:newPos], interpretAs)
	}
	b.pos = newPos
}

func (b *Builder) addTextUpTo(newPos int) {
	if newPos > b.pos {
		b.sink.AddText(b.code[b.pos:newPos])
		b.pos = newPos
	}
}

func (b *Builder) generateDummy() string {
	word := dummy.Default().Generate(b.language, b.dummyCounter, false)
	b.dummyCounter++
	return word
}
