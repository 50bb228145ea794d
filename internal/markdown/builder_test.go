package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureNode is a hand-built Node used only by tests, standing in for
// a real CommonMark parser's tree so the walker can be exercised
// without taking on a parser dependency.
type fixtureNode struct {
	kind     string
	start    int
	end      int
	children []Node
}

func (n *fixtureNode) Kind() string     { return n.kind }
func (n *fixtureNode) StartOffset() int { return n.start }
func (n *fixtureNode) EndOffset() int   { return n.end }
func (n *fixtureNode) Children() []Node { return n.children }

func text(start, end int) *fixtureNode {
	return &fixtureNode{kind: "Text", start: start, end: end}
}

func TestAddCodeWalksParagraphText(t *testing.T) {
	src := "Hello world."
	root := &fixtureNode{kind: "Document", start: 0, end: len(src), children: []Node{
		&fixtureNode{kind: "Paragraph", start: 0, end: len(src), children: []Node{
			text(0, len(src)),
		}},
	}}

	b := NewBuilder()
	out, err := b.AddCode(src, root)
	require.NoError(t, err)
	assert.Equal(t, "Hello world.", out.PlainText())
}

func TestAddCodeFoldsSoftLineBreakInsideParagraphToSpace(t *testing.T) {
	src := "Hello\nworld."
	root := &fixtureNode{kind: "Document", start: 0, end: len(src), children: []Node{
		&fixtureNode{kind: "Paragraph", start: 0, end: len(src), children: []Node{
			text(0, 5),
			text(6, len(src)),
		}},
	}}

	b := NewBuilder()
	out, err := b.AddCode(src, root)
	require.NoError(t, err)
	assert.Equal(t, "Hello world.", out.PlainText())
}

func TestAddCodeIgnoredNodeTypeDiscardsContents(t *testing.T) {
	// FencedCodeBlock carries a Text child the way a real parser would;
	// without the ignore propagation that child would surface as plain
	// text even though its parent is marked ignore.
	src := "Before\n```\ncode\n```\nafter"
	codeStart, codeEnd := 11, 15
	root := &fixtureNode{kind: "Document", start: 0, end: len(src), children: []Node{
		&fixtureNode{kind: "Paragraph", start: 0, end: 6, children: []Node{text(0, 6)}},
		&fixtureNode{kind: "FencedCodeBlock", start: 7, end: 19, children: []Node{
			text(codeStart, codeEnd),
		}},
		&fixtureNode{kind: "Paragraph", start: 20, end: len(src), children: []Node{text(20, len(src))}},
	}}

	b := NewBuilder()
	out, err := b.AddCode(src, root)
	require.NoError(t, err)
	assert.NotContains(t, out.PlainText(), "code")
	assert.Contains(t, out.PlainText(), "Before")
	assert.Contains(t, out.PlainText(), "after")
}

func TestAddCodeDummyNodeTypeCollapsesToSingleToken(t *testing.T) {
	src := "See ![alt](pic.png) here."
	root := &fixtureNode{kind: "Document", start: 0, end: len(src), children: []Node{
		&fixtureNode{kind: "Paragraph", start: 0, end: len(src), children: []Node{
			text(0, 4),
			&fixtureNode{kind: "Image", start: 4, end: 19},
			text(19, len(src)),
		}},
	}}

	b := NewBuilder()
	out, err := b.AddCode(src, root)
	require.NoError(t, err)
	assert.NotContains(t, out.PlainText(), "pic.png")
	assert.Contains(t, out.PlainText(), "See")
	assert.Contains(t, out.PlainText(), "here")
}

func TestAddCodeStripsLeadingYamlFrontMatter(t *testing.T) {
	src := "---\ntitle: X\n---\nBody text."
	loc := yamlFrontMatterPattern.FindStringIndex(src)
	require.NotNil(t, loc)
	rest := src[loc[1]:]
	bodyStart := strings.Index(rest, "Body")
	require.GreaterOrEqual(t, bodyStart, 0)

	root := &fixtureNode{kind: "Document", start: 0, end: len(rest), children: []Node{
		&fixtureNode{kind: "Paragraph", start: bodyStart, end: len(rest), children: []Node{
			text(bodyStart, len(rest)),
		}},
	}}

	b := NewBuilder()
	out, err := b.AddCode(src, root)
	require.NoError(t, err)
	assert.NotContains(t, out.PlainText(), "title")
	assert.Contains(t, out.PlainText(), "Body text.")
}

func TestAddCodeHtmlEntityIsUnescaped(t *testing.T) {
	src := "cats &amp; dogs"
	root := &fixtureNode{kind: "Document", start: 0, end: len(src), children: []Node{
		&fixtureNode{kind: "Paragraph", start: 0, end: len(src), children: []Node{
			text(0, 5),
			&fixtureNode{kind: "HtmlEntity", start: 5, end: 10},
			text(10, len(src)),
		}},
	}}

	b := NewBuilder()
	out, err := b.AddCode(src, root)
	require.NoError(t, err)
	assert.Contains(t, out.PlainText(), "cats & dogs")
}
