package sink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestAddTextPassesThroughVerbatim(t *testing.T) {
	a := New()
	a.AddText("This is a test.")

	assert.Equal(t, "This is a test.", a.PlainText())
	assert.Len(t, a.Segments(), 1)
	assert.Equal(t, Text, a.Segments()[0].Kind)
}

func TestAddMarkupContributesNothing(t *testing.T) {
	a := New()
	a.AddText("a")
	a.AddMarkup("\\foo")
	a.AddText("b")

	assert.Equal(t, "ab", a.PlainText())
	assert.Equal(t, 6, a.SourceLen())
}

func TestAddMarkupInterpretAsSubstitutes(t *testing.T) {
	a := New()
	a.AddMarkupInterpretAs("``", "“")

	assert.Equal(t, "“", a.PlainText())
	assert.Equal(t, 1, len(a.Segments()))
}

func TestSourceConservation(t *testing.T) {
	src := "Let $x$ be real."
	a := New()
	a.AddText("Let ")
	a.AddMarkup("$")
	a.AddMarkupInterpretAs("x", "Dummy0")
	a.AddMarkup("$")
	a.AddText(" be real.")

	total := 0
	for _, seg := range a.Segments() {
		total += seg.SourceLen()
	}
	assert.Equal(t, len(src), total)
}

func TestOffsetMappingRoundTripsInsideTextSegments(t *testing.T) {
	a := New()
	a.AddMarkup("\\section{")
	a.AddText("Hello")
	a.AddMarkup("}")

	for i := 0; i < len("Hello"); i++ {
		src := a.PlainTextOffsetToSourceOffset(i)
		assert.Equal(t, len("\\section{")+i, src)
		assert.Equal(t, i, a.SourceOffsetToPlainTextOffset(src))
	}
}

func TestOffsetMappingForMarkupCollapsesToSegmentStart(t *testing.T) {
	a := New()
	a.AddText("a")
	a.AddMarkupInterpretAs("\\foo{bar}", " ")
	a.AddText("b")

	// any plaintext offset past "a" but before "b" lies in the markup's
	// interpretAs, which has no markup-interior meaning; it must resolve
	// to the markup segment's source start.
	assert.Equal(t, 1, a.PlainTextOffsetToSourceOffset(1))
}

func TestPlainTextOffsetAtEndReturnsSourceLen(t *testing.T) {
	a := New()
	a.AddText("abc")
	assert.Equal(t, 3, a.PlainTextOffsetToSourceOffset(3))
}

func TestSegmentsMatchExpectedSequenceExactly(t *testing.T) {
	a := New()
	a.AddText("Let ")
	a.AddMarkup("$")
	a.AddMarkupInterpretAs("x", "Dummy0")
	a.AddMarkup("$")
	a.AddText(" be real.")

	want := []Segment{
		{Kind: Text, SourceStart: 0, SourceEnd: 4, PlainText: "Let "},
		{Kind: Markup, SourceStart: 4, SourceEnd: 5, PlainText: ""},
		{Kind: Markup, SourceStart: 5, SourceEnd: 6, PlainText: "Dummy0"},
		{Kind: Markup, SourceStart: 6, SourceEnd: 7, PlainText: ""},
		{Kind: Text, SourceStart: 7, SourceEnd: 16, PlainText: " be real."},
	}

	if diff := cmp.Diff(want, a.Segments()); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}
