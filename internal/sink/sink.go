// Package sink implements the annotated-text accumulator that LaTeX and
// Markdown builders write into: a stream of text/markup segments plus a
// byte-offset map between the original source and the plaintext handed
// to the grammar checker.
package sink

import "sort"

// Kind distinguishes a Text segment (source bytes that appear verbatim
// in the plaintext) from a Markup segment (source bytes contributing
// nothing, or a short synthetic replacement).
type Kind int

const (
	Text Kind = iota
	Markup
)

func (k Kind) String() string {
	if k == Text {
		return "Text"
	}
	return "Markup"
}

// Segment is one emitted unit: a source byte range and its plaintext
// contribution (empty for pure markup).
type Segment struct {
	Kind        Kind
	SourceStart int
	SourceEnd   int
	PlainText   string
}

func (s Segment) SourceLen() int { return s.SourceEnd - s.SourceStart }

// AnnotatedText accumulates segments in strictly increasing source-offset
// order and exposes the resulting plaintext together with an offset map
// in both directions. It is not safe for concurrent use; a builder owns
// exactly one AnnotatedText per addCode/AddCode run.
type AnnotatedText struct {
	segments  []Segment
	plaintext []byte
	sourcePos int
}

// New returns an empty sink.
func New() *AnnotatedText {
	return &AnnotatedText{}
}

// AddText records len(s) source bytes that pass through verbatim as
// plaintext s. A no-op for an empty string.
func (a *AnnotatedText) AddText(s string) {
	if s == "" {
		return
	}
	a.append(Text, s, s)
}

// AddMarkup records len(raw) source bytes that contribute nothing to the
// plaintext. A no-op for an empty string.
func (a *AnnotatedText) AddMarkup(raw string) {
	if raw == "" {
		return
	}
	a.append(Markup, raw, "")
}

// AddMarkupInterpretAs records len(raw) source bytes whose plaintext
// contribution is interpretAs instead of raw verbatim. Falls back to
// AddMarkup when interpretAs is empty, matching the Java builder's
// addMarkup(markup, interpretAs) overload.
func (a *AnnotatedText) AddMarkupInterpretAs(raw, interpretAs string) {
	if interpretAs == "" {
		a.AddMarkup(raw)
		return
	}
	if raw == "" {
		return
	}
	a.append(Markup, raw, interpretAs)
}

func (a *AnnotatedText) append(kind Kind, raw, plainText string) {
	seg := Segment{
		Kind:        kind,
		SourceStart: a.sourcePos,
		SourceEnd:   a.sourcePos + len(raw),
		PlainText:   plainText,
	}
	a.segments = append(a.segments, seg)
	a.plaintext = append(a.plaintext, plainText...)
	a.sourcePos += len(raw)
}

// Segments returns the emitted segments in emission order.
func (a *AnnotatedText) Segments() []Segment {
	return a.segments
}

// PlainText returns the accumulated plaintext the checker operates on.
func (a *AnnotatedText) PlainText() string {
	return string(a.plaintext)
}

// SourceLen returns the number of source bytes consumed so far.
func (a *AnnotatedText) SourceLen() int {
	return a.sourcePos
}

// plainTextStart returns the plaintext offset at which segment i begins.
func (a *AnnotatedText) plainTextStart(i int) int {
	start := 0
	for j := 0; j < i; j++ {
		start += len(a.segments[j].PlainText)
	}
	return start
}

// PlainTextOffsetToSourceOffset maps a plaintext byte offset back to the
// source byte offset it originated from. Offsets inside a Text segment
// map 1:1; offsets inside the interpretAs of a Markup segment all map to
// that segment's source start, since a synthetic replacement has no
// finer-grained correspondence to source bytes.
func (a *AnnotatedText) PlainTextOffsetToSourceOffset(ptOffset int) int {
	if len(a.segments) == 0 {
		return 0
	}

	// binary search the segment whose plaintext range contains ptOffset
	ptStarts := make([]int, len(a.segments))
	cum := 0
	for i, seg := range a.segments {
		ptStarts[i] = cum
		cum += len(seg.PlainText)
	}

	if ptOffset >= cum {
		return a.sourcePos
	}

	idx := sort.Search(len(ptStarts), func(i int) bool {
		next := cum
		if i+1 < len(ptStarts) {
			next = ptStarts[i+1]
		}
		return ptOffset < next
	})
	if idx >= len(a.segments) {
		return a.sourcePos
	}

	seg := a.segments[idx]
	within := ptOffset - ptStarts[idx]
	if seg.Kind == Text && within < seg.SourceLen() {
		return seg.SourceStart + within
	}
	return seg.SourceStart
}

// SourceOffsetToPlainTextOffset maps a source byte offset to the
// plaintext offset it contributes to. Offsets inside a Text segment map
// 1:1; offsets inside a Markup segment all map to the plaintext offset
// immediately preceding that segment's (possibly empty) interpretAs.
func (a *AnnotatedText) SourceOffsetToPlainTextOffset(srcOffset int) int {
	if len(a.segments) == 0 {
		return 0
	}
	if srcOffset >= a.sourcePos {
		return len(a.plaintext)
	}

	idx := sort.Search(len(a.segments), func(i int) bool {
		return srcOffset < a.segments[i].SourceEnd
	})
	if idx >= len(a.segments) {
		return len(a.plaintext)
	}

	seg := a.segments[idx]
	ptStart := a.plainTextStart(idx)
	if seg.Kind == Text {
		return ptStart + (srcOffset - seg.SourceStart)
	}
	return ptStart
}
