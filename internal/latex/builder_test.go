package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainTextOf(t *testing.T, src string) string {
	t.Helper()
	b := NewBuilder("latex")
	out, err := b.AddCode(src)
	require.NoError(t, err)
	return out.PlainText()
}

func TestAddCodePlainProseIsPassedThrough(t *testing.T) {
	assert.Equal(t, "Hello world.", plainTextOf(t, "Hello world."))
}

func TestAddCodeDefaultActionLetsContentFlowAsProse(t *testing.T) {
	got := plainTextOf(t, `\emph{important}`)
	assert.Contains(t, got, "important")
}

func TestAddCodeIgnoreActionDiscardsEntireSpan(t *testing.T) {
	got := plainTextOf(t, `Before \label{sec:intro} after.`)
	assert.NotContains(t, got, "sec:intro")
	assert.Contains(t, got, "Before")
	assert.Contains(t, got, "after")
}

func TestAddCodeDummyActionReplacesCitationWithSingleToken(t *testing.T) {
	out := plainTextOf(t, `See \cite{foo} for details.`)
	assert.NotContains(t, out, "foo")
	assert.Contains(t, out, "See")
	assert.Contains(t, out, "for details")
}

func TestAddCodeCommentIsDiscarded(t *testing.T) {
	got := plainTextOf(t, "Before % a comment\nafter")
	assert.NotContains(t, got, "a comment")
}

func TestAddCodeInlineMathBecomesDummyWord(t *testing.T) {
	out := plainTextOf(t, `The value $x+1$ is positive.`)
	assert.NotContains(t, out, "x+1")
	assert.Contains(t, out, "The value")
	assert.Contains(t, out, "is positive")
}

func TestAddCodeAccentComposesPrecomposedCharacter(t *testing.T) {
	assert.Contains(t, plainTextOf(t, `caf\'e`), "café")
}

func TestAddCodeEmDashAndEnDash(t *testing.T) {
	assert.Contains(t, plainTextOf(t, "one---two"), "one—two")
	assert.Contains(t, plainTextOf(t, "pages 3--5"), "pages 3–5")
}

func TestAddCodeNarrowSpaceCommandEmitsNarrowNoBreakSpace(t *testing.T) {
	out := plainTextOf(t, "10\\,km")
	assert.Equal(t, "10\u202fkm", out)
}

func TestAddCodeSmartQuotes(t *testing.T) {
	out := plainTextOf(t, "``quoted''")
	assert.Contains(t, out, "“quoted”")
}

func TestAddCodeHeadingGetsSentenceTerminator(t *testing.T) {
	out := plainTextOf(t, `\section{Introduction}\par Body text.`)
	assert.Contains(t, out, "Introduction.")
}

func TestAddCodeEuroAndEllipsisSymbols(t *testing.T) {
	assert.Contains(t, plainTextOf(t, `Cost: \euro 5 \dots`), "€")
	assert.Contains(t, plainTextOf(t, `Cost: \euro 5 \dots`), "...")
}

func TestAddCodeIgnoreEnvironmentDiscardsVerbatimBody(t *testing.T) {
	got := plainTextOf(t, "\\begin{verbatim}raw $code$ here\\end{verbatim} after")
	assert.NotContains(t, got, "raw")
	assert.Contains(t, got, "after")
}

func TestAddCodeVerbCommandYieldsDummyNotLiteralSource(t *testing.T) {
	out := plainTextOf(t, `Use \verb|foo_bar| here.`)
	assert.NotContains(t, out, "foo_bar")
	assert.Contains(t, out, "Use")
	assert.Contains(t, out, "here")
}

func TestAddCodeSourceConservationAcrossMixedInput(t *testing.T) {
	src := `Text \emph{bold} and $m+1$ and \cite{x}.`
	b := NewBuilder("latex")
	out, err := b.AddCode(src)
	require.NoError(t, err)

	total := 0
	for _, seg := range out.Segments() {
		total += seg.SourceLen()
	}
	assert.Equal(t, len(src), total)
	assert.Equal(t, len(src), out.SourceLen())
}

func TestAddCodeNonStrictModeNeverPanicsOnMalformedInput(t *testing.T) {
	b := NewBuilder("latex")
	assert.NotPanics(t, func() {
		_, err := b.AddCode("}}}{{{\\end{nosuchenv}")
		assert.NoError(t, err)
	})
}

func TestAddCodeReentrantCallIsRejected(t *testing.T) {
	b := NewBuilder("latex")
	b.inUse = true
	_, err := b.AddCode("x")
	assert.Error(t, err)
}

func TestAddCodeRsweaveDialectDiscardsLiterateCodeChunk(t *testing.T) {
	b := NewBuilder("rsweave")
	out, err := b.AddCode("prose <<chunk>>=\ncode here\n@ more prose")
	require.NoError(t, err)
	assert.NotContains(t, out.PlainText(), "code here")
	assert.Contains(t, out.PlainText(), "more prose")
}
