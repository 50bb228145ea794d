package dummy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIsDeterministicInIndex(t *testing.T) {
	g := Default()
	a := g.Generate("en-US", 5, false)
	b := g.Generate("en-US", 5, false)
	assert.Equal(t, a, b)
}

func TestGenerateVariesByIndex(t *testing.T) {
	g := Default()
	a := g.Generate("en-US", 0, false)
	b := g.Generate("en-US", 1, false)
	assert.NotEqual(t, a, b)
}

func TestVowelAndConsonantFormsDiffer(t *testing.T) {
	g := Default()
	vowel := g.Generate("en-US", 3, true)
	consonant := g.Generate("en-US", 3, false)
	assert.NotEqual(t, vowel, consonant)
}

func TestPluralAppendsSuffix(t *testing.T) {
	singular := Default().Generate("en-US", 2, false)
	plural := DefaultPlural().Generate("en-US", 2, false)
	assert.NotEqual(t, singular, plural)
	assert.Contains(t, plural, singular)
}

func TestUnknownLanguageFallsBackToUndetermined(t *testing.T) {
	g := Default()
	assert.NotPanics(t, func() { g.Generate("xx-YY", 1, false) })
}
