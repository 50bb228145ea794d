package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeStackNeverEmpty(t *testing.T) {
	s := NewModeStack()
	s.Pop()
	s.Pop()
	s.Pop()
	assert.Equal(t, ParagraphText, s.Peek())
	assert.Equal(t, 1, s.Len())
}

func TestModeStackPushPeekPop(t *testing.T) {
	s := NewModeStack()
	s.Push(InlineMath)
	assert.Equal(t, InlineMath, s.Peek())
	s.Pop()
	assert.Equal(t, ParagraphText, s.Peek())
}

func TestModeClassification(t *testing.T) {
	assert.True(t, InlineMath.IsMath())
	assert.True(t, DisplayMath.IsMath())
	assert.False(t, ParagraphText.IsMath())

	assert.True(t, IgnoreEnvironment.IsIgnoreEnvironment())
	assert.True(t, Rsweave.IsText())
	assert.True(t, ParagraphText.IsText())
	assert.False(t, InlineMath.IsText())
}
