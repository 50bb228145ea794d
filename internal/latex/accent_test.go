package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertAccentCommandToUnicode(t *testing.T) {
	assert.Equal(t, "é", convertAccentCommandToUnicode("\\'", "e"))
	assert.Equal(t, "ñ", convertAccentCommandToUnicode("\\~", "n"))
	assert.Equal(t, "ç", convertAccentCommandToUnicode("\\c", "c"))
	assert.Equal(t, "ì", convertAccentCommandToUnicode("\\`", "\\i"))
}

func TestConvertAccentCommandToUnicodeUnknownCombination(t *testing.T) {
	assert.Equal(t, "", convertAccentCommandToUnicode("\\.", "y"))
	assert.Equal(t, "", convertAccentCommandToUnicode("\\x", "a"))
}
