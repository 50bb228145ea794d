package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "en-US", s.LanguageShortCode)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := Default()
	s.LanguageShortCode = "de-DE"
	s.LatexCommands["myemph"] = "ignore"
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", loaded.LanguageShortCode)
	assert.Equal(t, "ignore", loaded.LatexCommands["myemph"])
}

func TestValidateRejectsBadLanguageTag(t *testing.T) {
	s := Default()
	s.LanguageShortCode = "not a tag!!"
	assert.Error(t, s.Validate())
}

func TestValidateRejectsEmptyLanguageTag(t *testing.T) {
	s := Default()
	s.LanguageShortCode = ""
	assert.Error(t, s.Validate())
}
