// Package settings defines the host-facing configuration contract for
// the annotation engine and a small JSON-file loader for it, mirroring
// how the original language-server reloads settings per workspace
// folder. Loading settings from the document store/workspace config is
// the host's job; this package only owns the shape and validation of
// the data once it has arrived.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/text/language"

	"latexannotate/internal/apperr"
)

// Action is the catalogue action a host can attach to a command,
// environment, or Markdown node pattern.
type Action string

const (
	ActionDefault     Action = "default"
	ActionIgnore      Action = "ignore"
	ActionDummy       Action = "dummy"
	ActionPluralDummy Action = "pluralDummy"
)

// Settings is the contract described in spec §6. Unknown action strings
// found in any of the maps are silently skipped by whoever consumes
// them, per spec; Validate only rejects a malformed language tag.
type Settings struct {
	LanguageShortCode string            `json:"language_short_code"`
	LatexCommands     map[string]string `json:"latex_commands"`
	LatexEnvironments map[string]string `json:"latex_environments"`
	MarkdownNodes     map[string]string `json:"markdown_nodes"`
	StrictMode        bool              `json:"strict_mode"`
}

// Default returns the zero-configuration settings: American English,
// no user-registered signatures, non-strict mode.
func Default() *Settings {
	return &Settings{
		LanguageShortCode: "en-US",
		LatexCommands:     map[string]string{},
		LatexEnvironments: map[string]string{},
		MarkdownNodes:     map[string]string{},
	}
}

// Validate checks the language tag is well-formed BCP-47. It does not
// validate the action maps: unknown action strings are meant to be
// skipped, not rejected.
func (s *Settings) Validate() error {
	if s.LanguageShortCode == "" {
		return apperr.New(apperr.ErrInvalidSettings, "language_short_code must not be empty")
	}
	if _, err := language.Parse(s.LanguageShortCode); err != nil {
		return apperr.New(apperr.ErrInvalidSettings, "invalid language_short_code").
			WithDetails(fmt.Sprintf("%q: %v", s.LanguageShortCode, err))
	}
	return nil
}

// Load reads settings from a JSON file at path. A missing file is not
// an error; it yields Default().
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes settings to path as indented JSON.
func (s *Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
