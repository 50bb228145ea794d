package latex

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"

	"latexannotate/internal/dummy"
)

// ArgumentType is the shape of one argument slot in a command's
// signature: a brace group, a bracket group, or (for textblock-style
// commands) a parenthesis group.
type ArgumentType int

const (
	Brace ArgumentType = iota
	Bracket
	Parenthesis
)

var argumentPatterns = map[ArgumentType]*regexp.Regexp{
	Brace:       regexp.MustCompile(`^\{[^}]*?\}`),
	Bracket:     regexp.MustCompile(`^\[[^\]]*?\]`),
	Parenthesis: regexp.MustCompile(`^\([^)]*?\)`),
}

// MatchArgumentFromPosition matches a single argument group of the
// given type starting exactly at pos, returning "" if none is present.
func MatchArgumentFromPosition(code string, pos int, t ArgumentType) string {
	if pos >= len(code) {
		return ""
	}
	m := argumentPatterns[t].FindString(code[pos:])
	return m
}

// ArgumentSlot is one element of a command's argument_pattern: a
// required or optional group of the given shape.
type ArgumentSlot struct {
	Type     ArgumentType
	Optional bool
}

// slotAST and patternAST are the participle grammar for the compact
// argument-pattern DSL used when a host registers a custom command
// signature: a sequence of "{}" (required brace), "[]" (optional
// bracket), and "()" (required parenthesis) tokens, e.g. "[]{}" for a
// command taking one optional bracket argument followed by one required
// brace argument.
type slotAST struct {
	Kind string `parser:"@('{' '}' | '[' ']' | '(' ')')"`
}

type patternAST struct {
	Slots []*slotAST `parser:"@@*"`
}

var patternParser = participle.MustBuild[patternAST]()

// ParseArgumentPattern parses the compact slot DSL into ArgumentSlots. A
// leading "*" marks the command as optionally starred (e.g. \section*)
// and is reported separately since it is not an argument group. An
// empty pattern string is a command that takes no arguments.
func ParseArgumentPattern(pattern string) ([]ArgumentSlot, bool, error) {
	allowStar := strings.HasPrefix(pattern, "*")
	pattern = strings.TrimPrefix(pattern, "*")

	if strings.TrimSpace(pattern) == "" {
		return nil, allowStar, nil
	}

	ast, err := patternParser.ParseString("", pattern)
	if err != nil {
		return nil, allowStar, err
	}

	slots := make([]ArgumentSlot, 0, len(ast.Slots))
	for _, s := range ast.Slots {
		switch s.Kind {
		case "{}":
			slots = append(slots, ArgumentSlot{Type: Brace})
		case "[]":
			slots = append(slots, ArgumentSlot{Type: Bracket, Optional: true})
		case "()":
			slots = append(slots, ArgumentSlot{Type: Parenthesis})
		}
	}
	return slots, allowStar, nil
}

// Action is what the scanner does with a signature's whole match.
type Action int

const (
	// ActionDefault treats the command word as markup and lets the
	// following argument groups fall through to ordinary scanning.
	ActionDefault Action = iota
	// ActionIgnore discards the entire matched command+arguments.
	ActionIgnore
	// ActionDummy replaces the entire matched command+arguments with a
	// generated dummy token.
	ActionDummy
)

// CommandSignature describes one registered command's argument shape
// and the action to take when it is matched.
type CommandSignature struct {
	Name           string
	Action         Action
	AllowStar      bool
	Slots          []ArgumentSlot
	DummyGenerator *dummy.Generator
}

// NewCommandSignature builds a signature from the compact DSL pattern.
func NewCommandSignature(name string, action Action, pattern string, gen *dummy.Generator) (*CommandSignature, error) {
	slots, allowStar, err := ParseArgumentPattern(pattern)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		gen = dummy.Default()
	}
	return &CommandSignature{Name: name, Action: action, AllowStar: allowStar, Slots: slots, DummyGenerator: gen}, nil
}

// MatchFromPosition attempts to match "\" + Name + its argument slots
// starting exactly at pos, greedily consuming each slot in order and
// failing the whole match if a required slot is missing. Optional
// slots that are absent are simply skipped.
func (c *CommandSignature) MatchFromPosition(code string, pos int) string {
	prefix := "\\" + c.Name
	if !strings.HasPrefix(code[pos:], prefix) {
		return ""
	}

	cur := pos + len(prefix)
	if c.AllowStar && cur < len(code) && code[cur] == '*' {
		cur++
	}
	for _, slot := range c.Slots {
		arg := MatchArgumentFromPosition(code, cur, slot.Type)
		if arg == "" {
			if !slot.Optional {
				return ""
			}
			continue
		}
		cur += len(arg)
	}

	return code[pos:cur]
}

// EnvironmentAction is what the scanner does on \begin of a registered
// environment.
type EnvironmentAction int

const (
	EnvDefault EnvironmentAction = iota
	EnvIgnore
)

// EnvironmentSignature describes a registered environment's action.
type EnvironmentSignature struct {
	Name   string
	Action EnvironmentAction
}

// CommandSignatureMap groups signatures by command name, preserving
// registration order within each name so that, per spec's tie-breaking
// rule, the later-registered signature wins among equal-length matches.
type CommandSignatureMap map[string][]*CommandSignature

// NewCommandSignatureMap builds the lookup map from a flat list.
func NewCommandSignatureMap(signatures []*CommandSignature) CommandSignatureMap {
	m := CommandSignatureMap{}
	for _, sig := range signatures {
		m[sig.Name] = append(m[sig.Name], sig)
	}
	return m
}

// BestMatch picks, among command's registered signatures, the one whose
// MatchFromPosition is longest; ties resolve to the later registration
// since it is iterated last.
func (m CommandSignatureMap) BestMatch(command, code string, pos int) (*CommandSignature, string) {
	name := strings.TrimPrefix(command, "\\")
	name = strings.TrimSuffix(name, "*")
	// signatures are keyed by bare name (no backslash), so the raw token
	// only hits an entry registered under a backslashed name; otherwise
	// the lookup uses the name with its backslash and any star removed.
	candidates := m[command]
	if candidates == nil {
		candidates = m[name]
	}

	var best *CommandSignature
	match := ""
	for _, sig := range candidates {
		cur := sig.MatchFromPosition(code, pos)
		if cur != "" && len(cur) >= len(match) {
			match = cur
			best = sig
		}
	}
	return best, match
}
