// Package dummy generates the pronounceable placeholder nouns the LaTeX
// and Markdown builders substitute for math blocks, opaque commands, and
// verbatim literals, so the grammar checker sees a well-formed sentence
// around content it cannot itself parse.
package dummy

import (
	"encoding/binary"
	"strconv"

	"github.com/zeebo/blake3"
)

// vowelRoots and consonantRoots are invented words, never real
// dictionary entries, keyed by BCP-47 primary language subtag. "und"
// (undetermined) is the fallback used for unrecognized subtags.
var vowelRoots = map[string][]string{
	"en":  {"Ina", "Elomi", "Upsa"},
	"de":  {"Ina", "Elsa", "Ossu"},
	"fr":  {"Ina", "Elmu", "Osku"},
	"und": {"Ina", "Elu", "Oru"},
}

var consonantRoots = map[string][]string{
	"en":  {"Dummy", "Norla", "Velk"},
	"de":  {"Dummy", "Norla", "Velk"},
	"fr":  {"Dummy", "Norla", "Velk"},
	"und": {"Dummy", "Norla", "Velk"},
}

var pluralSuffix = map[string]string{
	"en":  "s",
	"de":  "en",
	"fr":  "s",
	"und": "s",
}

// Generator produces dummy tokens for one grammatical number (singular
// or plural). Zero value is a singular generator.
type Generator struct {
	Plural bool
}

// Default returns the singular dummy generator.
func Default() *Generator { return &Generator{} }

// DefaultPlural returns the plural dummy generator, used for command
// signatures registered with the "pluralDummy" action.
func DefaultPlural() *Generator { return &Generator{Plural: true} }

// Generate produces a short, grammatically neutral noun for language,
// deterministic in index. startsWithVowel selects the vowel-initial root
// set so an enclosing article ("a"/"an") can agree with it.
func (g *Generator) Generate(language string, index int, startsWithVowel bool) string {
	subtag := primarySubtag(language)
	roots := consonantRoots
	if startsWithVowel {
		roots = vowelRoots
	}

	set, ok := roots[subtag]
	if !ok {
		set = roots["und"]
	}

	root := set[pickIndex(language, index, len(set))]
	word := root + strconv.Itoa(index)

	if g.Plural {
		suffix, ok := pluralSuffix[subtag]
		if !ok {
			suffix = pluralSuffix["und"]
		}
		word += suffix
	}

	return word
}

// pickIndex hashes "language:index" with blake3 to choose among a root
// word's variants, purely to give dummies some lexical variety without
// introducing any randomness - the same (language, index) pair always
// selects the same variant.
func pickIndex(language string, index, n int) int {
	if n <= 1 {
		return 0
	}

	h := blake3.Sum256([]byte(language + ":" + strconv.Itoa(index)))
	v := binary.LittleEndian.Uint64(h[:8])
	return int(v % uint64(n))
}

// primarySubtag extracts the primary language subtag from a BCP-47-ish
// tag such as "en-US" or "de-DE", lowercased.
func primarySubtag(language string) string {
	for i, r := range language {
		if r == '-' || r == '_' {
			return lower(language[:i])
		}
	}
	return lower(language)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
