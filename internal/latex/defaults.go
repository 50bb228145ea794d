package latex

import (
	"latexannotate/internal/dummy"
	"latexannotate/internal/settings"
)

// MathEnvironments are environment names whose \begin enters math mode
// (InlineMath for "math", DisplayMath for the rest) instead of requiring a registered environment signature at all; the
// list is fixed, not user-extensible, per spec §6.
var MathEnvironments = map[string]bool{
	"align": true, "align*": true, "alignat": true, "alignat*": true,
	"displaymath": true, "eqnarray": true, "eqnarray*": true,
	"equation": true, "equation*": true, "flalign": true, "flalign*": true,
	"gather": true, "gather*": true, "math": true,
	"multline": true, "multline*": true,
}

// DefaultCommandSignatures returns the built-in catalogue: the core set
// plus this engine's own supplemented entries (citations, refs, todo
// notes).
func DefaultCommandSignatures() []*CommandSignature {
	must := func(name string, action Action, pattern string, gen *dummy.Generator) *CommandSignature {
		sig, err := NewCommandSignature(name, action, pattern, gen)
		if err != nil {
			panic(err)
		}
		return sig
	}

	plural := dummy.DefaultPlural()

	return []*CommandSignature{
		must("label", ActionIgnore, "{}", nil),
		must("cite", ActionDummy, "[]{}", plural),
		must("citep", ActionDummy, "[]{}", plural),
		must("citet", ActionDummy, "[]{}", plural),
		must("ref", ActionDummy, "{}", nil),
		must("eqref", ActionDummy, "{}", nil),
		must("autoref", ActionDummy, "{}", nil),
		must("footnote", ActionDefault, "{}", nil),
		must("todo", ActionDummy, "{}", nil),
		must("missingfigure", ActionDummy, "{}", nil),
		must("caption", ActionDefault, "[]{}", nil),
		must("title", ActionDefault, "{}", nil),
		must("author", ActionDefault, "{}", nil),
		must("date", ActionDefault, "{}", nil),
		must("section", ActionDefault, "*[]{}", nil),
		must("subsection", ActionDefault, "*[]{}", nil),
		must("subsubsection", ActionDefault, "*[]{}", nil),
		must("paragraph", ActionDefault, "*[]{}", nil),
		must("emph", ActionDefault, "{}", nil),
		must("textbf", ActionDefault, "{}", nil),
		must("textit", ActionDefault, "{}", nil),
		must("texttt", ActionIgnore, "{}", nil),
		must("url", ActionDummy, "{}", nil),
		must("href", ActionDummy, "{}{}", nil),
		must("includegraphics", ActionIgnore, "[]{}", nil),
		must("item", ActionDefault, "[]", nil),
		must("documentclass", ActionIgnore, "[]{}", nil),
		must("usepackage", ActionIgnore, "[]{}", nil),
	}
}

// DefaultEnvironmentSignatures returns the built-in environment
// catalogue. Environments in MathEnvironments never need an entry here;
// this set covers the non-math environments with special handling.
func DefaultEnvironmentSignatures() []*EnvironmentSignature {
	return []*EnvironmentSignature{
		{Name: "lstlisting", Action: EnvIgnore},
		{Name: "verbatim", Action: EnvIgnore},
		{Name: "Verbatim", Action: EnvIgnore},
		{Name: "tikzpicture", Action: EnvIgnore},
		{Name: "figure", Action: EnvDefault},
		{Name: "figure*", Action: EnvDefault},
		{Name: "table", Action: EnvDefault},
		{Name: "table*", Action: EnvDefault},
	}
}

// actionFromSettings maps the host-facing settings.Action string onto
// the scanner's internal Action. ok is false for anything unrecognised,
// and the caller skips that entry.
func actionFromSettings(a string) (Action, *dummy.Generator, bool) {
	switch settings.Action(a) {
	case settings.ActionDefault:
		return ActionDefault, nil, true
	case settings.ActionIgnore:
		return ActionIgnore, nil, true
	case settings.ActionDummy:
		return ActionDummy, dummy.Default(), true
	case settings.ActionPluralDummy:
		return ActionDummy, dummy.DefaultPlural(), true
	default:
		return ActionDefault, nil, false
	}
}

// environmentActionFromSettings maps a host action string onto the
// coarser EnvironmentAction; "dummy"/"pluralDummy" have no meaning for
// an environment body and degrade to EnvIgnore. ok is false for anything
// unrecognised, and the caller skips that entry.
func environmentActionFromSettings(a string) (EnvironmentAction, bool) {
	switch settings.Action(a) {
	case settings.ActionIgnore, settings.ActionDummy, settings.ActionPluralDummy:
		return EnvIgnore, true
	case settings.ActionDefault:
		return EnvDefault, true
	default:
		return EnvDefault, false
	}
}

// BuildCommandSignatures merges the default catalogue with any
// user-registered commands from settings, with user entries overriding
// a default of the same name by appending last (so BestMatch's
// later-registration tie-break favours them).
func BuildCommandSignatures(s *settings.Settings) CommandSignatureMap {
	sigs := DefaultCommandSignatures()
	if s != nil {
		for name, action := range s.LatexCommands {
			act, gen, ok := actionFromSettings(action)
			if !ok {
				continue
			}
			sig, err := NewCommandSignature(name, act, "{}", gen)
			if err != nil {
				continue
			}
			sigs = append(sigs, sig)
		}
	}
	return NewCommandSignatureMap(sigs)
}

// BuildEnvironmentSignatures merges the default catalogue with any
// user-registered environments from settings.
func BuildEnvironmentSignatures(s *settings.Settings) map[string]*EnvironmentSignature {
	m := map[string]*EnvironmentSignature{}
	for _, sig := range DefaultEnvironmentSignatures() {
		m[sig.Name] = sig
	}
	if s != nil {
		for name, action := range s.LatexEnvironments {
			act, ok := environmentActionFromSettings(action)
			if !ok {
				continue
			}
			m[name] = &EnvironmentSignature{Name: name, Action: act}
		}
	}
	return m
}
