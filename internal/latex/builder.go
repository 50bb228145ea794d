// Package latex implements the LaTeX annotated-text builder: a
// position-driven, non-backtracking scanner that walks raw LaTeX source
// once and produces an AnnotatedText whose plain text is safe to feed to
// a grammar engine, alongside a full source offset mapping.
package latex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"latexannotate/internal/apperr"
	"latexannotate/internal/dummy"
	"latexannotate/internal/logger"
	"latexannotate/internal/settings"
	"latexannotate/internal/sink"
)

var _ sink.CodeAnnotatedTextBuilder = (*Builder)(nil)

var (
	commandPattern         = regexp.MustCompile(`^\\(([^A-Za-z@]|([A-Za-z@]+))\*?)`)
	commentPattern         = regexp.MustCompile(`^%.*?($|((\n|\r|\r\n)[ \n\r\t]*))`)
	whitespacePattern      = regexp.MustCompile(`^[ \n\r\t]+(%.*?($|((\n|\r|\r\n)[ \n\r\t]*)))?`)
	lengthFragment         = `-?[0-9]*(\.[0-9]+)?(pt|mm|cm|ex|em|bp|dd|pc|in)`
	lengthInBracePattern   = regexp.MustCompile(`^\{` + lengthFragment + `\}`)
	lengthInBracketPattern = regexp.MustCompile(`^\[` + lengthFragment + `\]`)
	emDashPattern          = regexp.MustCompile(`^---`)
	enDashPattern          = regexp.MustCompile(`^--`)
	accentPattern1         = regexp.MustCompile(`^(\\[` + "`" + `'\^~"=\.])(([A-Za-z]|\\i)|(\{([A-Za-z]|\\i)\}))`)
	accentPattern2         = regexp.MustCompile(`^(\\[cr])( *([A-Za-z])|\{([A-Za-z])\})`)
	displayMathPattern     = regexp.MustCompile(`^\$\$`)
	rsweaveBeginPattern    = regexp.MustCompile(`^<<.*?>>=`)
	rsweaveEndPattern      = regexp.MustCompile(`^@`)
)

// matchVerbCommand below replaces verbCommandPattern's Java backreference
// "^\\verb\*?(.).*?\1", which Go's RE2 engine cannot express.

// Builder scans LaTeX source into an AnnotatedText. Create one with
// NewBuilder; it may be reused once a previous AddCode call has
// returned, since the internal scanning state is reset at the start of
// AddCode, but a Builder is not safe for concurrent use.
type Builder struct {
	codeLanguageID string
	language       string

	commandSignatures    CommandSignatureMap
	environmentSignatures map[string]*EnvironmentSignature
	strictMode           bool
	log                  logger.Logger

	code string
	pos  int
	sink *sink.AnnotatedText

	dummyCounter          int
	lastSpace             string
	lastPunctuation       string
	dummyLastSpace        string
	dummyLastPunctuation  string
	isMathEmpty           bool
	mathVowelState        MathVowelState
	preserveDummyLast     bool
	canInsertSpaceBeforeDummy bool
	isMathCharTrivial     bool
	modeStack             *ModeStack

	curChar   byte
	curString string
	curMode   Mode

	inUse bool
}

// NewBuilder returns a Builder configured with the default signature
// catalogues, American English, and non-strict mode. codeLanguageID
// selects the rsweave literate-programming dialect when set to
// "rsweave"; any other value is plain LaTeX.
func NewBuilder(codeLanguageID string) *Builder {
	s := settings.Default()
	return &Builder{
		codeLanguageID:        codeLanguageID,
		language:              s.LanguageShortCode,
		commandSignatures:     BuildCommandSignatures(s),
		environmentSignatures: BuildEnvironmentSignatures(s),
		log:                   logger.Get(),
	}
}

// SetSettings applies a host-supplied configuration, merging its
// command/environment overrides into the default catalogues and
// switching the agreement language used by dummy generation.
func (b *Builder) SetSettings(s *settings.Settings) {
	if s == nil {
		return
	}
	b.language = s.LanguageShortCode
	b.commandSignatures = BuildCommandSignatures(s)
	b.environmentSignatures = BuildEnvironmentSignatures(s)
	b.strictMode = s.StrictMode
}

// SetStrictMode toggles whether a stalled scan (no progress after a
// full dispatch) raises an error or is logged and force-advanced.
func (b *Builder) SetStrictMode(strict bool) {
	b.strictMode = strict
}

// SetLogger overrides the default package logger, e.g. to attach a
// request-scoped child logger carrying a document URI field.
func (b *Builder) SetLogger(l logger.Logger) {
	b.log = l
}

func isPunctuation(ch byte) bool {
	return ch == '.' || ch == ',' || ch == ':' || ch == ';'
}

func isVowelByte(ch byte) bool {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	switch ch {
	case 'a', 'e', 'f', 'h', 'i', 'l', 'm', 'n', 'o', 'r', 's', 'x':
		return true
	default:
		return false
	}
}

func containsTwoEndsOfLine(text string) bool {
	return strings.Contains(text, "\n\n") || strings.Contains(text, "\r\r") || strings.Contains(text, "\r\n\r\n")
}

// AddCode scans src and returns the resulting AnnotatedText. It is an
// error to call AddCode on a Builder that is already mid-scan (reentrant
// use from within a callback, for instance), since the scan state is
// not stacked.
func (b *Builder) AddCode(src string) (*sink.AnnotatedText, error) {
	if b.inUse {
		return nil, apperr.New(apperr.ErrReentrantUse, "AddCode called while a scan is already in progress")
	}
	b.inUse = true
	defer func() { b.inUse = false }()

	runID := uuid.New()

	b.code = src
	b.pos = 0
	b.sink = sink.New()
	b.dummyCounter = 0
	b.lastSpace = ""
	b.lastPunctuation = ""
	b.dummyLastSpace = ""
	b.dummyLastPunctuation = ""
	b.isMathEmpty = true
	b.mathVowelState = Undecided
	b.preserveDummyLast = false
	b.canInsertSpaceBeforeDummy = false
	b.isMathCharTrivial = false
	b.modeStack = NewModeStack()

	var ignoreEnvironmentEndPattern *regexp.Regexp
	lastPos := -1

	for b.pos < len(b.code) {
		b.curChar = b.code[b.pos]
		b.curString = string(b.curChar)
		b.curMode = b.modeStack.Peek()
		b.isMathCharTrivial = false
		lastPos = b.pos

		switch {
		case b.curMode.IsIgnoreEnvironment():
			if ignoreEnvironmentEndPattern != nil {
				end := b.matchFromPosition(ignoreEnvironmentEndPattern)
				if end == "" {
					b.addMarkup(b.curString)
				} else {
					b.popMode()
					b.addMarkup(end)
				}
			} else {
				b.log.Warn("ignore-environment end pattern not set; popping mode defensively")
				b.popMode()
			}

		case b.codeLanguageID == "rsweave" && b.curMode == Rsweave:
			end := b.matchFromPosition(rsweaveEndPattern)
			if end == "" {
				b.addMarkup(b.curString)
			} else {
				b.popMode()
				b.addMarkup(end)
			}

		default:
			ignoreEnvironmentEndPattern = b.dispatchChar(ignoreEnvironmentEndPattern)
		}

		if !b.isMathCharTrivial {
			b.canInsertSpaceBeforeDummy = false
			b.isMathEmpty = false
		}

		if b.pos == lastPos {
			info := b.debugSnapshot(runID)
			if b.strictMode {
				return nil, apperr.New(apperr.ErrNoProgress, "scanner made no progress").
					WithDetails(info)
			}
			b.log.Warn("scanner made no progress; force-advancing one byte",
				logger.String("run_id", runID.String()),
				logger.String("snapshot", info))
			b.pos++
		}
	}

	return b.sink, nil
}

// dispatchChar runs the big per-character switch for one loop
// iteration and returns the (possibly newly compiled) ignore-environment
// end pattern, since \begin can install one.
func (b *Builder) dispatchChar(ignoreEnvironmentEndPattern *regexp.Regexp) *regexp.Regexp {
	switch b.curChar {
	case '\\':
		ignoreEnvironmentEndPattern = b.dispatchCommand(ignoreEnvironmentEndPattern)

	case '{':
		if length := b.matchFromPosition(lengthInBracePattern); length != "" {
			b.addMarkup(length)
		} else {
			b.modeStack.Push(b.curMode)
			b.addMarkup(b.curString)
		}

	case '}':
		interpretAs := ""
		if b.curMode == Heading && b.lastPunctuation == "" {
			interpretAs = "."
		}
		b.popMode()
		b.addMarkupInterpretAs(b.curString, interpretAs)
		b.canInsertSpaceBeforeDummy = true

		if b.curMode.IsText() && b.modeStack.Peek().IsMath() {
			b.isMathEmpty = true
		}
		b.isMathCharTrivial = true

	case '$':
		if displayMath := b.matchFromPosition(displayMathPattern); displayMath != "" {
			if b.curMode == DisplayMath {
				b.popMode()
				b.addMarkupInterpretAs(displayMath, b.generateDummy(nil))
			} else {
				b.enterDisplayMath()
				b.addMarkup(displayMath)
			}
		} else {
			if b.curMode == InlineMath {
				b.popMode()
				b.addMarkupInterpretAs(b.curString, b.generateDummy(nil))
			} else {
				b.enterInlineMath()
				b.addMarkup(b.curString)
			}
		}

	case '%':
		comment := b.matchFromPosition(commentPattern)
		b.preserveDummyLast = true
		b.isMathCharTrivial = true
		interpretAs := ""
		if containsTwoEndsOfLine(comment) {
			interpretAs = "\n\n"
		}
		b.addMarkupInterpretAs(comment, interpretAs)

	case ' ', '&', '~', '\n', '\r', '\t':
		var whitespace string
		if b.curChar != '~' && b.curChar != '&' {
			whitespace = b.matchFromPosition(whitespacePattern)
		} else {
			whitespace = b.curString
		}
		b.preserveDummyLast = true
		b.isMathCharTrivial = true

		if b.curMode.IsText() {
			switch {
			case containsTwoEndsOfLine(whitespace):
				b.addMarkupInterpretAs(whitespace, "\n\n")
			case b.curChar == '~':
				interpretAs := ""
				if b.lastSpace == "" {
					interpretAs = " "
				}
				b.addMarkupInterpretAs(whitespace, interpretAs)
			default:
				interpretAs := ""
				if b.lastSpace == "" {
					interpretAs = " "
				}
				b.addMarkupInterpretAs(whitespace, interpretAs)
			}
		} else {
			b.addMarkup(whitespace)
		}

		if b.curChar == '~' || b.curChar == '&' {
			b.dummyLastSpace = " "
		}

	case '`', '\'', '"':
		if b.curMode.IsText() {
			quote := ""
			smartQuote := ""

			if b.pos+1 < len(b.code) {
				quote = b.code[b.pos : b.pos+2]
				switch quote {
				case "``", "\"'":
					smartQuote = "“"
				case "''":
					smartQuote = "”"
				case "\"`":
					smartQuote = "„"
				case "\"-", "\"\"", "\"|":
					smartQuote = ""
				case "\"=", "\"~":
					smartQuote = "-"
				default:
					quote = ""
				}
			}

			if quote == "" {
				b.addText(b.curString)
			} else {
				b.addMarkupInterpretAs(quote, smartQuote)
			}
		} else {
			b.addMarkup(b.curString)
		}

	case '-':
		if b.curMode.IsText() {
			if emDash := b.matchFromPosition(emDashPattern); emDash != "" {
				b.addMarkupInterpretAs(emDash, "—")
				break
			}
			if enDash := b.matchFromPosition(enDashPattern); enDash != "" {
				b.addMarkupInterpretAs(enDash, "–")
				break
			}
		}
		ignoreEnvironmentEndPattern = b.dispatchBracketOrDefault(ignoreEnvironmentEndPattern)

	case '[':
		ignoreEnvironmentEndPattern = b.dispatchBracketOrDefault(ignoreEnvironmentEndPattern)

	case '<':
		ignoreEnvironmentEndPattern = b.dispatchAngleOrDefault(ignoreEnvironmentEndPattern)

	default:
		b.dispatchDefault()
	}

	return ignoreEnvironmentEndPattern
}

// dispatchBracketOrDefault mirrors the Java switch's fallthrough from
// '-' and '[' into the length-in-bracket check, then into '<'.
func (b *Builder) dispatchBracketOrDefault(ignoreEnvironmentEndPattern *regexp.Regexp) *regexp.Regexp {
	if length := b.matchFromPosition(lengthInBracketPattern); length != "" {
		b.isMathCharTrivial = true
		b.preserveDummyLast = true
		b.addMarkup(length)
		return ignoreEnvironmentEndPattern
	}
	return b.dispatchAngleOrDefault(ignoreEnvironmentEndPattern)
}

// dispatchAngleOrDefault mirrors the Java switch's fallthrough from '<'
// into the rsweave-begin check, then into the default text/markup case.
func (b *Builder) dispatchAngleOrDefault(ignoreEnvironmentEndPattern *regexp.Regexp) *regexp.Regexp {
	if b.codeLanguageID == "rsweave" {
		if begin := b.matchFromPosition(rsweaveBeginPattern); begin != "" {
			b.modeStack.Push(Rsweave)
			b.addMarkup(begin)
			return ignoreEnvironmentEndPattern
		}
	}
	b.dispatchDefault()
	return ignoreEnvironmentEndPattern
}

func (b *Builder) dispatchDefault() {
	if b.curMode.IsText() {
		b.addText(b.curString)
		if isPunctuation(b.curChar) {
			b.lastPunctuation = b.curString
		}
	} else {
		b.addMarkup(b.curString)
		if isPunctuation(b.curChar) {
			b.dummyLastPunctuation = b.curString
		}
		if b.mathVowelState == Undecided {
			if isVowelByte(b.curChar) {
				b.mathVowelState = StartsWithVowel
			} else {
				b.mathVowelState = StartsWithConsonant
			}
		}
	}
}

// dispatchCommand handles the entire '\\' branch: \begin/\end,
// single-character escapes, accents, spacing commands, headings,
// \text/\intertext, \verb, and finally the registered-signature lookup.
func (b *Builder) dispatchCommand(ignoreEnvironmentEndPattern *regexp.Regexp) *regexp.Regexp {
	command := b.matchFromPosition(commandPattern)

	switch {
	case command == "\\begin" || command == "\\end":
		return b.dispatchBeginEnd(command, ignoreEnvironmentEndPattern)

	case command == "\\$" || command == "\\%" || command == "\\&":
		b.addMarkupInterpretAs(command, command[1:])

	case command == "\\[":
		b.enterDisplayMath()
		b.addMarkup(command)

	case command == "\\(":
		b.enterInlineMath()
		b.addMarkup(command)

	case command == "\\]" || command == "\\)":
		b.popMode()
		b.addMarkupInterpretAs(command, b.generateDummy(nil))

	case command == "\\AA":
		b.addMarkupInterpretAs(command, "Å")
	case command == "\\O":
		b.addMarkupInterpretAs(command, "Ø")
	case command == "\\aa":
		b.addMarkupInterpretAs(command, "å")
	case command == "\\ss":
		b.addMarkupInterpretAs(command, "ß")
	case command == "\\o":
		b.addMarkupInterpretAs(command, "ø")

	case command == "\\`" || command == "\\'" || command == "\\^" || command == "\\~" ||
		command == "\\\"" || command == "\\=" || command == "\\.":
		b.dispatchAccent(accentPattern1, 3, 5)

	case command == "\\c" || command == "\\r":
		b.dispatchAccent(accentPattern2, 3, 4)

	case command == "\\-":
		b.addMarkup(command)

	case isSpacingCommand(command):
		b.dispatchSpacing(command)

	case isInterpretedSymbol(command):
		b.dispatchInterpretedSymbol(command)

	case command == "\\notag" || command == "\\qed":
		b.preserveDummyLast = true
		b.addMarkup(command)

	case isHeadingCommand(command):
		b.dispatchHeading(command)

	case command == "\\text" || command == "\\intertext":
		b.modeStack.Push(InlineText)
		interpretAs := ""
		if b.curMode.IsMath() {
			interpretAs = b.generateDummy(nil)
		}
		b.addMarkupInterpretAs(command+"{", interpretAs)

	case command == "\\verb":
		verbCommand := b.matchVerbCommand()
		b.addMarkupInterpretAs(verbCommand, b.generateDummy(nil))

	default:
		b.dispatchRegisteredCommand(command)
	}

	return ignoreEnvironmentEndPattern
}

func (b *Builder) dispatchBeginEnd(command string, ignoreEnvironmentEndPattern *regexp.Regexp) *regexp.Regexp {
	b.preserveDummyLast = true
	b.addMarkup(command)

	argument := MatchArgumentFromPosition(b.code, b.pos, Brace)
	environmentName := ""
	if len(argument) >= 2 {
		environmentName = argument[1 : len(argument)-1]
	}
	interpretAs := ""

	switch {
	case MathEnvironments[environmentName]:
		if command == "\\begin" {
			if environmentName == "math" {
				b.enterInlineMath()
			} else {
				b.enterDisplayMath()
			}
		} else {
			b.popMode()
			interpretAs = b.generateDummy(nil)
		}

	case command == "\\begin":
		sig := b.environmentSignatures[environmentName]
		if sig != nil && sig.Action == EnvIgnore {
			b.modeStack.Push(IgnoreEnvironment)
			ignoreEnvironmentEndPattern = regexp.MustCompile(`^\\end\{` + regexp.QuoteMeta(environmentName) + `\}`)
		} else {
			b.modeStack.Push(b.curMode)
		}

	default:
		b.popMode()
	}

	if !b.modeStack.Peek().IsIgnoreEnvironment() {
		b.isMathCharTrivial = true
		b.preserveDummyLast = true
		b.addMarkupInterpretAs(argument, interpretAs)
		if command == "\\begin" {
			b.consumeEnvironmentArguments(environmentName)
		}
	}

	return ignoreEnvironmentEndPattern
}

func (b *Builder) consumeEnvironmentArguments(environmentName string) {
	for b.pos < len(b.code) {
		if arg := MatchArgumentFromPosition(b.code, b.pos, Brace); arg != "" {
			b.addMarkup(arg)
			continue
		}
		if arg := MatchArgumentFromPosition(b.code, b.pos, Bracket); arg != "" {
			b.addMarkup(arg)
			continue
		}
		if environmentName == "textblock" || environmentName == "textblock*" {
			if arg := MatchArgumentFromPosition(b.code, b.pos, Parenthesis); arg != "" {
				b.addMarkup(arg)
				continue
			}
		}
		break
	}
}

func (b *Builder) dispatchAccent(pattern *regexp.Regexp, letterGroupUnbraced, letterGroupBraced int) {
	loc := pattern.FindStringSubmatchIndex(b.code[b.pos:])
	if loc == nil {
		command := b.matchFromPosition(commandPattern)
		b.addMarkup(command)
		return
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] < 0 {
			groups[i] = ""
			continue
		}
		groups[i] = b.code[b.pos+loc[2*i] : b.pos+loc[2*i+1]]
	}

	accentCommand := groups[1]
	letter := groups[letterGroupUnbraced]
	if letter == "" {
		letter = groups[letterGroupBraced]
	}

	interpretAs := ""
	if accentCommand != "" && letter != "" {
		interpretAs = convertAccentCommandToUnicode(accentCommand, letter)
	}

	whole := b.code[b.pos+loc[0] : b.pos+loc[1]]
	b.addMarkupInterpretAs(whole, interpretAs)
}

func isSpacingCommand(command string) bool {
	switch command {
	case "\\ ", "\\,", "\\;", "\\\\", "\\hfill", "\\hspace", "\\hspace*",
		"\\quad", "\\qquad", "\\newline":
		return true
	default:
		return false
	}
}

func (b *Builder) dispatchSpacing(command string) {
	if command == "\\hspace" || command == "\\hspace*" {
		argument := b.matchFromPositionAt(lengthInBracePattern, b.pos+len(command))
		command += argument
	}

	if b.curMode.IsMath() && b.lastSpace == "" && b.canInsertSpaceBeforeDummy {
		b.addMarkupInterpretAs(command, " ")
		return
	}

	b.preserveDummyLast = true

	if b.curMode.IsMath() {
		b.addMarkup(command)
		b.dummyLastSpace = " "
		return
	}

	space := " "
	if b.lastSpace != "" {
		space = ""
	} else if command == "\\," {
		space = "\u202f"
	}
	b.addMarkupInterpretAs(command, space)
}

func isInterpretedSymbol(command string) bool {
	switch command {
	case "\\dots", "\\eg", "\\egc", "\\euro", "\\ie", "\\iec":
		return true
	default:
		return false
	}
}

func (b *Builder) dispatchInterpretedSymbol(command string) {
	interpretAs := ""
	if !b.curMode.IsMath() {
		switch command {
		case "\\dots":
			interpretAs = "..."
		case "\\eg":
			interpretAs = "e.g."
		case "\\egc":
			interpretAs = "e.g.,"
		case "\\euro":
			interpretAs = "€"
		case "\\ie":
			interpretAs = "i.e."
		case "\\iec":
			interpretAs = "i.e.,"
		}
	}
	b.addMarkupInterpretAs(command, interpretAs)
}

func isHeadingCommand(command string) bool {
	switch command {
	case "\\part", "\\chapter", "\\section", "\\subsection", "\\subsubsection",
		"\\paragraph", "\\subparagraph",
		"\\part*", "\\chapter*", "\\section*", "\\subsection*", "\\subsubsection*",
		"\\paragraph*", "\\subparagraph*":
		return true
	default:
		return false
	}
}

func (b *Builder) dispatchHeading(command string) {
	b.addMarkup(command)
	if headingArgument := MatchArgumentFromPosition(b.code, b.pos, Bracket); headingArgument != "" {
		b.addMarkup(headingArgument)
	}
	b.modeStack.Push(Heading)
	b.addMarkup("{")
}

// matchVerbCommand ports \verb*?(delim).*?(delim) without Go regexp
// backreferences: the delimiter is whatever single byte follows an
// optional '*', and the command runs up to and including its next
// occurrence.
func (b *Builder) matchVerbCommand() string {
	rest := b.code[b.pos:]
	prefix := "\\verb"
	if !strings.HasPrefix(rest, prefix) {
		return ""
	}
	i := len(prefix)
	if i < len(rest) && rest[i] == '*' {
		i++
	}
	if i >= len(rest) {
		return ""
	}
	delim := rest[i]
	i++
	end := strings.IndexByte(rest[i:], delim)
	if end < 0 {
		return ""
	}
	return rest[:i+end+1]
}

func (b *Builder) dispatchRegisteredCommand(command string) {
	sig, match := b.commandSignatures.BestMatch(command, b.code, b.pos)

	if sig == nil || sig.Action == ActionDefault {
		if b.curMode.IsMath() && b.mathVowelState == Undecided {
			switch command {
			case "\\mathbb", "\\mathbf", "\\mathcal", "\\mathfrak",
				"\\mathit", "\\mathnormal", "\\mathsf", "\\mathtt":
				// leave mathVowelState Undecided
			case "\\ell":
				b.mathVowelState = StartsWithVowel
			default:
				b.mathVowelState = StartsWithConsonant
			}
		}
		b.addMarkup(command)
		return
	}

	switch sig.Action {
	case ActionIgnore:
		b.addMarkup(match)
	case ActionDummy:
		b.addMarkupInterpretAs(match, b.generateDummy(sig.DummyGenerator))
	default:
		b.addMarkup(match)
	}
}

func (b *Builder) matchFromPosition(pattern *regexp.Regexp) string {
	return b.matchFromPositionAt(pattern, b.pos)
}

func (b *Builder) matchFromPositionAt(pattern *regexp.Regexp, pos int) string {
	if pos >= len(b.code) {
		return ""
	}
	return pattern.FindString(b.code[pos:])
}

func (b *Builder) generateDummy(gen *dummy.Generator) string {
	if gen == nil {
		gen = dummy.Default()
	}
	startsWithVowel := b.mathVowelState == StartsWithVowel
	var result string

	switch {
	case b.curMode.IsText():
		result = gen.Generate(b.language, b.dummyCounter, startsWithVowel)
		b.dummyCounter++

	case b.isMathEmpty:
		if b.curMode == DisplayMath {
			if b.lastSpace == "" {
				result = " "
			}
		}

	case b.curMode == DisplayMath:
		prefix := ""
		if b.lastSpace == "" {
			prefix = " "
		}
		word := gen.Generate(b.language, b.dummyCounter, false)
		b.dummyCounter++
		suffix := b.dummyLastSpace
		if b.modeStack.Peek() != InlineText {
			suffix = " "
		}
		result = prefix + word + b.dummyLastPunctuation + suffix

	default:
		word := gen.Generate(b.language, b.dummyCounter, startsWithVowel)
		b.dummyCounter++
		result = word + b.dummyLastPunctuation + b.dummyLastSpace
	}

	b.dummyLastSpace = ""
	b.dummyLastPunctuation = ""
	b.mathVowelState = Undecided
	return result
}

func (b *Builder) addText(text string) {
	if text == "" {
		return
	}
	b.sink.AddText(text)
	b.pos += len(text)
	b.textAdded(text)
}

func (b *Builder) addMarkup(markup string) {
	if markup == "" {
		return
	}
	b.sink.AddMarkup(markup)
	b.pos += len(markup)

	if b.preserveDummyLast {
		b.preserveDummyLast = false
	} else {
		b.dummyLastSpace = ""
		b.dummyLastPunctuation = ""
	}
}

func (b *Builder) addMarkupInterpretAs(markup, interpretAs string) {
	if interpretAs == "" {
		b.addMarkup(markup)
		return
	}
	b.sink.AddMarkupInterpretAs(markup, interpretAs)
	b.pos += len(markup)
	b.preserveDummyLast = false
	b.textAdded(interpretAs)
}

func (b *Builder) textAdded(text string) {
	if text == "" {
		return
	}
	lastChar := text[len(text)-1]
	if lastChar == ' ' || lastChar == '\n' || lastChar == '\r' {
		b.lastSpace = " "
	} else {
		b.lastSpace = ""
	}
	if isPunctuation(lastChar) {
		b.lastPunctuation = " "
	} else {
		b.lastPunctuation = ""
	}
}

func (b *Builder) popMode() {
	b.modeStack.Pop()
}

func (b *Builder) enterDisplayMath() {
	b.modeStack.Push(DisplayMath)
	b.isMathEmpty = true
	b.mathVowelState = Undecided
	b.canInsertSpaceBeforeDummy = true
}

func (b *Builder) enterInlineMath() {
	b.modeStack.Push(InlineMath)
	b.isMathEmpty = true
	b.mathVowelState = Undecided
	b.canInsertSpaceBeforeDummy = true
	b.isMathCharTrivial = true
}

func (b *Builder) debugSnapshot(runID uuid.UUID) string {
	remaining := b.code[b.pos:min(b.pos+100, len(b.code))]
	return fmt.Sprintf("run=%s pos=%d remaining=%s state=%s",
		runID, b.pos, litter.Sdump(remaining), litter.Sdump(b.scannerState()))
}

type scannerStateSnapshot struct {
	DummyCounter         int
	LastSpace            string
	LastPunctuation      string
	DummyLastSpace       string
	DummyLastPunctuation string
	IsMathEmpty          bool
	MathVowelState       MathVowelState
	PreserveDummyLast    bool
	ModeStackDepth       int
	CurMode              string
}

func (b *Builder) scannerState() scannerStateSnapshot {
	return scannerStateSnapshot{
		DummyCounter:         b.dummyCounter,
		LastSpace:            b.lastSpace,
		LastPunctuation:      b.lastPunctuation,
		DummyLastSpace:       b.dummyLastSpace,
		DummyLastPunctuation: b.dummyLastPunctuation,
		IsMathEmpty:          b.isMathEmpty,
		MathVowelState:       b.mathVowelState,
		PreserveDummyLast:    b.preserveDummyLast,
		ModeStackDepth:       b.modeStack.Len(),
		CurMode:              b.curMode.String(),
	}
}

