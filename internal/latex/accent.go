package latex

// accentTable maps an accent command's second character (the accent
// itself, e.g. '`' or '"') to a letter-to-codepoint table. Unlisted
// combinations resolve to "", matching spec §6's normative note that
// unlisted combinations yield an empty replacement. "\i" (the dotless
// i) shares the row of lowercase "i" in every accent, per spec.
var accentTable = map[byte]map[string]string{
	'`': {
		"A": "À", "E": "È", "I": "Ì", "O": "Ò", "U": "Ù",
		"a": "à", "e": "è", "i": "ì", "\\i": "ì", "o": "ò", "u": "ù",
	},
	'\'': {
		"A": "Á", "E": "É", "I": "Í", "O": "Ó", "U": "Ú", "Y": "Ý",
		"a": "á", "e": "é", "i": "í", "\\i": "í", "o": "ó", "u": "ú", "y": "ý",
	},
	'^': {
		"A": "Â", "E": "Ê", "I": "Î", "O": "Ô", "U": "Û", "Y": "Ŷ",
		"a": "â", "e": "ê", "i": "î", "\\i": "î", "o": "ô", "u": "û", "y": "ŷ",
	},
	'~': {
		"A": "Ã", "E": "Ẽ", "I": "Ĩ", "N": "Ñ", "O": "Õ", "U": "Ũ",
		"a": "ã", "e": "ẽ", "i": "ĩ", "\\i": "ĩ", "n": "ñ", "o": "õ", "u": "ũ",
	},
	'"': {
		"A": "Ä", "E": "Ë", "I": "Ï", "O": "Ö", "U": "Ü", "Y": "Ÿ",
		"a": "ä", "e": "ë", "i": "ï", "\\i": "ï", "o": "ö", "u": "ü", "y": "ÿ",
	},
	'=': {
		"A": "Ā", "E": "Ē", "I": "Ī", "O": "Ō", "U": "Ū", "Y": "Ȳ",
		"a": "ā", "e": "ē", "i": "ī", "\\i": "ī", "o": "ō", "u": "ū", "y": "ȳ",
	},
	'.': {
		"A": "Ȧ", "E": "Ė", "I": "İ", "O": "Ȯ",
		"a": "ȧ", "e": "ė", "o": "ȯ",
	},
	'c': {
		"C": "Ç", "c": "ç",
	},
	'r': {
		"A": "Å", "U": "Ů",
		"a": "å", "u": "ů",
	},
}

// convertAccentCommandToUnicode composes accentCommand (e.g. "\\`") with
// letter (a bare letter or "\\i", with any surrounding braces already
// stripped by the caller) into its precomposed Unicode character, or ""
// if the pair is not in the table.
func convertAccentCommandToUnicode(accentCommand, letter string) string {
	row, ok := accentTable[accentCommand[len(accentCommand)-1]]
	if !ok {
		return ""
	}
	return row[letter]
}
