package codereel

import "unicode"

// Timing model tuning. Fractions are relative to the base delay (1/rate).
const (
	// minDelayFraction floors every delay so no keystroke is ever free.
	minDelayFraction = 0.2
	// newlinePauseFraction is the extra pause after pressing enter.
	newlinePauseFraction = 2.0
	// punctuationPauseFraction is the smaller pause after . , ; :
	punctuationPauseFraction = 1.0
	// randomSpread is the per-unit-randomness standard deviation of the
	// multiplicative variation factor.
	randomSpread = 0.3
	// maxGaussianDraw bounds the normal draw so the factor distribution
	// has finite support.
	maxGaussianDraw = 2.5
	// minRandomFactor keeps the variation factor strictly positive.
	minRandomFactor = 0.1
	// shiftPenalty slows shifted letters relative to their lowercase key.
	shiftPenalty = 1.25
	// maxKeyDifficulty caps the difficulty multiplier so pathological
	// combinations cannot stall the animation.
	maxKeyDifficulty = 2.5
	// maxPatternRunes is the longest tail inspected for pattern matches.
	maxPatternRunes = 10
)

// keyDifficultyTable scores QWERTY keys by finger travel from the home row.
// 1.0 is home row; higher is slower. Shifted symbols carry their shift cost
// in the score.
var keyDifficultyTable = map[rune]float64{
	// Home row.
	'a': 1.0, 's': 1.0, 'd': 1.0, 'f': 1.0,
	'j': 1.0, 'k': 1.0, 'l': 1.0, ';': 1.0,
	'g': 1.1, 'h': 1.1,

	// Adjacent rows.
	'q': 1.3, 'w': 1.2, 'e': 1.1, 'r': 1.1, 't': 1.2,
	'y': 1.2, 'u': 1.1, 'i': 1.1, 'o': 1.2, 'p': 1.3,
	'z': 1.4, 'x': 1.3, 'c': 1.2, 'v': 1.2, 'b': 1.3,
	'n': 1.3, 'm': 1.2, ',': 1.2, '.': 1.3, '/': 1.4,

	// Number row.
	'1': 1.8, '2': 1.6, '3': 1.5, '4': 1.4, '5': 1.4,
	'6': 1.4, '7': 1.4, '8': 1.5, '9': 1.6, '0': 1.8,

	// Shifted and reach symbols.
	'!': 2.2, '@': 2.0, '#': 1.9, '$': 1.8, '%': 1.8,
	'^': 1.8, '&': 1.8, '*': 1.9, '(': 2.0, ')': 2.2,
	'-': 1.5, '_': 2.0, '=': 1.6, '+': 2.1,
	'[': 1.7, ']': 1.8, '{': 2.2, '}': 2.3,
	'\\': 1.9, '|': 2.4, '\'': 1.4, '"': 1.8,
	'`': 1.7, '~': 2.1, '<': 1.6, '>': 1.7,
	'?': 1.8, ':': 1.6,

	// Whitespace.
	' ':  0.9,
	'\t': 1.1,
	'\n': 1.2,
}

// keyDifficulty returns the difficulty multiplier for a rune. Unknown runes
// get the default category (1.0); the result is capped.
func keyDifficulty(r rune) float64 {
	d, ok := keyDifficultyTable[unicode.ToLower(r)]
	if !ok {
		d = 1.0
	}
	if unicode.IsUpper(r) {
		d *= shiftPenalty
	}
	if d > maxKeyDifficulty {
		d = maxKeyDifficulty
	}
	return d
}

// fastPairs are two-rune sequences typed faster from muscle memory. The
// multiplier applies to the second rune of the pair.
var fastPairs = map[[2]rune]float64{
	{'(', ')'}:   0.8,
	{'[', ']'}:   0.8,
	{'{', '}'}:   0.8,
	{'"', '"'}:   0.8,
	{'\'', '\''}: 0.8,
	{'-', '>'}:   0.7,
	{'=', '>'}:   0.7,
	{'=', '='}:   0.7,
	{'!', '='}:   0.8,
	{'<', '='}:   0.8,
	{'>', '='}:   0.8,
	{'&', '&'}:   0.8,
	{'|', '|'}:   0.8,
	{'+', '+'}:   0.8,
	{'-', '-'}:   0.8,
	{':', '='}:   0.7,
}

type timingPattern struct {
	text string
	mult float64
}

// fastWords are keyword completions that practiced hands finish quickly.
// The multiplier applies to the rune that completes the match.
var fastWords = []timingPattern{
	{"func ", 0.6},
	{"def ", 0.6},
	{"if ", 0.6},
	{"for ", 0.6},
	{"let ", 0.6},
	{"function", 0.7},
	{"const ", 0.7},
	{"import ", 0.7},
	{"from ", 0.7},
	{"return ", 0.7},
	{"else", 0.7},
	{"while ", 0.7},
	{"true", 0.7},
	{"false", 0.7},
	{"nil", 0.7},
	{"null", 0.7},
	{"var ", 0.7},
	{"range ", 0.7},
}

// slowPatterns mark spots where typists slow down to think.
var slowPatterns = []timingPattern{
	{"/*", 1.3},
	{"*/", 1.3},
	{"<!--", 1.5},
	{"-->", 1.5},
	{"TODO", 1.4},
	{"FIXME", 1.4},
	{"NOTE", 1.3},
}
