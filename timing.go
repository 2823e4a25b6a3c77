package codereel

import (
	"fmt"
	"math"
	"math/rand"
	"time"
	"unicode"
)

// TypingConfig holds the knobs for the keystroke timing model. Construct it
// with NewTypingConfig; a zero value is not valid.
type TypingConfig struct {
	// Rate is the base typing speed in characters per second.
	Rate float64
	// Realism enables keyboard-ergonomics and pattern adjustments.
	Realism bool
	// Randomness scales the spread of random delay variation. Zero means
	// fully deterministic delays.
	Randomness float64
	// BlockPause is how long the final frame of a code block is held.
	BlockPause time.Duration
}

// NewTypingConfig validates and returns a TypingConfig.
func NewTypingConfig(rate float64, realism bool, randomness float64, blockPause time.Duration) (TypingConfig, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return TypingConfig{}, fmt.Errorf("typing rate must be a positive number of characters per second, got %v", rate)
	}
	if math.IsNaN(randomness) || math.IsInf(randomness, 0) || randomness < 0 {
		return TypingConfig{}, fmt.Errorf("randomness factor must be >= 0, got %v", randomness)
	}
	if blockPause < 0 {
		return TypingConfig{}, fmt.Errorf("block pause must be >= 0, got %v", blockPause)
	}
	return TypingConfig{
		Rate:       rate,
		Realism:    realism,
		Randomness: randomness,
		BlockPause: blockPause,
	}, nil
}

// TypingEvent is one emitted keystroke: the rune typed, the delay spent
// before it appears, and whether it carried an extra pause (newline or
// statement punctuation).
type TypingEvent struct {
	Rune  rune
	Delay time.Duration
	Pause bool
}

// Typist computes per-keystroke delays. It is deterministic for a fixed
// randomness factor of zero, or for a fixed seed otherwise.
type Typist struct {
	cfg TypingConfig
	rng *rand.Rand
}

// NewTypist returns a Typist for the given config. A nil rng falls back to a
// time-seeded generator; pass a seeded *rand.Rand for reproducible output.
func NewTypist(cfg TypingConfig, rng *rand.Rand) *Typist {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Typist{cfg: cfg, rng: rng}
}

// Delay computes the delay for typing ch after prev, without surrounding
// word context. Pattern speed-ups are limited to two-rune sequences here;
// Events applies keyword patterns as well.
func (t *Typist) Delay(ch, prev rune) time.Duration {
	return secondsToDuration(t.delaySeconds(ch, prev, ""))
}

// delaySeconds is the core of the timing model. tail is the text typed so
// far including ch, used for keyword pattern matching; it may be empty.
func (t *Typist) delaySeconds(ch, prev rune, tail string) float64 {
	base := 1.0 / t.cfg.Rate
	delay := base

	if t.cfg.Realism {
		delay *= keyDifficulty(ch)
		delay *= patternMultiplier(ch, prev, tail)
		if p := pauseAfter(ch); p > 0 {
			delay += p * base
		}
	}

	if t.cfg.Randomness > 0 {
		delay *= t.randomFactor()
	}

	// Humans cannot type infinitely fast, and the renderer cannot handle
	// non-positive delays.
	floor := base * minDelayFraction
	if delay < floor || math.IsNaN(delay) {
		delay = floor
	}
	return delay
}

// randomFactor draws a bounded multiplicative factor centered at 1.0 whose
// spread grows linearly with the randomness factor.
func (t *Typist) randomFactor() float64 {
	g := t.rng.NormFloat64()
	if g > maxGaussianDraw {
		g = maxGaussianDraw
	} else if g < -maxGaussianDraw {
		g = -maxGaussianDraw
	}
	f := 1.0 + randomSpread*t.cfg.Randomness*g
	if f < minRandomFactor {
		f = minRandomFactor
	}
	return f
}

// EventStream lazily yields one TypingEvent per rune of a code block.
type EventStream struct {
	typist *Typist
	runes  []rune
	text   string
	idx    int
}

// Events returns a stream of typing events over code, in document order.
func (t *Typist) Events(code string) *EventStream {
	return &EventStream{typist: t, runes: []rune(code), text: code}
}

// Next returns the next typing event, or ok=false when the block is done.
func (s *EventStream) Next() (TypingEvent, bool) {
	if s.idx >= len(s.runes) {
		return TypingEvent{}, false
	}
	ch := s.runes[s.idx]
	var prev rune
	if s.idx > 0 {
		prev = s.runes[s.idx-1]
	}
	tail := ""
	if s.typist.cfg.Realism {
		start := s.idx + 1 - maxPatternRunes
		if start < 0 {
			start = 0
		}
		tail = string(s.runes[start : s.idx+1])
	}
	delay := s.typist.delaySeconds(ch, prev, tail)
	s.idx++
	return TypingEvent{
		Rune:  ch,
		Delay: secondsToDuration(delay),
		Pause: s.typist.cfg.Realism && pauseAfter(ch) > 0,
	}, true
}

// Remaining reports how many events are left in the stream.
func (s *EventStream) Remaining() int {
	return len(s.runes) - s.idx
}

// seededRNG returns a reproducible generator for a non-zero seed, or nil so
// NewTypist falls back to a time-seeded one.
func seededRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func secondsToDuration(sec float64) time.Duration {
	d := time.Duration(sec * float64(time.Second))
	if d <= 0 {
		d = time.Nanosecond
	}
	return d
}

// pauseAfter returns the pause multiplier applied after a rune, as a
// fraction of the base delay. Newlines pause longest; statement punctuation
// gets a smaller pause. Zero means no pause.
func pauseAfter(r rune) float64 {
	switch r {
	case '\n':
		return newlinePauseFraction
	case '.', ',', ';', ':':
		return punctuationPauseFraction
	}
	return 0
}

// patternMultiplier combines two-rune muscle-memory pairs with keyword and
// slow-pattern matches over the recently typed tail.
func patternMultiplier(ch, prev rune, tail string) float64 {
	mult := 1.0
	if prev != 0 {
		if m, ok := fastPairs[[2]rune{prev, ch}]; ok {
			mult = m
		}
	}
	if tail != "" {
		for _, p := range fastWords {
			if hasSuffixFold(tail, p.text) && p.mult < mult {
				mult = p.mult
			}
		}
		for _, p := range slowPatterns {
			if hasSuffixFold(tail, p.text) && p.mult > mult {
				mult = p.mult
			}
		}
	}
	return mult
}

// hasSuffixFold reports whether s ends with suffix, ASCII case-insensitively
// for the letters of the suffix.
func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := 0; i < len(suffix); i++ {
		a, b := tail[i], suffix[i]
		if a == b {
			continue
		}
		if unicode.ToLower(rune(a)) != unicode.ToLower(rune(b)) {
			return false
		}
	}
	return true
}
