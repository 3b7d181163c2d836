package requirements

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// bucket is one keyword set that maps to a value when any keyword appears.
type bucket[T any] struct {
	value    T
	keywords []string
}

// computeBuckets are checked in priority order; the first hit wins.
var computeBuckets = []bucket[ComputeLevel]{
	{ComputeHigh, []string{"intensive", "heavy", "complex"}},
	{ComputeMedium, []string{"moderate", "average", "standard"}},
	{ComputeLow, []string{"light", "simple", "basic"}},
}

var (
	scalabilityKeywords  = []string{"scale", "scaling", "scalable", "elastic", "burst"}
	availabilityKeywords = []string{"high availability", "uptime", "production", "mission-critical"}
	securityKeywords     = []string{"confidential", "encrypted", "compliance", "secure", "private"}
	gpuKeywords          = []string{"gpu", "cuda", "rendering", "training", "inference"}
	memoryKeywords       = []string{"memory", "large model"}
	storageKeywords      = []string{"storage", "dataset", "database"}
)

var budgetBuckets = []bucket[string]{
	{"low", []string{"cheap", "affordable", "low cost", "low-cost", "tight budget"}},
	{"high", []string{"premium", "unlimited budget"}},
}

// folder performs Unicode case folding. A cases.Caser keeps state, so every
// call site gets its own.
func folder() cases.Caser {
	return cases.Fold()
}

// text is input prepared for case-insensitive keyword search.
type text struct {
	folded string
	caser  cases.Caser
}

func newText(parts ...string) text {
	c := folder()
	return text{
		folded: c.String(strings.Join(parts, " ")),
		caser:  c,
	}
}

// containsAny reports whether any keyword is a substring of the text.
func (t text) containsAny(keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(t.folded, t.caser.String(k)) {
			return true
		}
	}
	return false
}

func classify[T any](t text, buckets []bucket[T], fallback T) T {
	for _, b := range buckets {
		if t.containsAny(b.keywords) {
			return b.value
		}
	}
	return fallback
}

// Tokenize splits s into case-folded words. Letters, digits and inner
// hyphens belong to a word; everything else separates words.
func Tokenize(s string) []string {
	folded := folder().String(s)
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	out := words[:0]
	for _, w := range words {
		w = strings.Trim(w, "-")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// ContainsPhrase reports whether the words of phrase appear consecutively in
// tokens. Hyphenated words also match on their parts, so "cost" is found in
// "cost-effective" and "custom built" in "custom-built".
func ContainsPhrase(tokens []string, phrase string) bool {
	want := Tokenize(phrase)
	if len(want) == 0 {
		return false
	}
	return containsRun(tokens, want) || containsRun(splitHyphens(tokens), splitHyphens(want))
}

func containsRun(tokens, want []string) bool {
	if len(want) > len(tokens) {
		return false
	}
	for i := 0; i+len(want) <= len(tokens); i++ {
		match := true
		for j, w := range want {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func splitHyphens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		for part := range strings.SplitSeq(t, "-") {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
