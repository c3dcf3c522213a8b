// Package fingerprint derives comparable features from review text.
package fingerprint

import (
	"regexp"
	"strings"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

const phraseWords = 6

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	wordFinder    = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

var meaningBuckets = map[string][]string{
	review.BucketEmotion:    {"happy", "satisfied", "comfortable", "relaxed", "impressed", "great"},
	review.BucketService:    {"staff", "service", "team", "helpful", "support"},
	review.BucketExperience: {"experience", "visit", "time", "process"},
}

// Of fingerprints text. It never fails; blank input yields an empty
// fingerprint.
func Of(text string) review.Fingerprint {
	sentences := Sentences(text)
	tokens := Tokens(text)

	fp := review.Fingerprint{
		Structure: Structure(sentences),
		Words:     WordSet(tokens),
		Meaning:   Meaning(tokens),
	}
	if len(sentences) > 0 {
		first := Tokens(sentences[0])
		if len(first) > phraseWords {
			first = first[:phraseWords]
		}
		fp.Opening = strings.Join(first, " ")

		last := Tokens(sentences[len(sentences)-1])
		if len(last) > phraseWords {
			last = last[len(last)-phraseWords:]
		}
		fp.Ending = strings.Join(last, " ")
	}
	return fp
}

// Sentences splits on runs of terminal punctuation and drops blank pieces.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Tokens returns the lowercase word tokens of text, in order.
func Tokens(text string) []string {
	return wordFinder.FindAllString(strings.ToLower(text), -1)
}

func WordSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// SizeClass maps a sentence word count to S, M or L.
func SizeClass(words int) string {
	switch {
	case words <= 6:
		return "S"
	case words <= 14:
		return "M"
	default:
		return "L"
	}
}

func Structure(sentences []string) string {
	pattern := make([]string, 0, len(sentences))
	for _, s := range sentences {
		pattern = append(pattern, SizeClass(len(strings.Fields(s))))
	}
	return strings.Join(pattern, "-")
}

// Meaning counts tokens that fall into each semantic bucket. Every bucket is
// present in the result, zero or not.
func Meaning(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	sig := make(map[string]int, len(meaningBuckets))
	for bucket, vocab := range meaningBuckets {
		n := 0
		for _, v := range vocab {
			n += counts[v]
		}
		sig[bucket] = n
	}
	return sig
}
