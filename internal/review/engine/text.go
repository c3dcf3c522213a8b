package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const terminal = ".!?"

func WordCount(s string) int { return len(strings.Fields(s)) }

// Truncate keeps at most limit words and makes sure the result ends with
// terminal punctuation. limit <= 0 yields "".
func Truncate(text string, limit int) string {
	words := strings.Fields(text)
	if limit <= 0 || len(words) == 0 {
		return ""
	}
	if len(words) > limit {
		words = words[:limit]
	}
	out := strings.Join(words, " ")
	if !strings.ContainsAny(out[len(out)-1:], terminal) {
		out = strings.TrimRight(out, ",;:-–— ") + "."
	}
	return out
}

// WithOpening prefixes body with "<opening>. ".
func WithOpening(opening, body string) string {
	body = strings.TrimSpace(body)
	opening = strings.TrimSpace(opening)
	if opening == "" {
		return body
	}
	if body == "" {
		return opening + "."
	}
	return opening + ". " + body
}

// WithEnding strips trailing sentence punctuation from text and appends
// ". <ending>".
func WithEnding(text, ending string) string {
	text = strings.TrimRight(strings.TrimSpace(text), terminal+" ")
	ending = strings.TrimSpace(ending)
	switch {
	case ending == "":
		if text == "" {
			return ""
		}
		return text + "."
	case text == "":
		return ending
	}
	return text + ". " + ending
}

// SpliceShop rewrites the body sentence nearest the middle of
// "<opening>. <body>" as "I recently visited <shop> and <sentence>" and
// returns the new body. The opening counts toward the midpoint but is never
// edited. Sentences are split on ". "; fewer than two in total leaves body
// unchanged.
func SpliceShop(opening, body, shop string) (string, bool) {
	shop = strings.TrimSpace(shop)
	body = strings.TrimSpace(body)
	if shop == "" || body == "" {
		return body, false
	}
	sentences := strings.Split(body, ". ")
	lead := 0
	if strings.TrimSpace(opening) != "" {
		lead = 1
	}
	total := lead + len(sentences)
	if total < 2 {
		return body, false
	}
	i := total/2 - lead
	sentences[i] = "I recently visited " + shop + " and " + lowerFirst(sentences[i])
	return strings.Join(sentences, ". "), true
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	// Keep "I" and acronyms as written.
	if next, _ := utf8.DecodeRuneInString(s[n:]); r == 'I' && (next == ' ' || next == '\'' || next == '’') || unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// Compose builds "<opening>. <body>. <ending>" within ceiling words, trimming
// only the body.
func Compose(opening, body, ending string, ceiling int) string {
	budget := ceiling - WordCount(opening) - WordCount(ending)
	if WordCount(body) > budget {
		body = Truncate(body, budget)
	}
	return WithEnding(WithOpening(opening, body), ending)
}
