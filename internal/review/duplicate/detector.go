// Package duplicate flags candidate texts that are too close to a scope's
// recent history.
package duplicate

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/fingerprint"
)

const (
	DefaultTextThreshold    = 0.32
	DefaultMeaningThreshold = 0.6
	DefaultWindow           = 60
	DefaultPrefixChars      = 80
)

// Reasons reported in a Verdict.
const (
	ReasonStructure = "structure"
	ReasonOpening   = "opening"
	ReasonEnding    = "ending"
	ReasonText      = "text_similarity"
	ReasonMeaning   = "meaning_similarity"
	ReasonPrefix    = "prefix"
)

// Policy tunes the detector. Zero fields take the defaults.
type Policy struct {
	TextThreshold    float64
	MeaningThreshold float64
	Window           int
}

func (p Policy) withDefaults() Policy {
	if p.TextThreshold <= 0 {
		p.TextThreshold = DefaultTextThreshold
	}
	if p.MeaningThreshold <= 0 {
		p.MeaningThreshold = DefaultMeaningThreshold
	}
	if p.Window <= 0 {
		p.Window = DefaultWindow
	}
	return p
}

type Verdict struct {
	Duplicate bool
	Reason    string
	MatchedID string
	Score     float64
}

type Detector struct {
	store  review.HistoryStore
	policy Policy
}

func NewDetector(store review.HistoryStore, policy Policy) *Detector {
	return &Detector{store: store, policy: policy.withDefaults()}
}

func (d *Detector) Policy() Policy { return d.policy }

// Check compares text against the scope's most recent history window.
func (d *Detector) Check(ctx context.Context, scope review.Scope, text string) (Verdict, error) {
	rows, err := d.store.RecentGeneratedTexts(ctx, scope, d.policy.Window)
	if err != nil {
		return Verdict{}, fmt.Errorf("load history: %w", err)
	}
	return Compare(fingerprint.Of(text), rows, d.policy), nil
}

func (d *Detector) IsDuplicate(ctx context.Context, scope review.Scope, text string) (bool, error) {
	v, err := d.Check(ctx, scope, text)
	return v.Duplicate, err
}

// Compare runs the rules against history in order and stops at the first
// match. Stored structure strings are preferred over recomputing them.
func Compare(candidate review.Fingerprint, history []review.GeneratedText, policy Policy) Verdict {
	policy = policy.withDefaults()
	if candidate.Empty() {
		return Verdict{}
	}
	for _, row := range history {
		old := fingerprint.Of(row.Text)
		if row.Structure != "" {
			old.Structure = row.Structure
		}
		if v, ok := match(candidate, old, policy); ok {
			v.MatchedID = row.ID
			return v
		}
	}
	return Verdict{}
}

func match(cand, old review.Fingerprint, policy Policy) (Verdict, bool) {
	if cand.Structure != "" && cand.Structure == old.Structure {
		return Verdict{Duplicate: true, Reason: ReasonStructure, Score: 1}, true
	}
	if cand.Opening != "" && cand.Opening == old.Opening {
		return Verdict{Duplicate: true, Reason: ReasonOpening, Score: 1}, true
	}
	if cand.Ending != "" && cand.Ending == old.Ending {
		return Verdict{Duplicate: true, Reason: ReasonEnding, Score: 1}, true
	}
	if s := Jaccard(cand.Words, old.Words); s > policy.TextThreshold {
		return Verdict{Duplicate: true, Reason: ReasonText, Score: s}, true
	}
	if s := MeaningOverlap(cand.Meaning, old.Meaning); s > policy.MeaningThreshold {
		return Verdict{Duplicate: true, Reason: ReasonMeaning, Score: s}, true
	}
	return Verdict{}, false
}

// Jaccard is asymmetric: the intersection is divided by the candidate's own
// cardinality, so a short text that repeats most of a longer one still scores
// high.
func Jaccard(candidate, old map[string]struct{}) float64 {
	if len(candidate) == 0 || len(old) == 0 {
		return 0
	}
	inter := 0
	for w := range candidate {
		if _, ok := old[w]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(candidate))
}

// MeaningOverlap is the sum of per-bucket minimums over the candidate's
// total bucket count (floor 1).
func MeaningOverlap(candidate, old map[string]int) float64 {
	common, total := 0, 0
	for bucket, n := range candidate {
		total += n
		common += min(n, old[bucket])
	}
	return float64(common) / float64(max(total, 1))
}

// PrefixMatch reports the first history row whose leading n characters
// appear verbatim inside text.
func PrefixMatch(history []review.GeneratedText, text string, n int) (review.GeneratedText, bool) {
	if n <= 0 {
		n = DefaultPrefixChars
	}
	for _, row := range history {
		prefix := leadingRunes(row.Text, n)
		if strings.TrimSpace(prefix) == "" {
			continue
		}
		if strings.Contains(text, prefix) {
			return row, true
		}
	}
	return review.GeneratedText{}, false
}

func leadingRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
