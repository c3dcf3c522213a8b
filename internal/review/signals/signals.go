// Package signals ranks a tenant's profile signals against what the customer
// actually wrote about.
package signals

import (
	"sort"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/fingerprint"
)

// Hard caps applied to ranked output before it reaches a prompt.
const (
	MaxContexts = 2
	MaxTrust    = 1
	MaxServices = 1
	MaxAreas    = 1
	MaxSEO      = 1
)

// Profile holds the tenant-supplied candidate lists.
type Profile struct {
	Contexts     []string `json:"contexts"`
	TrustSignals []string `json:"trust_signals"`
	Services     []string `json:"services"`
	Areas        []string `json:"areas"`
	SEOKeywords  []string `json:"seo_keywords"`
}

type Input struct {
	Product string
	Area    string
	Profile Profile
}

type Ranked struct {
	Contexts     []string `json:"contexts"`
	TrustSignals []string `json:"trust_signals"`
	Services     []string `json:"services"`
	Areas        []string `json:"areas"`
	SEOKeywords  []string `json:"seo_keywords"`
}

// Rank scores every candidate by how many tokens it shares with the product
// and area text and keeps the best non-zero one per list. One SEO keyword may
// be chosen at random; relevance does not apply to it.
func Rank(in Input, rnd review.Random) Ranked {
	if rnd == nil {
		rnd = review.DefaultRandom
	}
	base := fingerprint.WordSet(fingerprint.Tokens(in.Product + " " + in.Area))

	out := Ranked{
		Contexts:     top(in.Profile.Contexts, base, 1),
		TrustSignals: top(in.Profile.TrustSignals, base, 1),
		Services:     top(in.Profile.Services, base, 1),
		Areas:        top(in.Profile.Areas, base, 1),
	}
	if seo := nonBlank(in.Profile.SEOKeywords); len(seo) > 0 {
		out.SEOKeywords = []string{seo[rnd.IntN(len(seo))]}
	}
	return out
}

// Score is the size of the intersection between the candidate's tokens and
// base.
func Score(candidate string, base map[string]struct{}) int {
	n := 0
	for w := range fingerprint.WordSet(fingerprint.Tokens(candidate)) {
		if _, ok := base[w]; ok {
			n++
		}
	}
	return n
}

type scored struct {
	text  string
	score int
}

func top(candidates []string, base map[string]struct{}, k int) []string {
	var hits []scored
	for _, c := range nonBlank(candidates) {
		if s := Score(c, base); s > 0 {
			hits = append(hits, scored{c, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > k {
		hits = hits[:k]
	}
	if len(hits) == 0 {
		return nil
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.text
	}
	return out
}

// Capped trims every list to its hard cap.
func (r Ranked) Capped() Ranked {
	return Ranked{
		Contexts:     capList(r.Contexts, MaxContexts),
		TrustSignals: capList(r.TrustSignals, MaxTrust),
		Services:     capList(r.Services, MaxServices),
		Areas:        capList(r.Areas, MaxAreas),
		SEOKeywords:  capList(r.SEOKeywords, MaxSEO),
	}
}

func (r Ranked) Empty() bool {
	return len(r.Contexts)+len(r.TrustSignals)+len(r.Services)+len(r.Areas)+len(r.SEOKeywords) == 0
}

func capList(in []string, n int) []string {
	if len(in) > n {
		return in[:n:n]
	}
	return in
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if len(fingerprint.Tokens(s)) > 0 {
			out = append(out, s)
		}
	}
	return out
}
