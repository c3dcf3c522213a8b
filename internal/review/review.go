// Package review holds the types shared by the duplicate-avoidance and
// rotation engine: scopes, fingerprints, rotation pool names and the store
// contracts the engine depends on.
package review

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Scope is the isolation unit for history and usage state.
type Scope struct {
	BusinessID string
	Industry   string
}

var ErrInvalidScope = errors.New("scope requires business id and industry")

func NewScope(businessID, industry string) (Scope, error) {
	s := Scope{BusinessID: strings.TrimSpace(businessID), Industry: strings.TrimSpace(industry)}
	if err := s.Validate(); err != nil {
		return Scope{}, err
	}
	return s, nil
}

func (s Scope) Validate() error {
	if s.BusinessID == "" || s.Industry == "" {
		return ErrInvalidScope
	}
	return nil
}

func (s Scope) String() string { return s.BusinessID + "/" + s.Industry }

// Meaning bucket names.
const (
	BucketEmotion    = "emotion"
	BucketService    = "service"
	BucketExperience = "experience"
)

// Fingerprint is the comparable summary of a text.
type Fingerprint struct {
	Structure string              `json:"structure"`
	Opening   string              `json:"opening"`
	Ending    string              `json:"ending"`
	Words     map[string]struct{} `json:"-"`
	Meaning   map[string]int      `json:"meaning"`
}

// Empty reports whether the fingerprint was derived from a text with no
// sentences.
func (f Fingerprint) Empty() bool {
	return f.Structure == "" && len(f.Words) == 0
}

// GeneratedText is one accepted review in a scope's history.
type GeneratedText struct {
	ID        string
	Scope     Scope
	Text      string
	Structure string
	CreatedAt time.Time
}

// Pool names a usage-counted rotation table.
type Pool string

const (
	PoolOpening   Pool = "opening"
	PoolEnding    Pool = "ending"
	PoolNarrative Pool = "narrative"
)

func (p Pool) Valid() bool {
	switch p {
	case PoolOpening, PoolEnding, PoolNarrative:
		return true
	}
	return false
}

// HistoryStore reads and appends a scope's generated texts.
type HistoryStore interface {
	InsertGeneratedText(ctx context.Context, scope Scope, text string, fp Fingerprint) error
	RecentGeneratedTexts(ctx context.Context, scope Scope, limit int) ([]GeneratedText, error)
}

// UsageStore keeps per-scope usage counters for each pool.
//
// GetUsage returns found=false when no row exists. IncrementUsage inserts the
// row at 1 or adds 1 to it; counts never decrease. LeastUsed returns "" when
// the scope has no rows in the pool.
type UsageStore interface {
	GetUsage(ctx context.Context, scope Scope, pool Pool, label string) (count int, found bool, err error)
	IncrementUsage(ctx context.Context, scope Scope, pool Pool, label string, at time.Time) error
	LeastUsed(ctx context.Context, scope Scope, pool Pool) (string, error)
}

// Store is everything the engine needs from persistence.
type Store interface {
	HistoryStore
	UsageStore
}

// Generator is the external text-generation capability.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Random is the randomness the engine consumes. *rand.Rand from math/rand/v2
// satisfies it; DefaultRandom is safe for concurrent use.
type Random interface {
	Float64() float64
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}
