// Package reviewtest provides in-memory doubles for the review engine's
// collaborators.
package reviewtest

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

type usageKey struct {
	scope review.Scope
	pool  review.Pool
	label string
}

type usageRow struct {
	count    int
	lastUsed time.Time
}

// Store is a concurrency-safe in-memory review.Store.
type Store struct {
	mu      sync.Mutex
	seq     int
	history map[review.Scope][]review.GeneratedText
	usage   map[usageKey]*usageRow

	// Err, when set, is returned by every method.
	Err error
}

var _ review.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		history: map[review.Scope][]review.GeneratedText{},
		usage:   map[usageKey]*usageRow{},
	}
}

// Seed appends history rows as if they had been inserted oldest first.
func (s *Store) Seed(scope review.Scope, texts ...string) {
	for _, text := range texts {
		_ = s.insert(scope, text, "", time.Now())
	}
}

func (s *Store) InsertGeneratedText(ctx context.Context, scope review.Scope, text string, fp review.Fingerprint) error {
	if s.Err != nil {
		return s.Err
	}
	return s.insert(scope, text, fp.Structure, time.Now())
}

func (s *Store) insert(scope review.Scope, text, structure string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	row := review.GeneratedText{
		ID:        "gt-" + strconv.Itoa(s.seq),
		Scope:     scope,
		Text:      text,
		Structure: structure,
		CreatedAt: at,
	}
	s.history[scope] = append(s.history[scope], row)
	return nil
}

func (s *Store) RecentGeneratedTexts(ctx context.Context, scope review.Scope, limit int) ([]review.GeneratedText, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.history[scope]
	out := make([]review.GeneratedText, 0, min(len(rows), max(limit, 0)))
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}

// History returns every stored row for scope, oldest first.
func (s *Store) History(scope review.Scope) []review.GeneratedText {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]review.GeneratedText(nil), s.history[scope]...)
}

func (s *Store) GetUsage(ctx context.Context, scope review.Scope, pool review.Pool, label string) (int, bool, error) {
	if s.Err != nil {
		return 0, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.usage[usageKey{scope, pool, label}]
	if !ok {
		return 0, false, nil
	}
	return row.count, true, nil
}

func (s *Store) IncrementUsage(ctx context.Context, scope review.Scope, pool review.Pool, label string, at time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	if !pool.Valid() {
		return errors.New("unknown pool " + string(pool))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := usageKey{scope, pool, label}
	row, ok := s.usage[k]
	if !ok {
		row = &usageRow{}
		s.usage[k] = row
	}
	row.count++
	row.lastUsed = at
	return nil
}

// LeastUsed orders by count, then last use, then label.
func (s *Store) LeastUsed(ctx context.Context, scope review.Scope, pool review.Pool) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	type cand struct {
		label string
		row   *usageRow
	}
	var cands []cand
	for k, row := range s.usage {
		if k.scope == scope && k.pool == pool {
			cands = append(cands, cand{k.label, row})
		}
	}
	if len(cands) == 0 {
		return "", nil
	}
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.row.count != b.row.count {
			return a.row.count < b.row.count
		}
		if !a.row.lastUsed.Equal(b.row.lastUsed) {
			return a.row.lastUsed.Before(b.row.lastUsed)
		}
		return a.label < b.label
	})
	return cands[0].label, nil
}

// Usage returns the count for label, zero when absent.
func (s *Store) Usage(scope review.Scope, pool review.Pool, label string) int {
	n, _, _ := s.GetUsage(context.Background(), scope, pool, label)
	return n
}

// Generator replays scripted replies in order and records every prompt.
// Once the script runs out the last reply repeats.
type Generator struct {
	mu      sync.Mutex
	Replies []string
	Errs    []error
	Prompts []string
}

func NewGenerator(replies ...string) *Generator {
	return &Generator{Replies: replies}
}

func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := len(g.Prompts)
	g.Prompts = append(g.Prompts, prompt)
	if i < len(g.Errs) && g.Errs[i] != nil {
		return "", g.Errs[i]
	}
	if len(g.Replies) == 0 {
		return "", nil
	}
	if i >= len(g.Replies) {
		i = len(g.Replies) - 1
	}
	return g.Replies[i], nil
}

func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Prompts)
}

// Random is a deterministic review.Random. Float64 and IntN replay their
// queues, falling back to 0.99 and 0; Shuffle leaves order untouched.
type Random struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
}

func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Floats) == 0 {
		return 0.99
	}
	f := r.Floats[0]
	r.Floats = r.Floats[1:]
	return f
}

func (r *Random) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *Random) Shuffle(n int, swap func(i, j int)) {}
