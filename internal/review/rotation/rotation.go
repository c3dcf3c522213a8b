// Package rotation picks reusable text fragments per scope while keeping any
// one fragment from being overused.
package rotation

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
)

const DefaultCap = 10

// FragmentSource produces a fresh fragment on demand. Implementations return
// "" with a nil error when they have nothing usable.
type FragmentSource interface {
	Fragment(ctx context.Context, industry string, rating int) (string, error)
}

// Pool is an immutable set of fragments grouped into buckets.
type Pool struct {
	Name          review.Pool
	Cap           int
	Buckets       map[string][]string
	DefaultBucket string
	Source        FragmentSource
}

func (p Pool) bucket(name string) []string {
	if frags := p.Buckets[name]; len(frags) > 0 {
		return frags
	}
	return p.Buckets[p.DefaultBucket]
}

type Manager struct {
	pool  Pool
	store review.UsageStore
	rnd   review.Random
	log   *logger.Logger
	now   func() time.Time
}

func NewManager(pool Pool, store review.UsageStore, rnd review.Random, baseLog *logger.Logger) *Manager {
	if pool.Cap <= 0 {
		pool.Cap = DefaultCap
	}
	if rnd == nil {
		rnd = review.DefaultRandom
	}
	return &Manager{
		pool:  pool,
		store: store,
		rnd:   rnd,
		log:   baseLog.With("component", "rotation", "pool", string(pool.Name)),
		now:   time.Now,
	}
}

func (m *Manager) Pool() Pool { return m.pool }

// Pick returns a fragment for scope and records its use. The pool's dynamic
// source is tried first when present; its failures never surface.
func (m *Manager) Pick(ctx context.Context, scope review.Scope, bucket string, rating int) (string, error) {
	if m.pool.Source != nil {
		frag, err := m.pool.Source.Fragment(ctx, scope.Industry, rating)
		switch {
		case err != nil:
			m.log.Warn("dynamic fragment failed; using static pool", "error", err, "scope", scope.String())
		case frag != "":
			return frag, m.record(ctx, scope, frag)
		}
	}

	frag, err := m.pickStatic(ctx, scope, bucket)
	if err != nil {
		return "", err
	}
	if frag == "" {
		return "", nil
	}
	return frag, m.record(ctx, scope, frag)
}

func (m *Manager) pickStatic(ctx context.Context, scope review.Scope, bucket string) (string, error) {
	frags := slices.Clone(m.pool.bucket(bucket))
	if len(frags) == 0 {
		return "", nil
	}
	m.rnd.Shuffle(len(frags), func(i, j int) { frags[i], frags[j] = frags[j], frags[i] })

	counts := make(map[string]int, len(frags))
	for _, f := range frags {
		n, _, err := m.store.GetUsage(ctx, scope, m.pool.Name, f)
		if err != nil {
			return "", fmt.Errorf("get %s usage: %w", m.pool.Name, err)
		}
		if n < m.pool.Cap {
			return f, nil
		}
		counts[f] = n
	}

	least, err := m.store.LeastUsed(ctx, scope, m.pool.Name)
	if err != nil {
		return "", fmt.Errorf("least used %s: %w", m.pool.Name, err)
	}
	if least == "" {
		return frags[m.rnd.IntN(len(frags))], nil
	}
	if _, ok := counts[least]; ok {
		return least, nil
	}
	// The scope's least-used row belongs to another bucket or to a dynamic
	// fragment; stay inside this bucket.
	best := frags[0]
	for _, f := range frags[1:] {
		if counts[f] < counts[best] {
			best = f
		}
	}
	return best, nil
}

func (m *Manager) record(ctx context.Context, scope review.Scope, frag string) error {
	if err := m.store.IncrementUsage(ctx, scope, m.pool.Name, frag, m.now()); err != nil {
		return fmt.Errorf("record %s usage: %w", m.pool.Name, err)
	}
	return nil
}
