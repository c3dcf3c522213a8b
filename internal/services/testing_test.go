package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos/testutil"
	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type testDeps struct {
	tx          *gorm.DB
	log         *logger.Logger
	clients     repos.ClientRepo
	clientTypes repos.ClientTypeRepo
	tokens      repos.QRTokenRepo
	logs        repos.QRReviewLogRepo
}

// newTestDeps binds every repo to a rolled-back transaction.
func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	return testDeps{
		tx:          tx,
		log:         log,
		clients:     repos.NewClientRepo(tx, log),
		clientTypes: repos.NewClientTypeRepo(tx, log),
		tokens:      repos.NewQRTokenRepo(tx, log),
		logs:        repos.NewQRReviewLogRepo(tx, log),
	}
}

func (d testDeps) clientService(cache *fakeProfileCache, now time.Time) ClientService {
	guard := StatusGuard{Location: DefaultServiceLocation, Now: func() time.Time { return now }}
	if cache == nil {
		return NewClientService(d.log, d.clients, d.clientTypes, nil, guard)
	}
	return NewClientService(d.log, d.clients, d.clientTypes, cache, guard)
}

type fakeProfileCache struct {
	mu          sync.Mutex
	rows        map[uuid.UUID]types.Client
	gets, hits  int
	invalidated []uuid.UUID
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{rows: map[uuid.UUID]types.Client{}}
}

func (f *fakeProfileCache) Get(ctx context.Context, id uuid.UUID) (*types.Client, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	c, ok := f.rows[id]
	if !ok {
		return nil, false, nil
	}
	f.hits++
	return &c, true, nil
}

func (f *fakeProfileCache) Set(ctx context.Context, c *types.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeProfileCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	f.invalidated = append(f.invalidated, id)
	return nil
}

func intPtr(v int) *int { return &v }
