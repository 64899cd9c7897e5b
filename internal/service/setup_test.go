package service

import (
	"RedBlack/internal/pkg/database/dbtest"
	"RedBlack/internal/repository"
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

const testTimeout = 5 * time.Second

type testEnv struct {
	db    *gorm.DB
	repos *repository.Repos
	tx    repository.TxManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return envFor(dbtest.New(t))
}

func envFor(db *gorm.DB) *testEnv {
	return &testEnv{
		db:    db,
		repos: repository.NewRepos(db),
		tx:    repository.NewTxManager(db),
	}
}

// onBackends sqlite 单连接下事务串行；设置了 MySQL 时用多连接跑一遍，行锁真正参与竞争
func onBackends(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, newTestEnv(t)) })
	t.Run("mysql", func(t *testing.T) { fn(t, envFor(dbtest.NewMySQL(t, 16))) })
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func (f *fakeLocker) TryLock(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.held == nil {
		f.held = map[string]bool{}
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Unlock(_ context.Context, key, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
}

type fakeViews struct {
	mu    sync.Mutex
	views map[string]int
}

func (f *fakeViews) RecordView(_ context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.views == nil {
		f.views = map[string]int{}
	}
	f.views[postID]++
	return nil
}

type fakeSearcher struct {
	ids   []string
	total int64
	err   error

	gotKeyword string
	gotFrom    int
	gotSize    int
}

func (f *fakeSearcher) SearchPostIDs(_ context.Context, keyword string, from, size int) ([]string, int64, error) {
	f.gotKeyword, f.gotFrom, f.gotSize = keyword, from, size
	return f.ids, f.total, f.err
}
