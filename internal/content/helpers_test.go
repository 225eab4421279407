package content_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

var errBackendDown = errors.New("backend down")

// flakyBackend wraps a memory backend and fails saves while broken is set.
type flakyBackend struct {
	*snapshot.Memory
	broken atomic.Bool
	saves  atomic.Int32
}

func newFlakyBackend() *flakyBackend {
	return &flakyBackend{Memory: snapshot.NewMemory()}
}

func (b *flakyBackend) Save(ctx context.Context, key string, data []byte) error {
	if b.broken.Load() {
		return errBackendDown
	}
	b.saves.Add(1)
	return b.Memory.Save(ctx, key, data)
}

func fixedClock() func() time.Time {
	t := time.Date(2025, 5, 17, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func sequentialIDs() func() string {
	var n atomic.Int32
	return func() string { return fmt.Sprintf("id-%d", n.Add(1)) }
}

func testOptions() []content.Option {
	return []content.Option{
		content.WithClock(fixedClock()),
		content.WithIDGenerator(sequentialIDs()),
	}
}

func ptr[T any](v T) *T { return &v }
