package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/appetiteclub/gourmet/internal/storage"
	"github.com/google/uuid"
)

// MockKV wraps an in-memory KV and can be told to fail.
type MockKV struct {
	*storage.Memory
	SetFunc func(ctx context.Context, key string, value []byte) error
	GetFunc func(ctx context.Context, key string) ([]byte, error)
	Writes  map[string]int
	Keys    []string
}

func NewMockKV() *MockKV {
	return &MockKV{Memory: storage.NewMemory(), Writes: make(map[string]int)}
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return m.Memory.Get(ctx, key)
}

func (m *MockKV) Set(ctx context.Context, key string, value []byte) error {
	m.Writes[key]++
	m.Keys = append(m.Keys, key)
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	return m.Memory.Set(ctx, key, value)
}

// MockPublisher records published messages per topic.
type MockPublisher struct {
	mu       sync.Mutex
	Messages map[string][][]byte
	Err      error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Messages: make(map[string][][]byte)}
}

func (p *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Messages[topic] = append(p.Messages[topic], msg)
	return nil
}

func (p *MockPublisher) Count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Messages[topic])
}

// testClock is a settable clock.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// sequentialIDs yields predictable ids.
func sequentialIDs() func() uuid.UUID {
	var n uint16
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[14] = byte(n >> 8)
		id[15] = byte(n)
		return id
	}
}

var errStorageDown = errors.New("storage down")
