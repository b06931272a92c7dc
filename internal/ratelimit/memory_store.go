package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

type memoryWindow struct {
	hits    int64
	resetAt time.Time
}

// MemoryStore keeps the windows in the process. Expired windows are removed by a job that
// runs once per window while the store is started.
type MemoryStore struct {
	window    time.Duration
	now       func() time.Time
	lock      sync.Mutex
	windows   map[string]*memoryWindow
	scheduler *gocron.Scheduler
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	return &MemoryStore{
		window:  window,
		now:     time.Now,
		windows: map[string]*memoryWindow{},
	}
}

func (m *MemoryStore) Increment(ctx context.Context, key string) (Window, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(m.window)}
		m.windows[key] = w
	}
	w.hits++
	return Window{Hits: w.hits, ResetAt: w.resetAt}, nil
}

func (m *MemoryStore) Decrement(ctx context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	w, ok := m.windows[key]
	if ok && w.hits > 0 && m.now().Before(w.resetAt) {
		w.hits--
	}
	return nil
}

// Purge removes the expired windows and returns how many were removed.
func (m *MemoryStore) Purge() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	now := m.now()
	removed := 0
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.windows)
}

// Start schedules the purge job.
func (m *MemoryStore) Start() error {
	s := gocron.NewScheduler(time.UTC)
	_, err := s.Every(m.window).Do(func() {
		removed := m.Purge()
		slog.Debug("RATE LIMITER", "message", "purged expired windows", "count", removed)
	})
	if err != nil {
		return err
	}
	s.StartAsync()
	m.scheduler = s
	return nil
}

func (m *MemoryStore) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}
