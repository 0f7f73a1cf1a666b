package server

import (
	"sync"

	"github.com/inkwell-dev/inkwell/pkg/editor"
)

// notifySink wraps the host field store: every accepted write is
// counted and fanned out to stream watchers, one message per committed
// transaction. Writes to absent fields stay silent no-ops, they are
// only counted.
type notifySink struct {
	inner   *editor.MemorySink
	metrics *Metrics

	mu       sync.Mutex
	watchers map[string]map[int]chan string
	nextID   int
}

func newNotifySink(metrics *Metrics) *notifySink {
	return &notifySink{
		inner:    editor.NewMemorySink(),
		metrics:  metrics,
		watchers: make(map[string]map[int]chan string),
	}
}

// SetField implements editor.FieldSink.
func (s *notifySink) SetField(id, value string) bool {
	ok := s.inner.SetField(id, value)
	if !ok {
		s.metrics.DroppedWrites.Inc()
		return false
	}
	s.metrics.SyncWrites.Inc()

	s.mu.Lock()
	for _, ch := range s.watchers[id] {
		select {
		case ch <- value:
		default:
			// A stalled watcher never blocks the editor.
		}
	}
	s.mu.Unlock()
	return true
}

// Get returns a field's current value.
func (s *notifySink) Get(id string) (string, bool) {
	return s.inner.Get(id)
}

// AddField creates the host field an instance binds to.
func (s *notifySink) AddField(id string) {
	s.inner.AddField(id)
}

// RemoveField drops a field; later writes become no-ops.
func (s *notifySink) RemoveField(id string) {
	s.inner.RemoveField(id)
}

// Watch subscribes to a field's writes. The returned cancel must be
// called when the subscriber goes away.
func (s *notifySink) Watch(id string) (<-chan string, func()) {
	ch := make(chan string, 16)
	s.mu.Lock()
	if s.watchers[id] == nil {
		s.watchers[id] = make(map[int]chan string)
	}
	wid := s.nextID
	s.nextID++
	s.watchers[id][wid] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.watchers[id], wid)
		s.mu.Unlock()
	}
	return ch, cancel
}
