package localstore

import (
	"log/slog"
	"sync"
)

// Writer serializes fire-and-forget persistence writes. Mutations on
// the UI goroutine call Schedule and return immediately; a single
// background goroutine issues the writes in scheduling order, so a slow
// write can never land after a later one and clobber fresher state.
// Scheduling a key that is still queued replaces its payload in place:
// the store only ever sees the latest snapshot (last-write-wins).
type Writer struct {
	kv  KV
	log *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*write
	index   map[string]*write
	writing bool
	closed  bool
}

type write struct {
	key     string
	payload []byte // nil means remove
}

func NewWriter(kv KV, log *slog.Logger) *Writer {
	w := &Writer{
		kv:    kv,
		log:   log,
		index: make(map[string]*write),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Schedule queues a write of payload under key. A nil payload queues a
// removal. Never blocks on I/O.
func (w *Writer) Schedule(key string, payload []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if wr, ok := w.index[key]; ok {
		wr.payload = payload
		return
	}
	wr := &write{key: key, payload: payload}
	w.queue = append(w.queue, wr)
	w.index[key] = wr
	w.cond.Broadcast()
}

// Flush blocks until every scheduled write has been issued. Used by
// tests and at app teardown.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.queue) > 0 || w.writing {
		w.cond.Wait()
	}
}

// Close drains the queue and stops the background goroutine.
func (w *Writer) Close() {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	for len(w.queue) > 0 || w.writing {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

func (w *Writer) run() {
	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.queue) == 0 && w.closed {
			w.mu.Unlock()
			return
		}
		wr := w.queue[0]
		w.queue = w.queue[1:]
		delete(w.index, wr.key)
		w.writing = true
		key, payload := wr.key, wr.payload
		w.mu.Unlock()

		var err error
		if payload == nil {
			err = w.kv.Remove(key)
		} else {
			err = w.kv.Set(key, payload)
		}
		if err != nil && w.log != nil {
			// PersistenceError: log only, the in-memory state already won.
			w.log.Warn("localstore write failed", "key", key, "error", err)
		}

		w.mu.Lock()
		w.writing = false
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}
