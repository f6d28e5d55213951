package session

import "sync"

// Store indexes live conversation logs by session id. Implementations must
// be safe for concurrent use; cleanup sweeps iterate over Snapshot so they
// never hold the index lock across a whole sweep.
type Store interface {
	Get(id string) (*Log, bool)
	Put(log *Log)
	Delete(id string)
	Snapshot() []*Log
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	logs map[string]*Log
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{logs: make(map[string]*Log)}
}

func (s *MemoryStore) Get(id string) (*Log, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log, ok := s.logs[id]
	return log, ok
}

func (s *MemoryStore) Put(log *Log) {
	if log == nil {
		return
	}
	s.mu.Lock()
	s.logs[log.ID()] = log
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.logs, id)
	s.mu.Unlock()
}

// Snapshot returns the current set of logs in no particular order.
func (s *MemoryStore) Snapshot() []*Log {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Log, 0, len(s.logs))
	for _, log := range s.logs {
		out = append(out, log)
	}
	return out
}
