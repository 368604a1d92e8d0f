package casky

import "sync"

// Stats is a read-only snapshot of an engine's running counters.
type Stats struct {
	NumPuts      uint64
	NumGets      uint64
	NumDeletes   uint64
	TotalKeys    uint64
	MemoryBytes  uint64
}

// statCounters holds the live counters behind their own mutex, kept
// independent of the engine lock so Stats() can be read concurrently
// with mutations in thread-safe mode (§4.4).
type statCounters struct {
	mu          sync.Mutex
	numPuts     uint64
	numGets     uint64
	numDeletes  uint64
	totalKeys   uint64
	memoryBytes uint64
}

func (s *statCounters) incPut(bytes uint64) {
	s.mu.Lock()
	s.numPuts++
	s.memoryBytes += bytes
	s.mu.Unlock()
}

func (s *statCounters) incDelete(bytes uint64) {
	s.mu.Lock()
	s.numDeletes++
	if bytes > 0 && s.memoryBytes >= bytes {
		s.memoryBytes -= bytes
	}
	s.mu.Unlock()
}

func (s *statCounters) incGet() {
	s.mu.Lock()
	s.numGets++
	s.mu.Unlock()
}

func (s *statCounters) setTotalKeys(n uint64) {
	s.mu.Lock()
	s.totalKeys = n
	s.mu.Unlock()
}

func (s *statCounters) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		NumPuts:     s.numPuts,
		NumGets:     s.numGets,
		NumDeletes:  s.numDeletes,
		TotalKeys:   s.totalKeys,
		MemoryBytes: s.memoryBytes,
	}
}
