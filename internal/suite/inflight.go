package suite

import (
	"sort"
	"strings"
	"sync"
)

// inflight is the set of cases currently running, read by heartbeats.
type inflight struct {
	mu    sync.Mutex
	cases map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{cases: make(map[string]struct{})}
}

func (f *inflight) add(rel string) {
	f.mu.Lock()
	f.cases[rel] = struct{}{}
	f.mu.Unlock()
}

func (f *inflight) remove(rel string) {
	f.mu.Lock()
	delete(f.cases, rel)
	f.mu.Unlock()
}

// String lists running cases sorted, or "" when idle.
func (f *inflight) String() string {
	f.mu.Lock()
	names := make([]string, 0, len(f.cases))
	for rel := range f.cases {
		names = append(names, rel)
	}
	f.mu.Unlock()
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return "running: " + strings.Join(names, ", ")
}
