// Package profiling accumulates wall-clock time per named operation across
// goroutines. Totals grow until Reset.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type entry struct {
	total time.Duration
	calls int
}

var (
	mu      sync.Mutex
	entries = make(map[string]entry)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("bakery.Bake")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := entries[name]
		e.total += d
		e.calls++
		entries[name] = e
		mu.Unlock()
	}
}

// Reset clears all totals.
func Reset() {
	mu.Lock()
	clear(entries)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(entries))
	for k, e := range entries {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was tracked since the last Reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return entries[name].calls
}

// TopN formats the n largest totals, longest first.
// Example: "meshing.Rebuild:4.2ms x8, model.Bake:2.1ms x31"
func TopN(n int) string {
	mu.Lock()
	type pair struct {
		name string
		entry
	}
	list := make([]pair, 0, len(entries))
	for k, e := range entries {
		list = append(list, pair{name: k, entry: e})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].total != list[j].total {
			return list[i].total > list[j].total
		}
		return list[i].name < list[j].name
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%s x%d", p.name, formatMs(p.total), p.calls))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	s := fmt.Sprintf("%.1f", float64(d.Microseconds())/1000.0)
	return strings.TrimSuffix(s, ".0") + "ms"
}
