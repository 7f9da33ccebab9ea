package config

import "sync"

const (
	MinWorkers = 1
	MaxWorkers = 64
)

// Settings holds the toggles that may change while the process runs.
type Settings struct {
	mu               sync.RWMutex
	ambientOcclusion bool
	workers          int
}

// NewSettings seeds runtime settings from a loaded config.
func NewSettings(cfg *Config) *Settings {
	return &Settings{
		ambientOcclusion: cfg.Lighting.AmbientOcclusion && cfg.Lighting.Smooth,
		workers:          clampWorkers(cfg.Meshing.Workers),
	}
}

// AmbientOcclusion reports whether smooth lighting is on.
func (s *Settings) AmbientOcclusion() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientOcclusion
}

func (s *Settings) SetAmbientOcclusion(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientOcclusion = enabled
}

// Workers returns the configured rebuild worker count.
func (s *Settings) Workers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workers
}

// SetWorkers sets the worker count, clamped to MinWorkers..MaxWorkers.
// It takes effect the next time a pool is built.
func (s *Settings) SetWorkers(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = clampWorkers(n)
}

func clampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
