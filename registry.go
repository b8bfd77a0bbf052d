package replica

import (
	"reflect"
	"sync"
)

var (
	registry   = make(map[reflect.Type]*typePlan)
	registryMu sync.RWMutex
)

// planFor returns the cached plan for t, building it on first use.
func planFor(t reflect.Type) *typePlan {
	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[t]; ok {
		registryMu.RUnlock()
		return cached
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[t]; ok {
		return cached
	}

	plan := buildPlan(t)
	registry[t] = plan
	return plan
}

// Reset clears the plan registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[reflect.Type]*typePlan)
}
