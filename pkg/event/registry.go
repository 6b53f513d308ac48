package event

import (
	"sort"
	"sync"
)

// MapperRegistry manages registered mappers keyed by stat code.
type MapperRegistry struct {
	mappers map[string]Mapper
	mu      sync.RWMutex
}

// NewMapperRegistry creates a new empty mapper registry.
func NewMapperRegistry() *MapperRegistry {
	return &MapperRegistry{
		mappers: make(map[string]Mapper),
	}
}

// Register adds a mapper to the registry.
// If a mapper for the same stat code already exists, it will be replaced.
func (r *MapperRegistry) Register(mapper Mapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers[mapper.StatCode()] = mapper
}

// Get returns the mapper for the given stat code, or nil.
func (r *MapperRegistry) Get(statCode string) Mapper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mappers[statCode]
}

// StatCodes returns every registered stat code, sorted.
func (r *MapperRegistry) StatCodes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.mappers))
	for code := range r.mappers {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Count returns the number of registered mappers.
func (r *MapperRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappers)
}
