package title

import (
	"fmt"
	"sync"
)

// Catalog holds every title definition known to the service.
// It is shared across characters and safe for concurrent use.
type Catalog struct {
	titles map[string]Title
	order  []string
	mu     sync.RWMutex
}

// NewCatalog creates a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		titles: make(map[string]Title),
	}
}

// Register adds a title to the catalog.
// Returns an error if a title with the same ID already exists or it has no condition.
func (c *Catalog) Register(t Title) error {
	if t.IsNone() {
		return fmt.Errorf("title with empty ID")
	}
	if t.condition == nil {
		return fmt.Errorf("title %s has no unlock condition", t.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.titles[t.ID]; exists {
		return fmt.Errorf("title %s already registered", t.ID)
	}

	c.titles[t.ID] = t
	c.order = append(c.order, t.ID)
	return nil
}

// Get returns a title by ID.
func (c *Catalog) Get(id string) (Title, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.titles[id]
	return t, ok
}

// All returns every title in registration order.
func (c *Catalog) All() []Title {
	c.mu.RLock()
	defer c.mu.RUnlock()

	titles := make([]Title, 0, len(c.order))
	for _, id := range c.order {
		titles = append(titles, c.titles[id])
	}
	return titles
}

// Count returns the number of registered titles.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.titles)
}
