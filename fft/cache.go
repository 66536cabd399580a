package fft

import "sync"

// PlanCache caches Plans by transform size.
// It is safe for concurrent use.
type PlanCache struct {
	mu    sync.Mutex
	plans map[int]*Plan
}

// NewPlanCache creates a new empty PlanCache.
func NewPlanCache() *PlanCache {
	return &PlanCache{
		plans: make(map[int]*Plan),
	}
}

// Get returns the Plan of size n, creating it on first use.
func (c *PlanCache) Get(n int) (*Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.plans[n]; ok {
		return p, nil
	}

	p, err := NewPlan(n)
	if err != nil {
		return nil, err
	}
	c.plans[n] = p
	return p, nil
}

// Len returns the number of cached Plans.
func (c *PlanCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.plans)
}

// Clear drops every cached Plan.
func (c *PlanCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.plans)
}
