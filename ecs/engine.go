package ecs

// Engine steps registered components in registration order. Components
// registered during a Step run from the next Step; components unregistered
// during a Step are skipped for the rest of it.
type Engine struct {
	components []Component
	pending    []Component
	count      int
	stepping   bool
	holes      bool
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Register adds c to the engine. It returns false if c is already
// registered with an engine.
func (e *Engine) Register(c Component) bool {
	b := c.base()
	if b.engine != nil {
		return false
	}
	b.engine = e
	e.count++
	if e.stepping {
		b.slot = -1
		e.pending = append(e.pending, c)
		return true
	}
	b.slot = len(e.components)
	e.components = append(e.components, c)
	return true
}

// Unregister removes c. It returns false if c is not registered here.
func (e *Engine) Unregister(c Component) bool {
	b := c.base()
	if b.engine != e {
		return false
	}
	b.engine = nil
	e.count--
	if b.slot < 0 {
		for i, p := range e.pending {
			if p == c {
				e.pending = append(e.pending[:i], e.pending[i+1:]...)
				break
			}
		}
		return true
	}
	e.components[b.slot] = nil
	b.slot = -1
	e.holes = true
	if !e.stepping {
		e.compact()
	}
	return true
}

// Count returns the number of registered components.
func (e *Engine) Count() int {
	return e.count
}

// Step runs Update on every runnable component, then LateUpdate on every
// runnable component. A component is runnable when it is enabled and its
// entity is active.
func (e *Engine) Step(dt float64) {
	e.stepping = true
	defer e.finishStep()

	n := len(e.components)
	for i := 0; i < n; i++ {
		if c := e.components[i]; c != nil && runnable(c) {
			c.Update(dt)
		}
	}
	for i := 0; i < n; i++ {
		if c := e.components[i]; c != nil && runnable(c) {
			c.LateUpdate(dt)
		}
	}
}

func (e *Engine) finishStep() {
	e.stepping = false
	if e.holes {
		e.compact()
	}
	for _, c := range e.pending {
		c.base().slot = len(e.components)
		e.components = append(e.components, c)
	}
	clear(e.pending)
	e.pending = e.pending[:0]
}

// compact drops unregistered slots, keeping order, and re-stamps the rest.
func (e *Engine) compact() {
	j := 0
	for _, c := range e.components {
		if c == nil {
			continue
		}
		c.base().slot = j
		e.components[j] = c
		j++
	}
	clear(e.components[j:])
	e.components = e.components[:j]
	e.holes = false
}

func runnable(c Component) bool {
	if !c.Enabled() {
		return false
	}
	ent := c.Entity()
	return ent == nil || ent.Active()
}
