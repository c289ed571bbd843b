package cache

import "sync"

// Cache keys used by this module. Additional derived caches can register
// under their own keys.
const (
	KeyTransactions = "transactions"
	KeyBalanceTrend = "balance-trend"
)

// Invalidater is a cache that can be marked stale as a whole.
type Invalidater interface {
	MarkStale()
}

// Graph records which caches derive from which. Invalidation of a key
// propagates to every transitive dependent, so a mutation site only
// needs to name the cache it changed.
type Graph struct {
	mu         sync.Mutex
	caches     map[string]Invalidater
	dependents map[string][]string
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		caches:     make(map[string]Invalidater),
		dependents: make(map[string][]string),
	}
}

// Register binds a cache to a key. Invalidating the key marks the cache
// stale.
func (g *Graph) Register(key string, c Invalidater) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.caches[key] = c
}

// DependsOn declares that the cache under dependent is derived from the
// cache under dependency, so invalidating dependency also invalidates
// dependent.
func (g *Graph) DependsOn(dependent, dependency string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dependents[dependency] = append(g.dependents[dependency], dependent)
}

// Invalidate marks the cache under key stale, then walks dependents
// transitively.
func (g *Graph) Invalidate(key string) {
	g.invalidate(key, true)
}

// InvalidateDependents walks dependents of key without touching the
// cache under key itself. Used when the source cache was patched in
// place and its derived caches were not.
func (g *Graph) InvalidateDependents(key string) {
	g.invalidate(key, false)
}

func (g *Graph) invalidate(key string, includeSelf bool) {
	g.mu.Lock()
	visited := map[string]bool{key: true}
	queue := append([]string(nil), g.dependents[key]...)
	targets := []Invalidater{}
	if includeSelf {
		if c, ok := g.caches[key]; ok {
			targets = append(targets, c)
		}
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if visited[next] {
			continue
		}
		visited[next] = true
		if c, ok := g.caches[next]; ok {
			targets = append(targets, c)
		}
		queue = append(queue, g.dependents[next]...)
	}
	g.mu.Unlock()

	// MarkStale takes each cache's own lock; keep the graph lock out of
	// that ordering.
	for _, c := range targets {
		c.MarkStale()
	}
}
