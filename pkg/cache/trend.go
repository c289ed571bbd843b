package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// DefaultTrendStaleTime matches the refresh interval the mobile client
// used for the dashboard widget.
const DefaultTrendStaleTime = 10 * time.Minute

// TrendService is the remote boundary for balance-trend data.
// *lazyspender.Client satisfies it.
type TrendService interface {
	BalanceTrend(params lazyspender.BalanceTrendParams) (*lazyspender.BalanceTrendResponse, error)
}

type trendKey struct {
	owner    string
	accounts string
	period   lazyspender.TrendPeriod
}

type trendEntry struct {
	resp      lazyspender.BalanceTrendResponse
	fetchedAt time.Time
	stale     bool
}

// TrendCache caches balance-trend responses per {owner, accounts,
// period}. The trend is a pure function of the transaction set, so the
// cache registers itself as a dependent of the transaction cache and is
// marked stale whenever a transaction mutation commits or settles.
type TrendCache struct {
	svc       TrendService
	staleTime time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[trendKey]*trendEntry
}

// NewTrendCache creates a balance-trend cache over the given service.
// If graph is non-nil the cache registers under KeyBalanceTrend and
// declares its dependency on KeyTransactions.
func NewTrendCache(svc TrendService, graph *Graph) *TrendCache {
	c := &TrendCache{
		svc:       svc,
		staleTime: DefaultTrendStaleTime,
		now:       time.Now,
		entries:   make(map[trendKey]*trendEntry),
	}
	if graph != nil {
		graph.Register(KeyBalanceTrend, c)
		graph.DependsOn(KeyBalanceTrend, KeyTransactions)
	}
	return c
}

func keyOf(params lazyspender.BalanceTrendParams) trendKey {
	return trendKey{
		owner:    params.Owner,
		accounts: strings.Join(params.Accounts, ","),
		period:   params.Period,
	}
}

// Get returns the balance trend for params, serving from cache while the
// entry is fresh and refetching otherwise. A failed refetch leaves any
// prior data in place for the next attempt and returns the error.
func (c *TrendCache) Get(params lazyspender.BalanceTrendParams) (*lazyspender.BalanceTrendResponse, error) {
	key := keyOf(params)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale && c.now().Sub(e.fetchedAt) < c.staleTime {
		resp := e.resp
		c.mu.Unlock()
		return &resp, nil
	}
	c.mu.Unlock()

	resp, err := c.svc.BalanceTrend(params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance trend: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = &trendEntry{resp: *resp, fetchedAt: c.now(), stale: false}
	c.mu.Unlock()

	result := *resp
	return &result, nil
}

// Cached reports whether a fresh entry exists for params, without
// fetching.
func (c *TrendCache) Cached(params lazyspender.BalanceTrendParams) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[keyOf(params)]
	return ok && !e.stale && c.now().Sub(e.fetchedAt) < c.staleTime
}

// MarkStale marks every entry stale; the next Get per key refetches.
func (c *TrendCache) MarkStale() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.stale = true
	}
}
