package bonds

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bondbuy/pkg/platform/sentinel"
)

// Catalog is the in-memory bond listing store. The demo catalog is small and
// static apart from supply movements and admin mutations, so a guarded map
// is enough.
type Catalog struct {
	mu    sync.RWMutex
	bonds map[string]Bond
}

func NewCatalog() *Catalog {
	return &Catalog{bonds: make(map[string]Bond)}
}

// NewSeededCatalog returns a catalog preloaded with the demo listings: the
// Indian government and infrastructure bonds the marketplace launched with.
func NewSeededCatalog() *Catalog {
	c := NewCatalog()
	for _, b := range demoListings() {
		c.bonds[b.ID] = b
	}
	return c
}

func demoListings() []Bond {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []Bond{
		{ID: "in-gs-2030", Name: "India G-Sec 2030 (7.18%)", APY: 7.18, MaturityDate: date(2030, time.January, 15), PricePerUnit: 100, Risk: "Sovereign", Duration: "6 Years", TotalSupply: 10_000_000, IssuedSupply: 1_600_000, Active: true},
		{ID: "sdl-mh-2029", Name: "Maharashtra SDL 2029", APY: 7.45, MaturityDate: date(2029, time.June, 20), PricePerUnit: 100, Risk: "State Sovereign", Duration: "5 Years", TotalSupply: 5_000_000, IssuedSupply: 2_900_000, Active: true},
		{ID: "nhai-2034", Name: "NHAI Tax-Free 2034", APY: 6.80, MaturityDate: date(2034, time.March, 10), PricePerUnit: 1000, Risk: "AAA (Govt Backed)", Duration: "10 Years", TotalSupply: 2_000_000, IssuedSupply: 500_000, Active: true},
		{ID: "rbi-float", Name: "RBI Floating Rate Bond", APY: 8.05, MaturityDate: date(2031, time.December, 1), PricePerUnit: 1000, Risk: "Sovereign", Duration: "7 Years", TotalSupply: 5_000_000, IssuedSupply: 200_000, Active: true},
	}
}

// List returns all listings sorted by id.
func (c *Catalog) List(_ context.Context) ([]Bond, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Bond, 0, len(c.bonds))
	for _, b := range c.bonds {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns one listing by id.
func (c *Catalog) Get(_ context.Context, bondID string) (Bond, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if b, ok := c.bonds[bondID]; ok {
		return b, nil
	}
	return Bond{}, sentinel.ErrNotFound
}

// Register adds a new listing. The id must be unused.
func (c *Catalog) Register(_ context.Context, bond Bond) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.bonds[bond.ID]; exists {
		return sentinel.ErrConflict
	}
	c.bonds[bond.ID] = bond
	return nil
}

// Deactivate delists a bond; existing holdings are unaffected.
func (c *Catalog) Deactivate(_ context.Context, bondID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.bonds[bondID]
	if !ok {
		return sentinel.ErrNotFound
	}
	b.Active = false
	c.bonds[bondID] = b
	return nil
}

// Reserve moves units from remaining to issued supply after a confirmed
// mint. The check-and-bump is atomic under the catalog lock.
func (c *Catalog) Reserve(_ context.Context, bondID string, units int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.bonds[bondID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if b.RemainingSupply() < units {
		return fmt.Errorf("reserve %d units of %s: %w", units, bondID, sentinel.ErrConflict)
	}
	b.IssuedSupply += units
	c.bonds[bondID] = b
	return nil
}
