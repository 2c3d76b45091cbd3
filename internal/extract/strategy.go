// Package extract implements the product-page extraction chain: an ordered
// set of strategies (remote render service, direct fetch with pattern
// matching, URL path heuristic) whose partial results merge front to back.
// A later tier only fills fields still unset by an earlier tier or by the
// caller.
package extract

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Result is a partial extraction result. Empty fields mean unresolved; a
// merge never overwrites a field that is already set.
type Result struct {
	Title       string
	Description string
	ImageURL    string
	Price       *float64
	Brand       string
}

// Merge fills unset fields of r from src.
func (r *Result) Merge(src Result) {
	if r.Title == "" {
		r.Title = src.Title
	}
	if r.Description == "" {
		r.Description = src.Description
	}
	if r.ImageURL == "" {
		r.ImageURL = src.ImageURL
	}
	if r.Price == nil {
		r.Price = src.Price
	}
	if r.Brand == "" {
		r.Brand = src.Brand
	}
}

// NeedsMore reports whether any of the fields that trigger the chain
// (title, brand, image) is still unresolved.
func (r *Result) NeedsMore() bool {
	return r.Title == "" || r.Brand == "" || r.ImageURL == ""
}

// Strategy is one tier in the extraction chain. A returned error means the
// tier failed entirely and the chain advances; a nil error with a partial
// Result is normal.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, pageURL string) (Result, error)
}

// Chain runs strategies in order, merging partial results into the seed.
// Strategy failures are logged and skipped, never surfaced; the chain stops
// early once the trigger fields are all resolved.
type Chain struct {
	strategies []Strategy

	// Observer, when set, is told the outcome of every tier attempt.
	Observer func(tier string, ok bool)
}

// NewChain builds a chain over the given strategies, front tier first.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Run executes the chain for pageURL, starting from the caller-supplied
// seed. The seed's fields are never overwritten.
func (c *Chain) Run(ctx context.Context, pageURL string, seed Result) Result {
	result := seed
	for _, s := range c.strategies {
		if !result.NeedsMore() {
			break
		}
		partial, err := s.Extract(ctx, pageURL)
		if c.Observer != nil {
			c.Observer(s.Name(), err == nil)
		}
		if err != nil {
			logrus.Warnf("Extraction tier %s failed for %s: %v", s.Name(), pageURL, err)
			continue
		}
		result.Merge(partial)
	}
	return result
}
