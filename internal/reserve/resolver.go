// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reserve implements the reserve & self resolver (spec.md §4.2): the
// injected configuration that tells the router which chain is the canonical
// ledger for a given asset, what this chain's own address is, and the
// minimum execution cost for routing through a given reserve.
package reserve

import (
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru"
	"github.com/holiman/uint256"
	"golang.org/x/sync/singleflight"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/policy"
)

// Resolver is consumed by the route classifier and program builder.
type Resolver interface {
	// Reserve returns the canonical reserve location for asset's id, or
	// ok=false if this router has no reserve mapping for it.
	Reserve(id location.Location) (location.Location, bool)
	// SelfLocation is this chain's own chain-part location.
	SelfLocation() location.Location
	// Ancestry is this chain's absolute address, used for reanchoring.
	Ancestry() location.Location
	// MinXCMFee is the lower bound on execution cost on reserveChain; ok is
	// false when that reserve cannot be used as a fee-reserve in split
	// routing.
	MinXCMFee(reserveChain location.Location) (amount *uint256.Int, ok bool)
	// LocationsAllowed applies the destination policy filter.
	LocationsAllowed(dest location.Location) bool
}

// lookupFunc resolves an asset id to its reserve location. It is the
// pluggable, potentially slow part of the resolver (e.g. backed by a
// governance-curated asset registry); TableResolver wraps it with an LRU +
// singleflight cache so that repeated lookups within and across dispatches
// don't repeat the underlying work.
type lookupFunc func(id location.Location) (location.Location, bool)

// TableResolver is a configuration-driven Resolver: self location, ancestry,
// and a fee table are fixed at construction; reserve lookups go through a
// cached lookupFunc so the backing table can be swapped (e.g. by
// internal/topology's hot-reload) without losing cache coherency across a
// reload — callers should construct a fresh TableResolver per topology
// version, which naturally invalidates the old cache.
type TableResolver struct {
	self     location.Location
	ancestry location.Location
	minFee   map[string]*uint256.Int
	filter   *policy.Filter

	lookup lookupFunc
	cache  *lru.Cache
	group  singleflight.Group
}

const defaultCacheSize = 1024

// NewTableResolver builds a resolver from a static reserve table (asset id
// canonical bytes -> reserve location), a min-fee table (reserve chain
// canonical bytes -> amount), self's location, self's absolute ancestry, and
// a destination policy filter.
func NewTableResolver(
	self, ancestry location.Location,
	reserves map[string]location.Location,
	minFee map[string]*uint256.Int,
	filter *policy.Filter,
) (*TableResolver, error) {
	cache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, err
	}
	lookup := func(id location.Location) (location.Location, bool) {
		r, ok := reserves[keyOf(id)]
		return r, ok
	}
	return &TableResolver{
		self:     self,
		ancestry: ancestry,
		minFee:   minFee,
		filter:   filter,
		lookup:   lookup,
		cache:    cache,
	}, nil
}

func keyOf(l location.Location) string {
	return hex.EncodeToString(l.CanonicalBytes())
}

func (r *TableResolver) Reserve(id location.Location) (location.Location, bool) {
	key := keyOf(id)
	if v, ok := r.cache.Get(key); ok {
		cached := v.(cachedReserve)
		return cached.loc, cached.ok
	}
	res, err, _ := r.group.Do(key, func() (interface{}, error) {
		loc, ok := r.lookup(id)
		return cachedReserve{loc: loc, ok: ok}, nil
	})
	_ = err // lookupFunc never errors; kept for future backends that can
	cached := res.(cachedReserve)
	r.cache.Add(key, cached)
	return cached.loc, cached.ok
}

type cachedReserve struct {
	loc location.Location
	ok  bool
}

func (r *TableResolver) SelfLocation() location.Location { return r.self }
func (r *TableResolver) Ancestry() location.Location     { return r.ancestry }

func (r *TableResolver) MinXCMFee(reserveChain location.Location) (*uint256.Int, bool) {
	v, ok := r.minFee[keyOf(reserveChain)]
	return v, ok
}

func (r *TableResolver) LocationsAllowed(dest location.Location) bool {
	if r.filter == nil {
		return true
	}
	return r.filter.Allowed(dest)
}

// AssetID is a convenience for callers resolving an asset.Asset's reserve
// directly.
func AssetID(a asset.Asset) location.Location { return a.ID }
