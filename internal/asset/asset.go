// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package asset implements the fungible asset reference and the canonical,
// deduplicated asset bundle carried between the router's components.
package asset

import (
	"bytes"
	"sort"

	"github.com/holiman/uint256"

	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
)

var (
	ErrInvalidAsset           = rerr.ErrInvalidAsset
	ErrTooManyAssets          = rerr.ErrTooManyAssetsBeingSent
	ErrNonFungibleUnsupported = rerr.ErrInvalidAsset
)

// Fungibility discriminates the two XCM asset kinds. This router only ever
// constructs Fungible assets, but NonFungible is kept so bundle ordering and
// decode paths match the wire grammar and reject non-fungible input with a
// precise error rather than silently misparsing it.
type Fungibility uint8

const (
	Fungible Fungibility = iota
	NonFungible
)

// Asset pairs an identifying location with its fungibility payload.
type Asset struct {
	ID     location.Location
	Fun    Fungibility
	Amount *uint256.Int // valid when Fun == Fungible
}

// NewFungible constructs a positive fungible asset reference.
func NewFungible(id location.Location, amount *uint256.Int) (Asset, error) {
	if amount == nil || amount.IsZero() {
		return Asset{}, ErrInvalidAsset
	}
	return Asset{ID: id, Fun: Fungible, Amount: new(uint256.Int).Set(amount)}, nil
}

// Verify checks the fungible-and-positive invariant this router enforces on
// every asset (spec.md Invariant 1).
func (a Asset) Verify() error {
	if a.Fun != Fungible {
		return ErrNonFungibleUnsupported
	}
	if a.Amount == nil || a.Amount.IsZero() {
		return ErrInvalidAsset
	}
	return nil
}

// WithAmount returns a copy of a with Amount replaced.
func (a Asset) WithAmount(amount *uint256.Int) Asset {
	return Asset{ID: a.ID, Fun: a.Fun, Amount: new(uint256.Int).Set(amount)}
}

// Half returns floor(amount/2), used when splitting the fee across the two
// legs of a ToNonReserve program (spec.md §4.5).
func (a Asset) Half() Asset {
	half := new(uint256.Int).Rsh(a.Amount, 1)
	return a.WithAmount(half)
}

// Sub returns a copy of a with Amount reduced by n, saturating at zero.
func (a Asset) Sub(n *uint256.Int) Asset {
	if a.Amount.Cmp(n) <= 0 {
		return a.WithAmount(new(uint256.Int))
	}
	return a.WithAmount(new(uint256.Int).Sub(a.Amount, n))
}

func (a Asset) canonicalKey() []byte {
	var buf bytes.Buffer
	buf.Write(a.ID.CanonicalBytes())
	buf.WriteByte(byte(a.Fun))
	return buf.Bytes()
}

// compare implements the bundle total order: (id_canonical_bytes,
// discriminant, amount).
func compare(a, b Asset) int {
	ak, bk := a.canonicalKey(), b.canonicalKey()
	if c := bytes.Compare(ak, bk); c != 0 {
		return c
	}
	if a.Amount == nil || b.Amount == nil {
		return 0
	}
	return a.Amount.Cmp(b.Amount)
}

// Bundle is an ordered, deduplicated, canonical-sorted collection of assets.
// Insertion merges duplicates (same ID and Fun) by saturating-adding
// amounts.
type Bundle struct {
	maxAssets int
	assets    []Asset
}

// NewBundle creates an empty bundle bounded at maxAssets distinct entries.
func NewBundle(maxAssets int) *Bundle {
	return &Bundle{maxAssets: maxAssets}
}

// Insert adds an asset to the bundle, merging into an existing entry with
// the same ID when present. Returns ErrTooManyAssets if inserting a new
// distinct asset would exceed maxAssets.
func (b *Bundle) Insert(a Asset) error {
	if err := a.Verify(); err != nil {
		return err
	}
	for i, existing := range b.assets {
		if existing.ID.Equal(a.ID) && existing.Fun == a.Fun {
			sum, overflow := new(uint256.Int).AddOverflow(existing.Amount, a.Amount)
			if overflow {
				sum = new(uint256.Int).SetAllOne()
			}
			b.assets[i] = existing.WithAmount(sum)
			return nil
		}
	}
	if len(b.assets) >= b.maxAssets {
		return ErrTooManyAssets
	}
	b.assets = append(b.assets, a)
	sort.Slice(b.assets, func(i, j int) bool { return compare(b.assets[i], b.assets[j]) < 0 })
	return nil
}

// Assets returns the canonical-sorted contents. The returned slice must not
// be mutated by the caller.
func (b *Bundle) Assets() []Asset { return b.assets }

// Len reports the number of distinct assets in the bundle.
func (b *Bundle) Len() int { return len(b.assets) }

// Find returns the asset matching id, if present.
func (b *Bundle) Find(id location.Location) (Asset, bool) {
	for _, a := range b.assets {
		if a.ID.Equal(id) {
			return a, true
		}
	}
	return Asset{}, false
}

// ReplaceAmount returns a new bundle with the entry matching id's amount
// replaced by amount, preserving canonical order. Used to rewrite the fee
// slot to the reduced min_xcm_fee amount on the asset-routing leg.
func (b *Bundle) ReplaceAmount(id location.Location, amount *uint256.Int) *Bundle {
	out := NewBundle(b.maxAssets)
	for _, a := range b.assets {
		if a.ID.Equal(id) {
			out.assets = append(out.assets, a.WithAmount(amount))
			continue
		}
		out.assets = append(out.assets, a)
	}
	sort.Slice(out.assets, func(i, j int) bool { return compare(out.assets[i], out.assets[j]) < 0 })
	return out
}

// Without returns a new bundle with the entry matching id removed.
func (b *Bundle) Without(id location.Location) *Bundle {
	out := NewBundle(b.maxAssets)
	for _, a := range b.assets {
		if a.ID.Equal(id) {
			continue
		}
		out.assets = append(out.assets, a)
	}
	return out
}
