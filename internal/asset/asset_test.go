// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankar-boro/xcm-relay/internal/location"
)

func mustAsset(t *testing.T, id location.Location, amount uint64) Asset {
	t.Helper()
	a, err := NewFungible(id, uint256.NewInt(amount))
	require.NoError(t, err)
	return a
}

func TestNewFungibleRejectsZero(t *testing.T) {
	_, err := NewFungible(location.Here(), uint256.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidAsset)
}

func TestBundleInsertMergesDuplicates(t *testing.T) {
	id := location.NewLocation(1, location.Parachain(2000))
	b := NewBundle(4)
	require.NoError(t, b.Insert(mustAsset(t, id, 100)))
	require.NoError(t, b.Insert(mustAsset(t, id, 50)))

	require.Equal(t, 1, b.Len())
	got, ok := b.Find(id)
	require.True(t, ok)
	assert.Equal(t, uint256.NewInt(150), got.Amount)
}

func TestBundleInsertRejectsOverMax(t *testing.T) {
	b := NewBundle(1)
	require.NoError(t, b.Insert(mustAsset(t, location.NewLocation(1, location.Parachain(2000)), 1)))
	err := b.Insert(mustAsset(t, location.NewLocation(1, location.Parachain(3000)), 1))
	assert.ErrorIs(t, err, ErrTooManyAssets)
}

func TestBundleCanonicalOrder(t *testing.T) {
	idA := location.NewLocation(1, location.Parachain(2000))
	idB := location.NewLocation(1, location.Parachain(3000))
	b := NewBundle(4)
	require.NoError(t, b.Insert(mustAsset(t, idB, 1)))
	require.NoError(t, b.Insert(mustAsset(t, idA, 1)))

	assets := b.Assets()
	require.Len(t, assets, 2)
	assert.True(t, assets[0].ID.Equal(idA), "lower canonical bytes sort first")
	assert.True(t, assets[1].ID.Equal(idB))
}

func TestHalfAndSubSumToOriginal(t *testing.T) {
	fee := mustAsset(t, location.Here(), 10_001)
	first := fee.Half()
	second := fee.Sub(first.Amount)

	sum := new(uint256.Int).Add(first.Amount, second.Amount)
	assert.Equal(t, fee.Amount, sum)
}

func TestReplaceAmountAndWithout(t *testing.T) {
	idA := location.NewLocation(1, location.Parachain(2000))
	idB := location.NewLocation(1, location.Parachain(3000))
	b := NewBundle(4)
	require.NoError(t, b.Insert(mustAsset(t, idA, 100)))
	require.NoError(t, b.Insert(mustAsset(t, idB, 50)))

	replaced := b.ReplaceAmount(idB, uint256.NewInt(3_000))
	got, ok := replaced.Find(idB)
	require.True(t, ok)
	assert.Equal(t, uint256.NewInt(3_000), got.Amount)

	without := b.Without(idA)
	assert.Equal(t, 1, without.Len())
	_, ok = without.Find(idA)
	assert.False(t, ok)
}
