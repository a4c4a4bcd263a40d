// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package request

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
)

var (
	selfChain = location.NewLocation(1, location.Parachain(2000))
	sibling   = location.NewLocation(1, location.Parachain(3000), location.Account([]byte("alice")))
	usdtID    = location.NewLocation(1, location.Parachain(9000), location.GeneralIndex(7))
)

func testParams() Params {
	return Params{
		Currencies:      MapCurrencies{"USDT": usdtID, "NATIVE": location.Here()},
		Accounts:        LocalAccounts{},
		MaxAssets:       4,
		MaxTransactSize: 256,
	}
}

func TestFromCurrencyValidation(t *testing.T) {
	p := testParams()

	_, err := p.FromCurrency([]byte("alice"), "USDT", nil, sibling, 1_000_000)
	assert.ErrorIs(t, err, rerr.ErrZeroAmount)

	_, err = p.FromCurrency([]byte("alice"), "UNKNOWN", uint256.NewInt(100), sibling, 1_000_000)
	assert.ErrorIs(t, err, rerr.ErrNotCrossChainTransferableCurrency)

	_, err = p.FromCurrency([]byte("alice"), "USDT", uint256.NewInt(100), location.NewLocation(0, location.GeneralKey([]byte("x"))), 1_000_000)
	assert.ErrorIs(t, err, rerr.ErrInvalidDest)

	req, err := p.FromCurrency([]byte("alice"), "USDT", uint256.NewInt(100), sibling, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1, req.Assets.Len())
	assert.True(t, req.Fee.ID.Equal(usdtID))
	assert.Equal(t, uint256.NewInt(100), req.Fee.Amount)
}

func TestFromCurrencyWithFeeSameCurrencyMerges(t *testing.T) {
	p := testParams()
	req, err := p.FromCurrencyWithFee([]byte("alice"), "USDT", uint256.NewInt(100), uint256.NewInt(5), sibling, 1_000_000)
	require.NoError(t, err)

	require.Equal(t, 1, req.Assets.Len(), "same-currency fee must not add a second bundle entry")
	total, ok := req.Assets.Find(usdtID)
	require.True(t, ok)
	assert.Equal(t, uint256.NewInt(105), total.Amount)
	assert.Equal(t, uint256.NewInt(5), req.Fee.Amount)
}

func TestFromCurrencyWithFeeZeroFee(t *testing.T) {
	p := testParams()
	_, err := p.FromCurrencyWithFee([]byte("alice"), "USDT", uint256.NewInt(100), uint256.NewInt(0), sibling, 1_000_000)
	assert.ErrorIs(t, err, rerr.ErrZeroFee)
}

func TestFromMultiAssetWithFeeDistinctCurrencyAddsEntry(t *testing.T) {
	p := testParams()
	nativeAsset, err := asset.NewFungible(location.Here(), uint256.NewInt(100))
	require.NoError(t, err)
	feeAsset, err := asset.NewFungible(usdtID, uint256.NewInt(5))
	require.NoError(t, err)

	req, err := p.FromMultiAssetWithFee([]byte("alice"), nativeAsset, feeAsset, sibling, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 2, req.Assets.Len())
}

func TestFromMultiCurrenciesFeeItemOutOfRange(t *testing.T) {
	p := testParams()
	_, err := p.FromMultiCurrencies([]byte("alice"), []CurrencyAmount{{Currency: "USDT", Amount: uint256.NewInt(1)}}, 5, sibling, 1_000_000)
	assert.ErrorIs(t, err, rerr.ErrAssetIndexNonExistent)
}

func TestFromMultiAssetsOverMaxAssets(t *testing.T) {
	p := testParams()
	p.MaxAssets = 1
	a1, _ := asset.NewFungible(location.NewLocation(1, location.Parachain(1)), uint256.NewInt(1))
	a2, _ := asset.NewFungible(location.NewLocation(1, location.Parachain(2)), uint256.NewInt(1))
	_, err := p.FromMultiAssets([]byte("alice"), []asset.Asset{a1, a2}, 0, sibling, 1_000_000)
	assert.ErrorIs(t, err, rerr.ErrTooManyAssetsBeingSent)
}

func TestTransactRejectsOversizedCall(t *testing.T) {
	p := testParams()
	p.MaxTransactSize = 4
	_, err := p.Transact([]byte{1, 2, 3, 4, 5}, location.Here())
	assert.ErrorIs(t, err, rerr.ErrTransactTooLarge)
}

func TestWithPiggybackDoesNotMutateOriginal(t *testing.T) {
	p := testParams()
	req, err := p.FromCurrency([]byte("alice"), "USDT", uint256.NewInt(100), sibling, 1_000_000)
	require.NoError(t, err)

	payload, err := p.Transact([]byte{0xAB}, location.Here())
	require.NoError(t, err)

	withPiggyback := WithPiggyback(req, payload)
	assert.Nil(t, req.Piggyback)
	assert.NotNil(t, withPiggyback.Piggyback)
}
