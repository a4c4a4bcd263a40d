// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package route

import (
	"encoding/hex"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/policy"
	"github.com/sankar-boro/xcm-relay/internal/request"
	"github.com/sankar-boro/xcm-relay/internal/reserve"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
)

var (
	self     = location.NewLocation(1, location.Parachain(2000))
	ancestry = location.NewLocation(1, location.Parachain(2000))
	sibling3 = location.NewLocation(1, location.Parachain(3000))
	sibling4 = location.NewLocation(1, location.Parachain(4000))
	hub      = location.NewLocation(1)
)

func newResolver(t *testing.T, reserves map[string]location.Location, minFee map[string]*uint256.Int) reserve.Resolver {
	t.Helper()
	r, err := reserve.NewTableResolver(self, ancestry, reserves, minFee, nil)
	require.NoError(t, err)
	return r
}

func keyFor(l location.Location) string { return hex.EncodeToString(l.CanonicalBytes()) }

func assetID(parachain uint32) location.Location {
	return location.NewLocation(1, location.Parachain(parachain), location.GeneralIndex(1))
}

func mustReq(t *testing.T, a asset.Asset, fee asset.Asset, dest location.Location) *request.TransferRequest {
	t.Helper()
	b := asset.NewBundle(8)
	require.NoError(t, b.Insert(a))
	if !a.ID.Equal(fee.ID) {
		require.NoError(t, b.Insert(fee))
	}
	return &request.TransferRequest{
		Sender:           []byte("alice"),
		OriginAsLocation: location.NewLocation(0, location.Account([]byte("alice"))),
		Assets:           b,
		Fee:              fee,
		Dest:             dest,
		DestWeight:       1_000_000,
	}
}

func TestClassifySelfReserve(t *testing.T) {
	id := location.Here()
	a, _ := asset.NewFungible(id, uint256.NewInt(100))
	resolver := newResolver(t, map[string]location.Location{keyFor(id): self}, nil)

	req := mustReq(t, a, a, location.NewLocation(1, location.Parachain(3000), location.Account([]byte("alice"))))
	plan, err := Classify(req, resolver)
	require.NoError(t, err)
	assert.Equal(t, SelfReserve, plan.Kind)
	assert.False(t, plan.IsSplit())
	assert.True(t, plan.DestChain.Equal(sibling3))
}

func TestClassifyToReserve(t *testing.T) {
	id := assetID(3000)
	a, _ := asset.NewFungible(id, uint256.NewInt(100))
	resolver := newResolver(t, map[string]location.Location{keyFor(id): sibling3}, nil)

	req := mustReq(t, a, a, location.NewLocation(1, location.Parachain(3000), location.Account([]byte("alice"))))
	plan, err := Classify(req, resolver)
	require.NoError(t, err)
	assert.Equal(t, ToReserve, plan.Kind)
	assert.True(t, plan.ReserveChain.Equal(sibling3))
}

func TestClassifyToNonReserve(t *testing.T) {
	id := assetID(9000) // reserve lives on the hub, neither self nor dest
	a, _ := asset.NewFungible(id, uint256.NewInt(100))
	resolver := newResolver(t, map[string]location.Location{keyFor(id): hub}, nil)

	req := mustReq(t, a, a, location.NewLocation(1, location.Parachain(4000), location.Account([]byte("alice"))))
	plan, err := Classify(req, resolver)
	require.NoError(t, err)
	assert.Equal(t, ToNonReserve, plan.Kind)
	assert.True(t, plan.ReserveChain.Equal(hub))
	assert.True(t, plan.DestChain.Equal(sibling4))
}

func TestClassifySplitRoute(t *testing.T) {
	nonFeeID := assetID(3000)
	feeID := assetID(9999) // hub-reserved fee asset
	nonFee, _ := asset.NewFungible(nonFeeID, uint256.NewInt(1_000))
	fee, _ := asset.NewFungible(feeID, uint256.NewInt(10_000))

	resolver := newResolver(t, map[string]location.Location{
		keyFor(nonFeeID): sibling3,
		keyFor(feeID):    hub,
	}, map[string]*uint256.Int{keyFor(hub): uint256.NewInt(3_000)})

	req := mustReq(t, nonFee, fee, location.NewLocation(1, location.Parachain(3000), location.Account([]byte("alice"))))
	plan, err := Classify(req, resolver)
	require.NoError(t, err)
	require.True(t, plan.IsSplit())
	assert.Equal(t, uint256.NewInt(7_000), plan.Split.FeeLeg.Send.Amount)
	assert.Equal(t, uint256.NewInt(3_000), plan.Split.FeeLeg.RetainedForHop)
	assert.True(t, plan.Split.AssetLeg.DestChain.Equal(sibling3))

	rewrittenFee, ok := plan.Split.AssetLeg.Assets.Find(feeID)
	require.True(t, ok)
	assert.Equal(t, uint256.NewInt(3_000), rewrittenFee.Amount)
}

func TestClassifySplitFeeNotEnough(t *testing.T) {
	nonFeeID := assetID(3000)
	feeID := assetID(9999)
	nonFee, _ := asset.NewFungible(nonFeeID, uint256.NewInt(1_000))
	fee, _ := asset.NewFungible(feeID, uint256.NewInt(2_500))

	resolver := newResolver(t, map[string]location.Location{
		keyFor(nonFeeID): sibling3,
		keyFor(feeID):    hub,
	}, map[string]*uint256.Int{keyFor(hub): uint256.NewInt(3_000)})

	req := mustReq(t, nonFee, fee, location.NewLocation(1, location.Parachain(3000), location.Account([]byte("alice"))))
	_, err := Classify(req, resolver)
	assert.ErrorIs(t, err, rerr.ErrFeeNotEnough)
}

func TestClassifySameChainRejected(t *testing.T) {
	id := location.Here()
	a, _ := asset.NewFungible(id, uint256.NewInt(100))
	resolver := newResolver(t, map[string]location.Location{keyFor(id): self}, nil)

	req := mustReq(t, a, a, self)
	_, err := Classify(req, resolver)
	assert.ErrorIs(t, err, rerr.ErrNotCrossChainTransfer)
}

func TestClassifyAssetHasNoReserve(t *testing.T) {
	id := location.Here()
	a, _ := asset.NewFungible(id, uint256.NewInt(100))
	resolver := newResolver(t, map[string]location.Location{}, nil)

	req := mustReq(t, a, a, sibling3)
	_, err := Classify(req, resolver)
	assert.ErrorIs(t, err, rerr.ErrAssetHasNoReserve)
}

func TestClassifyDistinctReserveRejectedWhenNotSplittable(t *testing.T) {
	// non-fee reserve is the hub, not dest: the split path requires
	// non_fee_reserve == dest_chain, so a fee-reserve mismatch here must be
	// rejected outright rather than generalised into a third leg.
	nonFeeID := assetID(9000)
	feeID := assetID(3000)
	nonFee, _ := asset.NewFungible(nonFeeID, uint256.NewInt(1_000))
	fee, _ := asset.NewFungible(feeID, uint256.NewInt(10_000))

	resolver := newResolver(t, map[string]location.Location{
		keyFor(nonFeeID): hub,
		keyFor(feeID):    sibling3,
	}, nil)

	req := mustReq(t, nonFee, fee, location.NewLocation(1, location.Parachain(4000), location.Account([]byte("alice"))))
	_, err := Classify(req, resolver)
	assert.ErrorIs(t, err, rerr.ErrDistinctReserveForAssetAndFee)
}

func TestClassifyPolicyRejection(t *testing.T) {
	filter, err := policy.NewFilter("parachain_id < 3000")
	require.NoError(t, err)
	r, err := reserve.NewTableResolver(self, ancestry, map[string]location.Location{
		keyFor(location.Here()): self,
	}, nil, filter)
	require.NoError(t, err)

	a, _ := asset.NewFungible(location.Here(), uint256.NewInt(100))
	req := mustReq(t, a, a, location.NewLocation(1, location.Parachain(3000), location.Account([]byte("alice"))))
	_, err = Classify(req, r)
	assert.ErrorIs(t, err, rerr.ErrNotSupportedMultiLocation)
}
