// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package route

import (
	mapset "github.com/deckarep/golang-set"
	"github.com/ethereum/go-ethereum/log"

	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
	"github.com/sankar-boro/xcm-relay/internal/reserve"
	"github.com/sankar-boro/xcm-relay/internal/request"
)

// Classify implements spec.md §4.4's algorithm. req is assumed to have
// already passed internal/request's validation.
func Classify(req *request.TransferRequest, resolver reserve.Resolver) (*Plan, error) {
	self := resolver.SelfLocation()

	// Reject the degenerate same-chain case before anything else
	// (spec.md §4.3.5 / original_source precheck): a precise
	// NotCrossChainTransfer beats a generic routing failure.
	destChain, ok := req.Dest.ChainPart()
	if !ok {
		return nil, rerr.ErrInvalidDest
	}
	if destChain.Equal(self) {
		return nil, rerr.ErrNotCrossChainTransfer
	}
	if !resolver.LocationsAllowed(req.Dest) {
		return nil, rerr.ErrNotSupportedMultiLocation
	}
	recipient := location.Location{Interior: req.Dest.NonChainPart()}
	if req.RecipientOverride != nil {
		recipient = *req.RecipientOverride
	}

	assets := req.Assets.Assets()

	// Tie-break (spec.md §4.4): a single-asset bundle is simultaneously fee
	// and non-fee for reserve-determination purposes.
	var nonFeeReserve location.Location
	haveNonFeeReserve := false
	reserveSet := mapset.NewThreadUnsafeSet()

	if len(assets) == 1 {
		r, ok := resolver.Reserve(assets[0].ID)
		if !ok {
			return nil, rerr.ErrAssetHasNoReserve
		}
		nonFeeReserve, haveNonFeeReserve = r, true
		reserveSet.Add(keyOf(r))
	} else {
		// Iterate in canonical bundle order; the reserve is fixed by the
		// first position whose asset differs from the fee asset.
		for _, a := range assets {
			if a.ID.Equal(req.Fee.ID) {
				continue
			}
			r, ok := resolver.Reserve(a.ID)
			if !ok {
				return nil, rerr.ErrAssetHasNoReserve
			}
			if !haveNonFeeReserve {
				nonFeeReserve, haveNonFeeReserve = r, true
			}
			reserveSet.Add(keyOf(r))
		}
	}
	if !haveNonFeeReserve {
		return nil, rerr.ErrAssetHasNoReserve
	}
	if reserveSet.Cardinality() > 1 {
		return nil, rerr.ErrDistinctReserveForAssetAndFee
	}

	feeReserve, ok := resolver.Reserve(req.Fee.ID)
	if !ok {
		return nil, rerr.ErrAssetHasNoReserve
	}

	var kind Kind
	switch {
	case nonFeeReserve.Equal(self):
		kind = SelfReserve
	case nonFeeReserve.Equal(destChain):
		kind = ToReserve
	default:
		kind = ToNonReserve
	}

	plan := &Plan{
		Kind:         kind,
		DestChain:    destChain,
		ReserveChain: nonFeeReserve,
		Recipient:    recipient,
	}

	if feeReserve.Equal(nonFeeReserve) {
		log.Debug("route: classified", "kind", kind, "dest", destChain, "reserve", nonFeeReserve)
		return plan, nil
	}

	// Split routing: only supported when the destination is itself the
	// non-fee reserve (spec.md §4.4 step 6, §9 Open Questions — the mixed
	// case fee_reserve not in {self,dest} combined with non_fee_reserve !=
	// dest_chain is rejected, not generalised).
	if !nonFeeReserve.Equal(destChain) {
		return nil, rerr.ErrDistinctReserveForAssetAndFee
	}

	minFee, ok := resolver.MinXCMFee(feeReserve)
	if !ok {
		return nil, rerr.ErrMinXcmFeeNotDefined
	}
	if minFee.Cmp(req.Fee.Amount) >= 0 {
		return nil, rerr.ErrFeeNotEnough
	}

	refundBeneficiary, err := location.Reanchor(
		sovereignRefundLocation(self, req.OriginAsLocation),
		feeReserve,
		resolver.Ancestry(),
	)
	if err != nil {
		return nil, err
	}

	sendToFeeReserve := req.Fee.Sub(minFee)
	assetsForDest := req.Assets.ReplaceAmount(req.Fee.ID, minFee)

	plan.Split = &SplitPlan{
		FeeLeg: FeeRoutingPlan{
			ReserveChain:      feeReserve,
			Send:              sendToFeeReserve,
			RetainedForHop:    minFee,
			RefundBeneficiary: refundBeneficiary,
		},
		AssetLeg: AssetRoutingPlan{
			DestChain: destChain,
			Assets:    assetsForDest,
		},
	}
	log.Debug("route: classified split", "kind", kind, "feeReserve", feeReserve, "assetReserve", nonFeeReserve)
	return plan, nil
}

// sovereignRefundLocation is self appended with the sender's own interior
// path — the sender's sovereign address on the fee reserve (spec.md §4.4
// Leg A).
func sovereignRefundLocation(self, originAsLocation location.Location) location.Location {
	return self.Append(originAsLocation.Interior...)
}

func keyOf(l location.Location) string { return string(l.CanonicalBytes()) }
