// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package route implements the route classifier (spec.md §4.4): given a
// normalised TransferRequest and a Resolver, it derives the routing plan
// kind and, when the fee and non-fee reserves differ, the split into a
// fee-reserve leg and an asset-reserve leg.
package route

import (
	"github.com/holiman/uint256"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
)

// Kind is the closed sum of routing patterns spec.md §3 calls out. It is a
// tagged variant, never a subclass hierarchy or a dispatch table, so
// classification stays pure and exhaustively matchable.
type Kind uint8

const (
	// SelfReserve: the non-fee assets' reserve is this chain.
	SelfReserve Kind = iota
	// ToReserve: the non-fee assets' reserve is the destination chain.
	ToReserve
	// ToNonReserve: the non-fee assets' reserve is neither this chain nor
	// the destination; they travel via their reserve chain first.
	ToNonReserve
)

func (k Kind) String() string {
	switch k {
	case SelfReserve:
		return "SelfReserve"
	case ToReserve:
		return "ToReserve"
	case ToNonReserve:
		return "ToNonReserve"
	default:
		return "Unknown"
	}
}

// FeeRoutingPlan is leg A of a split route: the portion of the fee asset
// routed to the fee reserve to finance the onward hop.
type FeeRoutingPlan struct {
	ReserveChain      location.Location
	Send              asset.Asset // fee.amount - min_xcm_fee, sent to ReserveChain
	RetainedForHop    *uint256.Int // min_xcm_fee, financing the onward hop
	RefundBeneficiary location.Location
}

// AssetRoutingPlan is leg B of a split route: the non-fee assets plus a
// fee-sized fee asset, routed to the destination (which is itself the
// non-fee reserve in every supported split).
type AssetRoutingPlan struct {
	DestChain location.Location
	Assets    *asset.Bundle // non-fee assets, with the fee slot rewritten to min_xcm_fee
}

// Plan is the classifier's output, annotating a TransferRequest with enough
// information for the program builder to construct the outbound program(s).
type Plan struct {
	Kind          Kind
	DestChain     location.Location
	ReserveChain  location.Location // reserve of the non-fee asset set
	Recipient     location.Location // beneficiary: Dest's non-chain part, or req.RecipientOverride verbatim
	Split         *SplitPlan
}

// SplitPlan carries the two legs of a fee-reserve != asset-reserve route.
type SplitPlan struct {
	FeeLeg   FeeRoutingPlan
	AssetLeg AssetRoutingPlan
}

// IsSplit reports whether the fee reserve differs from the asset reserve,
// requiring two outbound programs.
func (p *Plan) IsSplit() bool { return p.Split != nil }
