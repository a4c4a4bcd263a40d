// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/request"
	"github.com/sankar-boro/xcm-relay/internal/route"
)

func reanchorFee(fee asset.Asset, target, ancestry location.Location) (asset.Asset, error) {
	reanchored, err := location.Reanchor(fee.ID, target, ancestry)
	if err != nil {
		return asset.Asset{}, err
	}
	return asset.Asset{ID: reanchored, Fun: fee.Fun, Amount: fee.Amount}, nil
}

// BuildSelfReserve implements spec.md §4.5's SelfReserve program: the
// assets originate here and the destination accepts them as a credit from
// us.
func BuildSelfReserve(req *request.TransferRequest, plan *route.Plan, ancestry location.Location) (Program, error) {
	fee, err := reanchorFee(req.Fee, plan.DestChain, ancestry)
	if err != nil {
		return nil, err
	}
	inner := Program{
		{Op: BuyExecution, Fees: fee, WeightLimit: req.DestWeight},
		{Op: DepositAsset, MaxAssets: uint32(req.Assets.Len()), Beneficiary: plan.Recipient},
	}
	return Program{
		{Op: TransferReserveAsset, Assets: req.Assets, Dest: plan.DestChain, Inner: inner},
	}, nil
}

// BuildToReserve implements spec.md §4.5's ToReserve program: the assets
// are burned here and minted on their reserve, which is the destination.
func BuildToReserve(req *request.TransferRequest, plan *route.Plan, ancestry location.Location) (Program, error) {
	fee, err := reanchorFee(req.Fee, plan.DestChain, ancestry)
	if err != nil {
		return nil, err
	}
	inner := Program{
		{Op: BuyExecution, Fees: fee, WeightLimit: req.DestWeight},
		{Op: DepositAsset, MaxAssets: uint32(req.Assets.Len()), Beneficiary: plan.Recipient},
	}
	return Program{
		{Op: WithdrawAsset, Assets: req.Assets},
		{Op: InitiateReserveWithdraw, Assets: req.Assets, Dest: plan.DestChain, Inner: inner},
	}, nil
}

// BuildToNonReserve implements spec.md §4.5's ToNonReserve program: assets
// travel via their reserve, then are forwarded to the destination. The fee
// is split in half between the reserve hop and the destination hop so that
// (invariant 4, spec.md §8) the two BuyExecution amounts sum to the full
// input fee after reanchoring.
func BuildToNonReserve(req *request.TransferRequest, plan *route.Plan, ancestry location.Location) (Program, error) {
	reserve := plan.ReserveChain

	firstHalf := req.Fee.Half()
	secondHalf := req.Fee.Sub(firstHalf.Amount)

	feeAtReserve, err := reanchorFee(firstHalf, reserve, ancestry)
	if err != nil {
		return nil, err
	}
	feeAtDest, err := reanchorFee(secondHalf, plan.DestChain, ancestry)
	if err != nil {
		return nil, err
	}

	reanchoredDest, err := location.Reanchor(plan.DestChain, reserve, ancestry)
	if err != nil {
		return nil, err
	}

	destInner := Program{
		{Op: BuyExecution, Fees: feeAtDest, WeightLimit: req.DestWeight},
		{Op: DepositAsset, MaxAssets: uint32(req.Assets.Len()), Beneficiary: plan.Recipient},
	}
	reserveInner := Program{
		{Op: BuyExecution, Fees: feeAtReserve, WeightLimit: req.DestWeight},
		{Op: DepositReserveAsset, Assets: req.Assets, MaxAssets: uint32(req.Assets.Len()), Dest: reanchoredDest, Inner: destInner},
	}
	return Program{
		{Op: WithdrawAsset, Assets: req.Assets},
		{Op: InitiateReserveWithdraw, Assets: req.Assets, Dest: reserve, Inner: reserveInner},
	}, nil
}

// BuildTransact implements spec.md §4.5's Transact piggyback: one sovereign
// call executed on a remote chain, funded by a fee asset.
func BuildTransact(payload *request.TransactPayload, fee asset.Asset, senderInterior []location.Junction, destWeight uint64, ancestry, destChain location.Location) (Program, error) {
	reanchoredFee, err := reanchorFee(fee, destChain, ancestry)
	if err != nil {
		return nil, err
	}
	return Program{
		{Op: DescendOrigin, Interior: senderInterior},
		{Op: WithdrawAsset, Assets: singleAssetBundle(reanchoredFee)},
		{Op: BuyExecution, Fees: reanchoredFee, WeightLimit: destWeight},
		{Op: Transact, OriginKind: payload.OriginKind, RequireWeightAtMost: destWeight, Call: payload.EncodedCall},
		{Op: RefundSurplus},
		{Op: DepositAsset, MaxAssets: 1, Beneficiary: payload.RefundBeneficiary},
	}, nil
}

func singleAssetBundle(a asset.Asset) *asset.Bundle {
	b := asset.NewBundle(1)
	_ = b.Insert(a)
	return b
}

// Build dispatches on plan.Kind to produce the outbound transfer program(s)
// for req. It returns one program for the non-split cases and two
// (fee-leg, asset-leg) for a split route.
func Build(req *request.TransferRequest, plan *route.Plan, ancestry location.Location) ([]Program, error) {
	if plan.IsSplit() {
		return buildSplit(req, plan, ancestry)
	}
	var (
		p   Program
		err error
	)
	switch plan.Kind {
	case route.SelfReserve:
		p, err = BuildSelfReserve(req, plan, ancestry)
	case route.ToReserve:
		p, err = BuildToReserve(req, plan, ancestry)
	case route.ToNonReserve:
		p, err = BuildToNonReserve(req, plan, ancestry)
	}
	if err != nil {
		return nil, err
	}
	return []Program{p}, nil
}

// buildSplit builds the two-leg program for a fee-reserve != asset-reserve
// route (spec.md §4.4 step 6). Leg A (fee-reserve) is returned first so
// callers dispatch it before leg B, ensuring the remote forwarded fee asset
// exists before leg B spends it (spec.md §5, ordering).
func buildSplit(req *request.TransferRequest, plan *route.Plan, ancestry location.Location) ([]Program, error) {
	split := plan.Split

	feeAtReserve, err := reanchorFee(split.FeeLeg.Send, split.FeeLeg.ReserveChain, ancestry)
	if err != nil {
		return nil, err
	}
	legA := Program{
		{Op: WithdrawAsset, Assets: singleAssetBundle(split.FeeLeg.Send)},
		{
			Op:    InitiateReserveWithdraw,
			Assets: singleAssetBundle(split.FeeLeg.Send),
			Dest:  split.FeeLeg.ReserveChain,
			Inner: Program{
				{Op: BuyExecution, Fees: feeAtReserve, WeightLimit: req.DestWeight},
				{Op: DepositAsset, MaxAssets: 1, Beneficiary: split.FeeLeg.RefundBeneficiary},
			},
		},
	}

	feeAtDest, err := reanchorFee(req.Fee.WithAmount(split.FeeLeg.RetainedForHop), split.AssetLeg.DestChain, ancestry)
	if err != nil {
		return nil, err
	}
	legB := Program{
		{Op: WithdrawAsset, Assets: split.AssetLeg.Assets},
		{
			Op:    InitiateReserveWithdraw,
			Assets: split.AssetLeg.Assets,
			Dest:  split.AssetLeg.DestChain,
			Inner: Program{
				{Op: BuyExecution, Fees: feeAtDest, WeightLimit: req.DestWeight},
				{Op: DepositAsset, MaxAssets: uint32(split.AssetLeg.Assets.Len()), Beneficiary: plan.Recipient},
			},
		},
	}

	return []Program{legA, legB}, nil
}
