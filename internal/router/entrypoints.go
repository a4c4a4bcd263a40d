// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"github.com/holiman/uint256"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/program"
	"github.com/sankar-boro/xcm-relay/internal/request"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
)

// Transfer implements spec.md §6's "transfer": a single currency amount,
// which also pays its own fee.
func (r *Router) Transfer(sender []byte, currency string, amount *uint256.Int, dest location.Location, destWeight uint64) error {
	req, err := r.Params.FromCurrency(sender, currency, amount, dest, destWeight)
	if err != nil {
		return err
	}
	return r.dispatch(req)
}

// TransferMultiAsset implements "transfer_multiasset": a single pre-resolved
// asset which also pays its own fee.
func (r *Router) TransferMultiAsset(sender []byte, a asset.Asset, dest location.Location, destWeight uint64) error {
	req, err := r.Params.FromMultiAsset(sender, a, dest, destWeight)
	if err != nil {
		return err
	}
	return r.dispatch(req)
}

// TransferWithFee implements "transfer_with_fee": a currency amount plus a
// separate fee amount of the same currency.
func (r *Router) TransferWithFee(sender []byte, currency string, amount, fee *uint256.Int, dest location.Location, destWeight uint64) error {
	req, err := r.Params.FromCurrencyWithFee(sender, currency, amount, fee, dest, destWeight)
	if err != nil {
		return err
	}
	return r.dispatch(req)
}

// TransferMultiAssetWithFee implements "transfer_multiasset_with_fee": an
// asset plus an independently-identified fee asset.
func (r *Router) TransferMultiAssetWithFee(sender []byte, a, fee asset.Asset, dest location.Location, destWeight uint64) error {
	req, err := r.Params.FromMultiAssetWithFee(sender, a, fee, dest, destWeight)
	if err != nil {
		return err
	}
	return r.dispatch(req)
}

// TransferMultiCurrencies implements "transfer_multicurrencies": a list of
// (currency, amount) pairs, with the fee identified by feeItem.
func (r *Router) TransferMultiCurrencies(sender []byte, currencies []request.CurrencyAmount, feeItem int, dest location.Location, destWeight uint64) error {
	req, err := r.Params.FromMultiCurrencies(sender, currencies, feeItem, dest, destWeight)
	if err != nil {
		return err
	}
	return r.dispatch(req)
}

// TransferMultiAssets implements "transfer_multiassets": a pre-built asset
// list, with the fee identified by feeItem.
func (r *Router) TransferMultiAssets(sender []byte, assets []asset.Asset, feeItem int, dest location.Location, destWeight uint64) error {
	req, err := r.Params.FromMultiAssets(sender, assets, feeItem, dest, destWeight)
	if err != nil {
		return err
	}
	return r.dispatch(req)
}

// Transact implements spec.md §6's standalone "transact": a sovereign call
// dispatched on destChain, funded by an amount of currency already held in
// this chain's sovereign account there. Unlike the transfer entry points,
// no asset-transfer leg runs locally first — the fee asset is withdrawn and
// spent entirely on the remote side. Any surplus refunds to self's own
// address, unextended (original_source's do_transact).
func (r *Router) Transact(sender []byte, currency string, destChain location.Location, destWeight uint64, encodedCall []byte, transactFee *uint256.Int) error {
	id, ok := r.Params.Currencies.Convert(currency)
	if !ok {
		return rerr.ErrNotCrossChainTransferableCurrency
	}
	fee, err := asset.NewFungible(id, transactFee)
	if err != nil {
		return err
	}
	originAsLocation := r.Params.Accounts.AccountToLocation(sender)
	refund := r.sovereignBeneficiary()
	payload, err := r.Params.Transact(encodedCall, refund)
	if err != nil {
		return err
	}
	return r.sendTransact(destChain, fee, originAsLocation, destWeight, payload)
}

// TransferWithTransact implements "transfer_with_transact": a currency
// transfer to self's sovereign sub-account for sender, followed by a
// Transact dispatched on destChain under a DescendOrigin'd sender identity —
// so the call executes with the just-transferred funds already in place.
// Both the transfer's recipient and the Transact's refund beneficiary are
// that same sub-account (self_location appended with sender's interior,
// original_source's override_recipient / do_transfer_with_transact).
func (r *Router) TransferWithTransact(sender []byte, currency string, amount *uint256.Int, destChain location.Location, destWeight uint64, encodedCall []byte, transactFee *uint256.Int) error {
	originAsLocation := r.Params.Accounts.AccountToLocation(sender)
	beneficiary := r.sovereignBeneficiary(originAsLocation.Interior...)

	id, ok := r.Params.Currencies.Convert(currency)
	if !ok {
		return rerr.ErrNotCrossChainTransferableCurrency
	}
	// destChain, not beneficiary, is the routing destination: beneficiary is
	// self's own address and would resolve to a same-chain transfer if used
	// as dest directly (original_source keeps dest_chain_location and
	// override_recipient as separate parameters for the same reason).
	transferReq, err := r.Params.FromCurrency(sender, currency, amount, destChain, destWeight)
	if err != nil {
		return err
	}
	transferReq.RecipientOverride = &beneficiary

	payload, err := r.Params.Transact(encodedCall, beneficiary)
	if err != nil {
		return err
	}
	fee, err := asset.NewFungible(id, transactFee)
	if err != nil {
		return err
	}
	full := request.WithPiggyback(transferReq, payload)
	full.Fee = fee
	return r.dispatch(full)
}

// sendTransact builds and ships a bare Transact program, independent of the
// normal transfer dispatch pipeline (no asset-transfer leg, no
// TransferredMultiAssets event: spec.md's event is defined for transfers of
// value, and a bare Transact moves nothing held here).
func (r *Router) sendTransact(destChain location.Location, fee asset.Asset, originAsLocation location.Location, destWeight uint64, payload *request.TransactPayload) error {
	p, err := program.BuildTransact(payload, fee, originAsLocation.Interior, destWeight, r.Resolver.Ancestry(), destChain)
	if err != nil {
		r.metrics.observeError(errorCode(err))
		return err
	}
	if err := r.Transport.Send(destChain, p); err != nil {
		wrapped := rerr.ErrSendFailure
		r.metrics.observeError(errorCode(wrapped))
		return wrapped
	}
	return nil
}
