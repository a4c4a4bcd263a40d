// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package request implements the request validator (spec.md §4.3): it
// normalises the six raw transfer shapes plus the transact piggyback into a
// single canonical TransferRequest, enforcing the invariants of spec.md §3.
package request

import (
	"github.com/holiman/uint256"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
)

// OriginKind is the dispatch origin Transact programs execute under. This
// router only ever constructs SovereignAccount origins (spec.md §3).
type OriginKind uint8

const SovereignAccount OriginKind = 0

// TransactPayload is the opaque call piggybacked onto a transfer, or sent
// alone via the transact entry point.
type TransactPayload struct {
	EncodedCall       []byte
	OriginKind        OriginKind
	RefundBeneficiary location.Location
}

// TransferRequest is the normalised form produced by this package and
// consumed by internal/route and internal/program.
type TransferRequest struct {
	Sender            []byte
	OriginAsLocation  location.Location
	Assets            *asset.Bundle
	Fee               asset.Asset
	Dest              location.Location
	DestWeight        uint64
	Piggyback         *TransactPayload

	// RecipientOverride replaces the recipient normally derived from Dest's
	// non-chain part (original_source's override_recipient, xtokens/lib.rs
	// do_transfer_with_transact): used when the beneficiary cannot be
	// expressed as trailing junctions under Dest, e.g. a sovereign
	// sub-account addressed in this chain's own frame rather than the
	// destination's.
	RecipientOverride *location.Location
}

// CurrencyConverter resolves an opaque currency handle to its identifying
// location (spec.md §6, "convert").
type CurrencyConverter interface {
	Convert(currency string) (location.Location, bool)
}

// AccountLocator expresses an account in self's frame (spec.md §6,
// "account_to_location").
type AccountLocator interface {
	AccountToLocation(account []byte) location.Location
}

// Params bundles the two injected collaborators every validator entry point
// needs, plus the configured budgets.
type Params struct {
	Currencies      CurrencyConverter
	Accounts        AccountLocator
	MaxAssets       int
	MaxTransactSize int
}

func (p Params) newBundle() *asset.Bundle { return asset.NewBundle(p.MaxAssets) }

// CurrencyAmount pairs an opaque currency handle with an amount, as carried
// by transfer_multicurrencies.
type CurrencyAmount struct {
	Currency string
	Amount   *uint256.Int
}

func checkDest(dest location.Location) error {
	if _, ok := dest.ChainPart(); !ok {
		return rerr.ErrInvalidDest
	}
	return nil
}

func (p Params) resolveCurrency(currency string) (location.Location, error) {
	loc, ok := p.Currencies.Convert(currency)
	if !ok {
		return location.Location{}, rerr.ErrNotCrossChainTransferableCurrency
	}
	return loc, nil
}

func zeroCheck(amount *uint256.Int, zeroErr error) error {
	if amount == nil || amount.IsZero() {
		return zeroErr
	}
	return nil
}

// FromCurrency implements the "transfer" entry point: a single currency,
// which also pays its own fee.
func (p Params) FromCurrency(sender []byte, currency string, amount *uint256.Int, dest location.Location, destWeight uint64) (*TransferRequest, error) {
	if err := zeroCheck(amount, rerr.ErrZeroAmount); err != nil {
		return nil, err
	}
	if err := checkDest(dest); err != nil {
		return nil, err
	}
	id, err := p.resolveCurrency(currency)
	if err != nil {
		return nil, err
	}
	a, err := asset.NewFungible(id, amount)
	if err != nil {
		return nil, err
	}
	bundle := p.newBundle()
	if err := bundle.Insert(a); err != nil {
		return nil, err
	}
	return p.finish(sender, bundle, a, dest, destWeight, nil)
}

// FromMultiAsset implements "transfer_multiasset": a single pre-resolved
// asset which also pays its own fee.
func (p Params) FromMultiAsset(sender []byte, a asset.Asset, dest location.Location, destWeight uint64) (*TransferRequest, error) {
	if err := checkDest(dest); err != nil {
		return nil, err
	}
	bundle := p.newBundle()
	if err := bundle.Insert(a); err != nil {
		return nil, err
	}
	return p.finish(sender, bundle, a, dest, destWeight, nil)
}

// FromCurrencyWithFee implements "transfer_with_fee": a currency amount plus
// a separate fee amount of the same currency. Per spec.md §3 Invariant 3,
// both contribute to a single bundle entry of amount+fee, and the fee is a
// designated sub-amount of that entry rather than an additional entry.
func (p Params) FromCurrencyWithFee(sender []byte, currency string, amount, fee *uint256.Int, dest location.Location, destWeight uint64) (*TransferRequest, error) {
	if err := zeroCheck(amount, rerr.ErrZeroAmount); err != nil {
		return nil, err
	}
	if err := zeroCheck(fee, rerr.ErrZeroFee); err != nil {
		return nil, err
	}
	if err := checkDest(dest); err != nil {
		return nil, err
	}
	id, err := p.resolveCurrency(currency)
	if err != nil {
		return nil, err
	}
	bundle := p.newBundle()
	total := new(uint256.Int).Add(amount, fee)
	totalAsset, err := asset.NewFungible(id, total)
	if err != nil {
		return nil, err
	}
	if err := bundle.Insert(totalAsset); err != nil {
		return nil, err
	}
	feeAsset, err := asset.NewFungible(id, fee)
	if err != nil {
		return nil, err
	}
	return p.finish(sender, bundle, feeAsset, dest, destWeight, nil)
}

// FromMultiAssetWithFee implements "transfer_multiasset_with_fee": an asset
// plus an explicit, independently-identified fee asset.
func (p Params) FromMultiAssetWithFee(sender []byte, a, fee asset.Asset, dest location.Location, destWeight uint64) (*TransferRequest, error) {
	if err := checkDest(dest); err != nil {
		return nil, err
	}
	bundle := p.newBundle()
	if err := bundle.Insert(a); err != nil {
		return nil, err
	}
	if !a.ID.Equal(fee.ID) {
		if err := bundle.Insert(fee); err != nil {
			return nil, err
		}
	}
	return p.finish(sender, bundle, fee, dest, destWeight, nil)
}

// FromMultiCurrencies implements "transfer_multicurrencies": a list of
// (currency, amount) pairs, with the fee identified by index into that
// list (spec.md §4.3.3 / original_source's fee_item semantics).
func (p Params) FromMultiCurrencies(sender []byte, currencies []CurrencyAmount, feeItem int, dest location.Location, destWeight uint64) (*TransferRequest, error) {
	if err := checkDest(dest); err != nil {
		return nil, err
	}
	if feeItem < 0 || feeItem >= len(currencies) {
		return nil, rerr.ErrAssetIndexNonExistent
	}
	bundle := p.newBundle()
	var assets []asset.Asset
	for _, ca := range currencies {
		if err := zeroCheck(ca.Amount, rerr.ErrZeroAmount); err != nil {
			return nil, err
		}
		id, err := p.resolveCurrency(ca.Currency)
		if err != nil {
			return nil, err
		}
		a, err := asset.NewFungible(id, ca.Amount)
		if err != nil {
			return nil, err
		}
		if err := bundle.Insert(a); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	fee := assets[feeItem]
	if fee.Amount.IsZero() {
		return nil, rerr.ErrZeroFee
	}
	return p.finish(sender, bundle, fee, dest, destWeight, nil)
}

// FromMultiAssets implements "transfer_multiassets": a pre-built asset
// bundle, with the fee identified by index.
func (p Params) FromMultiAssets(sender []byte, assets []asset.Asset, feeItem int, dest location.Location, destWeight uint64) (*TransferRequest, error) {
	if err := checkDest(dest); err != nil {
		return nil, err
	}
	if feeItem < 0 || feeItem >= len(assets) {
		return nil, rerr.ErrAssetIndexNonExistent
	}
	bundle := p.newBundle()
	for _, a := range assets {
		if err := bundle.Insert(a); err != nil {
			return nil, err
		}
	}
	fee := assets[feeItem]
	if fee.Amount == nil || fee.Amount.IsZero() {
		return nil, rerr.ErrZeroFee
	}
	return p.finish(sender, bundle, fee, dest, destWeight, nil)
}

// finish applies the shape-independent checks (cardinality, same-chain
// rejection deferred to the classifier per spec.md §4.3.5) and assembles
// the canonical request.
func (p Params) finish(sender []byte, bundle *asset.Bundle, fee asset.Asset, dest location.Location, destWeight uint64, piggyback *TransactPayload) (*TransferRequest, error) {
	if bundle.Len() == 0 {
		return nil, rerr.ErrZeroAmount
	}
	if bundle.Len() > p.MaxAssets {
		return nil, rerr.ErrTooManyAssetsBeingSent
	}
	return &TransferRequest{
		Sender:           sender,
		OriginAsLocation: p.Accounts.AccountToLocation(sender),
		Assets:           bundle,
		Fee:              fee,
		Dest:             dest,
		DestWeight:       destWeight,
		Piggyback:        piggyback,
	}, nil
}

// Transact validates a bare Transact piggyback (used standalone by the
// "transact" entry point, or attached to a transfer by
// "transfer_with_transact").
func (p Params) Transact(encodedCall []byte, refundBeneficiary location.Location) (*TransactPayload, error) {
	if len(encodedCall) == 0 || len(encodedCall) > p.MaxTransactSize {
		return nil, rerr.ErrTransactTooLarge
	}
	return &TransactPayload{
		EncodedCall:       append([]byte(nil), encodedCall...),
		OriginKind:        SovereignAccount,
		RefundBeneficiary: refundBeneficiary,
	}, nil
}

// WithPiggyback attaches a validated TransactPayload to an already-built
// TransferRequest, for "transfer_with_transact".
func WithPiggyback(req *TransferRequest, payload *TransactPayload) *TransferRequest {
	out := *req
	out.Piggyback = payload
	return &out
}
