// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcserver

import (
	"net/http"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/request"
	"github.com/sankar-boro/xcm-relay/internal/router"
)

// Service implements the JSON-RPC methods gorilla/rpc dispatches to, one per
// entry point of spec.md §6. Every method follows gorilla/rpc's calling
// convention: func(r *http.Request, args *T, reply *U) error.
type Service struct {
	Router *router.Router
}

// AssetArg is the wire form of an asset.Asset.
type AssetArg struct {
	ID     LocationArg `json:"id"`
	Amount string      `json:"amount"`
}

func (a AssetArg) toAsset() (asset.Asset, error) {
	id, err := a.ID.toLocation()
	if err != nil {
		return asset.Asset{}, err
	}
	amount, err := parseAmount(a.Amount)
	if err != nil {
		return asset.Asset{}, err
	}
	return asset.NewFungible(id, amount)
}

// CurrencyAmountArg is the wire form of request.CurrencyAmount.
type CurrencyAmountArg struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// Reply is the common response shape: every entry point either fully
// succeeds or returns an error via the JSON-RPC envelope, so there is
// nothing else to report back.
type Reply struct {
	OK bool `json:"ok"`
}

func ok(reply *Reply) { reply.OK = true }

// TransferArgs carries "transfer"'s parameters.
type TransferArgs struct {
	Sender     []byte      `json:"sender"`
	Currency   string      `json:"currency"`
	Amount     string      `json:"amount"`
	Dest       LocationArg `json:"dest"`
	DestWeight uint64      `json:"dest_weight"`
}

func (s *Service) Transfer(_ *http.Request, args *TransferArgs, reply *Reply) error {
	amount, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	dest, err := args.Dest.toLocation()
	if err != nil {
		return err
	}
	if err := s.Router.Transfer(args.Sender, args.Currency, amount, dest, args.DestWeight); err != nil {
		return err
	}
	ok(reply)
	return nil
}

// TransferMultiAssetArgs carries "transfer_multiasset"'s parameters.
type TransferMultiAssetArgs struct {
	Sender     []byte      `json:"sender"`
	Asset      AssetArg    `json:"asset"`
	Dest       LocationArg `json:"dest"`
	DestWeight uint64      `json:"dest_weight"`
}

func (s *Service) TransferMultiAsset(_ *http.Request, args *TransferMultiAssetArgs, reply *Reply) error {
	a, err := args.Asset.toAsset()
	if err != nil {
		return err
	}
	dest, err := args.Dest.toLocation()
	if err != nil {
		return err
	}
	if err := s.Router.TransferMultiAsset(args.Sender, a, dest, args.DestWeight); err != nil {
		return err
	}
	ok(reply)
	return nil
}

// TransferWithFeeArgs carries "transfer_with_fee"'s parameters.
type TransferWithFeeArgs struct {
	Sender     []byte      `json:"sender"`
	Currency   string      `json:"currency"`
	Amount     string      `json:"amount"`
	Fee        string      `json:"fee"`
	Dest       LocationArg `json:"dest"`
	DestWeight uint64      `json:"dest_weight"`
}

func (s *Service) TransferWithFee(_ *http.Request, args *TransferWithFeeArgs, reply *Reply) error {
	amount, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	fee, err := parseAmount(args.Fee)
	if err != nil {
		return err
	}
	dest, err := args.Dest.toLocation()
	if err != nil {
		return err
	}
	if err := s.Router.TransferWithFee(args.Sender, args.Currency, amount, fee, dest, args.DestWeight); err != nil {
		return err
	}
	ok(reply)
	return nil
}

// TransferMultiAssetWithFeeArgs carries "transfer_multiasset_with_fee"'s
// parameters.
type TransferMultiAssetWithFeeArgs struct {
	Sender     []byte      `json:"sender"`
	Asset      AssetArg    `json:"asset"`
	Fee        AssetArg    `json:"fee"`
	Dest       LocationArg `json:"dest"`
	DestWeight uint64      `json:"dest_weight"`
}

func (s *Service) TransferMultiAssetWithFee(_ *http.Request, args *TransferMultiAssetWithFeeArgs, reply *Reply) error {
	a, err := args.Asset.toAsset()
	if err != nil {
		return err
	}
	fee, err := args.Fee.toAsset()
	if err != nil {
		return err
	}
	dest, err := args.Dest.toLocation()
	if err != nil {
		return err
	}
	if err := s.Router.TransferMultiAssetWithFee(args.Sender, a, fee, dest, args.DestWeight); err != nil {
		return err
	}
	ok(reply)
	return nil
}

// TransferMultiCurrenciesArgs carries "transfer_multicurrencies"'s
// parameters.
type TransferMultiCurrenciesArgs struct {
	Sender     []byte              `json:"sender"`
	Currencies []CurrencyAmountArg `json:"currencies"`
	FeeItem    int                 `json:"fee_item"`
	Dest       LocationArg         `json:"dest"`
	DestWeight uint64              `json:"dest_weight"`
}

func (s *Service) TransferMultiCurrencies(_ *http.Request, args *TransferMultiCurrenciesArgs, reply *Reply) error {
	currencies := make([]request.CurrencyAmount, len(args.Currencies))
	for i, c := range args.Currencies {
		amount, err := parseAmount(c.Amount)
		if err != nil {
			return err
		}
		currencies[i] = request.CurrencyAmount{Currency: c.Currency, Amount: amount}
	}
	dest, err := args.Dest.toLocation()
	if err != nil {
		return err
	}
	if err := s.Router.TransferMultiCurrencies(args.Sender, currencies, args.FeeItem, dest, args.DestWeight); err != nil {
		return err
	}
	ok(reply)
	return nil
}

// TransferMultiAssetsArgs carries "transfer_multiassets"'s parameters.
type TransferMultiAssetsArgs struct {
	Sender     []byte      `json:"sender"`
	Assets     []AssetArg  `json:"assets"`
	FeeItem    int         `json:"fee_item"`
	Dest       LocationArg `json:"dest"`
	DestWeight uint64      `json:"dest_weight"`
}

func (s *Service) TransferMultiAssets(_ *http.Request, args *TransferMultiAssetsArgs, reply *Reply) error {
	assets := make([]asset.Asset, len(args.Assets))
	for i, a := range args.Assets {
		converted, err := a.toAsset()
		if err != nil {
			return err
		}
		assets[i] = converted
	}
	dest, err := args.Dest.toLocation()
	if err != nil {
		return err
	}
	if err := s.Router.TransferMultiAssets(args.Sender, assets, args.FeeItem, dest, args.DestWeight); err != nil {
		return err
	}
	ok(reply)
	return nil
}

// TransactArgs carries the standalone "transact"'s parameters.
type TransactArgs struct {
	Sender      []byte      `json:"sender"`
	Currency    string      `json:"currency"`
	DestChain   LocationArg `json:"dest_chain"`
	DestWeight  uint64      `json:"dest_weight"`
	EncodedCall []byte      `json:"encoded_call"`
	TransactFee string      `json:"transact_fee"`
}

func (s *Service) Transact(_ *http.Request, args *TransactArgs, reply *Reply) error {
	destChain, err := args.DestChain.toLocation()
	if err != nil {
		return err
	}
	fee, err := parseAmount(args.TransactFee)
	if err != nil {
		return err
	}
	if err := s.Router.Transact(args.Sender, args.Currency, destChain, args.DestWeight, args.EncodedCall, fee); err != nil {
		return err
	}
	ok(reply)
	return nil
}

// TransferWithTransactArgs carries "transfer_with_transact"'s parameters.
type TransferWithTransactArgs struct {
	Sender      []byte      `json:"sender"`
	Currency    string      `json:"currency"`
	Amount      string      `json:"amount"`
	DestChain   LocationArg `json:"dest_chain"`
	DestWeight  uint64      `json:"dest_weight"`
	EncodedCall []byte      `json:"encoded_call"`
	TransactFee string      `json:"transact_fee"`
}

func (s *Service) TransferWithTransact(_ *http.Request, args *TransferWithTransactArgs, reply *Reply) error {
	amount, err := parseAmount(args.Amount)
	if err != nil {
		return err
	}
	destChain, err := args.DestChain.toLocation()
	if err != nil {
		return err
	}
	fee, err := parseAmount(args.TransactFee)
	if err != nil {
		return err
	}
	if err := s.Router.TransferWithTransact(args.Sender, args.Currency, amount, destChain, args.DestWeight, args.EncodedCall, fee); err != nil {
		return err
	}
	ok(reply)
	return nil
}
