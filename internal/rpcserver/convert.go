// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcserver exposes the router's entry points as a JSON-RPC service:
// a single gorilla/rpc server with one registered service carrying every
// entry point.
package rpcserver

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/sankar-boro/xcm-relay/internal/location"
)

// JunctionArg is the wire form of a location.Junction.
type JunctionArg struct {
	Kind  string `json:"kind"`
	Index uint64 `json:"index,omitempty"`
	Hex   string `json:"hex,omitempty"`
}

// LocationArg is the wire form of a location.Location.
type LocationArg struct {
	Parents  uint8         `json:"parents"`
	Interior []JunctionArg `json:"interior"`
}

func (j JunctionArg) toJunction() (location.Junction, error) {
	switch j.Kind {
	case "parachain":
		return location.Parachain(uint32(j.Index)), nil
	case "pallet_instance":
		return location.PalletInstance(uint8(j.Index)), nil
	case "general_index":
		return location.GeneralIndex(j.Index), nil
	case "account":
		b, err := hex.DecodeString(j.Hex)
		if err != nil {
			return location.Junction{}, fmt.Errorf("rpcserver: bad account hex: %w", err)
		}
		return location.Account(b), nil
	case "account_key_20":
		b, err := hex.DecodeString(j.Hex)
		if err != nil {
			return location.Junction{}, fmt.Errorf("rpcserver: bad account_key_20 hex: %w", err)
		}
		return location.AccountKey20(b), nil
	case "general_key":
		b, err := hex.DecodeString(j.Hex)
		if err != nil {
			return location.Junction{}, fmt.Errorf("rpcserver: bad general_key hex: %w", err)
		}
		return location.GeneralKey(b), nil
	default:
		return location.Junction{}, fmt.Errorf("rpcserver: unknown junction kind %q", j.Kind)
	}
}

func (l LocationArg) toLocation() (location.Location, error) {
	out := location.Location{Parents: l.Parents}
	for _, j := range l.Interior {
		jj, err := j.toJunction()
		if err != nil {
			return location.Location{}, err
		}
		out.Interior = append(out.Interior, jj)
	}
	return out, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("rpcserver: bad amount %q: %w", s, err)
	}
	return amount, nil
}
