// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package program implements the instruction program builder (spec.md
// §4.5): it turns a classified routing plan into the concrete opcode
// sequences that local execution and remote delivery act on.
package program

import (
	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/request"
)

// Opcode enumerates the instruction set a receiving chain's interpreter
// executes (spec.md GLOSSARY, "Instruction program").
type Opcode uint8

const (
	WithdrawAsset Opcode = iota
	BuyExecution
	DepositAsset
	TransferReserveAsset
	InitiateReserveWithdraw
	DepositReserveAsset
	DescendOrigin
	Transact
	RefundSurplus
)

func (o Opcode) String() string {
	switch o {
	case WithdrawAsset:
		return "WithdrawAsset"
	case BuyExecution:
		return "BuyExecution"
	case DepositAsset:
		return "DepositAsset"
	case TransferReserveAsset:
		return "TransferReserveAsset"
	case InitiateReserveWithdraw:
		return "InitiateReserveWithdraw"
	case DepositReserveAsset:
		return "DepositReserveAsset"
	case DescendOrigin:
		return "DescendOrigin"
	case Transact:
		return "Transact"
	case RefundSurplus:
		return "RefundSurplus"
	default:
		return "Unknown"
	}
}

// Instruction is one opcode with the operands its kind carries. Not every
// field is meaningful for every Opcode; see the builder functions for which
// fields each opcode populates.
type Instruction struct {
	Op Opcode

	Assets      *asset.Bundle        // WithdrawAsset, TransferReserveAsset, InitiateReserveWithdraw, DepositReserveAsset, DepositAsset (max-reference)
	Dest        location.Location    // TransferReserveAsset / InitiateReserveWithdraw (reserve) / DepositReserveAsset
	Fees        asset.Asset          // BuyExecution
	WeightLimit uint64               // BuyExecution
	Beneficiary location.Location    // DepositAsset
	MaxAssets   uint32               // DepositAsset / DepositReserveAsset ("max")
	Inner       Program              // TransferReserveAsset / InitiateReserveWithdraw / DepositReserveAsset

	Interior []location.Junction // DescendOrigin

	Call                []byte             // Transact
	OriginKind          request.OriginKind // Transact
	RequireWeightAtMost uint64             // Transact
}

// Program is an ordered instruction sequence.
type Program []Instruction

// Weight is an abstract execution-cost metric, used both for local
// admission and as a remote execution budget (spec.md GLOSSARY).
type Weight uint64

// UnknownWeight is charged to any instruction a Weigher cannot statically
// cost, per spec.md §5: conservative admission that fails rather than
// underpays.
const UnknownWeight Weight = ^Weight(0)
