// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/program"
)

// SimpleWeigher charges a fixed cost per instruction. It is the default
// Weigher for standalone deployments that don't embed a real interpreter's
// benchmarked weight table.
type SimpleWeigher struct {
	PerInstruction program.Weight
}

// NewSimpleWeigher builds a SimpleWeigher charging perInstruction weight
// units per opcode in the program.
func NewSimpleWeigher(perInstruction program.Weight) *SimpleWeigher {
	return &SimpleWeigher{PerInstruction: perInstruction}
}

func (w *SimpleWeigher) Weight(p program.Program) (program.Weight, error) {
	return program.Weight(len(p)) * w.PerInstruction, nil
}

// LoggingExecutor logs each locally-executed leg instead of moving balances.
// It is a reference Executor for environments that embed this router ahead
// of their own settlement layer, which should supply its own Executor that
// actually debits/credits accounts.
type LoggingExecutor struct{}

func (LoggingExecutor) ExecuteInCredit(origin []byte, p program.Program, weightCredit program.Weight) error {
	log.Info("router: executed leg", "origin", origin, "instructions", len(p), "weightCredit", weightCredit)
	return nil
}

// LoggingTransport logs each remote dispatch instead of delivering it over a
// real transport. Reference implementation for standalone deployments.
type LoggingTransport struct{}

func (LoggingTransport) Send(dest location.Location, p program.Program) error {
	log.Info("router: sent program", "dest", dest.String(), "instructions", len(p))
	return nil
}
