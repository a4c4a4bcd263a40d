// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/program"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
	"github.com/sankar-boro/xcm-relay/internal/route"
	"github.com/sankar-boro/xcm-relay/internal/router"
	"github.com/sankar-boro/xcm-relay/internal/rpcserver"
	"github.com/sankar-boro/xcm-relay/internal/topology"
)

var (
	senderFlag = cli.StringFlag{Name: "sender", Usage: "hex-encoded sender account id"}
	currencyFlag = cli.StringFlag{Name: "currency", Usage: "currency handle, as configured in the topology file"}
	amountFlag  = cli.StringFlag{Name: "amount", Usage: "decimal amount"}
	feeFlag     = cli.StringFlag{Name: "fee", Usage: "decimal fee amount"}
	destParachainFlag = cli.UintFlag{Name: "dest-parachain", Usage: "destination parachain id"}
	destAccountFlag   = cli.StringFlag{Name: "dest-account", Usage: "hex-encoded recipient account id on the destination chain"}
	destWeightFlag    = cli.Uint64Flag{Name: "dest-weight", Usage: "weight budget to buy on the destination chain", Value: 1_000_000}
	callFlag          = cli.StringFlag{Name: "call", Usage: "hex-encoded call to Transact on the destination chain"}
)

func loadSnapshot(ctx *cli.Context) (*topology.Snapshot, error) {
	return topology.Load(ctx.GlobalString(configFlag.Name))
}

func newRouter(snap *topology.Snapshot) (*router.Router, error) {
	resolver, err := snap.Resolver()
	if err != nil {
		return nil, err
	}
	return router.New(
		snap.Params(),
		resolver,
		router.NewSimpleWeigher(1000),
		router.LoggingExecutor{},
		router.LoggingTransport{},
		nil,
		nil,
	), nil
}

func destLocation(ctx *cli.Context) (location.Location, error) {
	acct, err := hex.DecodeString(ctx.String(destAccountFlag.Name))
	if err != nil {
		return location.Location{}, fmt.Errorf("bad --dest-account: %w", err)
	}
	return location.NewLocation(1, location.Parachain(uint32(ctx.Uint(destParachainFlag.Name))), location.Account(acct)), nil
}

func parseSender(ctx *cli.Context) ([]byte, error) {
	return hex.DecodeString(ctx.String(senderFlag.Name))
}

func parseDecimal(s string) (*uint256.Int, error) {
	return uint256.FromDecimal(s)
}

var serveCommand = cli.Command{
	Name:  "serve",
	Usage: "start the JSON-RPC server",
	Flags: []cli.Flag{cli.StringFlag{Name: "addr", Value: ":8645", Usage: "listen address"}},
	Action: func(ctx *cli.Context) error {
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}
		r, err := newRouter(snap)
		if err != nil {
			return err
		}
		handler, err := rpcserver.New(r)
		if err != nil {
			return err
		}
		addr := ctx.String("addr")
		fmt.Fprintf(os.Stderr, "xcmrouter: listening on %s\n", addr)
		return http.ListenAndServe(addr, handler)
	},
}

var planCommand = cli.Command{
	Name:  "plan",
	Usage: "classify and build a transfer's instruction program without executing or sending it",
	Flags: []cli.Flag{senderFlag, currencyFlag, amountFlag, destParachainFlag, destAccountFlag, destWeightFlag},
	Action: func(ctx *cli.Context) error {
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}
		resolver, err := snap.Resolver()
		if err != nil {
			return err
		}
		sender, err := parseSender(ctx)
		if err != nil {
			return err
		}
		amount, err := parseDecimal(ctx.String(amountFlag.Name))
		if err != nil {
			return err
		}
		dest, err := destLocation(ctx)
		if err != nil {
			return err
		}

		req, err := snap.Params().FromCurrency(sender, ctx.String(currencyFlag.Name), amount, dest, ctx.Uint64(destWeightFlag.Name))
		if err != nil {
			return err
		}
		plan, err := route.Classify(req, resolver)
		if err != nil {
			return err
		}
		programs, err := program.Build(req, plan, resolver.Ancestry())
		if err != nil {
			return err
		}
		printPlan(plan, programs)
		return nil
	},
}

func printPlan(plan *route.Plan, programs []program.Program) {
	fmt.Printf("kind: %s  split: %v  dest: %s  reserve: %s\n", plan.Kind, plan.IsSplit(), plan.DestChain, plan.ReserveChain)
	for i, p := range programs {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"#", "opcode", "detail"})
		for j, instr := range p {
			table.Append([]string{fmt.Sprintf("%d", j), instr.Op.String(), instructionDetail(instr)})
		}
		fmt.Printf("program %d:\n", i)
		table.Render()
	}
}

func instructionDetail(i program.Instruction) string {
	switch i.Op {
	case program.BuyExecution:
		return fmt.Sprintf("fee=%s weightLimit=%d", i.Fees.Amount, i.WeightLimit)
	case program.DepositAsset, program.DepositReserveAsset:
		return fmt.Sprintf("beneficiary=%s maxAssets=%d", i.Beneficiary, i.MaxAssets)
	case program.TransferReserveAsset, program.InitiateReserveWithdraw:
		return fmt.Sprintf("dest=%s", i.Dest)
	case program.Transact:
		return fmt.Sprintf("requireWeightAtMost=%d callBytes=%d", i.RequireWeightAtMost, len(i.Call))
	case program.DescendOrigin:
		return fmt.Sprintf("interior=%v", i.Interior)
	default:
		return ""
	}
}

var transferCommand = cli.Command{
	Name:  "transfer",
	Usage: "transfer a single currency, paying its own fee",
	Flags: []cli.Flag{senderFlag, currencyFlag, amountFlag, destParachainFlag, destAccountFlag, destWeightFlag},
	Action: func(ctx *cli.Context) error {
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}
		r, err := newRouter(snap)
		if err != nil {
			return err
		}
		sender, err := parseSender(ctx)
		if err != nil {
			return err
		}
		amount, err := parseDecimal(ctx.String(amountFlag.Name))
		if err != nil {
			return err
		}
		dest, err := destLocation(ctx)
		if err != nil {
			return err
		}
		return r.Transfer(sender, ctx.String(currencyFlag.Name), amount, dest, ctx.Uint64(destWeightFlag.Name))
	},
}

var transferWithFeeCommand = cli.Command{
	Name:  "transfer-with-fee",
	Usage: "transfer a currency with a separately-specified fee amount",
	Flags: []cli.Flag{senderFlag, currencyFlag, amountFlag, feeFlag, destParachainFlag, destAccountFlag, destWeightFlag},
	Action: func(ctx *cli.Context) error {
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}
		r, err := newRouter(snap)
		if err != nil {
			return err
		}
		sender, err := parseSender(ctx)
		if err != nil {
			return err
		}
		amount, err := parseDecimal(ctx.String(amountFlag.Name))
		if err != nil {
			return err
		}
		fee, err := parseDecimal(ctx.String(feeFlag.Name))
		if err != nil {
			return err
		}
		dest, err := destLocation(ctx)
		if err != nil {
			return err
		}
		return r.TransferWithFee(sender, ctx.String(currencyFlag.Name), amount, fee, dest, ctx.Uint64(destWeightFlag.Name))
	},
}

var transactCommand = cli.Command{
	Name:  "transact",
	Usage: "dispatch a sovereign call on a remote chain, funded by currency already held there",
	Flags: []cli.Flag{senderFlag, currencyFlag, feeFlag, destParachainFlag, destWeightFlag, callFlag},
	Action: func(ctx *cli.Context) error {
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}
		r, err := newRouter(snap)
		if err != nil {
			return err
		}
		sender, err := parseSender(ctx)
		if err != nil {
			return err
		}
		fee, err := parseDecimal(ctx.String(feeFlag.Name))
		if err != nil {
			return err
		}
		call, err := hex.DecodeString(ctx.String(callFlag.Name))
		if err != nil {
			return fmt.Errorf("bad --call: %w", err)
		}
		if len(call) == 0 {
			return rerr.ErrTransactTooLarge
		}
		destChain := location.NewLocation(1, location.Parachain(uint32(ctx.Uint(destParachainFlag.Name))))
		return r.Transact(sender, ctx.String(currencyFlag.Name), destChain, ctx.Uint64(destWeightFlag.Name), call, fee)
	},
}

var transferWithTransactCommand = cli.Command{
	Name:  "transfer-with-transact",
	Usage: "transfer currency into this chain's sovereign sub-account on the destination, then Transact there",
	Flags: []cli.Flag{senderFlag, currencyFlag, amountFlag, feeFlag, destParachainFlag, destWeightFlag, callFlag},
	Action: func(ctx *cli.Context) error {
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}
		r, err := newRouter(snap)
		if err != nil {
			return err
		}
		sender, err := parseSender(ctx)
		if err != nil {
			return err
		}
		amount, err := parseDecimal(ctx.String(amountFlag.Name))
		if err != nil {
			return err
		}
		fee, err := parseDecimal(ctx.String(feeFlag.Name))
		if err != nil {
			return err
		}
		call, err := hex.DecodeString(ctx.String(callFlag.Name))
		if err != nil {
			return fmt.Errorf("bad --call: %w", err)
		}
		destChain := location.NewLocation(1, location.Parachain(uint32(ctx.Uint(destParachainFlag.Name))))
		return r.TransferWithTransact(sender, ctx.String(currencyFlag.Name), amount, destChain, ctx.Uint64(destWeightFlag.Name), call, fee)
	},
}
