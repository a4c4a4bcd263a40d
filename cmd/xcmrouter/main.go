// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the topology config file (yaml/json/toml)",
		Value: "topology.yaml",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity (0=crit, 5=trace)",
		Value: 3,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "xcmrouter"
	app.Usage = "cross-consensus asset transfer router"
	app.Flags = []cli.Flag{configFlag, verbosityFlag}
	app.Before = func(ctx *cli.Context) error {
		setupLogging(ctx.GlobalInt(verbosityFlag.Name))
		return nil
	}
	app.Commands = []cli.Command{
		serveCommand,
		planCommand,
		transferCommand,
		transferWithFeeCommand,
		transactCommand,
		transferWithTransactCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(verbosity int) {
	var handler log.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = log.StreamHandler(colorable.NewColorableStderr(), log.TerminalFormat(true))
	} else {
		handler = log.StreamHandler(os.Stderr, log.LogfmtFormat())
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(verbosity), handler))
}
