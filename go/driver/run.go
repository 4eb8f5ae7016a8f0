// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/axislabs/axisvm/go/interpreter/axvm"
	"github.com/axislabs/axisvm/go/storage"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var RunCmd = addCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Executes bytecode and prints the outcome of the execution",
	ArgsUsage: "<code in hex>",
	Flags: []cli.Flag{
		InputFlag,
		GasPriceFlag,
		ValueFlag,
		VariantFlag,
		SupervisorFlag,
		SenderFlag,
		DbFlag,
		TraceFlag,
	},
})

// callSetup bundles everything needed to execute a code given on the
// command line.
type callSetup struct {
	context axis.CallContext
	variant axis.Variant
	world   *storage.World
}

func parseCallSetup(context *cli.Context) (callSetup, error) {
	if context.Args().Len() != 1 {
		return callSetup{}, fmt.Errorf("expected exactly one argument, the code in hex, got %d", context.Args().Len())
	}
	code, err := decodeHex(context.Args().First())
	if err != nil {
		return callSetup{}, fmt.Errorf("invalid code: %w", err)
	}
	input, err := InputFlag.Fetch(context)
	if err != nil {
		return callSetup{}, err
	}
	gasPrice, err := GasPriceFlag.Fetch(context)
	if err != nil {
		return callSetup{}, err
	}
	value, err := ValueFlag.Fetch(context)
	if err != nil {
		return callSetup{}, err
	}
	variant, err := VariantFlag.Fetch(context)
	if err != nil {
		return callSetup{}, err
	}
	supervisor, err := SupervisorFlag.Fetch(context)
	if err != nil {
		return callSetup{}, err
	}
	sender, err := SenderFlag.Fetch(context)
	if err != nil {
		return callSetup{}, err
	}

	callContext, err := axis.NewCallContext(supervisor, sender, gasPrice, value)
	if err != nil {
		return callSetup{}, err
	}
	callContext.SetCode(code)
	callContext.SetInput(input)

	world := storage.NewWorld()
	if err := world.SetCode(supervisor, code); err != nil {
		return callSetup{}, err
	}
	return callSetup{
		context: callContext,
		variant: variant,
		world:   world,
	}, nil
}

func (s callSetup) host() axis.Host {
	return axis.Host{
		Storage: s.world,
		Block:   axis.StaticBlockContext{Parameters: axis.BlockParameters{GasLimit: axis.MaxGas}},
		Ledger:  s.world,
		Logs:    s.world,
	}
}

func doRun(context *cli.Context) (err error) {
	setup, err := parseCallSetup(context)
	if err != nil {
		return err
	}
	host := setup.host()

	if path := DbFlag.Fetch(context); path != "" {
		db, err := storage.OpenLevelDB(path)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, db.Close())
		}()
		overlay := storage.NewOverlay(setup.world, db)
		host.Storage = overlay
		host.Ledger = overlay
		host.Logs = overlay
		defer func() {
			err = errors.Join(err, db.Err())
		}()
		log.Debug("Using persistent storage", "path", path)
		result, err := execute(context, setup, host)
		if err != nil {
			return err
		}
		if result.Success() {
			return db.Commit()
		}
		return nil
	}

	_, err = execute(context, setup, host)
	return err
}

func execute(context *cli.Context, setup callSetup, host axis.Host) (axis.Result, error) {
	engine, err := axvm.NewEngine(setup.context, host, axvm.WithVariant(setup.variant))
	if err != nil {
		return axis.Result{}, err
	}
	result, err := engine.Run()
	if err != nil {
		return axis.Result{}, err
	}
	out := context.App.Writer
	if context.Bool(TraceFlag.Name) {
		printTrace(out, engine.Trace())
	}
	printResult(out, result)
	for _, entry := range setup.world.Logs() {
		fmt.Fprintf(out, "log: %v topics=%v data=%s\n", entry.Address, entry.Topics, hexutil.Encode(entry.Data))
	}
	return result, nil
}

func printResult(out io.Writer, result axis.Result) {
	fmt.Fprintf(out, "outcome: %v\n", result.Outcome)
	if result.Fault != nil {
		fmt.Fprintf(out, "fault: %v\n", result.Fault)
	}
	fmt.Fprintf(out, "gas used: %d\n", result.GasUsed)
	fmt.Fprintf(out, "gas left: %d\n", result.GasLeft)
	fmt.Fprintf(out, "return data: %s\n", hexutil.Encode(result.ReturnData))
	for i := len(result.Stack) - 1; i >= 0; i-- {
		fmt.Fprintf(out, "stack[%d]: %v\n", len(result.Stack)-1-i, result.Stack[i])
	}
}

func printTrace(out io.Writer, trace []string) {
	for _, mnemonic := range trace {
		fmt.Fprintln(out, mnemonic)
	}
}
