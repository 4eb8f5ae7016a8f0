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
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

// The defaults of the call environment of the run and disasm commands.
const (
	defaultGasPrice = "1000000000"
	defaultValue    = "100000000000000000"
)

type valueFlagType struct {
	cli.StringFlag
}

var GasPriceFlag = &valueFlagType{
	cli.StringFlag{
		Name:    "gas-price",
		Usage:   "price of a unit of gas, in decimal",
		EnvVars: []string{"AXISVM_GAS_PRICE"},
		Value:   defaultGasPrice,
	},
}

var ValueFlag = &valueFlagType{
	cli.StringFlag{
		Name:    "value",
		Usage:   "value funding the call, in decimal; the gas budget is value / gas-price",
		EnvVars: []string{"AXISVM_VALUE"},
		Value:   defaultValue,
	},
}

func (f *valueFlagType) Fetch(context *cli.Context) (axis.Value, error) {
	value, err := uint256.FromDecimal(context.String(f.Name))
	if err != nil {
		return axis.Value{}, fmt.Errorf("invalid %s: %w", f.Name, err)
	}
	return axis.ValueFromUint256(value), nil
}

type variantFlagType struct {
	cli.StringFlag
}

var VariantFlag = &variantFlagType{
	cli.StringFlag{
		Name:    "variant",
		Usage:   "instruction set to run the code on (axis, shanghai)",
		EnvVars: []string{"AXISVM_VARIANT"},
		Value:   axis.VariantAxis.String(),
	},
}

func (f *variantFlagType) Fetch(context *cli.Context) (axis.Variant, error) {
	return axis.ParseVariant(context.String(f.Name))
}

type hexFlagType struct {
	cli.StringFlag
}

var InputFlag = &hexFlagType{
	cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "call data in hex",
		EnvVars: []string{"AXISVM_INPUT"},
	},
}

func (f *hexFlagType) Fetch(context *cli.Context) ([]byte, error) {
	data, err := decodeHex(context.String(f.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", f.Name, err)
	}
	return data, nil
}

type addressFlagType struct {
	cli.StringFlag
}

var SupervisorFlag = &addressFlagType{
	cli.StringFlag{
		Name:    "supervisor",
		Usage:   "address of the contract running the code",
		EnvVars: []string{"AXISVM_SUPERVISOR"},
		Value:   "0x00000000000000000000000000000000000000aa",
	},
}

var SenderFlag = &addressFlagType{
	cli.StringFlag{
		Name:    "sender",
		Usage:   "address of the account invoking the code",
		EnvVars: []string{"AXISVM_SENDER"},
		Value:   "0x00000000000000000000000000000000000000bb",
	},
}

func (f *addressFlagType) Fetch(context *cli.Context) (axis.Address, error) {
	text := context.String(f.Name)
	if !common.IsHexAddress(text) {
		return axis.Address{}, fmt.Errorf("invalid %s: %q is not an address", f.Name, text)
	}
	return axis.Address(common.HexToAddress(text)), nil
}

type dbFlagType struct {
	cli.StringFlag
}

var DbFlag = &dbFlagType{
	cli.StringFlag{
		Name:      "db",
		Usage:     "directory of a LevelDB database keeping contract storage between runs",
		EnvVars:   []string{"AXISVM_DB"},
		TakesFile: true,
	},
}

func (f *dbFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

var TraceFlag = &cli.BoolFlag{
	Name:  "trace",
	Usage: "print the executed instructions",
}

var VerbosityFlag = &cli.IntFlag{
	Name:    "verbosity",
	Usage:   "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
	EnvVars: []string{"AXISVM_VERBOSITY"},
	Value:   3,
}

var cpuProfileFlag = &cli.StringFlag{
	Name:      "cpuprofile",
	Usage:     "store CPU profile in the provided filename",
	TakesFile: true,
}

// setupLogging directs the default logger to stderr at the selected level.
func setupLogging(context *cli.Context) error {
	level := log.FromLegacyLevel(context.Int(VerbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, false)))
	return nil
}

// addCommonFlags adds the flags shared by all commands and wraps the action
// of the command in their handling.
func addCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, cpuProfileFlag)

	action := command.Action
	command.Action = func(context *cli.Context) error {
		if filename := context.String(cpuProfileFlag.Name); filename != "" {
			f, err := os.Create(filename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}
		return action(context)
	}
	return command
}

// decodeHex decodes hex text with an optional 0x prefix.
func decodeHex(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}
	return hexutil.Decode(text)
}
