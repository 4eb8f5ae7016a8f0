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
	"io"

	"github.com/axislabs/axisvm/go/axis/vm"
	"github.com/axislabs/axisvm/go/interpreter/axvm"
	"github.com/urfave/cli/v2"
)

var staticFlag = &cli.BoolFlag{
	Name:  "static",
	Usage: "list the instructions of the code instead of the executed ones",
}

var DisasmCmd = addCommonFlags(cli.Command{
	Action:    doDisasm,
	Name:      "disasm",
	Usage:     "Prints the instructions executed by a code, one per line",
	ArgsUsage: "<code in hex>",
	Flags: []cli.Flag{
		InputFlag,
		GasPriceFlag,
		ValueFlag,
		VariantFlag,
		SupervisorFlag,
		SenderFlag,
		staticFlag,
	},
})

func doDisasm(context *cli.Context) error {
	setup, err := parseCallSetup(context)
	if err != nil {
		return err
	}
	out := context.App.Writer
	if context.Bool(staticFlag.Name) {
		listCode(out, setup.context.Code())
		return nil
	}

	engine, err := axvm.NewEngine(setup.context, setup.host(), axvm.WithVariant(setup.variant))
	if err != nil {
		return err
	}
	if _, err := engine.Run(); err != nil {
		return err
	}
	printTrace(out, engine.Trace())
	return nil
}

// listCode prints every instruction of the code with its position and
// immediate data. Truncated push data at the end of the code is printed as
// far as present.
func listCode(out io.Writer, code []byte) {
	for pc := 0; pc < len(code); {
		op := vm.OpCode(code[pc])
		width := op.Width()
		if width == 1 {
			fmt.Fprintf(out, "%04x: %v\n", pc, op)
		} else {
			data := code[pc+1 : min(pc+width, len(code))]
			fmt.Fprintf(out, "%04x: %v 0x%x\n", pc, op, data)
		}
		pc += width
	}
}
