// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axvm

import (
	"fmt"
	"os"

	"github.com/axislabs/axisvm/go/axis"
)

func init() {
	configs := map[string]Config{
		// The configuration to be used for production purposes.
		"axvm": {
			WithShaCache: true,
		},
		"axvm-no-sha-cache": {},
		"axvm-no-analysis-cache": {
			WithShaCache:      true,
			AnalysisCacheSize: -1,
		},
		"axvm-logging": {
			WithShaCache: true,
			runner:       newLogger(os.Stdout),
		},
		"axvm-stats": {
			WithShaCache: true,
			runner:       &statisticRunner{stats: newStatistics()},
		},
	}

	for name, config := range configs {
		config := config
		err := axis.RegisterInterpreterFactory(name, func(any) (axis.Interpreter, error) {
			return NewInterpreter(config)
		})
		if err != nil {
			panic(err)
		}
	}
}

type Config struct {
	// WithShaCache enables the caching of SHA3 results for 32 and 64 byte
	// inputs.
	WithShaCache bool
	// AnalysisCacheSize is the number of jump destination analyses retained.
	// Zero selects a default, negative values disable the cache.
	AnalysisCacheSize int
	runner            runner
}

// Interpreter runs bytecode on the instruction set selected by the
// parameters of each call. Instances are safe for concurrent use.
type Interpreter struct {
	config   Config
	analyzer *jumpDestAnalyzer
}

func NewInterpreter(config Config) (*Interpreter, error) {
	analyzer, err := newJumpDestAnalyzer(config.AnalysisCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}
	return &Interpreter{config: config, analyzer: analyzer}, nil
}

func (v *Interpreter) Run(params axis.Parameters, host axis.Host) (axis.Result, error) {
	instructions, err := getInstructionSet(params.Variant)
	if err != nil {
		return axis.Result{}, err
	}
	config := interpreterConfig{
		withShaCache: v.config.WithShaCache,
		runner:       v.config.runner,
		analyzer:     v.analyzer,
	}
	return run(config, instructions, params, host)
}

// DumpProfile prints the instruction statistics collected so far, if the
// interpreter is configured to collect them.
func (v *Interpreter) DumpProfile() {
	if statsRunner, ok := v.config.runner.(*statisticRunner); ok {
		fmt.Print(statsRunner.getSummary())
	}
}

func (v *Interpreter) ResetProfile() {
	if statsRunner, ok := v.config.runner.(*statisticRunner); ok {
		statsRunner.reset()
	}
}
