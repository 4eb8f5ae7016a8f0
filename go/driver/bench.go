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
	"context"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/axislabs/axisvm/go/examples"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

type filterFlagType struct {
	cli.StringFlag
}

var FilterFlag = &filterFlagType{
	cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "run only examples which name matches the given regex",
		Value:   ".*",
	},
}

func (f *filterFlagType) Fetch(context *cli.Context) (*regexp.Regexp, error) {
	return regexp.Compile(context.String(f.Name))
}

type jobsFlagType struct {
	cli.IntFlag
}

var JobsFlag = &jobsFlagType{
	cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "number of jobs run simultaneously",
		Value:   runtime.NumCPU(),
	},
}

func (f *jobsFlagType) Fetch(context *cli.Context) int {
	if jobs := context.Int(f.Name); jobs > 0 {
		return jobs
	}
	return runtime.NumCPU()
}

var runsFlag = &cli.IntFlag{
	Name:  "runs",
	Usage: "number of executions of each example",
	Value: 1000,
}

var argumentFlag = &cli.IntFlag{
	Name:  "argument",
	Usage: "argument passed to the examples",
	Value: 10,
}

var interpreterFlag = &cli.StringFlag{
	Name:  "interpreter",
	Usage: "registered interpreter configuration to benchmark, e.g. axvm, axvm-no-sha-cache or axvm-stats",
	Value: "axvm",
}

var BenchCmd = addCommonFlags(cli.Command{
	Action: doBench,
	Name:   "bench",
	Usage:  "Runs the example contracts and reports the throughput of the interpreter",
	Flags: []cli.Flag{
		FilterFlag,
		JobsFlag,
		runsFlag,
		argumentFlag,
		interpreterFlag,
	},
})

// profiler is implemented by interpreters collecting instruction statistics.
type profiler interface {
	DumpProfile()
	ResetProfile()
}

func doBench(context *cli.Context) error {
	filter, err := FilterFlag.Fetch(context)
	if err != nil {
		return err
	}
	name := context.String(interpreterFlag.Name)
	interpreter, err := axis.NewInterpreter(name)
	if err != nil {
		return err
	}
	jobs := JobsFlag.Fetch(context)
	runs := context.Int(runsFlag.Name)
	argument := context.Int(argumentFlag.Name)

	log.Info("Running benchmarks", "interpreter", name, "jobs", jobs, "runs", runs)
	for _, example := range examples.GetAllExamples() {
		if !filter.MatchString(example.Name) {
			continue
		}
		summary, err := benchmark(interpreter, example, argument, runs, jobs)
		if err != nil {
			return fmt.Errorf("benchmark %s failed: %w", example.Name, err)
		}
		summary.print(context.App.Writer)
	}

	if p, ok := interpreter.(profiler); ok {
		p.DumpProfile()
		p.ResetProfile()
	}
	return nil
}

type benchSummary struct {
	name    string
	runs    int
	gas     axis.Gas
	elapsed time.Duration
}

func (s benchSummary) print(out io.Writer) {
	seconds := s.elapsed.Seconds()
	if seconds <= 0 {
		seconds = 1e-9
	}
	fmt.Fprintf(out,
		"%-16s %8d runs in %12v, ~%s runs/s, ~%sgas/s\n",
		s.name, s.runs, s.elapsed.Round(time.Microsecond),
		unitconv.FormatPrefix(float64(s.runs)/seconds, unitconv.SI, 1),
		unitconv.FormatPrefix(float64(s.gas)/seconds, unitconv.SI, 1),
	)
}

// benchmark runs the example the given number of times on up to jobs
// goroutines and checks every result against the reference.
func benchmark(interpreter axis.Interpreter, example examples.Example, argument, runs, jobs int) (benchSummary, error) {
	want := example.RunReference(argument)
	var gas atomic.Int64

	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(jobs)
	start := time.Now()
	for i := 0; i < runs; i++ {
		group.Go(func() error {
			got, err := example.RunOn(interpreter, argument)
			if err != nil {
				return err
			}
			if want != got.Result {
				return fmt.Errorf("unexpected result, wanted %d, got %d", want, got.Result)
			}
			gas.Add(int64(got.UsedGas))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return benchSummary{}, err
	}
	return benchSummary{
		name:    example.Name,
		runs:    runs,
		gas:     axis.Gas(gas.Load()),
		elapsed: time.Since(start),
	}, nil
}
