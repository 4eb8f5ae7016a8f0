// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"fmt"

	"github.com/axislabs/axisvm/go/axis"
	"golang.org/x/crypto/sha3"
)

// Example is an executable description of a contract and an entry point with a (int)->int signature.
type Example struct {
	exampleSpec
	codeHash axis.Hash // the hash of the code
}

// exampleSpec specifies a contract and an entry point with a (int)->int signature.
type exampleSpec struct {
	Name      string
	Code      []byte        // some contract code
	function  uint32        // identifier of the function in the contract to be called
	reference func(int) int // a reference function computing the same function
}

func (s exampleSpec) build() Example {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(s.Code)
	var hash axis.Hash
	hasher.Sum(hash[0:0])
	return Example{
		exampleSpec: s,
		codeHash:    hash,
	}
}

type Result struct {
	Result  int
	UsedGas axis.Gas
}

// GetAllExamples lists the examples available for benchmarks and tests.
func GetAllExamples() []Example {
	return []Example{
		GetSha3Example(),
		GetArithmeticExample(),
		GetGasBurnerExample(),
		GetStaticOverheadExample(),
		GetJumpdestAnalysisExample(),
		GetStopAnalysisExample(),
		GetPush1AnalysisExample(),
		GetPush32AnalysisExample(),
	}
}

// GetExample returns the example with the given name.
func GetExample(name string) (Example, error) {
	for _, example := range GetAllExamples() {
		if example.Name == name {
			return example, nil
		}
	}
	return Example{}, fmt.Errorf("unknown example: %s", name)
}

// RunOn runs this example on the given interpreter, using the given argument.
// The examples do not depend on any chain state, so the execution gets no
// collaborators besides the trace sink.
func (e *Example) RunOn(interpreter axis.Interpreter, argument int) (Result, error) {
	return e.RunWithTrace(interpreter, argument, nil)
}

// RunWithTrace is like RunOn but records the executed instructions in the
// given sink, if any.
func (e *Example) RunWithTrace(interpreter axis.Interpreter, argument int, trace axis.TraceSink) (Result, error) {
	const initialGas = axis.MaxGas
	params := axis.Parameters{
		Variant:  axis.VariantShanghai,
		Gas:      initialGas,
		Code:     e.Code,
		CodeHash: &e.codeHash,
		Input:    encodeArgument(e.function, argument),
	}

	res, err := interpreter.Run(params, axis.Host{Trace: trace})
	if err != nil {
		return Result{}, err
	}
	if !res.Success() {
		return Result{}, fmt.Errorf("execution of %s ended with %v: %v", e.Name, res.Outcome, res.Fault)
	}

	result, err := decodeOutput(res.ReturnData)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Result:  result,
		UsedGas: initialGas - res.GasLeft,
	}, nil
}

// RunReference runs the reference function of this example to produce the expected result.
func (e *Example) RunReference(argument int) int {
	return e.reference(argument)
}

func encodeArgument(function uint32, arg int) []byte {
	data := make([]byte, 4+32) // parameter is padded up to 32 bytes

	// encode function selector in big-endian format
	data[0] = byte(function >> 24)
	data[1] = byte(function >> 16)
	data[2] = byte(function >> 8)
	data[3] = byte(function)

	// encode argument as a big-endian value
	data[4+28] = byte(arg >> 24)
	data[5+28] = byte(arg >> 16)
	data[6+28] = byte(arg >> 8)
	data[7+28] = byte(arg)

	return data
}

func decodeOutput(output []byte) (int, error) {
	if len(output) != 32 {
		return 0, fmt.Errorf("unexpected length of output; wanted 32, got %d", len(output))
	}
	return (int(output[28]) << 24) | (int(output[29]) << 16) | (int(output[30]) << 8) | (int(output[31]) << 0), nil
}
