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

import "github.com/axislabs/axisvm/go/axis/vm"

// maxAnalysisCodeLength is the size of the codes produced by
// GenerateAnalysisCode, the largest code a contract may deploy.
const maxAnalysisCodeLength = 0x6000

// GenerateAnalysisCode produces a code returning its argument after jumping
// over a block of repetitions of the given filler. The filler is never
// executed but has to be processed by the jump destination analysis.
func GenerateAnalysisCode(filler []byte) []byte {
	prologue := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.CALLDATALOAD),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH2), 0, 0, // position of the epilogue, set below
		byte(vm.JUMP),
	}
	epilogue := []byte{
		byte(vm.JUMPDEST),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	repetitions := (maxAnalysisCodeLength - len(prologue) - len(epilogue)) / len(filler)
	code := make([]byte, 0, maxAnalysisCodeLength)
	code = append(code, prologue...)
	for i := 0; i < repetitions; i++ {
		code = append(code, filler...)
	}
	target := len(code)
	code[7] = byte(target >> 8)
	code[8] = byte(target)
	return append(code, epilogue...)
}

func newAnalysisExample(name string, filler ...byte) Example {
	return exampleSpec{
		Name:      name,
		Code:      GenerateAnalysisCode(filler),
		reference: identity,
	}.build()
}

func GetJumpdestAnalysisExample() Example {
	return newAnalysisExample("jumpdest", byte(vm.JUMPDEST))
}

func GetStopAnalysisExample() Example {
	return newAnalysisExample("stop", byte(vm.STOP))
}

func GetPush1AnalysisExample() Example {
	return newAnalysisExample("push1", byte(vm.PUSH1), 0)
}

// GetPush32AnalysisExample fills the code with PUSH32 instructions whose
// data bytes would be jump destinations if they were interpreted as code.
func GetPush32AnalysisExample() Example {
	filler := make([]byte, 33)
	filler[0] = byte(vm.PUSH32)
	for i := 1; i < len(filler); i++ {
		filler[i] = byte(vm.JUMPDEST)
	}
	return newAnalysisExample("push32", filler...)
}
