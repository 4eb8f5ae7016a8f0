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

// GetStaticOverheadExample provides the shortest code touching every part of
// the per-call setup of an interpreter: the jump destination analysis of a
// non-empty code, the expansion of memory by CALLDATACOPY and the return
// data produced by RETURN. The result is the argument.
func GetStaticOverheadExample() Example {
	code := []byte{
		byte(vm.PUSH1), 4, // size
		byte(vm.PUSH1), 32, // offset in the input
		byte(vm.PUSH1), 28, // offset in memory
		byte(vm.CALLDATACOPY),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	return exampleSpec{
		Name:      "static_overhead",
		Code:      code,
		reference: identity,
	}.build()
}

func identity(x int) int {
	return x
}
