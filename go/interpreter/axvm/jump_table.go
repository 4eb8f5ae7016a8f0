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

	"github.com/axislabs/axisvm/go/axis"
	"github.com/axislabs/axisvm/go/axis/vm"
)

type (
	executionFunc func(c *context) error
	// gasFunc computes the operand dependent part of an instruction's price.
	// It must not modify the execution state.
	gasFunc func(c *context) (axis.Gas, error)
)

// operation describes how a single opcode is executed.
type operation struct {
	execute     executionFunc
	constantGas axis.Gas
	dynamicGas  gasFunc

	// minStack is the number of operands consumed by the instruction.
	minStack int
	// maxStack is the largest stack size the instruction can run on
	// without exceeding the stack limit.
	maxStack int
}

// instructionSet maps every byte to its operation. Unmapped bytes are nil.
// Instruction sets are built once and never modified afterwards, so they can
// be shared by all executions.
type instructionSet [256]*operation

var (
	axisInstructionSet     = newAxisInstructionSet()
	shanghaiInstructionSet = newShanghaiInstructionSet()
)

func getInstructionSet(variant axis.Variant) (*instructionSet, error) {
	switch variant {
	case axis.VariantAxis:
		return &axisInstructionSet, nil
	case axis.VariantShanghai:
		return &shanghaiInstructionSet, nil
	}
	return nil, fmt.Errorf("unsupported instruction set variant: %v", variant)
}

func (s *instructionSet) define(op vm.OpCode, pops, pushes int, execute executionFunc, dynamicGas gasFunc) {
	s[op] = &operation{
		execute:     execute,
		constantGas: getStaticGasPrice(op),
		dynamicGas:  dynamicGas,
		minStack:    pops,
		maxStack:    maxStackSize + pops - pushes,
	}
}

// simple adapts instructions that cannot fail.
func simple(f func(*context)) executionFunc {
	return func(c *context) error {
		f(c)
		return nil
	}
}

func newAxisInstructionSet() instructionSet {
	s := instructionSet{}

	s.define(vm.STOP, 0, 0, simple(opStop), nil)

	// Arithmetic
	s.define(vm.ADD, 2, 1, simple(opAdd), nil)
	s.define(vm.MUL, 2, 1, simple(opMul), nil)
	s.define(vm.SUB, 2, 1, simple(opSub), nil)
	s.define(vm.DIV, 2, 1, simple(opDiv), nil)
	s.define(vm.SDIV, 2, 1, simple(opSDiv), nil)
	s.define(vm.MOD, 2, 1, simple(opMod), nil)
	s.define(vm.SMOD, 2, 1, simple(opSMod), nil)
	s.define(vm.ADDMOD, 3, 1, simple(opAddMod), nil)
	s.define(vm.MULMOD, 3, 1, simple(opMulMod), nil)
	s.define(vm.EXP, 2, 1, simple(opExp), gasExp)
	s.define(vm.SIGNEXTEND, 2, 1, simple(opSignExtend), nil)

	// Comparison and bitwise logic
	s.define(vm.LT, 2, 1, simple(opLt), nil)
	s.define(vm.GT, 2, 1, simple(opGt), nil)
	s.define(vm.SLT, 2, 1, simple(opSlt), nil)
	s.define(vm.SGT, 2, 1, simple(opSgt), nil)
	s.define(vm.EQ, 2, 1, simple(opEq), nil)
	s.define(vm.ISZERO, 1, 1, simple(opIszero), nil)
	s.define(vm.AND, 2, 1, simple(opAnd), nil)
	s.define(vm.OR, 2, 1, simple(opOr), nil)
	s.define(vm.XOR, 2, 1, simple(opXor), nil)
	s.define(vm.NOT, 1, 1, simple(opNot), nil)
	s.define(vm.BYTE, 2, 1, simple(opByte), nil)
	s.define(vm.SHL, 2, 1, simple(opShl), nil)
	s.define(vm.SHR, 2, 1, simple(opShr), nil)
	s.define(vm.SAR, 2, 1, simple(opSar), nil)

	s.define(vm.SHA3, 2, 1, simple(opSha3), rangeGasFunc(0, 1, keccak256WordGas))

	// Environment
	s.define(vm.ADDRESS, 0, 1, simple(opAddress), nil)
	s.define(vm.BALANCE, 1, 1, opBalance, nil)
	s.define(vm.ORIGIN, 0, 1, simple(opOrigin), nil)
	s.define(vm.CALLER, 0, 1, simple(opCaller), nil)
	s.define(vm.CALLVALUE, 0, 1, simple(opCallvalue), nil)
	s.define(vm.CALLDATALOAD, 1, 1, simple(opCallDataload), nil)
	s.define(vm.CALLDATASIZE, 0, 1, simple(opCallDatasize), nil)
	s.define(vm.CALLDATACOPY, 3, 0, simple(opCallDataCopy), rangeGasFunc(0, 2, copyGas))
	s.define(vm.CODESIZE, 0, 1, simple(opCodeSize), nil)
	s.define(vm.CODECOPY, 3, 0, simple(opCodeCopy), rangeGasFunc(0, 2, copyGas))
	s.define(vm.GASPRICE, 0, 1, simple(opGasPrice), nil)
	s.define(vm.EXTCODESIZE, 1, 1, opExtcodesize, nil)
	s.define(vm.EXTCODECOPY, 4, 0, opExtCodeCopy, rangeGasFunc(1, 3, copyGas))
	s.define(vm.RETURNDATASIZE, 0, 1, simple(opReturnDataSize), nil)
	s.define(vm.RETURNDATACOPY, 3, 0, opReturnDataCopy, rangeGasFunc(0, 2, copyGas))
	s.define(vm.EXTCODEHASH, 1, 1, opExtcodehash, nil)

	// Block information
	s.define(vm.BLOCKHASH, 1, 1, opBlockhash, nil)
	s.define(vm.COINBASE, 0, 1, opCoinbase, nil)
	s.define(vm.TIMESTAMP, 0, 1, opTimestamp, nil)
	s.define(vm.NUMBER, 0, 1, opNumber, nil)
	s.define(vm.DIFFICULTY, 0, 1, opDifficulty, nil)
	s.define(vm.GASLIMIT, 0, 1, opGasLimit, nil)

	// Stack, memory, storage and flow
	s.define(vm.POP, 1, 0, simple(opPop), nil)
	s.define(vm.MLOAD, 1, 1, simple(opMload), memoryGasFunc(0, 32))
	s.define(vm.MSTORE, 2, 0, simple(opMstore), memoryGasFunc(0, 32))
	s.define(vm.SLOAD, 1, 1, opSload, nil)
	s.define(vm.SSTORE, 2, 0, opSstore, gasSStore)
	s.define(vm.JUMP, 1, 0, opJump, nil)
	s.define(vm.JUMPI, 2, 0, opJumpi, nil)
	s.define(vm.PC, 0, 1, simple(opPc), nil)
	s.define(vm.MSIZE, 0, 1, simple(opMsize), nil)
	s.define(vm.GAS, 0, 1, simple(opGas), nil)
	s.define(vm.JUMPDEST, 0, 0, simple(opJumpdest), nil)

	for i := 1; i <= 32; i++ {
		s.define(vm.PUSH1+vm.OpCode(i-1), 0, 1, simple(newOpPush(i)), nil)
	}
	for i := 1; i <= 16; i++ {
		s.define(vm.DUP1+vm.OpCode(i-1), i, i+1, simple(newOpDup(i)), nil)
		s.define(vm.SWAP1+vm.OpCode(i-1), i+1, i+1, simple(newOpSwap(i)), nil)
	}
	for i := 0; i <= 4; i++ {
		s.define(vm.LOG0+vm.OpCode(i), 2+i, 0, newOpLog(i), gasLog)
	}

	// System
	s.define(vm.CREATE, 3, 1, opCreate, rangeGasFunc(1, 2, 0))
	s.define(vm.CALL, 7, 1, opCall, gasCall(axis.Call))
	s.define(vm.CALLCODE, 7, 1, opCallCode, gasCall(axis.CallCode))
	s.define(vm.RETURN, 2, 0, simple(opReturn), rangeGasFunc(0, 1, 0))
	s.define(vm.DELEGATECALL, 6, 1, opDelegateCall, gasCall(axis.DelegateCall))
	s.define(vm.CREATE2, 4, 1, opCreate2, gasCreate2)
	s.define(vm.STATICCALL, 6, 1, opStaticCall, gasCall(axis.StaticCall))
	s.define(vm.REVERT, 2, 0, simple(opRevert), rangeGasFunc(0, 1, 0))
	s.define(vm.SELFDESTRUCT, 1, 0, opSelfdestruct, gasSelfdestruct)

	return s
}

func newShanghaiInstructionSet() instructionSet {
	s := newAxisInstructionSet()
	s.define(vm.MSTORE8, 2, 0, simple(opMstore8), memoryGasFunc(0, 1))
	s.define(vm.CHAINID, 0, 1, opChainId, nil)
	s.define(vm.SELFBALANCE, 0, 1, opSelfbalance, nil)
	s.define(vm.BASEFEE, 0, 1, opBaseFee, nil)
	s.define(vm.PUSH0, 0, 1, simple(opPush0), nil)
	return s
}
