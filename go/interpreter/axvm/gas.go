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
	"github.com/axislabs/axisvm/go/axis"
	"github.com/axislabs/axisvm/go/axis/vm"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// Price tiers of simple instructions.
const (
	gasQuickStep   axis.Gas = 2
	gasFastestStep axis.Gas = 3
	gasFastStep    axis.Gas = 5
	gasMidStep     axis.Gas = 8
	gasSlowStep    axis.Gas = 10
	gasExtStep     axis.Gas = 20
)

const (
	memoryGas    = params.MemoryGas
	quadCoeffDiv = params.QuadCoeffDiv

	copyGas          = axis.Gas(params.CopyGas)
	keccak256Gas     = axis.Gas(params.Keccak256Gas)
	keccak256WordGas = axis.Gas(params.Keccak256WordGas)
	expGas           = axis.Gas(params.ExpGas)
	expByteGas       = axis.Gas(params.ExpByteEIP158)
	jumpdestGas      = axis.Gas(params.JumpdestGas)
	logGas           = axis.Gas(params.LogGas)
	logTopicGas      = axis.Gas(params.LogTopicGas)
	logDataGas       = axis.Gas(params.LogDataGas)

	sloadGas        = axis.Gas(params.SloadGasEIP2200)
	sstoreSetGas    = axis.Gas(params.SstoreSetGasEIP2200)
	sstoreResetGas  = axis.Gas(params.SstoreResetGasEIP2200)
	balanceGas      = axis.Gas(params.BalanceGasEIP1884)
	extcodeSizeGas  = axis.Gas(params.ExtcodeSizeGasEIP150)
	extcodeCopyGas  = axis.Gas(params.ExtcodeCopyBaseEIP150)
	extcodeHashGas  = axis.Gas(params.ExtcodeHashGasEIP1884)
	selfBalanceGas  = gasFastStep
	selfdestructGas = axis.Gas(params.SelfdestructGasEIP150)
	createGas       = axis.Gas(params.CreateGas)
	create2Gas      = axis.Gas(params.Create2Gas)
	createDataGas   = axis.Gas(params.CreateDataGas)
	callGas         = axis.Gas(params.CallGasEIP150)

	callValueTransferGas    = axis.Gas(params.CallValueTransferGas)
	callNewAccountGas       = axis.Gas(params.CallNewAccountGas)
	callStipend             = axis.Gas(params.CallStipend)
	createBySelfdestructGas = axis.Gas(params.CreateBySelfdestructGas)

	maxCodeSize     = params.MaxCodeSize
	maxCallDepth    = int(params.CallCreateDepth)
	blockHashWindow = 256
)

// getStaticGasPrice returns the part of an instruction's price that does not
// depend on its operands.
func getStaticGasPrice(op vm.OpCode) axis.Gas {
	switch {
	case vm.PUSH1 <= op && op <= vm.PUSH32,
		vm.DUP1 <= op && op <= vm.DUP16,
		vm.SWAP1 <= op && op <= vm.SWAP16:
		return gasFastestStep
	case vm.LOG0 <= op && op <= vm.LOG4:
		return logGas + axis.Gas(op-vm.LOG0)*logTopicGas
	}

	switch op {
	case vm.STOP, vm.RETURN, vm.REVERT:
		return 0
	case vm.ADDRESS, vm.ORIGIN, vm.CALLER, vm.CALLVALUE, vm.CALLDATASIZE,
		vm.CODESIZE, vm.GASPRICE, vm.COINBASE, vm.TIMESTAMP, vm.NUMBER,
		vm.DIFFICULTY, vm.GASLIMIT, vm.CHAINID, vm.BASEFEE, vm.RETURNDATASIZE,
		vm.POP, vm.PC, vm.MSIZE, vm.GAS, vm.PUSH0:
		return gasQuickStep
	case vm.ADD, vm.SUB, vm.LT, vm.GT, vm.SLT, vm.SGT, vm.EQ, vm.ISZERO,
		vm.AND, vm.OR, vm.XOR, vm.NOT, vm.BYTE, vm.SHL, vm.SHR, vm.SAR,
		vm.CALLDATALOAD, vm.CALLDATACOPY, vm.CODECOPY, vm.RETURNDATACOPY,
		vm.MLOAD, vm.MSTORE, vm.MSTORE8:
		return gasFastestStep
	case vm.MUL, vm.DIV, vm.SDIV, vm.MOD, vm.SMOD, vm.SIGNEXTEND, vm.SELFBALANCE:
		return gasFastStep
	case vm.ADDMOD, vm.MULMOD, vm.JUMP:
		return gasMidStep
	case vm.JUMPI, vm.EXP:
		return gasSlowStep
	case vm.BLOCKHASH:
		return gasExtStep
	case vm.JUMPDEST:
		return jumpdestGas
	case vm.SHA3:
		return keccak256Gas
	case vm.BALANCE:
		return balanceGas
	case vm.EXTCODESIZE:
		return extcodeSizeGas
	case vm.EXTCODECOPY:
		return extcodeCopyGas
	case vm.EXTCODEHASH:
		return extcodeHashGas
	case vm.SLOAD:
		return sloadGas
	case vm.SSTORE:
		return 0
	case vm.CREATE:
		return createGas
	case vm.CREATE2:
		return create2Gas
	case vm.CALL, vm.CALLCODE, vm.DELEGATECALL, vm.STATICCALL:
		return callGas
	case vm.SELFDESTRUCT:
		return selfdestructGas
	}
	return 0
}

// addGas adds up gas amounts, saturating at MaxGas.
func addGas(values ...axis.Gas) axis.Gas {
	sum := axis.Gas(0)
	for _, cur := range values {
		if cur >= axis.MaxGas-sum {
			return axis.MaxGas
		}
		sum += cur
	}
	return sum
}

// wordGas returns price*ceil(size/32), saturating at MaxGas.
func wordGas(price axis.Gas, size *uint256.Int) axis.Gas {
	if !size.IsUint64() {
		return axis.MaxGas
	}
	words := axis.SizeInWords(size.Uint64())
	if words > uint64(axis.MaxGas/price) {
		return axis.MaxGas
	}
	return axis.Gas(words) * price
}

// ------------------ Dynamic Gas Functions ------------------

// The dynamic gas functions below inspect the operands of an instruction
// without consuming them. The returned price is charged before the
// instruction is executed.

func memoryGasFunc(offsetPos int, size uint64) gasFunc {
	return func(c *context) (axis.Gas, error) {
		return memoryExpansionGas(c, c.stack.peekN(offsetPos), uint256.NewInt(size))
	}
}

// rangeGasFunc charges for a memory range given by an offset and a size
// operand, plus a per-word price on the size.
func rangeGasFunc(offsetPos, sizePos int, perWord axis.Gas) gasFunc {
	return func(c *context) (axis.Gas, error) {
		size := c.stack.peekN(sizePos)
		mem, err := memoryExpansionGas(c, c.stack.peekN(offsetPos), size)
		if err != nil {
			return 0, err
		}
		if perWord == 0 {
			return mem, nil
		}
		return addGas(mem, wordGas(perWord, size)), nil
	}
}

func gasExp(c *context) (axis.Gas, error) {
	exponent := c.stack.peekN(1)
	return expByteGas * axis.Gas(exponent.ByteLen()), nil
}

func gasLog(c *context) (axis.Gas, error) {
	size := c.stack.peekN(1)
	mem, err := memoryExpansionGas(c, c.stack.peekN(0), size)
	if err != nil {
		return 0, err
	}
	if !size.IsUint64() || size.Uint64() > uint64(axis.MaxGas/logDataGas) {
		return 0, axis.ErrOutOfGas
	}
	return addGas(mem, axis.Gas(size.Uint64())*logDataGas), nil
}

// gasSStore charges the set price when a zero slot becomes non-zero and the
// reset price for all other writes.
func gasSStore(c *context) (axis.Gas, error) {
	if c.host.Storage == nil {
		return 0, axis.ErrMissingCollaborator
	}
	key := axis.Key(c.stack.peekN(0).Bytes32())
	current := c.host.Storage.GetStorage(c.params.Recipient, key)
	if current == (axis.Word{}) && !c.stack.peekN(1).IsZero() {
		return sstoreSetGas, nil
	}
	return sstoreResetGas, nil
}

func gasCreate2(c *context) (axis.Gas, error) {
	return rangeGasFunc(1, 2, keccak256WordGas)(c)
}

// gasCall covers memory expansion for the input and output ranges of a call
// and the surcharges for value transfers. The gas forwarded to the callee is
// deducted by the instruction itself.
func gasCall(kind axis.CallKind) gasFunc {
	return func(c *context) (axis.Gas, error) {
		// Operand layout: gas, address, [value,] inOffset, inSize, outOffset, outSize
		argsPos := 2
		var value *uint256.Int
		if kind == axis.Call || kind == axis.CallCode {
			value = c.stack.peekN(2)
			argsPos = 3
		}
		inEnd, ok := memoryRange(c.stack.peekN(argsPos), c.stack.peekN(argsPos+1))
		if !ok {
			return 0, axis.ErrOutOfGas
		}
		outEnd, ok := memoryRange(c.stack.peekN(argsPos+2), c.stack.peekN(argsPos+3))
		if !ok {
			return 0, axis.ErrOutOfGas
		}
		price := c.memory.expansionCosts(max(inEnd, outEnd))

		if value != nil && !value.IsZero() {
			price = addGas(price, callValueTransferGas)
			if kind == axis.Call {
				if c.host.Ledger == nil {
					return 0, axis.ErrMissingCollaborator
				}
				exists, err := c.host.Ledger.AccountExists(axis.Address(c.stack.peekN(1).Bytes20()))
				if err != nil {
					return 0, err
				}
				if !exists {
					price = addGas(price, callNewAccountGas)
				}
			}
		}
		return price, nil
	}
}

func gasSelfdestruct(c *context) (axis.Gas, error) {
	if c.host.Ledger == nil {
		return 0, axis.ErrMissingCollaborator
	}
	beneficiary := axis.Address(c.stack.peek().Bytes20())
	exists, err := c.host.Ledger.AccountExists(beneficiary)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}
	balance, err := c.host.Ledger.GetBalance(c.params.Recipient)
	if err != nil {
		return 0, err
	}
	if balance == (axis.Value{}) {
		return 0, nil
	}
	return createBySelfdestructGas, nil
}

// callGasLimit returns the gas forwarded to a nested call: at most the
// requested amount, and at most all but one 64th of the available gas.
func callGasLimit(available axis.Gas, requested *uint256.Int) axis.Gas {
	limit := available - available/64
	if !requested.IsUint64() || requested.Uint64() > uint64(limit) {
		return limit
	}
	return axis.Gas(requested.Uint64())
}
