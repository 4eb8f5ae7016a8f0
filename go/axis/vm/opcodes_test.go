// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"regexp"
	"slices"
	"testing"
)

func TestOpCode_ValidOpCodes(t *testing.T) {
	noPrettyPrint := regexp.MustCompile(`^OpCode\(0x[0-9a-f]{2}\)$`)
	for i := 0; i < 256; i++ {
		op := OpCode(i)

		want := !noPrettyPrint.MatchString(op.String())
		if op == INVALID {
			want = false
		}
		got := IsValid(op)
		if want != got {
			t.Errorf("invalid classification of instruction %v, wanted %t, got %t", op, want, got)
		}
	}
}

func TestOpCode_ValidOpCodesNoPush(t *testing.T) {
	validOps := ValidOpCodesNoPush()
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		shouldBePresent := IsValid(op) && !op.IsPush()
		if present := slices.Contains(validOps, op); present != shouldBePresent {
			t.Errorf("presence of %v in ValidOpCodesNoPush is %t, wanted %t", op, present, shouldBePresent)
		}
	}
}

func TestOpCode_CanBePrinted(t *testing.T) {
	validName := regexp.MustCompile(`^(OpCode\(0x[0-9a-f]{2}\)|[A-Z][A-Z0-9]+)$`)
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		if !validName.MatchString(op.String()) {
			t.Errorf("Invalid print for op %v (%d)", op, i)
		}
	}
}

func TestOpCode_MnemonicsOfFamilies(t *testing.T) {
	tests := map[OpCode]string{
		STOP:         "STOP",
		SHA3:         "SHA3",
		DIFFICULTY:   "DIFFICULTY",
		PUSH1:        "PUSH1",
		PUSH32:       "PUSH32",
		DUP16:        "DUP16",
		SWAP1:        "SWAP1",
		LOG4:         "LOG4",
		SELFDESTRUCT: "SELFDESTRUCT",
		OpCode(0x0c): "OpCode(0x0c)",
		OpCode(0xef): "OpCode(0xef)",
	}
	for op, want := range tests {
		if got := op.String(); want != got {
			t.Errorf("unexpected mnemonic of 0x%02x, wanted %v, got %v", byte(op), want, got)
		}
	}
}

func TestOpCode_Width(t *testing.T) {
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		want := 1
		if PUSH1 <= op && op <= PUSH32 {
			want = 1 + int(op-PUSH1) + 1
		}
		if got := op.Width(); want != got {
			t.Errorf("unexpected width of %v, wanted %d, got %d", op, want, got)
		}
	}
}

func TestOpCode_NumberOfOpCodes(t *testing.T) {
	axisOpCodes := []OpCode{
		STOP, ADD, MUL, SUB, DIV, SDIV, MOD, SMOD, ADDMOD, MULMOD, EXP, SIGNEXTEND,
		LT, GT, SLT, SGT, EQ, ISZERO, AND, OR, XOR, NOT, BYTE, SHL, SHR, SAR,
		SHA3,
		ADDRESS, BALANCE, ORIGIN, CALLER, CALLVALUE, CALLDATALOAD, CALLDATASIZE, CALLDATACOPY, CODESIZE, CODECOPY, GASPRICE, EXTCODESIZE, EXTCODECOPY, RETURNDATASIZE, RETURNDATACOPY, EXTCODEHASH,
		BLOCKHASH, COINBASE, TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT,
		POP, MLOAD, MSTORE, SLOAD, SSTORE, JUMP, JUMPI, PC, MSIZE, GAS, JUMPDEST,
		PUSH1, PUSH2, PUSH3, PUSH4, PUSH5, PUSH6, PUSH7, PUSH8, PUSH9, PUSH10, PUSH11, PUSH12, PUSH13, PUSH14, PUSH15, PUSH16, PUSH17, PUSH18, PUSH19, PUSH20, PUSH21, PUSH22, PUSH23, PUSH24, PUSH25, PUSH26, PUSH27, PUSH28, PUSH29, PUSH30, PUSH31, PUSH32,
		DUP1, DUP2, DUP3, DUP4, DUP5, DUP6, DUP7, DUP8, DUP9, DUP10, DUP11, DUP12, DUP13, DUP14, DUP15, DUP16,
		SWAP1, SWAP2, SWAP3, SWAP4, SWAP5, SWAP6, SWAP7, SWAP8, SWAP9, SWAP10, SWAP11, SWAP12, SWAP13, SWAP14, SWAP15, SWAP16,
		LOG0, LOG1, LOG2, LOG3, LOG4,
		CREATE, CALL, CALLCODE, RETURN, DELEGATECALL, CREATE2, STATICCALL, REVERT, SELFDESTRUCT,
	}
	shanghaiOpCodes := []OpCode{MSTORE8, CHAINID, SELFBALANCE, BASEFEE, PUSH0}

	all := append(slices.Clone(axisOpCodes), shanghaiOpCodes...)
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		if want, got := slices.Contains(all, op), IsValid(op); want != got {
			t.Errorf("unexpected validity of %v, wanted %t, got %t", op, want, got)
		}
	}
}
