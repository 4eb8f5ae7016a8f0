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
	"errors"
	"slices"
	"testing"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/axislabs/axisvm/go/axis/vm"
	"github.com/holiman/uint256"
	"go.uber.org/mock/gomock"
)

func neg(v uint64) *uint256.Int {
	return new(uint256.Int).Neg(uint256.NewInt(v))
}

var maxWord = new(uint256.Int).SetAllOne()

func TestInstructions_ArithmeticAndLogic(t *testing.T) {
	tests := []struct {
		op       vm.OpCode
		operands []*uint256.Int // < top first
		want     *uint256.Int
	}{
		{vm.ADD, []*uint256.Int{maxWord, uint256.NewInt(1)}, uint256.NewInt(0)},
		{vm.ADD, []*uint256.Int{uint256.NewInt(1), uint256.NewInt(2)}, uint256.NewInt(3)},
		{vm.SUB, []*uint256.Int{uint256.NewInt(0), uint256.NewInt(1)}, maxWord},
		{vm.SUB, []*uint256.Int{uint256.NewInt(5), uint256.NewInt(3)}, uint256.NewInt(2)},
		{vm.MUL, []*uint256.Int{new(uint256.Int).Lsh(uint256.NewInt(1), 255), uint256.NewInt(2)}, uint256.NewInt(0)},
		{vm.DIV, []*uint256.Int{uint256.NewInt(7), uint256.NewInt(0)}, uint256.NewInt(0)},
		{vm.DIV, []*uint256.Int{uint256.NewInt(7), uint256.NewInt(2)}, uint256.NewInt(3)},
		{vm.SDIV, []*uint256.Int{neg(4), uint256.NewInt(2)}, neg(2)},
		{vm.MOD, []*uint256.Int{uint256.NewInt(7), uint256.NewInt(0)}, uint256.NewInt(0)},
		{vm.MOD, []*uint256.Int{uint256.NewInt(7), uint256.NewInt(3)}, uint256.NewInt(1)},
		{vm.SMOD, []*uint256.Int{neg(7), uint256.NewInt(3)}, neg(1)},
		{vm.ADDMOD, []*uint256.Int{maxWord, uint256.NewInt(2), uint256.NewInt(3)}, uint256.NewInt(2)},
		{vm.MULMOD, []*uint256.Int{uint256.NewInt(3), uint256.NewInt(4), uint256.NewInt(5)}, uint256.NewInt(2)},
		{vm.EXP, []*uint256.Int{uint256.NewInt(2), uint256.NewInt(10)}, uint256.NewInt(1024)},
		{vm.EXP, []*uint256.Int{uint256.NewInt(2), uint256.NewInt(256)}, uint256.NewInt(0)},
		{vm.SIGNEXTEND, []*uint256.Int{uint256.NewInt(0), uint256.NewInt(0xff)}, maxWord},
		{vm.SIGNEXTEND, []*uint256.Int{uint256.NewInt(0), uint256.NewInt(0x7f)}, uint256.NewInt(0x7f)},
		{vm.LT, []*uint256.Int{uint256.NewInt(1), uint256.NewInt(2)}, uint256.NewInt(1)},
		{vm.LT, []*uint256.Int{maxWord, uint256.NewInt(0)}, uint256.NewInt(0)},
		{vm.GT, []*uint256.Int{uint256.NewInt(2), uint256.NewInt(1)}, uint256.NewInt(1)},
		{vm.SLT, []*uint256.Int{neg(1), uint256.NewInt(0)}, uint256.NewInt(1)},
		{vm.SGT, []*uint256.Int{neg(1), uint256.NewInt(0)}, uint256.NewInt(0)},
		{vm.EQ, []*uint256.Int{uint256.NewInt(5), uint256.NewInt(5)}, uint256.NewInt(1)},
		{vm.EQ, []*uint256.Int{uint256.NewInt(5), uint256.NewInt(6)}, uint256.NewInt(0)},
		{vm.ISZERO, []*uint256.Int{uint256.NewInt(0)}, uint256.NewInt(1)},
		{vm.ISZERO, []*uint256.Int{uint256.NewInt(3)}, uint256.NewInt(0)},
		{vm.AND, []*uint256.Int{uint256.NewInt(0b1100), uint256.NewInt(0b1010)}, uint256.NewInt(0b1000)},
		{vm.OR, []*uint256.Int{uint256.NewInt(0b1100), uint256.NewInt(0b1010)}, uint256.NewInt(0b1110)},
		{vm.XOR, []*uint256.Int{uint256.NewInt(0b1100), uint256.NewInt(0b1010)}, uint256.NewInt(0b0110)},
		{vm.NOT, []*uint256.Int{uint256.NewInt(0)}, maxWord},
		{vm.BYTE, []*uint256.Int{uint256.NewInt(31), uint256.NewInt(0xab)}, uint256.NewInt(0xab)},
		{vm.BYTE, []*uint256.Int{uint256.NewInt(30), uint256.NewInt(0xab)}, uint256.NewInt(0)},
		{vm.BYTE, []*uint256.Int{uint256.NewInt(32), maxWord}, uint256.NewInt(0)},
		{vm.SHL, []*uint256.Int{uint256.NewInt(1), uint256.NewInt(1)}, uint256.NewInt(2)},
		{vm.SHL, []*uint256.Int{uint256.NewInt(256), uint256.NewInt(1)}, uint256.NewInt(0)},
		{vm.SHR, []*uint256.Int{uint256.NewInt(1), uint256.NewInt(4)}, uint256.NewInt(2)},
		{vm.SHR, []*uint256.Int{maxWord, maxWord}, uint256.NewInt(0)},
		{vm.SAR, []*uint256.Int{uint256.NewInt(4), neg(16)}, neg(1)},
		{vm.SAR, []*uint256.Int{uint256.NewInt(300), neg(16)}, maxWord},
		{vm.SAR, []*uint256.Int{uint256.NewInt(300), uint256.NewInt(16)}, uint256.NewInt(0)},
	}

	for _, test := range tests {
		t.Run(test.op.String(), func(t *testing.T) {
			c := newTestContext(code(test.op), 1000, &axis.Host{})
			push(c, test.operands...)
			c.step(&shanghaiInstructionSet)

			if want, got := statusRunning, c.status; want != got {
				t.Fatalf("unexpected status, want %v, got %v (%v)", want, got, c.fault)
			}
			if want, got := 1, c.stack.len(); want != got {
				t.Fatalf("unexpected stack size, want %d, got %d", want, got)
			}
			if want, got := test.want, c.stack.peek(); !want.Eq(got) {
				t.Errorf("unexpected result of %v%v, want %v, got %v", test.op, test.operands, want, got)
			}
		})
	}
}

func TestInstructions_PushReadsImmediateData(t *testing.T) {
	tests := map[string]struct {
		code []byte
		want *uint256.Int
	}{
		"push1":             {code(vm.PUSH1, 0x12), uint256.NewInt(0x12)},
		"push2":             {code(vm.PUSH2, 0x12, 0x34), uint256.NewInt(0x1234)},
		"truncated push2":   {code(vm.PUSH2, 0x12), uint256.NewInt(0x1200)},
		"push without data": {code(vm.PUSH3), uint256.NewInt(0)},
		"push32":            {code(vm.PUSH32, maxWord.Bytes()), maxWord},
		"push0":             {code(vm.PUSH0), uint256.NewInt(0)},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestContext(test.code, 100, &axis.Host{})
			c.step(&shanghaiInstructionSet)
			if want, got := test.want, c.stack.peek(); !want.Eq(got) {
				t.Errorf("unexpected value, want %v, got %v", want, got)
			}
			if want, got := vm.OpCode(test.code[0]).Width(), c.pc; want != got {
				t.Errorf("unexpected pc, want %d, got %d", want, got)
			}
		})
	}
}

func TestInstructions_DupCopiesSelectedElement(t *testing.T) {
	for i := 1; i <= 16; i++ {
		c := newTestContext(code(vm.DUP1+vm.OpCode(i-1)), 100, &axis.Host{})
		for j := 16; j >= 1; j-- {
			c.stack.push(uint256.NewInt(uint64(j)))
		}
		before := c.stack.words()
		c.step(&shanghaiInstructionSet)

		if want, got := uint64(i), c.stack.peek().Uint64(); want != got {
			t.Errorf("DUP%d: unexpected top, want %d, got %d", i, want, got)
		}
		if after := c.stack.words(); !slices.Equal(before, after[:len(after)-1]) {
			t.Errorf("DUP%d: stack below the copy was modified", i)
		}
	}
}

func TestInstructions_SwapExchangesTopAndSelectedElement(t *testing.T) {
	for i := 1; i <= 16; i++ {
		c := newTestContext(code(vm.SWAP1+vm.OpCode(i-1)), 100, &axis.Host{})
		for j := 17; j >= 1; j-- {
			c.stack.push(uint256.NewInt(uint64(j)))
		}
		before := c.stack.words()
		c.step(&shanghaiInstructionSet)

		after := c.stack.words()
		top, other := len(after)-1, len(after)-1-i
		before[top], before[other] = before[other], before[top]
		if !slices.Equal(before, after) {
			t.Errorf("SWAP%d: unexpected stack %v", i, after)
		}
	}
}

func TestInstructions_DupAndSwapBeyondStackAreUnderflows(t *testing.T) {
	for _, op := range []vm.OpCode{vm.DUP3, vm.SWAP2} {
		c := newTestContext(code(op), 100, &axis.Host{})
		push(c, uint256.NewInt(1), uint256.NewInt(2))
		c.step(&shanghaiInstructionSet)
		if want, got := axis.ErrStackUnderflow, c.fault; !errors.Is(got, want) {
			t.Errorf("%v: unexpected fault, want %v, got %v", op, want, got)
		}
	}
}

func TestInstructions_CallDataLoadPadsWithZeros(t *testing.T) {
	tests := map[string]struct {
		input  []byte
		offset *uint256.Int
		want   *uint256.Int
	}{
		"full word": {
			input:  append(make([]byte, 31), 7),
			offset: uint256.NewInt(0),
			want:   uint256.NewInt(7),
		},
		"partial word": {
			input:  []byte{1, 2},
			offset: uint256.NewInt(1),
			want:   new(uint256.Int).Lsh(uint256.NewInt(2), 248),
		},
		"beyond input": {
			input:  []byte{1, 2},
			offset: uint256.NewInt(100),
			want:   uint256.NewInt(0),
		},
		"huge offset": {
			input:  []byte{1, 2},
			offset: maxWord,
			want:   uint256.NewInt(0),
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestContext(code(vm.CALLDATALOAD), 100, &axis.Host{})
			c.params.Input = test.input
			push(c, test.offset)
			c.step(&shanghaiInstructionSet)
			if want, got := test.want, c.stack.peek(); !want.Eq(got) {
				t.Errorf("unexpected value, want %v, got %v", want, got)
			}
		})
	}
}

func TestInstructions_CodeCopyOverwritesWithZeroPadding(t *testing.T) {
	program := code(vm.CODECOPY, vm.PUSH1, 0x42)
	c := newTestContext(program, 100, &axis.Host{})
	c.memory.set(0, []byte{9, 9, 9, 9, 9, 9})

	// copy 4 bytes of code starting at 1 to memory offset 1
	push(c, uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(4))
	c.step(&shanghaiInstructionSet)

	if want, got := []byte{9, byte(vm.PUSH1), 0x42, 0, 0, 9}, c.memory.Data()[:6]; !slices.Equal(want, got) {
		t.Errorf("unexpected memory, want %x, got %x", want, got)
	}
	if want, got := axis.Gas(100-3-3), c.gas; want != got {
		t.Errorf("unexpected gas, want %d, got %d", want, got)
	}
}

func TestInstructions_ReturnDataCopyOutOfBounds(t *testing.T) {
	tests := map[string]struct {
		offset, size uint64
		fault        error
	}{
		"inside":         {0, 2, nil},
		"empty at end":   {3, 0, nil},
		"past end":       {2, 2, axis.ErrOutOfBoundsAccess},
		"offset too big": {4, 0, axis.ErrOutOfBoundsAccess},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestContext(code(vm.RETURNDATACOPY), 100, &axis.Host{})
			c.returnData = []byte{1, 2, 3}
			push(c, uint256.NewInt(0), uint256.NewInt(test.offset), uint256.NewInt(test.size))
			c.step(&shanghaiInstructionSet)
			if !errors.Is(c.fault, test.fault) {
				t.Errorf("unexpected fault, want %v, got %v", test.fault, c.fault)
			}
		})
	}
}

func TestInstructions_Sha3HashesMemoryRange(t *testing.T) {
	c := newTestContext(code(vm.SHA3), 1000, &axis.Host{})
	c.memory.set(0, []byte{1, 2, 3})
	push(c, uint256.NewInt(0), uint256.NewInt(3))
	c.step(&shanghaiInstructionSet)

	hash := Keccak256([]byte{1, 2, 3})
	if want, got := new(uint256.Int).SetBytes32(hash[:]), c.stack.peek(); !want.Eq(got) {
		t.Errorf("unexpected hash, want %v, got %v", want, got)
	}
	if want, got := axis.Gas(1000-30-6), c.gas; want != got {
		t.Errorf("unexpected gas, want %d, got %d", want, got)
	}
}

func TestInstructions_EnvironmentQueries(t *testing.T) {
	params := newTestParams(nil, 0)
	params.Value = axis.NewValue(12)
	params.GasPrice = axis.NewValue(3)
	params.Input = []byte{1, 2, 3, 4}

	tests := map[vm.OpCode]*uint256.Int{
		vm.ADDRESS:      new(uint256.Int).SetBytes(testRecipient[:]),
		vm.CALLER:       new(uint256.Int).SetBytes(testSender[:]),
		vm.ORIGIN:       new(uint256.Int).SetBytes(testSender[:]),
		vm.CALLVALUE:    uint256.NewInt(12),
		vm.GASPRICE:     uint256.NewInt(3),
		vm.CALLDATASIZE: uint256.NewInt(4),
		vm.CODESIZE:     uint256.NewInt(1),
		vm.PC:           uint256.NewInt(0),
		vm.MSIZE:        uint256.NewInt(0),
		vm.GAS:          uint256.NewInt(98),
	}
	for op, want := range tests {
		t.Run(op.String(), func(t *testing.T) {
			c := newTestContext(code(op), 100, &axis.Host{})
			params.Code = c.code
			params.Gas = 100
			c.params = params
			c.step(&shanghaiInstructionSet)
			if got := c.stack.peek(); !want.Eq(got) {
				t.Errorf("unexpected value, want %v, got %v", want, got)
			}
		})
	}
}

func TestInstructions_BlockQueriesRequireBlockContext(t *testing.T) {
	ops := []vm.OpCode{
		vm.COINBASE, vm.TIMESTAMP, vm.NUMBER, vm.DIFFICULTY, vm.GASLIMIT,
		vm.CHAINID, vm.BASEFEE,
	}
	for _, op := range ops {
		c := newTestContext(code(op), 100, &axis.Host{})
		c.step(&shanghaiInstructionSet)
		if want, got := axis.ErrMissingCollaborator, c.fault; !errors.Is(got, want) {
			t.Errorf("%v: unexpected fault, want %v, got %v", op, want, got)
		}
	}
}

func TestInstructions_BlockQueriesUseBlockContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	block := axis.NewMockBlockContext(ctrl)
	block.EXPECT().GetBlockParameters().Return(axis.BlockParameters{
		ChainID:     axis.Word{31: 250},
		BlockNumber: 1000,
		Timestamp:   77,
		Coinbase:    axis.Address{19: 5},
		GasLimit:    30_000_000,
		Difficulty:  axis.Hash{31: 9},
		BaseFee:     axis.NewValue(11),
	}).AnyTimes()

	tests := map[vm.OpCode]*uint256.Int{
		vm.COINBASE:   uint256.NewInt(5),
		vm.TIMESTAMP:  uint256.NewInt(77),
		vm.NUMBER:     uint256.NewInt(1000),
		vm.DIFFICULTY: uint256.NewInt(9),
		vm.GASLIMIT:   uint256.NewInt(30_000_000),
		vm.CHAINID:    uint256.NewInt(250),
		vm.BASEFEE:    uint256.NewInt(11),
	}
	for op, want := range tests {
		c := newTestContext(code(op), 100, &axis.Host{Block: block})
		c.step(&shanghaiInstructionSet)
		if got := c.stack.peek(); !want.Eq(got) {
			t.Errorf("%v: unexpected value, want %v, got %v", op, want, got)
		}
	}
}

func TestInstructions_BlockHashCoversRecentBlocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	block := axis.NewMockBlockContext(ctrl)
	block.EXPECT().GetBlockParameters().Return(axis.BlockParameters{BlockNumber: 1000}).AnyTimes()
	block.EXPECT().GetBlockHash(gomock.Any()).DoAndReturn(func(n int64) axis.Hash {
		return axis.Hash{31: byte(n)}
	}).AnyTimes()

	tests := map[uint64]uint64{
		999:  999 % 256,
		744:  744 % 256,
		743:  0,
		1000: 0,
		1001: 0,
	}
	for number, want := range tests {
		c := newTestContext(code(vm.BLOCKHASH), 100, &axis.Host{Block: block})
		push(c, uint256.NewInt(number))
		c.step(&shanghaiInstructionSet)
		if got := c.stack.peek().Uint64(); want != got {
			t.Errorf("unexpected hash of block %d, want %d, got %d", number, want, got)
		}
	}
}

func TestInstructions_AccountQueriesRequireLedger(t *testing.T) {
	for _, op := range []vm.OpCode{vm.BALANCE, vm.EXTCODESIZE, vm.EXTCODEHASH, vm.SELFBALANCE} {
		c := newTestContext(code(op), 10000, &axis.Host{})
		push(c, uint256.NewInt(1))
		c.step(&shanghaiInstructionSet)
		if want, got := axis.ErrMissingCollaborator, c.fault; !errors.Is(got, want) {
			t.Errorf("%v: unexpected fault, want %v, got %v", op, want, got)
		}
	}
}

func TestInstructions_LedgerErrorsAreFaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := axis.NewMockAccountLedger(ctrl)
	injected := errors.New("injected")
	ledger.EXPECT().GetBalance(axis.Address{19: 1}).Return(axis.Value{}, injected)

	c := newTestContext(code(vm.BALANCE), 10000, &axis.Host{Ledger: ledger})
	push(c, uint256.NewInt(1))
	c.step(&shanghaiInstructionSet)
	if want, got := injected, c.fault; !errors.Is(got, want) {
		t.Errorf("unexpected fault, want %v, got %v", want, got)
	}
}

func TestInstructions_AccountQueriesUseLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := axis.NewMockAccountLedger(ctrl)
	target := axis.Address{19: 1}
	ledger.EXPECT().GetBalance(target).Return(axis.NewValue(5), nil)
	ledger.EXPECT().GetBalance(testRecipient).Return(axis.NewValue(6), nil)
	ledger.EXPECT().GetCodeSize(target).Return(7, nil)
	ledger.EXPECT().AccountExists(target).Return(true, nil)
	ledger.EXPECT().GetCodeHash(target).Return(axis.Hash{31: 8}, nil)

	tests := map[vm.OpCode]uint64{
		vm.BALANCE:     5,
		vm.SELFBALANCE: 6,
		vm.EXTCODESIZE: 7,
		vm.EXTCODEHASH: 8,
	}
	for op, want := range tests {
		c := newTestContext(code(op), 10000, &axis.Host{Ledger: ledger})
		if op != vm.SELFBALANCE {
			push(c, uint256.NewInt(1))
		}
		c.step(&shanghaiInstructionSet)
		if got := c.stack.peek().Uint64(); want != got {
			t.Errorf("%v: unexpected value, want %d, got %d", op, want, got)
		}
	}
}

func TestInstructions_ExtCodeHashOfMissingAccountIsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := axis.NewMockAccountLedger(ctrl)
	ledger.EXPECT().AccountExists(axis.Address{19: 1}).Return(false, nil)

	c := newTestContext(code(vm.EXTCODEHASH), 10000, &axis.Host{Ledger: ledger})
	push(c, uint256.NewInt(1))
	c.step(&shanghaiInstructionSet)
	if !c.stack.peek().IsZero() {
		t.Errorf("unexpected hash %v", c.stack.peek())
	}
}

func TestInstructions_ExtCodeCopyCopiesPaddedCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := axis.NewMockAccountLedger(ctrl)
	ledger.EXPECT().GetCode(axis.Address{19: 1}).Return(axis.Code{1, 2, 3}, nil)

	c := newTestContext(code(vm.EXTCODECOPY), 10000, &axis.Host{Ledger: ledger})
	push(c, uint256.NewInt(1), uint256.NewInt(0), uint256.NewInt(1), uint256.NewInt(4))
	c.step(&shanghaiInstructionSet)
	if want, got := []byte{2, 3, 0, 0}, c.memory.Data()[:4]; !slices.Equal(want, got) {
		t.Errorf("unexpected memory, want %x, got %x", want, got)
	}
}

func TestInstructions_LogIsEmittedToSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := axis.NewMockLogSink(ctrl)
	sink.EXPECT().EmitLog(axis.Log{
		Address: testRecipient,
		Topics:  []axis.Hash{{31: 1}, {31: 2}},
		Data:    []byte{0xaa, 0xbb},
	})

	c := newTestContext(code(vm.LOG2), 10000, &axis.Host{Logs: sink})
	c.memory.set(0, []byte{0xaa, 0xbb})
	push(c, uint256.NewInt(0), uint256.NewInt(2), uint256.NewInt(1), uint256.NewInt(2))
	c.step(&shanghaiInstructionSet)

	if want, got := statusRunning, c.status; want != got {
		t.Fatalf("unexpected status, want %v, got %v (%v)", want, got, c.fault)
	}
	if want, got := axis.Gas(10000-375-2*375-2*8), c.gas; want != got {
		t.Errorf("unexpected gas, want %d, got %d", want, got)
	}
}

func TestInstructions_WritesInStaticFramesAreRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := axis.NewMockStorageAdapter(ctrl)
	storage.EXPECT().GetStorage(gomock.Any(), gomock.Any()).Return(axis.Word{}).AnyTimes()
	ledger := axis.NewMockAccountLedger(ctrl)
	ledger.EXPECT().AccountExists(gomock.Any()).Return(true, nil).AnyTimes()
	host := &axis.Host{Storage: storage, Ledger: ledger}

	for _, op := range []vm.OpCode{vm.SSTORE, vm.LOG0, vm.SELFDESTRUCT, vm.CREATE, vm.CREATE2} {
		c := newTestContext(code(op), 100000, host)
		c.params.Static = true
		push(c, uint256.NewInt(0), uint256.NewInt(0), uint256.NewInt(0), uint256.NewInt(0))
		c.step(&shanghaiInstructionSet)
		if want, got := axis.ErrWriteProtection, c.fault; !errors.Is(got, want) {
			t.Errorf("%v: unexpected fault, want %v, got %v", op, want, got)
		}
	}
}

func TestInstructions_SelfDestructHalts(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := axis.NewMockAccountLedger(ctrl)
	beneficiary := axis.Address{19: 1}
	ledger.EXPECT().AccountExists(beneficiary).Return(true, nil)
	ledger.EXPECT().SelfDestruct(testRecipient, beneficiary).Return(nil)

	c := newTestContext(code(vm.SELFDESTRUCT, vm.INVALID), 10000, &axis.Host{Ledger: ledger})
	push(c, uint256.NewInt(1))
	c.step(&shanghaiInstructionSet)
	if want, got := statusSelfDestructed, c.status; want != got {
		t.Errorf("unexpected status, want %v, got %v", want, got)
	}
}
