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
	"github.com/holiman/uint256"
)

func opStop(c *context) {
	c.status = statusStopped
}

// endWithResult retains the memory range given by the top two stack
// elements as the output of the frame.
func endWithResult(c *context) {
	offset, size := c.stack.pop(), c.stack.pop()
	// The range has been validated and paid for by the gas function.
	data := c.memory.getSlice(offset.Uint64(), size.Uint64())
	c.output = append([]byte(nil), data...)
}

func opReturn(c *context) {
	endWithResult(c)
	c.status = statusReturned
}

func opRevert(c *context) {
	endWithResult(c)
	c.status = statusReverted
}

func opPc(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(c.pc))
}

// checkJumpDest verifies that the destination is a JUMPDEST instruction
// that is not part of the immediate data of a PUSH instruction.
func checkJumpDest(c *context, destination *uint256.Int) error {
	if !destination.IsUint64() || destination.Uint64() >= uint64(len(c.code)) {
		return axis.ErrInvalidJumpDestination
	}
	if c.jumpDests == nil {
		c.jumpDests = c.analyzer.analyze(c.code, c.params.CodeHash)
	}
	if !c.jumpDests.isJumpDest(destination.Uint64()) {
		return axis.ErrInvalidJumpDestination
	}
	return nil
}

func opJump(c *context) error {
	destination := c.stack.pop()
	if err := checkJumpDest(c, destination); err != nil {
		return err
	}
	// The loop advances the pc after the instruction.
	c.pc = int(destination.Uint64()) - 1
	return nil
}

func opJumpi(c *context) error {
	destination := c.stack.pop()
	condition := c.stack.pop()
	if condition.IsZero() {
		return nil
	}
	if err := checkJumpDest(c, destination); err != nil {
		return err
	}
	c.pc = int(destination.Uint64()) - 1
	return nil
}

func opJumpdest(*context) {}

func opPop(c *context) {
	c.stack.pop()
}

// newOpPush creates the handler of PUSHn. Immediate data reaching past the
// end of the code is padded with zeros on the right.
func newOpPush(n int) func(*context) {
	return func(c *context) {
		var value [32]byte
		start := c.pc + 1
		if start < len(c.code) {
			copy(value[:n], c.code[start:])
		}
		c.stack.pushUndefined().SetBytes(value[:n])
		c.pc += n
	}
}

func opPush0(c *context) {
	c.stack.pushUndefined().Clear()
}

func newOpDup(pos int) func(*context) {
	return func(c *context) {
		c.stack.dup(pos - 1)
	}
}

func newOpSwap(pos int) func(*context) {
	return func(c *context) {
		c.stack.swap(pos)
	}
}

func opMstore(c *context) {
	offset, value := c.stack.pop(), c.stack.pop()
	c.memory.setWord(offset.Uint64(), value)
}

func opMstore8(c *context) {
	offset, value := c.stack.pop(), c.stack.pop()
	c.memory.setByte(offset.Uint64(), byte(value.Uint64()))
}

func opMload(c *context) {
	top := c.stack.peek()
	c.memory.readWord(top.Uint64(), top)
}

func opMsize(c *context) {
	c.stack.pushUndefined().SetUint64(c.memory.length())
}

func opSstore(c *context) error {
	if c.params.Static {
		return axis.ErrWriteProtection
	}
	key := axis.Key(c.stack.pop().Bytes32())
	value := axis.Word(c.stack.pop().Bytes32())
	c.host.Storage.SetStorage(c.params.Recipient, key, value)
	return nil
}

func opSload(c *context) error {
	if c.host.Storage == nil {
		return axis.ErrMissingCollaborator
	}
	top := c.stack.peek()
	value := c.host.Storage.GetStorage(c.params.Recipient, axis.Key(top.Bytes32()))
	top.SetBytes32(value[:])
	return nil
}

func opCaller(c *context) {
	c.stack.pushUndefined().SetBytes20(c.params.Sender[:])
}

func opCallvalue(c *context) {
	c.stack.pushUndefined().SetBytes32(c.params.Value[:])
}

func opCallDatasize(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(len(c.params.Input)))
}

func opCallDataload(c *context) {
	top := c.stack.peek()
	offset, overflow := top.Uint64WithOverflow()
	if overflow {
		top.Clear()
		return
	}
	top.SetBytes32(getData(c.params.Input, offset, 32))
}

func opCallDataCopy(c *context) {
	memOffset, dataOffset, length := c.stack.pop(), c.stack.pop(), c.stack.pop()
	copyPadded(c, memOffset, c.params.Input, dataOffset, length)
}

// copyPadded copies length bytes of data starting at dataOffset into memory
// at memOffset; bytes beyond the end of data are zero.
func copyPadded(c *context, memOffset *uint256.Int, data []byte, dataOffset, length *uint256.Int) {
	if length.IsZero() {
		return
	}
	start, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		start = ^uint64(0)
	}
	target := c.memory.getSlice(memOffset.Uint64(), length.Uint64())
	copy(target, getData(data, start, length.Uint64()))
}

// getData returns size bytes of data starting at start, right-padded with
// zeros where data is too short.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length || end < start {
		end = length
	}
	res := make([]byte, int(size))
	copy(res, data[start:end])
	return res
}

func opAnd(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.And(a, b)
}

func opOr(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Or(a, b)
}

func opNot(c *context) {
	a := c.stack.peek()
	a.Not(a)
}

func opXor(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Xor(a, b)
}

func opIszero(c *context) {
	top := c.stack.peek()
	if top.IsZero() {
		top.SetOne()
	} else {
		top.Clear()
	}
}

// setBool replaces z by 1 if cond holds, by 0 otherwise.
func setBool(z *uint256.Int, cond bool) {
	if cond {
		z.SetOne()
	} else {
		z.Clear()
	}
}

func opEq(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	setBool(b, a.Eq(b))
}

func opLt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	setBool(b, a.Lt(b))
}

func opGt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	setBool(b, a.Gt(b))
}

func opSlt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	setBool(b, a.Slt(b))
}

func opSgt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	setBool(b, a.Sgt(b))
}

func opShr(c *context) {
	shift := c.stack.pop()
	value := c.stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
}

func opShl(c *context) {
	shift := c.stack.pop()
	value := c.stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
}

func opSar(c *context) {
	shift := c.stack.pop()
	value := c.stack.peek()
	if shift.GtUint64(255) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return
	}
	value.SRsh(value, uint(shift.Uint64()))
}

func opSignExtend(c *context) {
	back, num := c.stack.pop(), c.stack.peek()
	num.ExtendSign(num, back)
}

func opByte(c *context) {
	th, val := c.stack.pop(), c.stack.peek()
	val.Byte(th)
}

func opAdd(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Add(a, b)
}

func opSub(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Sub(a, b)
}

func opMul(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Mul(a, b)
}

func opMulMod(c *context) {
	a := c.stack.pop()
	b := c.stack.pop()
	n := c.stack.peek()
	n.MulMod(a, b, n)
}

func opDiv(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Div(a, b)
}

func opSDiv(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.SDiv(a, b)
}

func opMod(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Mod(a, b)
}

func opAddMod(c *context) {
	a := c.stack.pop()
	b := c.stack.pop()
	n := c.stack.peek()
	n.AddMod(a, b, n)
}

func opSMod(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.SMod(a, b)
}

func opExp(c *context) {
	base, exponent := c.stack.pop(), c.stack.peek()
	exponent.Exp(base, exponent)
}

func opSha3(c *context) {
	offset, size := c.stack.pop(), c.stack.peek()
	data := c.memory.getSlice(offset.Uint64(), size.Uint64())
	hash := c.hash(data)
	size.SetBytes32(hash[:])
}

func opGas(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(c.gas))
}

func opGasPrice(c *context) {
	c.stack.pushUndefined().SetBytes32(c.params.GasPrice[:])
}

func opAddress(c *context) {
	c.stack.pushUndefined().SetBytes20(c.params.Recipient[:])
}

func opOrigin(c *context) {
	c.stack.pushUndefined().SetBytes20(c.params.Origin[:])
}

func opCodeSize(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(len(c.code)))
}

func opCodeCopy(c *context) {
	memOffset, codeOffset, length := c.stack.pop(), c.stack.pop(), c.stack.pop()
	copyPadded(c, memOffset, c.code, codeOffset, length)
}

func opReturnDataSize(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(len(c.returnData)))
}

func opReturnDataCopy(c *context) error {
	memOffset, dataOffset, length := c.stack.pop(), c.stack.pop(), c.stack.pop()

	offset, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return axis.ErrOutOfBoundsAccess
	}
	end := offset + length.Uint64()
	if end < offset || end > uint64(len(c.returnData)) {
		return axis.ErrOutOfBoundsAccess
	}
	if length.IsZero() {
		return nil
	}
	c.memory.set(memOffset.Uint64(), c.returnData[offset:end])
	return nil
}

// ------------------ Block Context ------------------

func blockParameters(c *context) (axis.BlockParameters, error) {
	if c.host.Block == nil {
		return axis.BlockParameters{}, axis.ErrMissingCollaborator
	}
	return c.host.Block.GetBlockParameters(), nil
}

// opBlockhash answers for the 256 most recent blocks and yields zero for
// all other block numbers.
func opBlockhash(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	num := c.stack.peek()
	num64, overflow := num.Uint64WithOverflow()
	if overflow {
		num.Clear()
		return nil
	}
	var lower uint64
	upper := uint64(block.BlockNumber)
	if upper > blockHashWindow {
		lower = upper - blockHashWindow
	}
	if num64 >= lower && num64 < upper {
		hash := c.host.Block.GetBlockHash(int64(num64))
		num.SetBytes32(hash[:])
	} else {
		num.Clear()
	}
	return nil
}

func opCoinbase(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetBytes20(block.Coinbase[:])
	return nil
}

func opTimestamp(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetUint64(uint64(block.Timestamp))
	return nil
}

func opNumber(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetUint64(uint64(block.BlockNumber))
	return nil
}

func opDifficulty(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetBytes32(block.Difficulty[:])
	return nil
}

func opGasLimit(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetUint64(uint64(block.GasLimit))
	return nil
}

func opChainId(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetBytes32(block.ChainID[:])
	return nil
}

func opBaseFee(c *context) error {
	block, err := blockParameters(c)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetBytes32(block.BaseFee[:])
	return nil
}

// ------------------ Account Ledger ------------------

func getLedger(c *context) (axis.AccountLedger, error) {
	if c.host.Ledger == nil {
		return nil, axis.ErrMissingCollaborator
	}
	return c.host.Ledger, nil
}

func opBalance(c *context) error {
	l, err := getLedger(c)
	if err != nil {
		return err
	}
	top := c.stack.peek()
	balance, err := l.GetBalance(axis.Address(top.Bytes20()))
	if err != nil {
		return err
	}
	top.SetBytes32(balance[:])
	return nil
}

func opSelfbalance(c *context) error {
	l, err := getLedger(c)
	if err != nil {
		return err
	}
	balance, err := l.GetBalance(c.params.Recipient)
	if err != nil {
		return err
	}
	c.stack.pushUndefined().SetBytes32(balance[:])
	return nil
}

func opExtcodesize(c *context) error {
	l, err := getLedger(c)
	if err != nil {
		return err
	}
	top := c.stack.peek()
	size, err := l.GetCodeSize(axis.Address(top.Bytes20()))
	if err != nil {
		return err
	}
	top.SetUint64(uint64(size))
	return nil
}

// opExtcodehash yields zero for accounts that do not exist.
func opExtcodehash(c *context) error {
	l, err := getLedger(c)
	if err != nil {
		return err
	}
	top := c.stack.peek()
	address := axis.Address(top.Bytes20())
	exists, err := l.AccountExists(address)
	if err != nil {
		return err
	}
	if !exists {
		top.Clear()
		return nil
	}
	hash, err := l.GetCodeHash(address)
	if err != nil {
		return err
	}
	top.SetBytes32(hash[:])
	return nil
}

func opExtCodeCopy(c *context) error {
	l, err := getLedger(c)
	if err != nil {
		return err
	}
	address := axis.Address(c.stack.pop().Bytes20())
	memOffset, codeOffset, length := c.stack.pop(), c.stack.pop(), c.stack.pop()
	code, err := l.GetCode(address)
	if err != nil {
		return err
	}
	copyPadded(c, memOffset, code, codeOffset, length)
	return nil
}

// ------------------ Logs ------------------

func newOpLog(numTopics int) executionFunc {
	return func(c *context) error {
		if c.params.Static {
			return axis.ErrWriteProtection
		}
		offset, size := c.stack.pop(), c.stack.pop()
		topics := make([]axis.Hash, numTopics)
		for i := range topics {
			topics[i] = c.stack.pop().Bytes32()
		}
		data := c.memory.getSlice(offset.Uint64(), size.Uint64())
		if c.host.Logs != nil {
			c.host.Logs.EmitLog(axis.Log{
				Address: c.params.Recipient,
				Topics:  topics,
				Data:    append([]byte(nil), data...),
			})
		}
		return nil
	}
}

func opSelfdestruct(c *context) error {
	if c.params.Static {
		return axis.ErrWriteProtection
	}
	beneficiary := axis.Address(c.stack.pop().Bytes20())
	if err := c.host.Ledger.SelfDestruct(c.params.Recipient, beneficiary); err != nil {
		return err
	}
	c.status = statusSelfDestructed
	return nil
}
