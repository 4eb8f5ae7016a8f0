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

// Memory is the byte-addressable scratch space of a call frame. It grows in
// 32-byte words and new words are zero. Expansion is paid for in advance:
// callers obtain the price through expansionCosts and charge it before
// touching the memory, so that a failing instruction leaves memory
// untouched.
type Memory struct {
	store             []byte
	currentMemoryCost axis.Gas
}

func NewMemory() *Memory {
	return &Memory{}
}

// Maximum memory size allowed; a memory of this size costs about 2^54 gas,
// beyond any budget, and the cost still fits into int64.
const maxMemoryExpansionSize = 0x1FFFFFFFE0

// memoryCost is the total cost of a memory of the given number of words.
func memoryCost(words uint64) axis.Gas {
	return axis.Gas(words*words/quadCoeffDiv + memoryGas*words)
}

// expansionCosts returns the gas required to grow the memory to hold at
// least size bytes. The result is MaxGas if the size is not supported.
func (m *Memory) expansionCosts(size uint64) axis.Gas {
	if m.length() >= size {
		return 0
	}
	if size > maxMemoryExpansionSize {
		return axis.MaxGas
	}
	return memoryCost(axis.SizeInWords(size)) - m.currentMemoryCost
}

// expand grows the memory to hold at least size bytes. The costs need to be
// charged before by the caller.
func (m *Memory) expand(size uint64) {
	if m.length() >= size {
		return
	}
	words := axis.SizeInWords(size)
	m.currentMemoryCost = memoryCost(words)
	m.store = append(m.store, make([]byte, words*32-m.length())...)
}

func (m *Memory) length() uint64 {
	return uint64(len(m.store))
}

// getSlice returns a view on the memory range [offset, offset+size),
// expanding the memory if needed. Empty ranges never expand the memory,
// independent of their offset.
func (m *Memory) getSlice(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	m.expand(offset + size)
	return m.store[offset : offset+size]
}

func (m *Memory) readWord(offset uint64, target *uint256.Int) {
	target.SetBytes32(m.getSlice(offset, 32))
}

func (m *Memory) setWord(offset uint64, value *uint256.Int) {
	value.WriteToSlice(m.getSlice(offset, 32))
}

func (m *Memory) setByte(offset uint64, value byte) {
	m.getSlice(offset, 1)[0] = value
}

// set copies data into memory starting at offset.
func (m *Memory) set(offset uint64, data []byte) {
	copy(m.getSlice(offset, uint64(len(data))), data)
}

// Data returns a copy of the memory content.
func (m *Memory) Data() []byte {
	return append([]byte(nil), m.store...)
}

// memoryRange computes the end of the range [offset, offset+size) touched by
// an instruction. Ranges of size zero do not touch memory. If the range
// exceeds 64 bits, ok is false.
func memoryRange(offset, size *uint256.Int) (end uint64, ok bool) {
	if size.IsZero() {
		return 0, true
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return 0, false
	}
	end = offset.Uint64() + size.Uint64()
	if end < offset.Uint64() {
		return 0, false
	}
	return end, true
}

// memoryExpansionGas is the gas required for an instruction touching the
// given range. Unrepresentable ranges can never be paid for.
func memoryExpansionGas(c *context, offset, size *uint256.Int) (axis.Gas, error) {
	end, ok := memoryRange(offset, size)
	if !ok {
		return 0, axis.ErrOutOfGas
	}
	return c.memory.expansionCosts(end), nil
}
