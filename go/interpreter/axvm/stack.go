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
	"strings"
	"sync"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/holiman/uint256"
)

const maxStackSize = 1024

// stack is the operand stack of a single call frame. Bounds are not checked
// by its methods; the dispatch loop verifies every instruction's
// requirements against len() before the instruction is executed.
type stack struct {
	data [maxStackSize]uint256.Int
	size int
}

func (s *stack) push(d *uint256.Int) {
	s.data[s.size] = *d
	s.size++
}

func (s *stack) pushUndefined() *uint256.Int {
	s.size++
	return &s.data[s.size-1]
}

func (s *stack) pop() *uint256.Int {
	s.size--
	return &s.data[s.size]
}

func (s *stack) peek() *uint256.Int {
	return &s.data[s.len()-1]
}

// peekN returns the n-th element from the top, peekN(0) being the top.
func (s *stack) peekN(n int) *uint256.Int {
	return &s.data[s.len()-n-1]
}

func (s *stack) len() int {
	return s.size
}

// swap exchanges the top with the n-th element below it.
func (s *stack) swap(n int) {
	s.data[s.len()-n-1], s.data[s.len()-1] = s.data[s.len()-1], s.data[s.len()-n-1]
}

// dup pushes a copy of the n-th element from the top, dup(0) copying the top.
func (s *stack) dup(n int) {
	s.data[s.size] = s.data[s.size-n-1]
	s.size++
}

// words exports the stack content, bottom first.
func (s *stack) words() []axis.Word {
	res := make([]axis.Word, s.len())
	for i := range res {
		res[i] = s.data[i].Bytes32()
	}
	return res
}

// String lists the stack top first, one word per line.
func (s *stack) String() string {
	b := strings.Builder{}
	for i := s.len() - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "    [%4d] 0x%064x\n", i, s.data[i].Bytes32())
	}
	return b.String()
}

// ------------------ Stack Pool ------------------

var stackPool = sync.Pool{New: func() any { return &stack{} }}

func NewStack() *stack {
	return stackPool.Get().(*stack)
}

func ReturnStack(s *stack) {
	s.size = 0
	stackPool.Put(s)
}
