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
	"io"
)

// loggingRunner writes a line for every executed instruction:
// <op>, <gas>, <top-of-stack>. Instructions of nested calls are indented
// by their call depth.
type loggingRunner struct {
	log io.Writer
}

func newLogger(writer io.Writer) loggingRunner {
	return loggingRunner{log: writer}
}

func (l loggingRunner) run(e *execution) error {
	for !e.done() {
		c := e.current()
		if op, ok := c.currentOpCode(); ok && l.log != nil {
			top := "-empty-"
			if c.stack.len() > 0 {
				top = c.stack.peek().ToBig().String()
			}
			indent := fmt.Sprintf("%*s", 2*c.params.Depth, "")
			if _, err := fmt.Fprintf(l.log, "%s%v, %d, %v\n", indent, op, c.gas, top); err != nil {
				return err
			}
		}
		e.step()
	}
	return nil
}
