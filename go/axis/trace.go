// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axis

import (
	"io"
	"strings"
)

//go:generate mockgen -source trace.go -destination trace_mock.go -package axis

// TraceSink records the mnemonics of executed instructions in execution
// order. A mnemonic is appended as soon as an instruction is dispatched,
// even if the instruction subsequently faults.
type TraceSink interface {
	Append(mnemonic string)
}

// TraceBuffer is an in-memory TraceSink.
type TraceBuffer struct {
	mnemonics []string
}

func (b *TraceBuffer) Append(mnemonic string) {
	b.mnemonics = append(b.mnemonics, mnemonic)
}

// Mnemonics returns a copy of the recorded trace.
func (b *TraceBuffer) Mnemonics() []string {
	return append([]string(nil), b.mnemonics...)
}

func (b *TraceBuffer) Len() int {
	return len(b.mnemonics)
}

func (b *TraceBuffer) Reset() {
	b.mnemonics = b.mnemonics[:0]
}

// String renders the trace as a listing with one mnemonic per line.
func (b *TraceBuffer) String() string {
	if len(b.mnemonics) == 0 {
		return ""
	}
	return strings.Join(b.mnemonics, "\n") + "\n"
}

// WriterTrace writes one line per recorded mnemonic to an io.Writer.
type WriterTrace struct {
	writer io.Writer
	err    error
}

func NewWriterTrace(writer io.Writer) *WriterTrace {
	return &WriterTrace{writer: writer}
}

func (w *WriterTrace) Append(mnemonic string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.writer, mnemonic+"\n")
}

// Err returns the first error encountered while writing; once an error
// occurred, subsequent mnemonics are dropped.
func (w *WriterTrace) Err() error {
	return w.err
}

// NoTrace is a TraceSink discarding everything.
var NoTrace TraceSink = noTrace{}

type noTrace struct{}

func (noTrace) Append(string) {}
