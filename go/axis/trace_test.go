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
	"bytes"
	"errors"
	"slices"
	"testing"
)

func TestTraceBuffer_RecordsInOrder(t *testing.T) {
	buffer := &TraceBuffer{}
	for _, m := range []string{"PUSH1", "PUSH1", "ADD", "STOP"} {
		buffer.Append(m)
	}
	if want, got := []string{"PUSH1", "PUSH1", "ADD", "STOP"}, buffer.Mnemonics(); !slices.Equal(want, got) {
		t.Errorf("unexpected trace, wanted %v, got %v", want, got)
	}
	if want, got := "PUSH1\nPUSH1\nADD\nSTOP\n", buffer.String(); want != got {
		t.Errorf("unexpected listing, wanted %q, got %q", want, got)
	}

	buffer.Reset()
	if buffer.Len() != 0 || buffer.String() != "" {
		t.Errorf("reset buffer should be empty")
	}
}

func TestTraceBuffer_MnemonicsReturnsCopy(t *testing.T) {
	buffer := &TraceBuffer{}
	buffer.Append("ADD")
	buffer.Mnemonics()[0] = "MUL"
	if want, got := "ADD", buffer.Mnemonics()[0]; want != got {
		t.Errorf("trace was modified through copy, got %v", got)
	}
}

func TestWriterTrace_WritesOneLinePerMnemonic(t *testing.T) {
	var out bytes.Buffer
	trace := NewWriterTrace(&out)
	trace.Append("JUMPDEST")
	trace.Append("STOP")
	if want, got := "JUMPDEST\nSTOP\n", out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
	if trace.Err() != nil {
		t.Errorf("unexpected error: %v", trace.Err())
	}
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("injected error")
}

func TestWriterTrace_StopsAfterFirstError(t *testing.T) {
	writer := &failingWriter{}
	trace := NewWriterTrace(writer)
	trace.Append("ADD")
	trace.Append("SUB")
	if trace.Err() == nil {
		t.Errorf("expected error to be reported")
	}
	if want, got := 1, writer.writes; want != got {
		t.Errorf("unexpected number of writes, wanted %d, got %d", want, got)
	}
}

func TestNoTrace_AcceptsEverything(t *testing.T) {
	NoTrace.Append("ADD")
}
