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
	"encoding/json"
	"fmt"
	"strings"
)

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package axis

// Interpreter is a component capable of executing bytecode.
type Interpreter interface {
	// Run executes the code in the given parameters. Faults and reverts of
	// the executed code are reported through the Result. The error is
	// reserved for failures of the interpreter itself, for instance an
	// unsupported instruction set variant.
	Run(Parameters, Host) (Result, error)
}

// Parameters summarizes the inputs of a single call frame.
type Parameters struct {
	Variant Variant
	Kind    CallKind
	Static  bool // < state modifications are forbidden
	Depth   int
	Gas     Gas

	Recipient Address // < the executing contract, whose storage is used
	Sender    Address
	Origin    Address
	GasPrice  Value
	Value     Value
	Input     []byte

	Code     Code
	CodeHash *Hash // < optional, enables caching of code analysis results
}

// Host bundles the external collaborators of an execution. All of them are
// optional; instructions depending on a missing collaborator fault with
// ErrMissingCollaborator, except for logs and traces which are discarded.
type Host struct {
	Storage StorageAdapter
	Block   BlockContext
	Ledger  AccountLedger
	Logs    LogSink
	Trace   TraceSink
}

// Result summarizes the outcome of an execution.
type Result struct {
	Outcome    Outcome
	ReturnData []byte
	GasLeft    Gas
	GasUsed    Gas
	// Fault is the reason for a Fault outcome, nil otherwise.
	Fault error
	// Stack is the final operand stack, bottom first.
	Stack []Word
}

func (r Result) Success() bool {
	return r.Outcome == Success
}

// Outcome classifies how an execution ended.
type Outcome byte

const (
	Success Outcome = iota
	Reverted
	Fault
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Reverted:
		return "reverted"
	case Fault:
		return "fault"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}

// Variant selects one of the instruction sets supported by interpreters.
type Variant byte

const (
	// VariantAxis is the instruction set of the AXIS virtual machine.
	VariantAxis Variant = iota
	// VariantShanghai extends VariantAxis by MSTORE8, CHAINID, SELFBALANCE,
	// BASEFEE and PUSH0.
	VariantShanghai
)

func (v Variant) String() string {
	switch v {
	case VariantAxis:
		return "axis"
	case VariantShanghai:
		return "shanghai"
	default:
		return fmt.Sprintf("Variant(%d)", v)
	}
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(name) {
	case "axis":
		return VariantAxis, nil
	case "shanghai":
		return VariantShanghai, nil
	}
	return 0, fmt.Errorf("unknown instruction set variant: %s", name)
}

// CallKind distinguishes the ways a call frame can be entered.
type CallKind byte

const (
	Call CallKind = iota
	StaticCall
	DelegateCall
	CallCode
	Create
	Create2
)

func (k CallKind) String() string {
	switch k {
	case Call:
		return "call"
	case StaticCall:
		return "static_call"
	case DelegateCall:
		return "delegate_call"
	case CallCode:
		return "call_code"
	case Create:
		return "create"
	case Create2:
		return "create2"
	default:
		return "unknown"
	}
}

func (k CallKind) MarshalJSON() ([]byte, error) {
	switch k {
	case Call, StaticCall, DelegateCall, CallCode, Create, Create2:
		return json.Marshal(k.String())
	}
	return nil, fmt.Errorf("invalid call kind: %v", k)
}

func (k *CallKind) UnmarshalJSON(data []byte) error {
	var kind string
	if err := json.Unmarshal(data, &kind); err != nil {
		return err
	}
	for _, cur := range []CallKind{Call, StaticCall, DelegateCall, CallCode, Create, Create2} {
		if strings.ToLower(kind) == cur.String() {
			*k = cur
			return nil
		}
	}
	return fmt.Errorf("unknown call kind: %s", kind)
}
