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
	"sync"

	"github.com/axislabs/axisvm/go/axis"
)

// Engine runs the code of a single CallContext. The gas budget of the
// execution is the value of the call divided by its gas price. An Engine
// can be run only once.
type Engine struct {
	interpreter *Interpreter
	context     axis.CallContext
	host        axis.Host
	variant     axis.Variant
	trace       *axis.TraceBuffer
	used        bool
}

type EngineOption func(*Engine)

// WithVariant selects the instruction set. The default is VariantAxis.
func WithVariant(variant axis.Variant) EngineOption {
	return func(e *Engine) {
		e.variant = variant
	}
}

// WithInterpreter runs the engine on the given interpreter instead of the
// shared default.
func WithInterpreter(interpreter *Interpreter) EngineOption {
	return func(e *Engine) {
		e.interpreter = interpreter
	}
}

var (
	defaultInterpreterOnce sync.Once
	defaultInterpreter     *Interpreter
	defaultInterpreterErr  error
)

func getDefaultInterpreter() (*Interpreter, error) {
	defaultInterpreterOnce.Do(func() {
		defaultInterpreter, defaultInterpreterErr = NewInterpreter(Config{WithShaCache: true})
	})
	return defaultInterpreter, defaultInterpreterErr
}

// NewEngine creates an engine for the given call. If the host has no trace
// sink, executed instructions are recorded in a buffer accessible through
// Trace.
func NewEngine(ctxt axis.CallContext, host axis.Host, options ...EngineOption) (*Engine, error) {
	if ctxt.GasPrice() == (axis.Value{}) {
		return nil, axis.ErrZeroGasPrice
	}
	e := &Engine{
		context: ctxt,
		host:    host,
		variant: axis.VariantAxis,
	}
	for _, option := range options {
		option(e)
	}
	if e.interpreter == nil {
		interpreter, err := getDefaultInterpreter()
		if err != nil {
			return nil, err
		}
		e.interpreter = interpreter
	}
	if e.host.Trace == nil {
		e.trace = &axis.TraceBuffer{}
		e.host.Trace = e.trace
	}
	return e, nil
}

// Run executes the code until it halts. Faults and reverts are reported
// through the result; an error is only returned for a failure of the engine
// itself.
func (e *Engine) Run() (axis.Result, error) {
	if e.used {
		return axis.Result{}, axis.ErrEngineAlreadyUsed
	}
	e.used = true

	params := e.context.Parameters(e.variant)
	if len(params.Code) > 0 {
		hash := Keccak256(params.Code)
		params.CodeHash = &hash
	}
	return e.interpreter.Run(params, e.host)
}

// Trace returns the mnemonics of the executed instructions. It is empty if
// the host provided its own trace sink.
func (e *Engine) Trace() []string {
	if e.trace == nil {
		return nil
	}
	return e.trace.Mnemonics()
}
