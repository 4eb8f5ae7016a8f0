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

	"github.com/axislabs/axisvm/go/axis"
	"github.com/axislabs/axisvm/go/axis/vm"
	"github.com/ethereum/go-ethereum/log"
)

// status is enumeration of the execution state of a call frame.
type status byte

const (
	statusRunning        status = iota // < all fine, ops are processed
	statusStopped                      // < execution stopped with a STOP or by reaching the end of the code
	statusReverted                     // < execution stopped with a REVERT
	statusReturned                     // < execution stopped with a RETURN
	statusSelfDestructed               // < execution stopped with a SELF-DESTRUCT
	statusFailed                       // < execution stopped with a fault
)

func (s status) String() string {
	switch s {
	case statusRunning:
		return "running"
	case statusStopped:
		return "stopped"
	case statusReverted:
		return "reverted"
	case statusReturned:
		return "returned"
	case statusSelfDestructed:
		return "self-destructed"
	case statusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", s)
}

// context is the execution state of a single call frame.
type context struct {
	// Inputs
	params   axis.Parameters
	host     *axis.Host
	code     axis.Code
	analyzer *jumpDestAnalyzer
	hash     func([]byte) axis.Hash

	// Execution state
	pc     int
	gas    axis.Gas
	stack  *stack
	memory *Memory
	status status
	fault  error

	// Intermediate data
	jumpDests  jumpDests // < lazily computed on the first jump
	returnData []byte    // < the result of the last nested contract call
	output     []byte    // < the data provided by RETURN or REVERT

	// Nested calls
	pending *callRequest // < a nested call waiting to be started
	request *callRequest // < the request this frame was started by, nil for the root
}

func (c *context) useGas(amount axis.Gas) error {
	if c.gas < 0 || amount < 0 || c.gas < amount {
		return axis.ErrOutOfGas
	}
	c.gas -= amount
	return nil
}

// fail aborts the frame. A failing frame consumes all its gas.
func (c *context) fail(err error) {
	c.status = statusFailed
	c.fault = err
	c.gas = 0
}

// currentOpCode returns the instruction at the pc, if the end of the code
// has not been reached.
func (c *context) currentOpCode() (vm.OpCode, bool) {
	if c.pc >= len(c.code) {
		return 0, false
	}
	return vm.OpCode(c.code[c.pc]), true
}

// step executes a single instruction. All checks that may fault the
// instruction, including the charging of its full price, are performed
// before the instruction modifies any state.
func (c *context) step(instructions *instructionSet) {
	op, ok := c.currentOpCode()
	if !ok {
		c.status = statusStopped
		return
	}
	c.host.Trace.Append(op.String())

	operation := instructions[op]
	if operation == nil {
		c.fail(axis.ErrUnimplementedOpcode)
		return
	}

	if size := c.stack.len(); size < operation.minStack {
		c.fail(axis.ErrStackUnderflow)
		return
	} else if size > operation.maxStack {
		c.fail(axis.ErrStackOverflow)
		return
	}

	price := operation.constantGas
	if operation.dynamicGas != nil {
		dynamic, err := operation.dynamicGas(c)
		if err != nil {
			c.fail(err)
			return
		}
		price = addGas(price, dynamic)
	}
	if err := c.useGas(price); err != nil {
		c.fail(err)
		return
	}

	if err := operation.execute(c); err != nil {
		c.fail(err)
		return
	}
	if c.status == statusRunning {
		c.pc++
	}
}

// --- Execution ---

// runner drives an execution to its end. Runners differ in what they
// observe along the way.
type runner interface {
	// run executes the call frames of the given execution. Any fault of the
	// executed code ends up in the status of the frames; the error is
	// reserved for failures of the runner itself.
	run(*execution) error
}

type vanillaRunner struct{}

func (vanillaRunner) run(e *execution) error {
	for !e.done() {
		e.step()
	}
	return nil
}

type interpreterConfig struct {
	withShaCache bool
	runner       runner
	analyzer     *jumpDestAnalyzer
}

// Evaluations show a 96% hit rate of this configuration.
var sha3Cache = newSha3HashCache(1<<16, 1<<18)

func run(
	config interpreterConfig,
	instructions *instructionSet,
	params axis.Parameters,
	host axis.Host,
) (axis.Result, error) {
	if host.Trace == nil {
		host.Trace = axis.NoTrace
	}
	hash := Keccak256
	if config.withShaCache {
		hash = sha3Cache.hash
	}
	e := &execution{
		instructions: instructions,
		host:         &host,
		analyzer:     config.analyzer,
		hash:         hash,
	}
	defer e.release()

	root := e.newFrame(params, nil)
	if host.Storage != nil {
		root.request = &callRequest{
			params:      params,
			snapshot:    host.Storage.CreateSnapshot(),
			hasSnapshot: true,
		}
	}
	e.frames = append(e.frames, root)

	if config.runner == nil {
		config.runner = vanillaRunner{}
	}
	if err := config.runner.run(e); err != nil {
		return axis.Result{}, err
	}

	if root.status != statusStopped && root.status != statusReturned && root.status != statusSelfDestructed {
		e.rollback(root)
	}
	result, err := generateResult(root)
	if err != nil {
		return axis.Result{}, err
	}
	log.Debug("Execution finished", "outcome", result.Outcome, "gasUsed", result.GasUsed, "steps", e.steps, "fault", result.Fault)
	return result, nil
}

func generateResult(c *context) (axis.Result, error) {
	res := axis.Result{
		GasLeft: c.gas,
		Stack:   c.stack.words(),
	}
	switch c.status {
	case statusStopped, statusSelfDestructed:
		res.Outcome = axis.Success
	case statusReturned:
		res.Outcome = axis.Success
		res.ReturnData = c.output
	case statusReverted:
		res.Outcome = axis.Reverted
		res.ReturnData = c.output
	case statusFailed:
		res.Outcome = axis.Fault
		res.Fault = c.fault
		res.GasLeft = 0
	default:
		return axis.Result{}, fmt.Errorf("unexpected error in interpreter, unknown status: %v", c.status)
	}
	res.GasUsed = c.params.Gas - res.GasLeft
	return res, nil
}
