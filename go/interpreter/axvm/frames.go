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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// execution is an arena of call frames. Frames are identified by their
// index; the frame with the highest index is the active one and every other
// frame is waiting for the completion of its successor. Nested calls are
// processed iteratively, the Go stack does not grow with the call depth.
type execution struct {
	instructions *instructionSet
	host         *axis.Host
	analyzer     *jumpDestAnalyzer
	hash         func([]byte) axis.Hash

	frames []*context
	steps  uint64
}

// callRequest describes a nested call issued by a CALL or CREATE family
// instruction, together with what is needed to deliver its result.
type callRequest struct {
	params      axis.Parameters
	snapshot    axis.Snapshot
	hasSnapshot bool

	// Where the output of a call is placed in the memory of the caller.
	outOffset, outSize uint64
}

func (e *execution) newFrame(params axis.Parameters, request *callRequest) *context {
	return &context{
		params:   params,
		host:     e.host,
		code:     params.Code,
		analyzer: e.analyzer,
		hash:     e.hash,
		gas:      params.Gas,
		stack:    NewStack(),
		memory:   NewMemory(),
		request:  request,
	}
}

func (e *execution) current() *context {
	return e.frames[len(e.frames)-1]
}

// done reports whether the root frame has completed.
func (e *execution) done() bool {
	return len(e.frames) == 1 && e.frames[0].status != statusRunning
}

// step executes one instruction of the active frame and performs the
// resulting frame transition, if any.
func (e *execution) step() {
	c := e.current()
	c.step(e.instructions)
	e.steps++
	if c.pending != nil {
		e.enter(c)
		return
	}
	// Delivering a result may abort the receiving frame as well, in which
	// case it completes without executing any further instruction.
	for len(e.frames) > 1 && e.current().status != statusRunning {
		e.leave()
	}
}

func (e *execution) enter(caller *context) {
	request := caller.pending
	caller.pending = nil
	e.frames = append(e.frames, e.newFrame(request.params, request))
}

func (e *execution) rollback(c *context) {
	if c.request != nil && c.request.hasSnapshot {
		e.host.Storage.RestoreSnapshot(c.request.snapshot)
	}
}

// leave completes the active frame and delivers its result to the caller.
func (e *execution) leave() {
	callee := e.current()
	e.frames = e.frames[:len(e.frames)-1]
	caller := e.current()
	defer ReturnStack(callee.stack)

	request := callee.request
	success := callee.status == statusStopped ||
		callee.status == statusReturned ||
		callee.status == statusSelfDestructed
	gasLeft := callee.gas
	output := callee.output

	isCreate := request.params.Kind == axis.Create || request.params.Kind == axis.Create2
	if isCreate && success {
		var err error
		gasLeft, success, err = e.deployCode(request.params.Recipient, output, gasLeft)
		if err != nil {
			e.rollback(callee)
			caller.fail(err)
			return
		}
	}
	if !success {
		e.rollback(callee)
	}
	if !success && callee.status != statusReverted {
		gasLeft = 0
	}
	caller.gas += gasLeft

	result := caller.stack.pushUndefined()
	if isCreate {
		caller.returnData = nil
		if success {
			result.SetBytes20(request.params.Recipient[:])
		} else {
			result.Clear()
			if callee.status == statusReverted {
				caller.returnData = output
			}
		}
		return
	}

	caller.returnData = output
	setBool(result, success)
	if n := min(request.outSize, uint64(len(output))); n > 0 {
		caller.memory.set(request.outOffset, output[:n])
	}
}

// deployCode installs the code produced by a successful init code execution,
// charging for its size. A code that is too large or unaffordable makes the
// creation fail.
func (e *execution) deployCode(address axis.Address, code []byte, gasLeft axis.Gas) (axis.Gas, bool, error) {
	if len(code) > maxCodeSize {
		return 0, false, nil
	}
	price := createDataGas * axis.Gas(len(code))
	if gasLeft < price {
		return 0, false, nil
	}
	if err := e.host.Ledger.SetCode(address, code); err != nil {
		return 0, false, err
	}
	return gasLeft - price, true, nil
}

func (e *execution) release() {
	for _, frame := range e.frames {
		ReturnStack(frame.stack)
	}
	e.frames = nil
}

// snapshot marks the rollback point of a nested call.
func snapshot(c *context, request *callRequest) {
	if c.host.Storage != nil {
		request.snapshot = c.host.Storage.CreateSnapshot()
		request.hasSnapshot = true
	}
}

// ------------------ Calls ------------------

func opCall(c *context) error {
	return genericCall(c, axis.Call)
}

func opCallCode(c *context) error {
	return genericCall(c, axis.CallCode)
}

func opStaticCall(c *context) error {
	return genericCall(c, axis.StaticCall)
}

func opDelegateCall(c *context) error {
	return genericCall(c, axis.DelegateCall)
}

// abortCall completes a call instruction without starting a nested frame,
// returning the gas set aside for it.
func abortCall(c *context, gas axis.Gas) {
	c.stack.pushUndefined().Clear()
	c.returnData = nil
	c.gas += gas
}

func genericCall(c *context, kind axis.CallKind) error {
	stack := c.stack
	requestedGas := *stack.pop()
	target := axis.Address(stack.pop().Bytes20())
	value := uint256.Int{}
	if kind == axis.Call || kind == axis.CallCode {
		value = *stack.pop()
	}
	inOffset, inSize := *stack.pop(), *stack.pop()
	outOffset, outSize := *stack.pop(), *stack.pop()

	if c.params.Static && kind == axis.Call && !value.IsZero() {
		return axis.ErrWriteProtection
	}
	ledger, err := getLedger(c)
	if err != nil {
		return err
	}

	// Memory ranges have been validated and paid for by the gas function.
	input := append([]byte(nil), c.memory.getSlice(inOffset.Uint64(), inSize.Uint64())...)
	if outEnd, _ := memoryRange(&outOffset, &outSize); outEnd > 0 {
		c.memory.expand(outEnd)
	}

	gas := callGasLimit(c.gas, &requestedGas)
	c.gas -= gas
	if !value.IsZero() {
		gas += callStipend
	}

	if c.params.Depth >= maxCallDepth {
		abortCall(c, gas)
		return nil
	}
	if !value.IsZero() {
		balance, err := ledger.GetBalance(c.params.Recipient)
		if err != nil {
			return err
		}
		if balance.ToUint256().Lt(&value) {
			abortCall(c, gas)
			return nil
		}
	}

	code, err := ledger.GetCode(target)
	if err != nil {
		return err
	}
	codeHash, err := ledger.GetCodeHash(target)
	if err != nil {
		return err
	}
	var hashRef *axis.Hash
	if codeHash != (axis.Hash{}) {
		hashRef = &codeHash
	}

	params := axis.Parameters{
		Variant:   c.params.Variant,
		Kind:      kind,
		Static:    c.params.Static || kind == axis.StaticCall,
		Depth:     c.params.Depth + 1,
		Gas:       gas,
		Recipient: target,
		Sender:    c.params.Recipient,
		Origin:    c.params.Origin,
		GasPrice:  c.params.GasPrice,
		Value:     axis.ValueFromUint256(&value),
		Input:     input,
		Code:      code,
		CodeHash:  hashRef,
	}
	switch kind {
	case axis.CallCode:
		params.Recipient = c.params.Recipient
	case axis.DelegateCall:
		params.Recipient = c.params.Recipient
		params.Sender = c.params.Sender
		params.Value = c.params.Value
	}

	request := &callRequest{
		params:    params,
		outOffset: outOffset.Uint64(),
		outSize:   outSize.Uint64(),
	}
	snapshot(c, request)
	if kind == axis.Call && !value.IsZero() {
		if err := ledger.Transfer(c.params.Recipient, target, params.Value); err != nil {
			return err
		}
	}
	c.pending = request
	return nil
}

// ------------------ Creates ------------------

func opCreate(c *context) error {
	return genericCreate(c, axis.Create)
}

func opCreate2(c *context) error {
	return genericCreate(c, axis.Create2)
}

func genericCreate(c *context, kind axis.CallKind) error {
	stack := c.stack
	value := *stack.pop()
	offset, size := *stack.pop(), *stack.pop()
	salt := uint256.Int{}
	if kind == axis.Create2 {
		salt = *stack.pop()
	}

	if c.params.Static {
		return axis.ErrWriteProtection
	}
	ledger, err := getLedger(c)
	if err != nil {
		return err
	}

	initCode := append([]byte(nil), c.memory.getSlice(offset.Uint64(), size.Uint64())...)

	gas := c.gas - c.gas/64
	c.gas -= gas

	if c.params.Depth >= maxCallDepth {
		abortCall(c, gas)
		return nil
	}
	creator := c.params.Recipient
	balance, err := ledger.GetBalance(creator)
	if err != nil {
		return err
	}
	if balance.ToUint256().Lt(&value) {
		abortCall(c, gas)
		return nil
	}
	nonce, err := ledger.GetNonce(creator)
	if err != nil {
		return err
	}
	if nonce+1 < nonce {
		abortCall(c, gas)
		return nil
	}
	if err := ledger.SetNonce(creator, nonce+1); err != nil {
		return err
	}

	var address axis.Address
	if kind == axis.Create {
		address = axis.Address(crypto.CreateAddress(common.Address(creator), nonce))
	} else {
		address = axis.Address(crypto.CreateAddress2(common.Address(creator), salt.Bytes32(), crypto.Keccak256(initCode)))
	}

	// An address collision consumes the gas set aside for the creation.
	collision, err := hasCollision(ledger, address)
	if err != nil {
		return err
	}
	if collision {
		abortCall(c, 0)
		return nil
	}

	request := &callRequest{
		params: axis.Parameters{
			Variant:   c.params.Variant,
			Kind:      kind,
			Depth:     c.params.Depth + 1,
			Gas:       gas,
			Recipient: address,
			Sender:    creator,
			Origin:    c.params.Origin,
			GasPrice:  c.params.GasPrice,
			Value:     axis.ValueFromUint256(&value),
			Code:      initCode,
		},
	}
	snapshot(c, request)
	if err := ledger.SetNonce(address, 1); err != nil {
		return err
	}
	if !value.IsZero() {
		if err := ledger.Transfer(creator, address, request.params.Value); err != nil {
			return err
		}
	}
	c.pending = request
	return nil
}

func hasCollision(ledger axis.AccountLedger, address axis.Address) (bool, error) {
	nonce, err := ledger.GetNonce(address)
	if err != nil {
		return false, err
	}
	if nonce != 0 {
		return true, nil
	}
	size, err := ledger.GetCodeSize(address)
	if err != nil {
		return false, err
	}
	return size != 0, nil
}
