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
	"math"

	"github.com/holiman/uint256"
)

// CallContext describes a single top-level invocation: which contract runs,
// on whose behalf, with how much funding and on which input. It is
// immutable once code and input have been attached.
type CallContext struct {
	supervisor Address
	sender     Address
	gasPrice   Value
	value      Value
	code       Code
	input      []byte
}

// NewCallContext creates a call context for the contract at the supervisor
// address invoked by sender. The gas price must not be zero since the gas
// budget of the call is derived from value and gas price.
func NewCallContext(supervisor, sender Address, gasPrice, value Value) (CallContext, error) {
	if gasPrice == (Value{}) {
		return CallContext{}, ErrZeroGasPrice
	}
	return CallContext{
		supervisor: supervisor,
		sender:     sender,
		gasPrice:   gasPrice,
		value:      value,
	}, nil
}

// SetCode attaches a copy of the given bytecode.
func (c *CallContext) SetCode(code []byte) {
	c.code = append(Code(nil), code...)
}

// SetInput attaches a copy of the given call data.
func (c *CallContext) SetInput(input []byte) {
	c.input = append([]byte(nil), input...)
}

func (c *CallContext) Supervisor() Address { return c.supervisor }
func (c *CallContext) Sender() Address     { return c.sender }
func (c *CallContext) GasPrice() Value     { return c.gasPrice }
func (c *CallContext) Value() Value        { return c.value }

// Code returns the attached bytecode. The result must not be modified.
func (c *CallContext) Code() Code { return c.code }

// Input returns the attached call data. The result must not be modified.
func (c *CallContext) Input() []byte { return c.input }

// InitialGas returns floor(value / gas price), saturated at MaxGas.
func (c *CallContext) InitialGas() Gas {
	price := c.gasPrice.ToUint256()
	if price.IsZero() {
		return 0
	}
	budget := new(uint256.Int).Div(c.value.ToUint256(), price)
	if !budget.IsUint64() || budget.Uint64() > math.MaxInt64 {
		return MaxGas
	}
	return Gas(budget.Uint64())
}

// Parameters derives the parameters of the root call frame for the given
// instruction set variant.
func (c *CallContext) Parameters(variant Variant) Parameters {
	return Parameters{
		Variant:   variant,
		Kind:      Call,
		Gas:       c.InitialGas(),
		Recipient: c.supervisor,
		Sender:    c.sender,
		Origin:    c.sender,
		GasPrice:  c.gasPrice,
		Value:     c.value,
		Input:     c.input,
		Code:      c.code,
	}
}
