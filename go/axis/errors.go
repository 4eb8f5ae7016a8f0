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

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// Faults an execution may end with. A fault aborts the current call frame,
// consumes all of its gas, and rolls back its storage modifications.
const (
	ErrStackUnderflow         = ConstError("stack underflow")
	ErrStackOverflow          = ConstError("stack overflow")
	ErrOutOfGas               = ConstError("out of gas")
	ErrInvalidJumpDestination = ConstError("invalid jump destination")
	ErrUnimplementedOpcode    = ConstError("unimplemented opcode")
	ErrOutOfBoundsAccess      = ConstError("out of bounds access")
	ErrMissingCollaborator    = ConstError("missing collaborator")
	ErrWriteProtection        = ConstError("write protection")
)

// Configuration errors reported before any execution takes place.
const (
	ErrZeroGasPrice      = ConstError("gas price must not be zero")
	ErrEngineAlreadyUsed = ConstError("engine has already been run")
)
