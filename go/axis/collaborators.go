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

//go:generate mockgen -source collaborators.go -destination collaborators_mock.go -package axis

// Snapshot identifies a point in the history of a StorageAdapter that
// modifications can be rolled back to.
type Snapshot int

// StorageAdapter provides access to the persistent key/value storage of
// contracts. Slots that have never been written read as zero. Snapshots are
// the rollback boundary used by the interpreter: a call frame that reverts
// or faults restores the snapshot taken when the frame started.
type StorageAdapter interface {
	GetStorage(Address, Key) Word
	SetStorage(Address, Key, Word)
	CreateSnapshot() Snapshot
	RestoreSnapshot(Snapshot)
}

// BlockContext is a pass-through provider of information about the block
// an execution is part of.
type BlockContext interface {
	GetBlockParameters() BlockParameters
	// GetBlockHash returns the hash of the block with the given number. The
	// interpreter only asks for the 256 most recent blocks.
	GetBlockHash(number int64) Hash
}

// BlockParameters summarizes the block level information accessible to
// programs.
type BlockParameters struct {
	ChainID     Word
	BlockNumber int64
	Timestamp   int64
	Coinbase    Address
	GasLimit    Gas
	Difficulty  Hash
	BaseFee     Value
}

// StaticBlockContext is a BlockContext with fixed parameters.
type StaticBlockContext struct {
	Parameters BlockParameters
	// BlockHash resolves block hashes; if nil, all hashes are zero.
	BlockHash func(number int64) Hash
}

func (b StaticBlockContext) GetBlockParameters() BlockParameters {
	return b.Parameters
}

func (b StaticBlockContext) GetBlockHash(number int64) Hash {
	if b.BlockHash == nil {
		return Hash{}
	}
	return b.BlockHash(number)
}

// AccountLedger is the account-level view of the world state. Queries may
// fail, for instance if the ledger is backed by an unavailable database; a
// failing query faults the instruction that issued it.
type AccountLedger interface {
	AccountExists(Address) (bool, error)
	GetBalance(Address) (Value, error)
	GetNonce(Address) (uint64, error)
	SetNonce(Address, uint64) error
	GetCode(Address) (Code, error)
	GetCodeHash(Address) (Hash, error)
	GetCodeSize(Address) (int, error)
	SetCode(Address, Code) error
	// Transfer moves the given amount of funds between accounts. It fails if
	// the balance of the source account is insufficient.
	Transfer(from, to Address, amount Value) error
	// SelfDestruct removes the account and credits its balance to the
	// beneficiary.
	SelfDestruct(addr Address, beneficiary Address) error
}

// Log is an event emitted by a LOG instruction.
type Log struct {
	Address Address
	Topics  []Hash
	Data    []byte
}

// LogSink receives the logs emitted during an execution.
type LogSink interface {
	EmitLog(Log)
}
