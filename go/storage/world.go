// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package storage

import (
	"fmt"
	"sync"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/ethereum/go-ethereum/crypto"
)

// Account is the account-level state kept by a World.
type Account struct {
	Balance axis.Value
	Nonce   uint64
	Code    axis.Code
}

func (a *Account) isEmpty() bool {
	return a.Balance == (axis.Value{}) && a.Nonce == 0 && len(a.Code) == 0
}

type slot struct {
	address axis.Address
	key     axis.Key
}

// World is an in-memory world state. It serves as the storage adapter, the
// account ledger and the log sink of an execution. All modifications,
// including emitted logs, are journaled, so restoring a snapshot undoes
// everything that happened after it was taken. World is safe for
// concurrent use.
type World struct {
	mutex    sync.RWMutex
	accounts map[axis.Address]*Account
	storage  map[slot]axis.Word
	logs     []axis.Log
	journal  []func()
}

func NewWorld() *World {
	return &World{
		accounts: map[axis.Address]*Account{},
		storage:  map[slot]axis.Word{},
	}
}

// --- StorageAdapter ---

func (w *World) GetStorage(address axis.Address, key axis.Key) axis.Word {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.storage[slot{address, key}]
}

func (w *World) SetStorage(address axis.Address, key axis.Key, value axis.Word) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.setStorage(slot{address, key}, value)
}

func (w *World) setStorage(s slot, value axis.Word) {
	old, found := w.storage[s]
	w.journal = append(w.journal, func() {
		if found {
			w.storage[s] = old
		} else {
			delete(w.storage, s)
		}
	})
	if value == (axis.Word{}) {
		delete(w.storage, s)
	} else {
		w.storage[s] = value
	}
}

func (w *World) CreateSnapshot() axis.Snapshot {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return axis.Snapshot(len(w.journal))
}

func (w *World) RestoreSnapshot(snapshot axis.Snapshot) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	for len(w.journal) > int(snapshot) {
		last := len(w.journal) - 1
		w.journal[last]()
		w.journal = w.journal[:last]
	}
}

// --- AccountLedger ---

func (w *World) AccountExists(address axis.Address) (bool, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	account, found := w.accounts[address]
	return found && !account.isEmpty(), nil
}

func (w *World) GetBalance(address axis.Address) (axis.Value, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.getAccount(address).Balance, nil
}

func (w *World) GetNonce(address axis.Address) (uint64, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.getAccount(address).Nonce, nil
}

func (w *World) SetNonce(address axis.Address, nonce uint64) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.updateAccount(address, func(a *Account) { a.Nonce = nonce })
	return nil
}

func (w *World) GetCode(address axis.Address) (axis.Code, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.getAccount(address).Code, nil
}

// GetCodeHash returns the Keccak-256 hash of the code of an account, and
// the zero hash for accounts that do not exist.
func (w *World) GetCodeHash(address axis.Address) (axis.Hash, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	account, found := w.accounts[address]
	if !found || account.isEmpty() {
		return axis.Hash{}, nil
	}
	return axis.Hash(crypto.Keccak256Hash(account.Code)), nil
}

func (w *World) GetCodeSize(address axis.Address) (int, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return len(w.getAccount(address).Code), nil
}

func (w *World) SetCode(address axis.Address, code axis.Code) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	code = append(axis.Code(nil), code...)
	w.updateAccount(address, func(a *Account) { a.Code = code })
	return nil
}

func (w *World) Transfer(from, to axis.Address, amount axis.Value) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.getAccount(from).Balance.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient balance of %v to transfer %v", from, amount)
	}
	if from == to {
		return nil
	}
	w.updateAccount(from, func(a *Account) { a.Balance = axis.Sub(a.Balance, amount) })
	w.updateAccount(to, func(a *Account) { a.Balance = axis.Add(a.Balance, amount) })
	return nil
}

// SelfDestruct credits the balance of the account to the beneficiary and
// removes the account including its storage.
func (w *World) SelfDestruct(address axis.Address, beneficiary axis.Address) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	balance := w.getAccount(address).Balance
	if beneficiary != address {
		w.updateAccount(beneficiary, func(a *Account) { a.Balance = axis.Add(a.Balance, balance) })
	}
	for s := range w.storage {
		if s.address == address {
			w.setStorage(s, axis.Word{})
		}
	}
	old, found := w.accounts[address]
	w.journal = append(w.journal, func() {
		if found {
			w.accounts[address] = old
		}
	})
	delete(w.accounts, address)
	return nil
}

// --- LogSink ---

func (w *World) EmitLog(log axis.Log) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	size := len(w.logs)
	w.journal = append(w.journal, func() { w.logs = w.logs[:size] })
	w.logs = append(w.logs, log)
}

// Logs returns the logs emitted so far and not rolled back.
func (w *World) Logs() []axis.Log {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return append([]axis.Log(nil), w.logs...)
}

// --- Setup ---

// SetBalance sets the balance of an account. It is intended for setting up
// a world before an execution and is journaled like all modifications.
func (w *World) SetBalance(address axis.Address, balance axis.Value) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.updateAccount(address, func(a *Account) { a.Balance = balance })
}

// getAccount returns the account at the given address or an empty account.
// The result must not be modified.
func (w *World) getAccount(address axis.Address) *Account {
	if account, found := w.accounts[address]; found {
		return account
	}
	return &Account{}
}

// updateAccount applies the update to a copy of the account and journals
// the previous state.
func (w *World) updateAccount(address axis.Address, update func(*Account)) {
	old, found := w.accounts[address]
	w.journal = append(w.journal, func() {
		if found {
			w.accounts[address] = old
		} else {
			delete(w.accounts, address)
		}
	})
	account := &Account{}
	if found {
		*account = *old
	}
	update(account)
	w.accounts[address] = account
}
