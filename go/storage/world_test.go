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
	"testing"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

var (
	_ axis.StorageAdapter = (*World)(nil)
	_ axis.AccountLedger  = (*World)(nil)
	_ axis.LogSink        = (*World)(nil)
)

func TestWorld_StorageIsInitiallyZero(t *testing.T) {
	world := NewWorld()
	require.Equal(t, axis.Word{}, world.GetStorage(axis.Address{1}, axis.Key{2}))
}

func TestWorld_StorageCanBeWrittenAndRead(t *testing.T) {
	world := NewWorld()
	world.SetStorage(axis.Address{1}, axis.Key{2}, axis.Word{3})
	require.Equal(t, axis.Word{3}, world.GetStorage(axis.Address{1}, axis.Key{2}))
	require.Equal(t, axis.Word{}, world.GetStorage(axis.Address{2}, axis.Key{2}))
	require.Equal(t, axis.Word{}, world.GetStorage(axis.Address{1}, axis.Key{3}))
}

func TestWorld_RestoreSnapshotUndoesStorageWrites(t *testing.T) {
	world := NewWorld()
	world.SetStorage(axis.Address{1}, axis.Key{1}, axis.Word{1})
	snapshot := world.CreateSnapshot()
	world.SetStorage(axis.Address{1}, axis.Key{1}, axis.Word{2})
	world.SetStorage(axis.Address{1}, axis.Key{2}, axis.Word{3})

	world.RestoreSnapshot(snapshot)
	require.Equal(t, axis.Word{1}, world.GetStorage(axis.Address{1}, axis.Key{1}))
	require.Equal(t, axis.Word{}, world.GetStorage(axis.Address{1}, axis.Key{2}))
}

func TestWorld_NestedSnapshotsCanBeRestoredInOrder(t *testing.T) {
	world := NewWorld()
	outer := world.CreateSnapshot()
	world.SetStorage(axis.Address{1}, axis.Key{1}, axis.Word{1})
	inner := world.CreateSnapshot()
	world.SetStorage(axis.Address{1}, axis.Key{1}, axis.Word{2})

	world.RestoreSnapshot(inner)
	require.Equal(t, axis.Word{1}, world.GetStorage(axis.Address{1}, axis.Key{1}))
	world.RestoreSnapshot(outer)
	require.Equal(t, axis.Word{}, world.GetStorage(axis.Address{1}, axis.Key{1}))
}

func TestWorld_TransferMovesBalance(t *testing.T) {
	world := NewWorld()
	world.SetBalance(axis.Address{1}, axis.NewValue(100))

	require.NoError(t, world.Transfer(axis.Address{1}, axis.Address{2}, axis.NewValue(30)))

	balance, err := world.GetBalance(axis.Address{1})
	require.NoError(t, err)
	require.Equal(t, axis.NewValue(70), balance)
	balance, err = world.GetBalance(axis.Address{2})
	require.NoError(t, err)
	require.Equal(t, axis.NewValue(30), balance)
}

func TestWorld_TransferWithInsufficientBalanceFails(t *testing.T) {
	world := NewWorld()
	world.SetBalance(axis.Address{1}, axis.NewValue(10))
	require.Error(t, world.Transfer(axis.Address{1}, axis.Address{2}, axis.NewValue(11)))

	balance, err := world.GetBalance(axis.Address{1})
	require.NoError(t, err)
	require.Equal(t, axis.NewValue(10), balance)
}

func TestWorld_RestoreSnapshotUndoesAccountChanges(t *testing.T) {
	world := NewWorld()
	world.SetBalance(axis.Address{1}, axis.NewValue(100))
	snapshot := world.CreateSnapshot()

	require.NoError(t, world.Transfer(axis.Address{1}, axis.Address{2}, axis.NewValue(30)))
	require.NoError(t, world.SetNonce(axis.Address{2}, 5))
	require.NoError(t, world.SetCode(axis.Address{3}, axis.Code{1, 2, 3}))
	world.RestoreSnapshot(snapshot)

	balance, _ := world.GetBalance(axis.Address{1})
	require.Equal(t, axis.NewValue(100), balance)
	for _, address := range []axis.Address{{2}, {3}} {
		exists, err := world.AccountExists(address)
		require.NoError(t, err)
		require.False(t, exists)
	}
}

func TestWorld_CodeHashIsKeccakOfCode(t *testing.T) {
	world := NewWorld()
	code := axis.Code{0x60, 0x01, 0x00}
	require.NoError(t, world.SetCode(axis.Address{1}, code))

	hash, err := world.GetCodeHash(axis.Address{1})
	require.NoError(t, err)
	require.Equal(t, axis.Hash(crypto.Keccak256Hash(code)), hash)

	size, err := world.GetCodeSize(axis.Address{1})
	require.NoError(t, err)
	require.Equal(t, 3, size)

	hash, err = world.GetCodeHash(axis.Address{2})
	require.NoError(t, err)
	require.Equal(t, axis.Hash{}, hash)
}

func TestWorld_SetCodeStoresACopy(t *testing.T) {
	world := NewWorld()
	code := axis.Code{1, 2, 3}
	require.NoError(t, world.SetCode(axis.Address{1}, code))
	code[0] = 9

	got, err := world.GetCode(axis.Address{1})
	require.NoError(t, err)
	require.Equal(t, axis.Code{1, 2, 3}, got)
}

func TestWorld_SelfDestructRemovesAccountAndCreditsBeneficiary(t *testing.T) {
	world := NewWorld()
	world.SetBalance(axis.Address{1}, axis.NewValue(50))
	require.NoError(t, world.SetCode(axis.Address{1}, axis.Code{0x00}))
	world.SetStorage(axis.Address{1}, axis.Key{1}, axis.Word{1})
	snapshot := world.CreateSnapshot()

	require.NoError(t, world.SelfDestruct(axis.Address{1}, axis.Address{2}))

	exists, _ := world.AccountExists(axis.Address{1})
	require.False(t, exists)
	require.Equal(t, axis.Word{}, world.GetStorage(axis.Address{1}, axis.Key{1}))
	balance, _ := world.GetBalance(axis.Address{2})
	require.Equal(t, axis.NewValue(50), balance)

	world.RestoreSnapshot(snapshot)
	exists, _ = world.AccountExists(axis.Address{1})
	require.True(t, exists)
	require.Equal(t, axis.Word{1}, world.GetStorage(axis.Address{1}, axis.Key{1}))
	balance, _ = world.GetBalance(axis.Address{2})
	require.Equal(t, axis.Value{}, balance)
}

func TestWorld_LogsAreRolledBackWithSnapshots(t *testing.T) {
	world := NewWorld()
	world.EmitLog(axis.Log{Address: axis.Address{1}})
	snapshot := world.CreateSnapshot()
	world.EmitLog(axis.Log{Address: axis.Address{2}, Data: []byte{1}})
	require.Len(t, world.Logs(), 2)

	world.RestoreSnapshot(snapshot)
	require.Equal(t, []axis.Log{{Address: axis.Address{1}}}, world.Logs())
}
