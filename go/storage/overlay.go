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
	"sync"

	"github.com/axislabs/axisvm/go/axis"
)

// Overlay keeps contract storage in a separate adapter, typically a LevelDB,
// while accounts and logs live in a World. Snapshots cover both, so
// restoring one undoes storage writes, ledger changes and logs alike.
type Overlay struct {
	*World
	storage axis.StorageAdapter

	mutex     sync.Mutex
	snapshots []overlaySnapshot
}

type overlaySnapshot struct {
	world, storage axis.Snapshot
}

func NewOverlay(world *World, storage axis.StorageAdapter) *Overlay {
	return &Overlay{World: world, storage: storage}
}

func (o *Overlay) GetStorage(address axis.Address, key axis.Key) axis.Word {
	return o.storage.GetStorage(address, key)
}

func (o *Overlay) SetStorage(address axis.Address, key axis.Key, value axis.Word) {
	o.storage.SetStorage(address, key, value)
}

func (o *Overlay) CreateSnapshot() axis.Snapshot {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.snapshots = append(o.snapshots, overlaySnapshot{
		world:   o.World.CreateSnapshot(),
		storage: o.storage.CreateSnapshot(),
	})
	return axis.Snapshot(len(o.snapshots) - 1)
}

// RestoreSnapshot undoes all modifications since the given snapshot was
// taken. Snapshots taken after it become invalid.
func (o *Overlay) RestoreSnapshot(snapshot axis.Snapshot) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if snapshot < 0 || int(snapshot) >= len(o.snapshots) {
		return
	}
	restored := o.snapshots[snapshot]
	o.storage.RestoreSnapshot(restored.storage)
	o.World.RestoreSnapshot(restored.world)
	o.snapshots = o.snapshots[:snapshot+1]
}
