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
	"errors"
	"fmt"
	"sync"

	"github.com/axislabs/axisvm/go/axis"
	"github.com/ethereum/go-ethereum/log"
	"github.com/syndtr/goleveldb/leveldb"
	lvstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

var storagePrefix = []byte("storage:")

// LevelDB is a persistent storage adapter. Writes are buffered in memory
// and journaled until Commit flushes them in a single batch, so snapshots
// taken between commits can be restored without touching the database.
// Committing discards all snapshots taken before.
type LevelDB struct {
	mutex   sync.Mutex
	db      *leveldb.DB
	dirty   map[slot]axis.Word
	journal []func()
	err     error
}

// OpenLevelDB opens or creates a database in the given directory.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", path, err)
	}
	log.Info("Opened storage database", "path", path)
	return newLevelDB(db), nil
}

// OpenInMemoryLevelDB creates a database that is never written to disk.
func OpenInMemoryLevelDB() (*LevelDB, error) {
	db, err := leveldb.Open(lvstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory storage: %w", err)
	}
	return newLevelDB(db), nil
}

func newLevelDB(db *leveldb.DB) *LevelDB {
	return &LevelDB{db: db, dirty: map[slot]axis.Word{}}
}

func storageKey(address axis.Address, key axis.Key) []byte {
	res := make([]byte, 0, len(storagePrefix)+len(address)+len(key))
	res = append(res, storagePrefix...)
	res = append(res, address[:]...)
	return append(res, key[:]...)
}

func (s *LevelDB) GetStorage(address axis.Address, key axis.Key) axis.Word {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if value, found := s.dirty[slot{address, key}]; found {
		return value
	}
	data, err := s.db.Get(storageKey(address, key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return axis.Word{}
	}
	if err != nil {
		log.Error("Failed to read storage", "address", address, "key", key, "err", err)
		s.recordError(err)
		return axis.Word{}
	}
	var res axis.Word
	copy(res[len(res)-len(data):], data)
	return res
}

func (s *LevelDB) SetStorage(address axis.Address, key axis.Key, value axis.Word) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	sl := slot{address, key}
	old, found := s.dirty[sl]
	s.journal = append(s.journal, func() {
		if found {
			s.dirty[sl] = old
		} else {
			delete(s.dirty, sl)
		}
	})
	s.dirty[sl] = value
}

func (s *LevelDB) CreateSnapshot() axis.Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return axis.Snapshot(len(s.journal))
}

func (s *LevelDB) RestoreSnapshot(snapshot axis.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for len(s.journal) > int(snapshot) {
		last := len(s.journal) - 1
		s.journal[last]()
		s.journal = s.journal[:last]
	}
}

// Commit writes all buffered modifications to the database.
func (s *LevelDB) Commit() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	batch := new(leveldb.Batch)
	for sl, value := range s.dirty {
		if value == (axis.Word{}) {
			batch.Delete(storageKey(sl.address, sl.key))
		} else {
			batch.Put(storageKey(sl.address, sl.key), value[:])
		}
	}
	if err := s.db.Write(batch, nil); err != nil {
		log.Error("Failed to commit storage", "slots", batch.Len(), "err", err)
		s.recordError(err)
		return fmt.Errorf("failed to commit storage: %w", err)
	}
	log.Debug("Committed storage", "slots", batch.Len())
	s.dirty = map[slot]axis.Word{}
	s.journal = nil
	return nil
}

// Err returns the first read or write error encountered. Since the storage
// adapter interface does not report errors, callers should check Err after
// an execution.
func (s *LevelDB) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.err
}

func (s *LevelDB) recordError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Close closes the database. Uncommitted modifications are lost.
func (s *LevelDB) Close() error {
	return s.db.Close()
}
