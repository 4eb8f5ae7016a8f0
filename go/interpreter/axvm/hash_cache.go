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
	lru "github.com/hashicorp/golang-lru/v2"
)

// sha3HashCache retains hashes of 32 and 64 byte inputs, the sizes of
// storage keys and mapping slot computations, which are frequently
// re-hashed by contracts.
type sha3HashCache struct {
	cache32 *lru.Cache[[32]byte, axis.Hash]
	cache64 *lru.Cache[[64]byte, axis.Hash]
}

func newSha3HashCache(capacity32 int, capacity64 int) *sha3HashCache {
	cache32, err := lru.New[[32]byte, axis.Hash](max(capacity32, 1))
	if err != nil {
		panic(err)
	}
	cache64, err := lru.New[[64]byte, axis.Hash](max(capacity64, 1))
	if err != nil {
		panic(err)
	}
	return &sha3HashCache{cache32: cache32, cache64: cache64}
}

func (h *sha3HashCache) hash(data []byte) axis.Hash {
	switch len(data) {
	case 32:
		key := [32]byte(data)
		if hash, found := h.cache32.Get(key); found {
			return hash
		}
		hash := Keccak256(data)
		h.cache32.Add(key, hash)
		return hash
	case 64:
		key := [64]byte(data)
		if hash, found := h.cache64.Get(key); found {
			return hash
		}
		hash := Keccak256(data)
		h.cache64.Add(key, hash)
		return hash
	}
	return Keccak256(data)
}
