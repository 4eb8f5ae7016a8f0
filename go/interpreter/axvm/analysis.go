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
	lru "github.com/hashicorp/golang-lru/v2"
)

// jumpDests is a bit set marking the positions of JUMPDEST instructions in a
// code that are not part of PUSH data.
type jumpDests []uint64

func (j jumpDests) isJumpDest(pos uint64) bool {
	if pos/64 >= uint64(len(j)) {
		return false
	}
	return j[pos/64]&(1<<(pos%64)) != 0
}

// analyzeJumpDests scans the code once, skipping the immediate data of PUSH
// instructions.
func analyzeJumpDests(code axis.Code) jumpDests {
	res := make(jumpDests, (len(code)+63)/64)
	for i := 0; i < len(code); {
		op := vm.OpCode(code[i])
		if op == vm.JUMPDEST {
			res[i/64] |= 1 << (i % 64)
		}
		i += op.Width()
	}
	return res
}

// jumpDestAnalyzer caches analysis results by code hash. Code without a
// hash is analyzed on every request.
type jumpDestAnalyzer struct {
	cache *lru.Cache[axis.Hash, jumpDests]
}

// defaultAnalysisCacheSize is the number of code analyses retained if no
// other size is configured.
const defaultAnalysisCacheSize = 1 << 12

// newJumpDestAnalyzer creates an analyzer retaining up to size results. Zero
// selects the default size, negative sizes disable caching.
func newJumpDestAnalyzer(size int) (*jumpDestAnalyzer, error) {
	if size < 0 {
		return &jumpDestAnalyzer{}, nil
	}
	if size == 0 {
		size = defaultAnalysisCacheSize
	}
	cache, err := lru.New[axis.Hash, jumpDests](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis cache: %w", err)
	}
	return &jumpDestAnalyzer{cache: cache}, nil
}

func (a *jumpDestAnalyzer) analyze(code axis.Code, hash *axis.Hash) jumpDests {
	if a.cache == nil || hash == nil {
		return analyzeJumpDests(code)
	}
	if res, found := a.cache.Get(*hash); found {
		return res
	}
	res := analyzeJumpDests(code)
	a.cache.Add(*hash, res)
	return res
}
