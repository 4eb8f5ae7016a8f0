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

import "testing"

func TestStaticBlockContext_ReturnsParameters(t *testing.T) {
	params := BlockParameters{
		BlockNumber: 12,
		Timestamp:   34,
		Coinbase:    Address{5},
		GasLimit:    1000,
	}
	block := StaticBlockContext{Parameters: params}
	if want, got := params, block.GetBlockParameters(); want != got {
		t.Errorf("unexpected parameters, wanted %v, got %v", want, got)
	}
}

func TestStaticBlockContext_BlockHashDefaultsToZero(t *testing.T) {
	block := StaticBlockContext{}
	if want, got := (Hash{}), block.GetBlockHash(5); want != got {
		t.Errorf("unexpected hash, wanted %v, got %v", want, got)
	}

	block.BlockHash = func(number int64) Hash {
		return Hash{byte(number)}
	}
	if want, got := (Hash{5}), block.GetBlockHash(5); want != got {
		t.Errorf("unexpected hash, wanted %v, got %v", want, got)
	}
}
