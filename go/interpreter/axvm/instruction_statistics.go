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
	"strings"
	"sync"

	"github.com/axislabs/axisvm/go/axis/vm"
	"golang.org/x/exp/slices"
)

// statisticRunner counts executed instructions and instruction sequences
// over all executions it is used for.
type statisticRunner struct {
	mutex sync.Mutex
	stats *statistics
}

func (s *statisticRunner) run(e *execution) error {
	stats := statsCollector{stats: newStatistics()}
	for !e.done() {
		if op, ok := e.current().currentOpCode(); ok {
			stats.nextOp(op)
		}
		e.step()
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	s.stats.insert(stats.stats)
	return nil
}

func (s *statisticRunner) getSummary() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	return s.stats.print()
}

func (s *statisticRunner) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats = newStatistics()
}

type statistics struct {
	count       uint64
	singleCount map[uint64]uint64
	pairCount   map[uint64]uint64
	tripleCount map[uint64]uint64
	quadCount   map[uint64]uint64
}

func newStatistics() *statistics {
	return &statistics{
		singleCount: map[uint64]uint64{},
		pairCount:   map[uint64]uint64{},
		tripleCount: map[uint64]uint64{},
		quadCount:   map[uint64]uint64{},
	}
}

func (s *statistics) insert(src *statistics) {
	s.count += src.count
	for k, v := range src.singleCount {
		s.singleCount[k] += v
	}
	for k, v := range src.pairCount {
		s.pairCount[k] += v
	}
	for k, v := range src.tripleCount {
		s.tripleCount[k] += v
	}
	for k, v := range src.quadCount {
		s.quadCount[k] += v
	}
}

type statisticsEntry struct {
	value uint64
	count uint64
}

// getTopN returns the n most frequent entries, ties broken by value.
func getTopN(data map[uint64]uint64, n int) []statisticsEntry {
	list := make([]statisticsEntry, 0, len(data))
	for k, c := range data {
		list = append(list, statisticsEntry{k, c})
	}
	slices.SortFunc(list, func(a, b statisticsEntry) int {
		if a.count != b.count {
			if a.count > b.count {
				return -1
			}
			return 1
		}
		if a.value < b.value {
			return -1
		}
		if a.value > b.value {
			return 1
		}
		return 0
	})
	if len(list) < n {
		return list
	}
	return list[0:n]
}

func (s *statistics) print() string {
	builder := strings.Builder{}
	write := func(format string, args ...interface{}) {
		builder.WriteString(fmt.Sprintf(format, args...))
	}
	percent := func(count uint64) float32 {
		return float32(count*100) / float32(s.count)
	}
	sequence := func(value uint64, length int) string {
		res := ""
		for i := length - 1; i >= 0; i-- {
			res += fmt.Sprintf("%-15v", vm.OpCode(value>>(16*i)))
		}
		return res
	}

	write("\n----- Statistics ------\n")
	write("\nSteps: %d\n", s.count)
	sections := []struct {
		title  string
		data   map[uint64]uint64
		length int
	}{
		{"Singles", s.singleCount, 1},
		{"Pairs", s.pairCount, 2},
		{"Triples", s.tripleCount, 3},
		{"Quads", s.quadCount, 4},
	}
	for _, section := range sections {
		write("\n%s:\n", section.title)
		for _, e := range getTopN(section.data, 5) {
			write("\t%s: %d (%.2f%%)\n", sequence(e.value, section.length), e.count, percent(e.count))
		}
	}
	write("\n")
	return builder.String()
}

type statsCollector struct {
	stats *statistics

	last       uint64
	secondLast uint64
	thirdLast  uint64
}

func (s *statsCollector) nextOp(op vm.OpCode) {
	cur := uint64(op)
	s.stats.count++
	s.stats.singleCount[cur]++
	if s.stats.count >= 2 {
		s.stats.pairCount[s.last<<16|cur]++
	}
	if s.stats.count >= 3 {
		s.stats.tripleCount[s.secondLast<<32|s.last<<16|cur]++
	}
	if s.stats.count >= 4 {
		s.stats.quadCount[s.thirdLast<<48|s.secondLast<<32|s.last<<16|cur]++
	}
	s.last, s.secondLast, s.thirdLast = cur, s.last, s.secondLast
}
