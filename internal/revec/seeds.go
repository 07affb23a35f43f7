/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package revec

import (
	"sort"

	"github.com/vecgraph/revectorizer/internal/graph"
)

// StoreChain is one (dominator, address) bucket's stores, kept sorted by
// GetMemoryOffsetValue.
type StoreChain []*graph.Node

func (self StoreChain) sort() {
	sort.Slice(self, func(i, j int) bool {
		return GetMemoryOffsetValue(self[i]) < GetMemoryOffsetValue(self[j])
	})
}

// addrKey canonicalizes GetNodeAddress's result into something usable as
// a Go map key: the address node's identity already is one (it's a
// pointer), so this exists mainly to give the seed collector's bucket
// keys a name distinct from a bare *graph.Node in the code that reads it.
type addrKey = *graph.Node

// SeedCollector scans a function's SIMD-128 stores and buckets them by
// (dominator, address) for the driver to pair up.
type SeedCollector struct {
	buckets map[*graph.BasicBlock]map[addrKey]StoreChain
}

// NewSeedCollector returns an empty collector.
func NewSeedCollector() *SeedCollector {
	return &SeedCollector{buckets: make(map[*graph.BasicBlock]map[addrKey]StoreChain)}
}

// Collect scans every SIMD store in fn and buckets the SIMD-aligned ones.
// Stores whose offset is not a multiple of 16 (unaligned relative to a
// 128-bit lane) are skipped entirely -- there is no partial widening.
func (self *SeedCollector) Collect(fn *graph.Function) {
	for _, n := range fn.SimdStores() {
		dom := graph.EarlySchedulePosition(n, fn)

		if GetMemoryOffsetValue(n)%16 != 0 {
			continue
		}

		addr := GetNodeAddress(n)
		if addr == nil {
			continue
		}

		byAddr, ok := self.buckets[dom]
		if !ok {
			byAddr = make(map[addrKey]StoreChain)
			self.buckets[dom] = byAddr
		}
		byAddr[addr] = append(byAddr[addr], n)
	}

	for _, byAddr := range self.buckets {
		for addr, chain := range byAddr {
			chain.sort()
			byAddr[addr] = chain
		}
	}
}

// Chains returns every bucketed chain, in no particular order across
// buckets (the driver treats each independently).
func (self *SeedCollector) Chains() []StoreChain {
	var out []StoreChain
	for _, byAddr := range self.buckets {
		for _, chain := range byAddr {
			out = append(out, chain)
		}
	}
	return out
}
