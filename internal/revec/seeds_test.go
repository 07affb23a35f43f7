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
	"testing"

	"github.com/vecgraph/revectorizer/internal/graph"
)

func TestSeedCollector_BucketsByDominatorAndAddress(t *testing.T) {
	b := graph.NewBuilder("seeds")
	idx := b.Index()

	// Deliberately built out of offset order to check the chain gets
	// sorted, not just appended in encounter order.
	s16 := b.Store(b.ConstOffset(16), idx, b.F32x4Add(b.Const(1), b.Const(1)))
	s0 := b.Store(b.ConstOffset(0), idx, b.F32x4Add(b.Const(2), b.Const(2)))
	s32 := b.Store(b.ConstOffset(32), idx, b.F32x4Add(b.Const(3), b.Const(3)))

	fn := b.Func()
	_ = s16
	_ = s0
	_ = s32

	sc := NewSeedCollector()
	sc.Collect(fn)

	chains := sc.Chains()
	if len(chains) != 1 {
		t.Fatalf("expected exactly one bucket, got %d", len(chains))
	}

	chain := chains[0]
	if len(chain) != 3 {
		t.Fatalf("expected 3 stores in the bucket, got %d", len(chain))
	}
	for i := 1; i < len(chain); i++ {
		if GetMemoryOffsetValue(chain[i]) <= GetMemoryOffsetValue(chain[i-1]) {
			t.Fatalf("chain not sorted by offset: %v", chain)
		}
	}
}

func TestSeedCollector_SkipsUnalignedOffset(t *testing.T) {
	b := graph.NewBuilder("unaligned")
	idx := b.Index()

	// Offset 4 is not a multiple of 16.
	b.Store(b.ConstOffset(4), idx, b.F32x4Add(b.Const(1), b.Const(1)))

	sc := NewSeedCollector()
	sc.Collect(b.Func())

	if len(sc.Chains()) != 0 {
		t.Fatalf("unaligned store should not have seeded any bucket")
	}
}

func TestSeedCollector_SeparatesDifferentAddresses(t *testing.T) {
	b := graph.NewBuilder("multi-addr")
	idxA, idxB := b.Index(), b.Index()

	b.Store(b.ConstOffset(0), idxA, b.F32x4Add(b.Const(1), b.Const(1)))
	b.Store(b.ConstOffset(0), idxB, b.F32x4Add(b.Const(2), b.Const(2)))

	sc := NewSeedCollector()
	sc.Collect(b.Func())

	if len(sc.Chains()) != 2 {
		t.Fatalf("expected 2 separate address buckets, got %d", len(sc.Chains()))
	}
}
