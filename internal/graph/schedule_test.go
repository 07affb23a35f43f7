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

package graph

import "testing"

// b0 -> b1 -> b3
//   \-> b2 -/
func diamond() (b0, b1, b2, b3 *BasicBlock) {
	b0 = &BasicBlock{ID: 0}
	b1 = &BasicBlock{ID: 1}
	b2 = &BasicBlock{ID: 2}
	b3 = &BasicBlock{ID: 3}
	b0.addEdgeTo(b1)
	b0.addEdgeTo(b2)
	b1.addEdgeTo(b3)
	b2.addEdgeTo(b3)
	return
}

func TestBuildDominatorTree_Diamond(t *testing.T) {
	b0, b1, b2, b3 := diamond()
	dt := BuildDominatorTree(b0)

	cases := []struct {
		block *BasicBlock
		idom  *BasicBlock
	}{
		{b1, b0},
		{b2, b0},
		{b3, b0},
	}

	for _, c := range cases {
		if got := dt.DominatedBy[c.block.ID]; got.ID != c.idom.ID {
			t.Fatalf("block %d: got idom %d, want %d", c.block.ID, got.ID, c.idom.ID)
		}
	}
}

func TestDominatorTree_Dominates(t *testing.T) {
	b0, b1, _, b3 := diamond()
	dt := BuildDominatorTree(b0)

	if !dt.Dominates(b0, b3) {
		t.Fatalf("expected entry to dominate every block")
	}
	if dt.Dominates(b1, b3) {
		t.Fatalf("b1 does not dominate b3 in a diamond: b2's path bypasses it")
	}
	if !dt.Dominates(b1, b1) {
		t.Fatalf("a block dominates itself")
	}
}

func TestDominatorTree_NearestCommonDominator(t *testing.T) {
	b0, b1, b2, b3 := diamond()
	dt := BuildDominatorTree(b0)

	if got := dt.NearestCommonDominator(b1, b2); got.ID != b0.ID {
		t.Fatalf("nearest common dominator of b1,b2: got %d, want %d", got.ID, b0.ID)
	}
	if got := dt.NearestCommonDominator(b3, b3); got.ID != b3.ID {
		t.Fatalf("nearest common dominator of a block with itself is itself")
	}
}

func TestEarlySchedulePosition_Pinned(t *testing.T) {
	b0, _, _, _ := diamond()
	n := &Node{ID: 1, Op: Load, Block: b0}

	if got := EarlySchedulePosition(n, nil); got != b0 {
		t.Fatalf("pinned node should report its own block regardless of fn")
	}
}

func TestEarlySchedulePosition_FloatingHoistsToCommonDominator(t *testing.T) {
	b0, b1, b2, _ := diamond()

	c := &Node{ID: 1, Op: Int64Constant, Params: ConstParams{Value: 4}, Block: b0, Floating: true}
	u1 := &Node{ID: 2, Op: Int64Add, Block: b1, ValueIn: []*Node{c, c}}
	u2 := &Node{ID: 3, Op: Int64Add, Block: b2, ValueIn: []*Node{c, c}}

	fn := &Function{Entry: b0, Nodes: []*Node{c, u1, u2}}

	if got := EarlySchedulePosition(c, fn); got.ID != b0.ID {
		t.Fatalf("floating constant used from both arms of the diamond should hoist to %d, got %d", b0.ID, got.ID)
	}
}
