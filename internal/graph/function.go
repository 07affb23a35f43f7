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

// Function is the smallest unit the driver operates on: a name (used only
// for tracing), an entry block, and every node reachable from it. Building
// one incrementally is done through Builder (see builder.go).
type Function struct {
	Name  string
	Entry *BasicBlock
	Nodes []*Node

	dom     *DominatorTree
	domdone bool
}

// Dominators lazily computes and caches the function's dominator tree.
func (self *Function) Dominators() DominatorTree {
	if !self.domdone {
		d := BuildDominatorTree(self.Entry)
		self.dom = &d
		self.domdone = true
	}
	return *self.dom
}

// SimdStores returns every Store/ProtectedStore node whose value operand is
// a 128-bit SIMD value -- the population the seed collector (C4) scans.
func (self *Function) SimdStores() []*Node {
	var ret []*Node

	for _, n := range self.Nodes {
		if n.Op != Store && n.Op != ProtectedStore {
			continue
		}
		v := n.ValueIn[2]
		simd := IsSimd128Operation(v) || v.Op == ExtractF128 || v.Op == LoadTransform ||
			((v.Op == Load || v.Op == ProtectedLoad) && LoadRepresentation(v) == RepSimd128) ||
			(v.Op == Phi && PhiRepresentation(v) == RepSimd128) ||
			(v.Op == LoopExitValue && LoopExitValueRepresentation(v) == RepSimd128)

		if simd {
			ret = append(ret, n)
		}
	}

	return ret
}
