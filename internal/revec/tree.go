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
	"github.com/oleiade/lane"

	"github.com/vecgraph/revectorizer/internal/graph"
	"github.com/vecgraph/revectorizer/internal/opts"
)

// SLPTree is the transient workspace of one BuildTree call: the memo
// (node -> PackNode), the visit stack (currently-being-constructed
// groups), and the on-stack set derived from it. Every PackNode it
// allocates comes from arena, which the driver owns across many builds.
type SLPTree struct {
	arena   *Arena
	options opts.Options
	tracer  Tracer

	memo    map[*graph.Node]*PackNode
	stack   *lane.Stack
	onStack map[*graph.Node]int
}

// NewSLPTree returns a tree builder backed by arena, configured by
// options, tracing failures through tracer (nil disables tracing).
func NewSLPTree(arena *Arena, options opts.Options, tracer Tracer) *SLPTree {
	t := &SLPTree{arena: arena, options: options, tracer: tracer}
	t.reset()
	return t
}

func (self *SLPTree) reset() {
	self.memo = make(map[*graph.Node]*PackNode)
	self.stack = lane.NewStack()
	self.onStack = make(map[*graph.Node]int)
}

// BuildTree resets the workspace and attempts to pack roots (and,
// transitively, everything roots' recursion reaches). It returns the root
// PackNode and true on success, or (nil, false) on failure -- the memo is
// left populated with whatever partial packing was attempted, since the
// caller is expected to discard this SLPTree (or call BuildTree again,
// which resets first) rather than inspect it after a failure.
func (self *SLPTree) BuildTree(roots NodeGroup) (*PackNode, bool) {
	self.reset()

	p, reason := self.rec(roots, 0)
	if p == nil {
		self.trace(reason, roots)
		return nil, false
	}
	self.trace(ReasonOK, roots)
	return p, true
}

func (self *SLPTree) trace(reason Reason, group NodeGroup) {
	if self.tracer != nil {
		self.tracer.Trace(reason, group)
	}
}

func (self *SLPTree) push(group NodeGroup) {
	for _, n := range group {
		self.onStack[n]++
	}
	self.stack.Push(group)
}

// pop is always invoked via defer immediately after a successful push, so
// every recursive frame's stack effect is exactly balanced regardless of
// which return path is taken -- this is what makes invariant 7 ("the
// visit stack is empty on return") hold unconditionally, rather than only
// on paths that remember to clean up explicitly.
func (self *SLPTree) pop(group NodeGroup) {
	for _, n := range group {
		if self.onStack[n]--; self.onStack[n] <= 0 {
			delete(self.onStack, n)
		}
	}
	self.stack.Pop()
}

// anyOnStack reports whether at least one member of group is already
// being built further up the call chain. Despite the natural reading of
// "cycle guard" as an all-or-nothing test, a single shared node is enough
// to signal reentrancy -- a group can revisit a stacked node while
// pairing it with a fresh partner on the other lane.
func (self *SLPTree) anyOnStack(group NodeGroup) bool {
	for _, n := range group {
		if self.onStack[n] > 0 {
			return true
		}
	}
	return false
}

func (self *SLPTree) stackTopIsPhiGroup() bool {
	if self.stack.Empty() {
		return false
	}
	top := self.stack.Head().(NodeGroup)
	for _, n := range top {
		if !graph.IsPhi(n) {
			return false
		}
	}
	return true
}

func (self *SLPTree) rec(group NodeGroup, depth int) (*PackNode, Reason) {
	if self.options.DepthExceeded(depth) {
		return nil, ReasonDepthExceeded
	}

	if self.anyOnStack(group) && !self.stackTopIsPhiGroup() {
		return nil, ReasonCycleWithoutPhi
	}

	self.push(group)
	defer self.pop(group)

	if reason, ok := canBePacked(group); !ok {
		return nil, reason
	}

	for _, n := range group {
		if p, ok := self.memo[n]; ok {
			if !p.IsSame(group) {
				return nil, ReasonPartialOverlap
			}
			return p, ReasonOK
		}
	}

	op := graph.NodeOpcode(group[0])

	if isLeafOpcode(op) {
		return self.buildLeaf(group, op)
	}
	return self.buildRecursive(group, op, depth)
}

func canBePacked(group NodeGroup) (Reason, bool) {
	for _, n := range group[1:] {
		if !graph.SameBasicBlock(group[0], n) {
			return ReasonMixedBasicBlock, false
		}
	}
	if !AllSameOperator(group) {
		// An ExtractF128 pair differs in its lane parameter by construction;
		// extractLeaf checks the lanes, so only the opcode must agree here.
		if graph.NodeOpcode(group[0]) != graph.ExtractF128 {
			return ReasonMixedOperator, false
		}
		for _, n := range group[1:] {
			if graph.NodeOpcode(n) != graph.ExtractF128 {
				return ReasonMixedOperator, false
			}
		}
	}
	if AllConstant(group) {
		return ReasonAllConstant, false
	}
	if !canPackOpcode(graph.NodeOpcode(group[0])) {
		return ReasonUnsupportedOpcode, false
	}
	return ReasonNone, true
}

func (self *SLPTree) memoize(group NodeGroup) *PackNode {
	p := self.arena.alloc(group)
	for _, n := range group {
		self.memo[n] = p
	}
	return p
}

func (self *SLPTree) buildLeaf(group NodeGroup, op graph.Opcode) (*PackNode, Reason) {
	switch op {
	case graph.ExtractF128:
		return self.extractLeaf(group)
	case graph.ProtectedLoad:
		return self.protectedLoadLeaf(group)
	case graph.LoadTransform:
		return self.loadTransformLeaf(group)
	default:
		return nil, ReasonUnsupportedOpcode
	}
}

func (self *SLPTree) extractLeaf(group NodeGroup) (*PackNode, Reason) {
	node0, node1 := group[0], group[1]
	s0 := graph.ValueInputs(node0)[0]
	s1 := graph.ValueInputs(node1)[0]

	if s0 != s1 {
		return nil, ReasonExtractMismatch
	}

	if graph.NodeOpcode(s0) == graph.LoadTransform {
		if node0 != node1 {
			return nil, ReasonExtractMismatch
		}
	} else if graph.ExtractLaneIndex(node1) != graph.ExtractLaneIndex(node0)+1 {
		return nil, ReasonExtractMismatch
	}

	return self.memoize(group), ReasonOK
}

func (self *SLPTree) protectedLoadLeaf(group NodeGroup) (*PackNode, Reason) {
	if !AllSameAddress(group) {
		return nil, ReasonNonContinuous
	}
	if graph.LoadRepresentation(group[0]) != graph.RepSimd128 {
		return nil, ReasonNonSimd128Load
	}
	if !IsContinuousAccess(sortedByOffset(group)) {
		return nil, ReasonNonContinuous
	}
	if !self.isSideEffectFreeLoad(group) {
		return nil, ReasonAliasingLoad
	}
	return self.memoize(group), ReasonOK
}

func (self *SLPTree) loadTransformLeaf(group NodeGroup) (*PackNode, Reason) {
	if !AllSameAddress(group) {
		return nil, ReasonNonContinuous
	}
	if !IsSplat(group) {
		return nil, ReasonNonContinuous
	}
	kind := graph.LoadTransformParams(group[0])
	if kind != graph.S128Load32Splat && kind != graph.S128Load64Splat {
		return nil, ReasonUnsupportedLoadTransform
	}
	if !self.isSideEffectFreeLoad(group) {
		return nil, ReasonAliasingLoad
	}
	return self.memoize(group), ReasonOK
}

// buildRecursive handles every packable non-leaf opcode: it memoizes the
// PackNode for group before recursing into its children (matching the
// leaf-vs-eager-memo split of rec's opcode dispatch), so a value-dataflow
// cycle that loops back to the exact same group -- the shape a
// self-referential Simd128 phi produces -- resolves as a diamond merge
// against the very entry being constructed here, rather than infinite
// recursion.
func (self *SLPTree) buildRecursive(group NodeGroup, op graph.Opcode, depth int) (*PackNode, Reason) {
	node0 := group[0]

	switch op {
	case graph.Phi:
		if graph.PhiRepresentation(node0) != graph.RepSimd128 {
			return nil, ReasonUnsupportedOpcode
		}
	case graph.LoopExitValue:
		if graph.LoopExitValueRepresentation(node0) != graph.RepSimd128 {
			return nil, ReasonUnsupportedOpcode
		}
	case graph.Store, graph.ProtectedStore:
		if !AllSameAddress(group) {
			return nil, ReasonNonContinuous
		}
	default:
		if !simd128Opcode(op) {
			return nil, ReasonUnsupportedOpcode
		}
	}

	count := len(graph.ValueInputs(node0))
	pnode := self.memoize(group)

	for _, i := range recurseIndices(op, count) {
		operand := make(NodeGroup, len(group))
		for j, n := range group {
			in := graph.ValueInputs(n)
			if i >= len(in) {
				return nil, ReasonChildFailed
			}
			operand[j] = in[i]
		}

		child, reason := self.rec(operand, depth+1)
		if child == nil {
			return nil, reason
		}
		pnode.SetOperand(i, child)
	}

	return pnode, ReasonOK
}

// isSideEffectFreeLoad rejects a group of loads if any of them may observe a
// store that is still being packed further up the same recursion. It walks
// backward from every non-control (value + effect) input of every load in
// group, staying within the loads' basic block, and fails as soon as it
// reaches a node still on self.onStack -- that node is a store (or other
// effect-producer) whose PackNode build hasn't returned yet, so widening the
// load here could float it above a side effect it depends on. The walk uses
// an explicit worklist rather than recursion since shared inputs are
// revisited from multiple loads.
func (self *SLPTree) isSideEffectFreeLoad(group NodeGroup) bool {
	toVisit := lane.NewQueue()
	visited := make(map[*graph.Node]bool)

	inGroup := make(map[*graph.Node]bool, len(group))
	for _, n := range group {
		inGroup[n] = true
	}

	for _, load := range group {
		for _, in := range graph.NonControlInputs(load) {
			if !inGroup[in] {
				toVisit.Enqueue(in)
			}
		}
	}

	for !toVisit.Empty() {
		x := toVisit.Dequeue().(*graph.Node)
		if visited[x] {
			continue
		}
		visited[x] = true

		if self.onStack[x] > 0 {
			return false
		}

		if graph.SameBasicBlock(x, group[0]) {
			for _, in := range graph.NonControlInputs(x) {
				toVisit.Enqueue(in)
			}
		}
	}

	return true
}
