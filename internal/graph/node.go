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

// Package graph is a minimal, concrete stand-in for the opaque IR node a
// surrounding sea-of-nodes compiler would otherwise provide.
// internal/revec reads nodes through the accessor functions in
// accessors.go — only its trace output reads a Node's ID and Op fields
// directly — so a host compiler with its own graph representation can be
// substituted without touching the SLP tree builder.
package graph

import "fmt"

// ConstParams is the Params value of an Int64Constant node.
type ConstParams struct {
	Value int64
}

// LoadParams is the Params value of a Load/ProtectedLoad node.
type LoadParams struct {
	Rep Representation
}

// LoadTransformParamsData is the Params value of a LoadTransform node.
type LoadTransformParamsData struct {
	Kind LoadTransformation
}

// PhiParams is the Params value of a Phi node.
type PhiParams struct {
	Rep Representation
}

// LoopExitValueParams is the Params value of a LoopExitValue node.
type LoopExitValueParams struct {
	Rep Representation
}

// ExtractF128Params is the Params value of an ExtractF128 node.
type ExtractF128Params struct {
	Lane int
}

// Node is one value in the dataflow graph. Value/effect/control inputs are
// kept as three separate slices rather than one combined slice with a
// first-control-index cutoff, purely for clarity in this reimplementation
// -- FirstControlIndex still exists as an accessor because a host compiler
// that packs all three input kinds into one slice would compute that index
// instead of returning a cut slice.
type Node struct {
	ID        int
	Op        Opcode
	Params    interface{}
	ValueIn   []*Node
	EffectIn  []*Node
	ControlIn []*Node
	Block     *BasicBlock

	// Floating marks a node that is not pinned to Block by the scheduler
	// yet; EarlySchedulePosition hoists it to the dominator of its uses'
	// blocks instead of returning Block verbatim. Constants and pure
	// arithmetic are typically floating in a sea-of-nodes graph.
	Floating bool
}

func (self *Node) String() string {
	return fmt.Sprintf("#%d:%s", self.ID, self.Op)
}

// ValueInput returns the i'th value input of the node.
func (self *Node) ValueInput(i int) *Node {
	return self.ValueIn[i]
}
