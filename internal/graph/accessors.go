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

// This file, together with Function.SimdStores (function.go), is the
// surface the surrounding compiler needs to expose for revectorization.
// internal/revec reads nodes only through these functions -- never
// Node/BasicBlock fields directly -- except for trace.go, which reads a
// node's ID and Op for display. Swapping in a real sea-of-nodes graph means
// reimplementing these, not touching the tree builder.

func NodeOpcode(n *Node) Opcode {
	return n.Op
}

func ValueInputs(n *Node) []*Node {
	return n.ValueIn
}

// NonControlInputs returns every value and effect input of n, in that
// order -- the set the side-effect-free-load walk traverses (it never
// follows control edges).
func NonControlInputs(n *Node) []*Node {
	out := make([]*Node, 0, len(n.ValueIn)+len(n.EffectIn))
	out = append(out, n.ValueIn...)
	out = append(out, n.EffectIn...)
	return out
}

// FirstControlIndex returns the number of non-control (value + effect)
// inputs, i.e. the index at which control inputs would begin were all
// three input kinds packed into a single slice.
func FirstControlIndex(n *Node) int {
	return len(n.ValueIn) + len(n.EffectIn)
}

func SameBasicBlock(a *Node, b *Node) bool {
	return a.Block != nil && b.Block != nil && a.Block.ID == b.Block.ID
}

func IsConstant(n *Node) bool {
	return n.Op == Int64Constant
}

func IsPhi(n *Node) bool {
	return n.Op == Phi
}

// EarlySchedulePosition returns the block at which n may earliest be
// scheduled: n.Block for pinned nodes, or the dominator of n's uses' blocks
// for floating ones (see Node.Floating).
func EarlySchedulePosition(n *Node, fn *Function) *BasicBlock {
	if !n.Floating || fn == nil {
		return n.Block
	}

	dom := fn.Dominators()
	var lca *BasicBlock

	for _, use := range fn.Nodes {
		for _, in := range use.ValueIn {
			if in == n {
				lca = dom.NearestCommonDominator(lca, use.Block)
			}
		}
	}

	if lca == nil {
		return n.Block
	}
	return lca
}

func LoadRepresentation(n *Node) Representation {
	if p, ok := n.Params.(LoadParams); ok {
		return p.Rep
	}
	return RepWord64
}

func PhiRepresentation(n *Node) Representation {
	if p, ok := n.Params.(PhiParams); ok {
		return p.Rep
	}
	return RepWord64
}

func LoopExitValueRepresentation(n *Node) Representation {
	if p, ok := n.Params.(LoopExitValueParams); ok {
		return p.Rep
	}
	return RepWord64
}

func LoadTransformParams(n *Node) LoadTransformation {
	if p, ok := n.Params.(LoadTransformParamsData); ok {
		return p.Kind
	}
	return S128Load32Splat
}

func ExtractLaneIndex(n *Node) int {
	if p, ok := n.Params.(ExtractF128Params); ok {
		return p.Lane
	}
	return 0
}

// ConstantValue returns the literal of an Int64Constant node and true, or
// (0, false) if n is not such a constant. This intentionally carries the
// "is it actually a constant" bit out of band rather than folding it into a
// sentinel return value -- see internal/revec.GetConstantValue, which does
// use a sentinel and is kept isolated at the package boundary because of it
// (see DESIGN.md).
func ConstantValue(n *Node) (int64, bool) {
	if p, ok := n.Params.(ConstParams); ok {
		return p.Value, true
	}
	return 0, false
}

// SameOperator reports whether a and b carry the same opcode and the same
// operator parameters.
func SameOperator(a *Node, b *Node) bool {
	if a.Op != b.Op {
		return false
	}
	return operatorParamsEqual(a.Op, a.Params, b.Params)
}

func operatorParamsEqual(op Opcode, a interface{}, b interface{}) bool {
	switch op {
	case Int64Constant:
		return a.(ConstParams) == b.(ConstParams)
	case Load, ProtectedLoad:
		return a.(LoadParams) == b.(LoadParams)
	case LoadTransform:
		return a.(LoadTransformParamsData) == b.(LoadTransformParamsData)
	case Phi:
		return a.(PhiParams) == b.(PhiParams)
	case LoopExitValue:
		return a.(LoopExitValueParams) == b.(LoopExitValueParams)
	case ExtractF128:
		return a.(ExtractF128Params) == b.(ExtractF128Params)
	default:
		// Store, ProtectedStore, and the SIMD arithmetic ops carry no
		// opcode-specific parameters in this graph -- opcode equality is
		// operator equality for them.
		return true
	}
}
