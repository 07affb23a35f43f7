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

// NodeGroup is an ordered pair of source nodes considered together as the
// two lanes of a candidate 256-bit operation. Lane 0 is index 0, lane 1 is
// index 1; two groups compare equal only if their members match pairwise
// in that order (isSameGroup).
type NodeGroup []*graph.Node

func isSameGroup(a, b NodeGroup) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GetConstantValue returns the literal of an Int64Constant node, or -1 if n
// is not one. Nothing in this package calls it: CanBePacked and the
// seed-offset arithmetic below use graph.IsConstant and graph.ConstantValue,
// which tell "not a constant" apart from "literally -1" (see DESIGN.md's
// note on the sentinel wart).
func GetConstantValue(n *graph.Node) int64 {
	if v, ok := graph.ConstantValue(n); ok {
		return v
	}
	return -1
}

// GetMemoryOffsetValue requires n to be a Store, ProtectedStore, or
// ProtectedLoad. value_input(0) is either the load/object-handle node that
// implies offset zero, or an Int64Add whose constant operand is the
// offset. Anything else is unknown and reported as -1, matching the
// sentinel value_input(0) itself would carry in the source this pass was
// modeled on.
func GetMemoryOffsetValue(n *graph.Node) int64 {
	in := graph.ValueInputs(n)
	if len(in) == 0 {
		return -1
	}
	off := in[0]

	switch graph.NodeOpcode(off) {
	case graph.Load, graph.LoadFromObject:
		return 0
	case graph.Int64Add:
		operands := graph.ValueInputs(off)
		for _, operand := range operands {
			if v, ok := graph.ConstantValue(operand); ok {
				return v
			}
		}
	}
	return -1
}

// GetNodeAddress returns value_input(1), the address-equivalence key used
// to bucket loads/stores that touch "the same" base index -- peeling one
// ChangeUint32ToUint64 if the index was widened before use.
func GetNodeAddress(n *graph.Node) *graph.Node {
	in := graph.ValueInputs(n)
	if len(in) < 2 {
		return nil
	}
	addr := in[1]
	if graph.NodeOpcode(addr) == graph.ChangeUint32ToUint64 {
		return graph.ValueInputs(addr)[0]
	}
	return addr
}

// IsContinuousAccess reports whether every adjacent pair in group has
// offsets exactly 16 apart (one SIMD-128 lane), in increasing order. The
// caller is responsible for sorting group by offset first when order is
// not already lane order (seed pairs already are).
func IsContinuousAccess(group NodeGroup) bool {
	for i := 1; i < len(group); i++ {
		if GetMemoryOffsetValue(group[i])-GetMemoryOffsetValue(group[i-1]) != 16 {
			return false
		}
	}
	return true
}

// sortedByOffset returns a copy of group ordered by GetMemoryOffsetValue,
// leaving group itself (whose order carries lane semantics) untouched.
func sortedByOffset(group NodeGroup) NodeGroup {
	cp := make(NodeGroup, len(group))
	copy(cp, group)
	sort.Slice(cp, func(i, j int) bool {
		return GetMemoryOffsetValue(cp[i]) < GetMemoryOffsetValue(cp[j])
	})
	return cp
}

// AllConstant reports whether every member of group is an Int64Constant.
func AllConstant(group NodeGroup) bool {
	for _, n := range group {
		if !graph.IsConstant(n) {
			return false
		}
	}
	return true
}

// AllSameAddress reports whether every member of group shares the same
// GetNodeAddress key.
func AllSameAddress(group NodeGroup) bool {
	if len(group) == 0 {
		return true
	}
	addr := GetNodeAddress(group[0])
	for _, n := range group[1:] {
		if GetNodeAddress(n) != addr {
			return false
		}
	}
	return true
}

// AllSameOperator reports whether every member of group carries the same
// opcode and operator parameters as the first.
func AllSameOperator(group NodeGroup) bool {
	if len(group) == 0 {
		return true
	}
	for _, n := range group[1:] {
		if !graph.SameOperator(group[0], n) {
			return false
		}
	}
	return true
}

// IsSplat reports whether every member of group is the identical node --
// the shape a broadcast/splat load presents when both lanes extract the
// same LoadTransform.
func IsSplat(group NodeGroup) bool {
	if len(group) == 0 {
		return true
	}
	for _, n := range group[1:] {
		if n != group[0] {
			return false
		}
	}
	return true
}
