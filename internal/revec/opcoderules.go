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

import "github.com/vecgraph/revectorizer/internal/graph"

// canPackOpcodes is the CanBePacked opcode allowlist: any SIMD-128
// arithmetic op, plus the handful of non-arithmetic opcodes the tree
// builder knows how to recurse through or terminate on. graph.Load is
// deliberately a member -- it satisfies the gate but has no case below,
// so a Load-only group always fails one step later with
// ReasonUnsupportedOpcode. That mirrors this pass's source: the opcode
// switch admits Load only as the "offset defaults to zero" shape nested
// inside another node's value_input(0), never as a packable group itself.
//
// LoadTransform is included here even though it widens a splat/broadcast
// load rather than an arithmetic one, because its own leaf handler
// (loadTransformLeaf) is unreachable otherwise -- see DESIGN.md's note on
// this gate.
var canPackOpcodes = map[graph.Opcode]bool{
	graph.Store:          true,
	graph.ProtectedStore: true,
	graph.Load:           true,
	graph.ProtectedLoad:  true,
	graph.LoadTransform:  true,
	graph.Phi:            true,
	graph.LoopExitValue:  true,
	graph.ExtractF128:    true,
}

func canPackOpcode(op graph.Opcode) bool {
	return canPackOpcodes[op] || simd128Opcode(op)
}

func simd128Opcode(op graph.Opcode) bool {
	switch op {
	case graph.F32x4Add, graph.F32x4Mul, graph.F64x2Add, graph.F64x2Mul,
		graph.I32x4Add, graph.I32x4Mul, graph.I16x8Add:
		return true
	default:
		return false
	}
}

// isLeafOpcode reports whether op terminates recursion with a bespoke
// legality check instead of walking into child operands (rec's step 6
// ExtractF128/ProtectedLoad/LoadTransform cases).
func isLeafOpcode(op graph.Opcode) bool {
	switch op {
	case graph.ExtractF128, graph.ProtectedLoad, graph.LoadTransform:
		return true
	default:
		return false
	}
}

// recurseIndices returns which value-input indices rec() should recurse
// into for a non-leaf, packable opcode. Store/ProtectedStore only ever
// widen the stored value (index 2); every other packable non-leaf opcode
// (Phi, LoopExitValue, the SIMD-128 arithmetic ops) recurses over every
// value input.
func recurseIndices(op graph.Opcode, inputCount int) []int {
	switch op {
	case graph.Store, graph.ProtectedStore:
		return []int{2}
	default:
		idx := make([]int, inputCount)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
}
