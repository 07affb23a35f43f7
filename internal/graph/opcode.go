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

import "fmt"

// Opcode is the tag of an IR node's operator. The set below is the subset
// a WebAssembly-to-native translator's sea-of-nodes graph actually needs
// for revectorization: plain scalar/pointer arithmetic, memory access, the
// two control-flow-carrying value nodes (Phi and LoopExitValue), the
// 128-bit-to-256-bit lane extractor, and a representative sample of
// 128-bit SIMD arithmetic ops.
type Opcode uint16

const (
	Int64Constant Opcode = iota
	Int64Add
	ChangeUint32ToUint64
	Load
	ProtectedLoad
	LoadTransform
	Store
	ProtectedStore
	Phi
	LoopExitValue
	ExtractF128
	LoadFromObject
	Parameter

	F32x4Add
	F32x4Mul
	F64x2Add
	F64x2Mul
	I32x4Add
	I32x4Mul
	I16x8Add
)

var _opcodeNames = map[Opcode]string{
	Int64Constant:        "Int64Constant",
	Int64Add:             "Int64Add",
	ChangeUint32ToUint64: "ChangeUint32ToUint64",
	Load:                 "Load",
	ProtectedLoad:        "ProtectedLoad",
	LoadTransform:        "LoadTransform",
	Store:                "Store",
	ProtectedStore:       "ProtectedStore",
	Phi:                  "Phi",
	LoopExitValue:        "LoopExitValue",
	ExtractF128:          "ExtractF128",
	LoadFromObject:       "LoadFromObject",
	Parameter:            "Parameter",
	F32x4Add:             "F32x4Add",
	F32x4Mul:             "F32x4Mul",
	F64x2Add:             "F64x2Add",
	F64x2Mul:             "F64x2Mul",
	I32x4Add:             "I32x4Add",
	I32x4Mul:             "I32x4Mul",
	I16x8Add:             "I16x8Add",
}

func (self Opcode) String() string {
	if s, ok := _opcodeNames[self]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(%d)", uint16(self))
}

// simd128Ops marks the 128-bit SIMD arithmetic opcodes. IsSimd128Operation
// consults this table. The tree builder does not: its simd128Opcode in
// internal/revec/opcoderules.go keeps its own list of the same opcodes, so
// a new SIMD op is added in both places.
var simd128Ops = map[Opcode]bool{
	F32x4Add: true,
	F32x4Mul: true,
	F64x2Add: true,
	F64x2Mul: true,
	I32x4Add: true,
	I32x4Mul: true,
	I16x8Add: true,
}

// IsSimd128Operation reports whether n's opcode is one of the 128-bit SIMD
// arithmetic operations eligible for widening into a 256-bit lane.
func IsSimd128Operation(n *Node) bool {
	return simd128Ops[n.Op]
}

// Representation is the value representation the compiler's operator
// metadata would normally attach to a Load/Phi/LoopExitValue node.
type Representation uint8

const (
	RepWord32 Representation = iota
	RepWord64
	RepFloat32
	RepFloat64
	RepSimd128
	RepTagged
)

func (self Representation) String() string {
	switch self {
	case RepWord32:
		return "Word32"
	case RepWord64:
		return "Word64"
	case RepFloat32:
		return "Float32"
	case RepFloat64:
		return "Float64"
	case RepSimd128:
		return "Simd128"
	case RepTagged:
		return "Tagged"
	default:
		return "Representation(?)"
	}
}

// LoadTransformation is the sub-opcode of a LoadTransform node: which kind
// of splat/extend it performs while loading.
type LoadTransformation uint8

const (
	S128Load8Splat LoadTransformation = iota
	S128Load16Splat
	S128Load32Splat
	S128Load64Splat
	S128Load32Zero
	S128Load64Zero
)

func (self LoadTransformation) String() string {
	switch self {
	case S128Load8Splat:
		return "S128Load8Splat"
	case S128Load16Splat:
		return "S128Load16Splat"
	case S128Load32Splat:
		return "S128Load32Splat"
	case S128Load64Splat:
		return "S128Load64Splat"
	case S128Load32Zero:
		return "S128Load32Zero"
	case S128Load64Zero:
		return "S128Load64Zero"
	default:
		return "LoadTransformation(?)"
	}
}
