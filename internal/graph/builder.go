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

// Builder is a small fluent constructor for test fixtures, in the same
// spirit as the register IR's hir.CreateBuilder(): every method appends
// one node and returns it, so a graph is assembled as a sequence of
// chained calls instead of struct-literal boilerplate.
type Builder struct {
	fn       *Function
	nextID   int
	current  *BasicBlock
	memStart *Node
}

// NewBuilder starts a function with one entry block.
func NewBuilder(name string) *Builder {
	entry := &BasicBlock{ID: 0}
	return &Builder{
		fn:      &Function{Name: name, Entry: entry},
		current: entry,
	}
}

// Block starts (and switches emission to) a new basic block, wired as a
// successor of the current one.
func (self *Builder) Block() *BasicBlock {
	bb := &BasicBlock{ID: len(self.blocks())}
	self.current.addEdgeTo(bb)
	self.current = bb
	return bb
}

func (self *Builder) blocks() []*BasicBlock {
	seen := map[int]bool{}
	var order []*BasicBlock
	var walk func(*BasicBlock)
	walk = func(b *BasicBlock) {
		if seen[b.ID] {
			return
		}
		seen[b.ID] = true
		order = append(order, b)
		for _, s := range b.Succs {
			walk(s)
		}
	}
	walk(self.fn.Entry)
	return order
}

func (self *Builder) alloc(op Opcode, params interface{}, block *BasicBlock, valueIn ...*Node) *Node {
	n := &Node{
		ID:      self.nextID,
		Op:      op,
		Params:  params,
		ValueIn: valueIn,
		Block:   block,
	}
	self.nextID++
	self.fn.Nodes = append(self.fn.Nodes, n)
	return n
}

// In emits every remaining call against block instead of the builder's
// current block, without disturbing what Block()/Func() consider current.
func (self *Builder) In(block *BasicBlock, fn func(*Builder)) {
	save := self.current
	self.current = block
	fn(self)
	self.current = save
}

func (self *Builder) Const(v int64) *Node {
	return self.alloc(Int64Constant, ConstParams{Value: v}, self.current)
}

func (self *Builder) Add64(a *Node, b *Node) *Node {
	return self.alloc(Int64Add, nil, self.current, a, b)
}

func (self *Builder) Extend32To64(a *Node) *Node {
	return self.alloc(ChangeUint32ToUint64, nil, self.current, a)
}

// MemStart returns the (single, shared) node standing in for the linear
// memory's base pointer, lazily created in the entry block and marked
// Floating.
func (self *Builder) MemStart() *Node {
	if self.memStart == nil {
		self.memStart = self.alloc(Parameter, nil, self.fn.Entry)
		self.memStart.Floating = true
	}
	return self.memStart
}

// ConstOffset builds the value_input(0) of a load/store: memory_start plus
// a constant byte offset, the shape GetMemoryOffsetValue unwraps.
func (self *Builder) ConstOffset(v int64) *Node {
	return self.alloc(Int64Add, nil, self.current, self.MemStart(), self.Const(v))
}

// ImplicitOffset builds a bare object-handle node for value_input(0): a
// load/store whose offset is folded directly into the addressing mode
// reports an offset of zero rather than an explicit addition.
func (self *Builder) ImplicitOffset() *Node {
	return self.alloc(LoadFromObject, nil, self.current)
}

// Index allocates a fresh value_input(1): the key GetNodeAddress bucketing
// treats as "the same address" across a run of loads/stores. Two accesses
// only belong to the same chain when they share the identical Index node
// (optionally under a ChangeUint32ToUint64, see Extend32To64).
func (self *Builder) Index() *Node {
	return self.alloc(Parameter, nil, self.current)
}

// ProtectedLoad builds a 128-bit bounds-checked load. offset is
// value_input(0) (see ConstOffset/ImplicitOffset) and index is
// value_input(1) (see Index/Extend32To64) -- the ordering
// GetMemoryOffsetValue/GetNodeAddress rely on.
func (self *Builder) ProtectedLoad(offset *Node, index *Node) *Node {
	return self.alloc(ProtectedLoad, LoadParams{Rep: RepSimd128}, self.current, offset, index)
}

func (self *Builder) LoadTransformSplat(offset *Node, index *Node, kind LoadTransformation) *Node {
	return self.alloc(LoadTransform, LoadTransformParamsData{Kind: kind}, self.current, offset, index)
}

// ProtectedStore builds store128(offset, index, value). Only value_input(2)
// (the stored value) ever gets widened; 0 and 1 together identify the
// address being stored to and stay scalar.
func (self *Builder) ProtectedStore(offset *Node, index *Node, value *Node) *Node {
	return self.alloc(ProtectedStore, nil, self.current, offset, index, value)
}

func (self *Builder) Store(offset *Node, index *Node, value *Node) *Node {
	return self.alloc(Store, nil, self.current, offset, index, value)
}

func (self *Builder) ExtractF128(src *Node, lane int) *Node {
	return self.alloc(ExtractF128, ExtractF128Params{Lane: lane}, self.current, src)
}

func (self *Builder) F32x4Add(a *Node, b *Node) *Node {
	return self.alloc(F32x4Add, nil, self.current, a, b)
}

func (self *Builder) F32x4Mul(a *Node, b *Node) *Node {
	return self.alloc(F32x4Mul, nil, self.current, a, b)
}

func (self *Builder) F64x2Add(a *Node, b *Node) *Node {
	return self.alloc(F64x2Add, nil, self.current, a, b)
}

func (self *Builder) I32x4Add(a *Node, b *Node) *Node {
	return self.alloc(I32x4Add, nil, self.current, a, b)
}

// Phi allocates a Phi node in the current block; SetInputs must be called
// afterwards once the predecessor values exist, to allow constructing
// self-referential (loop) phis.
func (self *Builder) Phi(rep Representation) *Node {
	return self.alloc(Phi, PhiParams{Rep: rep}, self.current)
}

func (self *Builder) LoopExitValue(rep Representation, v *Node) *Node {
	return self.alloc(LoopExitValue, LoopExitValueParams{Rep: rep}, self.current, v)
}

// SetInputs finalizes a node's value inputs after allocation, needed for
// Phi nodes whose loop-carried input is defined after the Phi itself.
func (self *Builder) SetInputs(n *Node, in ...*Node) {
	n.ValueIn = in
}

// Load builds a plain (non-protected, scalar) memory load, using the same
// offset/index input convention as ProtectedLoad.
func (self *Builder) Load(offset *Node, index *Node) *Node {
	return self.alloc(Load, LoadParams{Rep: RepWord64}, self.current, offset, index)
}

// Func returns the finished function.
func (self *Builder) Func() *Function {
	return self.fn
}

// Entry returns the entry block, for constructing addresses/bases that
// must live there.
func (self *Builder) Entry() *BasicBlock {
	return self.fn.Entry
}
