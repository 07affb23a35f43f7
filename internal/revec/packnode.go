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

// PackNode records "these source nodes, once fused, form one widened
// node." It is immutable in nodes after creation; operands is populated
// incrementally as rec() recurses into children, and widened is left for
// the downstream rewriter (never touched by this package).
type PackNode struct {
	nodes    NodeGroup
	operands map[int]*PackNode
	widened  *graph.Node
}

// Nodes returns the source group this PackNode represents.
func (self *PackNode) Nodes() NodeGroup {
	return self.nodes
}

// SetOperand records child as the PackNode covering value-input index i of
// this group's members.
func (self *PackNode) SetOperand(i int, child *PackNode) {
	self.operands[i] = child
}

// Operand returns the child PackNode at value-input index i, or nil.
func (self *PackNode) Operand(i int) *PackNode {
	return self.operands[i]
}

// Operands exposes every recorded (index, child) pair for traversal, e.g.
// by a trace dump or a downstream rewriter walking the DAG.
func (self *PackNode) Operands() map[int]*PackNode {
	return self.operands
}

// IsSame reports whether other's group matches this one pairwise, by
// identity, in order.
func (self *PackNode) IsSame(other NodeGroup) bool {
	return isSameGroup(self.nodes, other)
}

// Widened returns the replacement IR node the rewrite phase installed, or
// nil if none has been produced yet -- the builder itself never sets this.
func (self *PackNode) Widened() *graph.Node {
	return self.widened
}

// SetWidened is the single mutation point a downstream rewriter is
// expected to call once it has emitted the wide replacement for this
// PackNode's members. Nothing in this package calls it.
func (self *PackNode) SetWidened(n *graph.Node) {
	self.widened = n
}
