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

/** Lengauer-Tarjan dominator tree construction, adapted from the register
 *  IR's dominator pass. EarlySchedulePosition and the seed collector's
 *  dominator-keyed bucketing both need nearest-common-dominator queries over
 *  the block graph; this is what answers them.
 *  https://doi.org/10.1145%2F357062.357071
 */

package graph

type _LtNode struct {
	semi     int
	block    *BasicBlock
	dom      *_LtNode
	label    *_LtNode
	parent   *_LtNode
	ancestor *_LtNode
	pred     []*_LtNode
	bucket   map[*_LtNode]struct{}
}

type _LengauerTarjan struct {
	nodes  []*_LtNode
	vertex map[int]int
}

func newLengauerTarjan() *_LengauerTarjan {
	return &_LengauerTarjan{vertex: make(map[int]int)}
}

func (self *_LengauerTarjan) dfs(bb *BasicBlock) {
	i := len(self.nodes)
	self.vertex[bb.ID] = i

	p := &_LtNode{
		semi:   i,
		block:  bb,
		bucket: make(map[*_LtNode]struct{}),
	}

	p.label = p
	self.nodes = append(self.nodes, p)

	for _, w := range bb.Succs {
		idx, ok := self.vertex[w.ID]

		if !ok {
			self.dfs(w)
			idx = self.vertex[w.ID]
			self.nodes[idx].parent = p
		}

		q := self.nodes[idx]
		q.pred = append(q.pred, p)
	}
}

func (self *_LengauerTarjan) eval(p *_LtNode) *_LtNode {
	if p.ancestor == nil {
		return p
	}
	self.compress(p)
	return p.label
}

func (self *_LengauerTarjan) link(p *_LtNode, q *_LtNode) {
	q.ancestor = p
}

func (self *_LengauerTarjan) compress(p *_LtNode) {
	if p.ancestor.ancestor != nil {
		self.compress(p.ancestor)
		if p.label.semi > p.ancestor.label.semi {
			p.label = p.ancestor.label
		}
		p.ancestor = p.ancestor.ancestor
	}
}

// DominatorTree maps every reachable block to its immediate dominator and
// to the set of blocks it immediately dominates.
type DominatorTree struct {
	Root        *BasicBlock
	DominatedBy map[int]*BasicBlock
	DominatorOf map[int][]*BasicBlock
}

func minInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

// BuildDominatorTree computes the dominator tree of the CFG reachable from
// entry.
func BuildDominatorTree(entry *BasicBlock) DominatorTree {
	domby := make(map[int]*BasicBlock)
	domof := make(map[int][]*BasicBlock)

	lt := newLengauerTarjan()
	lt.dfs(entry)

	for i := len(lt.nodes) - 1; i > 0; i-- {
		p := lt.nodes[i]
		var q *_LtNode

		for _, v := range p.pred {
			q = lt.eval(v)
			p.semi = minInt(p.semi, q.semi)
		}

		lt.link(p.parent, p)
		lt.nodes[p.semi].bucket[p] = struct{}{}

		for v := range p.parent.bucket {
			if q = lt.eval(v); q.semi < v.semi {
				v.dom = q
			} else {
				v.dom = p.parent
			}
		}

		for v := range p.parent.bucket {
			delete(p.parent.bucket, v)
		}
	}

	for _, p := range lt.nodes[1:] {
		if p.dom.block.ID != lt.nodes[p.semi].block.ID {
			p.dom = p.dom.dom
		}
	}

	for _, p := range lt.nodes[1:] {
		domby[p.block.ID] = p.dom.block
		domof[p.dom.block.ID] = append(domof[p.dom.block.ID], p.block)
	}

	return DominatorTree{
		Root:        entry,
		DominatedBy: domby,
		DominatorOf: domof,
	}
}

// Dominates reports whether a dominates b (inclusive: a dominates itself).
func (self DominatorTree) Dominates(a *BasicBlock, b *BasicBlock) bool {
	for b != nil {
		if b.ID == a.ID {
			return true
		}
		b = self.DominatedBy[b.ID]
	}
	return false
}

// NearestCommonDominator walks up from b towards the root until it finds a
// block that dominates a, used to hoist floating nodes to the earliest
// point that dominates all of their uses.
func (self DominatorTree) NearestCommonDominator(a *BasicBlock, b *BasicBlock) *BasicBlock {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	for !self.Dominates(b, a) {
		b = self.DominatedBy[b.ID]
		if b == nil {
			return self.Root
		}
	}
	return b
}
