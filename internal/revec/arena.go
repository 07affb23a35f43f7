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

import "sync"

var packNodePool sync.Pool

// Arena owns every PackNode allocated during one pass. Builds within the
// pass share it; Reset returns every PackNode it handed out to the pool
// and clears its own bookkeeping, standing in for "region-scoped
// allocator with bulk free at pass end".
type Arena struct {
	live []*PackNode
}

// NewArena returns an empty arena ready for a pass.
func NewArena() *Arena {
	return &Arena{}
}

func (self *Arena) alloc(nodes NodeGroup) *PackNode {
	var p *PackNode
	if v := packNodePool.Get(); v == nil {
		p = &PackNode{}
	} else {
		p = v.(*PackNode)
		*p = PackNode{}
	}

	p.nodes = make(NodeGroup, len(nodes))
	copy(p.nodes, nodes)
	p.operands = make(map[int]*PackNode)

	self.live = append(self.live, p)
	return p
}

// Reset frees every PackNode this arena has handed out. Callers must not
// retain PackNode pointers obtained from this arena past Reset.
func (self *Arena) Reset() {
	for _, p := range self.live {
		packNodePool.Put(p)
	}
	self.live = self.live[:0]
}

// Count reports how many PackNodes are currently live in the arena --
// used by debug.GetStats and by tests asserting the arena was actually
// exercised.
func (self *Arena) Count() int {
	return len(self.live)
}
