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

// BasicBlock is a node in the function's control-flow graph. Revectorizer
// only ever asks two questions about a block: is it the same as another
// (SameBasicBlock), and what dominates it (EarlySchedulePosition for
// floating nodes) -- so this type carries just enough to answer both.
type BasicBlock struct {
	ID    int
	Preds []*BasicBlock
	Succs []*BasicBlock
}

func (self *BasicBlock) addEdgeTo(to *BasicBlock) {
	self.Succs = append(self.Succs, to)
	to.Preds = append(to.Preds, self)
}
