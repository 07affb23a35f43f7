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
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// Tracer receives one call per BuildTree, with the root group and either
// ReasonOK or the Reason propagated up from the rec() exit that gave up. The
// externally visible knob is a single boolean (opts.TraceRevectorize);
// everything downstream of that funnels through this one interface, so
// splitting trace verbosity by Reason later is a change to one call site,
// not a new flag.
type Tracer interface {
	Trace(reason Reason, group NodeGroup)
}

// NewTracer returns a Tracer writing spew dumps of failing (and
// successful) groups to w, or a no-op Tracer if enabled is false --
// callers do not need to branch on opts.TraceRevectorize themselves.
func NewTracer(enabled bool, w io.Writer) Tracer {
	if !enabled {
		return noopTracer{}
	}
	return &spewTracer{w: w}
}

// DefaultTracer is the Tracer NewRevectorizer installs: stderr, gated by
// the options' Trace flag.
func DefaultTracer(enabled bool) Tracer {
	return NewTracer(enabled, os.Stderr)
}

type noopTracer struct{}

func (noopTracer) Trace(Reason, NodeGroup) {}

type spewTracer struct {
	w io.Writer
}

type traceMember struct {
	ID     int
	Opcode string
}

// DumpPackTree renders a successfully built PackNode DAG for debugging,
// walking operands depth-first. The DAG can contain cycles (a
// self-referential Simd128 phi packs as a PackNode that is its own
// operand); flattenPack visits each PackNode once and renders a repeat
// visit as nil.
func DumpPackTree(w io.Writer, root *PackNode) {
	fmt.Fprint(w, spew.Sdump(flattenPack(root, make(map[*PackNode]bool))))
}

type packSummary struct {
	Members  []traceMember
	Operands map[int]*packSummary
}

func flattenPack(p *PackNode, seen map[*PackNode]bool) *packSummary {
	if p == nil || seen[p] {
		return nil
	}
	seen[p] = true

	members := make([]traceMember, len(p.Nodes()))
	for i, n := range p.Nodes() {
		members[i] = traceMember{ID: n.ID, Opcode: n.Op.String()}
	}

	operands := make(map[int]*packSummary)
	for i, child := range p.Operands() {
		operands[i] = flattenPack(child, seen)
	}

	return &packSummary{Members: members, Operands: operands}
}

func (self *spewTracer) Trace(reason Reason, group NodeGroup) {
	members := make([]traceMember, len(group))
	for i, n := range group {
		members[i] = traceMember{ID: n.ID, Opcode: n.Op.String()}
	}
	fmt.Fprintf(self.w, "revectorizer: %s:\n%s", reason, spew.Sdump(members))
}
