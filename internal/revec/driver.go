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
	"github.com/klauspost/cpuid/v2"

	"github.com/vecgraph/revectorizer/internal/graph"
	"github.com/vecgraph/revectorizer/internal/opts"
)

// Revectorizer orchestrates one pass over a function: CPU feature gate,
// seed collection, chain pairing, and one SLPTree build per pair. It owns
// a pass-local arena and resets it at the start of every TryRevectorize
// call, so PackNodes from a completed pass stay reachable (for a
// downstream rewriter to walk) only until the next pass begins.
type Revectorizer struct {
	options opts.Options
	tracer  Tracer
	arena   *Arena

	// cpuSupports256 reports whether the target CPU supports 256-bit
	// SIMD. Defaults to cpuid.CPU.Supports(cpuid.AVX2); overridable for
	// tests that need to exercise both branches without depending on the
	// host machine's actual instruction set.
	cpuSupports256 func() bool
}

// NewRevectorizer returns a driver configured by options.
func NewRevectorizer(options opts.Options) *Revectorizer {
	return &Revectorizer{
		options:        options,
		tracer:         DefaultTracer(options.Trace),
		arena:          NewArena(),
		cpuSupports256: func() bool { return cpuid.CPU.Supports(cpuid.AVX2) },
	}
}

// Arena exposes the pass-local allocator, mainly so callers and tests can
// inspect Count() after a run.
func (self *Revectorizer) Arena() *Arena {
	return self.arena
}

// TryRevectorize runs one pass over fn and reports whether at least one
// SLPTree was built successfully. Every successfully packed PackNode
// forest is left reachable via the arena for a downstream rewriter, until
// the arena is reclaimed by the next call to TryRevectorize; none of them
// are rewritten here.
func (self *Revectorizer) TryRevectorize(fn *graph.Function) bool {
	self.arena.Reset()

	if !self.cpuSupports256() {
		return false
	}
	if len(fn.SimdStores()) == 0 {
		return false
	}

	collector := NewSeedCollector()
	collector.Collect(fn)

	success := false
	tree := NewSLPTree(self.arena, self.options, self.tracer)

	for _, chain := range collector.Chains() {
		if len(chain) < 2 || len(chain)%2 != 0 {
			continue
		}

		for i := 0; i+1 < len(chain); i += 2 {
			pair := NodeGroup{chain[i], chain[i+1]}

			if !IsContinuousAccess(pair) {
				continue
			}

			if _, ok := tree.BuildTree(pair); ok {
				success = true
			}
		}
	}

	return success
}

// TryPackPair builds a tree for a caller-supplied pair directly, skipping
// seed discovery. It exists for callers (and tests) that already know
// which two nodes should be packed, without constructing a whole function's
// worth of stores just to exercise the seed collector too.
func (self *Revectorizer) TryPackPair(a, b *graph.Node) (*PackNode, bool) {
	tree := NewSLPTree(self.arena, self.options, self.tracer)
	return tree.BuildTree(NodeGroup{a, b})
}
