/*
 * Copyright 2022 CloudWeGo Authors
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

// Package revectorizer discovers pairs of adjacent 128-bit SIMD
// operations in a dataflow graph and proves whether they can be fused
// into a single 256-bit operation. It never mutates the graph itself:
// the output is a forest of PackNodes describing what could be fused,
// left for a downstream rewriter to act on.
package revectorizer

import (
	"github.com/vecgraph/revectorizer/internal/graph"
	"github.com/vecgraph/revectorizer/internal/opts"
	"github.com/vecgraph/revectorizer/internal/revec"
)

// TryRevectorize runs one revectorization pass over fn and reports
// whether it packed at least one pair of stores. It never returns an
// error for a graph that simply has nothing to widen -- that is the
// ordinary "false" case -- but a nil or blockless fn is a caller bug and
// is reported as GraphError.
func TryRevectorize(fn *graph.Function, options ...Option) (bool, error) {
	if fn == nil {
		return false, GraphError{Note: "nil function"}
	}
	if fn.Entry == nil {
		return false, GraphError{Note: "function has no basic blocks"}
	}

	o := opts.GetDefaultOptions()
	for _, apply := range options {
		apply(&o)
	}

	driver := revec.NewRevectorizer(o)
	return driver.TryRevectorize(fn), nil
}

// PackPair attempts to fuse exactly the two nodes given, skipping seed
// discovery entirely -- for a caller that already knows which pair of
// stores (or other packable nodes) it wants widened.
func PackPair(a, b *graph.Node, options ...Option) (*revec.PackNode, bool, error) {
	if a == nil || b == nil {
		return nil, false, GraphError{Note: "nil node"}
	}

	o := opts.GetDefaultOptions()
	for _, apply := range options {
		apply(&o)
	}

	driver := revec.NewRevectorizer(o)
	p, ok := driver.TryPackPair(a, b)
	return p, ok, nil
}
