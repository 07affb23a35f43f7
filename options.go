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

package revectorizer

import (
	"fmt"

	"github.com/vecgraph/revectorizer/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

const (
	_MinRecursionDepth = 1
)

// WithMaxRecursionDepth bounds how deep the SLP tree builder will recurse
// while proving that a dataflow cone can be packed.
//
// Lowering this value makes the builder give up sooner on deep expression
// trees, which trades missed widenings for faster compilation.
//
// The default value of this option is "12".
func WithMaxRecursionDepth(depth int) Option {
	if depth < _MinRecursionDepth {
		panic(fmt.Sprintf("revectorizer: invalid recursion depth: %d", depth))
	}
	return func(o *opts.Options) { o.MaxRecursionDepth = depth }
}

// WithTrace enables the trace sink for every build attempt, printing the
// reason each failed group could not be packed.
func WithTrace(trace bool) Option {
	return func(o *opts.Options) { o.Trace = trace }
}

// SetMaxRecursionDepth sets the default recursion depth for all builds from
// now on.
//
// This value can also be configured with the `REVECTORIZER_MAX_DEPTH`
// environment variable.
//
// Returns the old opts.MaxRecursionDepth value.
func SetMaxRecursionDepth(depth int) int {
	depth, opts.MaxRecursionDepth = opts.MaxRecursionDepth, depth
	return depth
}

// SetTrace sets the default trace flag for all builds from now on.
//
// This value can also be configured with the `REVECTORIZER_TRACE`
// environment variable.
//
// Returns the old opts.TraceRevectorize value.
func SetTrace(trace bool) bool {
	trace, opts.TraceRevectorize = opts.TraceRevectorize, trace
	return trace
}
