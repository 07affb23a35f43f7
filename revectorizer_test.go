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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vecgraph/revectorizer/internal/graph"
)

func TestTryRevectorize_NilFunction(t *testing.T) {
	ok, err := TryRevectorize(nil)
	require.False(t, ok)
	require.Error(t, err)
	require.IsType(t, GraphError{}, err)
}

func TestTryRevectorize_NoEntryBlock(t *testing.T) {
	ok, err := TryRevectorize(&graph.Function{})
	require.False(t, ok)
	require.Error(t, err)
}

func TestTryRevectorize_RejectsInvalidRecursionDepthOption(t *testing.T) {
	b := graph.NewBuilder("opt")
	idx := b.Index()
	b.Store(b.ConstOffset(0), idx, b.Const(1))

	require.Panics(t, func() {
		_, _ = TryRevectorize(b.Func(), WithMaxRecursionDepth(0))
	})
}

func TestPackPair_NilNode(t *testing.T) {
	_, ok, err := PackPair(nil, nil)
	require.False(t, ok)
	require.Error(t, err)
}

func TestPackPair_ExtractF128(t *testing.T) {
	b := graph.NewBuilder("facade-pair")
	idxOut := b.Index()

	src := b.Add64(b.Const(1), b.Const(2))
	e0 := b.ExtractF128(src, 0)
	e1 := b.ExtractF128(src, 1)
	s0 := b.ProtectedStore(b.ConstOffset(0), idxOut, e0)
	s1 := b.ProtectedStore(b.ConstOffset(16), idxOut, e1)

	p, ok, err := PackPair(s0, s1)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, p)
}
