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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vecgraph/revectorizer/internal/graph"
	"github.com/vecgraph/revectorizer/internal/opts"
)

func newDriver(cpu256 bool) *Revectorizer {
	d := NewRevectorizer(opts.GetDefaultOptions())
	d.cpuSupports256 = func() bool { return cpu256 }
	return d
}

func TestRevectorizer_SkipsWithoutCPUSupport(t *testing.T) {
	b := graph.NewBuilder("no-avx2")
	idxOut := b.Index()
	b.ProtectedStore(b.ConstOffset(0), idxOut, b.F32x4Add(b.Const(1), b.Const(1)))
	b.ProtectedStore(b.ConstOffset(16), idxOut, b.F32x4Add(b.Const(2), b.Const(2)))

	d := newDriver(false)
	require.False(t, d.TryRevectorize(b.Func()), "no AVX2 support means no revectorization attempt")
	require.Zero(t, d.Arena().Count())
}

func TestRevectorizer_SkipsWithNoSimdStores(t *testing.T) {
	b := graph.NewBuilder("no-simd")
	idx := b.Index()
	b.Store(b.ConstOffset(0), idx, b.Const(1))

	d := newDriver(true)
	require.False(t, d.TryRevectorize(b.Func()))
}

func TestRevectorizer_PacksContinuousChain(t *testing.T) {
	b := graph.NewBuilder("chain")
	idxOut, idxA, idxB := b.Index(), b.Index(), b.Index()

	a0 := b.ProtectedLoad(b.ConstOffset(0), idxA)
	a1 := b.ProtectedLoad(b.ConstOffset(16), idxA)
	b0 := b.ProtectedLoad(b.ConstOffset(0), idxB)
	b1 := b.ProtectedLoad(b.ConstOffset(16), idxB)

	v0 := b.F32x4Add(a0, b0)
	v1 := b.F32x4Add(a1, b1)

	b.ProtectedStore(b.ConstOffset(0), idxOut, v0)
	b.ProtectedStore(b.ConstOffset(16), idxOut, v1)

	d := newDriver(true)
	require.True(t, d.TryRevectorize(b.Func()))
	require.Equal(t, 4, d.Arena().Count(), "store pair, add pair, and each load pair get their own PackNode")
}

func TestRevectorizer_SkipsOddChain(t *testing.T) {
	b := graph.NewBuilder("odd-chain")
	idxOut := b.Index()

	b.ProtectedStore(b.ConstOffset(0), idxOut, b.F32x4Add(b.Const(1), b.Const(1)))
	b.ProtectedStore(b.ConstOffset(16), idxOut, b.F32x4Add(b.Const(2), b.Const(2)))
	b.ProtectedStore(b.ConstOffset(32), idxOut, b.F32x4Add(b.Const(3), b.Const(3)))

	d := newDriver(true)
	require.False(t, d.TryRevectorize(b.Func()), "an odd-length chain of all-constant adds should never pack")
}

func TestRevectorizer_ResetsArenaBetweenPasses(t *testing.T) {
	d := newDriver(true)

	first := graph.NewBuilder("first-pass")
	idxOut, idxA, idxB := first.Index(), first.Index(), first.Index()
	a0 := first.ProtectedLoad(first.ConstOffset(0), idxA)
	a1 := first.ProtectedLoad(first.ConstOffset(16), idxA)
	b0 := first.ProtectedLoad(first.ConstOffset(0), idxB)
	b1 := first.ProtectedLoad(first.ConstOffset(16), idxB)
	first.ProtectedStore(first.ConstOffset(0), idxOut, first.F32x4Add(a0, b0))
	first.ProtectedStore(first.ConstOffset(16), idxOut, first.F32x4Add(a1, b1))

	require.True(t, d.TryRevectorize(first.Func()))
	require.Equal(t, 4, d.Arena().Count())

	second := graph.NewBuilder("second-pass")
	idxOut2, idxC := second.Index(), second.Index()
	c0 := second.ProtectedLoad(second.ConstOffset(0), idxC)
	c1 := second.ProtectedLoad(second.ConstOffset(16), idxC)
	second.ProtectedStore(second.ConstOffset(0), idxOut2, c0)
	second.ProtectedStore(second.ConstOffset(16), idxOut2, c1)

	require.True(t, d.TryRevectorize(second.Func()))
	require.Equal(t, 2, d.Arena().Count(), "the first pass's four PackNodes must be freed, not accumulated, by the second pass's Reset")
}

func TestRevectorizer_TryPackPair(t *testing.T) {
	b := graph.NewBuilder("pair")
	idxOut := b.Index()

	src := b.Add64(b.Const(1), b.Const(2))
	e0 := b.ExtractF128(src, 0)
	e1 := b.ExtractF128(src, 1)
	s0 := b.ProtectedStore(b.ConstOffset(0), idxOut, e0)
	s1 := b.ProtectedStore(b.ConstOffset(16), idxOut, e1)

	d := newDriver(true)
	p, ok := d.TryPackPair(s0, s1)
	require.True(t, ok)
	require.True(t, p.IsSame(NodeGroup{s0, s1}))
}
