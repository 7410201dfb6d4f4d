// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/qalloc/heap"
)

func TestCoalesce_NoFreeNeighboursSurvivesAsIs(t *testing.T) {
	a := New(heap.NewArena(1<<20), DefaultOptions)
	require.NoError(t, a.Init())

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	b1 := payloadToBlock(p1)
	size := b1.size()
	b1.write(size, false)

	got := a.coalesce(b1)
	require.Equal(t, b1, got)
	require.Equal(t, size, got.size())
}

func TestCoalesce_MergesWithNextOnly(t *testing.T) {
	a := New(heap.NewArena(1<<20), DefaultOptions)
	require.NoError(t, a.Init())

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	a.Release(p2) // frees the block after p1's, p1 stays allocated

	b1 := payloadToBlock(p1)
	size1 := b1.size()
	b1.write(size1, false)

	merged := a.coalesce(b1)
	require.Equal(t, b1, merged)
	require.Greater(t, merged.size(), size1)
	require.NoError(t, a.Check())
}

func TestCoalesce_MergesWithPrevOnly(t *testing.T) {
	a := New(heap.NewArena(1<<20), DefaultOptions)
	require.NoError(t, a.Init())

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	p3 := a.Allocate(64) // keeps the block after p2's allocated
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	require.NotNil(t, p3)

	a.Release(p1) // frees the block before p2's

	b2 := payloadToBlock(p2)
	size2 := b2.size()
	b2.write(size2, false)

	merged := a.coalesce(b2)
	require.NotEqual(t, b2, merged) // the survivor is the earlier (prev) block
	require.Greater(t, merged.size(), size2)
	require.NoError(t, a.Check())
}

func TestCoalesce_InsertsSurvivorOnce(t *testing.T) {
	a := New(heap.NewArena(1<<20), DefaultOptions)
	require.NoError(t, a.Init())

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	p3 := a.Allocate(64)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	require.NotNil(t, p3)

	a.Release(p1)
	a.Release(p3)
	a.Release(p2)

	count := 0
	for f := a.freeHead; f != nullBlock; f = f.nextFree() {
		count++
	}
	require.Equal(t, 1, count)
	require.NoError(t, a.Check())
}

func TestDebugFragment_PanicsOnHeaderFooterMismatch(t *testing.T) {
	a := New(heap.NewArena(1<<20), DefaultOptions)
	require.NoError(t, a.Init())

	f := a.freeHead
	// corrupt the footer directly, bypassing write().
	*f.footerPtr() = pack(f.size()+16, false)

	require.Panics(t, func() { a.debugFragment(f) })
}
