// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/qalloc/heap"
)

func TestCheck_PassesOnFreshHeap(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	require.NoError(t, a.Check())
}

func TestCheck_PassesAfterMixedWorkload(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	var ptrs []uintptr
	for i, n := range []uint64{16, 48, 512, 32, 4096, 64} {
		p := a.Allocate(n)
		require.NotNil(t, p)
		if i%2 == 0 {
			a.Release(p)
		} else {
			ptrs = append(ptrs, uintptr(p))
		}
	}
	require.NoError(t, a.Check())
}

func TestCheck_DetectsHeaderFooterMismatch(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	f := a.freeHead
	*f.footerPtr() = pack(f.size()+16, false)

	err := a.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "header")
}

func TestCheck_DetectsFreeListHeadWithNonNilPrev(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	a.freeHead.setPrevFree(a.freeHead)

	err := a.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-nil prev")
}

func TestCheck_DetectsMalformedFreeListLinks(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p1 := a.Allocate(64)
	p2 := a.Allocate(64)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	a.Release(p1)
	a.Release(p2)

	f := a.freeHead
	f.setNextFree(f) // point the only free block at itself

	err := a.Check()
	require.Error(t, err)
}

func TestCheck_DetectsAdjacentFreeBlocks(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	f := a.freeHead
	bsize := f.size()

	half := bsize / 2
	a.remove(f)
	f.write(half, false)
	rest := f.next()
	rest.write(bsize-half, false)
	a.insert(f)
	a.insert(rest)

	err := a.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "adjacent free blocks")
}

func TestCheck_DetectsAllocBitSetOnFreeListMember(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	f := a.freeHead
	*f.headerPtr() = pack(f.size(), true)

	err := a.Check()
	require.Error(t, err)
}

func TestDump_WritesSummaryLine(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	var buf bytes.Buffer
	a.Dump(&buf)
	require.Contains(t, buf.String(), "qalloc: size=")
}

func TestDump_ShortSkipsPerBlockWalk(t *testing.T) {
	a := New(heap.NewArena(1<<20), DefaultOptions|DumpStatsShort)
	require.NoError(t, a.Init())

	var buf bytes.Buffer
	a.Dump(&buf)
	require.Contains(t, buf.String(), "qalloc: size=")
	require.NotContains(t, buf.String(), "FREE")
}
