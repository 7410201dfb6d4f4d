// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// makeFreeBlocks carves n adjacent, independent minimum-size free blocks
// out of buf (which must be large enough) purely for exercising the free
// list's link bookkeeping, without going through the allocator at all.
func makeFreeBlocks(buf []byte, n int) []block {
	blocks := make([]block, n)
	for i := 0; i < n; i++ {
		b := block(uintptr(unsafe.Pointer(&buf[i*minBlockSize])))
		b.write(minBlockSize, false)
		blocks[i] = b
	}
	return blocks
}

func TestFreeList_InsertIsLIFO(t *testing.T) {
	buf := make([]byte, 4*minBlockSize)
	blocks := makeFreeBlocks(buf, 3)

	a := &Allocator{}
	a.insert(blocks[0])
	a.insert(blocks[1])
	a.insert(blocks[2])

	require.Equal(t, blocks[2], a.freeHead)
	require.Equal(t, blocks[1], a.freeHead.nextFree())
	require.Equal(t, blocks[0], a.freeHead.nextFree().nextFree())
	require.Equal(t, nullBlock, a.freeHead.nextFree().nextFree().nextFree())

	require.Equal(t, nullBlock, blocks[2].prevFree())
	require.Equal(t, blocks[2], blocks[1].prevFree())
	require.Equal(t, blocks[1], blocks[0].prevFree())
}

func TestFreeList_RemoveHead(t *testing.T) {
	buf := make([]byte, 4*minBlockSize)
	blocks := makeFreeBlocks(buf, 3)

	a := &Allocator{}
	a.insert(blocks[0])
	a.insert(blocks[1])
	a.insert(blocks[2])

	a.remove(blocks[2])
	require.Equal(t, blocks[1], a.freeHead)
	require.Equal(t, nullBlock, blocks[1].prevFree())
}

func TestFreeList_RemoveMiddle(t *testing.T) {
	buf := make([]byte, 4*minBlockSize)
	blocks := makeFreeBlocks(buf, 3)

	a := &Allocator{}
	a.insert(blocks[0])
	a.insert(blocks[1])
	a.insert(blocks[2])

	a.remove(blocks[1])
	require.Equal(t, blocks[2], a.freeHead)
	require.Equal(t, blocks[0], blocks[2].nextFree())
	require.Equal(t, blocks[2], blocks[0].prevFree())
}

func TestFreeList_RemoveOnly(t *testing.T) {
	buf := make([]byte, minBlockSize)
	blocks := makeFreeBlocks(buf, 1)

	a := &Allocator{}
	a.insert(blocks[0])
	a.remove(blocks[0])
	require.Equal(t, nullBlock, a.freeHead)
}
