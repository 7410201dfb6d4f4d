// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

// findFit performs a first-fit scan of the free list: traversal order
// is free-list order (LIFO), not address order, and the first block
// whose size is >= asize wins.
func (a *Allocator) findFit(asize uint64) block {
	for f := a.freeHead; f != nullBlock; f = f.nextFree() {
		if f.size() >= asize {
			return f
		}
	}
	return nullBlock
}

// split carves block into an allocated prefix of exactly asize bytes and,
// if the residue is large enough to be a legal block on its own, a free
// suffix — which is then (defensively) coalesced with its own successor
// and inserted into the free list.
//
// block must already be marked allocated and already removed from the
// free list by the caller; that ordering (enforced by Allocate) is what
// makes the trailing coalesce below safe — see DESIGN.md's Open
// Questions entry.
func (a *Allocator) split(blk block, asize uint64) {
	bsize := blk.size()
	if bsize-asize < minBlockSize {
		return
	}
	blk.write(asize, true)
	rest := blk.next()
	rest.write(bsize-asize, false)
	a.coalesce(rest)
}
