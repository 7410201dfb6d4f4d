// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

// This file implements an explicit, doubly-linked, LIFO free list: one
// list for the whole heap, with no size-class segregation.

// insert prepends f to the free list in O(1). Idempotent removal is not
// required anywhere in this package: every remove call site already holds
// a block known to be on the list.
func (a *Allocator) insert(f block) {
	if a.freeHead == nullBlock {
		a.freeHead = f
		f.setPrevFree(nullBlock)
		f.setNextFree(nullBlock)
		return
	}
	f.setNextFree(a.freeHead)
	f.setPrevFree(nullBlock)
	a.freeHead.setPrevFree(f)
	a.freeHead = f
}

// remove splices f out of the free list. f must currently be on the list.
func (a *Allocator) remove(f block) {
	prev := f.prevFree()
	next := f.nextFree()
	if prev == nullBlock {
		a.freeHead = next
	} else {
		prev.setNextFree(next)
	}
	if next != nullBlock {
		next.setPrevFree(prev)
	}
}
