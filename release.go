// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

// coalesce inspects blk's immediate neighbours via their boundary tags and
// merges blk with whichever of them are free, establishing invariant 5 (no
// two adjacent free blocks). blk itself must already be written as free
// (alloc bit clear) before this is called. The survivor is inserted into
// the free list and returned.
//
// Joining runs unconditionally on every release rather than being gated
// behind an opt-in flag: the free list only ever holds maximal free
// runs, never two adjacent free blocks.
func (a *Allocator) coalesce(blk block) block {
	size := blk.size()
	prevAlloc := extractAlloc(blk.prevFooter())
	next := blk.next()
	nextAlloc := next.allocated()

	switch {
	case prevAlloc && nextAlloc:
		// nothing to merge; blk survives as-is.
	case prevAlloc && !nextAlloc:
		a.remove(next)
		size += next.size()
		blk.write(size, false)
	case !prevAlloc && nextAlloc:
		prev := blk.prev()
		a.remove(prev)
		size += prev.size()
		prev.write(size, false)
		blk = prev
	default: // both neighbours free
		prev := blk.prev()
		a.remove(prev)
		a.remove(next)
		size += prev.size() + next.size()
		prev.write(size, false)
		blk = prev
	}

	a.insert(blk)
	return blk
}

// debugFragment runs header/footer symmetry and previous-footer sanity
// checks against a single block, panicking on corruption. Only called
// when Debug is set.
func (a *Allocator) debugFragment(f block) {
	if f.header() != f.footer() {
		PANIC("fragment at %#x: header (%#x) != footer (%#x)\n",
			uintptr(f), f.header(), f.footer())
	}
	if f != a.first {
		pf := f.prevFooter()
		if pf&(0xF&^allocMask) != 0 {
			PANIC("fragment at %#x: previous footer corrupted (%#x)\n",
				uintptr(f), pf)
		}
	}
}
