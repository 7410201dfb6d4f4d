// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Check verifies the heap's structural invariants by one implicit-list
// pass (address order) and one free-list pass, and returns the first
// violation found, or nil if the heap is consistent.
func (a *Allocator) Check() error {
	lo, hi := a.provider.Lo(), a.provider.Hi()

	if a.freeHead != nullBlock && a.freeHead.prevFree() != nullBlock {
		ERR("Check: free-list head %#x has a non-nil prev\n", uintptr(a.freeHead))
		return errors.Errorf("qalloc: free-list head %#x has a non-nil prev", uintptr(a.freeHead))
	}
	inFreeList := make(map[block]bool)
	for f := a.freeHead; f != nullBlock; f = f.nextFree() {
		if inFreeList[f] {
			ERR("Check: free-list cycle at %#x\n", uintptr(f))
			return errors.Errorf("qalloc: free-list cycle at %#x", uintptr(f))
		}
		inFreeList[f] = true
		if f.allocated() {
			ERR("Check: free-list node %#x has alloc bit set\n", uintptr(f))
			return errors.Errorf("qalloc: free-list node %#x has alloc bit set", uintptr(f))
		}
		next := f.nextFree()
		if next != nullBlock && next.prevFree() != f {
			ERR("Check: free-list node %#x and its next %#x disagree on prev\n",
				uintptr(f), uintptr(next))
			return errors.Errorf("qalloc: free-list node %#x and its next %#x disagree on prev",
				uintptr(f), uintptr(next))
		}
	}

	prevWasFree := false // prologue counts as allocated, not free
	for b := a.first; uintptr(b) < uintptr(a.first)+uintptr(a.size); b = b.next() {
		if !b.inRange(lo, hi) {
			ERR("Check: block %#x out of heap range [%#x, %#x]\n", uintptr(b), lo, hi)
			return errors.Errorf("qalloc: block %#x out of heap range [%#x, %#x]",
				uintptr(b), lo, hi)
		}
		if b.header() != b.footer() {
			ERR("Check: block %#x header (%#x) != footer (%#x)\n",
				uintptr(b), b.header(), b.footer())
			return errors.Errorf("qalloc: block %#x header (%#x) != footer (%#x)",
				uintptr(b), b.header(), b.footer())
		}
		free := !b.allocated()
		if free && prevWasFree {
			ERR("Check: adjacent free blocks meeting at %#x\n", uintptr(b))
			return errors.Errorf("qalloc: adjacent free blocks meeting at %#x", uintptr(b))
		}
		if free != inFreeList[b] {
			ERR("Check: block %#x free=%v but free-list membership=%v\n",
				uintptr(b), free, inFreeList[b])
			return errors.Errorf("qalloc: block %#x free=%v but free-list membership=%v",
				uintptr(b), free, inFreeList[b])
		}
		if free {
			delete(inFreeList, b)
		}
		prevWasFree = free
	}

	if len(inFreeList) != 0 {
		for f := range inFreeList {
			ERR("Check: free-list node %#x not reachable from the implicit list\n", uintptr(f))
			return errors.Errorf("qalloc: free-list node %#x not reachable from the implicit list", uintptr(f))
		}
	}
	return nil
}

// Dump writes a human-readable walk of every block in the heap to w. It
// is debug/diagnostic tooling, not part of the tested contract.
func (a *Allocator) Dump(w io.Writer) {
	fmt.Fprintf(w, "qalloc: size=%d used=%d real_used=%d max_real_used=%d available=%d\n",
		a.size, a.used.Used, a.used.RealUsed, a.used.MaxRealUsed, a.Available())
	if a.opts&DumpStatsShort != 0 {
		return
	}
	for b := a.first; uintptr(b) < uintptr(a.first)+uintptr(a.size); b = b.next() {
		if b.allocated() {
			fmt.Fprintf(w, "  %#x  size=%-6d ALLOCATED\n", uintptr(b), b.size())
		} else {
			fmt.Fprintf(w, "  %#x  size=%-6d FREE prev=%#x next=%#x\n",
				uintptr(b), b.size(), uintptr(b.prevFree()), uintptr(b.nextFree()))
		}
	}
}
