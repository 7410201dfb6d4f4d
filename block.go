// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

import "unsafe"

// block is the address of a block's header word inside the arena. It is a
// thin, explicitly-named layer over raw pointer arithmetic: every address
// computation in this package goes through one of these methods, never
// through ad-hoc unsafe.Pointer math elsewhere.
//
// Layout:
//
//	offset 0      : header word
//	offset 8      : payload start (allocated) or prev-link (free)
//	offset 16     : payload continues         or next-link (free)
//	...
//	offset size-8 : footer word
type block uintptr

// nullBlock is the sentinel "no block" value, analogous to a nil pointer.
const nullBlock block = 0

func (b block) headerPtr() *word {
	return (*word)(unsafe.Pointer(b))
}

func (b block) header() word {
	return *b.headerPtr()
}

// size returns the block's size in bytes, as encoded in its header.
func (b block) size() uint64 {
	return extractSize(b.header())
}

// allocated reports the allocation bit of the block's header.
func (b block) allocated() bool {
	return extractAlloc(b.header())
}

// footerPtr locates the footer word, size-8 bytes past the header (the
// last word of the block).
func (b block) footerPtr() *word {
	return (*word)(unsafe.Pointer(uintptr(b) + uintptr(b.size()) - wordSize))
}

func (b block) footer() word {
	return *b.footerPtr()
}

// write rewrites both header and footer to encode size/alloc. size must
// already be the intended new size of the block (it is used to locate the
// footer, so it cannot be derived from the stale header).
func (b block) write(size uint64, alloc bool) {
	w := pack(size, alloc)
	*b.headerPtr() = w
	*(*word)(unsafe.Pointer(uintptr(b) + uintptr(size) - wordSize)) = w
}

// payload returns the usable payload address, immediately after the header.
func (b block) payload() unsafe.Pointer {
	return unsafe.Pointer(uintptr(b) + wordSize)
}

// payloadToBlock recovers the owning block from a payload pointer previously
// returned by Allocate.
func payloadToBlock(p unsafe.Pointer) block {
	return block(uintptr(p) - wordSize)
}

// next returns the block immediately following b in address order.
func (b block) next() block {
	return block(uintptr(b) + uintptr(b.size()))
}

// prevFooterPtr locates the previous block's footer, the word immediately
// before b's header.
func (b block) prevFooterPtr() *word {
	return (*word)(unsafe.Pointer(uintptr(b) - wordSize))
}

func (b block) prevFooter() word {
	return *b.prevFooterPtr()
}

// prev returns the block immediately preceding b in address order, located
// via the boundary tag in the previous block's footer.
func (b block) prev() block {
	size := extractSize(b.prevFooter())
	return block(uintptr(b) - uintptr(size))
}

// Free-list link accessors. These alias the first two payload words of a
// free block; they must only be read while the block's alloc bit is clear,
// and become ordinary payload bytes the instant the block is allocated.

func (b block) prevLinkPtr() *block {
	return (*block)(b.payload())
}

func (b block) nextLinkPtr() *block {
	return (*block)(unsafe.Pointer(uintptr(b.payload()) + wordSize))
}

func (b block) prevFree() block {
	return *b.prevLinkPtr()
}

func (b block) nextFree() block {
	return *b.nextLinkPtr()
}

func (b block) setPrevFree(p block) {
	*b.prevLinkPtr() = p
}

func (b block) setNextFree(n block) {
	*b.nextLinkPtr() = n
}

// inRange reports whether b's header word lies within [lo, hi].
func (b block) inRange(lo, hi uintptr) bool {
	addr := uintptr(b)
	return addr >= lo && addr <= hi
}

// writeSentinel writes a zero-size, allocated marker word at addr. Used
// for both the prologue footer and every epilogue header.
func writeSentinel(addr uintptr) {
	*(*word)(unsafe.Pointer(addr)) = pack(0, true)
}
