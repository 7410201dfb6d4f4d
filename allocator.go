// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package qalloc implements a general-purpose dynamic memory allocator
// over a single contiguous, monotonically-growable heap region: in-band
// header/footer block metadata, an explicit doubly-linked free list
// threaded through freed payload bytes, immediate boundary-tag
// coalescing on every release, and first-fit placement with splitting.
//
// It is single-threaded and not reentrant: no method may be called
// concurrently with another on the same Allocator, and no method blocks.
package qalloc

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Options encodes the optional, debug-oriented behaviour of an Allocator.
// Unlike the allocation policy itself (first-fit, LIFO insertion, single
// free list, immediate coalescing), all of which is mandatory, these bits
// only gate extra verification and logging.
type Options uint32

const (
	// Debug makes every Allocate/Release self-check the fragment it
	// touches (header/footer symmetry, previous-footer sanity) before
	// proceeding, panicking on corruption.
	Debug Options = 1 << iota
	// Checks is part of DefaultOptions. Check() performs its free-list
	// exactness cross-check whether or not this bit is set; clearing it
	// does not skip any verification.
	Checks
	// DumpStatsShort makes Dump print only the summary line, omitting
	// the per-block walk.
	DumpStatsShort

	// DefaultOptions enables the structural checks and leaves debug
	// fragment-checking off.
	DefaultOptions = Checks
)

func (o Options) debug() bool  { return o&Debug != 0 }
func (o Options) checks() bool { return o&Checks != 0 }

// MUsed tracks live heap usage and its high-water mark. Used and RealUsed
// both count the full size of every live block, header and footer
// included, so they always hold the same value; payload bytes alone are
// not tracked.
type MUsed struct {
	Used        uint64
	RealUsed    uint64
	MaxRealUsed uint64
}

// Allocator is a single, independent allocator instance bound to one
// Provider. It owns no global state and takes no locks: callers must
// not invoke two methods on the same Allocator concurrently.
type Allocator struct {
	provider Provider
	opts     Options

	first    block // first real (non-sentinel) block
	freeHead block

	size uint64 // total heap bytes currently owned (excluding sentinels)
	used MUsed
}

// New constructs an Allocator bound to provider. Call Init before any
// other method.
func New(provider Provider, opts Options) *Allocator {
	return &Allocator{provider: provider, opts: opts}
}

// Init bootstraps the heap: installs the prologue footer and epilogue
// header sentinels, then extends the heap by chunkSize to seed one large
// free block. It returns an error if the provider refuses the initial
// extension; subsequent calls to any other method are undefined after
// an Init failure.
func (a *Allocator) Init() error {
	base, err := a.provider.Extend(2 * wordSize)
	if err != nil {
		ERR("Init: bootstrap extend failed: %v\n", err)
		return errors.Wrap(err, "qalloc: bootstrap heap_extend failed")
	}
	writeSentinel(base)             // prologue footer
	writeSentinel(base + wordSize)  // epilogue header
	a.first = block(base + wordSize)
	a.freeHead = nullBlock
	a.size = 0
	a.used = MUsed{}

	if _, err := a.extendHeap(chunkSize); err != nil {
		ERR("Init: seed extend failed: %v\n", err)
		return errors.Wrap(err, "qalloc: initial heap_extend failed")
	}
	return nil
}

// extendHeap asks the provider for n more bytes (rounded up to roundTo),
// carves a new free block out of them, rewrites the epilogue, and
// coalesces the new block with its predecessor if that predecessor is
// itself free. coalesce inserts the surviving block into the free list
// before returning it.
func (a *Allocator) extendHeap(n uintptr) (block, error) {
	n = uintptr(roundUp16(uint64(n)))
	base, err := a.provider.Extend(n)
	if err != nil {
		return nullBlock, err
	}
	// The word just below base is the prior epilogue header: treat it as
	// the header of a new free block of size n.
	nb := block(base - wordSize)
	nb.write(uint64(n), false)
	writeSentinel(uintptr(nb.next()))
	a.size += uint64(n)

	if a.opts.debug() {
		DBG("extendHeap: grew by %d bytes at %#x\n", n, base)
	}
	return a.coalesce(nb), nil
}

// Allocate requests size bytes of payload and returns a 16-byte-aligned
// pointer to them, or nil if size is zero or the heap cannot be grown
// further to satisfy the request.
func (a *Allocator) Allocate(size uint64) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	var asize uint64
	if size <= 2*wordSize {
		asize = minBlockSize
	} else {
		asize = roundUp16(size + 2*wordSize)
	}

	f := a.findFit(asize)
	if f == nullBlock {
		if _, err := a.extendHeap(uintptr(maxU64(chunkSize, asize))); err != nil {
			WARN("Allocate(%d): extendHeap failed: %v\n", size, err)
			return nil
		}
		f = a.findFit(asize)
		if f == nullBlock {
			BUG("Allocate(%d): no fit even after extension\n", size)
			return nil
		}
	}

	if a.opts.debug() {
		a.debugFragment(f)
	}
	a.remove(f)
	f.write(f.size(), true)
	a.split(f, asize)
	a.addUsed(f.size())
	return f.payload()
}

// Release returns the payload at p to the allocator, coalescing it with
// any free neighbours and relinking the survivor into the free list.
// Releasing nil is a no-op; releasing a foreign or already-freed
// pointer is undefined behaviour.
func (a *Allocator) Release(p unsafe.Pointer) {
	if p == nil {
		return
	}
	f := payloadToBlock(p)
	if !f.inRange(a.provider.Lo(), a.provider.Hi()) {
		PANIC("Release: pointer %p out of heap bounds\n", p)
		return
	}
	if a.opts.debug() {
		a.debugFragment(f)
	}
	if !f.allocated() {
		PANIC("Release: double free of %p\n", p)
		return
	}
	a.subUsed(f.size())
	f.write(f.size(), false)
	a.coalesce(f)
}

// Usage returns the current allocator-wide usage counters.
func (a *Allocator) Usage() MUsed {
	return a.used
}

// Available returns how many bytes of heap are not in live blocks, i.e.
// the total size of all free blocks.
func (a *Allocator) Available() uint64 {
	return a.size - a.used.RealUsed
}

// Owns reports whether p lies within the heap region managed by a. Its
// result is undefined if p was already Released.
func (a *Allocator) Owns(p unsafe.Pointer) bool {
	addr := uintptr(p)
	return addr >= uintptr(a.first.payload()) && addr < uintptr(a.first)+uintptr(a.size)
}

func (a *Allocator) addUsed(size uint64) {
	a.used.Used += size
	a.used.RealUsed += size
	if a.used.MaxRealUsed < a.used.RealUsed {
		a.used.MaxRealUsed = a.used.RealUsed
	}
}

func (a *Allocator) subUsed(size uint64) {
	a.used.Used -= size
	a.used.RealUsed -= size
}
