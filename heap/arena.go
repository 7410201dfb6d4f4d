// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package heap provides a concrete implementation of the
// github.com/heapkit/qalloc.Provider interface: a single contiguous,
// monotonically-growable region of process memory.
//
// The allocator package only ever depends on the narrow Provider
// interface; Arena is the one real backing implementation in this
// module, built on a capacity-pinned byte slice whose backing array is
// taken once and never reallocated, so growth never invalidates
// previously returned addresses.
package heap

import (
	"unsafe"

	"github.com/pkg/errors"
)

// ErrExhausted is returned by Extend once the arena's pinned capacity
// has been used up.
var ErrExhausted = errors.New("heap: arena capacity exhausted")

// Arena is a growable heap region backed by a capacity-pinned byte slice.
// Unlike a plain append-able slice, Arena never reallocates its backing
// array: growth only ever extends the slice's length within a capacity
// fixed at construction time, so addresses handed out by Extend remain
// valid for the Arena's entire lifetime, which the allocator built on top
// of it depends on.
type Arena struct {
	mem  []byte // len(mem) == current heap size, cap(mem) == the pin
	base uintptr
}

// NewArena allocates a region of maxCapacity bytes and returns an empty
// Arena over it (Lo() == Hi(), nothing extended yet). maxCapacity bounds
// how far the heap can ever grow; Extend fails with ErrExhausted once it
// would be exceeded.
func NewArena(maxCapacity int) *Arena {
	if maxCapacity <= 0 {
		panic("heap: NewArena requires a positive capacity")
	}
	mem := make([]byte, 0, maxCapacity)
	return &Arena{
		mem:  mem,
		base: uintptr(unsafe.Pointer(&mem[:1][0])),
	}
}

// Extend grows the arena by n bytes and returns the address that was the
// top of the heap immediately before the growth.
func (r *Arena) Extend(n uintptr) (uintptr, error) {
	cur := len(r.mem)
	want := cur + int(n)
	if want > cap(r.mem) {
		return 0, errors.Wrapf(ErrExhausted, "requested %d bytes, only %d available",
			n, cap(r.mem)-cur)
	}
	top := r.base + uintptr(cur)
	r.mem = r.mem[:want]
	return top, nil
}

// Lo returns the lowest addressable byte currently in the heap.
func (r *Arena) Lo() uintptr {
	return r.base
}

// Hi returns the highest addressable byte currently in the heap, or Lo()-1
// if nothing has been extended yet.
func (r *Arena) Hi() uintptr {
	if len(r.mem) == 0 {
		return r.base - 1
	}
	return r.base + uintptr(len(r.mem)) - 1
}

// Cap returns the maximum number of bytes this arena can ever grow to.
func (r *Arena) Cap() int {
	return cap(r.mem)
}

// Len returns the number of bytes currently extended into.
func (r *Arena) Len() int {
	return len(r.mem)
}
