// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

// Provider is the heap backing store this allocator is built on top of.
// It never shrinks and never moves previously returned addresses:
// Extend only ever grows the region by appending bytes past the current
// high address.
//
// github.com/heapkit/qalloc/heap provides a concrete implementation;
// Allocator only depends on this interface, so tests can substitute a
// smaller or failure-injecting Provider.
type Provider interface {
	// Extend grows the heap by exactly n bytes and returns the address
	// that was the top of the heap before the growth (i.e. the start of
	// the newly available region). n is always a multiple of roundTo.
	// On failure it returns a non-nil error and leaves the heap
	// unchanged.
	Extend(n uintptr) (base uintptr, err error)

	// Lo returns the lowest addressable byte currently in the heap.
	Lo() uintptr

	// Hi returns the highest addressable byte currently in the heap.
	Hi() uintptr
}
