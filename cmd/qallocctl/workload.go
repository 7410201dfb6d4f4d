// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"fmt"
	"math/rand"
	"unsafe"

	"github.com/heapkit/qalloc"
	"github.com/heapkit/qalloc/heap"
)

// newAllocator builds an Allocator over a freshly capped Arena, matching
// the --capacity flag.
func newAllocator() (*qalloc.Allocator, error) {
	arena := heap.NewArena(heapCapacity)
	a := qalloc.New(arena, qalloc.DefaultOptions)
	if err := a.Init(); err != nil {
		return nil, fmt.Errorf("qalloc.Init: %w", err)
	}
	return a, nil
}

// runWorkload drives a.Allocate/a.Release through a synthetic, seeded
// workload: it allocates up to n live blocks of a random size in
// [1, maxSize], releasing a randomly chosen live block about half the
// time instead of allocating another, so the free list sees realistic
// churn. It returns the number of allocations that returned nil.
func runWorkload(a *qalloc.Allocator, n, maxSize int, seed int64) (failures int) {
	rng := rand.New(rand.NewSource(seed))
	live := make([]unsafe.Pointer, 0, n)

	for i := 0; i < n; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(live))
			a.Release(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}
		size := uint64(rng.Intn(maxSize) + 1)
		p := a.Allocate(size)
		if p == nil {
			failures++
			continue
		}
		live = append(live, p)
	}

	for _, p := range live {
		a.Release(p)
	}
	return failures
}
