// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// qallocctl is a small interactive driver for the qalloc allocator: it
// runs synthetic workloads, reports usage statistics, and runs the
// consistency checker. It is demonstration/debug tooling, not part of
// the allocator's tested contract.
package main

func main() {
	execute()
}
