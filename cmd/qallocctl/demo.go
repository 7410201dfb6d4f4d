// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a synthetic allocate/release workload and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	a, err := newAllocator()
	if err != nil {
		return err
	}

	failures := runWorkload(a, workloadN, workloadSize, workloadSeed)

	printInfo("ran %d-step workload (max payload %d bytes, seed %d)\n",
		workloadN, workloadSize, workloadSeed)
	if failures > 0 {
		printInfo("%d allocations failed (arena exhausted)\n", failures)
	}
	u := a.Usage()
	printInfo("used=%d real_used=%d max_real_used=%d available=%d\n",
		u.Used, u.RealUsed, u.MaxRealUsed, a.Available())

	if verbose {
		a.Dump(os.Stdout)
	}
	return nil
}
