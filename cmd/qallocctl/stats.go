// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"github.com/heapkit/qalloc"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

type workloadStats struct {
	qalloc.MUsed
	Available  uint64 `json:"available"`
	Failures   int    `json:"failures"`
	Iterations int    `json:"iterations"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Run the synthetic workload and report usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	a, err := newAllocator()
	if err != nil {
		return err
	}
	failures := runWorkload(a, workloadN, workloadSize, workloadSeed)

	stats := workloadStats{
		MUsed:      a.Usage(),
		Available:  a.Available(),
		Failures:   failures,
		Iterations: workloadN,
	}

	if jsonOut {
		return printJSON(stats)
	}
	printInfo("iterations=%d failures=%d used=%d real_used=%d max_real_used=%d available=%d\n",
		stats.Iterations, stats.Failures, stats.Used, stats.RealUsed,
		stats.MaxRealUsed, stats.Available)
	return nil
}
