// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	jsonOut bool

	// Shared workload flags
	heapCapacity int
	workloadN    int
	workloadSize int
	workloadSeed int64
)

var rootCmd = &cobra.Command{
	Use:   "qallocctl",
	Short: "Drive the qalloc explicit-free-list allocator",
	Long: `qallocctl runs synthetic allocate/release workloads against a
qalloc.Allocator backed by a heap.Arena, and reports on its behaviour:
usage statistics, a block-by-block heap dump, and the consistency
checker's verdict.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print a block-by-block heap dump")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output usage statistics as JSON")
	rootCmd.PersistentFlags().IntVar(&heapCapacity, "capacity", 8<<20, "Maximum arena capacity in bytes")
	rootCmd.PersistentFlags().IntVar(&workloadN, "n", 2000, "Number of steps (allocations or releases) in the synthetic workload")
	rootCmd.PersistentFlags().IntVar(&workloadSize, "size", 256, "Maximum payload size per allocation, in bytes")
	rootCmd.PersistentFlags().Int64Var(&workloadSeed, "seed", 1, "PRNG seed for the synthetic workload")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
