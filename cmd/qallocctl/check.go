// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the synthetic workload, then verify heap consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
}

func runCheck() error {
	a, err := newAllocator()
	if err != nil {
		return err
	}
	runWorkload(a, workloadN, workloadSize, workloadSeed)

	if verbose {
		a.Dump(os.Stdout)
	}

	if err := a.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "heap is inconsistent: %v\n", err)
		os.Exit(1)
	}
	printInfo("heap is consistent after %d-step workload\n", workloadN)
	return nil
}
