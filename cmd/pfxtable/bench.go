// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand/v2"
	"net/netip"
	"time"

	"github.com/gaissmai/pfxtable"
	"github.com/gaissmai/pfxtable/internal/tests/random"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type benchOpts struct {
	prefixes int
	lookups  int
	seed     uint64
}

func (a *app) benchCmd() *cobra.Command {
	var o benchOpts

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Insert random prefixes and measure lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.prefixes <= 0 || o.lookups <= 0 {
				return errors.New("prefixes and lookups must be positive")
			}
			return runBench(cmd, o)
		},
	}

	cmd.Flags().IntVar(&o.prefixes, "prefixes", 10_000, "number of random prefixes to insert")
	cmd.Flags().IntVar(&o.lookups, "lookups", 1_000_000, "number of longest-prefix lookups")
	cmd.Flags().Uint64Var(&o.seed, "seed", 42, "seed of the random generator")

	return cmd
}

func runBench(cmd *cobra.Command, o benchOpts) error {
	prng := rand.New(rand.NewPCG(o.seed, o.seed))

	var tr pfxtable.Trie[struct{}]

	start := time.Now()
	for range o.prefixes {
		k, err := pfxtable.KeyFromPrefix(random.Prefix(prng))
		if err != nil {
			return err
		}
		tr.Insert(k, struct{}{})
	}
	insertTime := time.Since(start)

	probes := make([]pfxtable.Key, 0, 16)
	for range cap(probes) {
		ip := random.IP(prng)
		k, err := pfxtable.KeyFromPrefix(netip.PrefixFrom(ip, ip.BitLen()))
		if err != nil {
			return err
		}
		probes = append(probes, k)
	}

	hits := 0
	start = time.Now()
	for i := range o.lookups {
		if _, s := tr.LookupBest(probes[i&15]); s.Ok() {
			hits++
		}
	}
	lookupTime := time.Since(start)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "insert: %d prefixes, size(%d/%d), %v, %v/op\n",
		o.prefixes, tr.Size4(), tr.Size6(), insertTime, insertTime/time.Duration(o.prefixes))
	fmt.Fprintf(w, "lookup: %d probes, %d hits, %v, %v/op\n",
		o.lookups, hits, lookupTime, lookupTime/time.Duration(o.lookups))

	return nil
}
