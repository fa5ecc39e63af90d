// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"net/netip"

	"github.com/gaissmai/pfxtable"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// keyArg turns a command line argument into a table key.
// Unparsable arguments are passed through as strings and get
// reported by the table.
func keyArg(s string) any {
	if ip, err := netip.ParseAddr(s); err == nil {
		return ip
	}
	if pfx, err := netip.ParsePrefix(s); err == nil {
		return pfxtable.Subnet{Addr: pfx.Addr(), Len: pfx.Bits()}
	}
	return s
}

func slotText(s pfxtable.Slot[string]) string {
	switch s.State {
	case pfxtable.Valued:
		return s.Val
	case pfxtable.Marked:
		return "marked"
	default:
		return "miss"
	}
}

func (a *app) lookupCmd() *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "lookup KEY...",
		Short: "Longest-prefix or exact match of addresses and prefixes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := a.loadTable()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, arg := range args {
				if exact {
					fmt.Fprintf(w, "%s\t%s\n", arg, slotText(tbl.LookupExact(keyArg(arg))))
					continue
				}

				lpm, s := tbl.LookupBest(keyArg(arg))
				if !s.Ok() {
					fmt.Fprintf(w, "%s\tmiss\n", arg)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", arg, lpm, slotText(s))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "match the key exactly instead of longest-prefix")
	return cmd
}

func (a *app) overlapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlaps KEY...",
		Short: "List all routes overlapping the given prefixes, supernets first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := a.loadTable()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, arg := range args {
				entries := tbl.FindAll(keyArg(arg))
				fmt.Fprintf(w, "%s (%d)\n", arg, len(entries))
				for _, e := range entries {
					fmt.Fprintf(w, "  %s\t%s\n", e.Key, slotText(e.Slot))
				}
			}
			return nil
		},
	}
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the trie structure, glue nodes included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := a.loadTable()
			if err != nil {
				return err
			}
			return tbl.Trie().Fprint(cmd.OutOrStdout())
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [KEY...]",
		Short: "Load the routes, look up the keys and print the table metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := a.loadTable()
			if err != nil {
				return err
			}

			for _, arg := range args {
				tbl.LookupBest(keyArg(arg))
			}

			mfs, err := a.reg.Gather()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, mf := range mfs {
				if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
