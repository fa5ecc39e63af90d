// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package pfxtable provides a prefix-matching table for IPv4 and IPv6
// CIDRs, implemented as a path-compressed binary (Patricia) trie.
//
// Every prefix stored in the table carries a payload slot, which is either
// valued, marked (present without a payload) or absent. The table supports
// exact lookups, longest-prefix-match lookups, enumeration of all
// overlapping prefixes, removal and an explicit-stack iterator.
//
// There are two layers:
//
//   - [Trie] is the engine, keyed by [Key] values built with [MakeKey]
//     or [KeyFromPrefix].
//   - [Table] wraps a Trie and accepts loosely typed keys (netip.Addr,
//     netip.Prefix, [Subnet], [Key] or a one-element []any), reporting
//     keys it cannot classify through a [Reporter] instead of failing.
//
// IPv4 and IPv6 prefixes are held under separate roots and never match
// each other, not even IPv4-mapped IPv6 addresses.
//
// Neither layer is safe for concurrent use. Callers sharing a table
// between goroutines must serialize all access, including the whole
// lifetime of an [Iterator].
package pfxtable
