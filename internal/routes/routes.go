// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package routes reads route files: one CIDR or address per line,
// optionally followed by a payload. Empty lines and lines starting
// with '#' are skipped. Files ending in .gz are decompressed.
//
//	# prefix        payload
//	10.0.0.0/8      corp
//	192.0.2.1       gateway
//	2001:db8::/32
package routes

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/gaissmai/pfxtable"
	"github.com/pkg/errors"
)

// Route is a parsed line of a route file.
type Route struct {
	Key     pfxtable.Key
	Payload string
	HasVal  bool // false for lines without payload
	Line    int
}

// Load reads the route file at path.
func Load(path string) ([]Route, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		rgz, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		defer rgz.Close()
		r = rgz
	}

	routes, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return routes, nil
}

// Read parses routes from r. It stops at the first malformed line.
func Read(r io.Reader) ([]Route, error) {
	var routes []Route

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		payload := strings.Join(fields[1:], " ")

		k, err := pfxtable.ParseKey(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}

		routes = append(routes, Route{
			Key:     k,
			Payload: payload,
			HasVal:  payload != "",
			Line:    n,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return routes, nil
}
