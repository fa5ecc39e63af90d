// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command pfxtable loads a route file into a prefix table and runs
// exact, longest-prefix and overlap queries against it.
//
//	pfxtable --routes routes.txt lookup 10.1.2.3 2001:db8::1
//	pfxtable --routes routes.txt lookup --exact 10.0.0.0/8
//	pfxtable --routes routes.txt overlaps 10.0.0.0/12
//	pfxtable --routes routes.txt dump
//	pfxtable --routes routes.txt stats 10.1.2.3
//	pfxtable bench --prefixes 100000
package main

import (
	"os"

	"github.com/gaissmai/pfxtable"
	"github.com/gaissmai/pfxtable/internal/config"
	"github.com/gaissmai/pfxtable/internal/routes"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	opts    config.Options

	log     *logrus.Entry
	reg     *prometheus.Registry
	metrics *pfxtable.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pfxtable",
		Short:         "Query a route file with a binary prefix trie",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			return a.initLogger(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.pfxtable.yaml)")
	a.opts.AddFlags(root.PersistentFlags())

	root.AddCommand(
		a.lookupCmd(),
		a.overlapsCmd(),
		a.dumpCmd(),
		a.statsCmd(),
		a.benchCmd(),
	)

	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	return config.BindFlags(cmd.Flags(), v)
}

func (a *app) initLogger(cmd *cobra.Command) error {
	ll, err := logrus.ParseLevel(a.opts.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log-level")
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(ll)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true, PadLevelText: true, DisableQuote: true})

	a.log = logger.WithField("cmd", cmd.Name())
	a.reg = prometheus.NewRegistry()
	a.metrics = pfxtable.NewMetrics(a.reg)

	return nil
}

// loadTable reads the configured route file into a new table.
// Lines without payload are inserted as markers.
func (a *app) loadTable() (*pfxtable.Table[string], error) {
	if err := a.opts.Validate(); err != nil {
		return nil, err
	}

	rs, err := routes.Load(a.opts.Routes)
	if err != nil {
		return nil, err
	}

	tbl := pfxtable.New[string](
		pfxtable.WithReporter(pfxtable.LogReporter{Entry: a.log}),
		pfxtable.WithMetrics(a.metrics),
	)

	for _, r := range rs {
		var prev pfxtable.Slot[string]
		if r.HasVal {
			prev = tbl.Insert(r.Key, r.Payload)
		} else {
			prev = tbl.InsertMarker(r.Key)
		}

		if prev.Ok() {
			a.log.WithField("line", r.Line).Debugf("route %s overwritten", r.Key)
		}
	}

	a.log.WithFields(logrus.Fields{
		"file":   a.opts.Routes,
		"routes": len(rs),
		"size":   tbl.Size(),
	}).Info("route table loaded")

	return tbl, nil
}
