// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package config holds the options of the pfxtable command and merges
// them from flags, environment and an optional config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix of environment variables, e.g. PFXTABLE_ROUTES.
	EnvPrefix = "PFXTABLE"

	// DefaultFileName is searched for in $HOME when no config file is given.
	DefaultFileName = ".pfxtable"
)

// Options of the pfxtable command.
type Options struct {
	Routes   string
	LogLevel string
}

// AddFlags registers the options as flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Routes, "routes", "", "route file, one CIDR [payload] per line, may be gzipped")
	fs.StringVar(&o.LogLevel, "log-level", "warning", "log level: debug, info, warning, error")
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Routes == "" {
		return errors.New("no route file given, use --routes or " + EnvPrefix + "_ROUTES")
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return errors.Wrap(err, "log-level")
	}
	return nil
}

// NewViper returns a viper reading cfgFile, or DefaultFileName in the
// home directory if cfgFile is empty, and the environment.
// A missing default config file is not an error.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultFileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	return v, nil
}

// BindFlags applies the viper value to each flag that is not set on
// the command line.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) || err != nil {
			return
		}
		if e := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); e != nil {
			err = errors.Wrapf(e, "flag %s", f.Name)
		}
	})
	return err
}
