// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Reporter receives warnings about keys a [Table] could not use.
type Reporter interface {
	InternalWarning(format string, args ...any)
}

// ReporterFunc adapts a function to a Reporter.
type ReporterFunc func(format string, args ...any)

// InternalWarning calls f.
func (f ReporterFunc) InternalWarning(format string, args ...any) {
	f(format, args...)
}

// LogReporter is a Reporter logging at warning level.
// A nil Entry logs to the logrus standard logger.
type LogReporter struct {
	Entry *logrus.Entry
}

// InternalWarning logs the formatted message.
func (r LogReporter) InternalWarning(format string, args ...any) {
	e := r.Entry
	if e == nil {
		e = logrus.NewEntry(logrus.StandardLogger())
	}
	e.WithField("component", "pfxtable").Warn(fmt.Sprintf(format, args...))
}
