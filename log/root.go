// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package log is a thin, geth-style structured logging facade over logrus:
// free functions (Trace/Debug/Info/Warn/Error/Crit) taking a message plus
// alternating key/value context, and component-scoped loggers via New.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Lvl is the logging verbosity level.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

var base = logrus.New()

func init() {
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
}

// SetLevel adjusts the global verbosity.
func SetLevel(lvl Lvl) {
	levels := map[Lvl]logrus.Level{
		LvlCrit:  logrus.FatalLevel,
		LvlError: logrus.ErrorLevel,
		LvlWarn:  logrus.WarnLevel,
		LvlInfo:  logrus.InfoLevel,
		LvlDebug: logrus.DebugLevel,
		LvlTrace: logrus.TraceLevel,
	}
	base.SetLevel(levels[lvl])
}

// Logger is a component-scoped logger carrying fixed context fields.
type Logger struct {
	entry *logrus.Entry
}

// New creates a Logger tagged with the given alternating key/value context,
// e.g. log.New("module", "vm").
func New(ctx ...interface{}) Logger {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(ctx); i += 2 {
		key, _ := ctx[i].(string)
		fields[key] = ctx[i+1]
	}
	return Logger{entry: base.WithFields(fields)}
}

func withCtx(e *logrus.Entry, ctx []interface{}) *logrus.Entry {
	if len(ctx) == 0 {
		return e
	}
	fields := logrus.Fields{}
	for i := 0; i+1 < len(ctx); i += 2 {
		key, _ := ctx[i].(string)
		fields[key] = ctx[i+1]
	}
	return e.WithFields(fields)
}

func (l Logger) Trace(msg string, ctx ...interface{}) { withCtx(l.entry, ctx).Trace(msg) }
func (l Logger) Debug(msg string, ctx ...interface{}) { withCtx(l.entry, ctx).Debug(msg) }
func (l Logger) Info(msg string, ctx ...interface{})  { withCtx(l.entry, ctx).Info(msg) }
func (l Logger) Warn(msg string, ctx ...interface{})  { withCtx(l.entry, ctx).Warn(msg) }
func (l Logger) Error(msg string, ctx ...interface{}) { withCtx(l.entry, ctx).Error(msg) }
func (l Logger) Crit(msg string, ctx ...interface{})  { withCtx(l.entry, ctx).Fatal(msg) }

// Package-level convenience functions operating on the root logger.
func Trace(msg string, ctx ...interface{}) { withCtx(logrus.NewEntry(base), ctx).Trace(msg) }
func Debug(msg string, ctx ...interface{}) { withCtx(logrus.NewEntry(base), ctx).Debug(msg) }
func Info(msg string, ctx ...interface{})  { withCtx(logrus.NewEntry(base), ctx).Info(msg) }
func Warn(msg string, ctx ...interface{})  { withCtx(logrus.NewEntry(base), ctx).Warn(msg) }
func Error(msg string, ctx ...interface{}) { withCtx(logrus.NewEntry(base), ctx).Error(msg) }
func Crit(msg string, ctx ...interface{})  { withCtx(logrus.NewEntry(base), ctx).Fatal(msg) }
