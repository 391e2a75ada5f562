// Copyright (C) 2024 Msgpack Authors. All Rights Reserved.

// Package xlog is a minimal leveled wrapper around the standard logger,
// used only by the CLI front-end. The core msgpack codec never logs: it
// is a pure library with no I/O of its own.
package xlog

import (
	"log"
	"os"
)

// Logger writes diagnostic output to stderr, gated by a verbose flag.
type Logger struct {
	verbose bool
	std     *log.Logger
}

// New constructs a Logger. When verbose is false, Debugf is a no-op.
func New(verbose bool) *Logger {
	return &Logger{
		verbose: verbose,
		std:     log.New(os.Stderr, "", 0),
	}
}

// Debugf logs a formatted message only when the Logger is verbose.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.verbose {
		l.std.Printf("debug: "+format, args...)
	}
}

// Errorf logs a formatted message unconditionally.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.std.Printf("error: "+format, args...)
}
