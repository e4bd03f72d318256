// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability provides lightweight timing and event reporting for
// the search pipeline. The engine never fails because of a bad observer;
// everything here is best-effort writes to the configured writer.
package observability

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level controls how much an Observer reports.
type Level int

const (
	LevelSilent Level = iota
	LevelWarnings
	LevelMetrics
	LevelDebug
)

// Observer reports warnings, metrics and step timings.
type Observer struct {
	mu     sync.Mutex
	level  Level
	writer io.Writer
}

// NewObserver creates an observer writing to w at the given level.
// A nil writer silences all output regardless of level.
func NewObserver(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// Warn reports a warning-level event with alternating key/value context.
func (o *Observer) Warn(component, msg string, kv ...any) {
	o.emit(LevelWarnings, "WARN", component, msg, kv...)
}

// Debug reports a debug-level event.
func (o *Observer) Debug(component, msg string, kv ...any) {
	o.emit(LevelDebug, "DEBUG", component, msg, kv...)
}

// Metric reports a named metric value.
func (o *Observer) Metric(component, name string, value any) {
	o.emit(LevelMetrics, "METRIC", component, fmt.Sprintf("%s=%v", name, value))
}

// StartTiming begins timing an operation and returns a closure that records
// the elapsed time when invoked.
func (o *Observer) StartTiming(component, operation string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		status := "ok"
		if !success {
			status = "failed"
		}
		o.emit(LevelMetrics, "TIMING", component,
			fmt.Sprintf("%s %s in %dms", operation, status, time.Since(start).Milliseconds()))
	}
}

func (o *Observer) emit(min Level, tag, component, msg string, kv ...any) {
	if o == nil || o.writer == nil || o.level < min {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "[%s] %s: %s", tag, component, msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(o.writer, " %v=%v", kv[i], kv[i+1])
	}
	fmt.Fprintln(o.writer)
}
