/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package liveread

import (
	"io"
	"log/slog"

	"github.com/cloudwego/liveread/debug"
	"github.com/cloudwego/liveread/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithStop sets the exclusive upper bound of the exploration. Instructions
// at or beyond stop are never visited. -1 means the end of the stream, which
// is the default, and a stop past the end is the same as -1. Any other
// negative value makes Analyze fail with ErrInvalidStop.
func WithStop(stop int) Option {
	return func(o *opts.Options) { o.Stop = stop }
}

// WithWorklist forces the explicit-stack walker regardless of the stream
// length.
//
// By default streams longer than the worklist threshold use it, the
// threshold can be configured with the `LIVEREAD_WORKLIST_THRESHOLD`
// environment variable and defaults to "1024".
func WithWorklist(v bool) Option {
	return func(o *opts.Options) { o.Worklist = v }
}

// WithLogger sets the logger receiving debug records about forks and cache
// hits. Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *opts.Options) { o.Logger = l }
}

// WithStats makes the analysis store its statistics into s.
func WithStats(s *debug.Stats) Option {
	return func(o *opts.Options) { o.Stats = s }
}

// WithDump makes the analysis write its branch cache to w once it is done.
func WithDump(w io.Writer) Option {
	return func(o *opts.Options) { o.Dump = w }
}

// SetWorklistThreshold sets the default worklist threshold for all
// analyses from now on, and returns the old value.
func SetWorklistThreshold(n int) int {
	n, opts.WorklistThreshold = opts.WorklistThreshold, n
	return n
}
