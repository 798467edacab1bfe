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

package opts

import (
    `io`
    `log/slog`

    `github.com/cloudwego/liveread/debug`
)

type Options struct {
    Stop              int
    Worklist          bool
    WorklistThreshold int
    Logger            *slog.Logger
    Stats             *debug.Stats
    Dump              io.Writer
}

// Bound returns the exclusive upper bound of the exploration for a stream
// of n instructions. A Stop of -1, or one past the end, means the end. Other
// negative values are rejected by the analyzer before it gets here.
func (self *Options) Bound(n int) int {
    if self.Stop == -1 || self.Stop > n {
        return n
    } else {
        return self.Stop
    }
}

// UseWorklist reports whether a stream of n instructions should be walked
// with the explicit stack instead of recursion.
func (self *Options) UseWorklist(n int) bool {
    return self.Worklist || (self.WorklistThreshold != 0 && n > self.WorklistThreshold)
}

func GetDefaultOptions() Options {
    return Options {
        Stop              : -1,
        WorklistThreshold : WorklistThreshold,
    }
}
