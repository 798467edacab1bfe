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

package debug

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// A Stats records statistics about one live-read analysis.
type Stats struct {
	Cache    CacheStats
	Walks    int
	MaxDepth int
	Worklist bool
}

// A CacheStats records statistics about the branch cache.
type CacheStats struct {
	Hit  int
	Miss int
	Size int
}

// A Branch is a readable snapshot of one branch cache entry.
type Branch struct {
	Pc      int
	Taken   bool
	Reads   []string
	Writes  []string
	Visited []int
	Result  []string
	Done    bool
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump writes the branch cache entries to w.
func Dump(w io.Writer, branches []Branch) {
	dumper.Fdump(w, branches)
}
