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

package liveness

import (
    `encoding/binary`
)

// State is the knowledge accumulated along one exploration path. Variables
// are tracked by their interned id and positions by their index, so every
// set of one analysis has the same width and a state can be compared by its
// words regardless of the order in which elements were added.
type State struct {
    reads   bitset
    writes  bitset
    visited bitset
}

func newState(nvars int, npos int) *State {
    return &State {
        reads   : newBitset(nvars),
        writes  : newBitset(nvars),
        visited : newBitset(npos),
    }
}

func (self *State) clone() *State {
    return &State {
        reads   : self.reads.clone(),
        writes  : self.writes.clone(),
        visited : self.visited.clone(),
    }
}

// key encodes the branch cache key (pc, taken, state) into a map key.
func (self *State) key(pc int, taken bool) string {
    nb := 9 + 8 * (len(self.reads) + len(self.writes) + len(self.visited))
    buf := make([]byte, 0, nb)
    buf = binary.LittleEndian.AppendUint64(buf, uint64(pc))

    /* branch direction */
    if taken {
        buf = append(buf, 1)
    } else {
        buf = append(buf, 0)
    }

    /* the state itself, widths are fixed per analysis */
    buf = self.reads.encode(buf)
    buf = self.writes.encode(buf)
    buf = self.visited.encode(buf)
    return string(buf)
}
