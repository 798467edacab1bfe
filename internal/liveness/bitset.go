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
    `math/bits`
)

type bitset []uint64

func newBitset(n int) bitset {
    return make(bitset, (n + 63) >> 6)
}

func (self bitset) has(i int) bool {
    return self[i >> 6] & (1 << uint(i & 63)) != 0
}

func (self bitset) add(i int) {
    self[i >> 6] |= 1 << uint(i & 63)
}

func (self bitset) union(v bitset) {
    for i, w := range v {
        self[i] |= w
    }
}

func (self bitset) clone() bitset {
    ret := make(bitset, len(self))
    copy(ret, self)
    return ret
}

func (self bitset) count() (n int) {
    for _, w := range self {
        n += bits.OnesCount64(w)
    }
    return
}

func (self bitset) each(action func(i int)) {
    for i, w := range self {
        for w != 0 {
            action(i << 6 + bits.TrailingZeros64(w))
            w &= w - 1
        }
    }
}

func (self bitset) encode(buf []byte) []byte {
    for _, w := range self {
        buf = binary.LittleEndian.AppendUint64(buf, w)
    }
    return buf
}
