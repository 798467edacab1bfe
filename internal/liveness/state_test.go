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
    `testing`

    `github.com/stretchr/testify/require`
)

func TestState_KeyIgnoresInsertionOrder(t *testing.T) {
    a := newState(70, 130)
    b := newState(70, 130)
    for _, i := range []int { 3, 69, 0 } { a.reads.add(i) }
    for _, i := range []int { 0, 3, 69 } { b.reads.add(i) }
    for _, i := range []int { 128, 1, 64 } { a.visited.add(i) }
    for _, i := range []int { 64, 128, 1 } { b.visited.add(i) }
    require.Equal(t, a.key(5, true), b.key(5, true))
    require.NotEqual(t, a.key(5, true), a.key(5, false))
    require.NotEqual(t, a.key(5, true), a.key(6, true))
}

func TestState_KeySeparatesSets(t *testing.T) {
    a := newState(8, 8)
    b := newState(8, 8)
    a.reads.add(1)
    b.writes.add(1)
    require.NotEqual(t, a.key(0, false), b.key(0, false))
}

func TestState_CloneIsIndependent(t *testing.T) {
    a := newState(8, 8)
    a.reads.add(1)
    b := a.clone()
    b.reads.add(2)
    b.writes.add(3)
    b.visited.add(4)
    require.True(t, a.reads.has(1))
    require.False(t, a.reads.has(2))
    require.False(t, a.writes.has(3))
    require.False(t, a.visited.has(4))
    require.Equal(t, 2, b.reads.count())
}

func TestBitset_Each(t *testing.T) {
    v := newBitset(200)
    for _, i := range []int { 199, 0, 63, 64, 128 } { v.add(i) }
    var got []int
    v.each(func(i int) { got = append(got, i) })
    require.Equal(t, []int { 0, 63, 64, 128, 199 }, got)
}

func TestVarSet_String(t *testing.T) {
    v := VarSet{}
    v.add("b")
    v.add("a")
    require.True(t, v.Has("a"))
    require.False(t, v.Has("c"))
    require.Equal(t, "{a, b}", v.String())
    require.Equal(t, "{}", VarSet{}.String())
}
