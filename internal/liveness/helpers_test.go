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
    `fmt`
    `sort`
    `testing`

    `github.com/brianvoe/gofakeit/v6`
)

type _Op struct {
    k    Kind
    name string
    to   int
}

type _Stream []_Op

func (self _Stream) Len() int               { return len(self) }
func (self _Stream) Kind(pc int) Kind       { return self[pc].k }
func (self _Stream) Name(pc int) string     { return self[pc].name }

func (self _Stream) Target(pc int) (int, bool) {
    to := self[pc].to
    return to, to >= 0 && to < len(self)
}

func ld(name string) _Op { return _Op { k: KindLoad, name: name, to: -1 } }
func st(name string) _Op { return _Op { k: KindStore, name: name, to: -1 } }
func jmp(to int)     _Op { return _Op { k: KindJump, to: to } }
func ret()           _Op { return _Op { k: KindReturn, to: -1 } }
func nop()           _Op { return _Op { k: KindNone, to: -1 } }

// naive is a plain map rendition of the analysis. Forks are cached by the
// sorted contents of the state, and a cached fork yields the reads of the
// snapshot stored for it.
func naive(s Stream, start int, stop int) VarSet {
    type _Path struct {
        reads   map[string]bool
        writes  map[string]bool
        visited map[int]bool
    }

    clone := func(p *_Path) *_Path {
        r := &_Path { map[string]bool{}, map[string]bool{}, map[int]bool{} }
        for k := range p.reads   { r.reads[k] = true }
        for k := range p.writes  { r.writes[k] = true }
        for k := range p.visited { r.visited[k] = true }
        return r
    }

    key := func(p *_Path, pc int, taken bool) string {
        rs := make([]string, 0, len(p.reads))
        ws := make([]string, 0, len(p.writes))
        vs := make([]int, 0, len(p.visited))
        for k := range p.reads   { rs = append(rs, k) }
        for k := range p.writes  { ws = append(ws, k) }
        for k := range p.visited { vs = append(vs, k) }
        sort.Strings(rs)
        sort.Strings(ws)
        sort.Ints(vs)
        return fmt.Sprint(pc, taken, rs, ws, vs)
    }

    vars := func(m map[string]bool) VarSet {
        ret := VarSet{}
        for k := range m { ret.add(k) }
        return ret
    }

    if stop < 0 || stop > s.Len() {
        stop = s.Len()
    }

    root := &_Path { map[string]bool{}, map[string]bool{}, map[int]bool{} }
    cache := map[string]*_Path { key(root, start, true): root }

    var walk func(p *_Path, pc int) VarSet
    var fork func(p *_Path, pc int, taken bool, next int) VarSet

    fork = func(p *_Path, pc int, taken bool, next int) VarSet {
        k := key(p, pc, taken)
        if c, ok := cache[k]; ok {
            return vars(c.reads)
        }
        c := clone(p)
        cache[k] = c
        return walk(c, next)
    }

    walk = func(p *_Path, pc int) VarSet {
        for i := pc; i < stop; i++ {
            if p.visited[i] {
                continue
            }
            p.visited[i] = true
            switch s.Kind(i) {
                case KindLoad   : if !p.writes[s.Name(i)] { p.reads[s.Name(i)] = true }
                case KindStore  : p.writes[s.Name(i)] = true
                case KindReturn : return vars(p.reads)
                case KindJump   : {
                    to, _ := s.Target(i)
                    ret := fork(p, i, false, i + 1)
                    for k := range fork(p, i, true, to) { ret.add(k) }
                    return ret
                }
            }
        }
        return VarSet{}
    }

    return walk(root, start)
}

var _Vars = []string { "a", "b", "c", "d", "x" }

// randomStream generates a well-formed stream, every jump has a target.
func randomStream(f *gofakeit.Faker, n int) _Stream {
    p := make(_Stream, n)
    for i := range p {
        switch f.Number(0, 9) {
            case 0, 1, 2 : p[i] = ld(f.RandomString(_Vars))
            case 3, 4    : p[i] = st(f.RandomString(_Vars))
            case 5, 6    : p[i] = jmp(f.Number(0, n - 1))
            case 7       : p[i] = ret()
            default      : p[i] = nop()
        }
    }
    return p
}

func randomCase(t *testing.T, seed int64) (_Stream, int, int) {
    f := gofakeit.New(seed)
    s := randomStream(f, f.Number(1, 14))
    start := f.Number(0, len(s) - 1)
    stop := -1

    /* sometimes bound the exploration */
    if f.Bool() {
        stop = f.Number(0, len(s))
    }

    t.Logf("seed=%d start=%d stop=%d stream=%v", seed, start, stop, s)
    return s, start, stop
}
