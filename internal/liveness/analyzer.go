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
    `io`
    `log/slog`

    `github.com/cloudwego/liveread/debug`
    `github.com/cloudwego/liveread/internal/opts`
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type _Branch struct {
    pc    int
    taken bool
    done  bool
    state *State
    reads bitset
}

// cached is what a later fork with the same key receives: the reads its
// snapshot collected while being walked, not the value the walk returned.
// The two differ when the walk ran out of range or ended in another fork.
func (self *_Branch) cached() bitset {
    return self.state.reads
}

func (self *_Branch) finish(rs bitset) {
    self.done = true
    self.reads = rs
}

// Analyzer holds everything one live-read analysis needs. It is discarded
// once the analysis returns.
type Analyzer struct {
    s     Stream
    n     int
    stop  int
    ids   map[string]int
    names []string
    tabs  map[int]int
    cache map[string]*_Branch
    order []*_Branch
    log   *slog.Logger
    stats debug.Stats
}

func newAnalyzer(s Stream, o *opts.Options) *Analyzer {
    n := s.Len()
    ret := &Analyzer {
        s     : s,
        n     : n,
        stop  : o.Bound(n),
        ids   : make(map[string]int),
        tabs  : make(map[int]int),
        cache : make(map[string]*_Branch),
        log   : o.Logger,
    }

    /* fall back to the silent logger */
    if ret.log == nil {
        ret.log = discard
    }

    /* intern every variable name in the stream */
    for pc := 0; pc < n; pc++ {
        if k := s.Kind(pc); k == KindLoad || k == KindStore {
            ret.intern(s.Name(pc))
        }
    }
    return ret
}

func (self *Analyzer) intern(name string) int {
    if id, ok := self.ids[name]; ok {
        return id
    } else {
        id = len(self.names)
        self.ids[name] = id
        self.names = append(self.names, name)
        return id
    }
}

func (self *Analyzer) none() bitset {
    return newBitset(len(self.names))
}

func (self *Analyzer) target(pc int) (int, error) {
    if to, ok := self.tabs[pc]; ok {
        return to, nil
    } else if to, ok = self.s.Target(pc); !ok || to < 0 || to >= self.n {
        return 0, MalformedGraphError { Pos: pc }
    } else {
        self.tabs[pc] = to
        return to, nil
    }
}

func (self *Analyzer) insert(key string, br *_Branch) {
    self.cache[key] = br
    self.order = append(self.order, br)
}

// step applies the instruction at pc to st, and returns its kind.
func (self *Analyzer) step(st *State, pc int) Kind {
    k := self.s.Kind(pc)

    /* only loads and stores change the state */
    switch k {
        case KindLoad  : if id := self.ids[self.s.Name(pc)]; !st.writes.has(id) { st.reads.add(id) }
        case KindStore : st.writes.add(self.ids[self.s.Name(pc)])
    }
    return k
}

// lookup finds the cached branch for the fork (pc, taken) of st, or creates
// one with an independent snapshot of st when the fork was never explored.
func (self *Analyzer) lookup(st *State, pc int, taken bool) (*_Branch, bool) {
    key := st.key(pc, taken)
    br, ok := self.cache[key]

    /* seen this fork before */
    if ok {
        self.stats.Cache.Hit++
        self.log.Debug("fork cached", "pc", pc, "taken", taken)
        return br, true
    }

    /* new branch */
    br = &_Branch { pc: pc, taken: taken, state: st.clone() }
    self.insert(key, br)
    self.stats.Cache.Miss++
    self.log.Debug("fork", "pc", pc, "taken", taken)
    return br, false
}

func (self *Analyzer) depth(d int) {
    if d > self.stats.MaxDepth {
        self.stats.MaxDepth = d
    }
}

func (self *Analyzer) vars(rs bitset) VarSet {
    ret := make(VarSet, rs.count())
    rs.each(func(i int) { ret.add(self.names[i]) })
    return ret
}

func (self *Analyzer) sorted(vs bitset) []string {
    return self.vars(vs).Sorted()
}

func (self *Analyzer) dump(w io.Writer) {
    buf := make([]debug.Branch, 0, len(self.order))
    for _, br := range self.order {
        vis := make([]int, 0, br.state.visited.count())
        br.state.visited.each(func(i int) { vis = append(vis, i) })
        buf = append(buf, debug.Branch {
            Pc      : br.pc,
            Taken   : br.taken,
            Reads   : self.sorted(br.state.reads),
            Writes  : self.sorted(br.state.writes),
            Visited : vis,
            Result  : self.sorted(br.reads),
            Done    : br.done,
        })
    }
    debug.Dump(w, buf)
}

// Analyze computes the set of variables that may be read, before being
// overwritten, on any path starting at start and staying below o.Stop.
func Analyze(s Stream, start int, o opts.Options) (VarSet, error) {
    var err error
    var rs  bitset

    /* validate the starting position */
    if n := s.Len(); start < 0 || start >= n {
        return nil, einvstart(start, n)
    }

    /* -1 is the only negative bound */
    if o.Stop < -1 {
        return nil, einvstop(o.Stop)
    }

    /* the initial walk is the taken continuation of the root state */
    self := newAnalyzer(s, &o)
    root := newState(len(self.names), self.n)
    self.insert(root.key(start, true), &_Branch { pc: start, taken: true, state: root })

    /* choose the walker */
    if self.stats.Worklist = o.UseWorklist(self.n); self.stats.Worklist {
        rs, err = self.iterate(root, start)
    } else {
        rs, err = self.walk(root, start, 0)
    }

    /* abort on malformed streams */
    if err != nil {
        self.log.Error("analysis aborted", "start", start, "error", err)
        return nil, err
    }

    /* mark the seeded root as done */
    self.order[0].finish(rs)
    self.stats.Cache.Size = len(self.cache)

    /* report */
    self.log.Debug("analysis done",
        "start"    , start,
        "stop"     , self.stop,
        "reads"    , rs.count(),
        "walks"    , self.stats.Walks,
        "hits"     , self.stats.Cache.Hit,
        "misses"   , self.stats.Cache.Miss,
        "worklist" , self.stats.Worklist,
    )

    /* export statistics and cache dump if requested */
    if o.Stats != nil {
        *o.Stats = self.stats
    }
    if o.Dump != nil {
        self.dump(o.Dump)
    }
    return self.vars(rs), nil
}
