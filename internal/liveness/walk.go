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

func (self *Analyzer) walk(st *State, pc int, depth int) (bitset, error) {
    self.stats.Walks++
    self.depth(depth)

    /* linear scan until the path forks or terminates */
    for i := pc; i < self.stop; i++ {
        if st.visited.has(i) {
            continue
        }

        /* mark as visited before applying */
        st.visited.add(i)

        /* jumps and returns end this walk */
        switch self.step(st, i) {
            case KindJump   : return self.branch(st, i, depth)
            case KindReturn : return st.reads, nil
        }
    }

    /* ran out of the range without reaching a return */
    return self.none(), nil
}

func (self *Analyzer) branch(st *State, pc int, depth int) (bitset, error) {
    var err error
    var rx  bitset
    var ry  bitset
    var to  int

    /* resolve the jump target */
    if to, err = self.target(pc); err != nil {
        return nil, err
    }

    /* fall through */
    if rx, err = self.fork(st, pc, false, pc + 1, depth); err != nil {
        return nil, err
    }

    /* jump taken */
    if ry, err = self.fork(st, pc, true, to, depth); err != nil {
        return nil, err
    }

    /* a variable read on either side is live */
    rs := rx.clone()
    rs.union(ry)
    return rs, nil
}

func (self *Analyzer) fork(st *State, pc int, taken bool, next int, depth int) (bitset, error) {
    br, ok := self.lookup(st, pc, taken)

    /* explored already */
    if ok {
        return br.cached(), nil
    }

    /* walk the branch with its own snapshot */
    rs, err := self.walk(br.state, next, depth + 1)
    if err != nil {
        return nil, err
    }

    /* the entry is immutable from now on */
    br.finish(rs)
    return rs, nil
}
