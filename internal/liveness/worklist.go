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
    `github.com/oleiade/lane`
)

type _Phase uint8

const (
    _P_scan _Phase = iota
    _P_fork0
    _P_wait0
    _P_fork1
    _P_wait1
    _P_done
)

// _Frame is one suspended walk of the explicit-stack walker.
type _Frame struct {
    br  *_Branch
    st  *State
    pc  int
    jmp int
    to  int
    ps  _Phase
    acc bitset
    out bitset
}

func (self *_Frame) merge(rs bitset) {
    switch self.ps {
        case _P_wait0: {
            self.acc = rs
            self.ps = _P_fork1
        }
        case _P_wait1: {
            self.out = self.acc.clone()
            self.out.union(rs)
            self.ps = _P_done
        }
        default: {
            panic("liveness: merging into a frame that is not waiting for a branch")
        }
    }
}

func (self *Analyzer) enter(stk *lane.Stack, br *_Branch, st *State, pc int) {
    stk.Push(&_Frame { br: br, st: st, pc: pc })
    self.stats.Walks++
    self.depth(stk.Size() - 1)
}

// scan runs the frame until it either reaches a jump or terminates.
func (self *Analyzer) scan(fp *_Frame) error {
    for i := fp.pc; i < self.stop; i++ {
        if fp.st.visited.has(i) {
            continue
        }

        /* mark as visited before applying */
        fp.st.visited.add(i)

        /* check for terminators */
        switch self.step(fp.st, i) {
            case KindJump: {
                to, err := self.target(i)
                if err != nil {
                    return err
                }
                fp.jmp = i
                fp.to  = to
                fp.ps  = _P_fork0
                return nil
            }
            case KindReturn: {
                fp.out = fp.st.reads
                fp.ps  = _P_done
                return nil
            }
        }
    }

    /* ran out of the range without reaching a return */
    fp.out = self.none()
    fp.ps  = _P_done
    return nil
}

// iterate is equivalent to walk, but keeps the suspended walks on a stack
// instead of the goroutine stack, so its depth is not limited by recursion.
func (self *Analyzer) iterate(root *State, start int) (bitset, error) {
    var ok  bool
    var ret bitset
    var stk *lane.Stack

    /* start with the root frame */
    stk = lane.NewStack()
    self.enter(stk, nil, root, start)

    /* run until every frame is done */
    for !stk.Empty() {
        fp := stk.Head().(*_Frame)

        /* deliver the result of the frame that just finished */
        if ok {
            ok = false
            fp.merge(ret)
        }

        /* advance the frame */
        switch fp.ps {
            case _P_scan: {
                if err := self.scan(fp); err != nil {
                    return nil, err
                }
            }

            /* fork into one of the two branches */
            case _P_fork0, _P_fork1: {
                taken := fp.ps == _P_fork1
                next := fp.jmp + 1

                /* branch target */
                if taken {
                    next = fp.to
                }

                /* wait for the branch result */
                fp.ps++
                br, hit := self.lookup(fp.st, fp.jmp, taken)

                /* explored already, the snapshot is immediately available */
                if hit {
                    fp.merge(br.cached())
                } else {
                    self.enter(stk, br, br.state, next)
                }
            }

            /* pop the frame and hand the result to the parent */
            case _P_done: {
                stk.Pop()
                ok, ret = true, fp.out

                /* the entry is immutable from now on */
                if fp.br != nil {
                    fp.br.finish(fp.out)
                }
            }

            default: {
                panic("liveness: frame is stuck waiting for a branch")
            }
        }
    }

    /* the root frame's result */
    return ret, nil
}
