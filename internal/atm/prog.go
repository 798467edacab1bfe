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

package atm

import (
    `fmt`
    `strings`

    `github.com/cloudwego/liveread/internal/liveness`
)

// Program is a built instruction stream, indexable by position.
type Program []*Instr

func (self Program) Free() {
    for _, v := range self { freeInstr(v) }
    freeProgram(self)
}

func (self Program) Len() int {
    return len(self)
}

func (self Program) Kind(pc int) liveness.Kind {
    return self[pc].Kind()
}

func (self Program) Name(pc int) string {
    return self[pc].Sv
}

// Target returns the position of the instruction the jump at pc branches to.
func (self Program) Target(pc int) (int, bool) {
    br := self[pc].Br

    /* jump without a target */
    if br == nil {
        return 0, false
    }

    /* search by identity */
    for i, p := range self {
        if p == br {
            return i, true
        }
    }

    /* target does not belong to this program */
    return 0, false
}

// Labels names every jump target by its position.
func (self Program) Labels() map[*Instr]string {
    ret := make(map[*Instr]string)
    for _, p := range self {
        if p.isBranch() && p.Br != nil {
            ret[p.Br] = ""
        }
    }
    for i, p := range self {
        if _, ok := ret[p]; ok {
            ret[p] = fmt.Sprintf("L_%d", i)
        }
    }
    return ret
}

// Disassemble renders the program one instruction per line, prefixed by its
// position, with a label line before every jump target.
func (self Program) Disassemble() string {
    refs := self.Labels()
    ret := make([]string, 0, len(self) + len(refs))

    /* dump every instruction */
    for i, p := range self {
        if lb, ok := refs[p]; ok {
            ret = append(ret, lb + ":")
        }
        ret = append(ret, fmt.Sprintf("%4d    %s", i, p.disassemble(refs)))
    }

    /* join them together */
    return strings.Join(ret, "\n")
}

type ProgramBuilder struct {
    head  *Instr
    tail  *Instr
    refs  map[string]*Instr
    pends map[string][]*Instr
}

func CreateProgramBuilder() *ProgramBuilder {
    return newProgramBuilder()
}

func (self *ProgramBuilder) add(ins *Instr) *Instr {
    self.push(ins)
    return ins
}

func (self *ProgramBuilder) jmp(p *Instr, to string) *Instr {
    var ok bool
    var lb *Instr

    /* check for backward jumps */
    if lb, ok = self.refs[to]; !ok {
        self.pends[to] = append(self.pends[to], p)
    }

    /* add to instruction buffer */
    p.Br = lb
    return self.add(p)
}

func (self *ProgramBuilder) push(ins *Instr) {
    if self.head == nil {
        self.head = ins
        self.tail = ins
    } else {
        self.tail.Ln = ins
        self.tail    = ins
    }
}

func (self *ProgramBuilder) Label(to string) {
    var p *Instr
    var v []*Instr

    /* check for duplications */
    if _, ok := self.refs[to]; ok {
        panic("label " + to + " has already been linked")
    }

    /* get the pending links */
    p = self.NOP()
    v = self.pends[to]

    /* patch all the pending jumps */
    for _, q := range v {
        q.Br = p
    }

    /* mark the label as resolved */
    self.refs[to] = p
    delete(self.pends, to)
}

// Build links the program. A label placed after the last instruction has
// nothing to land on, jumps to it are left without a target.
func (self *ProgramBuilder) Build() (r Program) {
    var n int
    var p *Instr

    /* check for unresolved labels */
    for key := range self.pends {
        panic("labels are not fully resolved: " + key)
    }

    /* adjust jumps to point at actual instructions */
    for p = self.head; p != nil; p = p.Ln {
        if p.isBranch() {
            for p.Br.Ln != nil && p.Br.Op == OP_nop {
                p.Br = p.Br.Ln
            }
            if p.Br.Op == OP_nop {
                p.Br = nil
            }
        }
    }

    /* remove NOPs at the front */
    for self.head != nil && self.head.Op == OP_nop {
        self.head = self.head.Ln
    }

    /* no instructions left, the program was composed entirely by NOPs */
    if self.head == nil {
        self.tail = nil
        freeProgramBuilder(self)
        return nil
    }

    /* remove all the NOPs, there should be no jumps pointing to any NOPs */
    for p = self.head; p != nil; p, n = p.Ln, n + 1 {
        for p.Ln != nil && p.Ln.Op == OP_nop {
            p.Ln = p.Ln.Ln
        }
    }

    /* allocate space for result */
    p = self.head
    r = newProgram(n)

    /* dump the instructions */
    for p != nil {
        r = append(r, p)
        p = p.Ln
    }

    /* the ProgramBuilder's life-time ends here */
    freeProgramBuilder(self)
    return
}

func (self *ProgramBuilder) NOP() *Instr {
    return self.add(newInstr(OP_nop))
}

func (self *ProgramBuilder) LDC(v int64) *Instr {
    return self.add(newInstr(OP_ldc).iv(v))
}

func (self *ProgramBuilder) LDL(name string) *Instr {
    return self.add(newInstr(OP_ldl).sv(name))
}

func (self *ProgramBuilder) STL(name string) *Instr {
    return self.add(newInstr(OP_stl).sv(name))
}

func (self *ProgramBuilder) LDF(name string) *Instr {
    return self.add(newInstr(OP_ldf).sv(name))
}

func (self *ProgramBuilder) STF(name string) *Instr {
    return self.add(newInstr(OP_stf).sv(name))
}

func (self *ProgramBuilder) DEL(name string) *Instr {
    return self.add(newInstr(OP_del).sv(name))
}

func (self *ProgramBuilder) ADD() *Instr {
    return self.add(newInstr(OP_add))
}

func (self *ProgramBuilder) SUB() *Instr {
    return self.add(newInstr(OP_sub))
}

func (self *ProgramBuilder) MUL() *Instr {
    return self.add(newInstr(OP_mul))
}

func (self *ProgramBuilder) CMP(cond int64) *Instr {
    return self.add(newInstr(OP_cmp).iv(cond))
}

func (self *ProgramBuilder) CALL(argc int64) *Instr {
    return self.add(newInstr(OP_call).iv(argc))
}

func (self *ProgramBuilder) POP() *Instr {
    return self.add(newInstr(OP_pop))
}

func (self *ProgramBuilder) DUP() *Instr {
    return self.add(newInstr(OP_dup))
}

func (self *ProgramBuilder) JMP(to string) *Instr {
    return self.jmp(newInstr(OP_jmp), to)
}

func (self *ProgramBuilder) BT(to string) *Instr {
    return self.jmp(newInstr(OP_bt), to)
}

func (self *ProgramBuilder) BF(to string) *Instr {
    return self.jmp(newInstr(OP_bf), to)
}

func (self *ProgramBuilder) ITER(to string) *Instr {
    return self.jmp(newInstr(OP_iter), to)
}

func (self *ProgramBuilder) RET() *Instr {
    return self.add(newInstr(OP_ret))
}

func (self *ProgramBuilder) RAISE() *Instr {
    return self.add(newInstr(OP_raise))
}
