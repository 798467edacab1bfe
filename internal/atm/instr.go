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

    `github.com/cloudwego/liveread/internal/liveness`
)

type OpCode byte

const (
    OP_nop OpCode = iota    // no operation
    OP_ldc                  // Iv -> push
    OP_ldl                  // local[Sv] -> push
    OP_stl                  // pop -> local[Sv]
    OP_ldf                  // free[Sv] -> push
    OP_stf                  // pop -> free[Sv]
    OP_del                  // unbind local[Sv]
    OP_add                  // pop2, a + b -> push
    OP_sub                  // pop2, a - b -> push
    OP_mul                  // pop2, a * b -> push
    OP_cmp                  // pop2, cmp(a, b, Iv) -> push
    OP_call                 // pop Iv args and the callee, result -> push
    OP_pop                  // pop
    OP_dup                  // top -> push
    OP_jmp                  // Br.PC -> PC
    OP_bt                   // if (pop) Br.PC -> PC
    OP_bf                   // if (!pop) Br.PC -> PC
    OP_iter                 // if (next(top) is exhausted) Br.PC -> PC
    OP_ret                  // return pop
    OP_raise                // raise pop
)

type Instr struct {
    Op OpCode
    Iv int64
    Sv string
    Br *Instr
    Ln *Instr
}

func (self *Instr) iv(v int64)  *Instr { self.Iv = v; return self }
func (self *Instr) sv(v string) *Instr { self.Sv = v; return self }

func (self *Instr) isBranch() bool {
    return self.Op >= OP_jmp && self.Op <= OP_iter
}

func (self *Instr) isTerminal() bool {
    return self.Op == OP_ret || self.Op == OP_raise
}

// Kind classifies the instruction for live-read analysis. Instructions that
// neither name a variable nor transfer control are liveness.KindNone.
func (self *Instr) Kind() liveness.Kind {
    switch self.Op {
        case OP_ldl, OP_ldf                  : return liveness.KindLoad
        case OP_stl, OP_stf                  : return liveness.KindStore
        case OP_jmp, OP_bt, OP_bf, OP_iter   : return liveness.KindJump
        case OP_ret                          : return liveness.KindReturn
        default                              : return liveness.KindNone
    }
}

func (self *Instr) formatRefs(refs map[*Instr]string, v *Instr) string {
    if vv, ok := refs[v]; ok {
        return vv
    } else {
        return fmt.Sprintf("@%p", v)
    }
}

func (self *Instr) disassemble(refs map[*Instr]string) string {
    switch self.Op {
        case OP_nop   : return "nop"
        case OP_ldc   : return fmt.Sprintf("ldc     $%d", self.Iv)
        case OP_ldl   : return fmt.Sprintf("ldl     %s", self.Sv)
        case OP_stl   : return fmt.Sprintf("stl     %s", self.Sv)
        case OP_ldf   : return fmt.Sprintf("ldf     %s", self.Sv)
        case OP_stf   : return fmt.Sprintf("stf     %s", self.Sv)
        case OP_del   : return fmt.Sprintf("del     %s", self.Sv)
        case OP_add   : return "add"
        case OP_sub   : return "sub"
        case OP_mul   : return "mul"
        case OP_cmp   : return fmt.Sprintf("cmp     $%d", self.Iv)
        case OP_call  : return fmt.Sprintf("call    $%d", self.Iv)
        case OP_pop   : return "pop"
        case OP_dup   : return "dup"
        case OP_jmp   : return fmt.Sprintf("jmp     %s", self.formatRefs(refs, self.Br))
        case OP_bt    : return fmt.Sprintf("bt      %s", self.formatRefs(refs, self.Br))
        case OP_bf    : return fmt.Sprintf("bf      %s", self.formatRefs(refs, self.Br))
        case OP_iter  : return fmt.Sprintf("iter    %s", self.formatRefs(refs, self.Br))
        case OP_ret   : return "ret"
        case OP_raise : return "raise"
        default       : panic(fmt.Sprintf("invalid OpCode: 0x%02x", self.Op))
    }
}
