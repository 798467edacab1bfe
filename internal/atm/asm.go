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
    `sort`
    `strconv`
    `strings`
)

type _Operand uint8

const (
    _O_none _Operand = iota
    _O_int
    _O_name
    _O_label
)

type _Mnemonic struct {
    op OpCode
    av _Operand
}

var _Mnemonics = map[string]_Mnemonic {
    "nop"   : { OP_nop   , _O_none  },
    "ldc"   : { OP_ldc   , _O_int   },
    "ldl"   : { OP_ldl   , _O_name  },
    "stl"   : { OP_stl   , _O_name  },
    "ldf"   : { OP_ldf   , _O_name  },
    "stf"   : { OP_stf   , _O_name  },
    "del"   : { OP_del   , _O_name  },
    "add"   : { OP_add   , _O_none  },
    "sub"   : { OP_sub   , _O_none  },
    "mul"   : { OP_mul   , _O_none  },
    "cmp"   : { OP_cmp   , _O_int   },
    "call"  : { OP_call  , _O_int   },
    "pop"   : { OP_pop   , _O_none  },
    "dup"   : { OP_dup   , _O_none  },
    "jmp"   : { OP_jmp   , _O_label },
    "bt"    : { OP_bt    , _O_label },
    "bf"    : { OP_bf    , _O_label },
    "iter"  : { OP_iter  , _O_label },
    "ret"   : { OP_ret   , _O_none  },
    "raise" : { OP_raise , _O_none  },
}

// SyntaxError occurs when the assembler cannot parse a line.
type SyntaxError struct {
    Line   int
    Src    string
    Reason string
}

func (self SyntaxError) Error() string {
    return fmt.Sprintf("Syntax error at line %d: %s", self.Line, self.Reason)
}

func esyntax(line int, src string, reason string) SyntaxError {
    return SyntaxError {
        Line   : line,
        Src    : src,
        Reason : reason,
    }
}

func isident(s string) bool {
    for i, c := range s {
        if !(c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i != 0 && c >= '0' && c <= '9')) {
            return false
        }
    }
    return s != ""
}

// Assemble parses the text form of a program, one instruction or label per
// line. A line is "label:", or a mnemonic followed by at most one operand.
// Everything after '#' is a comment.
//
//     loop:
//         ldl     i
//         bf      done
//         jmp     loop
//     done:
//         ret
//
func Assemble(src string) (Program, error) {
    p := newProgramBuilder()
    seen := make(map[string]bool)

    /* parse line by line */
    for i, line := range strings.Split(src, "\n") {
        if err := assembleLine(p, seen, i + 1, line); err != nil {
            freeProgramBuilder(p)
            return nil, err
        }
    }

    /* every referenced label must have been defined */
    if len(p.pends) != 0 {
        keys := make([]string, 0, len(p.pends))
        for key := range p.pends {
            keys = append(keys, key)
        }
        sort.Strings(keys)
        freeProgramBuilder(p)
        return nil, esyntax(0, "", "undefined labels: " + strings.Join(keys, ", "))
    }

    /* link the program */
    return p.Build(), nil
}

func assembleLine(p *ProgramBuilder, seen map[string]bool, ln int, line string) error {
    src := line

    /* strip comments and blanks */
    if i := strings.IndexByte(line, '#'); i >= 0 {
        line = line[:i]
    }

    /* skip empty lines */
    if line = strings.TrimSpace(line); line == "" {
        return nil
    }

    /* labels */
    if strings.HasSuffix(line, ":") {
        lb := strings.TrimSpace(strings.TrimSuffix(line, ":"))
        if !isident(lb) {
            return esyntax(ln, src, "invalid label: " + strconv.Quote(lb))
        } else if seen[lb] {
            return esyntax(ln, src, "duplicated label: " + lb)
        } else {
            seen[lb] = true
            p.Label(lb)
            return nil
        }
    }

    /* split the mnemonic and its operand */
    fv := strings.Fields(line)
    mn, ok := _Mnemonics[strings.ToLower(fv[0])]

    /* check the mnemonic */
    if !ok {
        return esyntax(ln, src, "unknown instruction: " + fv[0])
    }

    /* check the operand count */
    if mn.av == _O_none && len(fv) != 1 {
        return esyntax(ln, src, fv[0] + " takes no operand")
    } else if mn.av != _O_none && len(fv) != 2 {
        return esyntax(ln, src, fv[0] + " takes exactly one operand")
    }

    /* emit the instruction */
    switch mn.av {
        case _O_none: {
            p.add(newInstr(mn.op))
        }
        case _O_int: {
            if v, err := strconv.ParseInt(fv[1], 0, 64); err != nil {
                return esyntax(ln, src, "invalid integer: " + fv[1])
            } else {
                p.add(newInstr(mn.op).iv(v))
            }
        }
        case _O_name: {
            if !isident(fv[1]) {
                return esyntax(ln, src, "invalid variable name: " + fv[1])
            } else {
                p.add(newInstr(mn.op).sv(fv[1]))
            }
        }
        case _O_label: {
            if !isident(fv[1]) {
                return esyntax(ln, src, "invalid label: " + fv[1])
            } else {
                p.jmp(newInstr(mn.op), fv[1])
            }
        }
    }
    return nil
}
