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
    `errors`
    `testing`

    `github.com/stretchr/testify/require`
)

const _LoopSource = `
# sum the items
    ldc     0
    stl     acc
    ldl     items
loop:
    iter    done
    stl     item
    ldl     acc
    ldl     item
    add
    stl     acc
    jmp     loop
done:
    ldl     acc
    ret
`

func TestAssemble_Loop(t *testing.T) {
    prog, err := Assemble(_LoopSource)
    require.NoError(t, err)
    require.Len(t, prog, 12)
    require.Equal(t, "" +
        "   0    ldc     $0\n" +
        "   1    stl     acc\n" +
        "   2    ldl     items\n" +
        "L_3:\n" +
        "   3    iter    L_10\n" +
        "   4    stl     item\n" +
        "   5    ldl     acc\n" +
        "   6    ldl     item\n" +
        "   7    add\n" +
        "   8    stl     acc\n" +
        "   9    jmp     L_3\n" +
        "L_10:\n" +
        "  10    ldl     acc\n" +
        "  11    ret",
        prog.Disassemble(),
    )
}

func TestAssemble_Errors(t *testing.T) {
    tests := []struct {
        name   string
        src    string
        line   int
        reason string
    } {
        { "unknown instruction" , "ldl a\nfrob x\n"     , 2, "unknown instruction: frob"          },
        { "missing operand"     , "ldl\n"               , 1, "ldl takes exactly one operand"      },
        { "extra operand"       , "ret 1\n"             , 1, "ret takes no operand"               },
        { "bad integer"         , "ldc x1\n"            , 1, "invalid integer: x1"                },
        { "bad variable"        , "stl 1a\n"            , 1, "invalid variable name: 1a"          },
        { "bad label"           , "l b:\n"              , 1, `invalid label: "l b"`               },
        { "duplicated label"    , "x:\nret\nx:\n"       , 3, "duplicated label: x"                },
        { "undefined labels"    , "bt b\njmp a\nret\n"  , 0, "undefined labels: a, b"             },
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            _, err := Assemble(tc.src)
            var e SyntaxError
            require.True(t, errors.As(err, &e), "unexpected error: %v", err)
            require.Equal(t, tc.line, e.Line)
            require.Equal(t, tc.reason, e.Reason)
        })
    }
}

func TestAssemble_CommentsAndCase(t *testing.T) {
    prog, err := Assemble("  LDL a   # load it\n\n\t# nothing here\nRet\n")
    require.NoError(t, err)
    require.Len(t, prog, 2)
    require.Equal(t, OP_ldl, prog[0].Op)
    require.Equal(t, "a", prog[0].Sv)
    require.Equal(t, OP_ret, prog[1].Op)
}

func TestAssemble_Empty(t *testing.T) {
    prog, err := Assemble("# nothing\n")
    require.NoError(t, err)
    require.Empty(t, prog)
}
