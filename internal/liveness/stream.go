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

// Kind is the category of an instruction as far as the analyzer is concerned.
type Kind uint8

const (
    KindNone Kind = iota    // no effect on liveness
    KindLoad                // reads a named variable
    KindStore               // overwrites a named variable
    KindJump                // conditional or unconditional jump
    KindReturn              // leaves the stream
)

var kindNames = [...]string {
    KindNone   : "none",
    KindLoad   : "load",
    KindStore  : "store",
    KindJump   : "jump",
    KindReturn : "return",
}

func (self Kind) String() string {
    if int(self) < len(kindNames) {
        return kindNames[self]
    } else {
        return "kind(?)"
    }
}

// Stream is an indexable instruction sequence. The analyzer only queries it,
// it never retains or modifies it.
type Stream interface {
    // Len returns the number of instructions.
    Len() int

    // Kind classifies the instruction at pc.
    Kind(pc int) Kind

    // Name returns the variable operand of a load or store at pc.
    Name(pc int) string

    // Target resolves the jump at pc into the position of the instruction
    // it jumps to, ok is false when the target is not part of the stream.
    Target(pc int) (to int, ok bool)
}
