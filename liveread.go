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

package liveread

import (
	"github.com/cloudwego/liveread/internal/atm"
	"github.com/cloudwego/liveread/internal/liveness"
	"github.com/cloudwego/liveread/internal/opts"
)

// Stream is an indexable instruction sequence that can classify its
// instructions and resolve its jumps.
type Stream = liveness.Stream

// Kind is the category of an instruction.
type Kind = liveness.Kind

const (
	KindNone   = liveness.KindNone
	KindLoad   = liveness.KindLoad
	KindStore  = liveness.KindStore
	KindJump   = liveness.KindJump
	KindReturn = liveness.KindReturn
)

// Set is a set of variable names.
type Set = liveness.VarSet

// Program is an instruction stream built by a Builder or by Assemble.
type Program = atm.Program

// Builder composes a Program from instructions and labels.
type Builder = atm.ProgramBuilder

// NewBuilder creates an empty Builder. The Builder must not be used after
// calling its Build method.
func NewBuilder() *Builder {
	return atm.CreateProgramBuilder()
}

// Assemble parses the text form of a program.
func Assemble(src string) (Program, error) {
	return atm.Assemble(src)
}

// Analyze returns the variables that may be read before being overwritten
// on some execution path starting at position start. Both directions of
// every jump are followed, backward jumps included, until a return
// instruction or the bound set by WithStop.
//
// A jump whose target cannot be resolved aborts the analysis with a
// MalformedGraphError.
func Analyze(s Stream, start int, options ...Option) (Set, error) {
	o := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&o)
	}
	return liveness.Analyze(s, start, o)
}
