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
    `errors`
    `fmt`
)

// ErrInvalidStart is returned when the starting position lies outside the stream.
var ErrInvalidStart = errors.New("invalid start position")

// ErrInvalidStop is returned for a negative stop position other than -1.
var ErrInvalidStop = errors.New("invalid stop position")

// MalformedGraphError occurs when a jump target cannot be located in the
// instruction stream. The analysis is aborted, there is no partial result.
type MalformedGraphError struct {
    Pos int
}

func (self MalformedGraphError) Error() string {
    return fmt.Sprintf("MalformedGraphError: jump at position %d has no target in the instruction stream", self.Pos)
}

func einvstart(pc int, n int) error {
    return fmt.Errorf("%w: %d is not in [0, %d)", ErrInvalidStart, pc, n)
}

func einvstop(pc int) error {
    return fmt.Errorf("%w: %d, use -1 for the end of the stream", ErrInvalidStop, pc)
}
