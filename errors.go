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
)

// MalformedGraphError occurs when a jump target cannot be located in the
// instruction stream.
type MalformedGraphError = liveness.MalformedGraphError

// SyntaxError occurs when Assemble fails to parse a line.
type SyntaxError = atm.SyntaxError

// ErrInvalidStop is wrapped by the error returned for a negative stop
// position other than -1.
var ErrInvalidStop = liveness.ErrInvalidStop

// ErrInvalidStart is wrapped by the error returned for a start position
// outside the stream.
var ErrInvalidStart = liveness.ErrInvalidStart
