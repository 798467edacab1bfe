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

package opts

import (
    `testing`

    `github.com/stretchr/testify/require`
)

func TestOptions_Bound(t *testing.T) {
    o := GetDefaultOptions()
    require.Equal(t, 10, o.Bound(10))
    o.Stop = 4
    require.Equal(t, 4, o.Bound(10))
    o.Stop = 0
    require.Equal(t, 0, o.Bound(10))
    o.Stop = 11
    require.Equal(t, 10, o.Bound(10))
    o.Stop = -1
    require.Equal(t, 10, o.Bound(10))
}

func TestOptions_UseWorklist(t *testing.T) {
    o := Options { WorklistThreshold: 8 }
    require.False(t, o.UseWorklist(8))
    require.True(t, o.UseWorklist(9))
    o.WorklistThreshold = 0
    require.False(t, o.UseWorklist(1 << 20))
    o.Worklist = true
    require.True(t, o.UseWorklist(1))
}

func TestParseOrDefault(t *testing.T) {
    t.Setenv("LIVEREAD_TEST_THRESHOLD", "")
    require.Equal(t, 7, parseOrDefault("LIVEREAD_TEST_THRESHOLD", 7, 1))
    t.Setenv("LIVEREAD_TEST_THRESHOLD", "0x40")
    require.Equal(t, 64, parseOrDefault("LIVEREAD_TEST_THRESHOLD", 7, 1))
    t.Setenv("LIVEREAD_TEST_THRESHOLD", "1")
    require.Panics(t, func() { parseOrDefault("LIVEREAD_TEST_THRESHOLD", 7, 1) })
    t.Setenv("LIVEREAD_TEST_THRESHOLD", "many")
    require.Panics(t, func() { parseOrDefault("LIVEREAD_TEST_THRESHOLD", 7, 1) })
}
