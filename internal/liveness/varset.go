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
    `fmt`
    `sort`
    `strings`
)

// VarSet is a set of variable names.
type VarSet map[string]struct{}

func (self VarSet) add(name string) {
    self[name] = struct{}{}
}

// Has reports whether name is in the set.
func (self VarSet) Has(name string) bool {
    _, ok := self[name]
    return ok
}

// Sorted returns the names in lexical order.
func (self VarSet) Sorted() []string {
    ret := make([]string, 0, len(self))
    for name := range self {
        ret = append(ret, name)
    }
    sort.Strings(ret)
    return ret
}

func (self VarSet) String() string {
    return fmt.Sprintf(
        "{%s}",
        strings.Join(self.Sorted(), ", "),
    )
}
