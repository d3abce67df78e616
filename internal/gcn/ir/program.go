/*
 * Copyright 2023 CloudWeGo Authors
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

package ir

import (
    `strings`

    `github.com/cloudwego/gcnopt/internal/gcn/isa`
)

// Program is an ordered sequence of basic blocks plus the program-wide
// hardware metadata the optimizer queries.
type Program struct {
    Gen    isa.Gen
    Wave64 bool
    Temps  int
    Blocks []*Block
}

// MaskSize is the wave mask width in dwords: 1 on wave32, 2 on wave64.
// Mixed-mode programs do not exist in this IR.
func (self *Program) MaskSize() uint8 {
    if self.Wave64 {
        return 2
    } else {
        return 1
    }
}

// MaskClass is the scalar register class of the wave mask.
func (self *Program) MaskClass() RegClass {
    if self.Wave64 {
        return S2
    } else {
        return S1
    }
}

// NumIns counts the live instruction slots across all blocks.
func (self *Program) NumIns() int {
    n := 0
    for _, bb := range self.Blocks {
        for _, v := range bb.Ins {
            if v != nil {
                n++
            }
        }
    }
    return n
}

func (self *Program) String() string {
    buf := make([]string, 0, len(self.Blocks))
    for _, bb := range self.Blocks {
        buf = append(buf, bb.String())
    }
    return strings.Join(buf, "\n")
}
