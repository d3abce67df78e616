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
    `fmt`
    `strings`
)

// Block is an ordered list of instruction slots. A slot may be nil, meaning
// the instruction has been blanked by a rewriter; the cleanup sweep after
// the forward pass drops blank and dead slots for good.
type Block struct {
    Id   int
    Ins  []*Instruction
    Succ []int
}

func (self *Block) String() string {
    buf := []string { fmt.Sprintf("bb_%d:", self.Id) }
    for i, v := range self.Ins {
        if v == nil {
            buf = append(buf, fmt.Sprintf("%06x |     (removed)", i))
        } else {
            buf = append(buf, fmt.Sprintf("%06x |     %s", i, v))
        }
    }
    return strings.Join(buf, "\n")
}
