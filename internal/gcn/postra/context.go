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

package postra

import (
    `github.com/cloudwego/gcnopt/internal/gcn/ir`
)

// debugChecks guards the programming-error assertions that exist only to
// catch earlier-pipeline bugs. Flip to false for release builds; the pass
// itself never depends on them.
const debugChecks = true

// Ctx bundles everything a rewriter may look at: the program, the block
// being walked, the index of the instruction the rewriter was invoked on,
// the write map and the use counts. The write map describes the state just
// before the current instruction executes.
type Ctx struct {
    prog *ir.Program
    blk  *ir.Block
    idx  int
    uses UseCounts
    wm   WriteMap
}

func newCtx(p *ir.Program, uses UseCounts) *Ctx {
    return &Ctx {
        prog: p,
        uses: uses,
    }
}

// resetBlock positions the context before the first instruction of bb and
// forgets all recorded writes.
func (self *Ctx) resetBlock(bb *ir.Block) {
    self.blk = bb
    self.idx = -1
    self.wm.Reset()
}

// at fetches an instruction of the current block by index.
func (self *Ctx) at(i int) *ir.Instruction {
    return self.blk.Ins[i]
}
