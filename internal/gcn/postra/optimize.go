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

// Rewriter matches one idiomatic instruction sequence and rewrites the
// candidate instruction in place. A rewriter observes the write map as it
// was just before the candidate executes, and may only decrement or
// transfer use counts; it never moves or deletes instructions.
type Rewriter interface {
    Apply(ctx *Ctx, p *ir.Instruction)
}

type _RewriterDescriptor struct {
    rw   Rewriter
    desc string
}

var _rewriters = [...]_RewriterDescriptor {
    { desc: "Branch on VCC"                 , rw: new(BranchVCC) },
    { desc: "Compare-with-Zero Elimination" , rw: new(CmpZeroElim) },
}

// Optimize runs the post-RA peephole pass over the whole program, in
// place. Every block is walked in program order exactly once; a final
// sweep removes instructions whose definitions are no longer used.
func Optimize(p *ir.Program) {
    OptimizeWithUses(p, CountUses(p))
}

// OptimizeWithUses is Optimize with a caller-supplied use-count vector,
// for callers that already ran the dead-code analysis.
func OptimizeWithUses(p *ir.Program, uses UseCounts) {
    ctx := newCtx(p, uses)

    /* Forward pass
     * Goes through each instruction exactly once, and can rewrite
     * instructions or adjust the use counts of temporaries. Writes of the
     * current instruction are recorded only after the rewriters ran, so
     * the write map answers "what was written earlier in this block". */
    for _, bb := range p.Blocks {
        ctx.resetBlock(bb)
        for _, v := range bb.Ins {
            ctx.idx++
            if v == nil {
                continue
            }
            for _, r := range _rewriters {
                r.rw.Apply(ctx, v)
            }
            for _, d := range v.Defs {
                ctx.wm.Record(d, ctx.idx)
            }
        }
    }

    /* Cleanup pass
     * Gets rid of instructions which were blanked by a rewriter or no
     * longer have any used definitions. */
    for _, bb := range p.Blocks {
        ins := bb.Ins[:0]
        for _, v := range bb.Ins {
            if v != nil && !ctx.uses.IsDead(v) {
                ins = append(ins, v)
            }
        }
        bb.Ins = ins
    }
}
