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
    `github.com/cloudwego/gcnopt/internal/gcn/isa`
)

// CmpZeroElim removes scalar compare-with-zero instructions made redundant
// by an earlier scalar ALU op that already left an equivalent scc:
//
//    sN, scc = s_bfe_u32 ...        (scc := result != 0)
//    scc     = s_cmp_eq_u32 sN, 0
//    p_cbranch_z scc
//
// becomes
//
//    sN, scc = s_bfe_u32 ...
//    p_cbranch_nz scc
//
// The rewrite runs in two steps. On the compare itself, the sN operand is
// redirected to the ALU's scc definition when both sN and scc were last
// written by the same instruction, turning the compare into
// `s_cmp_{eq,lg}_u32 scc, 0`. On a later branch or cselect whose scc comes
// from such a compare, the compare is bypassed entirely, flipping the
// consumer's sense for the eq predicate (the ALU's scc means "nonzero").
// The compare then dies in the cleanup sweep. Any intervening scc write
// breaks the last-writer checks and skips the fold.
type CmpZeroElim struct{}

func (self CmpZeroElim) Apply(ctx *Ctx, p *ir.Instruction) {
    if p.Fmt == isa.SOPC {
        self.compare(ctx, p)
    } else if p.IsBranch() || p.Op == isa.OP_s_cselect_b32 || p.Op == isa.OP_s_cselect_b64 {
        self.consumer(ctx, p)
    }
}

func (CmpZeroElim) compare(ctx *Ctx, p *ir.Instruction) {
    if _, ok := p.Op.ScalarCmp(); !ok || len(p.Args) != 2 {
        return
    }

    /* keep the constant in operand 1 */
    if p.Args[0].Const && !p.Args[1].Const {
        p.Args[0], p.Args[1] = p.Args[1], p.Args[0]
    }
    if !p.Args[1].Const || p.Args[1].Val != 0 || p.Args[0].Temp == 0 {
        return
    }

    /* unsafe when the compared value has other users */
    if ctx.uses.Count(p.Args[0].Temp) > 1 {
        return
    }

    /* the operand and scc must both come from the same instruction,
     * otherwise something overwrote scc in between */
    aw := ctx.wm.LastWriterOp(p.Args[0])
    sw := ctx.wm.LastWriter(ir.Scc, 1)
    ai, ok := aw.Written()
    if !ok {
        return
    }
    if si, ok := sw.Written(); !ok || si != ai {
        return
    }

    /* the writer must be a scalar ALU whose secondary scc def
     * means "result != 0" */
    alu := ctx.at(ai)
    if !alu.Op.SetsSccNonZero() {
        return
    }
    if len(alu.Defs) < 2 || alu.Defs[1].Reg != ir.Scc {
        return
    }

    /* compare the ALU's scc against zero instead of the full result */
    ctx.uses.Decr(p.Args[0].Temp)
    p.Args[0] = ir.Operand { Temp: alu.Defs[1].Temp, Reg: ir.Scc, Class: ir.S1 }
    ctx.uses.Incr(p.Args[0].Temp)
    p.Op = p.Op.Narrow32()
}

func (CmpZeroElim) consumer(ctx *Ctx, p *ir.Instruction) {
    /* branches read scc as operand 0, cselect as operand 2 */
    idx := 0
    if !p.IsBranch() {
        idx = 2
    }
    if len(p.Args) <= idx || p.Args[idx].Reg != ir.Scc || p.Args[idx].Temp == 0 {
        return
    }
    if ctx.uses.Count(p.Args[idx].Temp) > 1 {
        return
    }

    /* scc must come from a compare already reduced to `s_cmp scc, 0` */
    ci, ok := ctx.wm.LastWriterOp(p.Args[idx]).Written()
    if !ok {
        return
    }
    cmp := ctx.at(ci)
    nfo, ok := cmp.Op.ScalarCmp()
    if !ok || len(cmp.Args) != 2 {
        return
    }
    if cmp.Args[0].Reg != ir.Scc || cmp.Args[0].Temp == 0 || !cmp.Args[1].Const || cmp.Args[1].Val != 0 {
        return
    }

    /* the producer's scc means "nonzero"; `eq, 0` inverted that, so
     * bypassing the compare flips the consumer. A branch has an inverted
     * opcode; a cselect swaps its two value operands instead. */
    if nfo.Pred == isa.CmpEq {
        if p.IsBranch() {
            p.Op = p.Op.InvertBranch()
        } else {
            p.Args[0], p.Args[1] = p.Args[1], p.Args[0]
        }
    }

    /* read the ALU's scc directly */
    ctx.uses.Decr(p.Args[idx].Temp)
    p.Args[idx] = cmp.Args[0]
    ctx.uses.Incr(p.Args[idx].Temp)
}
