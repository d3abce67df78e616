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

// BranchVCC folds
//
//    vcc        = v_cmp_* ...
//    sN, scc    = s_and_b64 vcc, exec
//    p_cbranch_z scc
//
// into
//
//    vcc        = v_cmp_* ...
//    p_cbranch_z vcc
//
// The hardware can branch on the wavewide-zero flag of vcc directly, and a
// VOPC result has already been masked by exec, so the AND only existed to
// produce an scc for the branch. Valid only while vcc and exec are
// undisturbed between the compare and the branch; the AND is left in place
// and dies in the cleanup sweep once nothing reads its scc.
type BranchVCC struct{}

// vccz can be stale after scalar memory ops on GFX6/7, so the fold is
// disabled there.
const _MinBranchVCCGen = isa.GFX8

func (BranchVCC) Apply(ctx *Ctx, p *ir.Instruction) {
    if ctx.prog.Gen < _MinBranchVCCGen {
        return
    }
    if !p.IsBranch() || len(p.Args) == 0 || p.Args[0].Reg != ir.Scc {
        return
    }

    /* the scc operand, vcc and exec must each have a single known writer,
     * except exec which may also be untouched in this block */
    mask := ctx.prog.MaskSize()
    aw := ctx.wm.LastWriterOp(p.Args[0])
    vw := ctx.wm.LastWriter(ir.Vcc, mask)
    ew := ctx.wm.LastWriter(ir.Exec, mask)

    ai, ok := aw.Written()
    if !ok {
        return
    }
    vi, ok := vw.Written()
    if !ok || vi > ai {
        return
    }
    if ei, ok := ew.Written(); ok {
        if ei > vi {
            return
        }
    } else if ew != NotWritten {
        return
    }

    /* scc must come from the wave-mask AND of vcc and exec,
     * and vcc itself from a vector compare */
    and := ctx.at(ai)
    if !and.Op.IsScalarAndWavemask(ctx.prog.Wave64) || len(and.Args) != 2 {
        return
    }
    if and.Args[0].Reg != ir.Vcc || and.Args[1].Reg != ir.Exec {
        return
    }
    if !ctx.at(vi).Op.IsVectorCompare() {
        return
    }
    if debugChecks && ctx.at(vi).Defs[0].Temp != and.Args[0].Temp {
        panic("postra: vcc operand of the AND does not reference the compare result")
    }

    /* branch on the vccz flag instead of scc */
    ctx.uses.Decr(p.Args[0].Temp)
    p.Args[0] = and.Args[0]
}
