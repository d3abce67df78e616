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
    `testing`

    `github.com/cloudwego/gcnopt/internal/gcn/ir`
    `github.com/cloudwego/gcnopt/internal/gcn/isa`
    `github.com/stretchr/testify/require`
)

/* `s_cmp_eq x, 0` inverts the ALU's scc ("x != 0"), so eliminating the
 * compare flips the branch sense. */
func TestCmpZero_EqFlipsBranch(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0x40018))
    cmp := b.Emit(isa.OP_s_cmp_eq_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    br := b.Emit(isa.OP_p_cbranch_z, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    p := b.Build()

    Optimize(p)

    /* the compare is gone, the branch reads the bfe's scc with inverted sense */
    require.Equal(t, 2, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_nz, br.Op)
    require.Equal(t, ir.Scc, br.Args[0].Reg)
    require.Equal(t, bfe.Defs[1].Temp, br.Args[0].Temp)
    require.Same(t, br, p.Blocks[0].Ins[1])
}

/* `s_cmp_lg x, 0` matches the ALU's scc exactly, the branch sense stays. */
func TestCmpZero_LgKeepsBranch(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0x40018))
    cmp := b.Emit(isa.OP_s_cmp_lg_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    br := b.Emit(isa.OP_p_cbranch_z, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 2, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_z, br.Op)
    require.Equal(t, bfe.Defs[1].Temp, br.Args[0].Temp)
}

/* An intervening scc write between the ALU and the compare kills the fold. */
func TestCmpZero_InterveningSccWrite(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0x40018))
    add := b.Emit(isa.OP_s_add_u32, []ir.Definition { b.Def(1, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(5, ir.S1), ir.Const(1))
    cmp := b.Emit(isa.OP_s_cmp_eq_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    br := b.Emit(isa.OP_p_cbranch_z, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    b.Emit(isa.OP_exp, nil, ir.Tmp(add.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 5, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_z, br.Op)
    require.Equal(t, isa.OP_s_cmp_eq_u32, cmp.Op)
    require.Equal(t, bfe.Defs[0].Temp, cmp.Args[0].Temp)
    require.Equal(t, cmp.Defs[0].Temp, br.Args[0].Temp)
}

/* The ALU must be one whose scc means "result != 0"; a carry-writing
 * s_add does not qualify. */
func TestCmpZero_CarryWriterNoFold(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    add := b.Emit(isa.OP_s_add_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(1))
    cmp := b.Emit(isa.OP_s_cmp_eq_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(add.Defs[0]), ir.Const(0))
    br := b.Emit(isa.OP_p_cbranch_z, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 3, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_z, br.Op)
    require.Equal(t, cmp.Defs[0].Temp, br.Args[0].Temp)
}

/* 64-bit compares are narrowed to 32 bits when redirected to scc. */
func TestCmpZero_Narrow64(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u64, []ir.Definition { b.Def(0, ir.S2), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S2), ir.Const(0x40018))
    cmp := b.Emit(isa.OP_s_cmp_lg_u64, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    br := b.Emit(isa.OP_p_cbranch_nz, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 2, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_nz, br.Op)
    require.Equal(t, bfe.Defs[1].Temp, br.Args[0].Temp)
}

/* The constant may come first; the compare is canonicalized before
 * matching. */
func TestCmpZero_ConstFirst(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_and_b32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0xff))
    cmp := b.Emit(isa.OP_s_cmp_eq_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Const(0), ir.Tmp(bfe.Defs[0]))
    br := b.Emit(isa.OP_p_cbranch_z, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 2, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_nz, br.Op)
    require.Equal(t, bfe.Defs[1].Temp, br.Args[0].Temp)
}

/* A cselect consumes scc like a branch-if-nonzero; for the eq predicate
 * its two value operands are swapped instead of inverting an opcode. */
func TestCmpZero_CSelectEq(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0x40018))
    cmp := b.Emit(isa.OP_s_cmp_eq_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    sel := b.Emit(isa.OP_s_cselect_b32, []ir.Definition { b.Def(1, ir.S1) }, ir.Const(1), ir.Const(2), ir.Tmp(cmp.Defs[0]))
    b.Emit(isa.OP_exp, nil, ir.Tmp(sel.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 3, p.NumIns())
    require.Equal(t, uint64(2), sel.Args[0].Val)
    require.Equal(t, uint64(1), sel.Args[1].Val)
    require.Equal(t, ir.Scc, sel.Args[2].Reg)
    require.Equal(t, bfe.Defs[1].Temp, sel.Args[2].Temp)
}

func TestCmpZero_CSelectLg(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0x40018))
    cmp := b.Emit(isa.OP_s_cmp_lg_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    sel := b.Emit(isa.OP_s_cselect_b32, []ir.Definition { b.Def(1, ir.S1) }, ir.Const(1), ir.Const(2), ir.Tmp(cmp.Defs[0]))
    b.Emit(isa.OP_exp, nil, ir.Tmp(sel.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 3, p.NumIns())
    require.Equal(t, uint64(1), sel.Args[0].Val)
    require.Equal(t, uint64(2), sel.Args[1].Val)
    require.Equal(t, bfe.Defs[1].Temp, sel.Args[2].Temp)
}

/* With two consumers of the compare result the fold is unsafe and skipped. */
func TestCmpZero_MultipleUsers(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0x40018))
    cmp := b.Emit(isa.OP_s_cmp_eq_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    sel := b.Emit(isa.OP_s_cselect_b32, []ir.Definition { b.Def(1, ir.S1) }, ir.Const(1), ir.Const(2), ir.Tmp(cmp.Defs[0]))
    br := b.Emit(isa.OP_p_cbranch_z, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    b.Emit(isa.OP_exp, nil, ir.Tmp(sel.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 5, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_z, br.Op)
    require.Equal(t, cmp.Defs[0].Temp, sel.Args[2].Temp)
    require.Equal(t, cmp.Defs[0].Temp, br.Args[0].Temp)
    require.Equal(t, uint64(1), sel.Args[0].Val)
}

/* The compared value having another user blocks the compare rewrite. */
func TestCmpZero_ValueHasOtherUsers(t *testing.T) {
    b := ir.CreateBuilder(isa.GFX9, true)
    b.Block()
    bfe := b.Emit(isa.OP_s_bfe_u32, []ir.Definition { b.Def(0, ir.S1), b.Def(ir.Scc, ir.S1) }, ir.Fix(4, ir.S1), ir.Const(0x40018))
    cmp := b.Emit(isa.OP_s_cmp_eq_u32, []ir.Definition { b.Def(ir.Scc, ir.S1) }, ir.Tmp(bfe.Defs[0]), ir.Const(0))
    br := b.Emit(isa.OP_p_cbranch_z, []ir.Definition { b.Def(2, ir.S2) }, ir.Tmp(cmp.Defs[0]))
    b.Emit(isa.OP_exp, nil, ir.Tmp(bfe.Defs[0]))
    p := b.Build()

    Optimize(p)

    require.Equal(t, 4, p.NumIns())
    require.Equal(t, isa.OP_p_cbranch_z, br.Op)
    require.Equal(t, bfe.Defs[0].Temp, cmp.Args[0].Temp)
    require.Equal(t, cmp.Defs[0].Temp, br.Args[0].Temp)
}
