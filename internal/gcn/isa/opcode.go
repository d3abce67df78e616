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

package isa

// Opcode is the target opcode of an instruction, after instruction
// selection and register allocation. Pseudo opcodes (OP_p_*) are
// placeholders that a later pass lowers to real encodings.
type Opcode uint16

const (
    OP_nop Opcode = iota
    OP_s_mov_b32
    OP_s_mov_b64
    OP_s_not_b32
    OP_s_not_b64
    OP_s_abs_i32
    OP_s_add_u32
    OP_s_sub_u32
    OP_s_and_b32
    OP_s_and_b64
    OP_s_or_b32
    OP_s_or_b64
    OP_s_xor_b32
    OP_s_xor_b64
    OP_s_lshl_b32
    OP_s_lshl_b64
    OP_s_lshr_b32
    OP_s_lshr_b64
    OP_s_ashr_i32
    OP_s_ashr_i64
    OP_s_bfe_u32
    OP_s_bfe_i32
    OP_s_bfe_u64
    OP_s_bfe_i64
    OP_s_cselect_b32
    OP_s_cselect_b64
    OP_s_cmp_eq_u32
    OP_s_cmp_lg_u32
    OP_s_cmp_eq_u64
    OP_s_cmp_lg_u64
    OP_s_load_dword
    OP_s_barrier
    OP_v_mov_b32
    OP_v_cmp_eq_u32
    OP_v_cmp_lg_u32
    OP_v_cmp_lt_u32
    OP_buffer_store_dword
    OP_exp
    OP_p_branch
    OP_p_cbranch_z
    OP_p_cbranch_nz
    OP_max
)

type _OpFlags uint8

const (
    _F_side_effects _OpFlags = 1 << iota // memory stores, barriers, exports
    _F_scc_nonzero                       // secondary scc def means "result != 0"
)

type _OpInfo struct {
    name  string
    fmts  Format
    flags _OpFlags
}

var _OpTab = [OP_max]_OpInfo {
    OP_nop                : { name: "s_nop"              , fmts: SOPP },
    OP_s_mov_b32          : { name: "s_mov_b32"          , fmts: SOP1 },
    OP_s_mov_b64          : { name: "s_mov_b64"          , fmts: SOP1 },
    OP_s_not_b32          : { name: "s_not_b32"          , fmts: SOP1, flags: _F_scc_nonzero },
    OP_s_not_b64          : { name: "s_not_b64"          , fmts: SOP1, flags: _F_scc_nonzero },
    OP_s_abs_i32          : { name: "s_abs_i32"          , fmts: SOP1, flags: _F_scc_nonzero },
    OP_s_add_u32          : { name: "s_add_u32"          , fmts: SOP2 },
    OP_s_sub_u32          : { name: "s_sub_u32"          , fmts: SOP2 },
    OP_s_and_b32          : { name: "s_and_b32"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_and_b64          : { name: "s_and_b64"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_or_b32           : { name: "s_or_b32"           , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_or_b64           : { name: "s_or_b64"           , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_xor_b32          : { name: "s_xor_b32"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_xor_b64          : { name: "s_xor_b64"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_lshl_b32         : { name: "s_lshl_b32"         , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_lshl_b64         : { name: "s_lshl_b64"         , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_lshr_b32         : { name: "s_lshr_b32"         , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_lshr_b64         : { name: "s_lshr_b64"         , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_ashr_i32         : { name: "s_ashr_i32"         , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_ashr_i64         : { name: "s_ashr_i64"         , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_bfe_u32          : { name: "s_bfe_u32"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_bfe_i32          : { name: "s_bfe_i32"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_bfe_u64          : { name: "s_bfe_u64"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_bfe_i64          : { name: "s_bfe_i64"          , fmts: SOP2, flags: _F_scc_nonzero },
    OP_s_cselect_b32      : { name: "s_cselect_b32"      , fmts: SOP2 },
    OP_s_cselect_b64      : { name: "s_cselect_b64"      , fmts: SOP2 },
    OP_s_cmp_eq_u32       : { name: "s_cmp_eq_u32"       , fmts: SOPC },
    OP_s_cmp_lg_u32       : { name: "s_cmp_lg_u32"       , fmts: SOPC },
    OP_s_cmp_eq_u64       : { name: "s_cmp_eq_u64"       , fmts: SOPC },
    OP_s_cmp_lg_u64       : { name: "s_cmp_lg_u64"       , fmts: SOPC },
    OP_s_load_dword       : { name: "s_load_dword"       , fmts: SMEM },
    OP_s_barrier          : { name: "s_barrier"          , fmts: SOPP, flags: _F_side_effects },
    OP_v_mov_b32          : { name: "v_mov_b32"          , fmts: VOP1 },
    OP_v_cmp_eq_u32       : { name: "v_cmp_eq_u32"       , fmts: VOPC },
    OP_v_cmp_lg_u32       : { name: "v_cmp_lg_u32"       , fmts: VOPC },
    OP_v_cmp_lt_u32       : { name: "v_cmp_lt_u32"       , fmts: VOPC },
    OP_buffer_store_dword : { name: "buffer_store_dword" , fmts: MUBUF, flags: _F_side_effects },
    OP_exp                : { name: "exp"                , fmts: EXP, flags: _F_side_effects },
    OP_p_branch           : { name: "p_branch"           , fmts: PseudoBranch },
    OP_p_cbranch_z        : { name: "p_cbranch_z"        , fmts: PseudoBranch },
    OP_p_cbranch_nz       : { name: "p_cbranch_nz"       , fmts: PseudoBranch },
}

func (self Opcode) String() string {
    return _OpTab[self].name
}

// Format returns the encoding family of the opcode.
func (self Opcode) Format() Format {
    return _OpTab[self].fmts
}

// HasSideEffects reports whether the instruction does more than write its
// definitions (atomics, barriers, exports, memory stores). Such instructions
// are never removed by dead-code sweeps.
func (self Opcode) HasSideEffects() bool {
    return _OpTab[self].flags & _F_side_effects != 0
}

// IsVectorCompare reports whether the opcode is a VOPC instruction, i.e. a
// vector compare producing a per-lane mask already ANDed with exec.
func (self Opcode) IsVectorCompare() bool {
    return _OpTab[self].fmts == VOPC
}

// IsScalarAndWavemask reports whether the opcode is the scalar AND of the
// program's wave mask width (s_and_b32 on wave32, s_and_b64 on wave64).
func (self Opcode) IsScalarAndWavemask(wave64 bool) bool {
    if wave64 {
        return self == OP_s_and_b64
    } else {
        return self == OP_s_and_b32
    }
}

// SetsSccNonZero reports whether the opcode writes a secondary scc
// definition with the meaning "primary result != 0". Carry-writing opcodes
// (s_add_u32, s_sub_u32) deliberately do not qualify.
func (self Opcode) SetsSccNonZero() bool {
    return _OpTab[self].flags & _F_scc_nonzero != 0
}

// CmpPred is the predicate of a scalar compare of interest.
type CmpPred uint8

const (
    CmpEq CmpPred = iota
    CmpLg
)

func (self CmpPred) String() string {
    switch self {
        case CmpEq : return "eq"
        case CmpLg : return "lg"
        default    : panic("unreachable")
    }
}

// CmpInfo describes a scalar compare opcode: its predicate and its operand
// width in dwords.
type CmpInfo struct {
    Pred CmpPred
    Size uint8
}

// ScalarCmp returns the predicate and width of a scalar compare opcode
// that can take a zero operand, or ok == false for any other opcode.
func (self Opcode) ScalarCmp() (v CmpInfo, ok bool) {
    switch self {
        case OP_s_cmp_eq_u32 : return CmpInfo { Pred: CmpEq, Size: 1 }, true
        case OP_s_cmp_lg_u32 : return CmpInfo { Pred: CmpLg, Size: 1 }, true
        case OP_s_cmp_eq_u64 : return CmpInfo { Pred: CmpEq, Size: 2 }, true
        case OP_s_cmp_lg_u64 : return CmpInfo { Pred: CmpLg, Size: 2 }, true
        default              : return CmpInfo {}, false
    }
}

// Narrow32 maps a 64-bit scalar compare to its 32-bit form. After the
// compare's operand has been redirected to scc (a single dword), the wider
// form no longer makes sense.
func (self Opcode) Narrow32() Opcode {
    switch self {
        case OP_s_cmp_eq_u64 : return OP_s_cmp_eq_u32
        case OP_s_cmp_lg_u64 : return OP_s_cmp_lg_u32
        default              : return self
    }
}

// InvertBranch flips the sense of a conditional pseudo-branch.
func (self Opcode) InvertBranch() Opcode {
    switch self {
        case OP_p_cbranch_z  : return OP_p_cbranch_nz
        case OP_p_cbranch_nz : return OP_p_cbranch_z
        default              : panic("invert: not a conditional branch: " + self.String())
    }
}
