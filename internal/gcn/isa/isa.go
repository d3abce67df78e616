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

import (
    `fmt`
)

// Gen is the ordinal hardware generation identifier of a GCN / RDNA part.
type Gen uint8

const (
    GFX6 Gen = iota + 6
    GFX7
    GFX8
    GFX9
    GFX10
    GFX11
)

func (self Gen) String() string {
    switch self {
        case GFX6  : return "gfx6"
        case GFX7  : return "gfx7"
        case GFX8  : return "gfx8"
        case GFX9  : return "gfx9"
        case GFX10 : return "gfx10"
        case GFX11 : return "gfx11"
        default    : return fmt.Sprintf("gfx(%d)", uint8(self))
    }
}

// Format is the hardware encoding family of an instruction.
type Format uint8

const (
    SOP1 Format = iota + 1
    SOP2
    SOPC
    SOPK
    SOPP
    SMEM
    VOP1
    VOPC
    MUBUF
    EXP
    PseudoBranch
)

func (self Format) String() string {
    switch self {
        case SOP1         : return "sop1"
        case SOP2         : return "sop2"
        case SOPC         : return "sopc"
        case SOPK         : return "sopk"
        case SOPP         : return "sopp"
        case SMEM         : return "smem"
        case VOP1         : return "vop1"
        case VOPC         : return "vopc"
        case MUBUF        : return "mubuf"
        case EXP          : return "exp"
        case PseudoBranch : return "pseudo_branch"
        default           : panic("unreachable")
    }
}
