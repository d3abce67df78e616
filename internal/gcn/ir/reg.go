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
)

// PhysReg is a physical register dword index, fixed by register allocation.
// Scalar registers occupy [0, 256), vector registers [256, 512). A few
// individual registers are architectural and have symbolic names.
type PhysReg uint16

// MaxRegCount is the size of the physical register file in dwords.
const MaxRegCount = 512

const (
    Vcc    PhysReg = 106
    VccHi  PhysReg = 107
    M0     PhysReg = 124
    Exec   PhysReg = 126
    ExecHi PhysReg = 127
    Scc    PhysReg = 253
    V0     PhysReg = 256
)

// Scalar reports whether the register lives in the scalar bank.
func (self PhysReg) Scalar() bool {
    return self < V0
}

func (self PhysReg) String() string {
    switch self {
        case Vcc    : return "vcc"
        case VccHi  : return "vcc_hi"
        case M0     : return "m0"
        case Exec   : return "exec"
        case ExecHi : return "exec_hi"
        case Scc    : return "scc"
    }
    if self.Scalar() {
        return fmt.Sprintf("s%d", uint16(self))
    } else {
        return fmt.Sprintf("v%d", uint16(self - V0))
    }
}

const (
    _B_vec = 6
    _B_sub = 7
)

const (
    _M_size = (1 << _B_vec) - 1
)

const (
    _R_vec = 1 << _B_vec
    _R_sub = 1 << _B_sub
)

// RegClass packs the bank, the width in dwords and the subword flag of a
// register range into a single byte.
type RegClass uint8

const (
    S1 RegClass = 1
    S2 RegClass = 2
    S4 RegClass = 4
    V1 RegClass = _R_vec | 1
    V2 RegClass = _R_vec | 2
    V1B RegClass = _R_sub | _R_vec | 1
)

// Size is the width of the range in dwords. Subword classes still occupy
// one full dword slot each.
func (self RegClass) Size() uint8 {
    return uint8(self & _M_size)
}

// Vector reports whether the class lives in the vector bank.
func (self RegClass) Vector() bool {
    return self & _R_vec != 0
}

// Subword reports whether the class addresses less than a full dword.
func (self RegClass) Subword() bool {
    return self & _R_sub != 0
}

func (self RegClass) String() string {
    ch := 's'
    if self.Vector() {
        ch = 'v'
    }
    if self.Subword() {
        return fmt.Sprintf("%c%db", ch, self.Size())
    } else {
        return fmt.Sprintf("%c%d", ch, self.Size())
    }
}

// regRangeString renders a register range the way disassemblers do:
// "s[0-1]", "v[4-5]", "vcc", plain register name for single dwords.
func regRangeString(r PhysReg, n uint8) string {
    switch {
        case r == Vcc && n <= 2  : return "vcc"
        case r == Exec && n <= 2 : return "exec"
        case n <= 1              : return r.String()
        case r.Scalar()          : return fmt.Sprintf("s[%d-%d]", uint16(r), uint16(r) + uint16(n) - 1)
        default                  : return fmt.Sprintf("v[%d-%d]", uint16(r - V0), uint16(r - V0) + uint16(n) - 1)
    }
}
