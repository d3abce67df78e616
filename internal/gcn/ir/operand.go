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

// TempID is the residual SSA temporary identifier an operand or definition
// still carries after register allocation. It keys the use-count table and
// nothing else; 0 means "no temporary attached".
type TempID uint32

// Operand is a single instruction input: either a register range (with an
// optional temporary id) or an inline constant / undefined value.
type Operand struct {
    Temp  TempID
    Reg   PhysReg
    Class RegClass
    Const bool
    Undef bool
    Val   uint64
}

// Tmp references the value written by a definition.
func Tmp(d Definition) Operand {
    return Operand { Temp: d.Temp, Reg: d.Reg, Class: d.Class }
}

// Fix references a fixed register range without a temporary, such as the
// implicit exec operand of a scalar AND.
func Fix(r PhysReg, rc RegClass) Operand {
    return Operand { Reg: r, Class: rc }
}

// Const builds an inline constant operand.
func Const(v uint64) Operand {
    return Operand { Const: true, Val: v }
}

// Undef builds an undefined operand.
func Undef() Operand {
    return Operand { Undef: true }
}

// Size is the operand width in dwords.
func (self Operand) Size() uint8 {
    return self.Class.Size()
}

func (self Operand) String() string {
    switch {
        case self.Undef      : return "undef"
        case self.Const      : return constString(self.Val)
        case self.Temp == 0  : return regRangeString(self.Reg, self.Size())
        default              : return fmt.Sprintf("%%%d:%s", self.Temp, regRangeString(self.Reg, self.Size()))
    }
}

// Definition is a single instruction output: a register range plus the
// temporary id that keys the use-count table.
type Definition struct {
    Temp  TempID
    Reg   PhysReg
    Class RegClass
}

// Size is the definition width in dwords.
func (self Definition) Size() uint8 {
    return self.Class.Size()
}

func (self Definition) String() string {
    return fmt.Sprintf("%%%d:%s", self.Temp, regRangeString(self.Reg, self.Size()))
}

func constString(v uint64) string {
    if v > 9 {
        return fmt.Sprintf("%#x", v)
    } else {
        return fmt.Sprintf("%d", v)
    }
}
