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
    `fmt`

    `github.com/cloudwego/gcnopt/internal/gcn/ir`
)

type _WTag uint8

const (
    _W_none _WTag = iota
    _W_clobber
    _W_const
    _W_written
    _W_multi
)

// LastWrite describes which instruction of the current block, if any, last
// wrote a physical register range.
type LastWrite struct {
    tag _WTag
    idx int32
}

var (
    NotWritten        = LastWrite { tag: _W_none }
    Clobbered         = LastWrite { tag: _W_clobber }
    ConstOrUndef      = LastWrite { tag: _W_const }
    WrittenByMultiple = LastWrite { tag: _W_multi }
)

// WrittenBy tags a range as last written, in whole, by the instruction at
// the given index of the current block.
func WrittenBy(i int) LastWrite {
    return LastWrite { tag: _W_written, idx: int32(i) }
}

// Written returns the writer index when the entire range was written by a
// single instruction. Rewriters must treat ok == false as "cannot fold".
func (self LastWrite) Written() (int, bool) {
    return int(self.idx), self.tag == _W_written
}

func (self LastWrite) String() string {
    switch self.tag {
        case _W_none    : return "(not written)"
        case _W_clobber : return "(clobbered)"
        case _W_const   : return "(const or undef)"
        case _W_written : return fmt.Sprintf("(written by %d)", self.idx)
        case _W_multi   : return "(written by multiple)"
        default         : panic("unreachable")
    }
}

// WriteMap maps every physical register dword to the instruction of the
// current block that last wrote it. It is allocated once per optimizer
// invocation and reset at every block entry. The slot array is sized for
// subword addressing even though the pass only tracks dword granularity.
type WriteMap struct {
    slots [ir.MaxRegCount * 4]LastWrite
}

// Reset forgets all writes; every slot reverts to NotWritten.
func (self *WriteMap) Reset() {
    for i := range self.slots {
        self.slots[i] = NotWritten
    }
}

// Record notes that the instruction at idx wrote the definition's register
// range. Whole-dword writes tag every slot of the range with the writer
// index; subword writes clobber the range instead.
func (self *WriteMap) Record(def ir.Definition, idx int) {
    if debugChecks && def.Class.Vector() == def.Reg.Scalar() {
        panic(fmt.Sprintf("postra: class %s does not match register bank of %s", def.Class, def.Reg))
    }
    w := WrittenBy(idx)
    if def.Class.Subword() {
        w = Clobbered
    }
    r := int(def.Reg)
    n := int(def.Size())
    for i := 0; i < n; i++ {
        self.slots[r + i] = w
    }
}

// LastWriter inspects every dword of [r, r+n) and reports the single
// instruction that wrote all of them, or the reason there is none. The
// uniformity check always runs; a range touched by two writers is a
// distinct result, not an assertion.
func (self *WriteMap) LastWriter(r ir.PhysReg, n uint8) LastWrite {
    w := self.slots[r]
    clob := false
    mixed := false
    for i := 0; i < int(n); i++ {
        v := self.slots[int(r) + i]
        clob = clob || v.tag == _W_clobber
        mixed = mixed || v != w
    }
    switch {
        case clob  : return Clobbered
        case mixed : return WrittenByMultiple
        default    : return w
    }
}

// LastWriterOp is LastWriter for an operand, folding the constant and
// undefined cases in first.
func (self *WriteMap) LastWriterOp(op ir.Operand) LastWrite {
    if op.Const || op.Undef {
        return ConstOrUndef
    }
    return self.LastWriter(op.Reg, op.Size())
}
