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
    `github.com/cloudwego/gcnopt/internal/gcn/isa`
)

// Builder assembles a post-RA program block by block, handing out fresh
// temporary ids as definitions are created.
type Builder struct {
    p  *Program
    bb *Block
}

func CreateBuilder(gen isa.Gen, wave64 bool) *Builder {
    return &Builder {
        p: &Program {
            Gen    : gen,
            Wave64 : wave64,
            Temps  : 1,
        },
    }
}

// Block opens a new basic block; subsequent emits go there.
func (self *Builder) Block() *Block {
    self.bb = &Block { Id: len(self.p.Blocks) }
    self.p.Blocks = append(self.p.Blocks, self.bb)
    return self.bb
}

// To records the successor block ids of the current block.
func (self *Builder) To(succ ...int) {
    self.bb.Succ = append(self.bb.Succ, succ...)
}

// Def allocates a fresh temporary fixed to the given register range.
func (self *Builder) Def(r PhysReg, rc RegClass) Definition {
    t := TempID(self.p.Temps)
    self.p.Temps++
    return Definition { Temp: t, Reg: r, Class: rc }
}

// MaskDef allocates a wave-mask-wide definition at the given register.
func (self *Builder) MaskDef(r PhysReg) Definition {
    return self.Def(r, self.p.MaskClass())
}

// ExecOp is the implicit exec mask operand.
func (self *Builder) ExecOp() Operand {
    return Fix(Exec, self.p.MaskClass())
}

// Emit appends an instruction to the current block.
func (self *Builder) Emit(op isa.Opcode, defs []Definition, args ...Operand) *Instruction {
    if self.bb == nil {
        self.Block()
    }
    p := NewInstr(op, defs, args)
    self.bb.Ins = append(self.bb.Ins, p)
    return p
}

// Build finalizes and returns the program.
func (self *Builder) Build() *Program {
    return self.p
}
