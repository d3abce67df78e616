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
    `strings`

    `github.com/cloudwego/gcnopt/internal/gcn/isa`
)

// Instruction is a single post-RA machine instruction. Rewriters mutate
// operands and opcodes in place; they never move or delete instructions.
type Instruction struct {
    Op   isa.Opcode
    Fmt  isa.Format
    Defs []Definition
    Args []Operand
}

// NewInstr builds an instruction, deriving the format tag from the opcode.
func NewInstr(op isa.Opcode, defs []Definition, args []Operand) *Instruction {
    return &Instruction {
        Op   : op,
        Fmt  : op.Format(),
        Defs : defs,
        Args : args,
    }
}

// IsBranch reports whether the instruction is a pseudo-branch.
func (self *Instruction) IsBranch() bool {
    return self.Fmt == isa.PseudoBranch
}

func (self *Instruction) String() string {
    defs := make([]string, 0, len(self.Defs))
    args := make([]string, 0, len(self.Args))
    for _, d := range self.Defs {
        defs = append(defs, d.String())
    }
    for _, v := range self.Args {
        args = append(args, v.String())
    }
    buf := []string(nil)
    if len(defs) != 0 {
        buf = append(buf, strings.Join(defs, ", "), "=")
    }
    buf = append(buf, self.Op.String())
    if len(args) != 0 {
        buf = append(buf, strings.Join(args, ", "))
    }
    return strings.Join(buf, " ")
}
