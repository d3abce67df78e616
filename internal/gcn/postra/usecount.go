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
    `math`

    `github.com/cloudwego/gcnopt/internal/gcn/ir`
)

// UseCounts tracks, per SSA temporary still carried on the instructions,
// how many live uses remain. Rewriters decrement an entry when a rewrite
// removes a use; the cleanup sweep then drops newly dead instructions.
type UseCounts []uint16

// Count returns the remaining uses of a temporary; 0 for "no temporary".
func (self UseCounts) Count(t ir.TempID) uint16 {
    if t == 0 {
        return 0
    }
    return self[t]
}

// Incr bumps the use count, saturating at the counter maximum.
func (self UseCounts) Incr(t ir.TempID) {
    if t != 0 && self[t] != math.MaxUint16 {
        self[t]++
    }
}

// Decr drops the use count, saturating at zero.
func (self UseCounts) Decr(t ir.TempID) {
    if t != 0 && self[t] != 0 {
        self[t]--
    }
}

// IsDead reports whether an instruction can be removed: it has no side
// effects, it is not a branch, and none of its definitions has a remaining
// use. Definitions without a temporary (fixed architectural writes) keep
// the instruction alive.
func (self UseCounts) IsDead(p *ir.Instruction) bool {
    if len(p.Defs) == 0 || p.IsBranch() || p.Op.HasSideEffects() {
        return false
    }
    for _, d := range p.Defs {
        if d.Temp == 0 || self[d.Temp] != 0 {
            return false
        }
    }
    return true
}

// CountUses computes the initial use-count vector: the number of live uses
// of every temporary, where a use only counts if the consuming instruction
// is itself live. Blocks and instructions are visited in reverse so that
// consumers are classified before their producers; the outer loop reruns
// the sweep until the live set stops growing.
func CountUses(p *ir.Program) UseCounts {
    uses := make(UseCounts, p.Temps)
    for {
        next := make(UseCounts, p.Temps)
        for i := len(p.Blocks) - 1; i >= 0; i-- {
            bb := p.Blocks[i]
            for j := len(bb.Ins) - 1; j >= 0; j-- {
                if v := bb.Ins[j]; v != nil && !uses.IsDead(v) {
                    for _, op := range v.Args {
                        next.Incr(op.Temp)
                    }
                }
            }
        }
        if countsEqual(uses, next) {
            return uses
        }
        uses = next
    }
}

func countsEqual(a UseCounts, b UseCounts) bool {
    for i := range a {
        if a[i] != b[i] {
            return false
        }
    }
    return true
}
