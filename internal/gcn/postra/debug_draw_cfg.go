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
    `html`
    `os`
    `strings`

    `github.com/cloudwego/gcnopt/internal/gcn/ir`
    `github.com/oleiade/lane`
)

func dumpbb(bb *ir.Block) string {
    w := 0
    ins := []string(nil)
    for _, v := range bb.Ins {
        if v == nil {
            continue
        }
        for _, ss := range strings.Split(v.String(), "\n") {
            vv := strings.ReplaceAll(html.EscapeString(ss), " ", "&nbsp;")
            ins = append(ins, fmt.Sprintf("<tr><td align=\"left\">%s</td></tr>\n", vv))
            if len(ss) > w {
                w = len(ss)
            }
        }
    }
    buf := []string {
        "<table border=\"1\" cellborder=\"0\" cellspacing=\"0\">\n",
        fmt.Sprintf("<tr><td width=\"%d\">bb_%d</td></tr>\n", w * 10 + 5, bb.Id),
    }
    if len(ins) != 0 {
        buf = append(buf, "<hr/>\n")
        buf = append(buf, ins...)
    }
    buf = append(buf, "</table>")
    return strings.Join(buf, "")
}

// draw_cfg renders the block graph of p as a GraphViz DOT file, with the
// instruction listing of every reachable block.
func draw_cfg(p *ir.Program, fn string) {
    if len(p.Blocks) == 0 {
        return
    }
    q := lane.NewQueue()
    n := make(map[int]bool)
    buf := []string {
        "digraph CFG {",
        `    xdotversion = "15"`,
        `    graph [ fontname = "Fira Code" ]`,
        `    node [ fontname = "Fira Code" fontsize="16" shape = "plaintext" ]`,
        `    edge [ fontname = "Fira Code" ]`,
        `    START [ shape = "circle" ]`,
        fmt.Sprintf(`    START -> bb_%d`, p.Blocks[0].Id),
    }
    n[p.Blocks[0].Id] = true
    for q.Enqueue(p.Blocks[0]); !q.Empty(); {
        bb := q.Dequeue().(*ir.Block)
        buf = append(buf, fmt.Sprintf(`    bb_%d [ label = < %s > ]`, bb.Id, dumpbb(bb)))
        for _, s := range bb.Succ {
            buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d`, bb.Id, s))
            if !n[s] {
                n[s] = true
                q.Enqueue(p.Blocks[s])
            }
        }
    }
    buf = append(buf, "}")
    err := os.WriteFile(fn, []byte(strings.Join(buf, "\n")), 0644)
    if err != nil {
        panic(err)
    }
}
