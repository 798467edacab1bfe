/*
 * Copyright 2022 CloudWeGo Authors
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

package atm

import (
    `fmt`
    `strings`

    `github.com/oleiade/lane`
)

type BasicBlock struct {
    Id   int
    Len  int
    Src  *Instr
    Term *Instr
    Link []*BasicBlock
}

func (self *BasicBlock) Free() {
    q := lane.NewQueue()
    m := make(map[*BasicBlock]struct{})

    /* traverse the graph with BFS */
    for q.Enqueue(self); !q.Empty(); {
        v := q.Dequeue()
        p := v.(*BasicBlock)

        /* add all links into queue */
        for _, r := range p.Link {
            if _, ok := m[r]; !ok {
                q.Enqueue(r)
            }
        }

        /* clear links, and add to free list */
        m[p] = struct{}{}
        p.Link = p.Link[:0]
    }

    /* reset and free all the nodes */
    for p := range m {
        p.Id   = 0
        p.Len  = 0
        p.Src  = nil
        p.Term = nil
        freeBasicBlock(p)
    }
}

type GraphBuilder struct {
    Pin   map[*Instr]bool
    Graph map[*Instr]*BasicBlock
}

func CreateGraphBuilder() *GraphBuilder {
    return &GraphBuilder {
        Pin   : make(map[*Instr]bool),
        Graph : make(map[*Instr]*BasicBlock),
    }
}

func (self *GraphBuilder) scan(p Program) {
    for _, v := range p {
        if v.isBranch() && v.Br != nil {
            self.Pin[v.Br] = true
        }
    }
}

func (self *GraphBuilder) block(p *Instr, bb *BasicBlock) {
    bb.Len  = 0
    bb.Src  = p
    bb.Term = nil

    /* traverse down until it hits a branch or a terminator */
    for p != nil && !p.isBranch() && !p.isTerminal() {
        p = p.Ln
        bb.Len++

        /* hit a merge point, merge with existing block */
        if p != nil && self.Pin[p] {
            bb.Link = append(bb.Link, self.branch(p))
            return
        }
    }

    /* end of program */
    if p == nil {
        return
    }

    /* the block ends with this instruction */
    bb.Len++
    bb.Term = p

    /* nothing follows a terminator */
    if p.isTerminal() {
        return
    }

    /* unconditional jumps never fall through */
    if p.Op != OP_jmp && p.Ln != nil {
        bb.Link = append(bb.Link, self.branch(p.Ln))
    }

    /* the branch target */
    if p.Br != nil {
        bb.Link = append(bb.Link, self.branch(p.Br))
    }
}

func (self *GraphBuilder) branch(p *Instr) *BasicBlock {
    var ok bool
    var bb *BasicBlock

    /* check for existing basic blocks */
    if bb, ok = self.Graph[p]; ok {
        return bb
    }

    /* create a new block */
    bb = newBasicBlock()
    bb.Id = len(self.Graph) + 1

    /* process the new block */
    self.Graph[p] = bb
    self.block(p, bb)
    return bb
}

// Build partitions p into basic blocks and returns the entry block, or nil
// for an empty program.
func (self *GraphBuilder) Build(p Program) *BasicBlock {
    if len(p) == 0 {
        return nil
    } else {
        self.scan(p)
        return self.branch(p[0])
    }
}

func (self *GraphBuilder) dumpbb(bb *BasicBlock, pos map[*Instr]int, refs map[*Instr]string) string {
    p := bb.Src
    buf := []string{fmt.Sprintf(`BB_%d:\l`, bb.Id)}

    /* dump every instruction in the block */
    for i := 0; i < bb.Len; i++ {
        buf = append(buf, fmt.Sprintf(`%4d    %s\l`, pos[p], p.disassemble(refs)))
        p = p.Ln
    }

    /* escape the quotes */
    ret := strings.Join(buf, "")
    ret = strings.ReplaceAll(ret, `"`, `\"`)
    return ret
}

func (self *GraphBuilder) edge(p *BasicBlock, ln *BasicBlock) string {
    switch {
        case p.Term == nil           : return ""
        case p.Term.Op == OP_jmp     : return ` [ color = "blue" ]`
        case ln.Src == p.Term.Br     : return ` [ color = "green", label = "taken" ]`
        default                      : return ` [ color = "red", label = "fallthrough" ]`
    }
}

// Dot renders the graph rooted at bb in Graphviz format, instructions are
// shown with their positions in prog.
func (self *GraphBuilder) Dot(bb *BasicBlock, prog Program) string {
    type Route struct {
        A int
        B int
    }

    /* positions and labels of the program */
    q := lane.NewQueue()
    r := make(map[Route]bool)
    m := make(map[*BasicBlock]struct{})
    pos := make(map[*Instr]int, len(prog))
    refs := prog.Labels()

    /* index every instruction */
    for i, p := range prog {
        pos[p] = i
    }

    /* graph header */
    buf := []string {
        "digraph CFG {",
        `    graph [ fontname = "monospace" ]`,
        `    node [ fontname = "monospace", shape = "box" ]`,
        `    edge [ fontname = "monospace" ]`,
        `    START [ shape = "circle" ]`,
    }

    /* empty program */
    if bb == nil {
        return strings.Join(append(buf, "}"), "\n")
    }

    /* the entry block */
    buf = append(buf, fmt.Sprintf(`    BB_%d [ label = "%s" ]`, bb.Id, self.dumpbb(bb, pos, refs)))
    buf = append(buf, fmt.Sprintf(`    START -> BB_%d`, bb.Id))
    m[bb] = struct{}{}

    /* traverse the graph with BFS */
    for q.Enqueue(bb); !q.Empty(); {
        p := q.Dequeue().(*BasicBlock)

        /* add every link */
        for _, ln := range p.Link {
            if _, ok := m[ln]; !ok {
                m[ln] = struct{}{}
                buf = append(buf, fmt.Sprintf(`    BB_%d [ label = "%s" ]`, ln.Id, self.dumpbb(ln, pos, refs)))
                q.Enqueue(ln)
            }

            /* every route is drawn once */
            if rt := (Route { A: p.Id, B: ln.Id }); !r[rt] {
                r[rt] = true
                buf = append(buf, fmt.Sprintf(`    BB_%d -> BB_%d%s`, p.Id, ln.Id, self.edge(p, ln)))
            }
        }
    }

    /* join them together */
    buf = append(buf, "}")
    return strings.Join(buf, "\n")
}
