package sptree

import (
	"fmt"
	"io"
	"strings"
)

type nodeids[P Partitionable[P]] struct {
	idTable map[*Node[P]]int
	max     int
}

func newtable[P Partitionable[P]]() nodeids[P] {
	return nodeids[P]{
		idTable: make(map[*Node[P]]int),
		max:     1,
	}
}

func (ids nodeids[P]) find(node *Node[P]) int {
	return ids.idTable[node]
}

func (ids *nodeids[P]) alloc(node *Node[P]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Tree2Dot outputs the structure of a tree in Graphviz DOT format
// (for debugging purposes). Front edges are drawn solid, back edges dashed.
func Tree2Dot[P Partitionable[P]](tree *Tree[P], w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("strict digraph {\n")
	sb.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable[P]()
	nodelist, edgelist := "", ""
	for node := range tree.Nodes() {
		id := ids.alloc(node)
		label := fmt.Sprintf("%d item(s)\\n%s", len(node.items), node.items[0].Base())
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", id, label, nodeDotStyles(node.IsLeaf()))
		if node.front != nil {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\" [label=front];\n", id, ids.alloc(node.front))
		}
		if node.back != nil {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\" [label=back,style=dashed];\n", id, ids.alloc(node.back))
		}
	}
	sb.WriteString(nodelist)
	sb.WriteString(edgelist)
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	if err != nil {
		tracer().Errorf("tree DOT: %s", err.Error())
	}
	return err
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=ellipse"
	}
	return s
}
