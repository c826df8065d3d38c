package inspect

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ComputaSean/Hidden-Surface-Visualization/sptree"
	"github.com/fatih/color"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"
)

// Role is the part a piece of output text plays in a printed tree.
type Role int8

// Roles of printed text, used as keys of a Palette.
const (
	SplitterRole Role = iota
	CoincidentRole
	LeafRole
	BranchRole
	PerspectiveRole
)

// Palette maps roles to console colours.
type Palette map[Role]*color.Color

// DefaultPalette returns the colours used if Options.Palette is nil.
func DefaultPalette() Palette {
	return Palette{
		SplitterRole:    color.New(color.FgBlue, color.Bold),
		CoincidentRole:  color.New(color.FgBlue),
		LeafRole:        color.New(color.FgGreen),
		BranchRole:      color.New(color.FgHiBlack),
		PerspectiveRole: color.New(color.FgRed),
	}
}

// Options control the output of Fprint.
type Options struct {
	Color    bool        // use colours
	Palette  Palette     // colours per role; nil for DefaultPalette
	MaxDepth int         // nodes below this depth are elided; 0 for no limit
	View     *mgl64.Vec2 // if set, every inner node is annotated with the viewer's perspective
}

// OptionsFromTerminal is a simple helper for creating printing options. It
// checks whether stdout is a terminal, and enables colours if so.
func OptionsFromTerminal() *Options {
	opts := &Options{}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		opts.Color = true
	}
	tracer().Debugf("inspect: colored output = %v", opts.Color)
	return opts
}

// Print outputs a tree to stdout, using OptionsFromTerminal.
func Print[P sptree.Partitionable[P]](tree *sptree.Tree[P]) error {
	return Fprint(os.Stdout, tree, OptionsFromTerminal())
}

// Fprint outputs a tree to w as an indented outline, front subtrees first:
//
//	(10,10)-(90,10)
//	├─ front: (50,0)-(50,10)
//	└─ back:  (50,10)-(50,100)
//
// Items coincident with a splitter are listed after it, separated by ' = '.
// If opts is nil, output is uncoloured.
func Fprint[P sptree.Partitionable[P]](w io.Writer, tree *sptree.Tree[P], opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	pr := newPrinter(opts)
	if tree.IsEmpty() {
		pr.write(LeafRole, "<empty>")
		pr.sb.WriteByte('\n')
		_, err := io.WriteString(w, pr.sb.String())
		return err
	}
	type entry struct {
		node   *sptree.Node[P]
		label  string // "front", "back" or "" for the root
		indent string // prefix of this node's line
		cont   string // prefix of its children's lines
		depth  int
	}
	stack := []entry{{node: tree.Root(), depth: 1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pr.write(BranchRole, e.indent)
		if e.label != "" {
			pr.write(BranchRole, e.label)
		}
		printNode(pr, tree, e.node)
		pr.sb.WriteByte('\n')
		children := make([]entry, 0, 2)
		if f := e.node.Front(); f != nil {
			children = append(children, entry{node: f, label: "front: "})
		}
		if b := e.node.Back(); b != nil {
			children = append(children, entry{node: b, label: "back:  "})
		}
		if len(children) > 0 && opts.MaxDepth > 0 && e.depth >= opts.MaxDepth {
			pr.write(BranchRole, e.cont+"└─ ")
			pr.write(LeafRole, "…")
			pr.sb.WriteByte('\n')
			continue
		}
		for i := len(children) - 1; i >= 0; i-- { // push in reverse
			c := &children[i]
			c.depth = e.depth + 1
			if i == len(children)-1 {
				c.indent, c.cont = e.cont+"└─ ", e.cont+"   "
			} else {
				c.indent, c.cont = e.cont+"├─ ", e.cont+"│  "
			}
			stack = append(stack, *c)
		}
	}
	_, err := io.WriteString(w, pr.sb.String())
	if err != nil {
		tracer().Errorf("inspect: %s", err.Error())
	}
	return err
}

type printer struct {
	sb      strings.Builder
	opts    *Options
	palette Palette
}

func newPrinter(opts *Options) *printer {
	pr := &printer{opts: opts}
	palette := opts.Palette
	if palette == nil {
		palette = DefaultPalette()
	}
	if !opts.Color {
		return pr
	}
	// color.NoColor is set globally if stdout is not a terminal; output may
	// go elsewhere, so colouring is decided by the options only. Clients'
	// colours are left untouched.
	pr.palette = make(Palette, len(palette))
	for role, c := range palette {
		if c == nil {
			continue
		}
		enabled := *c
		enabled.EnableColor()
		pr.palette[role] = &enabled
	}
	return pr
}

func (pr *printer) write(role Role, s string) {
	if c, ok := pr.palette[role]; ok {
		pr.sb.WriteString(c.Sprint(s))
		return
	}
	pr.sb.WriteString(s)
}

func printNode[P sptree.Partitionable[P]](pr *printer, tree *sptree.Tree[P], n *sptree.Node[P]) {
	items := n.Items()
	role := SplitterRole
	if n.IsLeaf() {
		role = LeafRole
	}
	pr.write(role, fmt.Sprint(items[0].Base()))
	for _, item := range items[1:] {
		pr.write(BranchRole, " = ")
		pr.write(CoincidentRole, fmt.Sprint(item.Base()))
	}
	if pr.opts.View != nil && !n.IsLeaf() {
		pr.write(BranchRole, " ")
		pr.write(PerspectiveRole, "["+tree.Classify(*pr.opts.View, n).String()+"]")
	}
}
