// Package inspect is an interactive terminal browser over a decoded chunk.
package inspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lollipopkit/distil/binchunk"
	"github.com/lollipopkit/distil/export"
)

// node is the reference stored on every tree node.
type node struct {
	path  []int
	chunk *binchunk.Chunk
}

func label(path []int, c *binchunk.Chunk) string {
	name := binchunk.FormatPath(path)
	if c.SourceName != "" {
		name += " " + c.SourceName
	}
	return fmt.Sprintf("%s <%d,%d>", name, c.LineDefined, c.LastLineDefined)
}

// BuildTree mirrors the function nesting of res as tview nodes. Every node
// references a *node with the function's path.
func BuildTree(res *binchunk.Result) *tview.TreeNode {
	return buildNode(nil, res.Main)
}

func buildNode(path []int, c *binchunk.Chunk) *tview.TreeNode {
	n := tview.NewTreeNode(tview.Escape(label(path, c))).
		SetReference(&node{path: path, chunk: c}).
		SetSelectable(true).
		SetExpanded(len(path) < 2)
	if len(c.Functions) > 0 {
		n.SetColor(tcell.ColorGreen)
	}
	for i, child := range c.Functions {
		childPath := append(append([]int{}, path...), i)
		n.AddChild(buildNode(childPath, child))
	}
	return n
}

// Details renders one function for the side panel.
func Details(path []int, c *binchunk.Chunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]%s[white]\n", binchunk.FormatPath(path))
	fmt.Fprintf(&b, "source        %s\n", tview.Escape(c.SourceName))
	fmt.Fprintf(&b, "lines         %d-%d\n", c.LineDefined, c.LastLineDefined)
	fmt.Fprintf(&b, "params        %d\n", c.ParamCount)
	fmt.Fprintf(&b, "vararg        %d\n", c.IsVararg)
	fmt.Fprintf(&b, "upvalues      %d\n", c.UpvalueCount)
	fmt.Fprintf(&b, "max stack     %d\n", c.MaxStackSize)

	fmt.Fprintf(&b, "\n[yellow]instructions (%d)[white]\n", len(c.Instructions))
	for pc, ins := range c.Instructions {
		line := "-"
		if pc < len(c.LinePositions) {
			line = strconv.FormatInt(c.LinePositions[pc], 10)
		}
		t := ins.Tuple()
		fmt.Fprintf(&b, "%4d  %s  %-10s %d %d %d\n", pc+1, tview.Escape("["+line+"]"), ins.Op, t[1], t[2], t[3])
	}

	fmt.Fprintf(&b, "\n[yellow]constants (%d)[white]\n", len(c.Constants))
	for i, k := range c.Constants {
		fmt.Fprintf(&b, "%4d  %s\n", i, tview.Escape(export.FormatConstant(k)))
	}

	if c.Stripped {
		b.WriteString("\ndebug information stripped\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\n[yellow]locals (%d)[white]\n", len(c.Locals))
	for i, l := range c.Locals {
		fmt.Fprintf(&b, "%4d  %s  %d-%d\n", i, tview.Escape(l.Name), l.StartPC+1, l.EndPC+1)
	}
	fmt.Fprintf(&b, "\n[yellow]upvalues (%d)[white]\n", len(c.Upvalues))
	for i, u := range c.Upvalues {
		fmt.Fprintf(&b, "%4d  %s\n", i, tview.Escape(u))
	}
	return b.String()
}

// Run opens the inspector and blocks until the user quits with Esc or q.
// Tab moves focus between the tree and the detail panel.
func Run(res *binchunk.Result, name string) error {
	app := tview.NewApplication()

	root := BuildTree(res)
	tree := tview.NewTreeView().
		SetRoot(root).
		SetCurrentNode(root)
	tree.SetBorder(true).SetTitle(" " + tview.Escape(name) + " ")

	detail := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	detail.SetBorder(true).SetTitle(" function ")

	show := func(n *tview.TreeNode) {
		ref, ok := n.GetReference().(*node)
		if !ok {
			return
		}
		detail.SetText(Details(ref.path, ref.chunk)).ScrollToBeginning()
	}
	show(root)
	tree.SetChangedFunc(show)
	tree.SetSelectedFunc(func(n *tview.TreeNode) {
		n.SetExpanded(!n.IsExpanded())
	})

	flex := tview.NewFlex().
		AddItem(tree, 0, 1, true).
		AddItem(detail, 0, 2, false)

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
			app.Stop()
			return nil
		case ev.Key() == tcell.KeyTab:
			if tree.HasFocus() {
				app.SetFocus(detail)
			} else {
				app.SetFocus(tree)
			}
			return nil
		}
		return ev
	})

	return app.SetRoot(flex, true).EnableMouse(true).Run()
}
