package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/lollipopkit/distil/binchunk"
	"github.com/lollipopkit/distil/consts"
)

// Listing writes a luac -l style disassembly of every function.
func Listing(w io.Writer, res *binchunk.Result) error {
	bw := bufio.NewWriter(w)
	h := res.Header
	endian := "little"
	if !h.LittleEndian() {
		endian = "big"
	}
	numberKind := "floating-point"
	if h.Integral == 1 {
		numberKind = "integral"
	}
	fmt.Fprintf(bw, "; Lua %s bytecode, format %d, %s endian\n", h.Version, h.Format, endian)
	fmt.Fprintf(bw, "; int %d, size_t %d, instruction %d, number %d (%s)\n",
		h.Sizes.Int, h.Sizes.SizeT, h.Sizes.Instruction, h.Sizes.Number, numberKind)

	source := displaySource(res.Main.SourceName)
	err := res.Main.Walk(func(path []int, c *binchunk.Chunk) error {
		bw.WriteByte('\n')
		listFunction(bw, path, c, source)
		return nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

func displaySource(s string) string {
	if s == "" {
		return "?"
	}
	return consts.LuaSourceRe.ReplaceAllString(s, "")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

func listFunction(w *bufio.Writer, path []int, c *binchunk.Chunk, source string) {
	name := "function " + binchunk.FormatPath(path)
	if len(path) == 0 {
		name = "main"
	}
	if c.SourceName != "" {
		source = displaySource(c.SourceName)
	}
	fmt.Fprintf(w, "%s <%s:%d,%d> (%s)\n", name,
		source, c.LineDefined, c.LastLineDefined, plural(len(c.Instructions), "instruction"))

	vararg := ""
	if c.IsVararg&2 != 0 {
		vararg = "+"
	}
	fmt.Fprintf(w, "%d%s params, %s, %s, %s, %s, %s\n", c.ParamCount, vararg,
		plural(int(c.MaxStackSize), "slot"), plural(int(c.UpvalueCount), "upvalue"),
		plural(len(c.Locals), "local"), plural(len(c.Constants), "constant"),
		plural(len(c.Functions), "function"))

	for pc, ins := range c.Instructions {
		line := "-"
		if pc < len(c.LinePositions) {
			line = strconv.FormatInt(c.LinePositions[pc], 10)
		}
		fmt.Fprintf(w, "\t%d\t[%s]\t%-9s\t%s%s\n", pc+1, line, ins.Op, operands(ins), comment(path, pc, ins, c))
	}

	if c.Stripped {
		fmt.Fprintf(w, "debug information stripped\n")
	}
	fmt.Fprintf(w, "constants (%d):\n", len(c.Constants))
	for i, k := range c.Constants {
		fmt.Fprintf(w, "\t%d\t%s\n", i, FormatConstant(k))
	}
	if c.Stripped {
		return
	}
	fmt.Fprintf(w, "locals (%d):\n", len(c.Locals))
	for i, l := range c.Locals {
		fmt.Fprintf(w, "\t%d\t%s\t%d\t%d\n", i, l.Name, l.StartPC+1, l.EndPC+1)
	}
	fmt.Fprintf(w, "upvalues (%d):\n", len(c.Upvalues))
	for i, u := range c.Upvalues {
		fmt.Fprintf(w, "\t%d\t%s\n", i, u)
	}
}

func operands(ins binchunk.Instruction) string {
	switch ins.Layout() {
	case binchunk.IABx, binchunk.IAsBx:
		return fmt.Sprintf("%d %d", ins.A, ins.B)
	}
	return fmt.Sprintf("%d %d %d", ins.A, ins.B, ins.C)
}

func comment(path []int, pc int, ins binchunk.Instruction, c *binchunk.Chunk) string {
	switch ins.Op {
	case binchunk.OP_LOADK, binchunk.OP_GETGLOBAL, binchunk.OP_SETGLOBAL:
		if ins.B < len(c.Constants) {
			return "\t; " + FormatConstant(c.Constants[ins.B])
		}
	case binchunk.OP_JMP, binchunk.OP_FORLOOP, binchunk.OP_FORPREP:
		return "\t; to " + strconv.Itoa(pc+2+ins.B)
	case binchunk.OP_CLOSURE:
		if ins.B < len(c.Functions) {
			child := append(append([]int{}, path...), ins.B)
			return "\t; " + binchunk.FormatPath(child)
		}
	}
	return ""
}

// FormatConstant renders a constant the way Lua source would spell it.
func FormatConstant(k binchunk.Constant) string {
	switch k.Kind {
	case binchunk.TAG_BOOLEAN:
		return strconv.FormatBool(k.Bool)
	case binchunk.TAG_NUMBER:
		return strconv.FormatFloat(k.Number, 'g', 14, 64)
	case binchunk.TAG_STRING:
		return strconv.Quote(k.String)
	}
	return "nil"
}
