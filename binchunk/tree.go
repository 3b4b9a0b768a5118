package binchunk

import "unicode/utf8"

// Tree is the output shape of one function: the distillery's keys in
// the distillery's order. Debug lists are pointers so a stripped chunk
// omits the keys while an unstripped empty list still emits [].
type Tree struct {
	SourceName      string     `json:"sourceName"`
	LineDefined     int64      `json:"lineDefined"`
	LastLineDefined int64      `json:"lastLineDefined"`
	UpvalueCount    byte       `json:"upvalueCount"`
	ParamCount      byte       `json:"paramCount"`
	IsVararg        byte       `json:"is_vararg"`
	MaxStackSize    byte       `json:"maxStackSize"`
	Instructions    any        `json:"instructions"`
	Constants       []Constant `json:"constants"`
	Functions       []*Tree    `json:"functions"`
	LinePositions   *[]int64   `json:"linePositions,omitempty"`
	Locals          *[]Local   `json:"locals,omitempty"`
	Upvalues        *[]string  `json:"upvalues,omitempty"`
}

// Tree builds the output shape. Positional instructions are flattened
// into one sequence of 4 ints per instruction.
func (c *Chunk) Tree(objects bool) *Tree {
	t := &Tree{
		SourceName:      byteRunes(c.SourceName),
		LineDefined:     c.LineDefined,
		LastLineDefined: c.LastLineDefined,
		UpvalueCount:    c.UpvalueCount,
		ParamCount:      c.ParamCount,
		IsVararg:        c.IsVararg,
		MaxStackSize:    c.MaxStackSize,
		Constants:       c.Constants,
		Functions:       make([]*Tree, len(c.Functions)),
	}

	if objects {
		code := make([]InstructionObject, len(c.Instructions))
		for i := range c.Instructions {
			code[i] = c.Instructions[i].Object()
		}
		t.Instructions = code
	} else {
		code := make([]int, 0, 4*len(c.Instructions))
		for i := range c.Instructions {
			tuple := c.Instructions[i].Tuple()
			code = append(code, tuple[:]...)
		}
		t.Instructions = code
	}

	for i := range c.Functions {
		t.Functions[i] = c.Functions[i].Tree(objects)
	}

	if !c.Stripped {
		lines := c.LinePositions
		if lines == nil {
			lines = []int64{}
		}
		locals := make([]Local, len(c.Locals))
		for i, l := range c.Locals {
			l.Name = byteRunes(l.Name)
			locals[i] = l
		}
		upvalues := make([]string, len(c.Upvalues))
		for i, u := range c.Upvalues {
			upvalues[i] = byteRunes(u)
		}
		t.LinePositions = &lines
		t.Locals = &locals
		t.Upvalues = &upvalues
	}
	return t
}

// byteRunes maps every byte of a Lua string to the code point of the same
// value. Lua strings are raw bytes, so this keeps distinct strings
// distinct in UTF-8 output and each byte is recovered as rune & 0xff.
func byteRunes(s string) string {
	i := 0
	for i < len(s) && s[i] < utf8.RuneSelf {
		i++
	}
	if i == len(s) {
		return s
	}
	rs := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		rs[i] = rune(s[i])
	}
	return string(rs)
}

// Tree returns the main function's output tree under the decode config.
func (res *Result) Tree() *Tree {
	return res.Main.Tree(res.Config.UseInstructionObjects)
}

// Walk visits c and its nested functions depth first. path is the list
// of child indexes from c and must not be retained.
func (c *Chunk) Walk(fn func(path []int, c *Chunk) error) error {
	return c.walk(make([]int, 0, 8), fn)
}

func (c *Chunk) walk(path []int, fn func([]int, *Chunk) error) error {
	if err := fn(path, c); err != nil {
		return err
	}
	for i, child := range c.Functions {
		if err := child.walk(append(path, i), fn); err != nil {
			return err
		}
	}
	return nil
}

type Stats struct {
	Functions    int `json:"functions"`
	Instructions int `json:"instructions"`
	Constants    int `json:"constants"`
	Locals       int `json:"locals"`
	Upvalues     int `json:"upvalues"`
	MaxDepth     int `json:"maxDepth"`
}

// Stats counts what the file holds. Locals and upvalue names of stripped
// functions are taken from DebugSizes.
func (c *Chunk) Stats() Stats {
	var s Stats
	_ = c.Walk(func(path []int, f *Chunk) error {
		s.Functions++
		s.Instructions += len(f.Instructions)
		s.Constants += len(f.Constants)
		if f.Stripped {
			s.Locals += f.DebugSizes.Locals
			s.Upvalues += f.DebugSizes.Upvalues
		} else {
			s.Locals += len(f.Locals)
			s.Upvalues += len(f.Upvalues)
		}
		if len(path) > s.MaxDepth {
			s.MaxDepth = len(path)
		}
		return nil
	})
	return s
}
