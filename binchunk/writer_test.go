package binchunk

import (
	"bytes"
	"math"
)

// chunkWriter produces Lua 5.1 chunk bytes for tests.
type chunkWriter struct {
	buf   bytes.Buffer
	sizes SizeTable
	big   bool
}

func newChunkWriter() *chunkWriter {
	return &chunkWriter{sizes: SizeTable{Int: 4, SizeT: 4, Instruction: 4, Number: 8}}
}

func (w *chunkWriter) uint(v uint64, width byte) {
	b := make([]byte, width)
	for j := 0; j < int(width); j++ {
		b[j] = byte(v & 0xFF)
		v >>= 8
	}
	if w.big {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	w.buf.Write(b)
}

func (w *chunkWriter) int(v uint64) {
	w.uint(v, w.sizes.Int)
}

func (w *chunkWriter) number(f float64) {
	w.uint(math.Float64bits(f), w.sizes.Number)
}

func (w *chunkWriter) str(s string) {
	if s == "" {
		w.uint(0, w.sizes.SizeT)
		return
	}
	w.uint(uint64(len(s)+1), w.sizes.SizeT)
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

func (w *chunkWriter) header() {
	w.buf.WriteString(LUA_SIGNATURE)
	w.buf.WriteByte(LUAC_VERSION)
	w.buf.WriteByte(LUAC_FORMAT)
	if w.big {
		w.buf.WriteByte(BIG_ENDIAN)
	} else {
		w.buf.WriteByte(LITTLE_ENDIAN)
	}
	w.buf.WriteByte(w.sizes.Int)
	w.buf.WriteByte(w.sizes.SizeT)
	w.buf.WriteByte(w.sizes.Instruction)
	w.buf.WriteByte(w.sizes.Number)
	w.buf.WriteByte(0)
}

func iABC(op Opcode, a, b, c int) uint32 {
	return uint32(op) | uint32(a)<<POS_A | uint32(b)<<POS_B | uint32(c)<<POS_C
}

func iABx(op Opcode, a, bx int) uint32 {
	return uint32(op) | uint32(a)<<POS_A | uint32(bx)<<POS_Bx
}

func iAsBx(op Opcode, a, sbx int) uint32 {
	return iABx(op, a, sbx+MAXARG_sBx)
}

// testProto mirrors the on-disk field order of a Lua 5.1 function.
type testProto struct {
	source   string
	line     uint64
	lastLine uint64
	nups     byte
	params   byte
	vararg   byte
	maxStack byte
	code     []uint32
	consts   []any
	protos   []testProto
	lineInfo []uint64
	locals   []Local
	upvalues []string
}

func (w *chunkWriter) proto(p testProto) {
	w.str(p.source)
	w.int(p.line)
	w.int(p.lastLine)
	w.buf.Write([]byte{p.nups, p.params, p.vararg, p.maxStack})

	w.int(uint64(len(p.code)))
	for _, c := range p.code {
		w.uint(uint64(c), w.sizes.Instruction)
	}

	w.int(uint64(len(p.consts)))
	for _, c := range p.consts {
		switch v := c.(type) {
		case nil:
			w.buf.WriteByte(TAG_NIL)
		case bool:
			w.buf.WriteByte(TAG_BOOLEAN)
			if v {
				w.buf.WriteByte(1)
			} else {
				w.buf.WriteByte(0)
			}
		case float64:
			w.buf.WriteByte(TAG_NUMBER)
			w.number(v)
		case string:
			w.buf.WriteByte(TAG_STRING)
			w.str(v)
		}
	}

	w.int(uint64(len(p.protos)))
	for _, child := range p.protos {
		w.proto(child)
	}

	w.int(uint64(len(p.lineInfo)))
	for _, l := range p.lineInfo {
		w.int(l)
	}
	w.int(uint64(len(p.locals)))
	for _, l := range p.locals {
		w.str(l.Name)
		w.int(uint64(l.StartPC))
		w.int(uint64(l.EndPC))
	}
	w.int(uint64(len(p.upvalues)))
	for _, u := range p.upvalues {
		w.str(u)
	}
}

func (w *chunkWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// dump builds a complete chunk file around p.
func dump(p testProto) []byte {
	w := newChunkWriter()
	w.header()
	w.proto(p)
	return w.Bytes()
}

// sampleProto is roughly what luac 5.1 emits for
//
//	local function add(a, b) return a + b end
//	for i = 1, 3 do print(add(i, 0.5)) end
func sampleProto() testProto {
	return testProto{
		source:   "@sample.lua",
		vararg:   2,
		maxStack: 8,
		code: []uint32{
			iABx(OP_CLOSURE, 0, 0),
			iABx(OP_LOADK, 1, 0),
			iABx(OP_LOADK, 2, 1),
			iABx(OP_LOADK, 3, 0),
			iAsBx(OP_FORPREP, 1, 6),
			iABx(OP_GETGLOBAL, 5, 2),
			iABC(OP_MOVE, 6, 0, 0),
			iABC(OP_MOVE, 7, 4, 0),
			iABx(OP_LOADK, 8, 3),
			iABC(OP_CALL, 6, 3, 0),
			iABC(OP_CALL, 5, 0, 1),
			iAsBx(OP_FORLOOP, 1, -7),
			iABC(OP_RETURN, 0, 1, 0),
		},
		consts: []any{1.0, 3.0, "print", 0.5},
		protos: []testProto{{
			line:     1,
			lastLine: 1,
			params:   2,
			maxStack: 3,
			code: []uint32{
				iABC(OP_ADD, 2, 0, 1),
				iABC(OP_RETURN, 2, 2, 0),
				iABC(OP_RETURN, 0, 1, 0),
			},
			lineInfo: []uint64{1, 1, 1},
			locals: []Local{
				{Name: "a", StartPC: 0, EndPC: 2},
				{Name: "b", StartPC: 0, EndPC: 2},
			},
		}},
		lineInfo: []uint64{1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		locals: []Local{
			{Name: "add", StartPC: 1, EndPC: 12},
			{Name: "(for index)", StartPC: 4, EndPC: 12},
			{Name: "(for limit)", StartPC: 4, EndPC: 12},
			{Name: "(for step)", StartPC: 4, EndPC: 12},
			{Name: "i", StartPC: 5, EndPC: 11},
		},
	}
}
