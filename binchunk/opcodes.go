package binchunk

import "strconv"

// Layout is one of the three Lua 5.1 instruction encodings.
type Layout byte

const (
	IABC Layout = iota
	IABx
	IAsBx
)

func (l Layout) String() string {
	switch l {
	case IABx:
		return "iABx"
	case IAsBx:
		return "iAsBx"
	}
	return "iABC"
}

type Opcode byte

/* Lua 5.1 opcodes, lopcodes.h order */
const (
	OP_MOVE Opcode = iota
	OP_LOADK
	OP_LOADBOOL
	OP_LOADNIL
	OP_GETUPVAL
	OP_GETGLOBAL
	OP_GETTABLE
	OP_SETGLOBAL
	OP_SETUPVAL
	OP_SETTABLE
	OP_NEWTABLE
	OP_SELF
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_MOD
	OP_POW
	OP_UNM
	OP_NOT
	OP_LEN
	OP_CONCAT
	OP_JMP
	OP_EQ
	OP_LT
	OP_LE
	OP_TEST
	OP_TESTSET
	OP_CALL
	OP_TAILCALL
	OP_RETURN
	OP_FORLOOP
	OP_FORPREP
	OP_TFORLOOP
	OP_SETLIST
	OP_CLOSE
	OP_CLOSURE
	OP_VARARG
)

type opInfo struct {
	name   string
	layout Layout
}

var opcodes = [...]opInfo{
	OP_MOVE:      {"MOVE", IABC},
	OP_LOADK:     {"LOADK", IABx},
	OP_LOADBOOL:  {"LOADBOOL", IABC},
	OP_LOADNIL:   {"LOADNIL", IABC},
	OP_GETUPVAL:  {"GETUPVAL", IABC},
	OP_GETGLOBAL: {"GETGLOBAL", IABx},
	OP_GETTABLE:  {"GETTABLE", IABC},
	OP_SETGLOBAL: {"SETGLOBAL", IABx},
	OP_SETUPVAL:  {"SETUPVAL", IABC},
	OP_SETTABLE:  {"SETTABLE", IABC},
	OP_NEWTABLE:  {"NEWTABLE", IABC},
	OP_SELF:      {"SELF", IABC},
	OP_ADD:       {"ADD", IABC},
	OP_SUB:       {"SUB", IABC},
	OP_MUL:       {"MUL", IABC},
	OP_DIV:       {"DIV", IABC},
	OP_MOD:       {"MOD", IABC},
	OP_POW:       {"POW", IABC},
	OP_UNM:       {"UNM", IABC},
	OP_NOT:       {"NOT", IABC},
	OP_LEN:       {"LEN", IABC},
	OP_CONCAT:    {"CONCAT", IABC},
	OP_JMP:       {"JMP", IAsBx},
	OP_EQ:        {"EQ", IABC},
	OP_LT:        {"LT", IABC},
	OP_LE:        {"LE", IABC},
	OP_TEST:      {"TEST", IABC},
	OP_TESTSET:   {"TESTSET", IABC},
	OP_CALL:      {"CALL", IABC},
	OP_TAILCALL:  {"TAILCALL", IABC},
	OP_RETURN:    {"RETURN", IABC},
	OP_FORLOOP:   {"FORLOOP", IAsBx},
	OP_FORPREP:   {"FORPREP", IAsBx},
	OP_TFORLOOP:  {"TFORLOOP", IABC},
	OP_SETLIST:   {"SETLIST", IABC},
	OP_CLOSE:     {"CLOSE", IABC},
	OP_CLOSURE:   {"CLOSURE", IABx},
	OP_VARARG:    {"VARARG", IABC},
}

// LayoutOf reports the encoding of op. Opcodes outside the Lua 5.1 set
// are not an error: they report known=false and decode as iABC.
func LayoutOf(op Opcode) (layout Layout, known bool) {
	if int(op) >= len(opcodes) {
		return IABC, false
	}
	return opcodes[op].layout, true
}

func (op Opcode) String() string {
	if int(op) >= len(opcodes) {
		return "OP_" + strconv.Itoa(int(op))
	}
	return opcodes[op].name
}
