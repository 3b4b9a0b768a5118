package binchunk

/*
  31      23      14       6      0
  | B:9    | C:9    | A:8    | op:6 |  iABC
  | Bx:18           | A:8    | op:6 |  iABx
  | sBx:18          | A:8    | op:6 |  iAsBx
*/

const (
	SIZE_OP = 6
	SIZE_A  = 8
	SIZE_B  = 9
	SIZE_C  = 9
	SIZE_Bx = SIZE_B + SIZE_C

	POS_OP = 0
	POS_A  = POS_OP + SIZE_OP
	POS_C  = POS_A + SIZE_A
	POS_B  = POS_C + SIZE_C
	POS_Bx = POS_C

	MAXARG_Bx  = 1<<SIZE_Bx - 1
	MAXARG_sBx = MAXARG_Bx >> 1 // 131071
)

// Instruction is a decoded instruction word. B holds Bx or sBx for the
// iABx and iAsBx layouts, in which case C is 0.
type Instruction struct {
	Op Opcode
	A  int
	B  int
	C  int
}

// InstructionObject is the labelled form of an instruction kept for
// consumers of the older output shape.
type InstructionObject struct {
	Op int `json:"op"`
	A  int `json:"A"`
	B  int `json:"B"`
	C  int `json:"C"`
}

func DecodeInstruction(word uint32) Instruction {
	i := Instruction{
		Op: Opcode(word >> POS_OP & (1<<SIZE_OP - 1)),
		A:  int(word >> POS_A & (1<<SIZE_A - 1)),
	}

	layout, _ := LayoutOf(i.Op)
	switch layout {
	case IABx:
		i.B = int(word >> POS_Bx & MAXARG_Bx)
	case IAsBx:
		i.B = int(word>>POS_Bx&MAXARG_Bx) - MAXARG_sBx
	default:
		i.B = int(word >> POS_B & (1<<SIZE_B - 1))
		i.C = int(word >> POS_C & (1<<SIZE_C - 1))
	}
	return i
}

func (i Instruction) Layout() Layout {
	l, _ := LayoutOf(i.Op)
	return l
}

func (i Instruction) Tuple() [4]int {
	return [4]int{int(i.Op), i.A, i.B, i.C}
}

func (i Instruction) Object() InstructionObject {
	return InstructionObject{Op: int(i.Op), A: i.A, B: i.B, C: i.C}
}

// readInstruction reads one word of Sizes.Instruction bytes. Only the low
// 32 bits carry fields.
func readInstruction(r *reader) (Instruction, error) {
	word, err := r.readUint(r.sizes.Instruction)
	if err != nil {
		return Instruction{}, err
	}
	return DecodeInstruction(uint32(word)), nil
}
