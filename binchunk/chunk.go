package binchunk

// MaxDepth bounds function nesting, mirroring LUAI_MAXCCALLS.
const MaxDepth = 200

type Local struct {
	Name    string `json:"varname"`
	StartPC int64  `json:"startpc"`
	EndPC   int64  `json:"endpc"`
}

// Chunk is one function prototype together with its nested prototypes.
type Chunk struct {
	SourceName      string
	LineDefined     int64
	LastLineDefined int64
	UpvalueCount    byte
	ParamCount      byte
	IsVararg        byte
	MaxStackSize    byte
	Instructions    []Instruction
	Constants       []Constant
	Functions       []*Chunk
	// debug info, nil when Stripped
	LinePositions []int64
	Locals        []Local
	Upvalues      []string
	Stripped      bool
	// DebugSizes are the list lengths found in the file, stripped or not.
	DebugSizes DebugSizes
}

type DebugSizes struct {
	LinePositions int
	Locals        int
	Upvalues      int
}

// chunkReader reads one prototype at path. Errors from nested prototypes
// are returned untouched so the innermost path is the one reported.
type chunkReader struct {
	r    *reader
	cfg  Config
	path []int
}

func (cr chunkReader) fail(what string, err error) error {
	path := cr.path
	if path == nil {
		path = []int{}
	}
	return &DecodeError{Path: path, Pos: cr.r.pos, What: what, Err: err}
}

func readChunk(r *reader, cfg Config, path []int) (*Chunk, error) {
	cr := chunkReader{r: r, cfg: cfg, path: path}
	if len(path) > MaxDepth {
		return nil, cr.fail("function", ErrTooDeep)
	}
	return cr.read()
}

func (cr chunkReader) read() (*Chunk, error) {
	r := cr.r
	c := &Chunk{}
	var err error

	if c.SourceName, err = r.readString(); err != nil {
		return nil, cr.fail("source name", err)
	}
	if c.LineDefined, err = r.readInt(); err != nil {
		return nil, cr.fail("line defined", err)
	}
	if c.LastLineDefined, err = r.readInt(); err != nil {
		return nil, cr.fail("last line defined", err)
	}
	fixed, err := r.readBytes(4)
	if err != nil {
		return nil, cr.fail("function header", err)
	}
	c.UpvalueCount = fixed[0]
	c.ParamCount = fixed[1]
	c.IsVararg = fixed[2]
	c.MaxStackSize = fixed[3]

	if c.Instructions, err = cr.readInstructions(); err != nil {
		return nil, err
	}
	if c.Constants, err = cr.readConstants(); err != nil {
		return nil, err
	}
	if c.Functions, err = cr.readFunctions(); err != nil {
		return nil, err
	}

	lines, err := cr.readLines()
	if err != nil {
		return nil, err
	}
	locals, err := cr.readLocals()
	if err != nil {
		return nil, err
	}
	upvalues, err := cr.readUpvalues()
	if err != nil {
		return nil, err
	}

	c.DebugSizes = DebugSizes{
		LinePositions: len(lines),
		Locals:        len(locals),
		Upvalues:      len(upvalues),
	}
	if cr.cfg.StripDebugging {
		c.Stripped = true
	} else {
		c.LinePositions = lines
		c.Locals = locals
		c.Upvalues = upvalues
	}
	return c, nil
}

func (cr chunkReader) readInstructions() ([]Instruction, error) {
	n, err := cr.r.readCount()
	if err != nil {
		return nil, cr.fail("instruction count", err)
	}
	code := make([]Instruction, n)
	for i := range code {
		if code[i], err = readInstruction(cr.r); err != nil {
			return nil, cr.fail("instruction", err)
		}
	}
	return code, nil
}

func (cr chunkReader) readConstants() ([]Constant, error) {
	n, err := cr.r.readCount()
	if err != nil {
		return nil, cr.fail("constant count", err)
	}
	consts := make([]Constant, n)
	for i := range consts {
		if consts[i], err = readConstant(cr.r); err != nil {
			return nil, cr.fail("constant", err)
		}
	}
	return consts, nil
}

func (cr chunkReader) readFunctions() ([]*Chunk, error) {
	n, err := cr.r.readCount()
	if err != nil {
		return nil, cr.fail("function count", err)
	}
	protos := make([]*Chunk, n)
	for i := range protos {
		path := make([]int, len(cr.path), len(cr.path)+1)
		copy(path, cr.path)
		if protos[i], err = readChunk(cr.r, cr.cfg, append(path, i)); err != nil {
			return nil, err
		}
	}
	return protos, nil
}

func (cr chunkReader) readLines() ([]int64, error) {
	n, err := cr.r.readCount()
	if err != nil {
		return nil, cr.fail("line info count", err)
	}
	lines := make([]int64, n)
	for i := range lines {
		if lines[i], err = cr.r.readInt(); err != nil {
			return nil, cr.fail("line info", err)
		}
	}
	return lines, nil
}

func (cr chunkReader) readLocals() ([]Local, error) {
	n, err := cr.r.readCount()
	if err != nil {
		return nil, cr.fail("local count", err)
	}
	locals := make([]Local, n)
	for i := range locals {
		if locals[i].Name, err = cr.r.readString(); err != nil {
			return nil, cr.fail("local name", err)
		}
		if locals[i].StartPC, err = cr.r.readInt(); err != nil {
			return nil, cr.fail("local startpc", err)
		}
		if locals[i].EndPC, err = cr.r.readInt(); err != nil {
			return nil, cr.fail("local endpc", err)
		}
	}
	return locals, nil
}

func (cr chunkReader) readUpvalues() ([]string, error) {
	n, err := cr.r.readCount()
	if err != nil {
		return nil, cr.fail("upvalue count", err)
	}
	names := make([]string, n)
	for i := range names {
		if names[i], err = cr.r.readString(); err != nil {
			return nil, cr.fail("upvalue name", err)
		}
	}
	return names, nil
}
