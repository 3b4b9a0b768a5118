package binchunk

import (
	"math"

	"github.com/fxamacker/cbor/v2"
)

type ConstantKind byte

func (k ConstantKind) String() string {
	switch k {
	case TAG_NIL:
		return "nil"
	case TAG_BOOLEAN:
		return "boolean"
	case TAG_NUMBER:
		return "number"
	case TAG_STRING:
		return "string"
	}
	return "unknown"
}

// Constant is one entry of a function's constant table.
type Constant struct {
	Kind   ConstantKind
	Bool   bool
	Number float64
	String string
}

// Value returns nil, bool, float64 or string.
func (c Constant) Value() any {
	switch c.Kind {
	case TAG_BOOLEAN:
		return c.Bool
	case TAG_NUMBER:
		return c.Number
	case TAG_STRING:
		return c.String
	}
	return nil
}

// MarshalJSON emits the bare value. Strings carry one code point per
// byte. JSON has no infinity literal, so infinite numbers are written as
// the strings "Infinity"/"-Infinity".
func (c Constant) MarshalJSON() ([]byte, error) {
	if c.Kind == TAG_NUMBER && math.IsInf(c.Number, 0) {
		if c.Number > 0 {
			return []byte(`"Infinity"`), nil
		}
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(c.treeValue())
}

func (c Constant) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(c.treeValue())
}

// treeValue is Value with strings passed through byteRunes.
func (c Constant) treeValue() any {
	if c.Kind == TAG_STRING {
		return byteRunes(c.String)
	}
	return c.Value()
}

func readConstant(r *reader) (Constant, error) {
	tag, err := r.readByte()
	if err != nil {
		return Constant{}, err
	}

	c := Constant{Kind: ConstantKind(tag)}
	switch c.Kind {
	case TAG_NIL:
	case TAG_BOOLEAN:
		b, err := r.readByte()
		if err != nil {
			return c, err
		}
		c.Bool = b != 0
	case TAG_NUMBER:
		c.Number, err = r.readNumber()
	case TAG_STRING:
		c.String, err = r.readString()
	default:
		return c, unknownConstant(tag)
	}
	return c, err
}
