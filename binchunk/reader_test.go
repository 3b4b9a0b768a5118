package binchunk

import (
	"errors"
	"math"
	"testing"
)

func sizedReader(data []byte) *reader {
	r := newReader(data)
	r.sizes = SizeTable{Int: 4, SizeT: 4, Instruction: 4, Number: 8}
	return r
}

func TestReadIntLittleEndian(t *testing.T) {
	r := sizedReader([]byte{0x78, 0x56, 0x34, 0x12, 0xff})
	v, err := r.readInt()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x12345678 {
		t.Fatalf("int %#x", v)
	}
	if r.Pos() != 4 {
		t.Fatalf("pos %d", r.Pos())
	}
}

func TestReadIntBigEndian(t *testing.T) {
	r := sizedReader([]byte{0x12, 0x34, 0x56, 0x78})
	r.bigEndian = true
	v, err := r.readInt()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x12345678 {
		t.Fatalf("int %#x", v)
	}
}

func TestReadIntWidths(t *testing.T) {
	cases := []struct {
		width byte
		data  []byte
		want  int64
	}{
		{1, []byte{0xfe}, 0xfe},
		{2, []byte{0x01, 0x02}, 0x0201},
		{4, []byte{0xff, 0xff, 0xff, 0xff}, 0xffffffff},
		{8, []byte{1, 0, 0, 0, 0, 0, 0, 0x7f}, 0x7f00000000000001},
	}
	for _, c := range cases {
		r := sizedReader(c.data)
		r.sizes.Int = c.width
		v, err := r.readInt()
		if err != nil {
			t.Fatalf("width %d: %v", c.width, err)
		}
		if v != c.want {
			t.Fatalf("width %d: got %#x, want %#x", c.width, v, c.want)
		}
	}
}

// 8 byte ints above MaxInt64 are rejected, not wrapped to negatives.
func TestReadIntOverflow(t *testing.T) {
	r := sizedReader([]byte{0, 0, 0, 0, 0, 0, 0, 0x80})
	r.sizes.Int = 8
	if _, err := r.readInt(); !errors.Is(err, ErrIntOverflow) {
		t.Fatalf("expected ErrIntOverflow, got %v", err)
	}

	r = sizedReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f})
	r.sizes.Int = 8
	v, err := r.readInt()
	if err != nil || v != math.MaxInt64 {
		t.Fatalf("max int64: %d %v", v, err)
	}
}

func TestReadShort(t *testing.T) {
	r := sizedReader([]byte{1, 2})
	if _, err := r.readInt(); !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("expected ErrUnexpectedEnd, got %v", err)
	}
	if _, err := newReader(nil).readByte(); !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("expected ErrUnexpectedEnd, got %v", err)
	}
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func TestReadNumber(t *testing.T) {
	cases := []struct {
		name string
		bits uint64
		want float64
	}{
		{"one", 0x3ff0000000000000, 1},
		{"negative", math.Float64bits(-2.5), -2.5},
		{"fraction", math.Float64bits(0.1), 0.1},
		{"zero exponent", 0x0000000000000001, 0},
		{"negative zero", 0x8000000000000000, 0},
		{"inf", 0x7ff0000000000000, math.Inf(1)},
		{"nan is inf", 0x7ff8000000000000, math.Inf(1)},
		{"negative inf is inf", 0xfff0000000000000, math.Inf(1)},
	}
	for _, c := range cases {
		r := sizedReader(le64(c.bits))
		v, err := r.readNumber()
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if v != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, v, c.want)
		}
		if r.Pos() != 8 {
			t.Fatalf("%s: pos %d", c.name, r.Pos())
		}
	}
}

func TestReadNumberFloat32(t *testing.T) {
	bits := math.Float32bits(1.5)
	r := sizedReader([]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)})
	r.sizes.Number = 4
	v, err := r.readNumber()
	if err != nil || v != 1.5 {
		t.Fatalf("float32: %v %v", v, err)
	}

	r = sizedReader([]byte{0, 0, 0x80, 0x7f})
	r.sizes.Number = 4
	if v, _ := r.readNumber(); !math.IsInf(v, 1) {
		t.Fatalf("float32 inf: %v", v)
	}
}

func TestReadNumberIntegral(t *testing.T) {
	r := sizedReader([]byte{0xfe, 0xff, 0xff, 0xff})
	r.sizes.Number = 4
	r.integral = true
	v, err := r.readNumber()
	if err != nil || v != -2 {
		t.Fatalf("integral: %v %v", v, err)
	}
}

func TestReadString(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
		pos  int
	}{
		{"empty", []byte{0, 0, 0, 0, 'x'}, "", 4},
		{"only nul", []byte{1, 0, 0, 0, 0, 'x'}, "", 5},
		{"plain", []byte{4, 0, 0, 0, 'a', 'b', 'c', 0}, "abc", 8},
		{"embedded nul", []byte{4, 0, 0, 0, 'a', 0, 'c', 0}, "a", 8},
	}
	for _, c := range cases {
		r := sizedReader(c.data)
		s, err := r.readString()
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if s != c.want || r.Pos() != c.pos {
			t.Fatalf("%s: got %q at %d, want %q at %d", c.name, s, r.Pos(), c.want, c.pos)
		}
	}
}

func TestReadStringTooLong(t *testing.T) {
	r := sizedReader([]byte{0xff, 0xff, 0xff, 0x7f, 'a'})
	if _, err := r.readString(); !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("expected ErrUnexpectedEnd, got %v", err)
	}
}

func TestReadCount(t *testing.T) {
	r := sizedReader([]byte{2, 0, 0, 0, 'a', 'b'})
	n, err := r.readCount()
	if err != nil || n != 2 {
		t.Fatalf("count %d %v", n, err)
	}

	r = sizedReader([]byte{3, 0, 0, 0, 'a', 'b'})
	if _, err := r.readCount(); !errors.Is(err, ErrBadCount) {
		t.Fatalf("expected ErrBadCount, got %v", err)
	}
}
