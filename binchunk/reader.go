package binchunk

import (
	"bytes"
	"fmt"
	"math"
)

// reader is the cursor over one chunk file. A decode owns its reader;
// the cursor only ever moves forward.
type reader struct {
	data      []byte
	pos       int
	sizes     SizeTable
	bigEndian bool
	integral  bool
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) Pos() int {
	return r.pos
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEnd
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrUnexpectedEnd, n, r.remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// readUint composes width bytes into an unsigned value in the file's
// byte order. width is bounded to [1,8] by the header.
func (r *reader) readUint(width byte) (uint64, error) {
	b, err := r.readBytes(int(width))
	if err != nil {
		return 0, err
	}
	var v uint64
	if r.bigEndian {
		for i := 0; i < len(b); i++ {
			v = v<<8 | uint64(b[i])
		}
	} else {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
	}
	return v, nil
}

// readInt reads a C int. The value is taken as unsigned; with an 8 byte
// int anything above math.MaxInt64 is reported instead of wrapping.
func (r *reader) readInt() (int64, error) {
	v, err := r.readUint(r.sizes.Int)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d", ErrIntOverflow, v)
	}
	return int64(v), nil
}

func (r *reader) readSizeT() (uint64, error) {
	return r.readUint(r.sizes.SizeT)
}

// readCount reads a list length. Every element takes at least one byte,
// so a count larger than what is left can never be satisfied.
func (r *reader) readCount() (int, error) {
	n, err := r.readInt()
	if err != nil {
		return 0, err
	}
	if n > int64(r.remaining()) {
		return 0, fmt.Errorf("%w: %d", ErrBadCount, n)
	}
	return int(n), nil
}

func (r *reader) readNumber() (float64, error) {
	width := r.sizes.Number
	bits, err := r.readUint(width)
	if err != nil {
		return 0, err
	}
	if r.integral {
		shift := 64 - 8*uint(width)
		return float64(int64(bits<<shift) >> shift), nil
	}
	if width == 4 {
		return decodeFloat32(uint32(bits)), nil
	}
	return decodeFloat64(bits), nil
}

// decodeFloat64 interprets a binary64 pattern. A zero exponent (zeros and
// subnormals) decodes to 0 and an all-ones exponent (infinities and NaN)
// to +Inf.
func decodeFloat64(bits uint64) float64 {
	switch bits >> 52 & 0x7ff {
	case 0:
		return 0
	case 0x7ff:
		return math.Inf(1)
	}
	return math.Float64frombits(bits)
}

func decodeFloat32(bits uint32) float64 {
	switch bits >> 23 & 0xff {
	case 0:
		return 0
	case 0xff:
		return math.Inf(1)
	}
	return float64(math.Float32frombits(bits))
}

// readString reads a size_t length (which counts the trailing NUL) and
// the bytes, cut at the first NUL.
func (r *reader) readString() (string, error) {
	n, err := r.readSizeT()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if n > uint64(r.remaining()) {
		return "", fmt.Errorf("%w: string of %d bytes, have %d", ErrUnexpectedEnd, n, r.remaining())
	}
	b, err := r.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}
