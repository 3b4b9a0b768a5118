package binchunk

import (
	"fmt"
	"strconv"
)

// SizeTable holds the byte widths declared by the header. Every
// variable-width read after the header uses it.
type SizeTable struct {
	Int         byte `json:"int"`
	SizeT       byte `json:"size_t"`
	Instruction byte `json:"instruction"`
	Number      byte `json:"number"`
}

type Header struct {
	Signature   [4]byte   `json:"-"`
	Version     string    `json:"version"`
	VersionByte byte      `json:"-"`
	Format      byte      `json:"formatVersion"`
	Endianness  byte      `json:"endianess"`
	Sizes       SizeTable `json:"sizes"`
	Integral    byte      `json:"integral"`
}

func (h Header) LittleEndian() bool {
	return h.Endianness == LITTLE_ENDIAN
}

func readHeader(r *reader) (Header, error) {
	var h Header
	if r.remaining() < LUAC_HEADERSIZE {
		return h, fmt.Errorf("%w: header needs %d bytes, have %d", ErrUnexpectedEnd, LUAC_HEADERSIZE, r.remaining())
	}

	sig, _ := r.readBytes(len(LUA_SIGNATURE))
	copy(h.Signature[:], sig)
	if string(sig) != LUA_SIGNATURE {
		return h, fmt.Errorf("%w: signature %q", ErrBadSignature, sig)
	}

	h.VersionByte, _ = r.readByte()
	if h.VersionByte != LUAC_VERSION {
		return h, fmt.Errorf("%w: got %#x, expected %#x (Lua 5.1)", ErrBadVersion, h.VersionByte, LUAC_VERSION)
	}
	h.Version = versionString(h.VersionByte)
	h.Format, _ = r.readByte()

	h.Endianness, _ = r.readByte()
	if h.Endianness != BIG_ENDIAN && h.Endianness != LITTLE_ENDIAN {
		return h, fmt.Errorf("%w: %d", ErrBadEndianness, h.Endianness)
	}

	h.Sizes.Int, _ = r.readByte()
	h.Sizes.SizeT, _ = r.readByte()
	h.Sizes.Instruction, _ = r.readByte()
	h.Sizes.Number, _ = r.readByte()
	for _, s := range []struct {
		name string
		size byte
	}{
		{"int", h.Sizes.Int},
		{"size_t", h.Sizes.SizeT},
		{"instruction", h.Sizes.Instruction},
		{"number", h.Sizes.Number},
	} {
		if s.size < 1 || s.size > 8 {
			return h, fmt.Errorf("%w: %s is %d bytes, expected 1-8", ErrBadSize, s.name, s.size)
		}
	}

	h.Integral, _ = r.readByte()
	if h.Integral > 1 {
		return h, fmt.Errorf("%w: %d", ErrBadIntegralFlag, h.Integral)
	}

	r.sizes = h.Sizes
	r.bigEndian = !h.LittleEndian()
	r.integral = h.Integral == 1
	return h, nil
}

// versionString turns 0x51 into "5.1".
func versionString(v byte) string {
	hex := strconv.FormatUint(uint64(v), 16)
	if len(hex) < 2 {
		return hex
	}
	return hex[:1] + "." + hex[1:2]
}
