package binchunk

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnexpectedEnd   = errors.New("unexpected end of chunk data")
	ErrBadSignature    = errors.New("not a precompiled chunk")
	ErrBadVersion      = errors.New("version mismatch")
	ErrBadEndianness   = errors.New("invalid endianness flag")
	ErrBadIntegralFlag = errors.New("invalid integral flag")
	ErrBadSize         = errors.New("unsupported size in size table")
	ErrIntOverflow     = errors.New("integer exceeds int64 range")
	ErrBadCount        = errors.New("list count exceeds remaining data")
	ErrUnknownConstant = errors.New("unknown constant type")
	ErrTooDeep         = errors.New("function nesting too deep")
)

// DecodeError pins a format error to the byte offset and the function
// (path of child indexes from the main function) where it happened.
type DecodeError struct {
	Path []int
	Pos  int
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	var sb strings.Builder
	if e.Path != nil {
		sb.WriteString("function ")
		sb.WriteString(FormatPath(e.Path))
		sb.WriteString(": ")
	}
	sb.WriteString(e.What)
	sb.WriteString(" at offset ")
	sb.WriteString(strconv.Itoa(e.Pos))
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FormatPath renders a function path as "main", "main/0", "main/0/2"...
func FormatPath(path []int) string {
	var sb strings.Builder
	sb.WriteString("main")
	for _, idx := range path {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

func unknownConstant(tag byte) error {
	return fmt.Errorf("%w: %d", ErrUnknownConstant, tag)
}
