package chain

import (
	"encoding/binary"
	"math"
)

// Marshaler is implemented by all types that know their canonical
// little-endian wire form.
type Marshaler interface {
	Marshal(e *Encoder) error
}

// Encoder appends the canonical little-endian wire encoding of chain
// values to a growable buffer. An encoder must not be shared between
// concurrent encode calls; each serialization owns its own instance.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

// Bytes returns the accumulated encoding.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) grow(n int) []byte {
	l := len(e.buf)
	if l+n > cap(e.buf) {
		newcap := 2 * cap(e.buf)
		if newcap == 0 {
			newcap = l + n
		}
		for newcap < l+n {
			newcap *= 2
		}
		buf := make([]byte, l, newcap)
		copy(buf, e.buf)
		e.buf = buf
	}
	e.buf = e.buf[:l+n]
	return e.buf[l:]
}

// WriteRaw appends b without any length prefix.
func (e *Encoder) WriteRaw(b []byte) {
	copy(e.grow(len(b)), b)
}

// WriteUint8 appends one byte.
func (e *Encoder) WriteUint8(v uint8) {
	e.grow(1)[0] = v
}

// WriteBool appends a bool as one byte.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

// WriteUint16 appends v little-endian.
func (e *Encoder) WriteUint16(v uint16) {
	binary.LittleEndian.PutUint16(e.grow(2), v)
}

// WriteUint32 appends v little-endian.
func (e *Encoder) WriteUint32(v uint32) {
	binary.LittleEndian.PutUint32(e.grow(4), v)
}

// WriteUint64 appends v little-endian.
func (e *Encoder) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(e.grow(8), v)
}

func (e *Encoder) WriteInt8(v int8) {
	e.WriteUint8(uint8(v))
}

func (e *Encoder) WriteInt16(v int16) {
	e.WriteUint16(uint16(v))
}

func (e *Encoder) WriteInt32(v int32) {
	e.WriteUint32(uint32(v))
}

func (e *Encoder) WriteInt64(v int64) {
	e.WriteUint64(uint64(v))
}

// WriteFloat32 appends the IEEE 754 bits of v little-endian.
func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends the IEEE 754 bits of v little-endian.
func (e *Encoder) WriteFloat64(v float64) {
	e.WriteUint64(math.Float64bits(v))
}

// WriteVarUint32 appends v as unsigned LEB128, 7 bits per byte with the
// high bit marking continuation.
func (e *Encoder) WriteVarUint32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		e.WriteUint8(b)
		if v == 0 {
			return
		}
	}
}

// WriteVarInt32 appends v zig-zag folded into unsigned LEB128.
func (e *Encoder) WriteVarInt32(v int32) {
	e.WriteVarUint32(uint32((v << 1) ^ (v >> 31)))
}

// WriteBytes appends a var-uint length prefix followed by b.
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteVarUint32(uint32(len(b)))
	e.WriteRaw(b)
}

// WriteString appends s as length-prefixed UTF-8 bytes.
func (e *Encoder) WriteString(s string) {
	e.WriteBytes([]byte(s))
}
