package chain

import (
	"encoding/binary"
	"math"
)

// Unmarshaler is implemented by all types that can reconstruct
// themselves from their canonical wire form.
type Unmarshaler interface {
	Unmarshal(d *Decoder) error
}

// Decoder reads chain values from a byte slice, advancing a position.
// Reads never copy more than the requested length and fail with
// ErrUnexpectedEOF when fewer bytes remain than requested.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder creates a decoder over data. The decoder does not take
// ownership of the slice but byte-slice reads alias into it.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// Pos returns the current read position.
func (d *Decoder) Pos() int {
	return d.pos
}

// ReadRaw consumes and returns the next n bytes.
func (d *Decoder) ReadRaw(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *Decoder) ReadUint8() (uint8, error) {
	b, err := d.ReadRaw(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadUint8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.ReadRaw(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) ReadUint32() (uint32, error) {
	b, err := d.ReadRaw(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) ReadUint64() (uint64, error) {
	b, err := d.ReadRaw(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.ReadUint8()
	return int8(v), err
}

func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err
}

func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	return math.Float32frombits(v), err
}

func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadVarUint32 reads an unsigned LEB128 value of at most 32 bits.
func (d *Decoder) ReadVarUint32() (uint32, error) {
	var v uint64
	var shift uint
	for {
		b, err := d.ReadUint8()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift >= 35 {
			return 0, ErrVarIntOverflow
		}
	}
	if v > math.MaxUint32 {
		return 0, ErrVarIntOverflow
	}
	return uint32(v), nil
}

// ReadVarInt32 reads a zig-zag folded LEB128 value.
func (d *Decoder) ReadVarInt32() (int32, error) {
	v, err := d.ReadVarUint32()
	if err != nil {
		return 0, err
	}
	return int32(v>>1) ^ -int32(v&1), nil
}

// ReadBytes reads a var-uint length prefix then that many bytes.
func (d *Decoder) ReadBytes() ([]byte, error) {
	length, err := d.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	if uint32(d.Remaining()) < length {
		return nil, ErrUnexpectedEOF
	}
	return d.ReadRaw(int(length))
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
