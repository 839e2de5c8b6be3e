package chain

import (
	"encoding/hex"
	"encoding/json"
)

// Checksum160, Checksum256 and Checksum512 are opaque fixed-size
// digests carried through the wire format unchanged.
type (
	Checksum160 [20]byte
	Checksum256 [32]byte
	Checksum512 [64]byte
)

func (c Checksum160) String() string { return hex.EncodeToString(c[:]) }
func (c Checksum256) String() string { return hex.EncodeToString(c[:]) }
func (c Checksum512) String() string { return hex.EncodeToString(c[:]) }

func (c Checksum160) Marshal(e *Encoder) error {
	e.WriteRaw(c[:])
	return nil
}

func (c Checksum256) Marshal(e *Encoder) error {
	e.WriteRaw(c[:])
	return nil
}

func (c Checksum512) Marshal(e *Encoder) error {
	e.WriteRaw(c[:])
	return nil
}

func (c *Checksum160) Unmarshal(d *Decoder) error {
	b, err := d.ReadRaw(len(c))
	if err != nil {
		return err
	}
	copy(c[:], b)
	return nil
}

func (c *Checksum256) Unmarshal(d *Decoder) error {
	b, err := d.ReadRaw(len(c))
	if err != nil {
		return err
	}
	copy(c[:], b)
	return nil
}

func (c *Checksum512) Unmarshal(d *Decoder) error {
	b, err := d.ReadRaw(len(c))
	if err != nil {
		return err
	}
	copy(c[:], b)
	return nil
}

func (c Checksum160) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c Checksum256) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c Checksum512) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Checksum160) UnmarshalJSON(data []byte) error { return unmarshalChecksum(data, c[:]) }
func (c *Checksum256) UnmarshalJSON(data []byte) error { return unmarshalChecksum(data, c[:]) }
func (c *Checksum512) UnmarshalJSON(data []byte) error { return unmarshalChecksum(data, c[:]) }

func unmarshalChecksum(data, dst []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(dst) {
		return ErrInvalidChecksum
	}
	copy(dst, b)
	return nil
}
