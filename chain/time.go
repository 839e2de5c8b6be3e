package chain

import (
	"encoding/json"
	"time"
)

const (
	timePointFormat    = "2006-01-02T15:04:05.000"
	timePointSecFormat = "2006-01-02T15:04:05"

	// block timestamps count half seconds since 2000-01-01T00:00:00 UTC
	blockTimestampEpochMs  = 946684800000
	blockTimestampInterval = 500
)

// TimePoint is a moment in time with microsecond resolution.
type TimePoint int64

// TimePointFromTime truncates t to microseconds.
func TimePointFromTime(t time.Time) TimePoint {
	return TimePoint(t.UnixNano() / 1000)
}

// Time converts back to a time.Time in UTC.
func (tp TimePoint) Time() time.Time {
	return time.Unix(0, int64(tp)*1000).UTC()
}

// String renders the node's canonical millisecond layout.
func (tp TimePoint) String() string {
	return tp.Time().Format(timePointFormat)
}

func (tp TimePoint) Marshal(e *Encoder) error {
	e.WriteInt64(int64(tp))
	return nil
}

func (tp *TimePoint) Unmarshal(d *Decoder) error {
	v, err := d.ReadInt64()
	if err != nil {
		return err
	}
	*tp = TimePoint(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (tp TimePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(tp.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (tp *TimePoint) UnmarshalJSON(data []byte) error {
	t, err := unmarshalTimeString(data, timePointFormat)
	if err != nil {
		return err
	}
	*tp = TimePointFromTime(t)
	return nil
}

// TimePointSec is a moment in time with second resolution.
type TimePointSec uint32

// TimePointSecFromTime truncates t to seconds.
func TimePointSecFromTime(t time.Time) TimePointSec {
	return TimePointSec(t.Unix())
}

// Time converts back to a time.Time in UTC.
func (tp TimePointSec) Time() time.Time {
	return time.Unix(int64(tp), 0).UTC()
}

func (tp TimePointSec) String() string {
	return tp.Time().Format(timePointSecFormat)
}

func (tp TimePointSec) Marshal(e *Encoder) error {
	e.WriteUint32(uint32(tp))
	return nil
}

func (tp *TimePointSec) Unmarshal(d *Decoder) error {
	v, err := d.ReadUint32()
	if err != nil {
		return err
	}
	*tp = TimePointSec(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (tp TimePointSec) MarshalJSON() ([]byte, error) {
	return json.Marshal(tp.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (tp *TimePointSec) UnmarshalJSON(data []byte) error {
	t, err := unmarshalTimeString(data, timePointSecFormat)
	if err != nil {
		return err
	}
	*tp = TimePointSecFromTime(t)
	return nil
}

// BlockTimestamp counts half second slots since the year 2000 epoch.
type BlockTimestamp uint32

// BlockTimestampFromTime rounds t down to the containing slot.
func BlockTimestampFromTime(t time.Time) BlockTimestamp {
	ms := t.UnixNano() / int64(time.Millisecond)
	return BlockTimestamp((ms - blockTimestampEpochMs) / blockTimestampInterval)
}

// Time converts back to a time.Time in UTC.
func (bt BlockTimestamp) Time() time.Time {
	ms := int64(bt)*blockTimestampInterval + blockTimestampEpochMs
	return time.Unix(0, ms*int64(time.Millisecond)).UTC()
}

func (bt BlockTimestamp) String() string {
	return bt.Time().Format(timePointFormat)
}

func (bt BlockTimestamp) Marshal(e *Encoder) error {
	e.WriteUint32(uint32(bt))
	return nil
}

func (bt *BlockTimestamp) Unmarshal(d *Decoder) error {
	v, err := d.ReadUint32()
	if err != nil {
		return err
	}
	*bt = BlockTimestamp(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (bt BlockTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(bt.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (bt *BlockTimestamp) UnmarshalJSON(data []byte) error {
	t, err := unmarshalTimeString(data, timePointFormat)
	if err != nil {
		return err
	}
	*bt = BlockTimestampFromTime(t)
	return nil
}

func unmarshalTimeString(data []byte, layout string) (time.Time, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return time.Time{}, err
	}
	// nodes emit timestamps with or without fractional seconds
	for _, l := range []string{layout, timePointFormat, timePointSecFormat} {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
