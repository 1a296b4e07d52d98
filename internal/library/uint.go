package library

import (
	"fmt"

	"github.com/chriserin/bolts/internal/bitarray"
	"github.com/chriserin/bolts/internal/core"
)

// Uint is a fixed-width unsigned integer read MSB-first.
type Uint struct {
	core.Rule
	width int
	data  *bitarray.BitArray
}

// NewUint returns a rule named name matching exactly width bits. Its
// unparsed value is zero.
func NewUint(name string, width int) *Uint {
	if width < 1 || width > 64 {
		panic(fmt.Sprintf("library: uint width %d outside [1, 64]", width))
	}
	return uintWith(core.NewRule(name), width, 0)
}

func NewU8() *Uint  { return NewUint("U8", 8) }
func NewU16() *Uint { return NewUint("U16", 16) }
func NewU32() *Uint { return NewUint("U32", 32) }
func NewU64() *Uint { return NewUint("U64", 64) }

// U16From returns a U16 holding v.
func U16From(v uint16) *Uint {
	return uintWith(core.NewRule("U16"), 16, uint64(v))
}

func uintWith(rule core.Rule, width int, v uint64) *Uint {
	data := bitarray.New(nil)
	data.AppendUint(v&ones(width), width)
	return &Uint{Rule: rule, width: width, data: data}
}

func (u *Uint) Width() int { return u.width }

// Int decodes the stored bits MSB-first.
func (u *Uint) Int() uint64 {
	return u.data.Peek(u.width)
}

// WithInt returns a copy of u holding v, truncated to the width.
func (u *Uint) WithInt(v uint64) *Uint {
	return uintWith(u.Rule, u.width, v)
}

func (u *Uint) Parse(in *bitarray.BitArray, ctx *core.Context) (core.DataModel, error) {
	data, ok := in.Eat(u.width)
	if !ok {
		return nil, core.Fail(ctx, in, "need %d bits, have %d", u.width, in.Len())
	}
	return &Uint{Rule: u.Rule, width: u.width, data: data}, nil
}

func (u *Uint) Serialize(out *bitarray.BitArray) {
	out.Extend(u.data)
}

func (u *Uint) Debug() string {
	return fmt.Sprintf("%X", u.Int())
}

// Fuzz yields the all-ones and alternating patterns, then zero and the low
// bit flip of the current value. Duplicates and the current value are
// skipped.
func (u *Uint) Fuzz() []core.DataModel {
	cur := u.Int()
	seen := map[uint64]bool{cur: true}
	var out []core.DataModel
	for _, v := range []uint64{ones(u.width), alternating(u.width), 0, cur ^ 1} {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, u.WithInt(v))
	}
	return out
}

func (u *Uint) Clone() core.DataModel {
	return &Uint{Rule: u.Rule, width: u.width, data: u.data.Clone()}
}

// Breed crosses u with another Uint of the same width: the high half comes
// from u and the low half from other.
func (u *Uint) Breed(other core.DataModel) core.DataModel {
	o, ok := other.(*Uint)
	if !ok || o.width != u.width {
		return u.Clone()
	}
	low := ones(u.width / 2)
	return u.WithInt(u.Int()&^low | o.Int()&low)
}

func (u *Uint) SetName(name string) core.DataModel {
	return &Uint{Rule: core.NewRule(name), width: u.width, data: u.data}
}

func ones(width int) uint64 {
	return ^uint64(0) >> uint(64-width)
}

func alternating(width int) uint64 {
	return uint64(0xAAAAAAAAAAAAAAAA) >> uint(64-width)
}
