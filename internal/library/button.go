package library

import (
	"github.com/chriserin/bolts/internal/bitarray"
	"github.com/chriserin/bolts/internal/core"
)

// Button is a zero-width rule that matches only at the end of input.
type Button struct {
	core.Rule
}

func NewButton() *Button {
	return &Button{Rule: core.NewRule("Button")}
}

func (b *Button) Parse(in *bitarray.BitArray, ctx *core.Context) (core.DataModel, error) {
	if _, more := in.Clone().Eat(1); more {
		return nil, core.Fail(ctx, in, "expected end of input")
	}
	return &Button{Rule: b.Rule}, nil
}

func (b *Button) Serialize(out *bitarray.BitArray) {}

func (b *Button) Debug() string {
	return b.Name()
}

func (b *Button) Fuzz() []core.DataModel {
	return nil
}

func (b *Button) Clone() core.DataModel {
	return &Button{Rule: b.Rule}
}

func (b *Button) Breed(other core.DataModel) core.DataModel {
	return b.Clone()
}

func (b *Button) SetName(name string) core.DataModel {
	return &Button{Rule: core.NewRule(name)}
}
