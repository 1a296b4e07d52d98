package library

import (
	"fmt"
	"strings"

	"github.com/chriserin/bolts/internal/bitarray"
	"github.com/chriserin/bolts/internal/core"
)

// Sequence is an ordered composite of named children that must all match
// back to back.
type Sequence struct {
	core.Rule
	fields *core.ChildMap
}

// NewSequence returns a rule matching each entry in order.
func NewSequence(name string, entries ...core.Entry) *Sequence {
	return &Sequence{Rule: core.NewRule(name), fields: core.NewChildMap(entries...)}
}

// Field is shorthand for building a sequence entry.
func Field(key string, m core.DataModel) core.Entry {
	return core.Entry{Key: key, Value: m}
}

// Get returns the child stored under key.
func (s *Sequence) Get(key string) (core.DataModel, bool) {
	return s.fields.Get(key)
}

// Fields returns a copy of the children.
func (s *Sequence) Fields() *core.ChildMap {
	return s.fields.Clone()
}

func (s *Sequence) withFields(fields *core.ChildMap) *Sequence {
	return &Sequence{Rule: s.Rule, fields: fields}
}

func (s *Sequence) Parse(in *bitarray.BitArray, ctx *core.Context) (core.DataModel, error) {
	cin := in.Clone()
	parsed := s.fields.Empty()
	for i, rule := range s.fields.Vals() {
		cctx := core.NewContext(ctx, s.fields.Key(i), core.WithSiblings(parsed.Clone()))
		got, err := rule.Parse(cin, cctx)
		if err != nil {
			return nil, err
		}
		parsed.Push(got)
	}
	in.AdvanceToMatch(cin)
	return s.withFields(parsed), nil
}

func (s *Sequence) Serialize(out *bitarray.BitArray) {
	for _, v := range s.fields.Vals() {
		v.Serialize(out)
	}
}

func (s *Sequence) Debug() string {
	parts := make([]string, 0, s.fields.Len())
	for i, v := range s.fields.Vals() {
		parts = append(parts, fmt.Sprintf("%s: %s", s.fields.Key(i), v.Debug()))
	}
	return s.Name() + "{" + strings.Join(parts, ", ") + "}"
}

// Fuzz mutates one position at a time and rewraps.
func (s *Sequence) Fuzz() []core.DataModel {
	var out []core.DataModel
	for i, v := range s.fields.Vals() {
		for _, m := range v.Fuzz() {
			fields := s.fields.Clone()
			fields.SetInd(i, m)
			out = append(out, s.withFields(fields))
		}
	}
	return out
}

func (s *Sequence) DoFeatures(set core.FeatureSet) {
	set.Add(s.Name())
	for _, v := range s.fields.Vals() {
		v.DoFeatures(set)
	}
}

func (s *Sequence) DoVectorization(fv *core.FeatureVector, depth int) {
	fv.Tally(s.Name(), depth)
	for _, v := range s.fields.Vals() {
		v.DoVectorization(fv, depth+1)
	}
}

func (s *Sequence) Clone() core.DataModel {
	return s.withFields(s.fields.Clone())
}

// Breed alternates positions: even ones from s, odd ones from other. Other
// must share the schema, otherwise s is cloned.
func (s *Sequence) Breed(other core.DataModel) core.DataModel {
	o, ok := other.(*Sequence)
	if !ok || !s.fields.SameSchema(o.fields) || o.fields.Len() != s.fields.Len() {
		return s.Clone()
	}
	fields := s.fields.Clone()
	for i := 1; i < fields.Len(); i += 2 {
		fields.SetInd(i, o.fields.Vals()[i])
	}
	return s.withFields(fields)
}

func (s *Sequence) SetName(name string) core.DataModel {
	return &Sequence{Rule: core.NewRule(name), fields: s.fields}
}
