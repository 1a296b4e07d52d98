package core

import (
	"github.com/chriserin/bolts/internal/bitarray"
)

// A DataModel is both a grammar rule and, once parsed, a concrete value of
// that rule. DataModels are immutable: every change produces a new value.
type DataModel interface {
	Parser
	Serializer
	Ast
	Fuzzer
	Vectorizer
	Cloner
	Breeder
	Named
}

type Parser interface {
	// Parse consumes a prefix of in matching the rule and returns a new
	// model carrying the parsed bits. On failure in is left untouched and
	// the error is a *ParseError.
	Parse(in *bitarray.BitArray, ctx *Context) (DataModel, error)
}

type Serializer interface {
	// Serialize writes the bits this value represents.
	Serialize(out *bitarray.BitArray)
}

type Ast interface {
	Debug() string
}

type Fuzzer interface {
	// Fuzz returns a finite list of mutated variants of the receiver.
	Fuzz() []DataModel
}

type Vectorizer interface {
	// DoFeatures adds every feature name reachable from the rule.
	DoFeatures(set FeatureSet)
	// DoVectorization tallies the receiver at depth and its children below.
	DoVectorization(fv *FeatureVector, depth int)
}

type Cloner interface {
	Clone() DataModel
}

type Breeder interface {
	Breed(other DataModel) DataModel
}

type Named interface {
	Name() string
	// SetName returns a copy carrying a fresh Base with the given name.
	SetName(name string) DataModel
}

// Integer is implemented by models that decode to an unsigned integer.
type Integer interface {
	Int() uint64
}

// Wrapper is implemented by models that wrap a single chosen child.
type Wrapper interface {
	Child() DataModel
}

// Base holds the identity shared by every value derived from one rule.
type Base struct {
	name string
}

func NewBase(name string) *Base {
	return &Base{name: name}
}

func (b *Base) Name() string { return b.name }

// Rule is embedded by models to share a Base and pick up the default
// Named and Vectorizer behavior of a terminal.
type Rule struct {
	base *Base
}

func NewRule(name string) Rule {
	return Rule{base: NewBase(name)}
}

func (r Rule) Name() string { return r.base.name }

func (r Rule) Base() *Base { return r.base }

func (r Rule) DoFeatures(set FeatureSet) {
	set.Add(r.base.name)
}

func (r Rule) DoVectorization(fv *FeatureVector, depth int) {
	fv.Tally(r.base.name, depth)
}
