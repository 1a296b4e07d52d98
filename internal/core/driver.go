package core

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chriserin/bolts/internal/bitarray"
)

var log = commonlog.GetLogger("bolts.core")

// Parse runs root over data from bit 0 under a fresh root context.
func Parse(root DataModel, data []byte) (DataModel, error) {
	return ParseBits(root, bitarray.New(data))
}

// ParseBits runs root over in, advancing it past the consumed prefix on
// success.
func ParseBits(root DataModel, in *bitarray.BitArray) (DataModel, error) {
	ctx := RootContext(root.Name())
	start := in.Head()
	result, err := root.Parse(in, ctx)
	if err != nil {
		log.Debugf("%s: parse failed at bit %d", root.Name(), start)
		return nil, err
	}
	log.Debugf("%s: parsed %d bits", root.Name(), in.Head()-start)
	return result, nil
}

// Serialize writes m into a fresh BitArray.
func Serialize(m DataModel) *bitarray.BitArray {
	out := bitarray.New(nil)
	m.Serialize(out)
	return out
}

// SerializeBytes returns the packed bytes and the exact bit count.
func SerializeBytes(m DataModel) ([]byte, int) {
	out := Serialize(m)
	return out.Bytes(), out.Len()
}

// Consumed returns the bits between before and after, where after was
// derived from a clone of before by parsing.
func Consumed(before, after *bitarray.BitArray) *bitarray.BitArray {
	view, ok := before.Clone().Eat(after.Head() - before.Head())
	if !ok {
		panic("core: cursor moved backwards")
	}
	return view
}

func Debug(m DataModel) string {
	return m.Debug()
}

func Fuzz(m DataModel) []DataModel {
	return m.Fuzz()
}

// Features returns the feature universe reachable from m.
func Features(m DataModel) FeatureSet {
	set := FeatureSet{}
	m.DoFeatures(set)
	return set
}

// Vectorize tallies m into a vector keyed by universe.
func Vectorize(m DataModel, universe FeatureSet) *FeatureVector {
	fv := NewFeatureVectorFor(universe)
	m.DoVectorization(fv, 0)
	return fv
}

// SetName returns a renamed copy of m.
func SetName(m DataModel, name string) DataModel {
	return m.SetName(name)
}

func Breed(a, b DataModel) DataModel {
	return a.Breed(b)
}
