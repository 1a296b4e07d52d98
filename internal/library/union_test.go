package library

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/bolts/internal/bitarray"
	"github.com/chriserin/bolts/internal/core"
)

func u16OrEnd(opts ...UnionOption) *Union {
	return NewUnion("Word", []core.DataModel{NewU16(), NewButton()}, opts...)
}

func TestUnion_DisambiguatesByLength(t *testing.T) {
	got, err := core.Parse(u16OrEnd(), []byte{0x12, 0x34})
	require.NoError(t, err)

	child := got.(*Union).Child()
	require.NotNil(t, child)
	assert.Equal(t, "U16", child.Name())
	assert.Equal(t, uint64(0x1234), child.(core.Integer).Int())
}

func TestUnion_ChoosesButtonAtEnd(t *testing.T) {
	got, err := core.Parse(u16OrEnd(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Button", got.(*Union).Child().Name())
}

func TestUnion_AdvancesToChosenBranch(t *testing.T) {
	in := bitarray.New([]byte{0x12, 0x34, 0x56})
	_, err := core.ParseBits(u16OrEnd(), in)
	require.NoError(t, err)
	assert.Equal(t, 16, in.Head())
}

func TestUnion_AmbiguityKeepsLast(t *testing.T) {
	a := NewU16().SetName("A")
	b := NewU16().SetName("B")
	u := NewUnion("AorB", []core.DataModel{a, b})

	in := bitarray.New([]byte{0x00, 0x00})
	got, err := core.ParseBits(u, in)
	require.NoError(t, err)

	assert.Equal(t, "B", got.(*Union).Child().Name())
	assert.Equal(t, 16, in.Head())
	assert.Len(t, got.(*Union).Candidates(), 2)
}

func TestUnion_AmbiguityCanKeepFirst(t *testing.T) {
	a := NewU16().SetName("A")
	b := NewU16().SetName("B")
	u := NewUnion("AorB", []core.DataModel{a, b}, WithAmbiguity(PickFirst))

	got, err := core.Parse(u, []byte{0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, "A", got.(*Union).Child().Name())
}

func TestUnion_AmbiguityBetweenWidthsAdvancesBySurvivor(t *testing.T) {
	u := NewUnion("Short", []core.DataModel{NewU16(), NewU8()})
	in := bitarray.New([]byte{0x01, 0x02})

	got, err := core.ParseBits(u, in)
	require.NoError(t, err)
	assert.Equal(t, "U8", got.(*Union).Child().Name())
	assert.Equal(t, 8, in.Head())
}

func TestUnion_AllFailReturnsChildren(t *testing.T) {
	u := NewUnion("Wide", []core.DataModel{NewU16(), NewU32()})
	in := bitarray.New([]byte{0xAB})

	_, err := core.ParseBits(u, in)
	require.Error(t, err)

	var pe *core.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, core.KindChildren, pe.Kind)
	require.Len(t, pe.Failures, 2)
	assert.Equal(t, "U16", pe.Failures[0].Rule())
	assert.Equal(t, "U32", pe.Failures[1].Rule())
	assert.Equal(t, 0, in.Head())
}

func TestUnion_NoCandidatesAlwaysFails(t *testing.T) {
	u := NewUnion("Never", nil)
	_, err := core.Parse(u, []byte{0x01})
	require.Error(t, err)

	var pe *core.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, core.KindChildren, pe.Kind)
	assert.NotNil(t, pe.Failures)
	assert.Empty(t, pe.Failures)

	assert.Nil(t, u.Child())
	assert.Empty(t, u.Fuzz())
	assert.Equal(t, "", u.Debug())
}

func TestUnion_SingleMatchIgnoresPosition(t *testing.T) {
	data := []byte{0x12, 0x34}
	first, err := core.Parse(NewUnion("X", []core.DataModel{NewU16(), NewButton(), NewU32()}), data)
	require.NoError(t, err)
	last, err := core.Parse(NewUnion("X", []core.DataModel{NewU32(), NewButton(), NewU16()}), data)
	require.NoError(t, err)

	assert.Equal(t, first.(*Union).Child().Debug(), last.(*Union).Child().Debug())
	assert.Equal(t, core.Serialize(first).Bytes(), core.Serialize(last).Bytes())
}

func TestUnion_FailureContextsLinkToParent(t *testing.T) {
	u := NewUnion("Wide", []core.DataModel{NewU32()})
	root := core.RootContext("Wide")

	_, err := u.Parse(bitarray.New([]byte{0x01}), root)
	require.Error(t, err)

	leaf := err.(*core.ParseError).Failures[0]
	assert.Same(t, root, leaf.Context.Parent())
	assert.Equal(t, []string{"Wide", "U32"}, leaf.Context.Path())
}

func TestUnion_DebugDelegatesByDefault(t *testing.T) {
	got, err := core.Parse(u16OrEnd(), []byte{0xBE, 0xEF})
	require.NoError(t, err)
	assert.Equal(t, "BEEF", got.Debug())
}

func TestUnion_DebugEmptyPolicy(t *testing.T) {
	got, err := core.Parse(u16OrEnd(WithDebug(DebugEmpty)), []byte{0xBE, 0xEF})
	require.NoError(t, err)
	assert.Equal(t, "", got.Debug())
}

func TestUnion_SerializeDelegates(t *testing.T) {
	got, err := core.Parse(u16OrEnd(), []byte{0xBE, 0xEF})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xBE, 0xEF}, core.Serialize(got).Bytes())
}

func TestUnion_FuzzRewrapsChildMutations(t *testing.T) {
	u := u16OrEnd()
	got, err := core.Parse(u, []byte{0x12, 0x34})
	require.NoError(t, err)

	mutants := core.Fuzz(got)
	require.Len(t, mutants, 4)
	for _, m := range mutants {
		wrapped, ok := m.(*Union)
		require.True(t, ok)
		assert.Equal(t, "Word", wrapped.Name())
		assert.Equal(t, u.Candidates(), wrapped.Candidates())
	}
	assert.Equal(t, "FFFF", mutants[0].Debug())
}

func TestUnion_FeaturesCoverEveryCandidate(t *testing.T) {
	got, err := core.Parse(u16OrEnd(), []byte{0x12, 0x34})
	require.NoError(t, err)

	features := core.Features(got)
	assert.Equal(t, []string{"Button", "U16", "Word"}, features.Names())
}

func TestUnion_VectorizeRecursesIntoChild(t *testing.T) {
	got, err := core.Parse(u16OrEnd(), []byte{0x12, 0x34})
	require.NoError(t, err)

	fv := core.Vectorize(got, core.Features(got))
	assert.Equal(t, []int{1}, fv.Get("Word"))
	assert.Equal(t, []int{0, 1}, fv.Get("U16"))
	assert.Empty(t, fv.Get("Button"))
}

func TestUnion_BreedTakesOtherChild(t *testing.T) {
	u := u16OrEnd()
	a, err := core.Parse(u, []byte{0x12, 0x34})
	require.NoError(t, err)
	b, err := core.Parse(u, nil)
	require.NoError(t, err)

	child := core.Breed(a, b)
	assert.Equal(t, "Button", child.(*Union).Child().Name())

	stranger := core.Breed(a, u16OrEnd())
	assert.Equal(t, "U16", stranger.(*Union).Child().Name())
	assert.Equal(t, "1234", stranger.Debug())
}

func TestUnion_SetNameKeepsCandidates(t *testing.T) {
	u := u16OrEnd()
	renamed := u.SetName("Token").(*Union)
	assert.Equal(t, "Word", u.Name())
	assert.Equal(t, "Token", renamed.Name())
	assert.Equal(t, u.Candidates(), renamed.Candidates())
}

func TestUnion_NestedRoundTrip(t *testing.T) {
	inner := NewUnion("Inner", []core.DataModel{NewU8(), NewButton()})
	outer := NewUnion("Outer", []core.DataModel{NewU32(), inner})

	in := bitarray.New([]byte{0x7F})
	before := in.Clone()
	got, err := core.ParseBits(outer, in)
	require.NoError(t, err)

	assert.True(t, core.Consumed(before, in).Equal(core.Serialize(got)))
	assert.Equal(t, "7F", got.Debug())

	fv := core.Vectorize(got, core.Features(got))
	assert.Equal(t, []int{0, 1}, fv.Get("Inner"))
	assert.Equal(t, []int{0, 0, 1}, fv.Get("U8"))
}
