package library

import (
	"github.com/tliron/commonlog"

	"github.com/chriserin/bolts/internal/bitarray"
	"github.com/chriserin/bolts/internal/core"
)

var log = commonlog.GetLogger("bolts.library")

// Ambiguity selects the survivor when several candidates parse.
type Ambiguity int

const (
	PickLast Ambiguity = iota
	PickFirst
)

func (a Ambiguity) String() string {
	if a == PickFirst {
		return "first"
	}
	return "last"
}

// DebugPolicy selects what Union.Debug renders.
type DebugPolicy int

const (
	DebugDelegate DebugPolicy = iota
	DebugEmpty
)

type unionOptions struct {
	ambiguity Ambiguity
	debug     DebugPolicy
}

type UnionOption func(*unionOptions)

// WithAmbiguity sets which successful candidate an ambiguous parse keeps.
func WithAmbiguity(a Ambiguity) UnionOption {
	return func(o *unionOptions) { o.ambiguity = a }
}

// WithDebug sets whether Debug delegates to the chosen child.
func WithDebug(p DebugPolicy) UnionOption {
	return func(o *unionOptions) { o.debug = p }
}

type alternatives struct {
	models []core.DataModel
}

// Union is an alternation over a fixed candidate list. A parsed Union
// holds the candidate that matched as its child.
type Union struct {
	core.Rule
	alts  *alternatives
	child core.DataModel
	opts  *unionOptions
}

// NewUnion returns a Union over candidates whose initial child is the first
// candidate.
func NewUnion(name string, candidates []core.DataModel, opts ...UnionOption) *Union {
	o := &unionOptions{}
	for _, opt := range opts {
		opt(o)
	}
	alts := &alternatives{models: append([]core.DataModel(nil), candidates...)}
	var child core.DataModel
	if len(alts.models) > 0 {
		child = alts.models[0]
	}
	return &Union{Rule: core.NewRule(name), alts: alts, child: child, opts: o}
}

func (u *Union) Candidates() []core.DataModel {
	return u.alts.models
}

// Child returns the chosen candidate, nil for an empty Union.
func (u *Union) Child() core.DataModel {
	return u.child
}

func (u *Union) withChild(child core.DataModel) *Union {
	return &Union{Rule: u.Rule, alts: u.alts, child: child, opts: u.opts}
}

type branch struct {
	model core.DataModel
	in    *bitarray.BitArray
}

// Parse tries every candidate against its own clone of in. The survivor
// decides how far in advances; when none match the per-candidate failures
// are returned in declaration order.
func (u *Union) Parse(in *bitarray.BitArray, ctx *core.Context) (core.DataModel, error) {
	var matched []branch
	failures := []*core.ParseError{}
	for _, c := range u.alts.models {
		cin := in.Clone()
		cctx := core.NewContext(ctx, c.Name(), core.NoChildren)
		got, err := c.Parse(cin, cctx)
		if err != nil {
			failures = append(failures, core.AsParseError(err, cctx, cin))
			continue
		}
		matched = append(matched, branch{model: got, in: cin})
	}
	if len(matched) == 0 {
		return nil, core.FailChildren(failures)
	}

	pick := matched[len(matched)-1]
	if len(matched) > 1 {
		if u.opts.ambiguity == PickFirst {
			pick = matched[0]
		}
		log.Warningf("%s: %d candidates matched at bit %d, keeping the %s (%s)",
			u.Name(), len(matched), in.Head(), u.opts.ambiguity, pick.model.Name())
	}
	in.AdvanceToMatch(pick.in)
	return u.withChild(pick.model), nil
}

func (u *Union) Serialize(out *bitarray.BitArray) {
	if u.child != nil {
		u.child.Serialize(out)
	}
}

func (u *Union) Debug() string {
	if u.opts.debug == DebugEmpty || u.child == nil {
		return ""
	}
	return u.child.Debug()
}

func (u *Union) Fuzz() []core.DataModel {
	if u.child == nil {
		return nil
	}
	var out []core.DataModel
	for _, m := range u.child.Fuzz() {
		out = append(out, u.withChild(m))
	}
	return out
}

// DoFeatures walks every candidate so the universe covers the grammar, not
// only the branch that was taken.
func (u *Union) DoFeatures(set core.FeatureSet) {
	set.Add(u.Name())
	for _, c := range u.alts.models {
		c.DoFeatures(set)
	}
}

func (u *Union) DoVectorization(fv *core.FeatureVector, depth int) {
	fv.Tally(u.Name(), depth)
	if u.child != nil {
		u.child.DoVectorization(fv, depth+1)
	}
}

func (u *Union) Clone() core.DataModel {
	return u.withChild(u.child)
}

// Breed takes other's child when other is a Union over the same candidates.
func (u *Union) Breed(other core.DataModel) core.DataModel {
	o, ok := other.(*Union)
	if !ok || o.alts != u.alts {
		return u.Clone()
	}
	return u.withChild(o.child)
}

func (u *Union) SetName(name string) core.DataModel {
	return &Union{Rule: core.NewRule(name), alts: u.alts, child: u.child, opts: u.opts}
}
