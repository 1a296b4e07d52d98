// Package library holds the concrete rules grammars are built from: the
// fixed-width Uint leaf, the Button end-of-input sentinel, and the Union
// and Sequence combinators.
package library

import "github.com/chriserin/bolts/internal/core"

var (
	_ core.DataModel = (*Uint)(nil)
	_ core.DataModel = (*Button)(nil)
	_ core.DataModel = (*Union)(nil)
	_ core.DataModel = (*Sequence)(nil)

	_ core.Integer = (*Uint)(nil)
	_ core.Wrapper = (*Union)(nil)
)
