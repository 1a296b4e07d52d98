package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/chriserin/bolts/internal/bitarray"
)

type ErrorKind int

const (
	// KindErr is an atomic failure at a terminal.
	KindErr ErrorKind = iota
	// KindChildren aggregates the failures of every alternative a
	// combinator tried.
	KindChildren
)

// ParseError is a tree of parse failures. Leaves carry the context, the
// remaining bits and the call stack at the failure site; branches carry one
// failure per alternative in declaration order.
type ParseError struct {
	Kind      ErrorKind
	Context   *Context
	Remaining *bitarray.BitArray
	Message   string
	Failures  []*ParseError

	trace []uintptr
}

// Fail builds a leaf error at ctx. remaining is snapshotted.
func Fail(ctx *Context, remaining *bitarray.BitArray, format string, args ...any) *ParseError {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	return &ParseError{
		Kind:      KindErr,
		Context:   ctx,
		Remaining: remaining.Clone(),
		Message:   fmt.Sprintf(format, args...),
		trace:     pcs[:n],
	}
}

// FailChildren aggregates failures. A nil slice is stored as empty.
func FailChildren(failures []*ParseError) *ParseError {
	if failures == nil {
		failures = []*ParseError{}
	}
	return &ParseError{Kind: KindChildren, Failures: failures}
}

// AsParseError converts err to a *ParseError, wrapping foreign errors as a
// leaf at ctx.
func AsParseError(err error, ctx *Context, remaining *bitarray.BitArray) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return Fail(ctx, remaining, "%v", err)
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	e.write(&sb, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func (e *ParseError) write(sb *strings.Builder, indent int) {
	pad := strings.Repeat("  ", indent)
	switch e.Kind {
	case KindChildren:
		fmt.Fprintf(sb, "%sall %d alternatives failed\n", pad, len(e.Failures))
		for _, f := range e.Failures {
			f.write(sb, indent+1)
		}
	default:
		fmt.Fprintf(sb, "%s%s: %s (%d bits left at %d)\n", pad, e.Rule(), e.Message, e.Remaining.Len(), e.Remaining.Head())
	}
}

// Rule returns the rule name of the failure site, or "" for branches.
func (e *ParseError) Rule() string {
	if e.Kind != KindErr || e.Context == nil {
		return ""
	}
	return e.Context.Rule()
}

// Leaves returns every atomic failure in the tree, depth first.
func (e *ParseError) Leaves() []*ParseError {
	if e.Kind == KindErr {
		return []*ParseError{e}
	}
	var leaves []*ParseError
	for _, f := range e.Failures {
		leaves = append(leaves, f.Leaves()...)
	}
	return leaves
}

// Deepest returns the leaf that got furthest into the input, or nil when
// the tree has no leaves. Ties go to the first in declaration order.
func (e *ParseError) Deepest() *ParseError {
	var best *ParseError
	for _, leaf := range e.Leaves() {
		if best == nil || leaf.Remaining.Head() > best.Remaining.Head() {
			best = leaf
		}
	}
	return best
}

// StackTrace renders the frames captured when a leaf was built.
func (e *ParseError) StackTrace() string {
	if len(e.trace) == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(e.trace)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
