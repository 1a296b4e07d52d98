package core

import (
	"weak"
)

type ChildrenKind int

const (
	// Zilch marks a context with no sibling information.
	Zilch ChildrenKind = iota
	// Siblings marks a context carrying the siblings parsed so far.
	Siblings
)

// Children tags a Context with what the enclosing composite has already
// parsed.
type Children struct {
	Kind     ChildrenKind
	Siblings *ChildMap
}

// NoChildren is the Zilch tag.
var NoChildren = Children{Kind: Zilch}

// WithSiblings tags a context with the siblings parsed before it.
func WithSiblings(m *ChildMap) Children {
	return Children{Kind: Siblings, Siblings: m}
}

// Context records where in the grammar a parser sits. Parent links are weak
// so errors that retain a context do not keep the whole chain alive.
type Context struct {
	parent   weak.Pointer[Context]
	rule     string
	children Children
}

// RootContext starts a context chain at rule.
func RootContext(rule string) *Context {
	return &Context{rule: rule, children: NoChildren}
}

// NewContext creates a child of parent. parent may be nil.
func NewContext(parent *Context, rule string, children Children) *Context {
	ctx := &Context{rule: rule, children: children}
	if parent != nil {
		ctx.parent = weak.Make(parent)
	}
	return ctx
}

// Parent returns the parent context, or nil when there is none or it has
// already been released.
func (c *Context) Parent() *Context {
	return c.parent.Value()
}

func (c *Context) Rule() string { return c.rule }

func (c *Context) Children() Children { return c.children }

// Path returns the rule names from the outermost live ancestor down to c.
func (c *Context) Path() []string {
	var path []string
	for cur := c; cur != nil; cur = cur.Parent() {
		path = append(path, cur.rule)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Depth counts the live ancestors of c.
func (c *Context) Depth() int {
	depth := 0
	for cur := c.Parent(); cur != nil; cur = cur.Parent() {
		depth++
	}
	return depth
}
