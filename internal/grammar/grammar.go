// Package grammar registers the grammars the command line can run. Grammars
// are built in Go from library rules; there is no grammar file format.
package grammar

import (
	"fmt"
	"sort"

	"github.com/chriserin/bolts/internal/core"
	"github.com/chriserin/bolts/internal/library"
)

// Options tunes how combinators in a built grammar behave.
type Options struct {
	Ambiguity library.Ambiguity
	Debug     library.DebugPolicy
}

func (o Options) union(name string, candidates ...core.DataModel) *library.Union {
	return library.NewUnion(name, candidates, library.WithAmbiguity(o.Ambiguity), library.WithDebug(o.Debug))
}

type entry struct {
	summary string
	build   func(Options) core.DataModel
}

var registry = map[string]entry{
	"u8":     {"one 8-bit unsigned integer", func(Options) core.DataModel { return library.NewU8() }},
	"u16":    {"one 16-bit unsigned integer", func(Options) core.DataModel { return library.NewU16() }},
	"u32":    {"one 32-bit unsigned integer", func(Options) core.DataModel { return library.NewU32() }},
	"u64":    {"one 64-bit unsigned integer", func(Options) core.DataModel { return library.NewU64() }},
	"button": {"end of input", func(Options) core.DataModel { return library.NewButton() }},
	"word": {"a U16 or end of input", func(o Options) core.DataModel {
		return o.union("Word", library.NewU16(), library.NewButton())
	}},
	"ambiguous": {"two U16 rules that always both match", func(o Options) core.DataModel {
		return o.union("AorB", library.NewU16().SetName("A"), library.NewU16().SetName("B"))
	}},
	"frame": {"kind byte, optional U16 value, end of input", func(o Options) core.DataModel {
		return library.NewSequence("Frame",
			library.Field("kind", library.NewU8()),
			library.Field("value", o.union("Value", library.NewU16(), library.NewButton())),
			library.Field("end", library.NewButton()),
		)
	}},
	"packet": {"ping, data or wide packet chosen by length", func(o Options) core.DataModel {
		return o.union("Packet",
			library.NewSequence("Ping",
				library.Field("op", library.NewU8()),
				library.Field("end", library.NewButton())),
			library.NewSequence("Data",
				library.Field("op", library.NewU8()),
				library.Field("value", library.NewU16()),
				library.Field("end", library.NewButton())),
			library.NewSequence("Wide",
				library.Field("op", library.NewU8()),
				library.Field("value", library.NewU32()),
				library.Field("end", library.NewButton())),
		)
	}},
}

// Names returns every registered grammar in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary returns a one-line description of name.
func Summary(name string) string {
	return registry[name].summary
}

// Lookup builds the grammar registered as name.
func Lookup(name string, opts Options) (core.DataModel, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q", name)
	}
	return e.build(opts), nil
}
