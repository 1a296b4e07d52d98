package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/chriserin/bolts/internal/core"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	chgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	ruleStyle  = lipgloss.NewStyle().Bold(true)
)

func OKLine(w io.Writer, text string) {
	fmt.Fprintln(w, okStyle.Render("ok")+"    "+text)
}

func FailLine(w io.Writer, text string) {
	fmt.Fprintln(w, failStyle.Render("fail")+"  "+text)
}

func ChangedLine(w io.Writer, text string) {
	fmt.Fprintln(w, chgStyle.Render("chg")+"   "+text)
}

func SameLine(w io.Writer, text string) {
	fmt.Fprintln(w, faintStyle.Render("same")+"  "+text)
}

// BitsLine reports how much of the input a parse consumed.
func BitsLine(w io.Writer, consumed, total int) {
	fmt.Fprintf(w, "consumed %s of %s bits\n", humanize.Comma(int64(consumed)), humanize.Comma(int64(total)))
}

func SummaryLine(w io.Writer, verb string, count int) {
	fmt.Fprintf(w, "%s %s runs\n", verb, humanize.Comma(int64(count)))
}

// ErrorTree renders a parse failure, one line per node.
func ErrorTree(w io.Writer, err *core.ParseError) {
	writeError(w, err, 0)
}

func writeError(w io.Writer, err *core.ParseError, indent int) {
	pad := strings.Repeat("  ", indent)
	if err.Kind == core.KindChildren {
		fmt.Fprintf(w, "%s%s\n", pad, faintStyle.Render(fmt.Sprintf("all %d alternatives failed", len(err.Failures))))
		for _, f := range err.Failures {
			writeError(w, f, indent+1)
		}
		return
	}
	path := strings.Join(err.Context.Path(), " > ")
	fmt.Fprintf(w, "%s%s %s %s\n", pad, failStyle.Render("x"), ruleStyle.Render(path), err.Message)
	fmt.Fprintf(w, "%s  %s\n", pad, faintStyle.Render(fmt.Sprintf("at bit %d, %d left: %s", err.Remaining.Head(), err.Remaining.Len(), clip(err.Remaining.String(), 35))))
}

// DeepestLine names the failure that got furthest into the input.
func DeepestLine(w io.Writer, err *core.ParseError) {
	path := strings.Join(err.Context.Path(), " > ")
	fmt.Fprintf(w, "deepest  %s at bit %d: %s\n", ruleStyle.Render(path), err.Remaining.Head(), err.Message)
}

func StackTrace(w io.Writer, trace string) {
	for _, line := range strings.Split(strings.TrimRight(trace, "\n"), "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintln(w, faintStyle.Render("  "+line))
	}
}

// FeatureRow prints one feature's counts by depth.
func FeatureRow(w io.Writer, name string, counts []int, nameWidth int) {
	cells := make([]string, len(counts))
	for i, c := range counts {
		cells[i] = fmt.Sprintf("%d", c)
	}
	text := strings.Join(cells, " ")
	if text == "" {
		text = faintStyle.Render("-")
	}
	fmt.Fprintf(w, "%-*s  %s\n", nameWidth, name, text)
}

// RunRow prints one stored run in the runs listing.
func RunRow(w io.Writer, id, grammar, input, outcome string, ok bool, grammarWidth int) {
	status := okStyle.Render("ok  ")
	if !ok {
		status = failStyle.Render("fail")
	}
	fmt.Fprintf(w, "%s  %-*s  %s  %s  %s\n", id, grammarWidth, grammar, status, input, faintStyle.Render(outcome))
}

// MutantRow prints one fuzz mutant.
func MutantRow(w io.Writer, ordinal int, hex string, bits int, debug string) {
	fmt.Fprintf(w, "  %3d  %s  %s  %s\n", ordinal, hex, faintStyle.Render(fmt.Sprintf("(%d bits)", bits)), debug)
}

func ShowHeader(w io.Writer, id, grammar string) {
	fmt.Fprintln(w, ruleStyle.Render("run "+id)+"  "+grammar)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
