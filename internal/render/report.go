// Package render writes the human-readable analysis report.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tracestat/internal/pipeline"
	"tracestat/internal/report"
	"tracestat/internal/stats"
)

// Options selects report sections and their sizes.
type Options struct {
	TopPCs      int
	Context     int
	ExitCodes   bool
	ShowProgram bool
}

// DefaultOptions mirrors config.DefaultConfig().Report.
func DefaultOptions() Options {
	return Options{TopPCs: 10, Context: 3}
}

// Renderer writes a report for one analysis.
type Renderer struct {
	w      io.Writer
	opts   Options
	styles Styles
	log    *zap.Logger
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		w:      w,
		opts:   opts,
		styles: NewStyles(w, DetectTheme()),
		log:    logger,
	}
}

// Render writes every section of the report in order. Sections whose data is absent
// are skipped.
func (r *Renderer) Render(a *pipeline.Analysis) error {
	var sb strings.Builder

	if len(a.Timing) > 0 {
		t := NewTable("clocks", "phase", "clocks").AlignRight(1)
		for _, pc := range a.Timing {
			t.AddRow(pc.Phase, strconv.FormatInt(pc.Clocks, 10))
		}
		sb.WriteString(t.View(r.styles))
		sb.WriteString("\n")
	}

	if a.HasPlan {
		sb.WriteString(r.styles.Title.Render("plan:"))
		sb.WriteString("\n")
		for _, line := range a.Plan {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	trace := a.Trace
	fmt.Fprintf(&sb, "trace length: %d\n\n", trace.Len())

	sb.WriteString(distributionTable("stack_index", trace.StackIndexes(), strconv.Itoa).View(r.styles))
	sb.WriteString("\n")
	sb.WriteString(distributionTable("op", trace.OpColumn(), identity).View(r.styles))
	sb.WriteString("\n")

	if r.opts.ExitCodes {
		if codes := trace.ArgsOf("exit"); len(codes) > 0 {
			sb.WriteString(distributionTable("exitcode", codes, identity).View(r.styles))
			sb.WriteString("\n")
		}
	}

	r.writeHotPCs(&sb, trace, a.Program)

	if r.opts.ShowProgram && a.Program.Len() > 0 {
		t := r.programTable("program:", a.Program.Rows, 0, -1)
		sb.WriteString(t.View(r.styles))
		sb.WriteString("\n")
	}

	if trace.HasTiming() {
		r.writeOpClocks(&sb, trace)
	}

	if _, err := io.WriteString(r.w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	r.log.Debug("Report written", zap.Int("bytes", sb.Len()))
	return nil
}

func identity(s string) string { return s }

func formatPct(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// distributionTable renders the distribution of column under a header named name.
func distributionTable[K comparable](name string, column []K, format func(K) string) *Table {
	t := NewTable("", name, "count", "pct").AlignRight(1, 2)
	for _, e := range stats.Distribution(column) {
		t.AddRow(format(e.Value), strconv.Itoa(e.Count), formatPct(e.Pct))
	}
	return t
}

// writeHotPCs lists the most sampled program counters, each followed by the
// instructions around it.
func (r *Renderer) writeHotPCs(sb *strings.Builder, trace *report.TraceTable, prog *report.ProgramTable) {
	if r.opts.TopPCs == 0 {
		return
	}
	top := stats.Top(stats.Distribution(trace.PCColumn()), r.opts.TopPCs)
	for _, e := range top {
		fmt.Fprintf(sb, "%s %d %s\n", trace.PCText(e.Value), e.Count, formatPct(e.Pct))

		i, ok := prog.Lookup(e.Value)
		if !ok {
			r.log.Warn("Hot program counter not in program listing",
				zap.String("pc", trace.PCText(e.Value)))
			sb.WriteString(r.styles.Muted.Render("(not in program listing)"))
			sb.WriteString("\n\n")
			continue
		}
		rows, start := prog.Window(i, r.opts.Context)
		sb.WriteString(r.programTable("", rows, start, i).View(r.styles))
		sb.WriteString("\n")
	}
}

// programTable renders program rows numbered from start; the row at index mark is
// flagged with ">".
func (r *Renderer) programTable(title string, rows []report.ProgramRow, start, mark int) *Table {
	t := NewTable(title, "", "#", "pi", "op", "arg").AlignRight(1)
	for j, row := range rows {
		idx := start + j
		flag := ""
		if idx == mark {
			flag = ">"
		}
		pi, op, arg := "", "", ""
		if row.Matched {
			pi, op, arg = row.PC.Hex, row.Op, row.Arg
		}
		t.AddRow(flag, strconv.Itoa(idx), pi, op, arg)
	}
	return t
}

// writeOpClocks summarizes the clocks of timed steps per op, ops in lexical order.
// Ops without any timed step are left out.
func (r *Renderer) writeOpClocks(sb *strings.Builder, trace *report.TraceTable) {
	groups := trace.ClocksByOp()

	t := NewTable("op clocks:", "op", "count", "mean", "std", "min", "25%", "50%", "75%", "max").
		AlignRight(1, 2, 3, 4, 5, 6, 7, 8)
	for _, op := range trace.Ops.Names() {
		clocks, ok := groups[op]
		if !ok {
			continue
		}
		s := stats.Describe(clocks)
		t.AddRow(op, strconv.Itoa(s.Count),
			formatFloat(s.Mean), formatFloat(s.Std), formatFloat(s.Min),
			formatFloat(s.Q25), formatFloat(s.Q50), formatFloat(s.Q75), formatFloat(s.Max))
	}
	sb.WriteString(t.View(r.styles))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
