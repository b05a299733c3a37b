// Package pipeline runs the report analysis stages over one fully read input.
//
// Stages: lines -> blocks -> record -> {trace table, program table, timing series}.
// Each stage is computed at most once and cached on the Pipeline; every table is
// read-only once built.
package pipeline

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"go.uber.org/zap"

	"tracestat/internal/logging"
	"tracestat/internal/report"
)

// PlanField and ProgramField name the report fields read by the pipeline.
const (
	PlanField    = "plan"
	ProgramField = "program"
)

// Pipeline owns the input lines and every intermediate table derived from them.
type Pipeline struct {
	lines []string
	log   *zap.Logger

	record     *report.Record
	trace      *report.TraceTable
	program    *report.ProgramTable
	programErr error
	programSet bool
	timing     []report.PhaseClocks
	timingSet  bool
}

// Analysis is the complete set of results handed to the renderer.
type Analysis struct {
	Record  *report.Record
	Plan    []string
	HasPlan bool
	Timing  []report.PhaseClocks
	Trace   *report.TraceTable
	Program *report.ProgramTable
}

// New reads r to completion and returns a pipeline over its lines.
func New(r io.Reader, logs *logging.Factory) (*Pipeline, error) {
	lines, err := report.ReadLines(r)
	if err != nil {
		return nil, err
	}
	return FromLines(lines, logs), nil
}

// FromLines returns a pipeline over already split lines.
func FromLines(lines []string, logs *logging.Factory) *Pipeline {
	return &Pipeline{
		lines: lines,
		log:   logs.Get(logging.CategoryParse),
	}
}

// Blocks returns a fresh single-pass block sequence over the input.
func (p *Pipeline) Blocks() iter.Seq[report.Block] {
	return report.Blocks(slices.Values(p.lines))
}

// Record returns the parsed report record.
func (p *Pipeline) Record() *report.Record {
	if p.record == nil {
		p.record = report.Extract(p.Blocks(), p.log)
		p.log.Debug("Report extracted",
			zap.Int("lines", len(p.lines)),
			zap.Int("fields", len(p.record.Fields)),
			zap.Int("trace_blocks", len(p.record.Trace)))
	}
	return p.record
}

// Plan returns the plan lines, if the report has a plan field.
func (p *Pipeline) Plan() ([]string, bool) {
	v, ok := p.Record().Field(PlanField)
	if !ok {
		return nil, false
	}
	return v.AsLines(), true
}

// Trace returns the trace table.
func (p *Pipeline) Trace() *report.TraceTable {
	if p.trace == nil {
		p.trace = report.BuildTrace(p.Record().Trace, p.log)
		p.log.Debug("Trace table built",
			zap.Int("rows", p.trace.Len()),
			zap.Int("ops", p.trace.Ops.Len()),
			zap.Bool("timing", p.trace.HasTiming()))
	}
	return p.trace
}

// Program returns the program table. A report without a program field yields a nil
// table and no error; a listing whose header disagrees with its body yields an error
// wrapping report.ErrProgramIntegrity.
func (p *Pipeline) Program() (*report.ProgramTable, error) {
	if !p.programSet {
		p.programSet = true
		if v, ok := p.Record().Field(ProgramField); ok {
			p.program, p.programErr = report.BuildProgram(v.AsLines())
		} else {
			p.log.Debug("Report has no program field")
		}
	}
	return p.program, p.programErr
}

// Timing returns the phase clocks series, or nil when absent.
func (p *Pipeline) Timing() []report.PhaseClocks {
	if !p.timingSet {
		p.timingSet = true
		p.timing = report.ExtractTiming(p.Record(), p.log)
	}
	return p.timing
}

// Run executes every stage and collects the results.
func (p *Pipeline) Run() (*Analysis, error) {
	prog, err := p.Program()
	if err != nil {
		return nil, fmt.Errorf("failed to build program table: %w", err)
	}
	plan, hasPlan := p.Plan()
	return &Analysis{
		Record:  p.Record(),
		Plan:    plan,
		HasPlan: hasPlan,
		Timing:  p.Timing(),
		Trace:   p.Trace(),
		Program: prog,
	}, nil
}
