package report

import (
	"regexp"
	"strconv"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	tracePattern = regexp.MustCompile(
		`\[(\d+)\]\s+(\w+)(?:\s+(\S+))?\s+@0x([0-9a-fA-F]+)\s+stack=\[(.*?)\]`)
	opTimePattern = regexp.MustCompile(`^\s*op_time:\s+clocks=(\d+)\s+ns=(\d+)`)
)

// PC is a program counter. Hex keeps the report's spelling for display.
type PC struct {
	Value uint64
	Hex   string
}

func (pc PC) String() string {
	return pc.Hex
}

// ParsePC parses a hex program counter without its 0x prefix.
func ParsePC(hex string) (PC, bool) {
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return PC{}, false
	}
	return PC{Value: v, Hex: hex}, true
}

// TraceRow is one execution step. When Matched is false the head line did not fit the
// step grammar and every other field is unset.
type TraceRow struct {
	Matched    bool
	StackIndex int
	Op         string
	Arg        string
	HasArg     bool
	PC         PC
	Stack      string

	Timed  bool
	Clocks int64
	NS     int64
}

// TraceTable holds the parsed steps in execution order.
type TraceTable struct {
	Rows []TraceRow
	Ops  *Categories

	timed  int
	pcText map[uint64]string
}

// BuildTrace parses one row per trace block. Each block's op_time line, if any, is joined
// onto the row built from that block; when a block has several, the first is used.
func BuildTrace(blocks []Block, logger *zap.Logger) *TraceTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &TraceTable{
		Rows:   make([]TraceRow, 0, len(blocks)),
		Ops:    newCategories(),
		pcText: make(map[uint64]string),
	}
	for i, block := range blocks {
		row := t.parseStep(block.Head())
		if !row.Matched {
			logger.Debug("Trace line did not match step grammar",
				zap.Int("row", i), zap.String("line", block.Head()))
		}
		for _, line := range block {
			clocks, ns, ok := parseOpTime(line)
			if !ok {
				continue
			}
			row.Timed, row.Clocks, row.NS = true, clocks, ns
			t.timed++
			break
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (t *TraceTable) parseStep(line string) TraceRow {
	m := tracePattern.FindStringSubmatch(line)
	if m == nil {
		return TraceRow{}
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return TraceRow{}
	}
	pc, ok := ParsePC(m[4])
	if !ok {
		return TraceRow{}
	}
	if _, seen := t.pcText[pc.Value]; !seen {
		t.pcText[pc.Value] = pc.Hex
	}
	return TraceRow{
		Matched:    true,
		StackIndex: idx,
		Op:         t.Ops.Intern(m[2]),
		Arg:        m[3],
		HasArg:     m[3] != "",
		PC:         pc,
		Stack:      m[5],
	}
}

func parseOpTime(line string) (clocks, ns int64, ok bool) {
	m := opTimePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	clocks, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	ns, err = strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return clocks, ns, true
}

// Len returns the number of trace rows, matched or not.
func (t *TraceTable) Len() int {
	return len(t.Rows)
}

// HasTiming reports whether any row carries an op_time annotation.
func (t *TraceTable) HasTiming() bool {
	return t.timed > 0
}

// StackIndexes returns the stack_index column of matched rows.
func (t *TraceTable) StackIndexes() []int {
	return lo.FilterMap(t.Rows, func(r TraceRow, _ int) (int, bool) {
		return r.StackIndex, r.Matched
	})
}

// OpColumn returns the op column of matched rows.
func (t *TraceTable) OpColumn() []string {
	return lo.FilterMap(t.Rows, func(r TraceRow, _ int) (string, bool) {
		return r.Op, r.Matched
	})
}

// PCColumn returns the numeric program counter column of matched rows.
func (t *TraceTable) PCColumn() []uint64 {
	return lo.FilterMap(t.Rows, func(r TraceRow, _ int) (uint64, bool) {
		return r.PC.Value, r.Matched
	})
}

// PCText returns the hex spelling first seen for a program counter value.
func (t *TraceTable) PCText(v uint64) string {
	if s, ok := t.pcText[v]; ok {
		return s
	}
	return strconv.FormatUint(v, 16)
}

// ArgsOf returns the args of matched rows whose op is op.
func (t *TraceTable) ArgsOf(op string) []string {
	if !t.Ops.Contains(op) {
		return nil
	}
	return lo.FilterMap(t.Rows, func(r TraceRow, _ int) (string, bool) {
		return r.Arg, r.Matched && r.HasArg && r.Op == op
	})
}

// ClocksByOp groups the clocks of timed, matched rows by op.
func (t *TraceTable) ClocksByOp() map[string][]float64 {
	timed := lo.Filter(t.Rows, func(r TraceRow, _ int) bool {
		return r.Matched && r.Timed
	})
	groups := lo.GroupBy(timed, func(r TraceRow) string { return r.Op })
	return lo.MapValues(groups, func(rows []TraceRow, _ string) []float64 {
		return lo.Map(rows, func(r TraceRow, _ int) float64 { return float64(r.Clocks) })
	})
}
