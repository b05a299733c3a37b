package report

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrProgramIntegrity reports a program listing whose header does not agree with its body.
// It is the only fatal input error.
var ErrProgramIntegrity = errors.New("program listing integrity violation")

var (
	programHeaderPattern = regexp.MustCompile(`^\s*- *(\d+)`)
	instructionPattern   = regexp.MustCompile(`^\s*0x([0-9a-fA-F]+):\s+(\w+)(?:\s+(\S+))?`)
)

// ProgramRow is one disassembled instruction.
type ProgramRow struct {
	Matched bool
	PC      PC
	Op      string
	Arg     string
	HasArg  bool
}

// ProgramTable is the instruction listing in address order.
type ProgramTable struct {
	Rows []ProgramRow
	Ops  *Categories
}

// BuildProgram parses the program field. The first line declares the instruction count
// ("- N instructions") and exactly N instruction lines must follow.
func BuildProgram(lines []string) (*ProgramTable, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrProgramIntegrity)
	}
	m := programHeaderPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, fmt.Errorf("%w: malformed header %q", ErrProgramIntegrity, lines[0])
	}
	expected, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: header count %q: %v", ErrProgramIntegrity, m[1], err)
	}
	body := lines[1:]
	if expected != len(body) {
		return nil, fmt.Errorf("%w: header declares %d instructions, found %d",
			ErrProgramIntegrity, expected, len(body))
	}

	p := &ProgramTable{
		Rows: make([]ProgramRow, 0, len(body)),
		Ops:  newCategories(),
	}
	for _, line := range body {
		p.Rows = append(p.Rows, p.parseInstruction(line))
	}
	return p, nil
}

func (p *ProgramTable) parseInstruction(line string) ProgramRow {
	m := instructionPattern.FindStringSubmatch(line)
	if m == nil {
		return ProgramRow{}
	}
	pc, ok := ParsePC(m[1])
	if !ok {
		return ProgramRow{}
	}
	return ProgramRow{
		Matched: true,
		PC:      pc,
		Op:      p.Ops.Intern(m[2]),
		Arg:     m[3],
		HasArg:  m[3] != "",
	}
}

// Len returns the number of instructions.
func (p *ProgramTable) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Rows)
}

// Lookup returns the index of the first instruction at pc.
func (p *ProgramTable) Lookup(pc uint64) (int, bool) {
	if p == nil {
		return 0, false
	}
	for i, row := range p.Rows {
		if row.Matched && row.PC.Value == pc {
			return i, true
		}
	}
	return 0, false
}

// Window returns the rows within context of index i, clamped to the table bounds,
// along with the index of the first returned row.
func (p *ProgramTable) Window(i, context int) ([]ProgramRow, int) {
	if p.Len() == 0 || i < 0 || i >= len(p.Rows) {
		return nil, 0
	}
	context = min(max(context, 0), len(p.Rows))
	start := max(0, i-context)
	end := min(len(p.Rows)-1, i+context)
	return p.Rows[start : end+1], start
}
