package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProgram(t *testing.T) {
	prog, err := BuildProgram([]string{
		"  - 2 instructions",
		"  0x0000: push 1",
		"  0x0001: halt",
	})
	require.NoError(t, err)
	require.Equal(t, 2, prog.Len())

	assert.Equal(t, ProgramRow{Matched: true, PC: PC{Value: 0, Hex: "0000"}, Op: "push", Arg: "1", HasArg: true}, prog.Rows[0])
	assert.Equal(t, ProgramRow{Matched: true, PC: PC{Value: 1, Hex: "0001"}, Op: "halt"}, prog.Rows[1])
	assert.Equal(t, []string{"halt", "push"}, prog.Ops.Names())
}

func TestBuildProgram_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"too few", []string{"- 2", "0x0: halt"}},
		{"too many", []string{"- 2", "0x0: push 1", "0x1: push 2", "0x2: halt"}},
		{"bad header", []string{"two instructions", "0x0: halt"}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildProgram(tt.lines)
			require.ErrorIs(t, err, ErrProgramIntegrity)
		})
	}
}

func TestBuildProgram_UnmatchedInstruction(t *testing.T) {
	prog, err := BuildProgram([]string{"- 2", "0x0: halt", "???"})
	require.NoError(t, err)
	assert.True(t, prog.Rows[0].Matched)
	assert.False(t, prog.Rows[1].Matched)
}

func fiveRowProgram(t *testing.T) *ProgramTable {
	t.Helper()
	prog, err := BuildProgram([]string{
		"- 5", "0x0: push 1", "0x1: push 2", "0x2: add", "0x3: dup", "0x4: halt",
	})
	require.NoError(t, err)
	return prog
}

func TestProgramWindow(t *testing.T) {
	prog := fiveRowProgram(t)

	tests := []struct {
		name      string
		index     int
		wantStart int
		wantLen   int
	}{
		{"first row clamps left", 0, 0, 4},
		{"last row clamps right", 4, 1, 4},
		{"middle covers all", 2, 0, 5},
		{"out of range", 9, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, start := prog.Window(tt.index, 3)
			assert.Equal(t, tt.wantStart, start)
			assert.Len(t, rows, tt.wantLen)
		})
	}

	rows, _ := prog.Window(0, 3)
	assert.Equal(t, "dup", rows[len(rows)-1].Op)
}

func TestProgramWindow_HugeContext(t *testing.T) {
	prog, err := BuildProgram([]string{"- 3", "0x0: push 1", "0x1: add", "0x2: halt"})
	require.NoError(t, err)

	rows, start := prog.Window(1, math.MaxInt)
	assert.Equal(t, 0, start)
	assert.Len(t, rows, 3)

	rows, start = prog.Window(2, math.MaxInt-1)
	assert.Equal(t, 0, start)
	assert.Len(t, rows, 3)
}

func TestProgramLookup(t *testing.T) {
	prog := fiveRowProgram(t)

	i, ok := prog.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = prog.Lookup(0x40)
	assert.False(t, ok)
}

func TestProgramLookup_FirstDuplicate(t *testing.T) {
	prog, err := BuildProgram([]string{"- 3", "0x0: push 1", "0x1: halt", "0x1: nop"})
	require.NoError(t, err)
	i, ok := prog.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestNilProgram(t *testing.T) {
	var prog *ProgramTable
	assert.Equal(t, 0, prog.Len())
	_, ok := prog.Lookup(0)
	assert.False(t, ok)
	rows, _ := prog.Window(0, 3)
	assert.Nil(t, rows)
}
