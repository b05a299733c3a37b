package report

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectBlocks(lines ...string) []Block {
	return slices.Collect(Blocks(slices.Values(lines)))
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Block
	}{
		{
			name:  "header with two continuations",
			lines: []string{"program:", "  - 2", "  0x0: halt"},
			want:  []Block{{"program:", "  - 2", "  0x0: halt"}},
		},
		{
			name:  "blank line separates one-line blocks",
			lines: []string{"plan: a", "", "found"},
			want:  []Block{{"plan: a"}, {"found"}},
		},
		{
			name:  "unindented lines split without blank lines",
			lines: []string{"[0] push 1 @0x0 stack=[]", "[1] halt @0x1 stack=[1]"},
			want:  []Block{{"[0] push 1 @0x0 stack=[]"}, {"[1] halt @0x1 stack=[1]"}},
		},
		{
			name:  "leading blank lines produce nothing",
			lines: []string{"", "   ", "\t", "plan: x"},
			want:  []Block{{"plan: x"}},
		},
		{
			name:  "whitespace-only line ends a block",
			lines: []string{"plan:", "  one", "   ", "  two"},
			want:  []Block{{"plan:", "  one"}, {"  two"}},
		},
		{
			name:  "trailing blanks",
			lines: []string{"found", "", ""},
			want:  []Block{{"found"}},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectBlocks(tt.lines...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Blocks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlocks_StopsEarly(t *testing.T) {
	lines := []string{"a", "b", "c"}
	var seen []Block
	for b := range Blocks(slices.Values(lines)) {
		seen = append(seen, b)
		if len(seen) == 2 {
			break
		}
	}
	assert.Len(t, seen, 2)
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("plan: a\r\n  b\n\nfound"))
	require.NoError(t, err)
	assert.Equal(t, []string{"plan: a", "  b", "", "found"}, lines)
}

func TestBlockHead(t *testing.T) {
	assert.Equal(t, "", Block(nil).Head())
	assert.Equal(t, "x", Block{"x", "  y"}.Head())
}
