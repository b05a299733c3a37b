// Package report parses the textual execution report emitted by a stack VM search run.
//
// A report is a sequence of blocks: one unindented header line plus any indented
// continuation lines. Named blocks ("plan:", "program:", "time_run:") become fields of a
// Record; every other block is a trace step. The trace and program listings are then
// parsed into tables by BuildTrace and BuildProgram.
package report

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Block is one logical report entry: a header line and its indented continuations.
type Block []string

// Head returns the block's first line.
func (b Block) Head() string {
	if len(b) == 0 {
		return ""
	}
	return b[0]
}

// ReadLines reads r to completion, stripping line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r\n"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return lines, nil
}

// Blocks groups lines into blocks. Blank lines separate blocks and are never part of one.
// The returned sequence makes a single pass over lines.
func Blocks(lines iter.Seq[string]) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		var buf Block
		for line := range lines {
			trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
			first, _ := utf8.DecodeRuneInString(trimmed)
			if trimmed == "" || !unicode.IsSpace(first) {
				if len(buf) > 0 {
					if !yield(buf) {
						return
					}
					buf = nil
				}
				if trimmed == "" {
					continue
				}
			}
			buf = append(buf, line)
		}
		if len(buf) > 0 {
			yield(buf)
		}
	}
}
