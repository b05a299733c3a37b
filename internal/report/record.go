package report

import (
	"iter"
	"regexp"

	"go.uber.org/zap"
)

// TraceField is the reserved name under which unnamed blocks are collected.
const TraceField = "trace"

var fieldPattern = regexp.MustCompile(`^(\w+)(?:$|:\s*)`)

// Value is the content of a named field. One-line blocks carry only Text; multi-line
// blocks carry Lines and set Multi.
type Value struct {
	Text  string
	Lines []string
	Multi bool
}

// TextValue builds the value of a one-line field.
func TextValue(text string) Value {
	return Value{Text: text}
}

// LinesValue builds the value of a multi-line field.
func LinesValue(lines ...string) Value {
	return Value{Lines: lines, Multi: true}
}

// AsLines returns the value as a line list. A one-line value is a single line, or no
// lines at all when its text is empty.
func (v Value) AsLines() []string {
	if v.Multi {
		return v.Lines
	}
	if v.Text == "" {
		return nil
	}
	return []string{v.Text}
}

// Record is the parsed report: named fields plus the catch-all trace list.
type Record struct {
	Fields map[string]Value
	Trace  []Block
}

// Field looks up a named field.
func (r *Record) Field(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Extract classifies blocks into named fields and trace blocks.
//
// A block is named when its first line starts with an identifier that is followed by
// end of line or a colon. Names are not required to be unique: the most recent block
// with a given name wins, and each overwrite is logged at debug level. Blocks that do
// not match the name grammar are appended to Trace in input order.
func Extract(blocks iter.Seq[Block], logger *zap.Logger) *Record {
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := &Record{Fields: make(map[string]Value)}
	for block := range blocks {
		head := block.Head()
		loc := fieldPattern.FindStringSubmatchIndex(head)
		if loc == nil {
			rec.Trace = append(rec.Trace, block)
			continue
		}
		name := head[loc[2]:loc[3]]
		rest := head[loc[1]:]

		val := TextValue(rest)
		if len(block) > 1 {
			var lines []string
			if rest != "" {
				lines = append(lines, rest)
			}
			val = LinesValue(append(lines, block[1:]...)...)
		}

		if _, dup := rec.Fields[name]; dup {
			logger.Debug("Field repeated, keeping most recent", zap.String("field", name))
		}
		rec.Fields[name] = val
	}
	return rec
}
