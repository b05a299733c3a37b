package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func recordWith(fields map[string]Value) *Record {
	return &Record{Fields: fields}
}

func TestExtractTiming(t *testing.T) {
	rec := recordWith(map[string]Value{
		"time_setup": LinesValue("100 clocks", "ignored text"),
	})
	got := ExtractTiming(rec, nil)
	assert.Equal(t, []PhaseClocks{{Phase: "time_setup", Clocks: 100}}, got)
}

func TestExtractTiming_PhaseOrderAndDrops(t *testing.T) {
	rec := recordWith(map[string]Value{
		"time_run":   LinesValue("elapsed 3s", "  7 clocks"),
		"time_alloc": LinesValue("nothing to see"),
		"time_setup": TextValue("12 clocks"),
		"plan":       TextValue("5 clocks"),
	})
	got := ExtractTiming(rec, nil)
	assert.Equal(t, []PhaseClocks{
		{Phase: "time_setup", Clocks: 12},
		{Phase: "time_run", Clocks: 7},
	}, got)
}

func TestExtractTiming_Absent(t *testing.T) {
	assert.Nil(t, ExtractTiming(recordWith(map[string]Value{}), nil))
	assert.Nil(t, ExtractTiming(recordWith(map[string]Value{
		"time_run": LinesValue("no clocks here", "clocks"),
	}), nil))
}

func TestExtractTiming_NonNumeric(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := recordWith(map[string]Value{
		"time_run": LinesValue("many clocks", "5 clocks"),
	})
	got := ExtractTiming(rec, zap.New(core))

	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].Clocks)
	assert.Equal(t, 1, logs.Len())
}
