package report

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// TimingPhases are the phase fields consulted by ExtractTiming, in report order.
var TimingPhases = []string{"time_setup", "time_alloc", "time_run"}

const clocksSuffix = " clocks"

// PhaseClocks is one entry of the clocks series.
type PhaseClocks struct {
	Phase  string
	Clocks int64
}

type phaseLine struct {
	phase string
	line  string
}

// ExtractTiming builds the clocks series from the phase fields. Only lines ending in
// " clocks" count; phases without such a line are dropped. Returns nil when nothing
// qualifies.
func ExtractTiming(rec *Record, logger *zap.Logger) []PhaseClocks {
	if logger == nil {
		logger = zap.NewNop()
	}
	var flat []phaseLine
	for _, phase := range TimingPhases {
		v, ok := rec.Field(phase)
		if !ok {
			continue
		}
		for _, line := range v.AsLines() {
			flat = append(flat, phaseLine{phase: phase, line: line})
		}
	}

	qualifying := lo.Filter(flat, func(pl phaseLine, _ int) bool {
		return strings.HasSuffix(pl.line, clocksSuffix)
	})

	var series []PhaseClocks
	for _, pl := range qualifying {
		fields := strings.Fields(pl.line)
		num := strings.Join(fields[:len(fields)-1], " ")
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			logger.Warn("Ignoring non-numeric phase timing",
				zap.String("phase", pl.phase), zap.String("line", pl.line))
			continue
		}
		series = append(series, PhaseClocks{Phase: pl.phase, Clocks: n})
	}
	if len(series) == 0 {
		return nil
	}
	return series
}
