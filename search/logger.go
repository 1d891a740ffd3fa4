package search

import "go.uber.org/zap"

// Stats carries the bookkeeping counters each search driver reports per
// iteration, mirroring the teacher's engine.Stats (nodes/depth/hit-ratio)
// but renamed for a branch-and-sample search rather than alpha-beta.
type Stats struct {
	Nodes    uint64
	Depth    int32
	Branches uint64
}

// Logger logs search progress. Mirrors engine.Logger's three-call shape
// (begin/end/per-iteration) from the teacher's zurichess/engine/engine.go,
// generalized from a single principal variation to whatever the driver
// wants to report per depth or per batch of rollouts.
type Logger interface {
	BeginSearch()
	EndSearch()
	Report(stats Stats, score float64)
}

// NopLogger discards everything, used by tests the same way the teacher's
// NulLogger backs engine.Engine when no logger is supplied.
type NopLogger struct{}

func (NopLogger) BeginSearch()                    {}
func (NopLogger) EndSearch()                      {}
func (NopLogger) Report(stats Stats, score float64) {}

// RecordingLogger keeps the most recently reported Stats, for callers (the
// bench and solve tools) that want the search's own node count
// instead of recomputing an estimate from the returned PayoffMatrix.
type RecordingLogger struct {
	Last Stats
}

func (*RecordingLogger) BeginSearch() {}
func (*RecordingLogger) EndSearch()   {}

func (l *RecordingLogger) Report(stats Stats, score float64) {
	l.Last = stats
}

// ZapLogger adapts a zap.SugaredLogger to Logger, for cmd/battlecli's
// default, non-test configuration.
type ZapLogger struct {
	S *zap.SugaredLogger
}

func NewZapLogger(s *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{S: s}
}

func (l *ZapLogger) BeginSearch() {
	l.S.Debug("search started")
}

func (l *ZapLogger) EndSearch() {
	l.S.Debug("search finished")
}

func (l *ZapLogger) Report(stats Stats, score float64) {
	l.S.Infow("search progress",
		"depth", stats.Depth,
		"nodes", stats.Nodes,
		"branches", stats.Branches,
		"score", score,
	)
}
