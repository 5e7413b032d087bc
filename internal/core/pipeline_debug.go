// Pipeline timing and event tracking
package core

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// maxEvents bounds the retained event history.
const maxEvents = 256

// ProcessingEvent tracks processing flow events
type ProcessingEvent struct {
	Timestamp time.Time
	Event     string // "trigger", "start", "algorithm", "complete", "cancelled", "error"
	Algorithm string
	Duration  time.Duration
	Error     string
}

// AlgorithmStats aggregates timings of one algorithm across runs.
type AlgorithmStats struct {
	Runs    int
	Failed  int
	Total   time.Duration
	Longest time.Duration
}

func (s AlgorithmStats) Average() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Runs)
}

// PipelineDebugger records preview pipeline events and per-algorithm
// timings. A nil *PipelineDebugger is valid and records nothing.
type PipelineDebugger struct {
	mu     sync.Mutex
	logger *logrus.Logger
	events []ProcessingEvent
	stats  map[string]AlgorithmStats
}

func NewPipelineDebugger(logger *logrus.Logger) *PipelineDebugger {
	return &PipelineDebugger{
		logger: logger,
		stats:  make(map[string]AlgorithmStats),
	}
}

func (pd *PipelineDebugger) LogEvent(event, algorithm string, duration time.Duration, err error) {
	if pd == nil {
		return
	}

	ev := ProcessingEvent{
		Timestamp: time.Now(),
		Event:     event,
		Algorithm: algorithm,
		Duration:  duration,
	}
	if err != nil {
		ev.Error = err.Error()
	}

	pd.mu.Lock()
	pd.events = append(pd.events, ev)
	if len(pd.events) > maxEvents {
		pd.events = pd.events[len(pd.events)-maxEvents:]
	}
	pd.mu.Unlock()

	pd.logger.WithFields(logrus.Fields{
		"event":     event,
		"algorithm": algorithm,
		"duration":  duration,
	}).Debug("PIPELINE_DEBUG")
}

// LogAlgorithm records one algorithm execution.
func (pd *PipelineDebugger) LogAlgorithm(algorithm string, duration time.Duration, err error) {
	if pd == nil {
		return
	}

	pd.mu.Lock()
	s := pd.stats[algorithm]
	s.Runs++
	s.Total += duration
	if duration > s.Longest {
		s.Longest = duration
	}
	if err != nil {
		s.Failed++
	}
	pd.stats[algorithm] = s
	pd.mu.Unlock()

	pd.LogEvent("algorithm", algorithm, duration, err)
}

func (pd *PipelineDebugger) Events() []ProcessingEvent {
	if pd == nil {
		return nil
	}
	pd.mu.Lock()
	defer pd.mu.Unlock()
	return append([]ProcessingEvent(nil), pd.events...)
}

func (pd *PipelineDebugger) Stats() map[string]AlgorithmStats {
	if pd == nil {
		return nil
	}
	pd.mu.Lock()
	defer pd.mu.Unlock()

	out := make(map[string]AlgorithmStats, len(pd.stats))
	for k, v := range pd.stats {
		out[k] = v
	}
	return out
}

// LogSummary writes aggregated timings at info level.
func (pd *PipelineDebugger) LogSummary() {
	for name, s := range pd.Stats() {
		pd.logger.WithFields(logrus.Fields{
			"algorithm": name,
			"runs":      s.Runs,
			"failed":    s.Failed,
			"average":   s.Average(),
			"longest":   s.Longest,
		}).Info("PIPELINE: Algorithm timings")
	}
}
