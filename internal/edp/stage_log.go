package edp

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Stage is one timed step of a run.
type Stage struct {
	Name    string
	Items   int // samples, pixels or rows handled
	Elapsed time.Duration
}

// StageLog collects stage timings. Safe for concurrent use.
type StageLog struct {
	mu     sync.Mutex
	stages []Stage
}

// Track starts timing a stage; call the returned func when it ends.
func (l *StageLog) Track(name string, items int) func() {
	start := time.Now()
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.stages = append(l.stages, Stage{Name: name, Items: items, Elapsed: time.Since(start)})
	}
}

// Stages returns a copy of the recorded stages in completion order.
func (l *StageLog) Stages() []Stage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Stage, len(l.stages))
	copy(out, l.stages)
	return out
}

// Report logs every stage at debug level.
func (l *StageLog) Report() {
	for _, s := range l.Stages() {
		Log.WithFields(logrus.Fields{
			"stage":   s.Name,
			"items":   s.Items,
			"elapsed": s.Elapsed.String(),
		}).Debug("stage done")
	}
}
