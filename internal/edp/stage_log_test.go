package edp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageLogRecordsConcurrentStages(t *testing.T) {
	var l StageLog
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			done := l.Track("worker", i)
			done()
		}(i)
	}
	wg.Wait()
	stages := l.Stages()
	require.Len(t, stages, 8)
	total := 0
	for _, s := range stages {
		assert.Equal(t, "worker", s.Name)
		assert.GreaterOrEqual(t, int64(s.Elapsed), int64(0))
		total += s.Items
	}
	assert.Equal(t, 28, total)

	// the copy is detached from the log
	stages[0].Name = "changed"
	assert.Equal(t, "worker", l.Stages()[0].Name)
	l.Report()
}
