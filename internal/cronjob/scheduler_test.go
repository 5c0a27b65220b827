package cronjob

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSweeperRejectsBadSpec(t *testing.T) {
	s := NewScheduler(nil)
	assert.Error(t, s.AddSweeper("bad", "not a spec", func() int { return 0 }))
	assert.NoError(t, s.AddSweeper("default", "", func() int { return 0 }))
}

func TestSchedulerRunsSweepers(t *testing.T) {
	s := NewScheduler(nil)
	var runs atomic.Int32
	require.NoError(t, s.AddSweeper("tick", "* * * * * *", func() int {
		runs.Add(1)
		return 1
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	<-s.Stop().Done()
}
