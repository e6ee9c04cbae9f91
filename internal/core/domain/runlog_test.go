package domain

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLog_Append(t *testing.T) {
	log := NewRunLog("run-1")
	started := time.Now().UTC()

	log.Append("accepted", started, StepOK, "request accepted")
	log.Append("extract_requirements", started, StepFailed, "upstream timeout")

	steps := log.Steps()
	require.Len(t, steps, 2)

	assert.Equal(t, "accepted", steps[0].Step)
	assert.Equal(t, StepOK, steps[0].Status)
	assert.Equal(t, "request accepted", steps[0].Detail)
	assert.Equal(t, started, steps[0].StartedAt)
	assert.False(t, steps[0].FinishedAt.IsZero())

	assert.Equal(t, StepFailed, steps[1].Status)
}

func TestRunLog_Append_TruncatesDetail(t *testing.T) {
	log := NewRunLog("run-1")

	log.Append("draft_brd", time.Now().UTC(), StepOK, strings.Repeat("x", 1500))

	steps := log.Steps()
	require.Len(t, steps, 1)
	assert.Contains(t, steps[0].Detail, "[truncated 500 chars]")
	assert.Less(t, len(steps[0].Detail), 1100)
}

func TestRunLog_Steps_ReturnsCopy(t *testing.T) {
	log := NewRunLog("run-1")
	log.Append("accepted", time.Now().UTC(), StepOK, "")

	steps := log.Steps()
	steps[0].Step = "mutated"

	assert.Equal(t, "accepted", log.Steps()[0].Step)
}

func TestRunLog_ConcurrentAppends(t *testing.T) {
	log := NewRunLog("run-1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append("draft", time.Now().UTC(), StepOK, "done")
		}()
	}
	wg.Wait()

	assert.Len(t, log.Steps(), 50)
}

func TestRunLog_Render(t *testing.T) {
	log := NewRunLog("run-42")
	log.Append("accepted", time.Now().UTC(), StepOK, "request accepted")
	log.Append("draft_api", time.Now().UTC(), StepSkipped, "")

	out := log.Render()

	assert.Contains(t, out, "RUN LOG")
	assert.Contains(t, out, "Run ID: run-42")
	assert.Contains(t, out, "Step:   accepted")
	assert.Contains(t, out, "Status: ok")
	assert.Contains(t, out, "Step:   draft_api")
	assert.Contains(t, out, "Status: skipped")
	// Empty details are omitted entirely.
	assert.NotContains(t, out, "Detail: \n")
}
