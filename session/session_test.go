package session

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/m4xw311/thinkmode/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func result(mode task.Mode, cat task.Category, secs float64) task.Result {
	return task.Result{
		Decision:             task.Decision{Mode: mode},
		Features:             task.Features{Category: cat},
		ExecutionTimeSeconds: secs,
	}
}

func TestRecorderIncrementalMean(t *testing.T) {
	r := NewRecorder()
	r.Record(result(task.NonThinking, task.Programming, 1))
	r.Record(result(task.FullThinking, task.MathReasoning, 2))
	r.Record(result(task.FullThinking, task.MathReasoning, 6))

	s := r.Snapshot()
	assert.Equal(t, 3, s.TotalTasks)
	assert.InDelta(t, 3.0, s.AverageExecutionTime, 1e-9)
	assert.Equal(t, 1, s.ModeCounts[task.NonThinking])
	assert.Equal(t, 0, s.ModeCounts[task.Simplified])
	assert.Equal(t, 2, s.ModeCounts[task.FullThinking])
	assert.Equal(t, 2, s.CategoryCounts[task.MathReasoning])
	assert.Equal(t, 0, s.CategoryCounts[task.Other])
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.Record(result(task.Simplified, task.SimpleQA, 0.5))

	s := r.Snapshot()
	s.ModeCounts[task.Simplified] = 99
	s.TotalTasks = 99

	again := r.Snapshot()
	assert.Equal(t, 1, again.TotalTasks)
	assert.Equal(t, 1, again.ModeCounts[task.Simplified])
}

func TestRecorderConcurrent(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Record(result(task.Modes[i%3], task.Categories[i%4], 1))
		}(i)
	}
	wg.Wait()

	s := r.Snapshot()
	assert.Equal(t, 100, s.TotalTasks)
	modes, cats := 0, 0
	for _, n := range s.ModeCounts {
		modes += n
	}
	for _, n := range s.CategoryCounts {
		cats += n
	}
	assert.Equal(t, 100, modes)
	assert.Equal(t, 100, cats)
	assert.InDelta(t, 1.0, s.AverageExecutionTime, 1e-9)
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorderFrom(Statistics{TotalTasks: 2, ModeCounts: map[task.Mode]int{task.NonThinking: 2}, CategoryCounts: map[task.Category]int{task.Other: 2}, AverageExecutionTime: 1})
	assert.Equal(t, 2, r.Snapshot().TotalTasks)

	r.Reset()
	s := r.Snapshot()
	assert.Zero(t, s.TotalTasks)
	assert.Zero(t, s.AverageExecutionTime)
	assert.Len(t, s.ModeCounts, 3)
	assert.Len(t, s.CategoryCounts, 4)
}

func TestReport(t *testing.T) {
	r := NewRecorder()
	r.Record(result(task.NonThinking, task.Programming, 1))
	r.Record(result(task.NonThinking, task.Programming, 1))
	r.Record(result(task.Simplified, task.SimpleQA, 1))
	r.Record(result(task.FullThinking, task.MathReasoning, 1))

	rep := NewReport(r.Snapshot())
	assert.Equal(t, 4, rep.TotalTasks)
	assert.Equal(t, Share{Count: 2, Percent: 50}, rep.Modes["non_thinking"])
	assert.Equal(t, Share{Count: 1, Percent: 25}, rep.Categories["math_reasoning"])
	assert.Equal(t, Share{Count: 0, Percent: 0}, rep.Categories["other"])

	empty := NewReport(NewStatistics())
	assert.Equal(t, Share{}, empty.Modes["full_thinking"])
}

func TestReportWriters(t *testing.T) {
	r := NewRecorder()
	r.Record(result(task.Simplified, task.Other, 2))
	rep := NewReport(r.Snapshot())

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))
	var fromJSON Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, rep, fromJSON)

	buf.Reset()
	require.NoError(t, rep.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "total_tasks: 1")
	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, rep, fromYAML)
}
