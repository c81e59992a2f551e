// Package session accumulates routing statistics for one run and exports
// them as a Report. Nothing is persisted: a snapshot can be written to any
// io.Writer as JSON or YAML.
package session

import (
	"sync"

	"github.com/m4xw311/thinkmode/task"
)

// Statistics are cumulative counters over processed tasks.
type Statistics struct {
	TotalTasks           int                   `json:"total_tasks" yaml:"total_tasks"`
	ModeCounts           map[task.Mode]int     `json:"mode_counts" yaml:"mode_counts"`
	CategoryCounts       map[task.Category]int `json:"category_counts" yaml:"category_counts"`
	AverageExecutionTime float64               `json:"average_execution_time" yaml:"average_execution_time"`
}

// NewStatistics returns zeroed statistics with every mode and category
// present.
func NewStatistics() Statistics {
	s := Statistics{
		ModeCounts:     make(map[task.Mode]int, len(task.Modes)),
		CategoryCounts: make(map[task.Category]int, len(task.Categories)),
	}
	for _, m := range task.Modes {
		s.ModeCounts[m] = 0
	}
	for _, c := range task.Categories {
		s.CategoryCounts[c] = 0
	}
	return s
}

// Clone returns a deep copy.
func (s Statistics) Clone() Statistics {
	out := NewStatistics()
	out.TotalTasks = s.TotalTasks
	out.AverageExecutionTime = s.AverageExecutionTime
	for k, v := range s.ModeCounts {
		out.ModeCounts[k] = v
	}
	for k, v := range s.CategoryCounts {
		out.CategoryCounts[k] = v
	}
	return out
}

// Recorder accumulates Statistics. It is safe for concurrent use; every
// update is applied under a single lock so the counters never disagree.
type Recorder struct {
	mu    sync.Mutex
	stats Statistics
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{stats: NewStatistics()}
}

// NewRecorderFrom returns a Recorder continuing from s.
func NewRecorderFrom(s Statistics) *Recorder {
	return &Recorder{stats: s.Clone()}
}

// Record adds one successfully processed task. The average execution time
// is updated incrementally: avg' = avg + (elapsed - avg) / n.
func (r *Recorder) Record(res task.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.TotalTasks++
	r.stats.ModeCounts[res.Decision.Mode]++
	r.stats.CategoryCounts[res.Features.Category]++
	n := float64(r.stats.TotalTasks)
	r.stats.AverageExecutionTime += (res.ExecutionTimeSeconds - r.stats.AverageExecutionTime) / n
}

// Snapshot returns a deep copy of the current statistics.
func (r *Recorder) Snapshot() Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.Clone()
}

// Reset clears all counters.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = NewStatistics()
}
