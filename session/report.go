package session

import (
	"encoding/json"
	"io"

	"github.com/m4xw311/thinkmode/task"
	"gopkg.in/yaml.v3"
)

// Share is a count with its percentage of all tasks.
type Share struct {
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Report is the exported form of Statistics, keyed by mode and category
// name with percentages.
type Report struct {
	TotalTasks           int              `json:"total_tasks" yaml:"total_tasks"`
	AverageExecutionTime float64          `json:"average_execution_time" yaml:"average_execution_time"`
	Modes                map[string]Share `json:"modes" yaml:"modes"`
	Categories           map[string]Share `json:"categories" yaml:"categories"`
}

// NewReport builds a Report from s. With no tasks every percentage is 0.
func NewReport(s Statistics) Report {
	r := Report{
		TotalTasks:           s.TotalTasks,
		AverageExecutionTime: s.AverageExecutionTime,
		Modes:                make(map[string]Share, len(task.Modes)),
		Categories:           make(map[string]Share, len(task.Categories)),
	}
	for _, m := range task.Modes {
		r.Modes[string(m)] = share(s.ModeCounts[m], s.TotalTasks)
	}
	for _, c := range task.Categories {
		r.Categories[string(c)] = share(s.CategoryCounts[c], s.TotalTasks)
	}
	return r
}

func share(count, total int) Share {
	if total == 0 {
		return Share{Count: count}
	}
	return Share{Count: count, Percent: float64(count) * 100 / float64(total)}
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the report as YAML.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
