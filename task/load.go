package task

import (
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/m4xw311/thinkmode/errors"
	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk shape of a task file. Either a bare list of
// inputs or a document with a "tasks" key is accepted; since JSON is a
// subset of YAML the same decoder reads both.
type fileFormat struct {
	Tasks []Input `yaml:"tasks"`
}

// LoadFile reads the batch inputs stored in a YAML or JSON file.
func LoadFile(path string) ([]Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read task file %s", path)
	}
	return parse(data, path)
}

func parse(data []byte, name string) ([]Input, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrapf(err, "could not parse task file %s", name)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var inputs []Input
		if err := node.Decode(&inputs); err != nil {
			return nil, errors.Wrapf(err, "could not decode tasks in %s", name)
		}
		return inputs, nil
	}
	var doc fileFormat
	if err := node.Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "could not decode tasks in %s", name)
	}
	return doc.Tasks, nil
}

// LoadGlob expands each doublestar pattern (for example "tasks/**/*.yaml")
// and concatenates the inputs of every matched file. Files are read in
// lexical order per pattern so the resulting batch order is stable.
func LoadGlob(patterns ...string) ([]Input, error) {
	var all []Input
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
		}
		if len(matches) == 0 {
			return nil, errors.New("no task files match %q", pattern)
		}
		sort.Strings(matches)
		for _, path := range matches {
			inputs, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			all = append(all, inputs...)
		}
	}
	return all, nil
}
