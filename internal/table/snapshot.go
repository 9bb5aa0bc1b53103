// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Snapshot is the on-disk form of a finished batch whose output could not be
// saved. The save step can be retried from it without re-querying.
type Snapshot struct {
	Input     string    `yaml:"input,omitempty"`
	Output    string    `yaml:"output,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
	Columns   []string  `yaml:"columns"`
	Rows      [][]any   `yaml:"rows"`
}

// WriteSnapshot saves t and its intended destination to a YAML file. Cell
// values are kept; workbook styles are not.
func WriteSnapshot(path string, t *Table, input, output string) error {
	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = make([]any, len(r))
		for j, v := range r {
			rows[i][j] = Plain(v)
		}
	}
	snap := Snapshot{
		Input:     input,
		Output:    output,
		Timestamp: time.Now(),
		Columns:   t.Columns,
		Rows:      rows,
	}
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, *Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if len(snap.Columns) == 0 {
		return nil, nil, fmt.Errorf("snapshot %s has no columns", path)
	}
	return &snap, New(snap.Columns, snap.Rows), nil
}
