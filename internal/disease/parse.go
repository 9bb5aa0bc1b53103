// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package disease parses the free-form disease specification into ordered
// DiseaseSpecs. Each nonblank line has the form "Name: alias1, alias2, ...".
package disease

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/pubmed-cooccur/pkg/types"
)

// Parse reads disease lines from text. Specs are returned in order of first
// occurrence; when a name repeats, the later line's aliases replace the earlier
// ones. Any malformed line fails the whole parse.
func Parse(text string) ([]types.DiseaseSpec, error) {
	var specs []types.DiseaseSpec
	index := make(map[string]int)

	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		spec, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("disease line %d %q: %w", lineNo, line, err)
		}
		if i, ok := index[spec.Name]; ok {
			specs[i].Aliases = spec.Aliases
			continue
		}
		index[spec.Name] = len(specs)
		specs = append(specs, spec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading disease conditions: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no disease conditions given")
	}
	return specs, nil
}

func parseLine(line string) (types.DiseaseSpec, error) {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return types.DiseaseSpec{}, fmt.Errorf("want exactly one ':' separating name and aliases, found %d", len(parts)-1)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return types.DiseaseSpec{}, fmt.Errorf("missing disease name")
	}
	var aliases []string
	for _, a := range strings.Split(parts[1], ",") {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	if len(aliases) == 0 {
		return types.DiseaseSpec{}, fmt.Errorf("disease %q has no aliases", name)
	}
	return types.DiseaseSpec{Name: name, Aliases: aliases}, nil
}

// ParseFile reads and parses a disease specification file.
func ParseFile(path string) ([]types.DiseaseSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening disease file: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading disease file: %w", err)
	}
	return Parse(string(data))
}
