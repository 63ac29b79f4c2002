package util

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/moeakit/moea/pkg/framework"
)

// FrontEntry is the serialized form of one solution.
type FrontEntry struct {
	Objectives                  []float64 `json:"objectives"`
	OverallConstraintViolation  float64   `json:"overallConstraintViolation,omitempty"`
	NumberOfViolatedConstraints int       `json:"numberOfViolatedConstraints,omitempty"`
	Variables                   []float64 `json:"variables,omitempty"`
}

// FrontFile is what WriteFront stores.
type FrontFile struct {
	Algorithm string       `json:"algorithm"`
	Problem   string       `json:"problem"`
	Solutions []FrontEntry `json:"solutions"`
}

// WriteFront stores front as YAML. Variables are recorded for real-coded
// solutions only.
func WriteFront(path, algorithmName string, problem framework.Problem, front framework.Front) error {
	out := FrontFile{
		Algorithm: algorithmName,
		Problem:   problem.Name(),
		Solutions: make([]FrontEntry, 0, len(front)),
	}
	for _, s := range front {
		entry := FrontEntry{
			Objectives:                  s.Objectives,
			OverallConstraintViolation:  s.OverallConstraintViolation,
			NumberOfViolatedConstraints: s.NumberOfViolatedConstraints,
		}
		if rs, ok := s.Encoding.(*framework.RealSolution); ok {
			entry.Variables = rs.Variables
		}
		out.Solutions = append(out.Solutions, entry)
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding front: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFront loads a file written by WriteFront.
func ReadFront(path string) (*FrontFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := &FrontFile{}
	if err := yaml.UnmarshalStrict(data, out); err != nil {
		return nil, fmt.Errorf("decoding front %s: %w", path, err)
	}
	return out, nil
}
