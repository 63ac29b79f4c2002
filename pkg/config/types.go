/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

const (
	AlgorithmNSGAII = "nsga2"
	AlgorithmPAES   = "paes"
)

// RunArgs holds the arguments of one optimization run. Pointer fields
// distinguish "not set" from a meaningful zero.
type RunArgs struct {
	// Algorithm is either nsga2 or paes.
	Algorithm string `json:"algorithm,omitempty"`
	// Problem names a benchmark problem, e.g. zdt1 or dtlz2.
	Problem    string `json:"problem,omitempty"`
	Variables  int    `json:"variables,omitempty"`
	Objectives int    `json:"objectives,omitempty"`

	PopulationSize       int      `json:"populationSize,omitempty"`
	Generations          int      `json:"generations,omitempty"`
	MaxEvaluations       int      `json:"maxEvaluations,omitempty"`
	CrossoverProbability *float64 `json:"crossoverProbability,omitempty"`
	MutationProbability  *float64 `json:"mutationProbability,omitempty"`
	TournamentSize       int      `json:"tournamentSize,omitempty"`
	Parallel             *bool    `json:"parallel,omitempty"`

	// ArchiveSize bounds the non-dominated archive. Zero disables the
	// archive for nsga2.
	ArchiveSize *int `json:"archiveSize,omitempty"`
	Bisections  int  `json:"bisections,omitempty"`

	// PlotFile receives an HTML scatter plot of a two-objective front.
	PlotFile string `json:"plotFile,omitempty"`
	// FrontFile receives the final front as YAML.
	FrontFile string `json:"frontFile,omitempty"`
	// MetricsFile receives the run metrics in the prometheus text format.
	MetricsFile string `json:"metricsFile,omitempty"`
}
