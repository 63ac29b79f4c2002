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

import (
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/moeakit/moea/pkg/benchmarks"
)

const (
	DefaultAlgorithm            = AlgorithmNSGAII
	DefaultProblem              = "zdt1"
	DefaultObjectives           = 2
	DefaultPopulationSize       = 100
	DefaultGenerations          = 250
	DefaultMaxEvaluations       = 25000
	DefaultCrossoverProbability = 0.9
	DefaultTournamentSize       = 2
	DefaultPAESArchiveSize      = 100
	DefaultBisections           = 5
)

// SetDefaults_RunArgs fills every unset field. The mutation probability
// defaults to 1/n for n variables.
func SetDefaults_RunArgs(args *RunArgs) {
	if args.Algorithm == "" {
		args.Algorithm = DefaultAlgorithm
	}
	if args.Problem == "" {
		args.Problem = DefaultProblem
	}
	if args.Objectives == 0 {
		args.Objectives = DefaultObjectives
	}
	if args.Variables == 0 {
		args.Variables = benchmarks.DefaultVariables(args.Problem, args.Objectives)
	}
	if args.PopulationSize == 0 {
		args.PopulationSize = DefaultPopulationSize
	}
	if args.Generations == 0 {
		args.Generations = DefaultGenerations
	}
	if args.MaxEvaluations == 0 {
		args.MaxEvaluations = DefaultMaxEvaluations
	}
	if args.CrossoverProbability == nil {
		args.CrossoverProbability = ptr.To(DefaultCrossoverProbability)
	}
	if args.MutationProbability == nil && args.Variables > 0 {
		args.MutationProbability = ptr.To(1.0 / float64(args.Variables))
	}
	if args.TournamentSize == 0 {
		args.TournamentSize = DefaultTournamentSize
	}
	if args.Parallel == nil {
		args.Parallel = ptr.To(false)
	}
	if args.ArchiveSize == nil {
		if args.Algorithm == AlgorithmPAES {
			args.ArchiveSize = ptr.To(DefaultPAESArchiveSize)
		} else {
			args.ArchiveSize = ptr.To(0)
		}
	}
	if args.Bisections == 0 {
		args.Bisections = DefaultBisections
	}
	klog.V(5).InfoS("Defaulted run arguments", "algorithm", args.Algorithm, "problem", args.Problem,
		"variables", args.Variables, "objectives", args.Objectives)
}
