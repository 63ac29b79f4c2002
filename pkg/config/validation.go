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
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"

	"github.com/moeakit/moea/pkg/benchmarks"
)

// maxGridBits bounds bisections*objectives so that hypercube indexes fit an int.
const maxGridBits = 62

// ValidateRunArgs validates defaulted run arguments and reports every
// problem at once.
func ValidateRunArgs(args *RunArgs) error {
	var errs field.ErrorList

	algorithms := []string{AlgorithmNSGAII, AlgorithmPAES}
	if !slices.Contains(algorithms, args.Algorithm) {
		errs = append(errs, field.NotSupported(field.NewPath("algorithm"), args.Algorithm, algorithms))
	}

	problem := strings.ToLower(args.Problem)
	switch {
	case !slices.Contains(benchmarks.Names(), problem):
		errs = append(errs, field.NotSupported(field.NewPath("problem"), args.Problem, benchmarks.Names()))
	case benchmarks.Scalable(problem):
		if args.Objectives < 2 {
			errs = append(errs, field.Invalid(field.NewPath("objectives"), args.Objectives, "must be at least 2"))
		}
		if args.Variables < args.Objectives {
			errs = append(errs, field.Invalid(field.NewPath("variables"), args.Variables, "must not be smaller than objectives"))
		}
	default:
		if args.Objectives != 2 {
			errs = append(errs, field.Invalid(field.NewPath("objectives"), args.Objectives, "problem has exactly 2 objectives"))
		}
		if problem == "srinivas" && args.Variables != 2 {
			errs = append(errs, field.Invalid(field.NewPath("variables"), args.Variables, "problem has exactly 2 variables"))
		} else if args.Variables < 2 {
			errs = append(errs, field.Invalid(field.NewPath("variables"), args.Variables, "must be at least 2"))
		}
	}

	errs = append(errs, validateProbability(field.NewPath("crossoverProbability"), args.CrossoverProbability)...)
	errs = append(errs, validateProbability(field.NewPath("mutationProbability"), args.MutationProbability)...)

	switch args.Algorithm {
	case AlgorithmNSGAII:
		if args.PopulationSize < 2 {
			errs = append(errs, field.Invalid(field.NewPath("populationSize"), args.PopulationSize, "must be at least 2"))
		}
		if args.Generations < 0 {
			errs = append(errs, field.Invalid(field.NewPath("generations"), args.Generations, "must not be negative"))
		}
		if args.TournamentSize < 2 {
			errs = append(errs, field.Invalid(field.NewPath("tournamentSize"), args.TournamentSize, "must be at least 2"))
		}
		if ptr.Deref(args.ArchiveSize, 0) < 0 {
			errs = append(errs, field.Invalid(field.NewPath("archiveSize"), *args.ArchiveSize, "must not be negative"))
		}
	case AlgorithmPAES:
		if args.MaxEvaluations < 1 {
			errs = append(errs, field.Invalid(field.NewPath("maxEvaluations"), args.MaxEvaluations, "must be at least 1"))
		}
		if ptr.Deref(args.ArchiveSize, 0) < 1 {
			errs = append(errs, field.Invalid(field.NewPath("archiveSize"), ptr.Deref(args.ArchiveSize, 0), "must be at least 1"))
		}
		if args.Bisections < 1 {
			errs = append(errs, field.Invalid(field.NewPath("bisections"), args.Bisections, "must be at least 1"))
		} else if args.Bisections*args.Objectives > maxGridBits {
			errs = append(errs, field.Invalid(field.NewPath("bisections"), args.Bisections, "bisections times objectives must not exceed 62"))
		}
	}

	if args.PlotFile != "" && args.Objectives != 2 {
		errs = append(errs, field.Invalid(field.NewPath("plotFile"), args.PlotFile, "plots need exactly 2 objectives"))
	}

	return errs.ToAggregate()
}

func validateProbability(path *field.Path, p *float64) field.ErrorList {
	if p == nil {
		return field.ErrorList{field.Required(path, "")}
	}
	if *p < 0 || *p > 1 {
		return field.ErrorList{field.Invalid(path, *p, "must be between 0 and 1")}
	}
	return nil
}
