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

package app

import (
	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"github.com/moeakit/moea/pkg/config"
)

// RunOptions collects the flags of `moea run`.
type RunOptions struct {
	ConfigFile   string
	OTLPEndpoint string
	OTLPInsecure bool

	algorithm            string
	problem              string
	variables            int
	objectives           int
	populationSize       int
	generations          int
	maxEvaluations       int
	crossoverProbability float64
	mutationProbability  float64
	tournamentSize       int
	parallel             bool
	archiveSize          int
	bisections           int
	plotFile             string
	frontFile            string
	metricsFile          string
}

func NewRunOptions() *RunOptions {
	return &RunOptions{}
}

// AddFlags adds flags for the run options to the specified FlagSet
func (o *RunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to a YAML file with run arguments. Flags override its values.")
	fs.StringVar(&o.OTLPEndpoint, "otlp-endpoint", o.OTLPEndpoint, "OTLP gRPC endpoint to export traces to. Tracing is off when empty.")
	fs.BoolVar(&o.OTLPInsecure, "otlp-insecure", o.OTLPInsecure, "Disable TLS towards the OTLP endpoint.")

	fs.StringVar(&o.algorithm, "algorithm", config.DefaultAlgorithm, "Algorithm to run: nsga2 or paes.")
	fs.StringVar(&o.problem, "problem", config.DefaultProblem, "Benchmark problem: zdt1, zdt2, zdt3, dtlz1, dtlz2 or srinivas.")
	fs.IntVar(&o.variables, "variables", 0, "Number of decision variables. Defaults to the customary value for the problem.")
	fs.IntVar(&o.objectives, "objectives", config.DefaultObjectives, "Number of objectives, for dtlz problems.")
	fs.IntVar(&o.populationSize, "population-size", config.DefaultPopulationSize, "NSGA-II population size.")
	fs.IntVar(&o.generations, "generations", config.DefaultGenerations, "NSGA-II generations.")
	fs.IntVar(&o.maxEvaluations, "max-evaluations", config.DefaultMaxEvaluations, "PAES evaluation budget.")
	fs.Float64Var(&o.crossoverProbability, "crossover-probability", config.DefaultCrossoverProbability, "NSGA-II crossover probability.")
	fs.Float64Var(&o.mutationProbability, "mutation-probability", 0, "Per variable mutation probability. Defaults to 1/variables.")
	fs.IntVar(&o.tournamentSize, "tournament-size", config.DefaultTournamentSize, "NSGA-II tournament size.")
	fs.BoolVar(&o.parallel, "parallel", false, "Evaluate NSGA-II offspring on one worker per CPU.")
	fs.IntVar(&o.archiveSize, "archive-size", 0, "Capacity of the non-dominated archive. Zero disables it for nsga2; paes defaults to 100.")
	fs.IntVar(&o.bisections, "bisections", config.DefaultBisections, "PAES adaptive grid bisections per objective.")
	fs.StringVar(&o.plotFile, "plot-file", "", "Write an HTML scatter plot of a two-objective front to this file.")
	fs.StringVar(&o.frontFile, "front-file", "", "Write the final front as YAML to this file.")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "Write run metrics in the prometheus text format to this file.")
}

// Complete loads the config file, if any, and overlays every flag that was
// set explicitly.
func (o *RunOptions) Complete(fs *pflag.FlagSet) (*config.RunArgs, error) {
	args := &config.RunArgs{}
	if o.ConfigFile != "" {
		var err error
		if args, err = config.LoadFile(o.ConfigFile); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "algorithm":
			args.Algorithm = o.algorithm
		case "problem":
			args.Problem = o.problem
		case "variables":
			args.Variables = o.variables
		case "objectives":
			args.Objectives = o.objectives
		case "population-size":
			args.PopulationSize = o.populationSize
		case "generations":
			args.Generations = o.generations
		case "max-evaluations":
			args.MaxEvaluations = o.maxEvaluations
		case "crossover-probability":
			args.CrossoverProbability = ptr.To(o.crossoverProbability)
		case "mutation-probability":
			args.MutationProbability = ptr.To(o.mutationProbability)
		case "tournament-size":
			args.TournamentSize = o.tournamentSize
		case "parallel":
			args.Parallel = ptr.To(o.parallel)
		case "archive-size":
			args.ArchiveSize = ptr.To(o.archiveSize)
		case "bisections":
			args.Bisections = o.bisections
		case "plot-file":
			args.PlotFile = o.plotFile
		case "front-file":
			args.FrontFile = o.frontFile
		case "metrics-file":
			args.MetricsFile = o.metricsFile
		}
	})

	config.SetDefaults_RunArgs(args)
	if err := config.ValidateRunArgs(args); err != nil {
		return nil, err
	}
	return args, nil
}
