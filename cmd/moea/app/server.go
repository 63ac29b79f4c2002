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

// Package app implements the moea command.
package app

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/moeakit/moea/pkg/algorithms"
	"github.com/moeakit/moea/pkg/benchmarks"
	"github.com/moeakit/moea/pkg/config"
	"github.com/moeakit/moea/pkg/framework"
	"github.com/moeakit/moea/pkg/indicators"
	"github.com/moeakit/moea/pkg/metrics"
	"github.com/moeakit/moea/pkg/ranking"
	"github.com/moeakit/moea/pkg/util"
)

const shutdownTimeout = 5 * time.Second

type runner interface {
	Name() string
	Run(context.Context) (*algorithms.Result, error)
}

// NewMoeaCommand creates the root command with its run subcommand.
func NewMoeaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "moea",
		Short:         "moea runs multi-objective evolutionary algorithms on benchmark problems",
		SilenceUsage: true,
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(NewRunCommand())
	return cmd
}

// NewRunCommand creates the `moea run` command.
func NewRunCommand() *cobra.Command {
	o := NewRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optimize a benchmark problem and report its Pareto front",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := o.Complete(cmd.Flags())
			if err != nil {
				return err
			}
			return Run(cmd.Context(), o, args, cmd.OutOrStdout())
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// Run executes one optimization and writes the requested outputs. A summary
// line goes to out.
func Run(ctx context.Context, o *RunOptions, args *config.RunArgs, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := klog.FromContext(ctx)

	problem, err := benchmarks.New(args.Problem, args.Variables, args.Objectives)
	if err != nil {
		return err
	}

	m := metrics.New()
	algOpts := []algorithms.Option{algorithms.WithMetrics(m)}
	if o.OTLPEndpoint != "" {
		tp, err := newTracerProvider(ctx, o.OTLPEndpoint, o.OTLPInsecure)
		if err != nil {
			return fmt.Errorf("creating tracer provider: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Error(err, "Failed to shut down tracer provider")
			}
		}()
		algOpts = append(algOpts, algorithms.WithTracerProvider(tp))
	}

	alg := newRunner(args, problem, algOpts)
	result, err := alg.Run(ctx)
	if err != nil {
		return err
	}

	front, err := finalFront(result)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("%s on %s: %d non-dominated solutions after %d evaluations",
		alg.Name(), problem.Name(), len(front), result.Evaluations)
	if trueFront := problem.TrueParetoFront(500); trueFront != nil && len(front) > 0 {
		igd, err := indicators.IGD(front.Points(), trueFront)
		if err != nil {
			return err
		}
		summary += fmt.Sprintf(", IGD %.6f", igd)
	}
	logger.Info("Run complete", "algorithm", alg.Name(), "problem", problem.Name(), "frontSize", len(front))
	if _, err := fmt.Fprintln(out, summary); err != nil {
		return err
	}

	if args.PlotFile != "" {
		if err := util.PlotResults(front.Points(), problem, alg.Name(), args.PlotFile); err != nil {
			return fmt.Errorf("plotting front: %w", err)
		}
	}
	if args.FrontFile != "" {
		if err := util.WriteFront(args.FrontFile, alg.Name(), problem, front); err != nil {
			return fmt.Errorf("writing front: %w", err)
		}
	}
	if args.MetricsFile != "" {
		if err := m.WriteTextfile(args.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func newRunner(args *config.RunArgs, problem framework.Problem, opts []algorithms.Option) runner {
	if args.Algorithm == config.AlgorithmPAES {
		return algorithms.NewPAES(algorithms.PAESConfig{
			ArchiveSize:         ptr.Deref(args.ArchiveSize, config.DefaultPAESArchiveSize),
			Bisections:          args.Bisections,
			MaxEvaluations:      args.MaxEvaluations,
			MutationProbability: ptr.Deref(args.MutationProbability, 0),
		}, problem, opts...)
	}
	return algorithms.NewNSGAII(algorithms.NSGA2Config{
		PopulationSize:       args.PopulationSize,
		MaxGenerations:       args.Generations,
		CrossoverProbability: ptr.Deref(args.CrossoverProbability, config.DefaultCrossoverProbability),
		MutationProbability:  ptr.Deref(args.MutationProbability, 0),
		TournamentSize:       args.TournamentSize,
		ParallelExecution:    ptr.Deref(args.Parallel, false),
		ArchiveSize:          ptr.Deref(args.ArchiveSize, 0),
	}, problem, opts...)
}

// finalFront prefers the archive, which keeps non-dominated solutions from
// the whole run, over the first front of the last population.
func finalFront(result *algorithms.Result) (framework.Front, error) {
	if len(result.Archive) > 0 {
		return framework.Front(result.Archive), nil
	}
	return ranking.NonDominated(result.Population)
}
