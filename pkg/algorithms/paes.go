package algorithms

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/moeakit/moea/pkg/archive"
	"github.com/moeakit/moea/pkg/dominance"
	"github.com/moeakit/moea/pkg/framework"
)

const PAESName = "PAES"

// PAESConfig holds configuration parameters for PAES
type PAESConfig struct {
	ArchiveSize         int
	Bisections          int
	MaxEvaluations      int
	MutationProbability float64
}

// Validate reports the first unusable setting.
func (c PAESConfig) Validate() error {
	switch {
	case c.ArchiveSize < 1:
		return fmt.Errorf("archive size must be at least 1, got %d", c.ArchiveSize)
	case c.Bisections < 1:
		return fmt.Errorf("bisections must be at least 1, got %d", c.Bisections)
	case c.MaxEvaluations < 1:
		return fmt.Errorf("max evaluations must be at least 1, got %d", c.MaxEvaluations)
	case c.MutationProbability < 0 || c.MutationProbability > 1:
		return fmt.Errorf("mutation probability must be in [0, 1], got %v", c.MutationProbability)
	}
	return nil
}

// PAES is the Pareto Archived Evolution Strategy: a (1+1) local search whose
// acceptance rule consults an adaptive grid archive.
type PAES struct {
	config  PAESConfig
	problem framework.Problem
	opts    options
}

func NewPAES(config PAESConfig, problem framework.Problem, opts ...Option) *PAES {
	return &PAES{
		config:  config,
		problem: problem,
		opts:    newOptions(opts),
	}
}

func (p *PAES) Name() string {
	return PAESName
}

// Run mutates the current solution until MaxEvaluations evaluations were
// spent. The archive contents form the result; Population holds the last
// current solution.
func (p *PAES) Run(ctx context.Context) (*Result, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}
	logger := klog.FromContext(ctx)
	startTime := time.Now()

	ctx, span := p.opts.tracer.Start(ctx, "PAES.Run", trace.WithAttributes(
		attribute.String("problem", p.problem.Name()),
		attribute.Int("archiveSize", p.config.ArchiveSize),
		attribute.Int("bisections", p.config.Bisections),
		attribute.Int("maxEvaluations", p.config.MaxEvaluations),
	))
	defer span.End()

	var archOpts []archive.Option
	if p.opts.metrics != nil {
		archOpts = append(archOpts, archive.WithObserver(p.opts.metrics.ArchiveObserver("adaptive_grid")))
	}
	arch, err := archive.NewAdaptiveGridArchive(p.config.ArchiveSize, p.config.Bisections, p.problem.NumberOfObjectives(), archOpts...)
	if err != nil {
		return nil, err
	}

	encodings := p.problem.Initialize(1)
	if len(encodings) != 1 {
		return nil, fmt.Errorf("could not initialize a single solution, got %d", len(encodings))
	}
	current := newSolutions(encodings)[0]
	Evaluate(p.problem, current)
	evaluations := 1
	if _, err := arch.Add(current); err != nil {
		return nil, err
	}

	logger.Info("Starting search", "algorithm", PAESName, "problem", p.problem.Name(),
		"archiveSize", p.config.ArchiveSize, "bisections", p.config.Bisections,
		"maxEvaluations", p.config.MaxEvaluations)

	for evaluations < p.config.MaxEvaluations {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		mutated := &framework.Solution{Encoding: current.Encoding.Clone(), Location: -1}
		mutated.Encoding.Mutate(p.config.MutationProbability)
		Evaluate(p.problem, mutated)
		evaluations++
		if p.opts.metrics != nil {
			p.opts.metrics.ObserveGeneration(PAESName, 1, arch.Size())
		}
		if evaluations%1000 == 0 {
			logger.V(2).Info("Search progress", "evaluations", evaluations, "archiveSize", arch.Size())
		}

		if dominance.Equality(current, mutated) == dominance.Equal {
			continue
		}
		switch dominance.Dominance(current, mutated) {
		case dominance.FirstBetter:
			// The mutant is discarded.
		case dominance.SecondBetter:
			current = mutated
			if _, err := arch.Add(mutated); err != nil {
				return nil, err
			}
		default:
			accepted, err := arch.Add(mutated)
			if err != nil {
				return nil, err
			}
			if accepted {
				current = test(current, mutated, arch)
			}
		}
	}

	span.SetAttributes(attribute.Int("finalArchiveSize", arch.Size()))
	logger.Info("Search complete", "algorithm", PAESName, "problem", p.problem.Name(),
		"evaluations", evaluations, "archiveSize", arch.Size(), "duration", time.Since(startTime))

	return &Result{
		Population:  []*framework.Solution{current},
		Archive:     arch.Solutions(),
		Evaluations: evaluations,
	}, nil
}

// test picks the next current solution between two mutually non-dominated
// ones. The mutant wins when the current solution lies outside the grid or
// when the mutant's hypercube is less crowded; ties keep the current solution.
func test(current, mutated *framework.Solution, arch *archive.AdaptiveGridArchive) *framework.Solution {
	loc1 := arch.Location(current)
	loc2 := arch.Location(mutated)
	switch {
	case loc1 == -1:
		return mutated
	case loc2 == -1:
		return current
	case arch.Density(loc2) < arch.Density(loc1):
		return mutated
	}
	return current
}
