package algorithms

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/moeakit/moea/pkg/archive"
	"github.com/moeakit/moea/pkg/density"
	"github.com/moeakit/moea/pkg/framework"
	"github.com/moeakit/moea/pkg/ranking"
)

const NSGAIIName = "NSGA-II"

// NSGA2Config holds configuration parameters for NSGA-II
type NSGA2Config struct {
	PopulationSize       int
	MaxGenerations       int
	CrossoverProbability float64
	MutationProbability  float64
	TournamentSize       int
	// ParallelExecution evaluates offspring on one worker per CPU.
	ParallelExecution bool
	// ArchiveSize > 0 offers every evaluated solution to a crowding archive
	// of that capacity.
	ArchiveSize int
}

// Validate reports the first unusable setting.
func (c NSGA2Config) Validate() error {
	switch {
	case c.PopulationSize < 2:
		return fmt.Errorf("population size must be at least 2, got %d", c.PopulationSize)
	case c.MaxGenerations < 0:
		return fmt.Errorf("max generations must not be negative, got %d", c.MaxGenerations)
	case c.CrossoverProbability < 0 || c.CrossoverProbability > 1:
		return fmt.Errorf("crossover probability must be in [0, 1], got %v", c.CrossoverProbability)
	case c.MutationProbability < 0 || c.MutationProbability > 1:
		return fmt.Errorf("mutation probability must be in [0, 1], got %v", c.MutationProbability)
	case c.ArchiveSize < 0:
		return fmt.Errorf("archive size must not be negative, got %d", c.ArchiveSize)
	}
	return nil
}

// NSGAII is the elitist non-dominated sorting genetic algorithm.
type NSGAII struct {
	config  NSGA2Config
	problem framework.Problem
	opts    options
}

// NewNSGAII creates a new instance of NSGA-II with given parameters
func NewNSGAII(config NSGA2Config, problem framework.Problem, opts ...Option) *NSGAII {
	return &NSGAII{
		config:  config,
		problem: problem,
		opts:    newOptions(opts),
	}
}

func (n *NSGAII) Name() string {
	return NSGAIIName
}

// Run evolves the population for MaxGenerations generations. It stops early
// with ctx.Err() when ctx is cancelled.
func (n *NSGAII) Run(ctx context.Context) (*Result, error) {
	if err := n.config.Validate(); err != nil {
		return nil, err
	}
	logger := klog.FromContext(ctx)
	startTime := time.Now()
	m := n.problem.NumberOfObjectives()

	ctx, span := n.opts.tracer.Start(ctx, "NSGAII.Run", trace.WithAttributes(
		attribute.String("problem", n.problem.Name()),
		attribute.Int("populationSize", n.config.PopulationSize),
		attribute.Int("generations", n.config.MaxGenerations),
	))
	defer span.End()

	var arch *archive.CrowdingArchive
	if n.config.ArchiveSize > 0 {
		var archOpts []archive.Option
		if n.opts.metrics != nil {
			archOpts = append(archOpts, archive.WithObserver(n.opts.metrics.ArchiveObserver("crowding")))
		}
		var err error
		if arch, err = archive.NewCrowdingArchive(n.config.ArchiveSize, m, archOpts...); err != nil {
			return nil, err
		}
	}

	encodings := n.problem.Initialize(n.config.PopulationSize)
	if len(encodings) != n.config.PopulationSize {
		return nil, fmt.Errorf("could not initialize population with size %d, got %d", n.config.PopulationSize, len(encodings))
	}

	mode := "sequential"
	if n.config.ParallelExecution {
		mode = "parallel"
	}
	logger.Info("Starting evolution", "algorithm", NSGAIIName, "problem", n.problem.Name(),
		"populationSize", n.config.PopulationSize, "generations", n.config.MaxGenerations,
		"crossoverRate", n.config.CrossoverProbability, "mutationRate", n.config.MutationProbability,
		"mode", mode, "workers", runtime.NumCPU())

	population := newSolutions(encodings)
	evaluateAll(n.problem, population, n.config.ParallelExecution)
	evaluations := len(population)
	if err := offer(arch, population); err != nil {
		return nil, err
	}

	ann := framework.NewAnnotations()
	if _, _, err := n.survive(population, ann); err != nil {
		return nil, err
	}

	for gen := 0; gen < n.config.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		_, genSpan := n.opts.tracer.Start(ctx, "NSGAII.Generation", trace.WithAttributes(attribute.Int("generation", gen+1)))

		offspring := n.breed(population, ann)
		evaluateAll(n.problem, offspring, n.config.ParallelExecution)
		evaluations += len(offspring)
		if err := offer(arch, offspring); err != nil {
			genSpan.End()
			return nil, err
		}

		combined := make([]*framework.Solution, 0, len(population)+len(offspring))
		combined = append(combined, population...)
		combined = append(combined, offspring...)

		var (
			firstFront int
			err        error
		)
		population, firstFront, err = n.survive(combined, ann)
		if err != nil {
			genSpan.End()
			return nil, err
		}
		genSpan.SetAttributes(attribute.Int("firstFront", firstFront))
		genSpan.End()

		if n.opts.metrics != nil {
			n.opts.metrics.ObserveGeneration(NSGAIIName, len(offspring), firstFront)
		}
		if gen%10 == 0 {
			logger.V(2).Info("Generation finished", "generation", gen+1, "firstFront", firstFront, "evaluations", evaluations)
		}
	}

	result := &Result{Population: population, Evaluations: evaluations}
	if arch != nil {
		result.Archive = arch.Solutions()
	}

	elapsedTime := time.Since(startTime)
	perGeneration := time.Duration(0)
	if n.config.MaxGenerations > 0 {
		perGeneration = elapsedTime / time.Duration(n.config.MaxGenerations)
	}
	logger.Info("Evolution complete", "algorithm", NSGAIIName, "problem", n.problem.Name(),
		"evaluations", evaluations, "archiveSize", len(result.Archive),
		"duration", elapsedTime, "perGeneration", perGeneration)
	return result, nil
}

// breed builds PopulationSize offspring by binary tournament, crossover and
// mutation. Offspring are not evaluated.
func (n *NSGAII) breed(population []*framework.Solution, ann *framework.Annotations) []*framework.Solution {
	offspring := make([]*framework.Solution, 0, n.config.PopulationSize)
	for len(offspring) < n.config.PopulationSize {
		parent1 := TournamentSelect(population, ann, n.config.TournamentSize)
		parent2 := TournamentSelect(population, ann, n.config.TournamentSize)

		child1, child2 := parent1.Encoding.Crossover(parent2.Encoding, n.config.CrossoverProbability)
		child1.Mutate(n.config.MutationProbability)
		offspring = append(offspring, &framework.Solution{Encoding: child1, Location: -1})

		if len(offspring) < n.config.PopulationSize {
			child2.Mutate(n.config.MutationProbability)
			offspring = append(offspring, &framework.Solution{Encoding: child2, Location: -1})
		}
	}
	return offspring
}

// survive keeps the best PopulationSize solutions of combined: whole fronts
// in rank order, then the most isolated members of the front that does not
// fit. It returns the survivors and the size of the first front.
func (n *NSGAII) survive(combined []*framework.Solution, ann *framework.Annotations) ([]*framework.Solution, int, error) {
	ann.Reset()
	r, err := ranking.Rank(combined, ann)
	if err != nil {
		return nil, 0, err
	}
	m := n.problem.NumberOfObjectives()

	population := make([]*framework.Solution, 0, n.config.PopulationSize)
	for _, front := range r.Fronts() {
		if err := density.AssignCrowdingDistance(front, m, ann); err != nil {
			return nil, 0, err
		}
		if len(population)+len(front) <= n.config.PopulationSize {
			population = append(population, front...)
			continue
		}
		last := make(framework.Front, len(front))
		copy(last, front)
		sort.SliceStable(last, func(i, j int) bool {
			return ann.CrowdingDistance(last[i]) > ann.CrowdingDistance(last[j])
		})
		population = append(population, last[:n.config.PopulationSize-len(population)]...)
		break
	}

	firstFront := 0
	if r.NumberOfSubFronts() > 0 {
		firstFront = len(r.SubFront(0))
	}
	return population, firstFront, nil
}

func offer(arch *archive.CrowdingArchive, solutions []*framework.Solution) error {
	if arch == nil {
		return nil
	}
	for _, s := range solutions {
		if _, err := arch.Add(s); err != nil {
			return err
		}
	}
	return nil
}
