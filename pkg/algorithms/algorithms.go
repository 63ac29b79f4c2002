// Package algorithms drives the Pareto decision layer with complete
// metaheuristics: NSGA-II and PAES.
package algorithms

import (
	"runtime"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"

	"github.com/moeakit/moea/pkg/dominance"
	"github.com/moeakit/moea/pkg/framework"
	"github.com/moeakit/moea/pkg/metrics"
)

const tracerName = "github.com/moeakit/moea/pkg/algorithms"

// Result is what an algorithm run leaves behind.
type Result struct {
	// Population is the final population.
	Population []*framework.Solution
	// Archive holds the bounded archive contents, if the algorithm kept one.
	Archive []*framework.Solution
	// Evaluations counts calls to Evaluate.
	Evaluations int
}

type options struct {
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures an algorithm.
type Option func(*options)

// WithMetrics records progress and archive events into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracerProvider sets where spans are sent. The global provider is used
// otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracer = tp.Tracer(tracerName)
	}
}

func newOptions(opts []Option) options {
	o := options{tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Evaluate computes the objectives of s from its encoding and summarises the
// problem constraints: violated constraints add their (negative) value to
// OverallConstraintViolation and are counted in NumberOfViolatedConstraints.
func Evaluate(problem framework.Problem, s *framework.Solution) {
	objectives := problem.ObjectiveFuncs()
	if len(s.Objectives) != len(objectives) {
		s.Objectives = make([]float64, len(objectives))
	}
	for i, objFunc := range objectives {
		s.Objectives[i] = objFunc(s.Encoding)
	}

	violation, violated := 0.0, 0
	for _, c := range problem.Constraints() {
		if v := c(s.Encoding); v < 0 {
			violation += v
			violated++
		}
	}
	s.OverallConstraintViolation = violation
	s.NumberOfViolatedConstraints = violated
}

// evaluateAll evaluates every solution, fanning out to one worker per CPU
// when parallel is set.
func evaluateAll(problem framework.Problem, solutions []*framework.Solution, parallel bool) {
	if !parallel {
		for _, s := range solutions {
			Evaluate(problem, s)
		}
		return
	}

	workChan := make(chan *framework.Solution, len(solutions))
	wg := &sync.WaitGroup{}
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range workChan {
				Evaluate(problem, s)
			}
		}()
	}
	for _, s := range solutions {
		workChan <- s
	}
	close(workChan)
	wg.Wait()
}

// TournamentSelect draws tournamentSize solutions with replacement and
// returns the best one under dominance.Crowded. Ties keep the earlier draw.
func TournamentSelect(population []*framework.Solution, ann *framework.Annotations, tournamentSize int) *framework.Solution {
	if tournamentSize < 2 {
		tournamentSize = 2
	}
	best := population[rand.Intn(len(population))]
	for i := 1; i < tournamentSize; i++ {
		contestant := population[rand.Intn(len(population))]
		if dominance.Crowded(ann, contestant, best) == dominance.FirstBetter {
			best = contestant
		}
	}
	return best
}

func newSolutions(encodings []framework.Encoding) []*framework.Solution {
	solutions := make([]*framework.Solution, len(encodings))
	for i, e := range encodings {
		solutions[i] = &framework.Solution{Encoding: e, Location: -1}
	}
	return solutions
}
