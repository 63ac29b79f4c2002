package benchmarks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/moeakit/moea/pkg/algorithms"
	"github.com/moeakit/moea/pkg/framework"
	"github.com/moeakit/moea/pkg/indicators"
	"github.com/moeakit/moea/pkg/ranking"
	"github.com/moeakit/moea/pkg/util"
)

// Report summarises one problem of a suite run.
type Report struct {
	Problem       string
	FrontSize     int
	IGD           float64
	NormalizedIGD float64
	HasIGD        bool
	PlotFile      string
}

// TestSuite runs NSGA-II over a set of benchmark problems
type TestSuite struct {
	problems []framework.Problem
	config   algorithms.NSGA2Config
	opts     []algorithms.Option
}

// NewTestSuite creates a new benchmark test suite
func NewTestSuite(config algorithms.NSGA2Config, opts ...algorithms.Option) *TestSuite {
	return &TestSuite{
		config: config,
		opts:   opts,
	}
}

// AddProblem adds a problem to the test suite
func (ts *TestSuite) AddProblem(p framework.Problem) {
	ts.problems = append(ts.problems, p)
}

// Problems returns the problems in the order they run.
func (ts *TestSuite) Problems() []framework.Problem {
	return ts.problems
}

// AddStandardProblems adds common benchmark problems
func (ts *TestSuite) AddStandardProblems() {
	// ZDT problems with 30 variables (standard)
	ts.AddProblem(NewZDT1(30))
	ts.AddProblem(NewZDT2(30))
	ts.AddProblem(NewZDT3(30))

	// M + k - 1 variables, with k=5 for DTLZ1 and k=10 for DTLZ2
	ts.AddProblem(NewDTLZ1(6, 2))
	ts.AddProblem(NewDTLZ2(11, 2))
	ts.AddProblem(NewDTLZ1(7, 3))
	ts.AddProblem(NewDTLZ2(12, 3))

	ts.AddProblem(NewSrinivas())
}

// Run executes the suite. Two-objective fronts are plotted into outputDir
// when it is not empty.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Report, error) {
	logger := klog.FromContext(ctx)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	reports := make([]Report, 0, len(ts.problems))
	for _, problem := range ts.problems {
		logger.Info("Running benchmark", "algorithm", algorithms.NSGAIIName, "problem", problem.Name())

		result, err := algorithms.NewNSGAII(ts.config, problem, ts.opts...).Run(ctx)
		if err != nil {
			return reports, fmt.Errorf("running %s: %w", problem.Name(), err)
		}
		front, err := ranking.NonDominated(result.Population)
		if err != nil {
			return reports, fmt.Errorf("ranking %s: %w", problem.Name(), err)
		}
		report := Report{Problem: problem.Name(), FrontSize: len(front)}
		points := front.Points()

		if outputDir != "" && problem.NumberOfObjectives() == 2 {
			report.PlotFile = filepath.Join(outputDir, fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithms.NSGAIIName))
			if err := util.PlotResults(points, problem, algorithms.NSGAIIName, report.PlotFile); err != nil {
				logger.Error(err, "Failed to plot results", "problem", problem.Name())
				report.PlotFile = ""
			}
		}

		if trueFront := problem.TrueParetoFront(500); trueFront != nil {
			if report.IGD, err = indicators.IGD(points, trueFront); err != nil {
				return reports, fmt.Errorf("measuring %s: %w", problem.Name(), err)
			}
			if report.NormalizedIGD, err = indicators.NormalizedIGD(points, trueFront); err != nil {
				return reports, fmt.Errorf("measuring %s: %w", problem.Name(), err)
			}
			report.HasIGD = true
		}
		logger.Info("Benchmark finished", "problem", problem.Name(), "frontSize", report.FrontSize, "igd", report.IGD, "normalizedIGD", report.NormalizedIGD)
		reports = append(reports, report)
	}

	return reports, nil
}
