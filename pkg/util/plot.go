package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/moeakit/moea/pkg/framework"
)

// PlotResults renders a scatter plot of a two-objective front next to the
// true Pareto front of problem, when the problem knows it. The HTML file goes
// to outputPath[0], or to <problem>_<algorithm>_results.html.
func PlotResults(results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string, outputPath ...string) error {
	if len(results) == 0 {
		return fmt.Errorf("results are empty for %s benchmark", problem.Name())
	}
	for _, p := range results {
		if len(p) != 2 {
			return fmt.Errorf("can only plot 2D for %s benchmark: %w", problem.Name(), framework.ErrObjectiveCount)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s Benchmark", algorithmName, problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "f1(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "f2(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}))

	if trueFront := problem.TrueParetoFront(500); len(trueFront) > 0 {
		scatter.AddSeries("True Pareto Front", scatterData(trueFront, "circle", 3))
	}
	scatter.AddSeries(fmt.Sprintf("%s Solutions", algorithmName), scatterData(results, "triangle", 8)).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	filename := fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithmName)
	if len(outputPath) > 0 && outputPath[0] != "" {
		filename = outputPath[0]
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}

func scatterData(points []framework.ObjectiveSpacePoint, symbol string, size int) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		if !p.Finite() {
			continue
		}
		data = append(data, opts.ScatterData{
			Value:      []float64{p[0], p[1]},
			Symbol:     symbol,
			SymbolSize: size,
		})
	}
	return data
}
