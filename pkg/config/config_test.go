package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/ptr"
)

func TestSetDefaults_RunArgs(t *testing.T) {
	tests := []struct {
		name string
		in   *RunArgs
		want *RunArgs
	}{
		{
			name: "Empty",
			in:   &RunArgs{},
			want: &RunArgs{
				Algorithm:            "nsga2",
				Problem:              "zdt1",
				Variables:            30,
				Objectives:           2,
				PopulationSize:       100,
				Generations:          250,
				MaxEvaluations:       25000,
				CrossoverProbability: ptr.To(0.9),
				MutationProbability:  ptr.To(1.0 / 30),
				TournamentSize:       2,
				Parallel:             ptr.To(false),
				ArchiveSize:          ptr.To(0),
				Bisections:           5,
			},
		},
		{
			name: "PAESOnDTLZ2",
			in: &RunArgs{
				Algorithm:           "paes",
				Problem:             "dtlz2",
				Objectives:          3,
				MutationProbability: ptr.To(0.0),
			},
			want: &RunArgs{
				Algorithm:            "paes",
				Problem:              "dtlz2",
				Variables:            12,
				Objectives:           3,
				PopulationSize:       100,
				Generations:          250,
				MaxEvaluations:       25000,
				CrossoverProbability: ptr.To(0.9),
				MutationProbability:  ptr.To(0.0),
				TournamentSize:       2,
				Parallel:             ptr.To(false),
				ArchiveSize:          ptr.To(100),
				Bisections:           5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetDefaults_RunArgs(tt.in)
			if diff := cmp.Diff(tt.want, tt.in); diff != "" {
				t.Errorf("defaults mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateRunArgs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunArgs)
		wantErr []string
	}{
		{
			name:   "Defaults",
			mutate: func(*RunArgs) {},
		},
		{
			name: "PAESOnThreeObjectives",
			mutate: func(a *RunArgs) {
				a.Algorithm = "paes"
				a.Problem = "DTLZ1"
				a.Objectives = 3
				a.Variables = 7
				a.ArchiveSize = ptr.To(50)
			},
		},
		{
			name:    "UnknownAlgorithmAndProblem",
			mutate:  func(a *RunArgs) { a.Algorithm = "moead"; a.Problem = "kursawe" },
			wantErr: []string{"algorithm", "problem"},
		},
		{
			name:    "ZDTWithThreeObjectives",
			mutate:  func(a *RunArgs) { a.Objectives = 3 },
			wantErr: []string{"objectives"},
		},
		{
			name:    "SrinivasVariables",
			mutate:  func(a *RunArgs) { a.Problem = "srinivas"; a.Variables = 3 },
			wantErr: []string{"variables"},
		},
		{
			name: "Probabilities",
			mutate: func(a *RunArgs) {
				a.CrossoverProbability = ptr.To(1.5)
				a.MutationProbability = nil
			},
			wantErr: []string{"crossoverProbability", "mutationProbability"},
		},
		{
			name: "NSGAIISizes",
			mutate: func(a *RunArgs) {
				a.PopulationSize = 1
				a.TournamentSize = 1
				a.ArchiveSize = ptr.To(-1)
			},
			wantErr: []string{"populationSize", "tournamentSize", "archiveSize"},
		},
		{
			name: "PAESGridTooLarge",
			mutate: func(a *RunArgs) {
				a.Algorithm = "paes"
				a.ArchiveSize = ptr.To(100)
				a.Bisections = 32
			},
			wantErr: []string{"bisections"},
		},
		{
			name: "PAESWithoutArchive",
			mutate: func(a *RunArgs) {
				a.Algorithm = "paes"
				a.ArchiveSize = ptr.To(0)
				a.MaxEvaluations = -1
			},
			wantErr: []string{"archiveSize", "maxEvaluations"},
		},
		{
			name: "PlotThreeObjectives",
			mutate: func(a *RunArgs) {
				a.Problem = "dtlz2"
				a.Objectives = 3
				a.Variables = 12
				a.PlotFile = "front.html"
			},
			wantErr: []string{"plotFile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := &RunArgs{}
			SetDefaults_RunArgs(args)
			tt.mutate(args)

			err := ValidateRunArgs(args)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected errors on %v", tt.wantErr)
			}
			for _, f := range tt.wantErr {
				if !strings.Contains(err.Error(), f) {
					t.Errorf("error %q does not mention %s", err, f)
				}
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(good, []byte(`
algorithm: paes
problem: dtlz2
objectives: 3
maxEvaluations: 5000
archiveSize: 0
mutationProbability: 0.1
`), 0644); err != nil {
		t.Fatal(err)
	}
	args, err := LoadFile(good)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := &RunArgs{
		Algorithm:           "paes",
		Problem:             "dtlz2",
		Objectives:          3,
		MaxEvaluations:      5000,
		ArchiveSize:         ptr.To(0),
		MutationProbability: ptr.To(0.1),
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("loaded args mismatch (-want +got):\n%s", diff)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("populationSize: 10\nelitism: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(unknown); err == nil {
		t.Error("expected an error for an unknown field")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
