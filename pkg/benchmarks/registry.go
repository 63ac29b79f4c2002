package benchmarks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/moeakit/moea/pkg/framework"
)

// Names lists the problems New knows, in lower case.
func Names() []string {
	return []string{"dtlz1", "dtlz2", "srinivas", "zdt1", "zdt2", "zdt3"}
}

// Scalable reports whether the named problem accepts more than two objectives.
func Scalable(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "dtlz")
}

// DefaultVariables returns the customary number of decision variables for the
// named problem with the given number of objectives.
func DefaultVariables(name string, objectives int) int {
	switch strings.ToLower(name) {
	case "dtlz1":
		return objectives + 4
	case "dtlz2":
		return objectives + 9
	case "srinivas":
		return 2
	}
	return 30
}

// New builds the named problem. Names are case insensitive.
func New(name string, variables, objectives int) (framework.Problem, error) {
	key := strings.ToLower(name)
	if !slices.Contains(Names(), key) {
		return nil, fmt.Errorf("unknown problem %q, want one of %v", name, Names())
	}
	if !Scalable(key) && objectives != 2 {
		return nil, fmt.Errorf("problem %s has 2 objectives, got %d: %w", name, objectives, framework.ErrObjectiveCount)
	}

	switch key {
	case "zdt1":
		return NewZDT1(variables), nil
	case "zdt2":
		return NewZDT2(variables), nil
	case "zdt3":
		return NewZDT3(variables), nil
	case "dtlz1":
		return NewDTLZ1(variables, objectives), nil
	case "dtlz2":
		return NewDTLZ2(variables, objectives), nil
	}
	return NewSrinivas(), nil
}
