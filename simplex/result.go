package simplex

import (
	"fmt"
	"io"
	"sort"
)

type Status int

const (
	Optimal Status = iota
	Unbounded
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Unbounded:
		return "UNBOUNDED"
	case Infeasible:
		return "INFEASIBLE"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of Solve.
type Result struct {
	Status Status

	// Objective is c_B' x_B at the final basis. For Infeasible results it is
	// unset; the phase 1 value is in ArtificialObjective.
	Objective float64

	// Basis holds the final basis indices in slot order.
	Basis []int

	// Values maps each basic variable to its value; variables not in the map are 0.
	Values map[int]float64

	// X is the full solution vector, X[j-1] = x_j.
	X []float64

	// Entering is the variable whose column had no positive direction entry
	// when the run stopped as Unbounded.
	Entering int

	PhaseOne            bool
	ArtificialObjective float64

	// Iterations counts pivots in phase 1 and phase 2.
	Iterations [2]int
}

func (r *Result) Fprint(w io.Writer) {
	fmt.Fprintf(w, "status: %v\n", r.Status)
	switch r.Status {
	case Optimal:
		idx := make([]int, 0, len(r.Values))
		for j := range r.Values {
			idx = append(idx, j)
		}
		sort.Ints(idx)
		for _, j := range idx {
			fmt.Fprintf(w, "x%d = %v\n", j, r.Values[j])
		}
		fmt.Fprintf(w, "Z = %v\n", r.Objective)
	case Unbounded:
		fmt.Fprintf(w, "x%d can grow without bound from basis %v\n", r.Entering, r.Basis)
	case Infeasible:
		fmt.Fprintf(w, "phase 1 optimum %v with basis %v\n", r.ArtificialObjective, r.Basis)
	}
	fmt.Fprintf(w, "iterations: phase 1 = %d, phase 2 = %d\n", r.Iterations[0], r.Iterations[1])
}
