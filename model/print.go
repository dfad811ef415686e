package model

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"q.log/twophase/matrix"
)

func fprintMatrix(w io.Writer, name string, m *matrix.Matrix) {
	if m == nil {
		fmt.Fprintf(w, "%s = <none>\n", name)
		return
	}
	r, c := m.Dims()
	caux := mat.Formatted(m.Dense(), mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "%s (%d x %d) = %v\n", name, r, c, caux)
}

func (p *Problem) FprintC(w io.Writer) { fprintMatrix(w, "c", p.cost) }
func (p *Problem) FprintA(w io.Writer) { fprintMatrix(w, "A", p.tech) }
func (p *Problem) FprintB(w io.Writer) { fprintMatrix(w, "b", p.rhs) }

func (p *Problem) FprintBasis(w io.Writer) {
	fmt.Fprintf(w, "basis indices = %v\n", p.basis)
	fmt.Fprintf(w, "out of basis indices = %v\n", p.outBasis)
	fprintMatrix(w, "B", p.basisMatrix)
	fprintMatrix(w, "c_B", p.costBasis)
}

func (p *Problem) FprintSolution(w io.Writer) {
	fprintMatrix(w, "x_B", p.xBasis)
	fmt.Fprintf(w, "Z = %v\n", p.objective)
}

// Fprint writes the problem data and, if established, its basis state.
func (p *Problem) Fprint(w io.Writer) {
	fmt.Fprintf(w, "variables: %d (x1..x%d), constraints: %d\n", p.n, p.n, p.m)
	p.FprintC(w)
	p.FprintA(w)
	p.FprintB(w)
	if p.HasBasis() {
		p.FprintBasis(w)
		p.FprintSolution(w)
	}
}
