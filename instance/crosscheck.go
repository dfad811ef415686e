package instance

import (
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/twophase/model"
	"q.log/twophase/simplex"
)

// CrossCheck solves the standard form of p with GLPK's simplex, independently
// of the package simplex solver, and returns GLPK's status and objective.
func CrossCheck(p *model.Problem) (simplex.Status, float64, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()

	n, m := p.NumVariables(), p.NumConstraints()
	cost, tech, rhs := p.Cost().Data(), p.Tech().Data(), p.RHS().Data()

	lp.SetObjDir(glpk.MIN)
	lp.AddRows(m)
	lp.AddCols(n)
	for j := 1; j <= n; j++ {
		lp.SetColBnds(j, glpk.LO, 0, 0)
		lp.SetObjCoef(j, cost[j-1])
	}
	for i := 1; i <= m; i++ {
		lp.SetRowBnds(i, glpk.FX, rhs[i-1], rhs[i-1])

		ind := []int32{0}
		val := []float64{0}
		for j := 1; j <= n; j++ {
			if a := tech[(i-1)*n+j-1]; a != 0 {
				ind = append(ind, int32(j))
				val = append(val, a)
			}
		}
		lp.SetMatRow(i, ind, val)
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MSG_OFF)
	if err := lp.Simplex(smcp); err != nil {
		return simplex.Infeasible, 0, errors.Wrap(err, "glpk simplex")
	}

	switch lp.Status() {
	case glpk.OPT:
		log.Debugf("glpk optimum %v", lp.ObjVal())
		return simplex.Optimal, lp.ObjVal(), nil
	case glpk.UNBND:
		return simplex.Unbounded, 0, nil
	case glpk.NOFEAS:
		return simplex.Infeasible, 0, nil
	}
	return simplex.Infeasible, 0, errors.Errorf("glpk ended with status %v", lp.Status())
}
