package instance

import (
	"math"
	"runtime"

	logging "github.com/ipfs/go-log/v2"
	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/twophase/model"
)

var log = logging.Logger("instance")

var ErrUnsupported = errors.New("instance: unsupported problem")

// Reader reads a mps file to construct a problem
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

type rowSignal int

const (
	equal rowSignal = iota
	lessEqual
	greaterEqual
)

// ConstructProblem returns the file's problem in standard form: every row
// and every finite column bound becomes an equality with its own slack or
// surplus variable, and rows are scaled so that the rhs is non-negative.
func (r *Reader) ConstructProblem() (*model.Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "read %s", r.filename)
	}

	numRows, numCols := lp.NumRows(), lp.NumCols()
	log.Debugf("%s: %d rows, %d columns", r.filename, numRows, numCols)
	if numRows == 0 || numCols == 0 {
		return nil, errors.Wrapf(ErrUnsupported, "%s has %d rows and %d columns", r.filename, numRows, numCols)
	}

	//populate obj function
	var cVec []float64
	for c := 1; c <= numCols; c++ {
		cVec = append(cVec, lp.ObjCoef(c))
	}

	//populate constraints, splitting ranged rows in two
	var (
		aVec    []float64
		rowsRhs []float64
		signals []rowSignal
	)
	addRow := func(rowVec []float64, rhs float64, s rowSignal) {
		aVec = append(aVec, rowVec...)
		rowsRhs = append(rowsRhs, rhs)
		signals = append(signals, s)
	}
	for r := 1; r <= numRows; r++ {
		rowVec := make([]float64, numCols)
		idxs, row := lp.MatRow(r)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = row[i]
		}

		lb, ub := lp.RowLB(r), lp.RowUB(r)
		switch {
		case lb == -math.MaxFloat64 && ub == math.MaxFloat64:
			// free rows (usually the objective) do not constrain anything
			continue
		case lb == -math.MaxFloat64:
			addRow(rowVec, ub, lessEqual)
		case ub == math.MaxFloat64:
			addRow(rowVec, lb, greaterEqual)
		case lb == ub:
			addRow(rowVec, lb, equal)
		default:
			addRow(rowVec, lb, greaterEqual)
			addRow(rowVec, ub, lessEqual)
		}
	}

	//column bounds become rows
	type boundRow struct {
		col    int
		rhs    float64
		signal rowSignal
	}
	var bounds []boundRow
	for c := 1; c <= numCols; c++ {
		lb, ub := lp.ColLB(c), lp.ColUB(c)
		if lb < 0 {
			return nil, errors.Wrapf(ErrUnsupported, "column %d has lower bound %v, variables must be >= 0", c, lb)
		}
		if lb > 0 {
			bounds = append(bounds, boundRow{col: c, rhs: lb, signal: greaterEqual})
		}
		if ub != math.MaxFloat64 {
			bounds = append(bounds, boundRow{col: c, rhs: ub, signal: lessEqual})
		}
	}
	if len(rowsRhs) == 0 {
		if len(bounds) == 0 {
			return nil, errors.Wrapf(ErrUnsupported, "%s has no constraints", r.filename)
		}
		rowVec := make([]float64, numCols)
		rowVec[bounds[0].col-1] = 1
		addRow(rowVec, bounds[0].rhs, bounds[0].signal)
		bounds = bounds[1:]
	}

	b, err := model.NewBuilder(len(rowsRhs), numCols)
	if err != nil {
		return nil, err
	}
	if err := b.SetC(cVec); err != nil {
		return nil, err
	}
	if err := b.SetA(aVec); err != nil {
		return nil, err
	}
	if err := b.SetB(rowsRhs); err != nil {
		return nil, err
	}
	for _, bnd := range bounds {
		rowVec := make([]float64, numCols)
		rowVec[bnd.col-1] = 1
		if err := b.AddRow(rowVec, bnd.rhs); err != nil {
			return nil, err
		}
		signals = append(signals, bnd.signal)
	}

	//empty rows that always hold constrain nothing and make the basis singular
	for row := b.NumRows - 1; row >= 0 && b.NumRows > 1; row-- {
		if !trivialRow(b.A.RawRowView(row), b.B.At(row, 0), signals[row]) {
			continue
		}
		log.Debugf("%s: dropping empty row %d", r.filename, row+1)
		if err := b.RemoveRow(row); err != nil {
			return nil, err
		}
		signals = append(signals[:row], signals[row+1:]...)
	}

	//pass the model to standard form
	for r := range b.NumRows {
		var sign float64
		switch signals[r] {
		case equal:
			continue
		case lessEqual:
			sign = 1
		case greaterEqual:
			sign = -1
		}
		colVec := make([]float64, b.NumRows)
		colVec[r] = sign
		b.SlackIndexes = append(b.SlackIndexes, b.NumCols)
		if err := b.AddCol(colVec, 0); err != nil {
			return nil, err
		}
	}

	for r := range b.NumRows {
		if b.B.At(r, 0) < 0 {
			if err := b.MultiplyConstraint(r, -1); err != nil {
				return nil, err
			}
		}
	}

	log.Debugf("%s: standard form has %d rows, %d columns (%d slack)", r.filename, b.NumRows, b.NumCols, len(b.SlackIndexes))
	return b.Build()
}

// trivialRow reports whether the row has no coefficients and is satisfied by
// any x, e.g. 0 = 0 or 0 <= 3.
func trivialRow(rowVec []float64, rhs float64, s rowSignal) bool {
	for _, v := range rowVec {
		if v != 0 {
			return false
		}
	}
	switch s {
	case equal:
		return rhs == 0
	case lessEqual:
		return rhs >= 0
	default:
		return rhs <= 0
	}
}
