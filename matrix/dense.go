package matrix

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dense returns a gonum copy of m.
func (m *Matrix) Dense() *mat.Dense {
	return mat.NewDense(m.rows, m.cols, m.Data())
}

// FromDense copies any gonum matrix into a new *Matrix.
func FromDense(d mat.Matrix) (*Matrix, error) {
	r, c := d.Dims()
	res, err := New(r, c)
	if err != nil {
		return nil, errors.Wrap(err, "from gonum matrix")
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			res.set(i+1, j+1, d.At(i, j))
		}
	}
	return res, nil
}

// String formats m the way gonum prints its matrices.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.Dense(), mat.Squeeze()))
}
