package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/rcmlab/teleopkin/spatialmath"
)

// PassiveJacobian returns the 3x6 matrix of partial derivatives of RCM world
// position with respect to each passive joint coordinate, estimated by
// forward finite differences with the given step size. The caller chooses
// the step to balance truncation against cancellation error.
func (m *Mech) PassiveJacobian(base *spatialmath.Transform, q []float64, step float64) (*mat.Dense, error) {
	if len(q) != PassiveDOF {
		return nil, newConfigArityError(PassiveDOF, len(q))
	}
	nominal, err := m.PassiveFK(base, q)
	if err != nil {
		return nil, err
	}
	p0 := nominal.Point()

	jac := mat.NewDense(3, PassiveDOF, nil)
	perturbed := make([]float64, PassiveDOF)
	for j := 0; j < PassiveDOF; j++ {
		copy(perturbed, q)
		perturbed[j] += step
		bumped, err := m.PassiveFK(base, perturbed)
		if err != nil {
			return nil, err
		}
		delta := bumped.Point().Sub(p0)
		jac.Set(0, j, delta.X/step)
		jac.Set(1, j, delta.Y/step)
		jac.Set(2, j, delta.Z/step)
	}
	return jac, nil
}

// applyPseudoInverse solves the least-squares system jac * dq = err for dq
// using the SVD pseudo-inverse, tolerating the rank deficiency of joints
// with no positional effect.
func applyPseudoInverse(jac *mat.Dense, posErr r3.Vector) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(jac, mat.SVDThin); !ok {
		return nil, newNotConvergedError(0, posErr.Norm())
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	vals := svd.Values(nil)

	// singular values below this fraction of the largest are treated as zero
	const rankTol = 1e-9
	maxVal := vals[0]

	e := []float64{posErr.X, posErr.Y, posErr.Z}
	_, cols := jac.Dims()
	dq := make([]float64, cols)
	for k, sigma := range vals {
		if sigma <= rankTol*maxVal {
			continue
		}
		// project the error onto the k-th left singular vector, scale by
		// 1/sigma, and accumulate along the k-th right singular vector
		var proj float64
		for i := 0; i < 3; i++ {
			proj += u.At(i, k) * e[i]
		}
		proj /= sigma
		for j := 0; j < cols; j++ {
			dq[j] += v.At(j, k) * proj
		}
	}
	return dq, nil
}
