package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/rcmlab/teleopkin/spatialmath"
)

const (
	// passiveIKEpsilon is the convergence tolerance on RCM position error.
	passiveIKEpsilon = 1e-4
	// passiveIKMaxIterations bounds the Newton iteration; it is the only
	// guard against non-termination.
	passiveIKMaxIterations = 200
	// Per-joint caps on a single configuration update, keeping the
	// finite-difference Jacobian locally valid. The prismatic lift is in
	// millimeters, every other joint in radians.
	passiveIKMaxStepMM  = 120
	passiveIKMaxStepRad = 0.5
)

// PassiveIK iteratively solves for a passive configuration placing the RCM
// at the target world position. Each iteration evaluates the position error,
// estimates the Jacobian with the given finite-difference step, applies the
// pseudo-inverse update with a bounded step, and repeats until the error is
// within tolerance or the iteration budget is exhausted.
//
// On non-convergence the last iterate is returned together with a non-nil
// error; the iterate must be treated as unreliable. Iterates are not
// projected onto joint limits; use PassiveConfigValid on the result.
func (m *Mech) PassiveIK(base *spatialmath.Transform, target r3.Vector, step float64) ([]float64, error) {
	q := m.DefaultPassiveConfig()
	return m.PassiveIKFrom(base, target, q, step)
}

// PassiveIKFrom is PassiveIK seeded with an explicit starting configuration.
func (m *Mech) PassiveIKFrom(base *spatialmath.Transform, target r3.Vector, seed []float64, step float64) ([]float64, error) {
	if len(seed) != PassiveDOF {
		return nil, newConfigArityError(PassiveDOF, len(seed))
	}
	q := make([]float64, PassiveDOF)
	copy(q, seed)

	residual := math.Inf(1)
	for iteration := 0; iteration < passiveIKMaxIterations; iteration++ {
		current, err := m.PassiveFK(base, q)
		if err != nil {
			return nil, err
		}
		posErr := target.Sub(current.Point())
		residual = posErr.Norm()
		if residual < passiveIKEpsilon {
			return q, nil
		}

		jac, err := m.PassiveJacobian(base, q, step)
		if err != nil {
			return nil, err
		}
		dq, err := applyPseudoInverse(jac, posErr)
		if err != nil {
			return nil, err
		}

		scale := 1.0
		for j, v := range dq {
			bound := passiveIKMaxStepRad
			if j == 0 {
				bound = passiveIKMaxStepMM
			}
			if math.Abs(v) > bound {
				if s := bound / math.Abs(v); s < scale {
					scale = s
				}
			}
		}
		for j := range q {
			q[j] += dq[j] * scale
		}
	}
	if m.logger != nil {
		m.logger.Debugf("passive IK exhausted %d iterations, residual %g", passiveIKMaxIterations, residual)
	}
	return q, newNotConvergedError(passiveIKMaxIterations, residual)
}
