package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/rcmlab/teleopkin/spatialmath"
	"github.com/rcmlab/teleopkin/utils"
)

// The pose distribution is parameterized by 3 position and 3 orientation
// axes. Sigma points follow the canonical scaled unscented transform with
// alpha=1, beta=2, kappa=0, so lambda=0: offsets are sqrt(n*variance) along
// each axis, the mean weight is 0 for the mean and 2 for the covariance, and
// every offset point weighs 1/(2n).
const (
	sigmaStateDim  = 6
	numSigmaPoints = 2*sigmaStateDim + 1

	sigmaWeightMean0 = 0.0
	sigmaWeightCov0  = 2.0
	sigmaWeightI     = 1.0 / (2 * sigmaStateDim)
)

// sigmaPoses deterministically generates the sigma point poses around a mean
// pose with per-axis position and orientation variances. Index 0 is the
// mean; index 1+j and 1+n+j are the positive and negative offsets of axis j.
func sigmaPoses(mean *spatialmath.Transform, posVar, oriVar r3.Vector) ([]*spatialmath.Transform, error) {
	variances := []float64{posVar.X, posVar.Y, posVar.Z, oriVar.X, oriVar.Y, oriVar.Z}
	axisNames := []string{"position x", "position y", "position z", "orientation x", "orientation y", "orientation z"}
	for i, v := range variances {
		if v < 0 {
			return nil, newInvalidVarianceError(axisNames[i], v)
		}
	}

	poses := make([]*spatialmath.Transform, 0, numSigmaPoints)
	poses = append(poses, mean.Clone())
	for _, sign := range []float64{1, -1} {
		for j, variance := range variances {
			offset := sign * sqrtScaled(variance)
			poses = append(poses, perturbPose(mean, j, offset))
		}
	}
	return poses, nil
}

func sqrtScaled(variance float64) float64 {
	// sqrt((n + lambda) * variance) with lambda = 0
	return math.Sqrt(sigmaStateDim * variance)
}

// perturbPose offsets the mean pose along one distribution axis: axes 0-2
// translate in world coordinates, axes 3-5 premultiply the rotation block by
// a world-axis rotation while keeping the translation fixed.
func perturbPose(mean *spatialmath.Transform, axis int, delta float64) *spatialmath.Transform {
	if axis < 3 {
		pt := mean.Point()
		switch axis {
		case 0:
			pt.X += delta
		case 1:
			pt.Y += delta
		case 2:
			pt.Z += delta
		}
		rotated := mean.Clone()
		rotated.Mat.Set(0, 3, pt.X)
		rotated.Mat.Set(1, 3, pt.Y)
		rotated.Mat.Set(2, 3, pt.Z)
		return rotated
	}

	var spin *spatialmath.Transform
	switch axis {
	case 3:
		spin = spatialmath.RotX(delta)
	case 4:
		spin = spatialmath.RotY(delta)
	default:
		spin = spatialmath.RotZ(delta)
	}
	perturbed := spatialmath.Compose(spin, spatialmath.NewTransformFromMatrix(mean.Rotation().Mat4()))
	pt := mean.Point()
	perturbed.Mat.Set(0, 3, pt.X)
	perturbed.Mat.Set(1, 3, pt.Y)
	perturbed.Mat.Set(2, 3, pt.Z)
	return perturbed
}

// UnscentedIK propagates a goal-pose distribution through the closed-form
// active IK: each sigma point is solved independently and the weighted
// sample mean and covariance of the resulting configurations are returned.
// If IK fails for any sigma point the whole estimate fails; dropping points
// would bias the statistics.
func (m *Mech) UnscentedIK(
	port, goal *spatialmath.Transform,
	posVar, oriVar r3.Vector,
) ([]float64, *mat.SymDense, error) {
	poses, err := sigmaPoses(goal, posVar, oriVar)
	if err != nil {
		return nil, nil, err
	}

	configs := make([][]float64, len(poses))
	for i, pose := range poses {
		q, err := m.IntraIK(port, pose)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "IK failed for sigma point %d", i)
		}
		configs[i] = q
	}

	mean := make([]float64, ActiveDOF)
	for i, q := range configs {
		w := sigmaWeightI
		if i == 0 {
			w = sigmaWeightMean0
		}
		for j, v := range q {
			mean[j] += w * v
		}
	}

	cov := mat.NewSymDense(ActiveDOF, nil)
	diff := make([]float64, ActiveDOF)
	for i, q := range configs {
		w := sigmaWeightI
		if i == 0 {
			w = sigmaWeightCov0
		}
		for j := range diff {
			diff[j] = q[j] - mean[j]
		}
		for r := 0; r < ActiveDOF; r++ {
			for c := r; c < ActiveDOF; c++ {
				cov.SetSym(r, c, cov.At(r, c)+w*diff[r]*diff[c])
			}
		}
	}
	return mean, cov, nil
}

// UnscentedClearance propagates the goal-pose distribution through the full
// clearance computation, returning the weighted mean and variance of the
// minimum cross-arm clearance. Any sigma point failure fails the estimate.
func (m *Mech) UnscentedClearance(
	baseA, baseB *spatialmath.Transform,
	passiveA, passiveB []float64,
	goal *spatialmath.Transform,
	posVar, oriVar r3.Vector,
) (float64, float64, error) {
	poses, err := sigmaPoses(goal, posVar, oriVar)
	if err != nil {
		return 0, 0, err
	}

	clearances := make([]float64, len(poses))
	scratch := make([]float64, m.NumActiveClearances())
	for i, pose := range poses {
		minDist, err := m.FullClearances(baseA, baseB, passiveA, passiveB, pose, scratch)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "clearance failed for sigma point %d", i)
		}
		clearances[i] = minDist
	}

	var mean float64
	for i, c := range clearances {
		w := sigmaWeightI
		if i == 0 {
			w = sigmaWeightMean0
		}
		mean += w * c
	}
	var variance float64
	for i, c := range clearances {
		w := sigmaWeightI
		if i == 0 {
			w = sigmaWeightCov0
		}
		variance += w * utils.Square(c-mean)
	}
	return mean, variance, nil
}
