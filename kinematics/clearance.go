package kinematics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/rcmlab/teleopkin/spatialmath"
)

// NumActiveClearances returns the fixed number of cross-arm primitive pairs
// reported by FullClearances, so callers can pre-size the output buffer.
func (m *Mech) NumActiveClearances() int {
	return numIntraPrimitives * numIntraPrimitives
}

// FullClearances computes the pairwise clearances between the two arms'
// active mechanisms when both reach for the goal wrist pose. The passive
// configurations place each arm's port frame, active IK is solved for each
// arm against the goal, and the distance between every cross-arm primitive
// pair is written to out in row-major order (arm A primitive index major).
// The returned summary is the minimum of the list.
//
// Distances are clamped below at zero: a zero clearance means the swept
// volumes touch or interpenetrate. If active IK fails for either arm the
// clearance is undefined and an error is returned instead of a misleading
// distance.
func (m *Mech) FullClearances(
	baseA, baseB *spatialmath.Transform,
	passiveA, passiveB []float64,
	goal *spatialmath.Transform,
	out []float64,
) (float64, error) {
	if len(out) != m.NumActiveClearances() {
		return 0, newClearanceBufferError(m.NumActiveClearances(), len(out))
	}

	portA, err := m.PassiveFK(baseA, passiveA)
	if err != nil {
		return 0, err
	}
	portB, err := m.PassiveFK(baseB, passiveB)
	if err != nil {
		return 0, err
	}

	activeA, err := m.IntraIK(portA, goal)
	if err != nil {
		return 0, errors.Wrap(err, "arm A cannot reach the goal")
	}
	activeB, err := m.IntraIK(portB, goal)
	if err != nil {
		return 0, errors.Wrap(err, "arm B cannot reach the goal")
	}

	primsA, err := m.IntraPrimitives(portA, activeA)
	if err != nil {
		return 0, err
	}
	primsB, err := m.IntraPrimitives(portB, activeB)
	if err != nil {
		return 0, err
	}

	minDist := math.Inf(1)
	idx := 0
	for _, ga := range primsA {
		for _, gb := range primsB {
			dist, err := ga.DistanceFrom(gb)
			if err != nil {
				return 0, err
			}
			dist = math.Max(dist, 0)
			out[idx] = dist
			idx++
			if dist < minDist {
				minDist = dist
			}
		}
	}
	return minDist, nil
}
