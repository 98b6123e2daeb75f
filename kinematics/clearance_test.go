package kinematics

import (
	"sort"
	"testing"

	"go.viam.com/test"

	"github.com/rcmlab/teleopkin/spatialmath"
)

// clearanceScenario builds a two-arm setup where a shared goal is reachable
// from both ports: arm B's base is arm A's base backed off along the goal's
// insertion axis, which keeps both ports on the line through the goal.
func clearanceScenario(t *testing.T, m *Mech) (baseA, baseB *spatialmath.Transform, qPassive []float64, goal *spatialmath.Transform) {
	t.Helper()
	baseA = spatialmath.NewTransform()
	qPassive = []float64{150, 0.4, -0.8, 0.5, 0.1, 0}

	portA, err := m.PassiveFK(baseA, qPassive)
	test.That(t, err, test.ShouldBeNil)
	goal, err = m.IntraFK(portA, []float64{0.2, 1.0, 150, 0.4})
	test.That(t, err, test.ShouldBeNil)

	dir := goal.Point().Sub(portA.Point()).Normalize()
	baseB = spatialmath.Compose(spatialmath.NewTransformFromPoint(dir.Mul(-80)), baseA)
	return baseA, baseB, qPassive, goal
}

func TestFullClearances(t *testing.T) {
	m := testMech(t)
	baseA, baseB, qPassive, goal := clearanceScenario(t, m)

	out := make([]float64, m.NumActiveClearances())
	minDist, err := m.FullClearances(baseA, baseB, qPassive, qPassive, goal, out)
	test.That(t, err, test.ShouldBeNil)

	// every pair distance is non-negative and the summary is their minimum
	lowest := out[0]
	for _, d := range out {
		test.That(t, d, test.ShouldBeGreaterThanOrEqualTo, 0)
		if d < lowest {
			lowest = d
		}
	}
	test.That(t, minDist, test.ShouldAlmostEqual, lowest, 1e-12)

	// both tools meet at the shared goal, so the overlapping wrist segments
	// clamp to a zero clearance rather than a negative penetration depth
	test.That(t, minDist, test.ShouldEqual, 0)
}

func TestFullClearancesSwapSymmetry(t *testing.T) {
	m := testMech(t)
	baseA, baseB, qPassive, goal := clearanceScenario(t, m)

	outAB := make([]float64, m.NumActiveClearances())
	minAB, err := m.FullClearances(baseA, baseB, qPassive, qPassive, goal, outAB)
	test.That(t, err, test.ShouldBeNil)

	outBA := make([]float64, m.NumActiveClearances())
	minBA, err := m.FullClearances(baseB, baseA, qPassive, qPassive, goal, outBA)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, minAB, test.ShouldAlmostEqual, minBA, 1e-9)

	// the pair list transposes but its multiset of distances is unchanged
	sort.Float64s(outAB)
	sort.Float64s(outBA)
	for i := range outAB {
		test.That(t, outAB[i], test.ShouldAlmostEqual, outBA[i], 1e-9)
	}
}

func TestFullClearancesFailurePropagation(t *testing.T) {
	m := testMech(t)
	baseA, baseB, qPassive, goal := clearanceScenario(t, m)

	// tilt the goal orientation out of the reachable subspace; the direct IK
	// failure must surface from the clearance computation as well
	tilted := spatialmath.Compose(goal, spatialmath.RotX(0.4))
	portA, err := m.PassiveFK(baseA, qPassive)
	test.That(t, err, test.ShouldBeNil)
	_, err = m.IntraIK(portA, tilted)
	test.That(t, err, test.ShouldNotBeNil)

	out := make([]float64, m.NumActiveClearances())
	_, err = m.FullClearances(baseA, baseB, qPassive, qPassive, tilted, out)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot reach")
}

func TestFullClearancesBufferSize(t *testing.T) {
	m := testMech(t)
	baseA, baseB, qPassive, goal := clearanceScenario(t, m)

	test.That(t, m.NumActiveClearances(), test.ShouldEqual, 25)

	_, err := m.FullClearances(baseA, baseB, qPassive, qPassive, goal, make([]float64, 3))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "buffer")
}
