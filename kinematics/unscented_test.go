package kinematics

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/rcmlab/teleopkin/spatialmath"
)

func TestUnscentedIKZeroVariance(t *testing.T) {
	m := testMech(t)
	port := spatialmath.Compose(spatialmath.TransX(40), spatialmath.RotY(0.2))
	q := []float64{0.3, 1.2, 180, -0.5}
	goal, err := m.IntraFK(port, q)
	test.That(t, err, test.ShouldBeNil)

	direct, err := m.IntraIK(port, goal)
	test.That(t, err, test.ShouldBeNil)

	mean, cov, err := m.UnscentedIK(port, goal, r3.Vector{}, r3.Vector{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mean, test.ShouldHaveLength, ActiveDOF)
	for j := range mean {
		test.That(t, mean[j], test.ShouldAlmostEqual, direct[j], 1e-9)
	}
	for r := 0; r < ActiveDOF; r++ {
		for c := 0; c < ActiveDOF; c++ {
			test.That(t, cov.At(r, c), test.ShouldAlmostEqual, 0, 1e-12)
		}
	}
}

func TestUnscentedIKSmallVariance(t *testing.T) {
	m := testMech(t)
	port := spatialmath.NewTransform()
	q := []float64{0.3, 1.2, 180, -0.5}
	goal, err := m.IntraFK(port, q)
	test.That(t, err, test.ShouldBeNil)

	posVar := r3.Vector{X: 1, Y: 1, Z: 1}
	oriVar := r3.Vector{X: 1e-4, Y: 1e-4, Z: 1e-4}
	mean, cov, err := m.UnscentedIK(port, goal, posVar, oriVar)
	test.That(t, err, test.ShouldBeNil)

	direct, err := m.IntraIK(port, goal)
	test.That(t, err, test.ShouldBeNil)
	for j := range mean {
		test.That(t, mean[j], test.ShouldAlmostEqual, direct[j], 0.2)
	}
	// diagonal variance entries are non-negative and something is uncertain
	var trace float64
	for j := 0; j < ActiveDOF; j++ {
		test.That(t, cov.At(j, j), test.ShouldBeGreaterThanOrEqualTo, 0)
		trace += cov.At(j, j)
	}
	test.That(t, trace, test.ShouldBeGreaterThan, 0)
}

func TestUnscentedIKFailurePropagation(t *testing.T) {
	m := testMech(t)
	port := spatialmath.NewTransform()
	goal, err := m.IntraFK(port, []float64{0.3, 1.2, 180, -0.5})
	test.That(t, err, test.ShouldBeNil)

	// orientation sigma points this wide tilt outside the reachable
	// subspace, so the whole estimate must fail
	_, _, err = m.UnscentedIK(port, goal, r3.Vector{}, r3.Vector{X: 0.1, Y: 0.1, Z: 0.1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "sigma point")
}

func TestUnscentedIKRejectsNegativeVariance(t *testing.T) {
	m := testMech(t)
	port := spatialmath.NewTransform()
	goal, err := m.IntraFK(port, []float64{0.3, 1.2, 180, -0.5})
	test.That(t, err, test.ShouldBeNil)

	_, _, err = m.UnscentedIK(port, goal, r3.Vector{X: -1}, r3.Vector{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUnscentedClearanceZeroVariance(t *testing.T) {
	m := testMech(t)
	baseA, baseB, qPassive, goal := clearanceScenario(t, m)

	out := make([]float64, m.NumActiveClearances())
	direct, err := m.FullClearances(baseA, baseB, qPassive, qPassive, goal, out)
	test.That(t, err, test.ShouldBeNil)

	mean, variance, err := m.UnscentedClearance(baseA, baseB, qPassive, qPassive, goal, r3.Vector{}, r3.Vector{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mean, test.ShouldAlmostEqual, direct, 1e-9)
	test.That(t, variance, test.ShouldAlmostEqual, 0, 1e-12)
}

func TestUnscentedClearanceFailurePropagation(t *testing.T) {
	m := testMech(t)
	baseA, baseB, qPassive, goal := clearanceScenario(t, m)

	tilted := spatialmath.Compose(goal, spatialmath.RotX(0.4))
	_, _, err := m.UnscentedClearance(baseA, baseB, qPassive, qPassive, tilted, r3.Vector{}, r3.Vector{})
	test.That(t, err, test.ShouldNotBeNil)
}
