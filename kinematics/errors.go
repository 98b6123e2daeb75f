package kinematics

import "github.com/pkg/errors"

func newConfigArityError(expected, got int) error {
	return errors.Errorf("configuration has wrong number of joints: expected %d, got %d", expected, got)
}

func newJointIndexError(idx, dof int) error {
	return errors.Errorf("joint index %d out of range [0,%d)", idx, dof)
}

func newUnreachablePoseError(reason string) error {
	return errors.Errorf("pose not reachable by intracorporeal mechanism: %s", reason)
}

func newNotConvergedError(iterations int, residual float64) error {
	return errors.Errorf("passive IK did not converge after %d iterations, residual %g", iterations, residual)
}

func newClearanceBufferError(expected, got int) error {
	return errors.Errorf("clearance buffer has wrong length: expected %d, got %d", expected, got)
}

func newInvalidVarianceError(axis string, value float64) error {
	return errors.Errorf("variance for %s must be non-negative, got %g", axis, value)
}
