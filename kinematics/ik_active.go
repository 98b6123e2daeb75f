package kinematics

import (
	"fmt"
	"math"

	"github.com/rcmlab/teleopkin/spatialmath"
	"github.com/rcmlab/teleopkin/utils"
)

// intraMaxTilt bounds how far the goal orientation's z axis may deviate
// from the insertion direction before the pose is declared unreachable. The
// unwristed instrument cannot tilt its tool axis away from the line through
// the port at all; goals within this cone are resolved to the nearest
// reachable roll, anything beyond it is a failure.
const intraMaxTilt = 0.1

// IntraIK solves the intracorporeal mechanism in closed form for the active
// configuration reproducing the goal wrist pose from the given port frame.
//
// The RCM constrains the reachable orientations: the instrument z axis must
// point from the port towards the wrist, with roll the only free orientation
// degree. Goals tilted outside that subspace by more than intraMaxTilt
// return an error rather than a poor approximation. A wristed 5-DOF
// instrument would widen the subspace; that variant is not implemented.
func (m *Mech) IntraIK(port, goal *spatialmath.Transform) ([]float64, error) {
	rel := spatialmath.Compose(port.Invert(), goal)
	p := rel.Translation()
	r := p.Len()
	if r < 1e-9 {
		return nil, newUnreachablePoseError("wrist coincides with the port")
	}
	insertion := r - m.params.WristLen
	if insertion <= 0 {
		return nil, newUnreachablePoseError("wrist inside the wrist-length sphere around the port")
	}

	pitch := math.Acos(utils.Clamp(p.Z()/r, -1, 1))
	yaw := 0.0
	if math.Hypot(p.X(), p.Y()) > 1e-9 {
		yaw = math.Atan2(p.Y(), p.X())
	}

	// The residual rotation after yaw and pitch must be a roll about the
	// instrument axis. Its z column measures how far the goal tool axis
	// tilts away from the insertion direction.
	alignment := spatialmath.Compose(spatialmath.RotZ(yaw), spatialmath.RotY(pitch)).Rotation()
	remainder := alignment.Transpose().Mul3(rel.Rotation())
	tilt := math.Acos(utils.Clamp(remainder.At(2, 2), -1, 1))
	if tilt > intraMaxTilt {
		return nil, newUnreachablePoseError(fmt.Sprintf(
			"orientation tilts %.1f degrees off the insertion axis", utils.RadToDeg(tilt)))
	}
	roll := math.Atan2(remainder.At(1, 0), remainder.At(0, 0))

	return []float64{yaw, pitch, insertion, roll}, nil
}
