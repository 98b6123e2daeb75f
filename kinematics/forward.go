package kinematics

import (
	"github.com/rcmlab/teleopkin/spatialmath"
)

// intraFrames holds the intermediate frames of the intracorporeal chain.
// The primitive generator reuses them to place link capsules.
type intraFrames struct {
	yaw   *spatialmath.Transform // port frame composed with the RCM yaw
	pitch *spatialmath.Transform // instrument axis frame; +z is the insertion direction through the port
	wrist *spatialmath.Transform // wrist base frame
}

// intraChain composes the active mechanism transforms in order. The double
// parallelogram constrains the linkage so that its net effect at the
// instrument is a pure rotation about the port; the individual link
// placements only matter for collision primitives.
func (m *Mech) intraChain(port *spatialmath.Transform, q []float64) (intraFrames, error) {
	if len(q) != ActiveDOF {
		return intraFrames{}, newConfigArityError(ActiveDOF, len(q))
	}
	yaw := spatialmath.Compose(port, spatialmath.RotZ(q[0]))
	pitch := spatialmath.Compose(yaw, spatialmath.RotY(q[1]))
	wrist := spatialmath.Compose(
		pitch,
		spatialmath.TransZ(q[2]),
		spatialmath.RotZ(q[3]),
		spatialmath.TransZ(m.params.WristLen),
	)
	return intraFrames{yaw: yaw, pitch: pitch, wrist: wrist}, nil
}

// IntraFK returns the wrist base frame of the intracorporeal mechanism for
// the given port frame and active configuration [yaw, pitch, insertion,
// roll].
func (m *Mech) IntraFK(port *spatialmath.Transform, q []float64) (*spatialmath.Transform, error) {
	frames, err := m.intraChain(port, q)
	if err != nil {
		return nil, err
	}
	return frames.wrist, nil
}

// passiveFrames holds the intermediate frames of the passive positioning
// arm, reused by the primitive generator.
type passiveFrames struct {
	lift     *spatialmath.Transform // top of the column after the prismatic lift
	elbow    *spatialmath.Transform // end of the first planar link
	armWrist *spatialmath.Transform // end of the second planar link
	rcm      *spatialmath.Transform // RCM/port frame held by the drop link
}

// passiveChain composes the passive joint transforms in order: prismatic
// column lift, three planar revolutes, then the drop link that pitches and
// rolls the held port frame.
func (m *Mech) passiveChain(base *spatialmath.Transform, q []float64) (passiveFrames, error) {
	if len(q) != PassiveDOF {
		return passiveFrames{}, newConfigArityError(PassiveDOF, len(q))
	}
	p := m.params
	lift := spatialmath.Compose(base, spatialmath.TransZ(p.PassiveBaseHeight+q[0]))
	elbow := spatialmath.Compose(lift, spatialmath.RotZ(q[1]), spatialmath.TransX(p.PassiveLink1))
	armWrist := spatialmath.Compose(elbow, spatialmath.RotZ(q[2]), spatialmath.TransX(p.PassiveLink2))
	rcm := spatialmath.Compose(
		armWrist,
		spatialmath.RotZ(q[3]),
		spatialmath.RotY(q[4]),
		spatialmath.TransZ(-p.PassiveDrop),
		spatialmath.RotZ(q[5]),
	)
	return passiveFrames{lift: lift, elbow: elbow, armWrist: armWrist, rcm: rcm}, nil
}

// PassiveFK returns the RCM frame positioned by the passive arm for the
// given base frame and passive configuration.
func (m *Mech) PassiveFK(base *spatialmath.Transform, q []float64) (*spatialmath.Transform, error) {
	frames, err := m.passiveChain(base, q)
	if err != nil {
		return nil, err
	}
	return frames.rcm, nil
}
