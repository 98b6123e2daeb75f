package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/rcmlab/teleopkin/collision"
	"github.com/rcmlab/teleopkin/spatialmath"
)

// numIntraPrimitives is the number of collision primitives generated for the
// active mechanism of one arm.
const numIntraPrimitives = 5

// IntraPrimitives returns the ordered capsule set approximating the physical
// links of the active mechanism: instrument shaft, the wrist and gripper
// segment past the wrist base, instrument holder, and the two parallelogram
// links. Primitives are recomputed from scratch on every call.
func (m *Mech) IntraPrimitives(port *spatialmath.Transform, q []float64) ([]collision.Geometry, error) {
	frames, err := m.intraChain(port, q)
	if err != nil {
		return nil, err
	}
	p := m.params

	// points along the instrument axis, by signed distance from the port
	axisPoint := func(s float64) r3.Vector {
		return frames.pitch.TransformPoint(r3.Vector{Z: s})
	}
	carriage := axisPoint(q[2] - p.ShaftLen)
	holderTop := axisPoint(-p.HolderOffset)
	hub := frames.yaw.TransformPoint(r3.Vector{Z: -p.BaseOffset})
	elbow := frames.pitch.TransformPoint(r3.Vector{X: -p.LinkDistal, Z: -p.HolderOffset})

	shaft, err := collision.NewCylisphere(carriage, axisPoint(q[2]), p.ShaftRadius, "shaft")
	if err != nil {
		return nil, err
	}
	// the roll joint keeps the wrist and gripper on the instrument axis
	wristGripper, err := collision.NewCylisphere(axisPoint(q[2]), axisPoint(q[2]+p.WristLen+p.GripperLen), p.ShaftRadius, "wristGripper")
	if err != nil {
		return nil, err
	}
	holder, err := collision.NewCylisphere(holderTop, carriage, p.LinkRadius, "holder")
	if err != nil {
		return nil, err
	}
	linkProximal, err := collision.NewCylisphere(hub, elbow, p.LinkRadius, "linkProximal")
	if err != nil {
		return nil, err
	}
	linkDistal, err := collision.NewCylisphere(elbow, holderTop, p.LinkRadius, "linkDistal")
	if err != nil {
		return nil, err
	}
	return []collision.Geometry{shaft, wristGripper, holder, linkProximal, linkDistal}, nil
}

// PassivePrimitives returns the capsules for the passive arm links plus the
// bounding sphere of the RCM hub.
func (m *Mech) PassivePrimitives(base *spatialmath.Transform, q []float64) ([]collision.Geometry, error) {
	frames, err := m.passiveChain(base, q)
	if err != nil {
		return nil, err
	}
	p := m.params

	column, err := collision.NewCylisphere(base.Point(), frames.lift.Point(), p.LinkRadius, "column")
	if err != nil {
		return nil, err
	}
	link1, err := collision.NewCylisphere(frames.lift.Point(), frames.elbow.Point(), p.LinkRadius, "link1")
	if err != nil {
		return nil, err
	}
	link2, err := collision.NewCylisphere(frames.elbow.Point(), frames.armWrist.Point(), p.LinkRadius, "link2")
	if err != nil {
		return nil, err
	}
	drop, err := collision.NewCylisphere(frames.armWrist.Point(), frames.rcm.Point(), p.LinkRadius, "drop")
	if err != nil {
		return nil, err
	}
	hub, err := collision.NewSphere(frames.rcm.Point(), p.HubRadius, "hub")
	if err != nil {
		return nil, err
	}
	return []collision.Geometry{column, link1, link2, drop, hub}, nil
}
