package kinematics

import (
	"github.com/edaniels/golog"
)

// Mech is the kinematics engine for one dual-arm manipulator type. It owns
// nothing but the immutable parameter record, so every method is reentrant
// and safe for concurrent use.
type Mech struct {
	params Params
	logger golog.Logger
}

// New returns a kinematics engine for the given mechanism parameters.
func New(params Params, logger golog.Logger) (*Mech, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Mech{params: params, logger: logger}, nil
}

// Params returns the mechanism parameter record.
func (m *Mech) Params() Params {
	return m.params
}

// ActiveJointMin returns the lower limit of the indexed active joint.
func (m *Mech) ActiveJointMin(idx int) (float64, error) {
	if idx < 0 || idx >= ActiveDOF {
		return 0, newJointIndexError(idx, ActiveDOF)
	}
	return m.params.ActiveLimits[idx].Min, nil
}

// ActiveJointMax returns the upper limit of the indexed active joint.
func (m *Mech) ActiveJointMax(idx int) (float64, error) {
	if idx < 0 || idx >= ActiveDOF {
		return 0, newJointIndexError(idx, ActiveDOF)
	}
	return m.params.ActiveLimits[idx].Max, nil
}

// PassiveJointMin returns the lower limit of the indexed passive joint.
func (m *Mech) PassiveJointMin(idx int) (float64, error) {
	if idx < 0 || idx >= PassiveDOF {
		return 0, newJointIndexError(idx, PassiveDOF)
	}
	return m.params.PassiveLimits[idx].Min, nil
}

// PassiveJointMax returns the upper limit of the indexed passive joint.
func (m *Mech) PassiveJointMax(idx int) (float64, error) {
	if idx < 0 || idx >= PassiveDOF {
		return 0, newJointIndexError(idx, PassiveDOF)
	}
	return m.params.PassiveLimits[idx].Max, nil
}

// DefaultActiveConfig returns a nominal in-bounds configuration for the
// intracorporeal mechanism: instrument pointing straight through the port at
// mid insertion.
func (m *Mech) DefaultActiveConfig() []float64 {
	ins := (m.params.ActiveLimits[2].Min + m.params.ActiveLimits[2].Max) / 2
	pitch := (m.params.ActiveLimits[1].Min + m.params.ActiveLimits[1].Max) / 2
	return []float64{0, pitch, ins, 0}
}

// DefaultPassiveConfig returns a nominal in-bounds configuration for the
// passive positioning arm.
func (m *Mech) DefaultPassiveConfig() []float64 {
	lift := (m.params.PassiveLimits[0].Min + m.params.PassiveLimits[0].Max) / 2
	return []float64{lift, 0.3, -0.6, 0.3, 0, 0}
}

// ActiveConfigValid reports whether every active joint coordinate is within
// its limits.
func (m *Mech) ActiveConfigValid(q []float64) bool {
	if len(q) != ActiveDOF {
		return false
	}
	for i, v := range q {
		if v < m.params.ActiveLimits[i].Min || v > m.params.ActiveLimits[i].Max {
			return false
		}
	}
	return true
}

// PassiveConfigValid reports whether every passive joint coordinate is
// within its limits.
func (m *Mech) PassiveConfigValid(q []float64) bool {
	if len(q) != PassiveDOF {
		return false
	}
	for i, v := range q {
		if v < m.params.PassiveLimits[i].Min || v > m.params.PassiveLimits[i].Max {
			return false
		}
	}
	return true
}
