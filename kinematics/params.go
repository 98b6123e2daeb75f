// Package kinematics implements the joint-space/task-space maps for a
// dual-arm teleoperated manipulator built around a remote center of motion
// (RCM): forward and inverse kinematics for the intracorporeal instrument
// mechanism and the passive positioning arm, collision primitive generation,
// cross-arm clearances, and unscented-transform uncertainty propagation.
//
// All lengths are millimeters, all angles radians.
package kinematics

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rcmlab/teleopkin/utils"
)

// Joint counts for the two mechanisms.
const (
	ActiveDOF  = 4 // RCM yaw, RCM pitch, insertion, instrument roll
	PassiveDOF = 6 // column lift, three planar revolutes, drop pitch, drop roll
)

// Limit is the allowed range of motion for a single joint.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Params is the immutable mechanism geometry. It is set once at engine
// construction and shared by every computation.
type Params struct {
	// Instrument dimensions.
	WristLen   float64 `json:"wrist_len_mm"`
	GripperLen float64 `json:"gripper_len_mm"`

	// Active (intracorporeal) mechanism link dimensions.
	BaseOffset   float64 `json:"base_offset_mm"`   // parallelogram hub setback from the port, along the instrument axis
	LinkProximal float64 `json:"link_proximal_mm"` // proximal parallelogram link
	LinkDistal   float64 `json:"link_distal_mm"`   // distal parallelogram link
	HolderOffset float64 `json:"holder_offset_mm"` // instrument holder setback from the port
	ShaftLen     float64 `json:"shaft_len_mm"`     // instrument shaft, carriage to wrist base

	// Collision primitive radii.
	ShaftRadius float64 `json:"shaft_radius_mm"`
	LinkRadius  float64 `json:"link_radius_mm"`
	HubRadius   float64 `json:"hub_radius_mm"`

	// Passive positioning arm link dimensions.
	PassiveBaseHeight float64 `json:"passive_base_height_mm"`
	PassiveLink1      float64 `json:"passive_link1_mm"`
	PassiveLink2      float64 `json:"passive_link2_mm"`
	PassiveDrop       float64 `json:"passive_drop_mm"`

	// Joint limits, indexed in joint order.
	ActiveLimits  []Limit `json:"active_limits"`
	PassiveLimits []Limit `json:"passive_limits"`
}

// DefaultParams returns the canonical parameter record for the reference
// mechanism.
func DefaultParams() Params {
	return Params{
		WristLen:   12,
		GripperLen: 9,

		BaseOffset:   150,
		LinkProximal: 180,
		LinkDistal:   220,
		HolderOffset: 80,
		ShaftLen:     400,

		ShaftRadius: 4.5,
		LinkRadius:  25,
		HubRadius:   60,

		PassiveBaseHeight: 300,
		PassiveLink1:      450,
		PassiveLink2:      400,
		PassiveDrop:       150,

		ActiveLimits: []Limit{
			{-math.Pi, math.Pi},  // RCM yaw
			{0.1, math.Pi - 0.1}, // RCM pitch
			{20, 350},            // insertion depth
			{-math.Pi, math.Pi},  // instrument roll
		},
		PassiveLimits: []Limit{
			{0, 400},                                    // column lift
			{-utils.DegToRad(150), utils.DegToRad(150)}, // shoulder
			{-utils.DegToRad(150), utils.DegToRad(150)}, // elbow
			{-utils.DegToRad(150), utils.DegToRad(150)}, // wrist yaw
			{-utils.DegToRad(70), utils.DegToRad(70)},   // drop pitch
			{-math.Pi, math.Pi},                         // drop roll
		},
	}
}

// ParseParamsJSON converts a JSON document into validated mechanism
// parameters.
func ParseParamsJSON(jsonData []byte) (Params, error) {
	p := DefaultParams()
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return Params{}, errors.Wrap(err, "failed to parse mechanism parameters")
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParams reads mechanism parameters from a JSON file.
func LoadParams(path string) (Params, error) {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrapf(err, "failed to read mechanism parameters from %s", path)
	}
	return ParseParamsJSON(jsonData)
}

// Validate checks the positivity and ordering invariants of the parameter
// record, aggregating every violation found.
func (p Params) Validate() error {
	var err error
	positive := []struct {
		name  string
		value float64
	}{
		{"wrist_len_mm", p.WristLen},
		{"gripper_len_mm", p.GripperLen},
		{"base_offset_mm", p.BaseOffset},
		{"link_proximal_mm", p.LinkProximal},
		{"link_distal_mm", p.LinkDistal},
		{"holder_offset_mm", p.HolderOffset},
		{"shaft_len_mm", p.ShaftLen},
		{"shaft_radius_mm", p.ShaftRadius},
		{"link_radius_mm", p.LinkRadius},
		{"hub_radius_mm", p.HubRadius},
		{"passive_base_height_mm", p.PassiveBaseHeight},
		{"passive_link1_mm", p.PassiveLink1},
		{"passive_link2_mm", p.PassiveLink2},
		{"passive_drop_mm", p.PassiveDrop},
	}
	for _, check := range positive {
		if check.value <= 0 {
			err = multierr.Append(err, errors.Errorf("%s must be positive, got %f", check.name, check.value))
		}
	}
	if len(p.ActiveLimits) != ActiveDOF {
		err = multierr.Append(err, errors.Errorf("active_limits must have %d entries, got %d", ActiveDOF, len(p.ActiveLimits)))
	}
	if len(p.PassiveLimits) != PassiveDOF {
		err = multierr.Append(err, errors.Errorf("passive_limits must have %d entries, got %d", PassiveDOF, len(p.PassiveLimits)))
	}
	for i, l := range p.ActiveLimits {
		if l.Min >= l.Max {
			err = multierr.Append(err, errors.Errorf("active joint %d limits are inverted: [%f, %f]", i, l.Min, l.Max))
		}
	}
	for i, l := range p.PassiveLimits {
		if l.Min >= l.Max {
			err = multierr.Append(err, errors.Errorf("passive joint %d limits are inverted: [%f, %f]", i, l.Min, l.Max))
		}
	}
	return err
}
