// Package spatialmath defines the rigid transform math used throughout the
// kinematics engine. A Transform is a 4x4 homogeneous matrix; the rotation
// block is expected to stay orthonormal across every public boundary.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/rcmlab/teleopkin/utils"
)

// Transform performs rigid transformations in 3D.
type Transform struct {
	Mat mgl64.Mat4
}

// NewTransform returns a new Transform whose matrix is the identity.
func NewTransform() *Transform {
	return &Transform{mgl64.Ident4()}
}

// NewTransformFromMatrix wraps an existing homogeneous matrix.
func NewTransformFromMatrix(mat mgl64.Mat4) *Transform {
	return &Transform{mat}
}

// NewTransformFromPoint returns a pure translation to the given point.
func NewTransformFromPoint(pt r3.Vector) *Transform {
	return &Transform{mgl64.Translate3D(pt.X, pt.Y, pt.Z)}
}

// RotX returns a rotation of theta radians about the x axis.
func RotX(theta float64) *Transform {
	return &Transform{mgl64.HomogRotate3DX(theta)}
}

// RotY returns a rotation of theta radians about the y axis.
func RotY(theta float64) *Transform {
	return &Transform{mgl64.HomogRotate3DY(theta)}
}

// RotZ returns a rotation of theta radians about the z axis.
func RotZ(theta float64) *Transform {
	return &Transform{mgl64.HomogRotate3DZ(theta)}
}

// TransX returns a translation of d along the x axis.
func TransX(d float64) *Transform {
	return &Transform{mgl64.Translate3D(d, 0, 0)}
}

// TransY returns a translation of d along the y axis.
func TransY(d float64) *Transform {
	return &Transform{mgl64.Translate3D(0, d, 0)}
}

// TransZ returns a translation of d along the z axis.
func TransZ(d float64) *Transform {
	return &Transform{mgl64.Translate3D(0, 0, d)}
}

// Compose multiplies the given transforms left to right.
func Compose(transforms ...*Transform) *Transform {
	mat := mgl64.Ident4()
	for _, t := range transforms {
		mat = mat.Mul4(t.Mat)
	}
	return &Transform{mat}
}

// Clone returns a Transform identical to this one.
func (m *Transform) Clone() *Transform {
	return &Transform{m.Mat}
}

// Matrix returns the underlying homogeneous matrix.
func (m *Transform) Matrix() mgl64.Mat4 {
	return m.Mat
}

// Rotation returns the top left 3x3 block.
func (m *Transform) Rotation() mgl64.Mat3 {
	return m.Mat.Mat3()
}

// Translation returns the xyz translation column.
func (m *Transform) Translation() mgl64.Vec3 {
	return m.Mat.Col(3).Vec3()
}

// Point returns the translation as an r3.Vector for geometry consumers.
func (m *Transform) Point() r3.Vector {
	v := m.Translation()
	return r3.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// TransformPoint applies the rigid transform to a point.
func (m *Transform) TransformPoint(pt r3.Vector) r3.Vector {
	v := m.Mat.Mul4x1(mgl64.Vec4{pt.X, pt.Y, pt.Z, 1})
	return r3.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Invert returns the inverse rigid transform, computed from the transposed
// rotation block rather than a general matrix inverse.
func (m *Transform) Invert() *Transform {
	rt := m.Rotation().Transpose()
	p := m.Translation()
	pInv := rt.Mul3x1(p).Mul(-1)
	mat := rt.Mat4()
	mat.Set(0, 3, pInv.X())
	mat.Set(1, 3, pInv.Y())
	mat.Set(2, 3, pInv.Z())
	return &Transform{mat}
}

// ToDelta returns the 6-vector difference between two transforms: xyz
// translation deltas followed by an orientation delta in axis-angle form.
// Quaternion/axis-angle is used for the rotation part because distances
// there are well-defined.
func (m *Transform) ToDelta(other *Transform) []float64 {
	ret := make([]float64, 6)
	ret[0] = other.Mat.At(0, 3) - m.Mat.At(0, 3)
	ret[1] = other.Mat.At(1, 3) - m.Mat.At(1, 3)
	ret[2] = other.Mat.At(2, 3) - m.Mat.At(2, 3)

	q := mgl64.Mat4ToQuat(other.Rotation().Mul3(m.Rotation().Transpose()).Mat4())
	axisAngle := QuatToAxisAngle(q)
	ret[3] = axisAngle[1] * axisAngle[0]
	ret[4] = axisAngle[2] * axisAngle[0]
	ret[5] = axisAngle[3] * axisAngle[0]
	return ret
}

// QuatToAxisAngle converts a quaternion to [angle, x, y, z] the same way the
// C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToAxisAngle(q mgl64.Quat) []float64 {
	denom := q.V.Len()

	angle := 2 * math.Atan2(denom, math.Abs(q.W))
	if q.W < 0 {
		angle *= -1
	}

	axisAngle := []float64{angle}

	if denom < 1e-6 {
		axisAngle = append(axisAngle, 1, 0, 0)
	} else {
		x, y, z := q.V.Mul(1 / denom).Elem()
		axisAngle = append(axisAngle, x, y, z)
	}
	return axisAngle
}

// AlmostEqual returns whether every matrix entry of the two transforms is
// within epsilon.
func AlmostEqual(a, b *Transform, epsilon float64) bool {
	for i := 0; i < 16; i++ {
		if !utils.Float64AlmostEqual(a.Mat[i], b.Mat[i], epsilon) {
			return false
		}
	}
	return true
}

// RotationValid reports whether the rotation block is orthonormal to within
// epsilon.
func (m *Transform) RotationValid(epsilon float64) bool {
	r := m.Rotation()
	shouldBeIdent := r.Mul3(r.Transpose())
	ident := mgl64.Ident3()
	for i := 0; i < 9; i++ {
		if !utils.Float64AlmostEqual(shouldBeIdent[i], ident[i], epsilon) {
			return false
		}
	}
	return utils.Float64AlmostEqual(r.Det(), 1, epsilon)
}
