package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestComposeInvert(t *testing.T) {
	tf := Compose(RotZ(0.5), TransX(10), RotY(-0.3), TransZ(25))
	roundTrip := Compose(tf, tf.Invert())
	test.That(t, AlmostEqual(roundTrip, NewTransform(), 1e-12), test.ShouldBeTrue)

	// inverse of a pure translation
	trans := NewTransformFromPoint(r3.Vector{X: 1, Y: -2, Z: 3})
	test.That(t, trans.Invert().Point().X, test.ShouldAlmostEqual, -1, 1e-12)
	test.That(t, trans.Invert().Point().Y, test.ShouldAlmostEqual, 2, 1e-12)
	test.That(t, trans.Invert().Point().Z, test.ShouldAlmostEqual, -3, 1e-12)
}

func TestTransformPoint(t *testing.T) {
	rotated := RotZ(math.Pi / 2).TransformPoint(r3.Vector{X: 1})
	test.That(t, rotated.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, rotated.Y, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, rotated.Z, test.ShouldAlmostEqual, 0, 1e-9)

	moved := Compose(TransX(5), RotY(math.Pi/2)).TransformPoint(r3.Vector{Z: 2})
	test.That(t, moved.X, test.ShouldAlmostEqual, 7, 1e-9)
	test.That(t, moved.Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, moved.Z, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestToDelta(t *testing.T) {
	delta := NewTransform().ToDelta(TransX(5))
	test.That(t, delta[0], test.ShouldAlmostEqual, 5, 1e-12)
	for _, v := range delta[1:] {
		test.That(t, v, test.ShouldAlmostEqual, 0, 1e-9)
	}

	delta = NewTransform().ToDelta(RotZ(0.3))
	test.That(t, delta[5], test.ShouldAlmostEqual, 0.3, 1e-9)
	test.That(t, delta[3], test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, delta[4], test.ShouldAlmostEqual, 0, 1e-9)
}

func TestRotationValid(t *testing.T) {
	tf := Compose(RotX(0.2), RotY(1.1), RotZ(-2.2), TransZ(40))
	test.That(t, tf.RotationValid(1e-9), test.ShouldBeTrue)

	scaled := tf.Clone()
	scaled.Mat.Set(0, 0, scaled.Mat.At(0, 0)*2)
	test.That(t, scaled.RotationValid(1e-9), test.ShouldBeFalse)
}
