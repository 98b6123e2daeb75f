// Package collision provides the swept-volume primitives used to approximate
// the manipulator links, and minimum-distance queries between them.
package collision

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Geometry is a collision primitive. A negative distance between two
// geometries is the depth of their interpenetration.
type Geometry interface {
	// DistanceFrom returns the minimum distance between the surfaces of the
	// two geometries.
	DistanceFrom(other Geometry) (float64, error)
	// Label returns the name given to the geometry at creation.
	Label() string
}

// Cylisphere is a capsule: the volume swept by a sphere of radius R moving
// along segment AB.
type Cylisphere struct {
	A, B  r3.Vector
	R     float64
	label string
}

// Sphere is a ball of radius R centered at C.
type Sphere struct {
	C     r3.Vector
	R     float64
	label string
}

// NewCylisphere instantiates a capsule primitive.
func NewCylisphere(a, b r3.Vector, radius float64, label string) (*Cylisphere, error) {
	if radius <= 0 {
		return nil, newBadGeometryDimensionsError("cylisphere", radius)
	}
	return &Cylisphere{A: a, B: b, R: radius, label: label}, nil
}

// NewSphere instantiates a sphere primitive.
func NewSphere(center r3.Vector, radius float64, label string) (*Sphere, error) {
	if radius <= 0 {
		return nil, newBadGeometryDimensionsError("sphere", radius)
	}
	return &Sphere{C: center, R: radius, label: label}, nil
}

// Label returns the label of this cylisphere.
func (c *Cylisphere) Label() string {
	return c.label
}

// Label returns the label of this sphere.
func (s *Sphere) Label() string {
	return s.label
}

// String returns a human readable string that represents the cylisphere.
func (c *Cylisphere) String() string {
	return fmt.Sprintf("Type: Cylisphere, Radius: %.2f, SegLength: %.2f", c.R, c.B.Sub(c.A).Norm())
}

// String returns a human readable string that represents the sphere.
func (s *Sphere) String() string {
	return fmt.Sprintf("Type: Sphere, Radius: %.2f", s.R)
}

// DistanceFrom returns the minimum distance from the cylisphere surface to
// the other geometry's surface.
func (c *Cylisphere) DistanceFrom(other Geometry) (float64, error) {
	switch g := other.(type) {
	case *Cylisphere:
		return SegmentDistanceToSegment(c.A, c.B, g.A, g.B) - (c.R + g.R), nil
	case *Sphere:
		return DistToLineSegment(c.A, c.B, g.C) - (c.R + g.R), nil
	default:
		return 0, newCollisionTypeUnsupportedError(c, other)
	}
}

// DistanceFrom returns the minimum distance from the sphere surface to the
// other geometry's surface.
func (s *Sphere) DistanceFrom(other Geometry) (float64, error) {
	switch g := other.(type) {
	case *Sphere:
		return s.C.Sub(g.C).Norm() - (s.R + g.R), nil
	case *Cylisphere:
		return DistToLineSegment(g.A, g.B, s.C) - (s.R + g.R), nil
	default:
		return 0, newCollisionTypeUnsupportedError(s, other)
	}
}

func newBadGeometryDimensionsError(geometryType string, radius float64) error {
	return errors.Errorf("%s radius must be positive, got %f", geometryType, radius)
}

func newCollisionTypeUnsupportedError(g1, g2 Geometry) error {
	return errors.Errorf("cannot compute distance between %T and %T", g1, g2)
}
