package r3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera interface {
	ViewMatrix() Mat4
}

type OrbitController struct {
	Target   mgl32.Vec3
	Distance float32
	Pitch    float32 // x rotation, degrees
	Yaw      float32 // y rotation, degrees
}

func NewOrbitController(target mgl32.Vec3, dist, pitch, yaw float32) *OrbitController {
	return &OrbitController{
		Target:   target,
		Distance: dist,
		Pitch:    pitch,
		Yaw:      yaw,
	}
}

func (c *OrbitController) ViewMatrix() Mat4 {
	return FromMgl(mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0}))
}

func (c *OrbitController) Position() mgl32.Vec3 {
	pitch := float64(mgl32.DegToRad(c.Pitch))
	yaw := float64(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{
		c.Distance * float32(math.Cos(pitch)*math.Sin(yaw)),
		c.Distance * float32(math.Sin(pitch)),
		c.Distance * float32(math.Cos(pitch)*math.Cos(yaw)),
	}.Add(c.Target)
}

// Perspective builds a projection matrix, fov is vertical and in degrees.
func Perspective(fovDegrees, aspect, near, far float32) Mat4 {
	return FromMgl(mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far))
}

// Frame holds the four base matrices handed to root nodes.
type Frame struct {
	MVP       Mat4
	ModelView Mat4
	Normal    Mat4
	Model     Mat4
}

// NewFrame starts every channel from an identity model matrix.
func NewFrame(projection, view Mat4) Frame {
	return Frame{
		MVP:       Mul(projection, view),
		ModelView: view,
		Normal:    view,
		Model:     Ident4(),
	}
}

func IdentFrame() Frame {
	i := Ident4()
	return Frame{MVP: i, ModelView: i, Normal: i, Model: i}
}
