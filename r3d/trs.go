package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TRS is a translation, rotation and scale transform applied as T * R * S.
type TRS struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTRS() *TRS {
	return &TRS{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// EulerTRS builds a TRS from euler angles given in degrees, applied in XYZ order.
func EulerTRS(position, eulerDegrees, scale mgl32.Vec3) *TRS {
	return &TRS{
		Position: position,
		Rotation: mgl32.AnglesToQuat(
			mgl32.DegToRad(eulerDegrees[0]),
			mgl32.DegToRad(eulerDegrees[1]),
			mgl32.DegToRad(eulerDegrees[2]),
			mgl32.XYZ),
		Scale: scale,
	}
}

func (t *TRS) TransformationMatrix() Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(t.Rotation.Normalize().Mat4())
	m = m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
	return FromMgl(m)
}

// MatrixTransform is a fixed local matrix.
type MatrixTransform Mat4

func (m MatrixTransform) TransformationMatrix() Mat4 {
	return Mat4(m)
}

// Identity leaves matrices unchanged.
var Identity Transformer = MatrixTransform(Ident4())
