package r3d_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/mogaika/scenegraph/r3d"
)

func TestTRSIdentity(t *testing.T) {
	assert.True(t, r3d.NewTRS().TransformationMatrix().ApproxEqual(r3d.Ident4()))
}

func TestTRSComposition(t *testing.T) {
	trs := r3d.NewTRS()
	trs.Position = mgl32.Vec3{1, 2, 3}
	trs.Scale = mgl32.Vec3{2, 2, 2}

	expected := r3d.Mul(r3d.Translate3D(1, 2, 3), r3d.Scale3D(2, 2, 2))
	assert.True(t, trs.TransformationMatrix().ApproxEqual(expected))
}

func TestEulerTRSRotation(t *testing.T) {
	trs := r3d.EulerTRS(mgl32.Vec3{}, mgl32.Vec3{0, 90, 0}, mgl32.Vec3{1, 1, 1})
	m := trs.TransformationMatrix()

	// +X turns into -Z around the Y axis, read off the first column
	assert.InDelta(t, 0, m.At(0, 0), 1e-5)
	assert.InDelta(t, 0, m.At(1, 0), 1e-5)
	assert.InDelta(t, -1, m.At(2, 0), 1e-5)
}

func TestTRSTranslatesThroughRotation(t *testing.T) {
	// translation is applied after rotation, so it is not rotated itself
	trs := r3d.EulerTRS(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 0, 90}, mgl32.Vec3{1, 1, 1})
	m := trs.TransformationMatrix()
	assert.InDelta(t, 5, m.At(0, 3), 1e-5)
	assert.InDelta(t, 0, m.At(1, 3), 1e-5)
}
