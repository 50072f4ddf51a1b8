package fbxbuilder

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/mogaika/scenegraph/r3d"
)

// quatToEuler returns rotation angles in radians around X, Y and Z, matching
// the default FBX XYZ rotation order.
func quatToEuler(q mgl32.Quat) (e mgl32.Vec3) {
	sinr_cosp := float64(2 * (q.W*q.X() + q.Y()*q.Z()))
	cosr_cosp := float64(1 - 2*(q.X()*q.X()+q.Y()*q.Y()))

	e[0] = float32(math.Atan2(sinr_cosp, cosr_cosp))

	sinp := float64(2 * (q.W*q.Y() - q.Z()*q.X()))
	if math.Abs(sinp) >= 1 {
		e[1] = math.Pi / 2
		if sinp < 0 {
			e[1] *= -1
		}
	} else {
		e[1] = float32(math.Asin(sinp))
	}

	siny_cosp := float64(2 * (q.W*q.Z() + q.X()*q.Y()))
	cosy_cosp := float64(1 - 2*(q.Y()*q.Y()+q.Z()*q.Z()))
	e[2] = float32(math.Atan2(siny_cosp, cosy_cosp))

	return e
}

// decompose splits an affine matrix without shear into translation, rotation and scale.
func decompose(m mgl32.Mat4) (pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) {
	pos = m.Col(3).Vec3()
	for i := 0; i < 3; i++ {
		scale[i] = m.Col(i).Vec3().Len()
	}
	rm := mgl32.Ident4()
	for i := 0; i < 3; i++ {
		if scale[i] == 0 {
			continue
		}
		rm.SetCol(i, m.Col(i).Vec3().Mul(1/scale[i]).Vec4(0))
	}
	return pos, mgl32.Mat4ToQuat(rm).Normalize(), scale
}

func localTRS(n *r3d.Node) (pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) {
	if trs, ok := n.Transform().(*r3d.TRS); ok {
		return trs.Position, trs.Rotation.Normalize(), trs.Scale
	}
	return decompose(n.LocalMatrix().Mgl())
}

// ExportScene writes one Null model per node, linked to its parent the same
// way the scene hierarchy is. Roots are connected to the FBX root object.
func ExportScene(s *r3d.Scene, filename string) *FBXBuilder {
	f := NewFBXBuilder(filename)
	for _, root := range s.Roots() {
		f.exportNode(root, 0)
	}
	return f
}

func (f *FBXBuilder) exportNode(n *r3d.Node, parentId int64) {
	modelId := f.GenerateId()

	pos, rot, scale := localTRS(n)
	rotation := quatToEuler(rot).Mul(180.0 / math.Pi)

	model := bfbx73.Model(modelId, n.Name+"\x00\x01Model", "Null").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+",
				float64(pos[0]), float64(pos[1]), float64(pos[2])),
			bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A+",
				float64(rotation[0]), float64(rotation[1]), float64(rotation[2])),
			bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A+",
				float64(scale[0]), float64(scale[1]), float64(scale[2])),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	nodeAttribute := bfbx73.NodeAttribute(f.GenerateId(), n.Name+"\x00\x01NodeAttribute", "Null").AddNodes(
		bfbx73.TypeFlags("Null"),
	)

	f.AddObjects(model, nodeAttribute)
	f.AddConnections(
		bfbx73.C("OO", nodeAttribute.Properties[0].(int64), modelId),
		bfbx73.C("OO", modelId, parentId),
	)

	for _, child := range n.Children() {
		f.exportNode(child, modelId)
	}
}
