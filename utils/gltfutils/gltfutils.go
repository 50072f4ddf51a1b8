package gltfutils

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/scenegraph/r3d"
)

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// ExportScene converts the node hierarchy into glTF nodes, children keep their order.
// TRS transforms keep their components, any other transform is written as a matrix.
func ExportScene(s *r3d.Scene) *gltf.Document {
	doc := NewDocument()
	for _, root := range s.Roots() {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, exportNode(doc, root))
	}
	return doc
}

// exportNode relies on nodes always carrying a transform, NewNode substitutes identity for nil.
func exportNode(doc *gltf.Document, n *r3d.Node) uint32 {
	node := &gltf.Node{Name: n.Name}

	switch t := n.Transform().(type) {
	case *r3d.TRS:
		q := t.Rotation.Normalize()
		node.Translation = t.Position
		node.Rotation = [4]float32{q.V[0], q.V[1], q.V[2], q.W}
		node.Scale = t.Scale
	default:
		node.Matrix = n.LocalMatrix().ColumnMajor()
		node.Rotation = gltf.DefaultRotation
		node.Scale = gltf.DefaultScale
	}

	index := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, node)

	for _, child := range n.Children() {
		node.Children = append(node.Children, exportNode(doc, child))
	}
	return index
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrapf(encoder.Encode(doc), "Failed to encode glb")
}

func ExportJSON(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = false
	return errors.Wrapf(encoder.Encode(doc), "Failed to encode gltf")
}

// Save picks the container from the file extension (.glb for binary).
func Save(doc *gltf.Document, path string) error {
	save := gltf.Save
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		save = gltf.SaveBinary
	}
	return errors.Wrapf(save(doc, path), "Failed to save %q", path)
}
