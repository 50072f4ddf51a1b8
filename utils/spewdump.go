package utils

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/mogaika/scenegraph/r3d"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
	spewConfig.SortKeys = true
}

type dumpNode struct {
	Name      string
	Drawable  string
	Transform string
	Local     [4][4]float32
	Childs    []*dumpNode
}

func newDumpNode(n *r3d.Node) *dumpNode {
	dn := &dumpNode{
		Name:      n.Name,
		Transform: fmt.Sprintf("%T", n.Transform()),
		Local:     n.LocalMatrix().Rows(),
	}
	if n.Drawable != nil {
		dn.Drawable = fmt.Sprintf("%T", n.Drawable)
	}
	for _, child := range n.Children() {
		dn.Childs = append(dn.Childs, newDumpNode(child))
	}
	return dn
}

// SDumpNode renders the subtree without parent links, so the output stays acyclic.
func SDumpNode(n *r3d.Node) string {
	return spewConfig.Sdump(newDumpNode(n))
}

func FDumpScene(w io.Writer, s *r3d.Scene) {
	for _, root := range s.Roots() {
		spewConfig.Fdump(w, newDumpNode(root))
	}
}

func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}
