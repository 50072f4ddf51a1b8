package r3d

import (
	"github.com/pkg/errors"
)

// Drawable receives fully composed matrices for a node. The node never releases it.
type Drawable interface {
	Draw(mvp, modelView, normal, model Mat4) error
}

// Transformer yields a node transform relative to its parent.
type Transformer interface {
	TransformationMatrix() Mat4
}

var (
	ErrAttached     = errors.New("node is still attached to a parent")
	ErrAlreadyAdded = errors.New("node is already a scene root")
)

// Node is a scene graph element. Children are owned and drawn in insertion order,
// the parent link is only a back reference.
type Node struct {
	Name     string
	Drawable Drawable

	transform Transformer
	parent    *Node
	childs    []*Node
	// set while the node is a root of a scene
	scene *Scene
}

// NewNode creates a node and, if parent is not nil, appends it as the last child of parent.
// A nil transform is treated as identity.
func NewNode(drawable Drawable, transform Transformer, parent *Node) *Node {
	if transform == nil {
		transform = Identity
	}
	n := &Node{
		Drawable:  drawable,
		transform: transform,
		parent:    parent,
	}
	if parent != nil {
		parent.addChild(n)
	}
	return n
}

func (n *Node) addChild(child *Node) {
	n.childs = append(n.childs, child)
}

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) IsRoot() bool { return n.parent == nil }

func (n *Node) Transform() Transformer { return n.transform }

// Children returns a copy of the child list, the tree shape can not be changed through it.
func (n *Node) Children() []*Node {
	result := make([]*Node, len(n.childs))
	copy(result, n.childs)
	return result
}

func (n *Node) ChildCount() int { return len(n.childs) }

func (n *Node) LocalMatrix() Mat4 {
	return n.transform.TransformationMatrix()
}

// WorldMatrix composes local matrices from the root down to this node.
func (n *Node) WorldMatrix() Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return Mul(n.parent.WorldMatrix(), n.LocalMatrix())
}

// Depth is 0 for a root.
func (n *Node) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Draw composes the local transform into every input matrix (input * local),
// hands the results to the drawable and then to every child in order.
// The first drawable error stops the traversal and is returned as is.
func (n *Node) Draw(mvp, modelView, normal, model Mat4) error {
	t := n.transform.TransformationMatrix()

	mvp = Mul(mvp, t)
	modelView = Mul(modelView, t)
	// same local matrix as every other channel, no inverse transpose here
	normal = Mul(normal, t)
	model = Mul(model, t)

	if n.Drawable != nil {
		if err := n.Drawable.Draw(mvp, modelView, normal, model); err != nil {
			return err
		}
	}

	for _, child := range n.childs {
		if err := child.Draw(mvp, modelView, normal, model); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) DrawFrame(f Frame) error {
	return n.Draw(f.MVP, f.ModelView, f.Normal, f.Model)
}

// Walk visits the subtree depth first, parent before children.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.childs {
		child.walk(fn, depth+1)
	}
}

// Release tears down the subtree rooted at n. Drawables are left alone.
// Roots added to a scene are released through Scene.Release.
func (n *Node) Release() error {
	if n.parent != nil {
		return errors.Wrapf(ErrAttached, "release %q", n.Name)
	}
	if n.scene != nil {
		return errors.Wrapf(ErrAlreadyAdded, "release %q", n.Name)
	}
	n.release()
	return nil
}

func (n *Node) release() {
	for _, child := range n.childs {
		child.release()
		child.parent = nil
	}
	n.childs = nil
	n.transform = Identity
	n.Drawable = nil
}
