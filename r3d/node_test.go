package r3d_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/scenegraph/r3d"
	"github.com/mogaika/scenegraph/render"
)

func translateX(x float32) r3d.Transformer {
	return r3d.MatrixTransform(r3d.Translate3D(x, 0, 0))
}

func identDraw(t *testing.T, n *r3d.Node) {
	t.Helper()
	i := r3d.Ident4()
	require.NoError(t, n.Draw(i, i, i, i))
}

func TestNewNodeLinksParent(t *testing.T) {
	root := r3d.NewNode(nil, r3d.Identity, nil)
	a := r3d.NewNode(nil, r3d.Identity, root)
	b := r3d.NewNode(nil, r3d.Identity, root)
	c := r3d.NewNode(nil, r3d.Identity, a)

	assert.True(t, root.IsRoot())
	assert.Nil(t, root.Parent())
	assert.Equal(t, []*r3d.Node{a, b}, root.Children())
	assert.Equal(t, []*r3d.Node{c}, a.Children())
	for _, child := range root.Children() {
		assert.Same(t, root, child.Parent())
	}
	assert.Same(t, a, c.Parent())
	assert.Equal(t, 2, c.Depth())
}

func TestChildrenIsACopy(t *testing.T) {
	root := r3d.NewNode(nil, r3d.Identity, nil)
	r3d.NewNode(nil, r3d.Identity, root)

	children := root.Children()
	children[0] = nil
	assert.NotNil(t, root.Children()[0])
	assert.Equal(t, 1, root.ChildCount())
}

func TestNilTransformIsIdentity(t *testing.T) {
	n := r3d.NewNode(nil, nil, nil)
	assert.Equal(t, r3d.Ident4(), n.LocalMatrix())
}

func TestDrawOrderFollowsInsertion(t *testing.T) {
	var q render.Queue
	root := r3d.NewNode(q.Drawable("root"), r3d.Identity, nil)
	x := r3d.NewNode(q.Drawable("x"), r3d.Identity, root)
	r3d.NewNode(q.Drawable("x1"), r3d.Identity, x)
	r3d.NewNode(q.Drawable("y"), r3d.Identity, root)
	r3d.NewNode(q.Drawable("z"), r3d.Identity, root)

	identDraw(t, root)

	assert.Equal(t, []string{"root", "x", "x1", "y", "z"}, q.Names())
}

func TestChildReceivesOwnTranslation(t *testing.T) {
	var q render.Queue
	root := r3d.NewNode(q.Drawable("root"), r3d.Identity, nil)
	r3d.NewNode(q.Drawable("child"), translateX(1), root)

	identDraw(t, root)

	call, ok := q.Last("child")
	require.True(t, ok)
	expected := r3d.Translate3D(1, 0, 0)
	assert.Equal(t, expected, call.MVP)
	assert.Equal(t, expected, call.ModelView)
	assert.Equal(t, expected, call.Normal)
	assert.Equal(t, expected, call.Model)
}

func TestTranslationsAccumulate(t *testing.T) {
	var q render.Queue
	root := r3d.NewNode(nil, r3d.Identity, nil)
	a := r3d.NewNode(q.Drawable("a"), translateX(1), root)
	r3d.NewNode(q.Drawable("b"), translateX(1), a)

	identDraw(t, root)

	call, ok := q.Last("b")
	require.True(t, ok)
	assert.Equal(t, r3d.Translate3D(2, 0, 0), call.MVP)
	assert.Equal(t, r3d.Translate3D(2, 0, 0), call.Model)
}

func TestSiblingsAreIndependent(t *testing.T) {
	var q render.Queue
	root := r3d.NewNode(nil, translateX(10), nil)
	left := r3d.NewNode(q.Drawable("left"), translateX(1), root)
	r3d.NewNode(q.Drawable("left.leaf"), r3d.MatrixTransform(r3d.Scale3D(2, 2, 2)), left)
	right := r3d.NewNode(q.Drawable("right"), r3d.MatrixTransform(r3d.Translate3D(0, 5, 0)), root)
	r3d.NewNode(q.Drawable("right.leaf"), r3d.Identity, right)

	identDraw(t, root)

	rightLeaf, ok := q.Last("right.leaf")
	require.True(t, ok)
	assert.Equal(t, r3d.Translate3D(10, 5, 0), rightLeaf.Model)

	leftLeaf, ok := q.Last("left.leaf")
	require.True(t, ok)
	assert.Equal(t, r3d.Mul(r3d.Translate3D(11, 0, 0), r3d.Scale3D(2, 2, 2)), leftLeaf.Model)
}

func TestNodeWithoutDrawableStillRecurses(t *testing.T) {
	var q render.Queue
	root := r3d.NewNode(nil, r3d.Identity, nil)
	middle := r3d.NewNode(nil, translateX(3), root)
	r3d.NewNode(q.Drawable("leaf"), translateX(1), middle)

	identDraw(t, root)

	require.Equal(t, []string{"leaf"}, q.Names())
	call, _ := q.Last("leaf")
	assert.Equal(t, r3d.Translate3D(4, 0, 0), call.MVP)
}

func TestChannelsComposeIndependently(t *testing.T) {
	var q render.Queue
	root := r3d.NewNode(q.Drawable("root"), translateX(1), nil)

	mvp := r3d.Scale3D(2, 2, 2)
	modelView := r3d.Translate3D(0, 0, -5)
	normal := r3d.Scale3D(3, 3, 3)
	model := r3d.Ident4()
	mvpBefore, modelViewBefore, normalBefore, modelBefore := mvp, modelView, normal, model

	require.NoError(t, root.Draw(mvp, modelView, normal, model))

	call, ok := q.Last("root")
	require.True(t, ok)
	local := r3d.Translate3D(1, 0, 0)
	assert.Equal(t, r3d.Mul(mvp, local), call.MVP)
	assert.Equal(t, r3d.Mul(modelView, local), call.ModelView)
	// the normal channel gets the plain local matrix, not its inverse transpose
	assert.Equal(t, r3d.Mul(normal, local), call.Normal)
	assert.Equal(t, local, call.Model)

	assert.Equal(t, mvpBefore, mvp)
	assert.Equal(t, modelViewBefore, modelView)
	assert.Equal(t, normalBefore, normal)
	assert.Equal(t, modelBefore, model)
}

func TestDrawErrorAbortsTraversal(t *testing.T) {
	var q render.Queue
	errBroken := errors.New("broken drawable")

	root := r3d.NewNode(q.Drawable("root"), r3d.Identity, nil)
	a := r3d.NewNode(render.Failing(errBroken), r3d.Identity, root)
	r3d.NewNode(q.Drawable("a.child"), r3d.Identity, a)
	r3d.NewNode(q.Drawable("b"), r3d.Identity, root)

	i := r3d.Ident4()
	err := root.Draw(i, i, i, i)
	assert.Same(t, errBroken, err)
	assert.Equal(t, []string{"root"}, q.Names())
}

func TestWorldMatrix(t *testing.T) {
	root := r3d.NewNode(nil, translateX(1), nil)
	a := r3d.NewNode(nil, translateX(2), root)
	b := r3d.NewNode(nil, r3d.MatrixTransform(r3d.Translate3D(0, 1, 0)), a)

	assert.Equal(t, r3d.Translate3D(3, 1, 0), b.WorldMatrix())
	assert.Equal(t, r3d.Translate3D(1, 0, 0), root.WorldMatrix())
}

func TestWalk(t *testing.T) {
	root := r3d.NewNode(nil, nil, nil)
	root.Name = "root"
	a := r3d.NewNode(nil, nil, root)
	a.Name = "a"
	aa := r3d.NewNode(nil, nil, a)
	aa.Name = "aa"
	b := r3d.NewNode(nil, nil, root)
	b.Name = "b"

	var visited []string
	var depths []int
	root.Walk(func(n *r3d.Node, depth int) bool {
		visited = append(visited, n.Name)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"root", "a", "aa", "b"}, visited)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)

	visited = visited[:0]
	root.Walk(func(n *r3d.Node, depth int) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})
	assert.Equal(t, []string{"root", "a", "b"}, visited)
}

func TestRelease(t *testing.T) {
	var q render.Queue
	root := r3d.NewNode(q.Drawable("root"), nil, nil)
	a := r3d.NewNode(q.Drawable("a"), nil, root)
	aa := r3d.NewNode(q.Drawable("aa"), nil, a)

	err := a.Release()
	require.Error(t, err)
	assert.True(t, errors.Is(err, r3d.ErrAttached))
	assert.Equal(t, 1, root.ChildCount())

	require.NoError(t, root.Release())
	assert.Equal(t, 0, root.ChildCount())
	assert.Equal(t, 0, a.ChildCount())
	assert.Nil(t, a.Parent())
	assert.Nil(t, aa.Parent())

	identDraw(t, root)
	assert.Equal(t, 0, q.Len())
}
