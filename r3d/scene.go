package r3d

import (
	"sync"

	"github.com/pkg/errors"
)

// Scene owns a list of root nodes together with the camera used to draw them.
// Root list changes and renders are serialized through the scene lock, changes
// made to the nodes themselves are not.
type Scene struct {
	Camera     Camera
	Projection Mat4

	lock  sync.RWMutex
	roots []*Node
}

func NewScene(camera Camera, projection Mat4) *Scene {
	return &Scene{
		Camera:     camera,
		Projection: projection,
	}
}

func (s *Scene) AddRoot(n *Node) error {
	if !n.IsRoot() {
		return errors.Wrapf(ErrAttached, "add root %q", n.Name)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if n.scene != nil {
		return errors.Wrapf(ErrAlreadyAdded, "add root %q", n.Name)
	}
	n.scene = s
	s.roots = append(s.roots, n)
	return nil
}

func (s *Scene) Roots() []*Node {
	s.lock.RLock()
	defer s.lock.RUnlock()
	result := make([]*Node, len(s.roots))
	copy(result, s.roots)
	return result
}

// Frame returns base matrices for the current camera state.
func (s *Scene) Frame() Frame {
	view := Ident4()
	if s.Camera != nil {
		view = s.Camera.ViewMatrix()
	}
	return NewFrame(s.Projection, view)
}

// Render draws every root in order using the current camera.
func (s *Scene) Render() error {
	return s.RenderFrame(s.Frame())
}

func (s *Scene) RenderFrame(f Frame) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, root := range s.roots {
		if err := root.DrawFrame(f); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every node of every root, see Node.Walk.
func (s *Scene) Walk(fn func(node *Node, depth int) bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, root := range s.roots {
		root.Walk(fn)
	}
}

// Find returns the first node named name in draw order.
func (s *Scene) Find(name string) *Node {
	var found *Node
	s.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

func (s *Scene) Count() int {
	count := 0
	s.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

func (s *Scene) Release() {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, root := range s.roots {
		root.scene = nil
		root.release()
	}
	s.roots = nil
}
