package config

import (
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/scenegraph/r3d"
	"github.com/mogaika/scenegraph/utils"
)

const (
	DefaultFov      = 45
	DefaultAspect   = 1
	DefaultNear     = 0.1
	DefaultFar      = 1000
	DefaultDistance = 10
)

type Camera struct {
	Target   []float32 `yaml:"target,omitempty"`
	Distance float32   `yaml:"distance,omitempty"`
	Pitch    float32   `yaml:"pitch,omitempty"`
	Yaw      float32   `yaml:"yaw,omitempty"`
}

type Projection struct {
	Fov    float32 `yaml:"fov,omitempty"`
	Aspect float32 `yaml:"aspect,omitempty"`
	Near   float32 `yaml:"near,omitempty"`
	Far    float32 `yaml:"far,omitempty"`
}

// Node describes one scene node. Matrix is row-major and, when present,
// replaces translation, rotation and scale.
type Node struct {
	Name        string    `yaml:"name,omitempty"`
	Drawable    bool      `yaml:"drawable,omitempty"`
	Translation []float32 `yaml:"translation,omitempty"`
	Rotation    []float32 `yaml:"rotation,omitempty"` // euler degrees, XYZ
	Scale       []float32 `yaml:"scale,omitempty"`
	Matrix      []float32 `yaml:"matrix,omitempty"`
	Children    []*Node   `yaml:"children,omitempty"`
}

type Scene struct {
	Camera     Camera     `yaml:"camera"`
	Projection Projection `yaml:"projection"`
	Nodes      []*Node    `yaml:"nodes"`
}

// DrawableFactory provides the drawable for a node flagged as drawable.
type DrawableFactory func(name string) r3d.Drawable

func Load(r io.Reader) (*Scene, error) {
	var s Scene
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "Failed to decode scene")
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot open scene %q", path)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Scene %q", path)
	}
	return s, nil
}

func (s *Scene) applyDefaults() {
	if s.Camera.Distance == 0 {
		s.Camera.Distance = DefaultDistance
	}
	if s.Projection.Fov == 0 {
		s.Projection.Fov = DefaultFov
	}
	if s.Projection.Aspect == 0 {
		s.Projection.Aspect = DefaultAspect
	}
	if s.Projection.Near == 0 {
		s.Projection.Near = DefaultNear
	}
	if s.Projection.Far == 0 {
		s.Projection.Far = DefaultFar
	}
}

func (s *Scene) Validate() error {
	if err := checkVector("camera target", s.Camera.Target, 3); err != nil {
		return err
	}
	p := s.Projection
	if p.Fov <= 0 || p.Fov >= 180 {
		return errors.Errorf("projection fov %v out of range (0, 180)", p.Fov)
	}
	if p.Aspect <= 0 {
		return errors.Errorf("projection aspect %v must be positive", p.Aspect)
	}
	if p.Near <= 0 || p.Far <= p.Near {
		return errors.Errorf("projection near %v / far %v: need 0 < near < far", p.Near, p.Far)
	}

	names := make(map[string]struct{})
	for i, n := range s.Nodes {
		if err := n.validate(names); err != nil {
			return errors.Wrapf(err, "nodes[%d]", i)
		}
	}
	return nil
}

func (n *Node) validate(names map[string]struct{}) error {
	if n == nil {
		return errors.New("empty node")
	}
	if n.Name != "" {
		if _, exists := names[n.Name]; exists {
			return errors.Errorf("duplicate node name %q", n.Name)
		}
		names[n.Name] = struct{}{}
	}
	if err := checkVector("translation", n.Translation, 3); err != nil {
		return err
	}
	if err := checkVector("rotation", n.Rotation, 3); err != nil {
		return err
	}
	if err := checkVector("scale", n.Scale, 3); err != nil {
		return err
	}
	if err := checkVector("matrix", n.Matrix, 16); err != nil {
		return err
	}
	for i, child := range n.Children {
		if err := child.validate(names); err != nil {
			return errors.Wrapf(err, "%q children[%d]", n.Name, i)
		}
	}
	return nil
}

func checkVector(what string, v []float32, size int) error {
	if v != nil && len(v) != size {
		return errors.Errorf("%s must have %d components, got %d", what, size, len(v))
	}
	return nil
}

func vec3(v []float32, def mgl32.Vec3) mgl32.Vec3 {
	if v == nil {
		return def
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Transformer returns the local transform described by the node.
func (n *Node) Transformer() r3d.Transformer {
	if n.Matrix != nil {
		var m r3d.Mat4
		copy(m[:], n.Matrix)
		return r3d.MatrixTransform(m)
	}
	return r3d.EulerTRS(
		vec3(n.Translation, mgl32.Vec3{}),
		vec3(n.Rotation, mgl32.Vec3{}),
		vec3(n.Scale, mgl32.Vec3{1, 1, 1}))
}

func (s *Scene) OrbitController() *r3d.OrbitController {
	return r3d.NewOrbitController(vec3(s.Camera.Target, mgl32.Vec3{}), s.Camera.Distance, s.Camera.Pitch, s.Camera.Yaw)
}

func (s *Scene) ProjectionMatrix() r3d.Mat4 {
	p := s.Projection
	return r3d.Perspective(p.Fov, p.Aspect, p.Near, p.Far)
}

// Build instantiates the described tree. Nodes without a name get a generated one.
// factory may be nil, in which case no node gets a drawable.
func (s *Scene) Build(factory DrawableFactory) (*r3d.Scene, error) {
	var namer utils.NodeNamer
	for _, n := range s.Nodes {
		reserveNames(&namer, n)
	}

	scene := r3d.NewScene(s.OrbitController(), s.ProjectionMatrix())
	for _, n := range s.Nodes {
		root := buildNode(n, nil, &namer, factory)
		if err := scene.AddRoot(root); err != nil {
			return nil, errors.Wrapf(err, "Failed to add root %q", root.Name)
		}
	}
	return scene, nil
}

func reserveNames(namer *utils.NodeNamer, n *Node) {
	if n.Name != "" {
		namer.Reserve(n.Name)
	}
	for _, child := range n.Children {
		reserveNames(namer, child)
	}
}

func buildNode(n *Node, parent *r3d.Node, namer *utils.NodeNamer, factory DrawableFactory) *r3d.Node {
	name := n.Name
	if name == "" {
		name = namer.RandomName()
	}

	var drawable r3d.Drawable
	if n.Drawable && factory != nil {
		drawable = factory(name)
	}

	node := r3d.NewNode(drawable, n.Transformer(), parent)
	node.Name = name
	for _, child := range n.Children {
		buildNode(child, node, namer, factory)
	}
	return node
}
