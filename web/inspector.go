package web

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mogaika/scenegraph/logging"
	"github.com/mogaika/scenegraph/r3d"
	"github.com/mogaika/scenegraph/render"
	"github.com/mogaika/scenegraph/status"
)

// Inspector renders an r3d scene whose drawables record into queue and serves
// the results over http.
type Inspector struct {
	lock  sync.Mutex
	scene *r3d.Scene
	queue *render.Queue
	hub   *status.Hub
	frame uint64
}

// FrameReport is the outcome of one scene render.
type FrameReport struct {
	Frame uint64        `json:"frame"`
	Calls []render.Call `json:"calls"`
}

type NodeInfo struct {
	Name     string        `json:"name"`
	Depth    int           `json:"depth"`
	Drawable bool          `json:"drawable"`
	Local    [4][4]float32 `json:"local"`
	World    [4][4]float32 `json:"world"`
	Children []*NodeInfo   `json:"children,omitempty"`
}

func NewInspector(scene *r3d.Scene, queue *render.Queue, hub *status.Hub) *Inspector {
	return &Inspector{
		scene: scene,
		queue: queue,
		hub:   hub,
	}
}

func (i *Inspector) Scene() *r3d.Scene { return i.scene }

// RenderFrame draws the whole scene once and returns the recorded calls.
func (i *Inspector) RenderFrame() (*FrameReport, error) {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.queue.Reset()
	if err := i.scene.Render(); err != nil {
		return nil, err
	}
	i.frame++
	return &FrameReport{Frame: i.frame, Calls: i.queue.Calls()}, nil
}

func newNodeInfo(n *r3d.Node, depth int, parentWorld r3d.Mat4) *NodeInfo {
	local := n.LocalMatrix()
	world := r3d.Mul(parentWorld, local)
	info := &NodeInfo{
		Name:     n.Name,
		Depth:    depth,
		Drawable: n.Drawable != nil,
		Local:    local.Rows(),
		World:    world.Rows(),
	}
	for _, child := range n.Children() {
		info.Children = append(info.Children, newNodeInfo(child, depth+1, world))
	}
	return info
}

func (i *Inspector) Tree() []*NodeInfo {
	i.lock.Lock()
	defer i.lock.Unlock()

	roots := i.scene.Roots()
	result := make([]*NodeInfo, 0, len(roots))
	for _, root := range roots {
		result = append(result, newNodeInfo(root, 0, r3d.Ident4()))
	}
	return result
}

// Node returns the info of the first node named name, or nil.
func (i *Inspector) Node(name string) *NodeInfo {
	i.lock.Lock()
	defer i.lock.Unlock()

	n := i.scene.Find(name)
	if n == nil {
		return nil
	}
	parentWorld := r3d.Ident4()
	if p := n.Parent(); p != nil {
		parentWorld = p.WorldMatrix()
	}
	return newNodeInfo(n, n.Depth(), parentWorld)
}

// Animate orbits the camera by degreesPerSecond and broadcasts a report every interval
// until ctx is done.
func (i *Inspector) Animate(ctx context.Context, interval time.Duration, degreesPerSecond float32) {
	log := logging.From(ctx).Named("animate")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	step := degreesPerSecond * float32(interval.Seconds())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.advanceCamera(step)
			report, err := i.RenderFrame()
			if err != nil {
				log.Warn("Render failed", zap.Error(err))
				continue
			}
			if i.hub.ClientsCount() == 0 {
				continue
			}
			if err := i.hub.Broadcast(report); err != nil {
				log.Warn("Broadcast failed", zap.Error(err))
			}
		}
	}
}

func (i *Inspector) advanceCamera(degrees float32) {
	i.lock.Lock()
	defer i.lock.Unlock()
	if orbit, ok := i.scene.Camera.(*r3d.OrbitController); ok {
		orbit.Yaw += degrees
		for orbit.Yaw >= 360 {
			orbit.Yaw -= 360
		}
	}
}
