// Package render collects draw dispatches coming out of a scene traversal.
package render

import (
	"github.com/mogaika/scenegraph/r3d"
)

// Call is one drawable invocation with the matrices it received.
type Call struct {
	Node      string   `json:"node"`
	MVP       r3d.Mat4 `json:"mvp"`
	ModelView r3d.Mat4 `json:"model_view"`
	Normal    r3d.Mat4 `json:"normal"`
	Model     r3d.Mat4 `json:"model"`
}

// Queue records calls in dispatch order. Not safe for concurrent traversals.
type Queue struct {
	calls []Call
}

func (q *Queue) AddCall(call Call) {
	q.calls = append(q.calls, call)
}

func (q *Queue) Calls() []Call {
	result := make([]Call, len(q.calls))
	copy(result, q.calls)
	return result
}

func (q *Queue) Len() int { return len(q.calls) }

func (q *Queue) Reset() { q.calls = q.calls[:0] }

// Names lists node names in the order they were drawn.
func (q *Queue) Names() []string {
	names := make([]string, len(q.calls))
	for i := range q.calls {
		names[i] = q.calls[i].Node
	}
	return names
}

// Last returns the latest call recorded for node.
func (q *Queue) Last(node string) (Call, bool) {
	for i := len(q.calls) - 1; i >= 0; i-- {
		if q.calls[i].Node == node {
			return q.calls[i], true
		}
	}
	return Call{}, false
}

// Drawable returns a drawable that records into q under name.
func (q *Queue) Drawable(name string) r3d.Drawable {
	return &queued{queue: q, name: name}
}

type queued struct {
	queue *Queue
	name  string
}

func (d *queued) Draw(mvp, modelView, normal, model r3d.Mat4) error {
	d.queue.AddCall(Call{
		Node:      d.name,
		MVP:       mvp,
		ModelView: modelView,
		Normal:    normal,
		Model:     model,
	})
	return nil
}
