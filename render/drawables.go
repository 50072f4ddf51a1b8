package render

import (
	"go.uber.org/zap"

	"github.com/mogaika/scenegraph/r3d"
)

type logged struct {
	next   r3d.Drawable
	logger *zap.Logger
}

// Logged reports every dispatch to logger at debug level before forwarding it.
func Logged(next r3d.Drawable, logger *zap.Logger) r3d.Drawable {
	return &logged{next: next, logger: logger}
}

func (d *logged) Draw(mvp, modelView, normal, model r3d.Mat4) error {
	d.logger.Debug("draw",
		zap.Float32s("mvp", mvp[:]),
		zap.Float32s("model", model[:]))
	if err := d.next.Draw(mvp, modelView, normal, model); err != nil {
		d.logger.Warn("draw failed", zap.Error(err))
		return err
	}
	return nil
}

// DrawFunc adapts a plain function to r3d.Drawable.
type DrawFunc func(mvp, modelView, normal, model r3d.Mat4) error

func (f DrawFunc) Draw(mvp, modelView, normal, model r3d.Mat4) error {
	return f(mvp, modelView, normal, model)
}

// Failing always returns err.
func Failing(err error) r3d.Drawable {
	return DrawFunc(func(_, _, _, _ r3d.Mat4) error {
		return err
	})
}
