// Package frameloop drives the per-frame clear, draw and present cycle.
package frameloop

import (
	"context"
	"fmt"

	"github.com/fosdem/trigon/lib/metrics"
	"github.com/fosdem/trigon/lib/rendering"
	"github.com/fosdem/trigon/lib/stats"
	"github.com/fosdem/trigon/lib/utils"
)

// Surface is the window the frames are presented to
type Surface interface {
	SwapBuffers()
	ShouldClose() bool
	EscapePressed() bool
}

type Clearer interface {
	Clear()
}

type Renderer interface {
	Name() string
	VertexCount() int
	Render() error
}

// Objects lists the objects as renderers, keeping their order
func Objects(objects []*rendering.Object) []Renderer {
	renderers := make([]Renderer, len(objects))
	for i, obj := range objects {
		renderers[i] = obj
	}
	return renderers
}

type Loop struct {
	surface Surface
	clearer Clearer
	objects []Renderer
	metrics []metrics.ObjectMetrics

	// Poll processes pending window events
	Poll func()
	// ShutdownRequested is checked together with the window state
	ShutdownRequested func() bool
	Stats             *stats.Stats

	deltaTimer utils.DeltaTimer
}

func New(surface Surface, clearer Clearer, objects []Renderer) *Loop {
	l := &Loop{
		surface: surface,
		clearer: clearer,
		objects: objects,
		metrics: make([]metrics.ObjectMetrics, len(objects)),
	}
	for i, obj := range objects {
		l.metrics[i] = metrics.NewObjectMetrics(obj.Name())
	}
	return l
}

// Frame clears the framebuffer, renders every object in order, presents the
// result and polls events.
func (l *Loop) Frame() error {
	l.clearer.Clear()

	for i, obj := range l.objects {
		err := obj.Render()
		if err != nil {
			return fmt.Errorf("could not render %s: %w", obj.Name(), err)
		}
		l.metrics[i].DrawCalls.Inc()
		l.metrics[i].VerticesDrawn.Add(float64(obj.VertexCount()))
	}

	l.surface.SwapBuffers()
	if l.Poll != nil {
		l.Poll()
	}

	metrics.FramesRendered.Inc()
	if dt := l.deltaTimer.Next(); dt > 0 {
		metrics.FrameSeconds.Observe(dt.Seconds())
	}
	if l.Stats != nil {
		l.Stats.Update(len(l.objects))
	}
	return nil
}

func (l *Loop) Done() bool {
	if l.surface.EscapePressed() || l.surface.ShouldClose() {
		return true
	}
	return l.ShutdownRequested != nil && l.ShutdownRequested()
}

// Run draws frames until Done reports true or ctx is cancelled. The exit
// condition is only checked between complete frames.
func (l *Loop) Run(ctx context.Context) error {
	for {
		err := l.Frame()
		if err != nil {
			return err
		}
		if l.Done() || ctx.Err() != nil {
			return nil
		}
	}
}
