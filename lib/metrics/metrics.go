package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trigon_frames_rendered_total",
		Help: "Total number of frames presented to the window",
	})
	FrameSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trigon_frame_seconds",
		Help:    "Time between two presented frames",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	})
	DrawCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trigon_object_draw_calls_total",
		Help: "Total number of draw calls issued for an object",
	}, []string{"name"})
	VerticesDrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trigon_object_vertices_drawn_total",
		Help: "Total number of vertices submitted for an object",
	}, []string{"name"})
)

type ObjectMetrics struct {
	DrawCalls     prometheus.Counter
	VerticesDrawn prometheus.Counter
}

func NewObjectMetrics(name string) ObjectMetrics {
	o := ObjectMetrics{
		DrawCalls:     DrawCalls.WithLabelValues(name),
		VerticesDrawn: VerticesDrawn.WithLabelValues(name),
	}
	o.DrawCalls.Add(0)
	o.VerticesDrawn.Add(0)
	return o
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
