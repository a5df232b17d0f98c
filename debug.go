package inkwell

import (
	"log/slog"
	"time"
)

// frameStats holds per-iteration timing and queue metrics.
// Only logged when debug mode is on.
type frameStats struct {
	routeTime  time.Duration
	renderTime time.Duration
	events     int
	queued     int
	inFlight   int
	busEvents  int
}

// debugLog reports stats for iterations that did some work.
func (a *App) debugLog(stats frameStats) {
	if !a.debug || (stats.events == 0 && stats.queued == 0) {
		return
	}
	a.ctx.logger().Debug("frame",
		slog.Duration("route", stats.routeTime),
		slog.Duration("render", stats.renderTime),
		slog.Int("events", stats.events),
		slog.Int("queued", stats.queued),
		slog.Int("in_flight", stats.inFlight),
		slog.Int("bus", stats.busEvents),
	)
	a.debugCheckTree()
}

// debugCheckTree warns when the view tree grows past sane limits, which
// usually means notifications or menus are never closed.
const (
	debugMaxTreeDepth  = 16
	debugMaxChildCount = 64
)

func (a *App) debugCheckTree() {
	log := a.ctx.logger()
	var walk func(v View, depth int)
	walk = func(v View, depth int) {
		if depth > debugMaxTreeDepth {
			log.Warn("view tree too deep", "depth", depth, "id", v.ID())
			return
		}
		if v.Len() > debugMaxChildCount {
			log.Warn("view has too many children", "id", v.ID(), "children", v.Len())
		}
		for _, c := range v.Children() {
			walk(c, depth+1)
		}
	}
	walk(a.view, 1)
}
