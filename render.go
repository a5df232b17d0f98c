package inkwell

import (
	"log/slog"
	"maps"
	"slices"
	"time"
)

// Updating maps the tokens of refreshes the driver accepted but that were not
// yet waited on to the region each one covers. It persists across loop
// iterations.
type Updating map[Token]Rectangle

// renderPass carries the state of one Render Engine walk over the tree.
type renderPass struct {
	wait     bool
	ids      map[ID][]Rectangle
	rects    []Rectangle
	bgs      []Rectangle
	fb       Framebuffer
	fonts    *Fonts
	updating Updating
	log      *slog.Logger
	metrics  *Metrics
}

// Render paints the subtree rooted at view bottom to top.
//
// A leaf, or a container that IsBackground, paints every rectangle queued for
// its ID followed by its share of rects and bgs. When wait is set, each
// in-flight refresh overlapping the region about to be painted is waited on
// first. Painted regions are merged into rects. A plain container instead
// hands the rectangles queued for its ID to its descendants through bgs.
// Children are then visited in forward order.
//
// On return rects holds the regions the caller should refresh.
func Render(view View, wait bool, ids map[ID][]Rectangle, rects, bgs *[]Rectangle,
	fb Framebuffer, fonts *Fonts, updating Updating) {
	p := &renderPass{
		wait:     wait,
		ids:      ids,
		rects:    *rects,
		bgs:      *bgs,
		fb:       fb,
		fonts:    fonts,
		updating: updating,
		log:      slog.Default(),
	}
	p.render(view)
	*rects = p.rects
	*bgs = p.bgs
}

func (p *renderPass) render(view View) {
	var renderRects []Rectangle

	if view.Len() == 0 || view.IsBackground() {
		vr := view.Rect()
		candidates := slices.Clone(p.ids[view.ID()])
		for _, r := range p.rects {
			if ir, ok := r.Intersection(vr); ok {
				candidates = append(candidates, ir)
			}
		}
		for _, r := range p.bgs {
			if ir, ok := r.Intersection(vr); ok {
				candidates = append(candidates, ir)
			}
		}

		for _, rect := range candidates {
			renderRect := view.RenderRect(rect)
			if p.wait {
				p.waitOverlapping(renderRect)
			}
			view.Render(p.fb, rect, p.fonts)
			renderRects = append(renderRects, renderRect)

			if view.Rect() == renderRect {
				break
			}
		}
	} else {
		p.bgs = append(p.bgs, p.ids[view.ID()]...)
	}

	for _, r := range renderRects {
		p.rects = mergeRect(p.rects, r)
	}

	for _, c := range view.Children() {
		p.render(c)
	}
}

// waitOverlapping blocks on every in-flight refresh whose region overlaps r
// and forgets it. A failed wait counts as resolved.
func (p *renderPass) waitOverlapping(r Rectangle) {
	for _, tok := range sortedTokens(p.updating) {
		ur := p.updating[tok]
		if !r.Overlaps(ur) {
			continue
		}
		start := time.Now()
		if err := p.fb.Wait(tok); err != nil {
			p.log.Warn("wait for refresh failed", "token", tok, "rect", ur, "error", err)
			p.metrics.waitError()
		}
		p.metrics.observeWait(time.Since(start))
		delete(p.updating, tok)
	}
}

// mergeRect adds r to rects, coalescing it with the regions already there.
// When r touches the last region the two are joined, and the join cascades
// backward while the last two regions touch. Otherwise r is dropped if an
// existing region already contains it, and appended if not.
func mergeRect(rects []Rectangle, r Rectangle) []Rectangle {
	if len(rects) == 0 {
		return append(rects, r)
	}

	last := len(rects) - 1
	if r.Touches(rects[last]) {
		rects[last].Absorb(r)
		for len(rects) > 1 && rects[len(rects)-1].Touches(rects[len(rects)-2]) {
			top := rects[len(rects)-1]
			rects = rects[:len(rects)-1]
			rects[len(rects)-1].Absorb(top)
		}
		return rects
	}

	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].Contains(r) {
			return rects
		}
	}
	return append(rects, r)
}

// ProcessRenderQueue drains rq and refreshes the screen.
//
// Each (mode, wait) group is rendered against the whole tree rooted at view.
// Entries are replayed newest first, so the latest request for a widget is
// the first one it paints. Every merged region is then refreshed with the
// group's mode; accepted refreshes are recorded in updating and failed ones
// are logged and dropped.
func ProcessRenderQueue(view View, rq *RenderQueue, ctx *Context, updating Updating) {
	log := ctx.logger()

	for _, g := range rq.Drain() {
		ids := make(map[ID][]Rectangle)
		var bgs []Rectangle

		for i := len(g.Entries) - 1; i >= 0; i-- {
			e := g.Entries[i]
			if e.ID != 0 {
				ids[e.ID] = append(ids[e.ID], e.Rect)
			} else {
				bgs = append(bgs, e.Rect)
			}
		}

		p := &renderPass{
			wait:     g.Wait,
			ids:      ids,
			bgs:      bgs,
			fb:       ctx.FB,
			fonts:    ctx.Fonts,
			updating: updating,
			log:      log,
			metrics:  ctx.Metrics,
		}
		p.render(view)

		ctx.Metrics.observeMerged(len(p.rects))

		for _, rect := range p.rects {
			tok, err := ctx.FB.Update(rect, g.Mode)
			if err != nil {
				log.Warn("refresh failed", "rect", rect, "mode", g.Mode, "error", err)
				ctx.Metrics.refreshError(g.Mode)
				continue
			}
			updating[tok] = rect
			ctx.Metrics.refreshed(g.Mode)
		}
	}

	ctx.Metrics.setInFlight(len(updating))
}

// WaitAll blocks until every in-flight refresh has completed and empties
// updating. It is used before operations that invalidate the whole panel,
// such as a rotation.
func WaitAll(fb Framebuffer, updating Updating, log *slog.Logger) {
	for _, tok := range sortedTokens(updating) {
		if err := fb.Wait(tok); err != nil && log != nil {
			log.Warn("wait for refresh failed", "token", tok, "error", err)
		}
		delete(updating, tok)
	}
}

func sortedTokens(u Updating) []Token {
	return slices.Sorted(maps.Keys(u))
}
