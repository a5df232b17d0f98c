// Package inkwell is the view and refresh core of an e-reader shell.
//
// Inkwell keeps the screen as a tree of [View] values, routes input events
// through that tree and schedules partial refreshes of an e-ink panel so that
// regions are never redrawn while a previous refresh of the same area is
// still in flight.
//
// # Quick start
//
// The in-memory [MemoryFramebuffer] stands in for a real panel. [NewApp]
// creates the home screen on top of it and [App.Run] drives the loop:
//
//	fb := inkwell.NewMemoryFramebuffer(600, 800)
//	ctx := inkwell.NewContext(fb, inkwell.DefaultSettings(), nil, nil)
//	app := inkwell.NewApp(ctx)
//	if err := app.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// The inkwell/emulator package shows the framebuffer in a window and turns
// the mouse into finger events.
//
// # View tree
//
// Every view embeds [Base], which stores its identifier, rectangle and
// children. Children are ordered back to front: the last child is on top.
// Identifiers come from an [IDFeeder] and never repeat, so a render request
// naming a view that has since been closed is simply dropped.
//
// # Events
//
// [HandleEvent] offers an event to the topmost child first. A child that
// captures it stops the search; events a child pushes on the bus are offered
// to its parent before they bubble further up. Events left on the root bus
// are routed again at the start of the next loop iteration. Workers post to
// the loop through the [Hub]; events from one sender keep their order.
//
// # Refreshing
//
// Views never paint directly. They add [RenderData] to a [RenderQueue];
// [ProcessRenderQueue] groups the requests by refresh mode, paints the views
// the requests name, merges overlapping regions and issues one panel update
// per merged rectangle. When a request asks for it, refreshes still in
// flight over the same area are waited on first.
//
// # Gestures
//
// Raw [FingerEvent] values go through a [GestureRecognizer] that adds
// [TapEvent], [HoldFingerEvent] and [SwipeEvent]. Scripted sessions can be
// replayed with [LoadScript] and the App's Inject methods.
package inkwell
