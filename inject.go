package inkwell

// post blocks until evt is queued on the input channel or Run has returned.
func (a *App) post(evt FingerEvent) {
	select {
	case a.input <- evt:
	case <-a.stopped:
	}
}

// InjectPress posts a synthetic finger down at (x, y) on the device input
// channel, exactly like a real contact.
func (a *App) InjectPress(x, y int) {
	a.post(FingerEvent{Status: FingerDown, Position: Pt(x, y), Time: a.Uptime()})
}

// InjectMove posts a synthetic finger motion to (x, y). Use it between
// InjectPress and InjectRelease to simulate a swipe.
func (a *App) InjectMove(x, y int) {
	a.post(FingerEvent{Status: FingerMotion, Position: Pt(x, y), Time: a.Uptime()})
}

// InjectRelease posts a synthetic finger up at (x, y).
func (a *App) InjectRelease(x, y int) {
	a.post(FingerEvent{Status: FingerUp, Position: Pt(x, y), Time: a.Uptime()})
}

// InjectTap is a press followed by a release at the same point.
func (a *App) InjectTap(x, y int) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectSwipe posts a press at from, steps linearly interpolated motions and
// a release at to.
func (a *App) InjectSwipe(from, to Point, steps int) {
	a.InjectPress(from.X, from.Y)
	for i := 1; i <= steps; i++ {
		x := from.X + (to.X-from.X)*i/(steps+1)
		y := from.Y + (to.Y-from.Y)*i/(steps+1)
		a.InjectMove(x, y)
	}
	a.InjectRelease(to.X, to.Y)
}
