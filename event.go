package inkwell

import "time"

// Event is any input or application event travelling through the view tree.
// The set of variants is closed: only types declared in this package
// implement it. Events carry no identity and are passed by value.
type Event interface {
	isEvent()
}

// FingerStatus is the phase of a finger (or mouse button) contact.
type FingerStatus uint8

const (
	FingerDown FingerStatus = iota
	FingerMotion
	FingerUp
)

func (s FingerStatus) String() string {
	switch s {
	case FingerDown:
		return "down"
	case FingerMotion:
		return "motion"
	case FingerUp:
		return "up"
	default:
		return "unknown"
	}
}

// --- Device events ---

// FingerEvent is a raw contact reported by the touch panel.
type FingerEvent struct {
	ID       int
	Status   FingerStatus
	Position Point
	Time     time.Duration
}

// RotateScreenEvent asks for the screen to be rotated to Rotation (0-3).
type RotateScreenEvent struct {
	Rotation int
}

// NetUpEvent reports that the network became reachable.
type NetUpEvent struct{}

// --- Gestures ---

// TapEvent is a short contact that didn't move past the dead zone.
type TapEvent struct {
	Center Point
}

// HoldFingerEvent is a long contact that didn't move past the dead zone.
type HoldFingerEvent struct {
	Position Point
}

// SwipeEvent is a contact that moved past the dead zone before lifting.
type SwipeEvent struct {
	Dir   Dir
	Start Point
	End   Point
}

// --- Application events ---

// ClockTickEvent is sent periodically so clocks can refresh.
type ClockTickEvent struct{}

// FrontlightTickEvent advances a running frontlight ramp.
type FrontlightTickEvent struct{}

// NotifyEvent shows a transient notification with Text.
type NotifyEvent struct {
	Text string
}

// CloseEvent removes the top-level child identified by ViewID.
type CloseEvent struct {
	ViewID ViewID
}

// ShowEvent brings up the view identified by ViewID.
type ShowEvent struct {
	ViewID ViewID
}

// ToggleNearEvent opens (or closes, if already open) the view identified by
// ViewID next to Rect.
type ToggleNearEvent struct {
	ViewID ViewID
	Rect   Rectangle
}

// SelectEvent reports that a menu entry was chosen.
type SelectEvent struct {
	Entry EntryID
}

// UpdateEvent requests a whole-screen refresh using Mode.
type UpdateEvent struct {
	Mode UpdateMode
}

// SetWifiEvent turns the radio on or off.
type SetWifiEvent struct {
	Enable bool
}

// ToggleFrontlightEvent switches the frontlight on or off.
type ToggleFrontlightEvent struct{}

// ScreenshotEvent saves the panel content with an optional Label.
type ScreenshotEvent struct {
	Label string
}

// BackEvent returns to the previous top-level view.
type BackEvent struct{}

// ReseedEvent tells a view that became visible again to repaint itself.
type ReseedEvent struct{}

// ValidateEvent confirms a dialog.
type ValidateEvent struct{}

// CancelEvent dismisses a dialog.
type CancelEvent struct{}

func (FingerEvent) isEvent()           {}
func (RotateScreenEvent) isEvent()     {}
func (NetUpEvent) isEvent()            {}
func (TapEvent) isEvent()              {}
func (HoldFingerEvent) isEvent()       {}
func (SwipeEvent) isEvent()            {}
func (ClockTickEvent) isEvent()        {}
func (FrontlightTickEvent) isEvent()   {}
func (NotifyEvent) isEvent()           {}
func (CloseEvent) isEvent()            {}
func (ShowEvent) isEvent()             {}
func (ToggleNearEvent) isEvent()       {}
func (SelectEvent) isEvent()           {}
func (UpdateEvent) isEvent()           {}
func (SetWifiEvent) isEvent()          {}
func (ToggleFrontlightEvent) isEvent() {}
func (ScreenshotEvent) isEvent()       {}
func (BackEvent) isEvent()             {}
func (ReseedEvent) isEvent()           {}
func (ValidateEvent) isEvent()         {}
func (CancelEvent) isEvent()           {}

// ViewID names the well-known views the application opens and closes by
// identity rather than by widget ID.
type ViewID uint8

const (
	ViewNone ViewID = iota
	ViewHome
	ViewTopBar
	ViewClockMenu
	ViewMainMenu
	ViewFrontlight
	ViewAboutDialog
	ViewMessageNotif
	ViewScreenshotNotif
	ViewNetUpNotif
	ViewLowBatteryNotif
)

var viewIDNames = [...]string{
	ViewNone:            "none",
	ViewHome:            "home",
	ViewTopBar:          "top-bar",
	ViewClockMenu:       "clock-menu",
	ViewMainMenu:        "main-menu",
	ViewFrontlight:      "frontlight",
	ViewAboutDialog:     "about-dialog",
	ViewMessageNotif:    "message-notif",
	ViewScreenshotNotif: "screenshot-notif",
	ViewNetUpNotif:      "net-up-notif",
	ViewLowBatteryNotif: "low-battery-notif",
}

func (v ViewID) String() string {
	if int(v) < len(viewIDNames) {
		return viewIDNames[v]
	}
	return "unknown"
}

// EntryKind identifies a menu command.
type EntryKind uint8

const (
	EntryRotate EntryKind = iota
	EntryToggleInverted
	EntryToggleMonochrome
	EntryTakeScreenshot
	EntryToggleWifi
	EntryToggleFrontlight
	EntryAbout
	EntryRefresh
	EntryQuit
)

var entryKindNames = [...]string{
	EntryRotate:           "rotate",
	EntryToggleInverted:   "toggle-inverted",
	EntryToggleMonochrome: "toggle-monochrome",
	EntryTakeScreenshot:   "take-screenshot",
	EntryToggleWifi:       "toggle-wifi",
	EntryToggleFrontlight: "toggle-frontlight",
	EntryAbout:            "about",
	EntryRefresh:          "refresh",
	EntryQuit:             "quit",
}

func (k EntryKind) String() string {
	if int(k) < len(entryKindNames) {
		return entryKindNames[k]
	}
	return "unknown"
}

// EntryID is the payload of a SelectEvent. Value carries the argument of
// parameterised commands (the rotation for EntryRotate).
type EntryID struct {
	Kind  EntryKind
	Value int
}

// Entry returns the EntryID of a command without argument.
func Entry(kind EntryKind) EntryID {
	return EntryID{Kind: kind}
}

// Rotate returns the EntryID that rotates the screen to n.
func Rotate(n int) EntryID {
	return EntryID{Kind: EntryRotate, Value: n}
}
