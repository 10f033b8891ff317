package desktop

import (
	"time"

	dErrors "govos/pkg/domain-errors"
)

// Desktop is the window-manager state. It is owned by a single session and
// mutated only through its methods.
type Desktop struct {
	windows   []Window
	active    AppID
	startMenu bool

	dragging   AppID
	dragOffset Point

	portalLoading bool
	timers        Schedule
}

// New returns the desktop with every window closed.
func New() *Desktop {
	return &Desktop{windows: append([]Window(nil), initialWindows...)}
}

// Clone returns an independent copy, pending timers included.
func (d *Desktop) Clone() *Desktop {
	c := *d
	c.windows = append([]Window(nil), d.windows...)
	c.timers = d.timers.Clone()
	return &c
}

// Snapshot is a read-only copy of the desktop for rendering.
type Snapshot struct {
	Windows       []Window `json:"windows"`
	Active        AppID    `json:"active,omitempty"`
	StartMenuOpen bool     `json:"start_menu_open"`
	Dragging      AppID    `json:"dragging,omitempty"`
	PortalLoading bool     `json:"portal_loading"`
}

func (d *Desktop) Snapshot() Snapshot {
	return Snapshot{
		Windows:       append([]Window(nil), d.windows...),
		Active:        d.active,
		StartMenuOpen: d.startMenu,
		Dragging:      d.dragging,
		PortalLoading: d.portalLoading,
	}
}

// Window returns a copy of the window entry for id.
func (d *Desktop) Window(id AppID) (Window, bool) {
	if i := d.index(id); i >= 0 {
		return d.windows[i], true
	}
	return Window{}, false
}

// Active returns the focused window, if any.
func (d *Desktop) Active() (AppID, bool) {
	return d.active, d.active != ""
}

// PortalLoading reports whether the portal is still in its security check.
func (d *Desktop) PortalLoading() bool { return d.portalLoading }

// Open opens or restores id and brings it to front. Opening the portal from
// closed starts the security check.
func (d *Desktop) Open(id AppID, now time.Time) error {
	i := d.index(id)
	if i < 0 {
		return unknownApp(id)
	}
	wasOpen := d.windows[i].Open
	d.windows[i].Open = true
	d.windows[i].Minimized = false
	d.raise(i)

	if id == Portal && !wasOpen {
		d.portalLoading = true
		d.timers.Cancel(SecurityCheckDone)
		d.timers.Add(SecurityCheckDone, now, SecurityCheckDelay)
	}
	return nil
}

// Close closes id and clears focus if it held it.
func (d *Desktop) Close(id AppID) error {
	i := d.index(id)
	if i < 0 {
		return unknownApp(id)
	}
	d.windows[i].Open = false
	if d.active == id {
		d.active = ""
	}
	if d.dragging == id {
		d.EndDrag()
	}
	return nil
}

// Minimize hides id. Focus is cleared whichever window held it.
func (d *Desktop) Minimize(id AppID) error {
	i := d.index(id)
	if i < 0 {
		return unknownApp(id)
	}
	if !d.windows[i].Open {
		return dErrors.Newf(dErrors.CodeInvalidState, "%s is not open", id)
	}
	d.windows[i].Minimized = true
	d.active = ""
	if d.dragging == id {
		d.EndDrag()
	}
	return nil
}

// Focus brings a visible window to front and makes it active.
func (d *Desktop) Focus(id AppID) error {
	i := d.index(id)
	if i < 0 {
		return unknownApp(id)
	}
	if !d.windows[i].Visible() {
		return dErrors.Newf(dErrors.CodeInvalidState, "%s is not visible", id)
	}
	d.raise(i)
	return nil
}

// Activate is the taskbar click: a minimized window is restored, any other
// window is focused.
func (d *Desktop) Activate(id AppID, now time.Time) error {
	w, ok := d.Window(id)
	if !ok {
		return unknownApp(id)
	}
	if w.Minimized || !w.Open {
		return d.Open(id, now)
	}
	return d.Focus(id)
}

// ToggleStartMenu flips the start menu.
func (d *Desktop) ToggleStartMenu() { d.startMenu = !d.startMenu }

// BeginDrag raises id and records the pointer offset from its origin.
func (d *Desktop) BeginDrag(id AppID, pointer Point) error {
	i := d.index(id)
	if i < 0 {
		return unknownApp(id)
	}
	if !d.windows[i].Visible() {
		return dErrors.Newf(dErrors.CodeInvalidState, "%s is not visible", id)
	}
	d.raise(i)
	d.dragging = id
	d.dragOffset = pointer.Sub(d.windows[i].Origin())
	return nil
}

// DragTo moves the dragged window so that the grab point follows pointer.
// It is a no-op when nothing is being dragged.
func (d *Desktop) DragTo(pointer Point) {
	if d.dragging == "" {
		return
	}
	i := d.index(d.dragging)
	origin := pointer.Sub(d.dragOffset)
	d.windows[i].X = origin.X
	d.windows[i].Y = origin.Y
}

// EndDrag releases the dragged window.
func (d *Desktop) EndDrag() {
	d.dragging = ""
	d.dragOffset = Point{}
}

// Advance fires desktop timers that are due at now and returns them.
func (d *Desktop) Advance(now time.Time) []Event {
	fired := d.timers.Due(now)
	for _, ev := range fired {
		if ev.Kind == SecurityCheckDone {
			d.portalLoading = false
		}
	}
	return fired
}

// NextTimer returns when the next desktop timer is due.
func (d *Desktop) NextTimer() (time.Time, bool) { return d.timers.NextAt() }

func (d *Desktop) raise(i int) {
	top := d.windows[0].Z
	for _, w := range d.windows[1:] {
		top = max(top, w.Z)
	}
	d.windows[i].Z = top + 1
	d.active = d.windows[i].ID
	d.startMenu = false
}

func (d *Desktop) index(id AppID) int {
	for i, w := range d.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func unknownApp(id AppID) error {
	return dErrors.Newf(dErrors.CodeNotFound, "unknown app %q", id)
}
