// Package desktop tracks the GovOS window set: open state, z-order, focus and
// dragging. It performs no I/O; timed effects are scheduled as events and
// fired by Advance.
package desktop

import "fmt"

// AppID identifies one of the fixed desktop applications.
type AppID string

const (
	Portal     AppID = "minwon24"
	Excel      AppID = "excel"
	Messenger  AppID = "messenger"
	Browser    AppID = "browser"
	Mail       AppID = "mail"
	Notepad    AppID = "notepad"
	Music      AppID = "music"
	Calculator AppID = "calculator"
	Files      AppID = "files"
	System     AppID = "system"
)

// ParseAppID validates s against the known applications.
func ParseAppID(s string) (AppID, error) {
	id := AppID(s)
	for _, w := range initialWindows {
		if w.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown app %q", s)
}

// Point is a pointer or window-origin position in desktop pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Window is one entry in the window list.
type Window struct {
	ID        AppID  `json:"id"`
	Title     string `json:"title"`
	Open      bool   `json:"open"`
	Minimized bool   `json:"minimized"`
	Z         int    `json:"z"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// Origin returns the window's top-left corner.
func (w Window) Origin() Point { return Point{X: w.X, Y: w.Y} }

// Visible reports whether the window is drawn on the desktop.
func (w Window) Visible() bool { return w.Open && !w.Minimized }

// System has no window of its own until opened from the start menu, so it
// sits at the back of the initial stack.
var initialWindows = []Window{
	{ID: Portal, Title: "새올행정시스템", Z: 10, X: 50, Y: 30},
	{ID: Excel, Title: "한셀 2024", Z: 11, X: 100, Y: 60},
	{ID: Messenger, Title: "바로톡", Z: 12, X: 800, Y: 100},
	{ID: Browser, Title: "인터넷", Z: 13, X: 150, Y: 150},
	{ID: Mail, Title: "공직자메일", Z: 14, X: 200, Y: 200},
	{ID: Notepad, Title: "메모장", Z: 15, X: 900, Y: 200},
	{ID: Music, Title: "K-Melon", Z: 16, X: 900, Y: 500},
	{ID: Calculator, Title: "계산기", Z: 17, X: 400, Y: 300},
	{ID: Files, Title: "내 컴퓨터", Z: 18, X: 300, Y: 100},
	{ID: System, Title: "시스템 정보", Z: 9, X: 250, Y: 120},
}

// Apps lists the application ids in taskbar order.
func Apps() []AppID {
	out := make([]AppID, len(initialWindows))
	for i, w := range initialWindows {
		out[i] = w.ID
	}
	return out
}
