package sim

import "strings"

type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
)

type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

var keyNames = map[Key]string{
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyEscape: "escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey maps a key name ("up", "w", "escape", ...) to a Key.
func ParseKey(name string) Key {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "w":
		return KeyUp
	case "down", "s":
		return KeyDown
	case "left", "a":
		return KeyLeft
	case "right", "d":
		return KeyRight
	case "escape", "esc":
		return KeyEscape
	}
	return KeyUnknown
}

type Event struct {
	Kind EventKind
	Key  Key
}

func Quit() Event {
	return Event{Kind: EventQuit}
}

func KeyPress(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// InputSource yields the events that arrived since the previous poll.
type InputSource interface {
	Poll() []Event
}
