package core

// Key is a logical directional key, abstracted from physical key codes.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Keys lists the logical keys in evaluation order.
var Keys = [...]Key{KeyLeft, KeyRight, KeyUp, KeyDown}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// KeyState holds the "held" flag of every logical key.
// It is mutated only through Set and read by the simulation update.
type KeyState struct {
	held [KeyDown + 1]bool
}

// Set records whether key is held. Unknown keys are ignored.
func (s *KeyState) Set(key Key, pressed bool) {
	if key <= KeyNone || key > KeyDown {
		return
	}
	s.held[key] = pressed
}

// Held reports whether key is currently held.
func (s *KeyState) Held(key Key) bool {
	if key <= KeyNone || key > KeyDown {
		return false
	}
	return s.held[key]
}

// Reset releases every key.
func (s *KeyState) Reset() {
	s.held = [KeyDown + 1]bool{}
}

// EventKind identifies a platform event.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventQuit
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is a platform input or window event.
type Event struct {
	Kind EventKind
	Key  Key // Set for KeyDown and KeyUp
}

// KeyDownEvent returns a KeyDown event for key.
func KeyDownEvent(key Key) Event {
	return Event{Kind: EventKeyDown, Key: key}
}

// KeyUpEvent returns a KeyUp event for key.
func KeyUpEvent(key Key) Event {
	return Event{Kind: EventKeyUp, Key: key}
}

// QuitEvent returns a Quit event.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// Dispatch applies ev to the key state.
// Returns true if the event is a quit request.
func Dispatch(ev Event, keys *KeyState) (quit bool) {
	switch ev.Kind {
	case EventKeyDown:
		keys.Set(ev.Key, true)
	case EventKeyUp:
		keys.Set(ev.Key, false)
	case EventQuit:
		return true
	}
	return false
}
