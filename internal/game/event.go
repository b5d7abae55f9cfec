package game

import "fmt"

// EventKind identifies what a move produced.
type EventKind int

// Kinds are listed in display precedence: when several fire on one move the
// later kind's message is shown.
const (
	EventNone EventKind = iota
	EventIgnored
	EventBlocked
	EventLocked
	EventMoved
	EventDoorUnlocked
	EventStairsDown
	EventStairsUp
	EventWon
	EventKeyFound
	EventTrap
)

// String returns a short name for logs and traces.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventIgnored:
		return "ignored"
	case EventBlocked:
		return "blocked"
	case EventLocked:
		return "locked"
	case EventMoved:
		return "moved"
	case EventDoorUnlocked:
		return "door_unlocked"
	case EventStairsDown:
		return "stairs_down"
	case EventStairsUp:
		return "stairs_up"
	case EventWon:
		return "won"
	case EventKeyFound:
		return "key_found"
	case EventTrap:
		return "trap"
	default:
		return "unknown"
	}
}

// Event is the outcome of one move together with its status text.
type Event struct {
	Kind    EventKind
	Message string
}

// Status messages.
const (
	msgWelcome = "Use arrow keys to move. Find the exit!"
	msgBlocked = "You hit a wall!"
	msgLocked  = "The door is locked! You need a key."
	msgDoor    = "You unlocked the door! +%d points"
	msgKey     = "You found a key! +%d points"
	msgTrap    = "It's a trap! Back to the start. -%d points"
)

func movedMessage(level, levels, score int) string {
	return fmt.Sprintf("Level: %d/%d | Score: %d", level+1, levels, score)
}

func stairsDownMessage(level, bonus int) string {
	return fmt.Sprintf("You went down stairs to level %d... +%d points", level+1, bonus)
}

func stairsUpMessage(level int) string {
	return fmt.Sprintf("You went up stairs to level %d...", level+1)
}

func wonMessage(score int) string {
	return fmt.Sprintf("You reached the exit! Final Score: %d | Press [ENTER] to play again.", score)
}

// eventChain collects the events of one move in the order they fire.
// Only the last one is surfaced.
type eventChain []Event

func (c *eventChain) add(kind EventKind, msg string) {
	*c = append(*c, Event{Kind: kind, Message: msg})
}

// last returns the most recent event with a message.
func (c eventChain) last() Event {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Message != "" {
			return c[i]
		}
	}
	return Event{Kind: EventNone}
}
