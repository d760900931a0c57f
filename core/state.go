package session

// TurnState tracks the lifecycle of the single in-flight turn.
//
// Idle -> Starting on an invoke, Starting -> Active when the backend accepts
// the turn. Ending a turn drops straight back to Idle: no ended session is
// ever retained, so there is no observable terminal state between the two.
type TurnState int

const (
	StateIdle TurnState = iota
	StateStarting
	StateActive
)

func (s TurnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	}
	return "unknown"
}
