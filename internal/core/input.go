package core

// InputKind classifies an input event delivered by the host.
type InputKind int

const (
	InputNone      InputKind = iota
	InputDirection           // Arrow keys / WASD - steer or shift
	InputAction              // Mode-specific action (rotate, hard drop)
	InputPause               // P - toggle pause
	InputRestart             // R - restart after the game ended
)

// String returns a human-readable name for the input kind.
func (k InputKind) String() string {
	switch k {
	case InputNone:
		return "None"
	case InputDirection:
		return "Direction"
	case InputAction:
		return "Action"
	case InputPause:
		return "Pause"
	case InputRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// Action represents a semantic mode action, abstracted from physical key presses.
// Only the stacking mode reacts to actions; other modes ignore them.
type Action int

const (
	ActionNone     Action = iota
	ActionRotate          // Up / W in stacking mode
	ActionHardDrop        // Space
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "HardDrop"
	default:
		return "Unknown"
	}
}

// Input is a single raw input event after the host has mapped the physical key.
type Input struct {
	Kind   InputKind
	Dir    Direction // Set when Kind == InputDirection
	Action Action    // Set when Kind == InputAction
}

// DirectionInput builds a direction event.
func DirectionInput(d Direction) Input {
	return Input{Kind: InputDirection, Dir: d}
}

// ActionInput builds an action event.
func ActionInput(a Action) Input {
	return Input{Kind: InputAction, Action: a}
}

// PauseInput builds a pause-toggle event.
func PauseInput() Input {
	return Input{Kind: InputPause}
}

// RestartInput builds a restart event.
func RestartInput() Input {
	return Input{Kind: InputRestart}
}

// Valid reports whether the event is well formed. Malformed events are
// dropped by the engine without any visible effect.
func (in Input) Valid() bool {
	switch in.Kind {
	case InputDirection:
		return in.Dir.Valid()
	case InputAction:
		return in.Action == ActionRotate || in.Action == ActionHardDrop
	case InputPause, InputRestart:
		return true
	default:
		return false
	}
}
