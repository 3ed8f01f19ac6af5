package domain

// State is the clocked-in flag, always derivable from the persisted rows.
type State int

const (
	ClockedOut State = iota
	ClockedIn
)

// String returns the display state shown to the user.
func (s State) String() string {
	if s == ClockedIn {
		return "Clocked in"
	}
	return "Clocked out"
}

// Action returns the label of the action that toggles away from s.
func (s State) Action() string {
	if s == ClockedIn {
		return "Clock Out"
	}
	return "Clock In"
}

// StateOf maps an open-session check to a State.
func StateOf(open bool) State {
	if open {
		return ClockedIn
	}
	return ClockedOut
}
