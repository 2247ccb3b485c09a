package session

// QuestionState is the per-question position in the submission flow.
// Submitted is terminal within a session.
type QuestionState int

const (
	Unanswered QuestionState = iota
	Selected
	Submitted
)

func (s QuestionState) String() string {
	switch s {
	case Unanswered:
		return "unanswered"
	case Selected:
		return "selected"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// SessionState is the overall session position. Finished is one-directional:
// only a restart produces a fresh Active session.
type SessionState int

const (
	Active SessionState = iota
	Finished
)

func (s SessionState) String() string {
	if s == Finished {
		return "finished"
	}
	return "active"
}

// canSelect reports whether a selection transition is allowed.
func canSelect(qs QuestionState, ss SessionState) bool {
	return ss == Active && qs != Submitted
}

// canSubmit reports whether a submission transition is allowed.
// A submission requires an existing selection.
func canSubmit(qs QuestionState, ss SessionState) bool {
	return ss == Active && qs == Selected
}
