package coldstart

import "time"

// Phase is the lifecycle position of one onboarding attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseAwaitingResponse
	PhaseSubmitting
	PhaseComplete
	PhaseRefining
)

// String returns the lowercase phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhaseAwaitingResponse:
		return "awaiting_response"
	case PhaseSubmitting:
		return "submitting"
	case PhaseComplete:
		return "complete"
	case PhaseRefining:
		return "refining"
	default:
		return "unknown"
	}
}

// Session captures one client-identified onboarding conversation.
// Questions are fixed once init succeeds; Index is always a valid index into
// Questions while the session is live, and equals len(Questions) only at the
// instant completion is observed.
type Session struct {
	ID        string    `json:"id"`
	Questions []string  `json:"questions"`
	Index     int       `json:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

// CurrentQuestion returns the question the user is being asked, or "" when
// the list is empty or exhausted.
func (s Session) CurrentQuestion() string {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return ""
	}
	return s.Questions[s.Index]
}
