package tutor

import (
	sess "github.com/rasingollam/AI-Tutor/internal/tutor"
)

// planReadyMsg carries a freshly started session.
type planReadyMsg struct {
	Session *sess.Session
}

// planFailedMsg carries a step generation failure.
type planFailedMsg struct {
	Err error
}

// eventResultMsg carries the outcome of a submit/hint/explain/quit event.
type eventResultMsg struct {
	Resp *sess.Response
	Err  error
}
