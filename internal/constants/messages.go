package constants

// StatusMsg surfaces a transient, non-blocking notice in the TUI status
// line. Components emit it for partial fetch failures so a broken data
// source never takes the view down with it.
type StatusMsg struct {
	Text    string
	IsError bool
}

// SessionExpiredMsg is emitted when the backend rejects the stored token.
// The root model switches to the re-login notice; the token itself is
// only removed by an explicit logout.
type SessionExpiredMsg struct{}
