package domain

import "time"

// SessionToken identifies one poll session. Zero means no session.
type SessionToken uint64

// WatchEntry records the last observed modification time of a watched path.
type WatchEntry struct {
	Path string

	// LastSeen is the baseline compared against on the next poll.
	// The zero value means no baseline has been recorded.
	LastSeen time.Time
}

// HasBaseline reports whether a timestamp has been recorded for the path.
func (e WatchEntry) HasBaseline() bool {
	return !e.LastSeen.IsZero()
}

// FileChange is raised when a watched path's timestamp increases.
type FileChange struct {
	// Session is the poll session that observed the change.
	Session SessionToken

	Path     string
	Previous time.Time
	Current  time.Time
}
