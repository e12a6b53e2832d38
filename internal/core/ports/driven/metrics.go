package driven

// Metrics records workspace engine activity.
type Metrics interface {
	PollTick()
	FileChanged()
	WatchError()
	ContentLoaded()
	ContentFailed()
	StaleContentDiscarded()
}
