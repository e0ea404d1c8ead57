package suite

import "time"

// Status captures the state of one case.
type Status string

const (
	// StatusQueued indicates the case is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusRunning indicates the harness is running the case.
	StatusRunning Status = "running"
	StatusPass    Status = "pass"
	StatusCached  Status = "cached"  // passed in an earlier run with identical inputs
	StatusUpdated Status = "updated" // golden file rewritten
	StatusFail    Status = "fail"
	StatusError   Status = "error" // the case could not be run at all
)

// Done reports whether the status is final.
func (s Status) Done() bool {
	switch s {
	case StatusPass, StatusCached, StatusUpdated, StatusFail, StatusError:
		return true
	}
	return false
}

// Failed reports whether the status counts toward the suite exit code.
func (s Status) Failed() bool {
	return s == StatusFail || s == StatusError
}

// Event reports progress for a case (or for the whole suite when Case is empty).
type Event struct {
	Case    string
	Status  Status
	Detail  string
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
