package buildpipeline

import "time"

// Stage describes a high-level pipeline phase of one file.
type Stage string

const (
	// StageLoad reads the file or finds it in the disk cache.
	StageLoad Stage = "load"
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageQuery answers the requests the printer needs.
	StageQuery Stage = "query"
	// StagePrint renders the interface text.
	StagePrint Stage = "print"
)

// Stages lists the stages in pipeline order.
func Stages() []Stage {
	return []Stage{StageLoad, StageParse, StageQuery, StagePrint}
}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusCached marks a file answered from the disk cache.
	StatusCached Status = "cached"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Finished reports whether no further events follow for the file.
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusCached || s == StatusError
}

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: files are processed in parallel.
type ProgressSink interface {
	OnEvent(Event)
}
