package model //import "github.com/openleaf/openleaf/model"

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// Job is a unit of background work: after an upload the book file is
// analyzed off the request path for its page count and cover.
type Job struct {
	ID     int
	UserID int32
	BookID int
	Path   string
	Type   string
	Status string
}

type JobList []Job

func (j JobList) Len() int {
	return len(j)
}
