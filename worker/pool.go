package worker // import "github.com/openleaf/openleaf/worker"

import (
	"github.com/openleaf/openleaf/model"
)

type WorkPool interface {
	Push(job model.Job)
}
