package dataset

import (
	"context"

	"github.com/enersim/simprof/internal/storageutil"
)

type (
	ReadJob struct {
		Ctx     context.Context
		Storage storageutil.ObjectHandler
		Key     string
		Name    string
		Result  chan<- storageutil.ReadJobResult
	}

	ReadJobResult struct {
		Err     error
		Name    string
		Dataset Dataset
	}
)

func (job ReadJob) Read() {
	var d Dataset

	err := storageutil.UnmarshalCompressed(job.Ctx, job.Storage, job.Key, &d)

	job.Result <- ReadJobResult{
		Err:     err,
		Name:    job.Name,
		Dataset: d,
	}
}

func (result ReadJobResult) Error() error {
	return result.Err
}
