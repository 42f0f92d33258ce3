package compare

import (
	"context"
	"errors"
	"sort"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/storageutil"
)

// DatasetRef identifies a stored dataset to load for a comparison.
type DatasetRef struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// GatherMeasurements loads the referenced datasets through the shared
// read worker pool and returns them ordered by name. A reference to a
// missing object fails the whole gather.
func GatherMeasurements(
	ctx context.Context,
	store storageutil.ObjectHandler,
	refs []DatasetRef,
	jobs chan<- storageutil.ReadJob,
) ([]Measurement, error) {
	results := make(chan storageutil.ReadJobResult, len(refs))
	defer close(results)

	for _, ref := range refs {
		jobs <- dataset.ReadJob{
			Ctx:     ctx,
			Storage: store,
			Key:     ref.Key,
			Name:    ref.Name,
			Result:  results,
		}
	}

	var firstErr error
	measurements := make([]Measurement, 0, len(refs))
	for i := 0; i < len(refs); i++ {
		res := (<-results).(dataset.ReadJobResult)
		if res.Err != nil {
			if firstErr == nil || errors.Is(res.Err, storageutil.ErrObjectNotFound) {
				firstErr = res.Err
			}
			continue
		}
		measurements = append(measurements, Measurement{Name: res.Name, Dataset: res.Dataset})
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// Results arrive in completion order.
	sort.Slice(measurements, func(i, j int) bool {
		return measurements[i].Name < measurements[j].Name
	})
	return measurements, nil
}
