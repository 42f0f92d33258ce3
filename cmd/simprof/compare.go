package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"

	"github.com/enersim/simprof/internal/chart"
	"github.com/enersim/simprof/internal/compare"
	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/errorutil"
	"github.com/enersim/simprof/internal/storageutil"
)

type (
	datasetRef struct {
		// Name labels the measurement in results and charts. It
		// defaults to the dataset's scenario.
		Name     string `json:"name,omitempty"`
		Scenario string `json:"scenario"`
		ID       string `json:"id"`
	}

	postCompareBody struct {
		Baseline     datasetRef   `json:"baseline"`
		Measurements []datasetRef `json:"measurements"`
	}

	comparisonResult struct {
		compare.Comparison
		Stats   compare.Stats   `json:"stats"`
		Verdict compare.Verdict `json:"verdict"`
	}

	postCompareResponse struct {
		Functions   []string           `json:"functions"`
		Comparisons []comparisonResult `json:"comparisons"`
	}
)

func (e *environment) postCompare(w http.ResponseWriter, r *http.Request) {
	comparisons, functions, ok := e.runComparison(w, r)
	if !ok {
		return
	}

	response := postCompareResponse{
		Functions:   functions,
		Comparisons: make([]comparisonResult, 0, len(comparisons)),
	}
	for _, c := range comparisons {
		response.Comparisons = append(response.Comparisons, comparisonResult{
			Comparison: c,
			Stats:      c.Stats(),
			Verdict:    compare.Classify(c.OverallRatio),
		})
	}
	writeJSON(w, r, response)
}

func (e *environment) postCompareChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	deviationBars := false
	if raw := r.URL.Query().Get("deviation_bars"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "deviation_bars must be a boolean", http.StatusBadRequest)
			return
		}
		deviationBars = v
	}

	comparisons, _, ok := e.runComparison(w, r)
	if !ok {
		return
	}

	s := sentry.StartSpan(ctx, "processing")
	s.Description = "Render comparison grid"
	w.Header().Set("Content-Type", "image/png")
	err := chart.RenderGrid(w, comparisons, chart.Options{DeviationBars: deviationBars})
	s.Finish()
	if err != nil {
		hub.CaptureException(err)
	}
}

// runComparison decodes the request, gathers every referenced dataset
// from storage and compares them against the baseline.
func (e *environment) runComparison(w http.ResponseWriter, r *http.Request) ([]compare.Comparison, []string, bool) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	var body postCompareBody
	s := sentry.StartSpan(ctx, "processing")
	s.Description = "Decoding data"
	err := json.NewDecoder(r.Body).Decode(&body)
	s.Finish()
	if err != nil {
		hub.CaptureException(err)
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}
	if len(body.Measurements) == 0 {
		http.Error(w, "expected at least one measurement", http.StatusBadRequest)
		return nil, nil, false
	}

	var baselineDataset dataset.Dataset
	s = sentry.StartSpan(ctx, "storage.read")
	s.Description = "Read baseline dataset"
	err = storageutil.UnmarshalCompressed(
		ctx,
		e.store,
		dataset.StoragePath(body.Baseline.Scenario, body.Baseline.ID),
		&baselineDataset,
	)
	s.Finish()
	if err != nil {
		if errors.Is(err, storageutil.ErrObjectNotFound) {
			w.WriteHeader(http.StatusNotFound)
		} else {
			hub.CaptureException(err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return nil, nil, false
	}

	refs := make([]compare.DatasetRef, 0, len(body.Measurements))
	for _, m := range body.Measurements {
		name := m.Name
		if name == "" {
			name = m.Scenario
		}
		refs = append(refs, compare.DatasetRef{
			Name: name,
			Key:  dataset.StoragePath(m.Scenario, m.ID),
		})
	}

	s = sentry.StartSpan(ctx, "storage.read")
	s.Description = "Gather measurement datasets"
	measurements, err := compare.GatherMeasurements(ctx, e.store, refs, e.readJobs)
	s.Finish()
	if err != nil {
		if errors.Is(err, storageutil.ErrObjectNotFound) {
			w.WriteHeader(http.StatusNotFound)
		} else if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusTooManyRequests)
		} else {
			hub.CaptureException(err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return nil, nil, false
	}

	s = sentry.StartSpan(ctx, "processing")
	s.Description = "Compare datasets"
	comparisons, functions, err := compare.Compare(baselineDataset, measurements)
	s.Finish()
	if err != nil {
		if errors.Is(err, errorutil.ErrNoCommonFunctions) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			hub.CaptureException(err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return nil, nil, false
	}
	return comparisons, functions, true
}
