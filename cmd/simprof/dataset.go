package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/segmentio/kafka-go"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/errorutil"
	"github.com/enersim/simprof/internal/httputil"
	"github.com/enersim/simprof/internal/scenario"
	"github.com/enersim/simprof/internal/storageutil"
)

func (e *environment) postDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	s := sentry.StartSpan(ctx, "processing")
	s.Description = "Read HTTP body"
	body, err := io.ReadAll(r.Body)
	s.Finish()
	if err != nil {
		hub.CaptureException(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var d dataset.Dataset
	s = sentry.StartSpan(ctx, "json.unmarshal")
	s.Description = "Unmarshal dataset"
	err = json.Unmarshal(body, &d)
	s.Finish()
	if err != nil {
		hub.CaptureException(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if len(d.Functions) == 0 || d.Scenario == "" {
		hub.CaptureException(errorutil.ErrDatasetMalformed)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	e.storeDataset(w, r, d)
}

// postDatasetImport fetches a dataset from a remote URL and stores it
// under this instance.
func (e *environment) postDatasetImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	params, logger, ok := httputil.GetRequiredQueryParameters(w, r, "url")
	if !ok {
		return
	}
	logger.Info().Msg("importing remote dataset")

	s := sentry.StartSpan(ctx, "http.client")
	s.Description = "Fetch remote dataset"
	d, err := e.fetch.FetchDataset(ctx, params["url"])
	s.Finish()
	if err != nil {
		hub.CaptureException(err)
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	if len(d.Functions) == 0 || d.Scenario == "" {
		hub.CaptureException(errorutil.ErrDatasetMalformed)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	e.storeDataset(w, r, d)
}

// postGenerateDataset fabricates a dataset for the requested scenario
// and stores it. The seed query parameter makes runs reproducible.
func (e *environment) postGenerateDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)
	ps := httprouter.ParamsFromContext(ctx)

	seed, ok := seedFromRequest(w, r)
	if !ok {
		return
	}

	rng := scenario.NewRand(seed)
	now := time.Now().UTC()

	var d dataset.Dataset
	s := sentry.StartSpan(ctx, "processing")
	s.Description = "Generate dataset"
	switch name := ps.ByName("scenario"); name {
	case scenario.Baseline:
		d = scenario.GenerateBaseline(rng, now)
	case scenario.Contended:
		d = scenario.GenerateContended(rng, now)
	case scenario.Multithreaded:
		d = scenario.GenerateMultithreaded(rng, now)
	case scenario.Hybrid:
		d = scenario.GenerateHybrid(rng, now)
	default:
		s.Finish()
		hub.Scope().SetTag("scenario", name)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	s.Finish()

	d.ID = uuid.New().String()
	e.storeDataset(w, r, d)
}

// storeDataset writes a dataset to storage, announces it on Kafka and
// responds with its coordinates.
func (e *environment) storeDataset(w http.ResponseWriter, r *http.Request, d dataset.Dataset) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	hub.Scope().SetContext("Dataset metadata", map[string]interface{}{
		"dataset_id": d.ID,
		"scenario":   d.Scenario,
		"functions":  len(d.Functions),
	})

	s := sentry.StartSpan(ctx, "storage.write")
	s.Description = "Write dataset to storage"
	err := storageutil.CompressedWrite(ctx, e.store, dataset.StoragePath(d.Scenario, d.ID), d)
	s.Finish()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// This is a transient error, we'll retry
			w.WriteHeader(http.StatusTooManyRequests)
		} else {
			hub.CaptureException(err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	s = sentry.StartSpan(ctx, "json.marshal")
	s.Description = "Marshal dataset Kafka message"
	b, err := json.Marshal(buildDatasetKafkaMessage(d, time.Now().UTC()))
	s.Finish()
	if err != nil {
		hub.CaptureException(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s = sentry.StartSpan(ctx, "processing")
	s.Description = "Send dataset to Kafka"
	err = e.datasetsWriter.WriteMessages(ctx, kafka.Message{
		Value: b,
	})
	s.Finish()
	if err != nil {
		hub.CaptureException(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(struct {
		ID       string `json:"id"`
		Scenario string `json:"scenario"`
	}{ID: d.ID, Scenario: d.Scenario})
}

func (e *environment) getDataset(w http.ResponseWriter, r *http.Request) {
	d, ok := e.readDataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, d)
}

func (e *environment) getDatasetSummary(w http.ResponseWriter, r *http.Request) {
	d, ok := e.readDataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, d.Summary)
}

func (e *environment) readDataset(w http.ResponseWriter, r *http.Request) (dataset.Dataset, bool) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)
	ps := httprouter.ParamsFromContext(ctx)
	scenarioName := ps.ByName("scenario")
	datasetID := ps.ByName("dataset_id")

	hub.Scope().SetTags(map[string]string{
		"scenario":   scenarioName,
		"dataset_id": datasetID,
	})

	var d dataset.Dataset
	s := sentry.StartSpan(ctx, "storage.read")
	s.Description = "Read dataset from storage"
	err := storageutil.UnmarshalCompressed(ctx, e.store, dataset.StoragePath(scenarioName, datasetID), &d)
	s.Finish()
	if err != nil {
		if errors.Is(err, storageutil.ErrObjectNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return d, false
		}
		hub.CaptureException(err)
		w.WriteHeader(http.StatusInternalServerError)
		return d, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	s := sentry.StartSpan(ctx, "json.marshal")
	defer s.Finish()
	b, err := json.Marshal(v)
	if err != nil {
		hub.CaptureException(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
