package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/segmentio/kafka-go"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/scenario"
	"github.com/enersim/simprof/internal/storageprovider"
	"github.com/enersim/simprof/internal/storageutil"
	"github.com/enersim/simprof/internal/testutil"
)

var fileBlobBucket *blob.Bucket

func TestMain(m *testing.M) {
	temporaryDirectory, err := os.MkdirTemp(os.TempDir(), "simprof-datasets-*")
	if err != nil {
		log.Fatalf("couldn't create a temporary directory: %s", err.Error())
	}

	fileBlobBucket, err = blob.OpenBucket(context.Background(), "file://localhost/"+temporaryDirectory)
	if err != nil {
		log.Fatalf("couldn't open a local filesystem bucket: %s", err.Error())
	}

	code := m.Run()

	if err := fileBlobBucket.Close(); err != nil {
		log.Printf("couldn't close the local filesystem bucket: %s", err.Error())
	}

	err = os.RemoveAll(temporaryDirectory)
	if err != nil {
		log.Printf("couldn't remove the temporary directory: %s", err.Error())
	}

	os.Exit(code)
}

func newTestEnvironment() *environment {
	env := &environment{
		store:          &storageprovider.Blob{Bucket: fileBlobBucket},
		datasetsWriter: KafkaWriterMock{},
		readJobs:       make(chan storageutil.ReadJob),
	}
	for i := 0; i < 4; i++ {
		go func() {
			for job := range env.readJobs {
				job.Read()
			}
		}()
	}
	return env
}

func withHub(req *http.Request) *http.Request {
	return req.WithContext(sentry.SetHubOnContext(req.Context(), sentry.CurrentHub().Clone()))
}

func TestPostAndReadDataset(t *testing.T) {
	env := newTestEnvironment()
	defer close(env.readJobs)

	want := scenario.GenerateBaseline(scenario.NewRand(7), time.Unix(1700000000, 0).UTC())
	jsonValue, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}

	req := withHub(httptest.NewRequest(http.MethodPost, "/datasets", bytes.NewBuffer(jsonValue)))
	w := httptest.NewRecorder()

	env.postDataset(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status code 201. Found: %d", resp.StatusCode)
	}

	var created struct {
		ID       string `json:"id"`
		Scenario string `json:"scenario"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Scenario != scenario.Baseline {
		t.Fatalf("unexpected response: %+v", created)
	}

	var stored dataset.Dataset
	err = storageutil.UnmarshalCompressed(
		context.Background(),
		env.store,
		dataset.StoragePath(created.Scenario, created.ID),
		&stored,
	)
	if err != nil {
		t.Fatal(err)
	}
	want.ID = created.ID
	if diff := testutil.Diff(want, stored); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestPostDatasetMalformed(t *testing.T) {
	env := newTestEnvironment()
	defer close(env.readJobs)

	req := withHub(httptest.NewRequest(http.MethodPost, "/datasets", bytes.NewBufferString(`{}`)))
	w := httptest.NewRecorder()

	env.postDataset(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status code 400. Found: %d", resp.StatusCode)
	}
}

func TestGetDatasetNotFound(t *testing.T) {
	env := newTestEnvironment()
	defer close(env.readJobs)

	router, err := env.newRouter()
	if err != nil {
		t.Fatal(err)
	}

	req := withHub(httptest.NewRequest(http.MethodGet, "/datasets/baseline/does-not-exist", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status code 404. Found: %d", resp.StatusCode)
	}
}

func TestCompareEndToEnd(t *testing.T) {
	env := newTestEnvironment()
	defer close(env.readJobs)

	router, err := env.newRouter()
	if err != nil {
		t.Fatal(err)
	}

	now := time.Unix(1700000000, 0).UTC()
	ctx := context.Background()
	seeds := map[string]dataset.Dataset{
		"baseline/base":       scenario.GenerateBaseline(scenario.NewRand(1), now),
		"contended/cont":      scenario.GenerateContended(scenario.NewRand(2), now),
		"multithreaded/multi": scenario.GenerateMultithreaded(scenario.NewRand(3), now),
	}
	for key, d := range seeds {
		if err := storageutil.CompressedWrite(ctx, env.store, key, d); err != nil {
			t.Fatal(err)
		}
	}

	body := `{
		"baseline": {"scenario": "baseline", "id": "base"},
		"measurements": [
			{"scenario": "contended", "id": "cont"},
			{"name": "threaded", "scenario": "multithreaded", "id": "multi"}
		]
	}`
	req := withHub(httptest.NewRequest(http.MethodPost, "/compare", bytes.NewBufferString(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code 200. Found: %d", resp.StatusCode)
	}

	var response postCompareResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatal(err)
	}
	if len(response.Comparisons) != 2 {
		t.Fatalf("expected 2 comparisons, got %d", len(response.Comparisons))
	}
	if response.Comparisons[0].Name != "contended" || response.Comparisons[1].Name != "threaded" {
		t.Fatalf("unexpected comparison names: %+v", response.Comparisons)
	}
	if len(response.Functions) == 0 {
		t.Fatal("expected common functions")
	}
	if v := response.Comparisons[0].Verdict; v == "" {
		t.Fatal("expected a verdict on each comparison")
	}
}

func TestPostAndGetMatrixCell(t *testing.T) {
	env := newTestEnvironment()
	defer close(env.readJobs)

	router, err := env.newRouter()
	if err != nil {
		t.Fatal(err)
	}

	req := withHub(httptest.NewRequest(http.MethodPost, "/matrix/4/8?seed=42", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code 200. Found: %d", resp.StatusCode)
	}

	req = withHub(httptest.NewRequest(http.MethodGet, "/matrix/4/8", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp = w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code 200. Found: %d", resp.StatusCode)
	}

	var d dataset.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if d.Metadata.SystemConditions == nil || d.Metadata.SystemConditions.TotalThreads != 32 {
		t.Fatalf("unexpected system conditions: %+v", d.Metadata.SystemConditions)
	}

	// The matrix view reports the stored cell as measured and
	// estimates the rest.
	req = withHub(httptest.NewRequest(http.MethodGet, "/matrix?baseline_mode=row&threads=8", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp = w.Result()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code 200. Found: %d", resp.StatusCode)
	}

	var view getMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if len(view.Cells) != len(view.ThreadCounts)*len(view.ConcurrentSims) {
		t.Fatalf("expected a full matrix, got %d cells", len(view.Cells))
	}
	if len(view.BaselineCells) != len(view.ConcurrentSims) {
		t.Fatalf("expected a row of baseline cells, got %d", len(view.BaselineCells))
	}
	var foundMeasured bool
	for _, cell := range view.Cells {
		if cell.ConcurrentSims == 4 && cell.ThreadsPerSim == 8 {
			foundMeasured = true
			if cell.Estimated {
				t.Fatal("expected the stored cell to be measured")
			}
		} else if !cell.Estimated {
			t.Fatalf("expected cell %d/%d to be estimated", cell.ConcurrentSims, cell.ThreadsPerSim)
		}
		if cell.TotalTime <= 0 {
			t.Fatalf("expected positive total time for cell %d/%d", cell.ConcurrentSims, cell.ThreadsPerSim)
		}
	}
	if !foundMeasured {
		t.Fatal("stored cell missing from the matrix view")
	}
}

type KafkaWriterMock struct{}

func (k KafkaWriterMock) WriteMessages(_ context.Context, _ ...kafka.Message) error {
	return nil
}

func (k KafkaWriterMock) Close() error {
	return nil
}
