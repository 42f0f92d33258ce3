package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/enersim/simprof/internal/scenario"
	"github.com/enersim/simprof/internal/testutil"
)

func TestFetchDataset(t *testing.T) {
	want := scenario.GenerateBaseline(scenario.NewRand(42), time.Unix(1700000000, 0).UTC())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer server.Close()

	got, err := NewClient().FetchDataset(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if diff := testutil.Diff(want, got); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestFetchDatasetServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewClient().FetchDataset(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
