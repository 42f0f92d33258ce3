package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/julienschmidt/httprouter"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/project"
	"github.com/enersim/simprof/internal/scenario"
	"github.com/enersim/simprof/internal/storageutil"
)

type (
	matrixCellView struct {
		ConcurrentSims   int     `json:"concurrent_simulations"`
		ThreadsPerSim    int     `json:"threads_per_simulation"`
		TotalTime        float64 `json:"total_time"`
		PerformanceRatio float64 `json:"performance_ratio,omitempty"`
		// Estimated marks cells without a stored dataset, whose total
		// is predicted instead of measured.
		Estimated bool `json:"estimated"`
	}

	getMatrixResponse struct {
		ThreadCounts   []int            `json:"thread_counts"`
		ConcurrentSims []int            `json:"concurrent_simulations"`
		Cells          []matrixCellView `json:"cells"`
		BaselineCells  []project.Cell   `json:"baseline_cells,omitempty"`
	}
)

// getMatrix returns the whole concurrency matrix: measured totals for
// stored cells, estimates for the rest. The baseline_mode, sims and
// threads query parameters select which cells anchor comparisons.
func (e *environment) getMatrix(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	p := project.New("")
	cells := p.Cells()

	s := sentry.StartSpan(ctx, "storage.read")
	s.Description = "Gather matrix cell datasets"
	results := make(chan storageutil.ReadJobResult, len(cells))
	for _, cell := range cells {
		e.readJobs <- dataset.ReadJob{
			Ctx:     ctx,
			Storage: e.store,
			Key:     dataset.MatrixStoragePath(cell.ConcurrentSims, cell.ThreadsPerSim),
			Name:    dataset.MatrixStoragePath(cell.ConcurrentSims, cell.ThreadsPerSim),
			Result:  results,
		}
	}
	measured := make(map[string]dataset.Dataset, len(cells))
	for i := 0; i < len(cells); i++ {
		res := (<-results).(dataset.ReadJobResult)
		if res.Err != nil {
			if errors.Is(res.Err, storageutil.ErrObjectNotFound) {
				continue
			}
			s.Finish()
			hub.CaptureException(res.Err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		measured[res.Name] = res.Dataset
	}
	close(results)
	s.Finish()

	response := getMatrixResponse{
		ThreadCounts:   p.ThreadCounts,
		ConcurrentSims: p.ConcurrentSims,
		Cells:          make([]matrixCellView, 0, len(cells)),
	}
	for _, cell := range cells {
		view := matrixCellView{
			ConcurrentSims: cell.ConcurrentSims,
			ThreadsPerSim:  cell.ThreadsPerSim,
		}
		key := dataset.MatrixStoragePath(cell.ConcurrentSims, cell.ThreadsPerSim)
		if d, ok := measured[key]; ok {
			view.TotalTime = d.Summary.TotalSimulationTime
			view.PerformanceRatio = d.Summary.PerformanceRatio
		} else {
			view.TotalTime = project.EstimateCellSeconds(cell)
			view.Estimated = true
		}
		response.Cells = append(response.Cells, view)
	}

	if mode := r.URL.Query().Get("baseline_mode"); mode != "" {
		anchor := project.Cell{ConcurrentSims: 1, ThreadsPerSim: 1}
		if raw := r.URL.Query().Get("sims"); raw != "" {
			sims, ok := pathInt(raw)
			if !ok {
				http.Error(w, "sims must be a positive integer", http.StatusBadRequest)
				return
			}
			anchor.ConcurrentSims = sims
		}
		if raw := r.URL.Query().Get("threads"); raw != "" {
			threads, ok := pathInt(raw)
			if !ok {
				http.Error(w, "threads must be a positive integer", http.StatusBadRequest)
				return
			}
			anchor.ThreadsPerSim = threads
		}
		baselineCells, err := p.BaselineCells(project.BaselineMode(mode), anchor)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		response.BaselineCells = baselineCells
	}

	writeJSON(w, r, response)
}

// postMatrixCell fabricates and stores one cell of the concurrency
// matrix.
func (e *environment) postMatrixCell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	sims, threads, ok := matrixCellFromRequest(w, r)
	if !ok {
		return
	}
	seed, ok := seedFromRequest(w, r)
	if !ok {
		return
	}

	s := sentry.StartSpan(ctx, "processing")
	s.Description = "Generate matrix cell"
	d := scenario.GenerateMatrixCell(scenario.NewRand(seed), time.Now().UTC(), sims, threads)
	s.Finish()

	s = sentry.StartSpan(ctx, "storage.write")
	s.Description = "Write matrix cell to storage"
	err := storageutil.CompressedWrite(ctx, e.store, dataset.MatrixStoragePath(sims, threads), d)
	s.Finish()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusTooManyRequests)
		} else {
			hub.CaptureException(err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, r, d)
}

func (e *environment) getMatrixCell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	sims, threads, ok := matrixCellFromRequest(w, r)
	if !ok {
		return
	}

	var d dataset.Dataset
	s := sentry.StartSpan(ctx, "storage.read")
	s.Description = "Read matrix cell from storage"
	err := storageutil.UnmarshalCompressed(ctx, e.store, dataset.MatrixStoragePath(sims, threads), &d)
	s.Finish()
	if err != nil {
		if errors.Is(err, storageutil.ErrObjectNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hub.CaptureException(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, d)
}

func matrixCellFromRequest(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)
	ps := httprouter.ParamsFromContext(ctx)

	sims, ok := pathInt(ps.ByName("sims"))
	if !ok {
		http.Error(w, "sims must be a positive integer", http.StatusBadRequest)
		return 0, 0, false
	}
	threads, ok := pathInt(ps.ByName("threads"))
	if !ok {
		http.Error(w, "threads must be a positive integer", http.StatusBadRequest)
		return 0, 0, false
	}

	hub.Scope().SetTags(map[string]string{
		"concurrent_simulations": ps.ByName("sims"),
		"threads_per_simulation": ps.ByName("threads"),
	})
	return sims, threads, true
}
