// Package project models the explorer's concurrency matrix: which cell
// datasets exist, how cells are addressed, and which cells form the
// baseline for a given comparison mode.
package project

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/enersim/simprof/internal/scenario"
)

type (
	// Project maps the matrix sweep's cells to their dataset files.
	// Dataset keys are the concurrent simulation count and the thread
	// count, both as decimal strings.
	Project struct {
		Info           Info                         `json:"project_info"`
		ThreadCounts   []int                        `json:"thread_counts,omitempty"`
		ConcurrentSims []int                        `json:"concurrent_simulations,omitempty"`
		Datasets       map[string]map[string]string `json:"datasets"`
	}

	Info struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Created     string `json:"created,omitempty"`
	}

	// Cell addresses one dataset in the matrix.
	Cell struct {
		ConcurrentSims int `json:"concurrent_simulations"`
		ThreadsPerSim  int `json:"threads_per_simulation"`
	}

	// BaselineMode selects which cells anchor a comparison.
	BaselineMode string
)

const (
	// BaselineSingle compares every selected cell against one cell.
	BaselineSingle BaselineMode = "single"
	// BaselineRow compares along a fixed thread count.
	BaselineRow BaselineMode = "row"
	// BaselineColumn compares along a fixed concurrent simulation count.
	BaselineColumn BaselineMode = "column"
)

var ErrUnknownBaselineMode = errors.New("unknown baseline mode")

// New returns an empty project over the default sweep axes.
func New(name string) *Project {
	return &Project{
		Info:           Info{Name: name},
		ThreadCounts:   scenario.DefaultThreadCounts,
		ConcurrentSims: scenario.DefaultConcurrentSims,
		Datasets:       make(map[string]map[string]string),
	}
}

// Read loads a project file.
func Read(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var p Project
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding project %s: %w", path, err)
	}
	if len(p.ThreadCounts) == 0 {
		p.ThreadCounts = scenario.DefaultThreadCounts
	}
	if len(p.ConcurrentSims) == 0 {
		p.ConcurrentSims = scenario.DefaultConcurrentSims
	}
	return &p, nil
}

// Write serializes the project to an indented JSON file.
func (p *Project) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		f.Close()
		return fmt.Errorf("encoding project: %w", err)
	}
	return f.Close()
}

// SetCell records the dataset file for a cell.
func (p *Project) SetCell(cell Cell, filename string) {
	simKey := strconv.Itoa(cell.ConcurrentSims)
	if p.Datasets[simKey] == nil {
		p.Datasets[simKey] = make(map[string]string)
	}
	p.Datasets[simKey][strconv.Itoa(cell.ThreadsPerSim)] = filename
}

// CellFile returns the dataset file recorded for a cell.
func (p *Project) CellFile(cell Cell) (string, bool) {
	threads, ok := p.Datasets[strconv.Itoa(cell.ConcurrentSims)]
	if !ok {
		return "", false
	}
	filename, ok := threads[strconv.Itoa(cell.ThreadsPerSim)]
	return filename, ok
}

// Cells returns every cell of the sweep in row-major order: thread
// counts as rows, concurrent simulation counts as columns.
func (p *Project) Cells() []Cell {
	cells := make([]Cell, 0, len(p.ThreadCounts)*len(p.ConcurrentSims))
	for _, threads := range p.ThreadCounts {
		for _, sims := range p.ConcurrentSims {
			cells = append(cells, Cell{ConcurrentSims: sims, ThreadsPerSim: threads})
		}
	}
	return cells
}

// MissingCells returns the sweep cells without a recorded dataset file.
func (p *Project) MissingCells() []Cell {
	var missing []Cell
	for _, cell := range p.Cells() {
		if _, ok := p.CellFile(cell); !ok {
			missing = append(missing, cell)
		}
	}
	return missing
}

// BaselineCells resolves which cells anchor a comparison. For the
// single mode, that is the anchor cell itself; for row and column
// modes, all cells sharing the anchor's thread count or simulation
// count respectively.
func (p *Project) BaselineCells(mode BaselineMode, anchor Cell) ([]Cell, error) {
	switch mode {
	case BaselineSingle:
		return []Cell{anchor}, nil
	case BaselineRow:
		cells := make([]Cell, 0, len(p.ConcurrentSims))
		for _, sims := range p.ConcurrentSims {
			cells = append(cells, Cell{ConcurrentSims: sims, ThreadsPerSim: anchor.ThreadsPerSim})
		}
		return cells, nil
	case BaselineColumn:
		cells := make([]Cell, 0, len(p.ThreadCounts))
		for _, threads := range p.ThreadCounts {
			cells = append(cells, Cell{ConcurrentSims: anchor.ConcurrentSims, ThreadsPerSim: threads})
		}
		return cells, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBaselineMode, mode)
	}
}

// EstimateCellSeconds predicts a cell's wall-clock seconds before its
// dataset exists: threading gives diminishing returns, concurrency adds
// a linear contention penalty with extra memory and I/O pressure past 8
// and 32 simulations.
func EstimateCellSeconds(cell Cell) float64 {
	const baseTime = 120.0

	threadFactor := 1.0 / math.Max(1, math.Pow(float64(cell.ThreadsPerSim), 0.7))
	simPenalty := 1.0 + float64(cell.ConcurrentSims-1)*0.3
	if cell.ConcurrentSims > 8 {
		simPenalty *= 1.5
	}
	if cell.ConcurrentSims > 32 {
		simPenalty *= 2.0
	}
	return baseTime * threadFactor * simPenalty
}
