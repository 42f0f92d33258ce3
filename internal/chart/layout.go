package chart

// MaxCharts caps the grid so individual panels stay readable.
const MaxCharts = 16

// Columns picks the grid width for a number of panels. Small counts
// stay in a single column so function names remain legible.
func Columns(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	case n <= 12:
		return 3
	default:
		return 4
	}
}

// Rows returns the number of grid rows for n panels over cols columns.
func Rows(n, cols int) int {
	return (n + cols - 1) / cols
}
