// Package testutil holds comparison helpers shared by tests.
package testutil

import (
	"math"

	"github.com/google/go-cmp/cmp"

	"github.com/enersim/simprof/internal/timeutil"
)

var defaultOptions = []cmp.Option{
	// NaNs on either side compare equal.
	cmp.FilterValues(func(x, y float64) bool {
		return math.IsNaN(x) && math.IsNaN(y)
	}, cmp.Comparer(func(_, _ interface{}) bool { return true })),
	cmp.AllowUnexported(timeutil.Time{}),
}

// Diff compares two values and returns a readable report of the
// differences, empty when they are equal.
func Diff(got, want interface{}, opts ...cmp.Option) string {
	opts = append(opts, defaultOptions...)
	return cmp.Diff(got, want, opts...)
}
