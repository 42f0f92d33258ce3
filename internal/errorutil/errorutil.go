package errorutil

import "errors"

// ErrDatasetMalformed is a base error type to use for datasets that cannot be
// interpreted as profiling data.
var ErrDatasetMalformed = errors.New("malformed dataset")

// ErrNoCommonFunctions indicates the compared datasets share no function names.
var ErrNoCommonFunctions = errors.New("no common functions across datasets")

// ErrNothingToRender indicates a chart was requested for zero comparisons.
var ErrNothingToRender = errors.New("no comparisons to render")
