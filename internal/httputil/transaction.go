package httputil

import (
	"strconv"

	"github.com/getsentry/sentry-go"
)

// HTTPStatusCodeTag tags transactions with the response status code so
// they can be filtered by outcome.
const HTTPStatusCodeTag = "http.response.status_code"

// SetHTTPStatusCodeTag is a BeforeSendTransaction hook copying the
// response status code onto the transaction event.
func SetHTTPStatusCodeTag(e *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint == nil || hint.Response == nil {
		return e
	}
	if e.Tags == nil {
		e.Tags = make(map[string]string, 1)
	}
	if _, set := e.Tags[HTTPStatusCodeTag]; !set {
		e.Tags[HTTPStatusCodeTag] = strconv.Itoa(hint.Response.StatusCode)
	}
	return e
}
