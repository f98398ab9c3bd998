// Package httpmiddleware provides composable net/http middleware: request IDs,
// context loggers, panic recovery, OpenTelemetry instrumentation and access logs.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with extra behaviour.
type Middleware func(http.Handler) http.Handler

// Wrap applies mws to h. The first middleware is the outermost one and sees
// the request first.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
