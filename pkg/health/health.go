// Package health provides a fixed liveness acknowledgement plus Kubernetes-style
// liveness and readiness probes.
//
// Each registered check runs in its own goroutine at a fixed interval. A check
// turns unhealthy after failing the failure threshold times in a row and
// healthy again after the success threshold of consecutive passes.
package health

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/jx"
)

// CheckFunc reports whether a component is healthy. It returns nil when healthy.
type CheckFunc func(ctx context.Context) error

// Option configures a registered check.
type Option func(*check)

// WithFailureThreshold sets how many consecutive failures mark a check unhealthy.
func WithFailureThreshold(n int) Option {
	return func(c *check) { c.failureThreshold = n }
}

// WithSuccessThreshold sets how many consecutive passes mark a check healthy again.
func WithSuccessThreshold(n int) Option {
	return func(c *check) { c.successThreshold = n }
}

// check is one registered probe. run is only ever called from the check's own
// goroutine, so the streak counters are unsynchronized; healthy and lastErr are
// read by HTTP handlers and go through atomics.
type check struct {
	name             string
	timeout          time.Duration
	fn               CheckFunc
	failureThreshold int
	successThreshold int

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	fails  int
	passes int
}

func newCheck(name string, timeout time.Duration, fn CheckFunc, opts []Option) *check {
	c := &check{
		name:             name,
		timeout:          timeout,
		fn:               fn,
		failureThreshold: 3,
		successThreshold: 1,
	}
	for _, o := range opts {
		o(c)
	}
	c.healthy.Store(true)
	return c
}

func (c *check) isHealthy() bool {
	return c.healthy.Load()
}

func (c *check) lastError() error {
	if p := c.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

func (c *check) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(ctx)
	c.lastErr.Store(&err)

	if err != nil {
		c.passes = 0
		c.fails++
		if c.fails >= c.failureThreshold {
			c.healthy.Store(false)
		}
		return
	}
	c.fails = 0
	c.passes++
	if c.passes >= c.successThreshold {
		c.healthy.Store(true)
	}
}

func (c *check) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.run(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.run(ctx)
		}
	}
}

// Health holds the liveness and readiness checks of a service.
type Health struct {
	ready atomic.Bool

	// mu guards the check lists and cancel. Handlers copy the lists under the
	// read lock and inspect check state without holding it.
	mu        sync.RWMutex
	liveness  []*check
	readiness []*check
	cancel    context.CancelFunc
}

// New returns a Health that is not ready yet. Call SetReady(true) once the
// service has finished starting.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check telling whether the process works at all,
// e.g. goroutine count or GC pauses.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc, opts ...Option) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, newCheck(name, timeout, fn, opts))
}

// AddReadinessCheck registers a check telling whether the service can take
// traffic, e.g. database connectivity.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc, opts ...Option) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, newCheck(name, timeout, fn, opts))
}

// Start runs every registered check in the background at the given interval
// until Stop is called or ctx is done. Checks registered after Start are not run.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	checks := slices.Concat(h.liveness, h.readiness)
	h.mu.Unlock()

	for _, c := range checks {
		go c.loop(ctx, interval)
	}
}

// Stop cancels the background checks. It is safe to call more than once.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady sets the manual readiness flag: true after startup, false when
// draining before shutdown.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the service is marked ready and every readiness
// check passes.
func (h *Health) IsReady() bool {
	return h.ready.Load() && len(failures(h.readinessChecks())) == 0
}

// IsLive reports whether every liveness check passes.
func (h *Health) IsLive() bool {
	return len(failures(h.livenessChecks())) == 0
}

func (h *Health) livenessChecks() []*check {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.liveness)
}

func (h *Health) readinessChecks() []*check {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.readiness)
}

// OK answers every request with 200 and {"status":"ok"}. It reflects only that
// the process is serving HTTP and never inspects the request.
func OK(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, nil)
}

// LiveEndpoint serves /livez: 200 {"status":"ok"} while all liveness checks
// pass, otherwise 503 {"status":"unhealthy","checks":{...}}.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, failures(h.livenessChecks()))
}

// ReadyEndpoint serves /readyz: 200 when the service is marked ready and all
// readiness checks pass, otherwise 503 with the failing checks.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	failed := failures(h.readinessChecks())
	if !h.ready.Load() {
		failed["_readiness"] = "service is not ready"
	}
	writeStatus(w, failed)
}

// failures maps each unhealthy check to its last error message. It uses the
// result of the last background run instead of calling the check again.
func failures(checks []*check) map[string]string {
	failed := make(map[string]string)
	for _, c := range checks {
		if c.isHealthy() {
			continue
		}
		if err := c.lastError(); err != nil {
			failed[c.name] = err.Error()
		} else {
			failed[c.name] = "check is unhealthy"
		}
	}
	return failed
}

func writeStatus(w http.ResponseWriter, failed map[string]string) {
	status := http.StatusOK
	if len(failed) > 0 {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// The status line is already out; a write error means the client left.
	_, _ = w.Write(encodeStatus(failed))
}

func encodeStatus(failed map[string]string) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	if len(failed) == 0 {
		e.Str("ok")
		e.ObjEnd()
		return e.Bytes()
	}
	e.Str("unhealthy")
	e.FieldStart("checks")
	e.ObjStart()
	for _, name := range slices.Sorted(maps.Keys(failed)) {
		e.FieldStart(name)
		e.Str(failed[name])
	}
	e.ObjEnd()
	e.ObjEnd()
	return e.Bytes()
}
