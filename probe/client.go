// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package probe

import (
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type options struct {
	logger    *zap.Logger
	timeout   time.Duration
	transport http.RoundTripper

	maxRetries int
	waitMin    time.Duration
	waitMax    time.Duration

	circuitName  string
	tripCount    uint32
	openTimeout  time.Duration
	halfOpenReqs uint32
	statusCodes  []int
}

// Option configures the http.Client returned by NewClient.
type Option func(*options)

// Logger sets the logger retries and circuit state changes are logged with.
func Logger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Timeout bounds a single request attempt. The default is 2 seconds.
func Timeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Transport sets the base http.RoundTripper.
func Transport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// MaxRetries sets how many times a failed probe is retried. The default is 2.
func MaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// MinWaitDuration
func MinWaitDuration(d time.Duration) Option {
	return func(o *options) {
		o.waitMin = d
	}
}

// MaxWaitDuration
func MaxWaitDuration(d time.Duration) Option {
	return func(o *options) {
		o.waitMax = d
	}
}

// CircuitName names the circuit breaker and its logger.
func CircuitName(name string) Option {
	return func(o *options) {
		o.circuitName = name
	}
}

// TripAfter sets the number of consecutive failures which open the circuit.
// The default is 5.
func TripAfter(n uint32) Option {
	return func(o *options) {
		o.tripCount = n
	}
}

// OpenStateTimeout is how long the circuit stays open before letting
// requests through again. The default is 60 seconds.
func OpenStateTimeout(d time.Duration) Option {
	return func(o *options) {
		o.openTimeout = d
	}
}

// FailOnStatusCode registers a response status code which counts as
// a failure for the circuit breaker.
//
// Default: 500, 502, 503, 504
func FailOnStatusCode(n int) Option {
	return func(o *options) {
		o.statusCodes = append(o.statusCodes, n)
	}
}

// NewClient returns a http.Client which retries failed requests and
// stops sending requests once a server keeps failing.
func NewClient(opts ...Option) *http.Client {
	o := &options{
		logger:       zap.NewNop(),
		timeout:      2 * time.Second,
		transport:    http.DefaultTransport,
		maxRetries:   2,
		waitMin:      100 * time.Millisecond,
		waitMax:      5 * time.Second,
		circuitName:  "probe",
		tripCount:    5,
		openTimeout:  60 * time.Second,
		halfOpenReqs: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.statusCodes) == 0 {
		o.statusCodes = append(
			o.statusCodes,
			http.StatusInternalServerError, // 500
			http.StatusBadGateway,          // 502
			http.StatusServiceUnavailable,  // 503
			http.StatusGatewayTimeout,      // 504
		)
	}

	rc := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout:   o.timeout,
			Transport: newCircuitRoundTripper(o),
		},
		RetryWaitMin: o.waitMin,
		RetryWaitMax: o.waitMax,
		RetryMax:     o.maxRetries,
		RequestLogHook: func(l retryablehttp.Logger, req *http.Request, i int) {
			o.logger.Info("sending probe", zap.String("url", req.URL.String()), zap.Int("request_attempt_count", i))
		},
		ResponseLogHook: func(l retryablehttp.Logger, resp *http.Response) {
			o.logger.Info("received probe response", zap.String("url", resp.Request.URL.String()), zap.Int("http_status_code", resp.StatusCode))
		},
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return rc.StandardClient()
}

var errStatusCode = errors.New("status code error")

type circuitRoundTripper struct {
	http.RoundTripper
	cb    *gobreaker.CircuitBreaker
	codes map[int]struct{}
}

func newCircuitRoundTripper(o *options) *circuitRoundTripper {
	codes := map[int]struct{}{}
	for _, code := range o.statusCodes {
		codes[code] = struct{}{}
	}

	log := o.logger.Named(o.circuitName)
	return &circuitRoundTripper{
		RoundTripper: o.transport,
		codes:        codes,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        o.circuitName,
			MaxRequests: o.halfOpenReqs,
			Timeout:     o.openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= o.tripCount
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				switch to {
				case gobreaker.StateOpen:
					log.Error("circuit has been opened")
				case gobreaker.StateHalfOpen:
					log.Warn("circuit is now half open and lettings some requests through", zap.Uint32("max_requests_allowed_through", o.halfOpenReqs))
				case gobreaker.StateClosed:
					log.Info("circuit has been closed")
				}
			},
		}),
	}
}

// RoundTrip implements the http.RoundTripper interface. Responses with a
// failing status code are still returned to the caller.
func (rt *circuitRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	v, err := rt.cb.Execute(func() (interface{}, error) {
		resp, err := rt.RoundTripper.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if _, ok := rt.codes[resp.StatusCode]; ok {
			return resp, errStatusCode
		}
		return resp, nil
	})
	if errors.Is(err, errStatusCode) {
		return v.(*http.Response), nil
	}
	if err != nil {
		return nil, err
	}
	return v.(*http.Response), nil
}
