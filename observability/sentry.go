package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryReporter sends fatal kernel errors to Sentry, attaching the
// current breadcrumb trail to each event.
type SentryReporter struct {
	trail
	environment string
	release     string
}

// SentryOption configures a SentryReporter at construction time.
type SentryOption func(*SentryReporter, *sentry.ClientOptions)

// WithEnvironment sets the Sentry environment tag.
func WithEnvironment(env string) SentryOption {
	return func(r *SentryReporter, opts *sentry.ClientOptions) {
		r.environment = env
		opts.Environment = env
	}
}

// WithRelease sets the Sentry release identifier.
func WithRelease(release string) SentryOption {
	return func(r *SentryReporter, opts *sentry.ClientOptions) {
		r.release = release
		opts.Release = release
	}
}

// WithDebug enables the underlying Sentry client's debug logging.
func WithDebug(debug bool) SentryOption {
	return func(_ *SentryReporter, opts *sentry.ClientOptions) {
		opts.Debug = debug
	}
}

// NewSentryReporter initializes the Sentry SDK with dsn and returns a
// Reporter backed by it.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	r := &SentryReporter{}
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(r, &clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SentryReporter) ReportFatal(err error, ctx map[string]any) {
	sentry.WithScope(func(scope *sentry.Scope) {
		for _, b := range r.snapshot() {
			scope.AddBreadcrumb(&sentry.Breadcrumb{
				Category: b.Category,
				Message:  b.Message,
				Data:     b.Data,
			}, maxBreadcrumbs)
		}
		for k, v := range ctx {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})
}

func (r *SentryReporter) RecordBreadcrumb(b Breadcrumb) {
	r.trail.record(b)
}

// Flush blocks until pending events are sent or timeout elapses.
func (r *SentryReporter) Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

var _ Reporter = (*SentryReporter)(nil)
