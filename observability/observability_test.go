package observability_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/discrete-sim/kernel/observability"
)

func TestConsoleReporterTracksBreadcrumbs(t *testing.T) {
	r := observability.NewConsoleReporter(false)
	r.RecordBreadcrumb(observability.Breadcrumb{Category: "dispatch", Message: "pass at t=10"})
	r.RecordBreadcrumb(observability.Breadcrumb{Category: "dispatch", Message: "pass at t=20"})

	crumbs := r.Breadcrumbs()
	assert.Len(t, crumbs, 2)
	assert.Equal(t, "pass at t=20", crumbs[1].Message)
}

func TestConsoleReporterTrimsOldBreadcrumbs(t *testing.T) {
	r := observability.NewConsoleReporter(false)
	for i := 0; i < 60; i++ {
		r.RecordBreadcrumb(observability.Breadcrumb{Category: "dispatch", Message: "x"})
	}
	assert.LessOrEqual(t, len(r.Breadcrumbs()), 50)
}

func TestConsoleReporterReportFatalDoesNotPanic(t *testing.T) {
	r := observability.NewConsoleReporter(true)
	assert.NotPanics(t, func() {
		r.ReportFatal(errors.New("boom"), map[string]any{"time": 10})
	})
}
