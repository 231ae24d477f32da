package omr

import (
	"testing"

	"github.com/omrkit/staffscan/internal/monitoring"
)

// captureWarning redirects the package logger for the duration of fn and
// reports whether anything was logged.
func captureWarning(t *testing.T, fn func()) bool {
	t.Helper()

	original := monitoring.Logf
	defer func() { monitoring.Logf = original }()

	warned := false
	monitoring.SetLogger(func(format string, v ...interface{}) {
		warned = true
	})

	fn()
	return warned
}
