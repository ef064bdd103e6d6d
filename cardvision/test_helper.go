package cardvision

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// newTestLogger returns a logger scoped to t, matching the logging idiom
// used throughout the rest of the pipeline.
func newTestLogger(t *testing.T) golog.Logger {
	t.Helper()
	return golog.NewTestLogger(t)
}

func mustNotError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %s", context, errors.Wrap(err, context))
	}
}
