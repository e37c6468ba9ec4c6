package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadlineRecorder exposes SetWriteDeadline so http.ResponseController can
// reach it, recording what the handler asked for.
type deadlineRecorder struct {
	*httptest.ResponseRecorder
	deadlines []time.Time
}

func (d *deadlineRecorder) SetWriteDeadline(t time.Time) error {
	d.deadlines = append(d.deadlines, t)
	return nil
}

func TestEventStreamClearsWriteDeadline(t *testing.T) {
	rec := &deadlineRecorder{ResponseRecorder: httptest.NewRecorder()}

	clearWriteDeadline(rec, zerolog.Nop())

	require.Len(t, rec.deadlines, 1)
	assert.True(t, rec.deadlines[0].IsZero(), "deadline must be cleared, not extended")
}

func TestClearWriteDeadlineToleratesUnsupportedWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		clearWriteDeadline(httptest.NewRecorder(), zerolog.Nop())
	})
}
