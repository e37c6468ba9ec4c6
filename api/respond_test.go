package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/bloghub-backend/errs"
)

func TestWriteErrorUsesApiErrStatus(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteError(rec, errs.NewApiErr(http.StatusNotFound, "blog post not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "blog post not found", body["error"])
	assert.Equal(t, "error", body["status"])
}

func TestWriteErrorHidesUnexpectedErrors(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteError(rec, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestWriteErrorIncludesValidationField(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteError(rec, errs.NewValidationError("title", "title is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "title", body["field"])
}

func TestWriteJSONStatusSetsContentTypeBeforeStatus(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteJSONStatus(rec, http.StatusCreated, map[string]string{"id": "1"})

	// Result snapshots headers at WriteHeader time, so a header set after
	// the status line would be missing here.
	result := rec.Result()
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", result.Header.Get("Content-Type"))
}

func TestWriteErrorSetsContentTypeBeforeStatus(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteError(rec, errs.NewNotFoundError("blog post not found"))

	result := rec.Result()
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", result.Header.Get("Content-Type"))
}

func TestWriteJSONSetsContentType(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteJSON(rec, map[string]string{"status": "ok"})

	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
