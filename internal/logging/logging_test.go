package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/tally/internal/logging"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"Error": slog.LevelError,
	} {
		lvl, err := logging.ParseLevel(in)
		require.NoError(t, err, "parse %q", in)
		assert.Equal(t, want, lvl)
	}
	_, err := logging.ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "n", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, 3.0, rec["n"])
	assert.NotContains(t, buf.String(), "hidden")

	_, err = logging.New(&buf, slog.LevelInfo, "xml")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, slog.LevelDebug, logging.FormatText)
	require.NoError(t, err)

	ctx := logging.WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", logging.RequestID(ctx))
	assert.Equal(t, "", logging.RequestID(context.Background()))

	logging.FromContext(ctx, logger).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")

	assert.Same(t, slog.Default(), logging.Resolve(nil))
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, slog.LevelInfo, logging.FormatText)
	require.NoError(t, err)

	var seen string
	h := logging.Middleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tally", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	id := rec.Header().Get(logging.RequestIDHeader)
	assert.Equal(t, seen, id)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated ids are uuids")
	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "request_id="+id)

	req := httptest.NewRequest(http.MethodGet, "/tally", nil)
	req.Header.Set(logging.RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given", rec.Header().Get(logging.RequestIDHeader))
	assert.Equal(t, "given", seen)
	assert.True(t, strings.Contains(buf.String(), "path=/tally"))
}
