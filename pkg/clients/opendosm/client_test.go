package opendosm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/lfs-pipeline/internal/config"
)

func TestFetchDataset_OK(t *testing.T) {
	body := `[{"date":"2024-01-01","lf":100}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data-catalogue", r.URL.Path)
		assert.Equal(t, "lfs_month", r.URL.Query().Get("id"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(config.SourceConfig{BaseURL: srv.URL + "/"}, nil)

	raw, err := client.FetchDataset(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}

func TestFetchDataset_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(config.SourceConfig{BaseURL: srv.URL}, zap.New(core))

	raw, err := client.FetchDataset(context.Background())
	require.Error(t, err)
	assert.Nil(t, raw)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)

	entries := logs.FilterMessage("data catalogue request failed").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusServiceUnavailable, entries[0].ContextMap()["status"])
}

func TestFetchDataset_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(config.SourceConfig{BaseURL: url}, zap.New(core))

	_, err := client.FetchDataset(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
	assert.Zero(t, logs.FilterMessage("data catalogue request failed").Len())
}
