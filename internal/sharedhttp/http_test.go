package sharedhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"browsarr/internal/domain"

	"github.com/avast/retry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatusCode(t *testing.T) {
	assert.NoError(t, CheckStatusCode(http.StatusOK))

	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusMethodNotAllowed, http.StatusTeapot} {
		err := CheckStatusCode(code)
		require.Error(t, err, code)
		assert.False(t, retry.IsRecoverable(err), code)
	}

	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout} {
		err := CheckStatusCode(code)
		require.Error(t, err, code)
		assert.True(t, retry.IsRecoverable(err), code)
	}
}

func TestFetchBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "browsarr", r.Header.Get("User-Agent"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	headers := map[string]string{"X-Requested-With": "XMLHttpRequest"}
	body, err := FetchBody(context.Background(), srv.Client(), http.MethodGet, srv.URL, headers, "")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), body)
}

func TestFetchBodyTerminalStatus(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := FetchBody(context.Background(), srv.Client(), http.MethodGet, srv.URL, nil, "")
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, 1, hits)
}

func TestFetchBodyCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchBody(ctx, srv.Client(), http.MethodGet, srv.URL, nil, "")
	require.ErrorIs(t, err, domain.ErrUpstream)
}
