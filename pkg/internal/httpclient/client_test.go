package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSONReturnsStatusErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	var result map[string]interface{}
	err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, &result)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "12", statusErr.Header.Get("Retry-After"))
}

func TestDoJSONDecodesSuccessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	var result map[string]interface{}
	err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, &result)
	require.NoError(t, err)
	assert.Equal(t, true, result["ok"])
}
