package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewElasticsearchClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":{"number":"9.0.0"}}`))
	}))
	defer srv.Close()

	client, err := NewElasticsearchClient(context.Background(), ElasticsearchConfig{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewElasticsearchClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"missing credentials"}`))
	}))
	defer srv.Close()

	_, err := NewElasticsearchClient(context.Background(), ElasticsearchConfig{Addresses: []string{srv.URL}})
	require.ErrorContains(t, err, "missing credentials")
}
