// internal/gateway/client_test.go
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusdeck/focusdeck/internal/models"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Task{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, staticTokens{token: "abc123"})
	_, err := client.GetTasks(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClientOmitsHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Task{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, staticTokens{})
	_, err := client.GetTasks(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "task already completed"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, staticTokens{})
	err := client.CompleteTask(context.Background(), 42)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "task already completed", apiErr.Message)
}

func TestClientFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, staticTokens{})
	err := client.CompleteTask(context.Background(), 42)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClientQueryParameters(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(models.UserStats{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, staticTokens{})
	_, err := client.GetUserStats(context.Background(), 9, StatsQuery{
		TrendLength:          12,
		TaskDateRange:        30,
		TimeAllocationPeriod: "weekly",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"9"}, gotQuery["userId"])
	assert.Equal(t, []string{"12"}, gotQuery["trendLength"])
	assert.Equal(t, []string{"30"}, gotQuery["taskDateRange"])
	assert.Equal(t, []string{"weekly"}, gotQuery["timeAllocationPeriod"])
}
