package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/api"
)

func apiBackedService(handler http.HandlerFunc) (*Service, *httptest.Server) {
	server := httptest.NewServer(handler)
	queue := api.NewQueue(
		api.WithHTTPClient(server.Client()),
		api.WithMinSpacing(0),
		api.WithMaxRequestsPerSecond(1000))
	client := api.NewClient(server.URL, api.WithQueue(queue))
	return NewService(WithClient(client)), server
}

func TestSessions_DedupedAndSortedNewestFirst(t *testing.T) {
	s, server := apiBackedService(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"session_key": 100, "session_name": "Practice 1", "date_start": "2024-03-01T11:30:00Z"},
			{"session_key": 102, "session_name": "Race", "date_start": "2024-03-02T15:00:00Z"},
			{"session_key": 100, "session_name": "Practice 1", "date_start": "2024-03-01T11:30:00Z"},
			{"session_key": 101, "session_name": "Qualifying", "date_start": "2024-03-01T16:00:00Z"}
		]`)
	})
	defer server.Close()

	got := s.Sessions(context.Background(), 2024)
	require.Len(t, got, 3)
	assert.Equal(t, 102, got[0].SessionKey)
	assert.Equal(t, 101, got[1].SessionKey)
	assert.Equal(t, 100, got[2].SessionKey)
}

func TestSessions_APIFailureYieldsEmpty(t *testing.T) {
	s, server := apiBackedService(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	got := s.Sessions(context.Background(), 2024)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSessionByKey(t *testing.T) {
	s, server := apiBackedService(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"session_key": 100, "session_name": "Practice 1", "date_start": "2024-03-01T11:30:00Z"},
			{"session_key": 102, "session_name": "Race", "date_start": "2024-03-02T15:00:00Z"}
		]`)
	})
	defer server.Close()

	got, found := s.SessionByKey(context.Background(), 2024, 102)
	require.True(t, found)
	assert.Equal(t, "Race", got.SessionName)

	_, found = s.SessionByKey(context.Background(), 2024, 999)
	assert.False(t, found)
}

func TestDrivers_FiltersInvalidEntries(t *testing.T) {
	s, server := apiBackedService(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"driver_number": 1, "full_name": "Max VERSTAPPEN", "name_acronym": "VER"},
			{"driver_number": 0, "full_name": "Ghost Entry"},
			{"driver_number": 44, "full_name": ""}
		]`)
	})
	defer server.Close()

	got := s.Drivers(context.Background(), 9472)
	require.Len(t, got, 1)
	assert.Equal(t, "VER", got[0].NameAcronym)
}
