package statsclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/utils"
)

func TestMain(m *testing.M) {
	utils.Logger = zap.NewNop()
	utils.Sugar = utils.Logger.Sugar()
	os.Exit(m.Run())
}

func TestSaveHitPostsAsync(t *testing.T) {
	received := make(chan dto.EndpointHit, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/hit", r.URL.Path)

		var hit dto.EndpointHit
		require.NoError(t, json.NewDecoder(r.Body).Decode(&hit))
		received <- hit
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := New(srv.URL, "eventum-main")
	client.SaveHit("/events/7", "10.0.0.1")

	select {
	case hit := <-received:
		require.Equal(t, "eventum-main", hit.App)
		require.Equal(t, "/events/7", hit.URI)
		require.Equal(t, "10.0.0.1", hit.IP)
	case <-time.After(2 * time.Second):
		t.Fatal("hit was never delivered")
	}
}

func TestGetStatsParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stats", r.URL.Path)
		q := r.URL.Query()
		require.NotEmpty(t, q.Get("start"))
		require.NotEmpty(t, q.Get("end"))
		require.Equal(t, "/events/1,/events/2", q.Get("uris"))
		require.Equal(t, "true", q.Get("unique"))

		json.NewEncoder(w).Encode([]dto.ViewStats{
			{App: "eventum-main", URI: "/events/1", Hits: 5},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "eventum-main")
	stats := client.GetStats(time.Now().Add(-time.Hour), time.Now(),
		[]string{"/events/1", "/events/2"}, true)

	require.Len(t, stats, 1)
	require.Equal(t, int64(5), stats[0].Hits)
}

func TestGetStatsDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, "eventum-main")
	stats := client.GetStats(time.Now().Add(-time.Hour), time.Now(), nil, false)
	require.NotNil(t, stats)
	require.Empty(t, stats)
}

func TestGetStatsUnreachableServer(t *testing.T) {
	client := New("http://127.0.0.1:1", "eventum-main")
	stats := client.GetStats(time.Now().Add(-time.Hour), time.Now(), nil, false)
	require.Empty(t, stats)
}
