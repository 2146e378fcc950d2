package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fosdem/trigon/lib/config"
	"github.com/fosdem/trigon/lib/rendering/renderingtest"
	"github.com/fosdem/trigon/lib/rendering/shaders"
	"github.com/fosdem/trigon/lib/stats"
	"github.com/fosdem/trigon/lib/theatre"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApi(t *testing.T) (*Api, *theatre.Theatre) {
	t.Helper()
	rec := renderingtest.New()
	loader := shaders.NewLoader(shaders.Builtin, &shaders.ShaderData{GLSLVersion: "330 core"}, rec, rec)
	th, err := theatre.New(config.Default(), rec, loader)
	require.NoError(t, err)
	s := stats.New(len(th.Objects))
	return New(&config.ApiCfg{Bind: "127.0.0.1:0"}, th, s), th
}

func TestGetStats(t *testing.T) {
	a, _ := newApi(t)
	a.Stats.Update(2)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/api/stats", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var snap stats.Snapshot
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&snap))
	assert.Equal(t, uint64(1), snap.Frames)
	assert.Equal(t, uint64(2), snap.DrawCalls)
	assert.Equal(t, 2, snap.Objects)
}

func TestGetConfig(t *testing.T) {
	a, _ := newApi(t)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/api/config", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var cfg Config
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&cfg))
	assert.Equal(t, []string{"bottom", "top"}, cfg.Objects)
	assert.Equal(t, []string{"red", "yellow"}, cfg.Programs)
}

func TestGetObjects(t *testing.T) {
	a, _ := newApi(t)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/api/objects", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var objects []ObjectInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&objects))
	assert.Equal(t, []ObjectInfo{
		{Name: "bottom", VertexCount: 3, Mode: "triangles", Program: "red"},
		{Name: "top", VertexCount: 3, Mode: "triangles", Program: "yellow"},
	}, objects)
}

func TestKill(t *testing.T) {
	a, th := newApi(t)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/api/kill", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.False(t, th.ShutdownRequested())

	rr = httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest("POST", "/api/kill", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, th.ShutdownRequested())
}

func TestMetrics(t *testing.T) {
	a, _ := newApi(t)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "trigon_frames_rendered_total")
}

func TestWebsocket(t *testing.T) {
	a, th := newApi(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	var snap stats.Snapshot
	require.NoError(t, json.Unmarshal(msg, &snap))
	assert.Equal(t, 2, snap.Objects)

	th.RequestShutdown("test")
	_, msg, err = ws.ReadMessage()
	require.NoError(t, err)
	var ev theatre.EventShutdown
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "shutdown", ev.Event)
	assert.Equal(t, "test", ev.Reason)
}
