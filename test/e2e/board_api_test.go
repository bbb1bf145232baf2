package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/inkboard/internal/config"
	boarddto "github.com/dropDatabas3/inkboard/internal/http/dto/board"
	"github.com/dropDatabas3/inkboard/internal/http/server"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "e2e-test-secret")
	t.Setenv("BOARD_STREAM_INTERVAL", "20ms")

	cfg, err := config.Load("")
	require.NoError(t, err)

	handler, cleanup, err := server.Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, c *http.Client, url string, payload any) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := c.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func Test_BoardLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c := srv.Client()

	// Submit un stroke y un shape.
	resp := postJSON(t, c, srv.URL+"/api/board/submit", map[string]any{
		"userId": "alice",
		"drawing": map[string]any{
			"type": "draw", "x": 10, "y": 10, "prevX": 8, "prevY": 9,
			"strokeWidth": 2, "color": "#000000",
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, c, srv.URL+"/api/board/submit", map[string]any{
		"userId": "alice",
		"drawing": map[string]any{
			"type": "shape", "shapeType": "rectangle", "id": "sh1",
			"x": 100, "y": 100, "width": 60, "height": 60, "color": "#ff0000",
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Fetch de otro participante: ve ambos records y a los dos online.
	r, err := c.Get(srv.URL + "/api/board/fetch?userId=bob")
	require.NoError(t, err)
	state := decodeJSON[boarddto.FetchResponse](t, r)
	require.Len(t, state.Records, 2)
	require.ElementsMatch(t, []string{"alice", "bob"}, state.Online)

	// Move y verificación de convergencia.
	resp = postJSON(t, c, srv.URL+"/api/board/move", map[string]any{
		"shapeId": "sh1", "x": 200, "y": 220, "userId": "bob",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	r, err = c.Get(srv.URL + "/api/board/fetch")
	require.NoError(t, err)
	state = decodeJSON[boarddto.FetchResponse](t, r)
	var found bool
	for _, rec := range state.Records {
		if rec.ID == "sh1" {
			found = true
			require.Equal(t, 200.0, rec.X)
			require.Equal(t, 220.0, rec.Y)
		}
	}
	require.True(t, found, "moved shape must survive")

	// Delete idempotente.
	for i := 0; i < 2; i++ {
		resp = postJSON(t, c, srv.URL+"/api/board/delete", map[string]any{
			"shapeId": "sh1", "userId": "alice",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// Clear deja el canvas vacío pero mantiene presencia.
	resp = postJSON(t, c, srv.URL+"/api/board/clear", map[string]any{"userId": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	r, err = c.Get(srv.URL + "/api/board/fetch")
	require.NoError(t, err)
	state = decodeJSON[boarddto.FetchResponse](t, r)
	require.Empty(t, state.Records)
	require.NotEmpty(t, state.Online)
}

func Test_BoardValidation(t *testing.T) {
	srv := newTestServer(t)
	c := srv.Client()

	// JSON roto.
	resp, err := c.Post(srv.URL+"/api/board/submit", "application/json", strings.NewReader(`{"userId":`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeJSON[map[string]any](t, resp)
	require.Equal(t, "INVALID_JSON", body["code"])

	// Campos faltantes.
	resp = postJSON(t, c, srv.URL+"/api/board/move", map[string]any{"shapeId": "x", "userId": "u"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body = decodeJSON[map[string]any](t, resp)
	require.Equal(t, "MISSING_FIELDS", body["code"])

	// Método incorrecto.
	resp, err = c.Get(srv.URL + "/api/board/submit")
	require.NoError(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp.Body.Close()

	// Ruta inexistente.
	resp, err = c.Get(srv.URL + "/api/board/nope")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func Test_AuthSessionFlow(t *testing.T) {
	srv := newTestServer(t)
	c := srv.Client()

	// Register abre sesión con cookie.
	resp := postJSON(t, c, srv.URL+"/api/auth/register", map[string]any{
		"firstName": "Grace", "lastName": "Hopper",
		"email": "grace@example.com", "password": "s3cret-pass", "confirmPassword": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "auth-token" {
			cookie = ck
		}
	}
	resp.Body.Close()
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)

	// Me con cookie.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	r, err := c.Do(req)
	require.NoError(t, err)
	me := decodeJSON[map[string]any](t, r)
	require.Equal(t, true, me["authenticated"])

	// Me sin cookie: 200 authenticated=false.
	r, err = c.Get(srv.URL + "/api/auth/me")
	require.NoError(t, err)
	me = decodeJSON[map[string]any](t, r)
	require.Equal(t, false, me["authenticated"])

	// Login con credenciales incorrectas.
	resp = postJSON(t, c, srv.URL+"/api/auth/login", map[string]any{
		"email": "grace@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func Test_StreamPushesSnapshots(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/board/stream?userId=watcher"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Primer snapshot llega al conectar.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap boarddto.FetchResponse
	require.NoError(t, conn.ReadJSON(&snap))
	require.Empty(t, snap.Records)
	require.Contains(t, snap.Online, "watcher")

	// Un submit aparece en un tick posterior.
	resp := postJSON(t, srv.Client(), srv.URL+"/api/board/submit", map[string]any{
		"userId": "alice",
		"drawing": map[string]any{
			"type": "shape", "shapeType": "circle", "id": "c1", "x": 5, "y": 5,
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		require.NoError(t, conn.SetReadDeadline(deadline))
		require.NoError(t, conn.ReadJSON(&snap))
		if len(snap.Records) == 1 {
			break
		}
		require.True(t, time.Now().Before(deadline), "snapshot with record never arrived")
	}
	require.Equal(t, "c1", snap.Records[0].ID)
}

func Test_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	c := srv.Client()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		r, err := c.Get(srv.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, r.StatusCode, path)
		r.Body.Close()
	}
}
