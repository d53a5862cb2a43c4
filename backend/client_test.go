package backend_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"
)

// memCreds is an in-memory backend.Credentials for client tests.
type memCreds struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (m *memCreds) Tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

func (m *memCreds) SetTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
	return nil
}

func (m *memCreds) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.cleared = true
	return nil
}

func (m *memCreds) wasCleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]interface{}{"success": status < 300}
	if data != nil {
		payload["data"] = data
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, map[string]interface{}{"user": map[string]string{"id": "u1"}})
	}))
	defer ts.Close()

	creds := &memCreds{access: "t1", refresh: "r1"}
	c, err := backend.New(ts.URL, creds)
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer t1", gotAuth)
}

func TestClient_RefreshThenRetry(t *testing.T) {
	var refreshCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken != "r1" {
			writeEnvelope(w, http.StatusUnauthorized, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]string{"token": "t2", "refreshToken": "r2"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t2" {
			writeEnvelope(w, http.StatusUnauthorized, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{"user": map[string]string{"id": "u1", "email": "admin@example.com"}})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	creds := &memCreds{access: "t1", refresh: "r1"}
	c, err := backend.New(ts.URL, creds)
	require.NoError(t, err)

	t.Run("retried request carries the rotated token", func(t *testing.T) {
		user, err := c.Me(context.Background())
		require.NoError(t, err)
		require.Equal(t, "u1", user.ID)

		access, refresh := creds.Tokens()
		require.Equal(t, "t2", access)
		require.Equal(t, "r2", refresh)
		require.EqualValues(t, 1, atomic.LoadInt64(&refreshCalls))
	})
}

func TestClient_SingleRefreshAcrossConcurrent401s(t *testing.T) {
	var refreshCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		writeEnvelope(w, http.StatusOK, map[string]string{"token": "t2", "refreshToken": "r2"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t2" {
			writeEnvelope(w, http.StatusUnauthorized, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{"user": map[string]string{"id": "u1"}})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	creds := &memCreds{access: "t1", refresh: "r1"}
	c, err := backend.New(ts.URL, creds)
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Me(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "caller %d", i)
	}
	require.EqualValues(t, 1, atomic.LoadInt64(&refreshCalls),
		"concurrent 401s must share one refresh")
}

func TestClient_RefreshFailureEndsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "refresh token revoked"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	creds := &memCreds{access: "t1", refresh: "r1"}
	ended := false
	c, err := backend.New(ts.URL, creds, backend.WithSessionEndHandler(func() { ended = true }))
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.Error(t, err)
	require.True(t, syserrors.Is(err, syserrors.ErrUnauthorized))
	require.True(t, creds.wasCleared())
	require.True(t, ended)

	access, refresh := creds.Tokens()
	require.Empty(t, access)
	require.Empty(t, refresh)
}

func TestClient_LoginNeverTriggersRefresh(t *testing.T) {
	var refreshCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)
		writeEnvelope(w, http.StatusOK, map[string]string{"token": "t2", "refreshToken": "r2"})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid credentials"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	creds := &memCreds{access: "stale", refresh: "r0"}
	c, err := backend.New(ts.URL, creds)
	require.NoError(t, err)

	_, _, err = c.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	require.True(t, syserrors.Is(err, syserrors.ErrUnauthorized))
	require.EqualValues(t, 0, atomic.LoadInt64(&refreshCalls))

	var apiErr *backend.APIError
	require.True(t, syserrors.As(err, &apiErr))
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_NetworkFailure(t *testing.T) {
	c, err := backend.New("http://127.0.0.1:1", nil)
	require.NoError(t, err)

	_, err = c.ListProgrammes(context.Background(), "")
	require.Error(t, err)
	require.True(t, syserrors.Is(err, syserrors.ErrNetworkFailure))
}

func TestClient_DecodesEnvelopeFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"success": false, "message": "nothing here"}`)
	}))
	defer ts.Close()

	c, err := backend.New(ts.URL, nil)
	require.NoError(t, err)

	_, err = c.ListProgrammes(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nothing here")
}
