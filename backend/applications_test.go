package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"
)

func testApplication() backend.ApplicationInput {
	return backend.ApplicationInput{
		Name:      "Priya Patil",
		Email:     "priya@example.com",
		Phone:     "9876543210",
		Programme: "B.Sc. Nursing",
		Message:   "Interested in the 2026 intake.",
	}
}

func TestSubmitApplication_BothChannelsSucceed(t *testing.T) {
	var backendHits, relayHits int64

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&backendHits, 1)
		writeEnvelope(w, http.StatusCreated, nil)
	}))
	defer api.Close()

	relayServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&relayHits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer relayServer.Close()

	c, err := backend.New(api.URL, nil)
	require.NoError(t, err)
	relay := backend.NewFormRelay(relayServer.URL, zerolog.Nop())

	require.NoError(t, c.SubmitApplication(context.Background(), testApplication(), relay))
	require.EqualValues(t, 1, atomic.LoadInt64(&backendHits))
	require.EqualValues(t, 1, atomic.LoadInt64(&relayHits))
}

func TestSubmitApplication_RelayDownStillSucceeds(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, nil)
	}))
	defer api.Close()

	c, err := backend.New(api.URL, nil)
	require.NoError(t, err)
	relay := backend.NewFormRelay("http://127.0.0.1:1", zerolog.Nop())

	require.NoError(t, c.SubmitApplication(context.Background(), testApplication(), relay))
}

func TestSubmitApplication_BackendDownRelayUpStillSucceeds(t *testing.T) {
	relayServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer relayServer.Close()

	c, err := backend.New("http://127.0.0.1:1", nil)
	require.NoError(t, err)
	relay := backend.NewFormRelay(relayServer.URL, zerolog.Nop())

	require.NoError(t, c.SubmitApplication(context.Background(), testApplication(), relay))
}

func TestSubmitApplication_BothChannelsDownFails(t *testing.T) {
	c, err := backend.New("http://127.0.0.1:1", nil)
	require.NoError(t, err)
	relay := backend.NewFormRelay("http://127.0.0.1:1", zerolog.Nop())

	err = c.SubmitApplication(context.Background(), testApplication(), relay)
	require.Error(t, err)
}

func TestSubmitApplication_Validation(t *testing.T) {
	c, err := backend.New("http://127.0.0.1:1", nil)
	require.NoError(t, err)

	t.Run("missing name", func(t *testing.T) {
		in := testApplication()
		in.Name = ""
		err := c.SubmitApplication(context.Background(), in, nil)
		require.Error(t, err)
		require.True(t, syserrors.Is(err, syserrors.ErrValidation))
	})

	t.Run("email alone is enough", func(t *testing.T) {
		in := testApplication()
		in.Phone = ""
		require.NoError(t, in.Validate())
	})

	t.Run("phone alone is enough", func(t *testing.T) {
		in := testApplication()
		in.Email = ""
		require.NoError(t, in.Validate())
	})

	t.Run("no contact details rejected", func(t *testing.T) {
		in := testApplication()
		in.Email = ""
		in.Phone = ""
		require.Error(t, in.Validate())
	})
}

func TestFormRelay_DisabledEndpointIsNoop(t *testing.T) {
	relay := backend.NewFormRelay("", zerolog.Nop())
	require.NoError(t, relay.Forward(context.Background(), map[string]string{"name": "x"}))
}

func TestFormRelay_RetriesServerErrors(t *testing.T) {
	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	relay := backend.NewFormRelay(ts.URL, zerolog.Nop())
	require.NoError(t, relay.Forward(context.Background(), map[string]string{"name": "x"}))
	require.EqualValues(t, 3, atomic.LoadInt64(&hits))
}

func TestFormRelay_ClientErrorIsFinal(t *testing.T) {
	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	relay := backend.NewFormRelay(ts.URL, zerolog.Nop())
	require.Error(t, relay.Forward(context.Background(), map[string]string{"name": "x"}))
	require.EqualValues(t, 1, atomic.LoadInt64(&hits), "4xx must not be retried")
}
