package session_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/session"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	storage := session.NewFileStorage(fs, "/data/localstorage.json")

	_, ok, err := storage.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, storage.Set("token", "abc"))
	require.NoError(t, storage.Set("refreshToken", "def"))

	v, ok, err := storage.Get("token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)

	require.NoError(t, storage.Delete("token"))
	_, ok, err = storage.Get("token")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, storage.Delete("token"))
}

func TestFileStorage_SurvivesReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	first := session.NewFileStorage(fs, "/data/localstorage.json")
	require.NoError(t, first.Set("token", "abc"))

	second := session.NewFileStorage(fs, "/data/localstorage.json")
	v, ok, err := second.Get("token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/localstorage.json", []byte("not json"), 0o600))

	storage := session.NewFileStorage(fs, "/data/localstorage.json")
	_, _, err := storage.Get("token")
	require.Error(t, err)
}
