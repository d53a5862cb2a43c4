package session_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/session"
)

const (
	testEmail    = "admin@snc.example.com"
	testPassword = "password123"
)

// fakeAuthAPI is an in-memory session.AuthAPI.
type fakeAuthAPI struct {
	loginErr   error
	meErr      error
	logoutErr  error
	logoutHits int
	meHits     int
	user       backend.User
	pair       backend.TokenPair
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (backend.TokenPair, backend.User, error) {
	if f.loginErr != nil {
		return backend.TokenPair{}, backend.User{}, f.loginErr
	}
	if email != testEmail || password != testPassword {
		return backend.TokenPair{}, backend.User{}, fmt.Errorf("invalid credentials")
	}
	return f.pair, f.user, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutHits++
	return f.logoutErr
}

func (f *fakeAuthAPI) Me(ctx context.Context) (backend.User, error) {
	f.meHits++
	if f.meErr != nil {
		return backend.User{}, f.meErr
	}
	return f.user, nil
}

func (f *fakeAuthAPI) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	return nil
}

type storeFixture struct {
	storage *session.FileStorage
	api     *fakeAuthAPI
	store   *session.Store
}

func setupStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	storage := session.NewFileStorage(afero.NewMemMapFs(), "/data/session.json")
	api := &fakeAuthAPI{
		user: backend.User{ID: "u1", Name: "Admin", Email: testEmail, Role: backend.RoleAdmin},
		pair: backend.TokenPair{Token: "access-1", RefreshToken: "refresh-1"},
	}

	store, err := session.NewStore(storage)
	require.NoError(t, err)
	store.BindAPI(api)
	require.NoError(t, store.Initialize())

	return &storeFixture{storage: storage, api: api, store: store}
}

func TestStore_LoginPersistsSession(t *testing.T) {
	f := setupStoreFixture(t)

	user, err := f.store.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.True(t, f.store.IsAuthenticated())

	access, refresh := f.store.Tokens()
	require.Equal(t, "access-1", access)
	require.Equal(t, "refresh-1", refresh)

	v, ok, err := f.storage.Get(session.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "access-1", v)

	v, ok, err = f.storage.Get(session.KeyRefreshToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "refresh-1", v)
}

func TestStore_LoginFailureLeavesNoSession(t *testing.T) {
	f := setupStoreFixture(t)

	_, err := f.store.Login(context.Background(), testEmail, "wrong")
	require.Error(t, err)
	require.False(t, f.store.IsAuthenticated())

	_, ok, err := f.storage.Get(session.KeyToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_InitializeRehydratesFromStorage(t *testing.T) {
	f := setupStoreFixture(t)
	_, err := f.store.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	// A second store over the same storage models a restart.
	revived, err := session.NewStore(f.storage)
	require.NoError(t, err)
	revived.BindAPI(f.api)
	require.NoError(t, revived.Initialize())

	require.True(t, revived.IsAuthenticated())
	access, refresh := revived.Tokens()
	require.Equal(t, "access-1", access)
	require.Equal(t, "refresh-1", refresh)

	user := revived.User()
	require.NotNil(t, user)
	require.Equal(t, "u1", user.ID)
}

func TestStore_TokenPairIsAtomic(t *testing.T) {
	f := setupStoreFixture(t)

	require.NoError(t, f.store.SetTokens("access-2", ""))
	require.False(t, f.store.IsAuthenticated(), "half a pair is not a session")

	require.NoError(t, f.store.SetTokens("access-2", "refresh-2"))
	require.True(t, f.store.IsAuthenticated())

	require.NoError(t, f.store.SetTokens("", ""))
	require.False(t, f.store.IsAuthenticated())
}

func TestStore_ClearWipesStorage(t *testing.T) {
	f := setupStoreFixture(t)
	_, err := f.store.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, f.store.Clear())
	require.False(t, f.store.IsAuthenticated())
	require.Nil(t, f.store.User())

	for _, key := range []string{session.KeyToken, session.KeyRefreshToken, session.KeyAuthState} {
		_, ok, err := f.storage.Get(key)
		require.NoError(t, err)
		require.False(t, ok, "key %s must be gone", key)
	}
}

func TestStore_LogoutSwallowsBackendFailure(t *testing.T) {
	f := setupStoreFixture(t)
	_, err := f.store.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	f.api.logoutErr = fmt.Errorf("backend unreachable")
	require.NoError(t, f.store.Logout(context.Background()))
	require.False(t, f.store.IsAuthenticated())
	require.Equal(t, 1, f.api.logoutHits)
}

func TestStore_GetCurrentUser(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		f := setupStoreFixture(t)
		_, err := f.store.GetCurrentUser(context.Background())
		require.Error(t, err)
	})

	t.Run("cached user needs no backend call", func(t *testing.T) {
		f := setupStoreFixture(t)
		_, err := f.store.Login(context.Background(), testEmail, testPassword)
		require.NoError(t, err)

		user, err := f.store.GetCurrentUser(context.Background())
		require.NoError(t, err)
		require.Equal(t, "u1", user.ID)
		require.Equal(t, 0, f.api.meHits)
	})

	t.Run("tokens without user repopulate from the backend", func(t *testing.T) {
		f := setupStoreFixture(t)
		require.NoError(t, f.store.SetTokens("access-1", "refresh-1"))

		user, err := f.store.GetCurrentUser(context.Background())
		require.NoError(t, err)
		require.Equal(t, "u1", user.ID)
		require.Equal(t, 1, f.api.meHits)
	})

	t.Run("failed identity check clears the session", func(t *testing.T) {
		f := setupStoreFixture(t)
		require.NoError(t, f.store.SetTokens("access-1", "refresh-1"))
		f.api.meErr = fmt.Errorf("token revoked")

		_, err := f.store.GetCurrentUser(context.Background())
		require.Error(t, err)
		require.False(t, f.store.IsAuthenticated())
	})
}
