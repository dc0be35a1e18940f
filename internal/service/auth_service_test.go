package service_test

import (
	"context"
	"testing"
	"time"

	"taskgarden/internal/repository/inmemory"
	"taskgarden/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*service.AuthService, *inmemory.Store) {
	store := inmemory.NewStore()
	return service.NewAuthService(store, store, time.Hour), store
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := newAuthService()

		u, err := svc.Register(ctx, "mina", "mina@example.com", "secret123")
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.Equal(t, "mina", u.Username)
		// never the plaintext
		assert.NotEqual(t, "secret123", u.PasswordHash)
		assert.NotEmpty(t, u.PasswordHash)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _ := newAuthService()

		for _, args := range [][3]string{
			{"", "a@b.com", "pw"},
			{"mina", "", "pw"},
			{"mina", "a@b.com", ""},
		} {
			_, err := svc.Register(ctx, args[0], args[1], args[2])
			require.Error(t, err)
			var bizErr *service.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, service.CodeValidation, bizErr.Code)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, _ := newAuthService()

		_, err := svc.Register(ctx, "mina", "mina@example.com", "pw")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "mina", "other@example.com", "pw")
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.CodeConflict, bizErr.Code)
		assert.Equal(t, service.MsgUsernameTaken, bizErr.Message)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthService()

		_, err := svc.Register(ctx, "mina", "mina@example.com", "pw")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "other", "mina@example.com", "pw")
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.CodeConflict, bizErr.Code)
		assert.Equal(t, service.MsgEmailTaken, bizErr.Message)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := newAuthService()
		registered, err := svc.Register(ctx, "mina", "mina@example.com", "secret123")
		require.NoError(t, err)

		sess, u, err := svc.Login(ctx, "mina", "secret123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.Equal(t, registered.ID, sess.UserID)
		assert.NotEqual(t, uuid.Nil, sess.Token)
		assert.True(t, sess.ExpiresAt.After(time.Now()))
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newAuthService()
		_, err := svc.Register(ctx, "mina", "mina@example.com", "secret123")
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "mina", "wrong")
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.CodeUnauthorized, bizErr.Code)
		assert.Equal(t, service.MsgBadCredentials, bizErr.Message)
	})

	t.Run("unknown user gets the same answer as wrong password", func(t *testing.T) {
		svc, _ := newAuthService()

		_, _, err := svc.Login(ctx, "nobody", "whatever")
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.MsgBadCredentials, bizErr.Message)
	})

	t.Run("missing credentials", func(t *testing.T) {
		svc, _ := newAuthService()

		_, _, err := svc.Login(ctx, "", "")
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.CodeValidation, bizErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.Register(ctx, "mina", "mina@example.com", "secret123")
	require.NoError(t, err)
	sess, _, err := svc.Login(ctx, "mina", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.Token))

	// session is gone
	_, err = svc.Authenticate(ctx, sess.Token)
	assert.Error(t, err)

	// and logging out again is fine
	assert.NoError(t, svc.Logout(ctx, sess.Token))
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		svc, _ := newAuthService()
		registered, err := svc.Register(ctx, "mina", "mina@example.com", "secret123")
		require.NoError(t, err)
		sess, _, err := svc.Login(ctx, "mina", "secret123")
		require.NoError(t, err)

		u, err := svc.Authenticate(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _ := newAuthService()

		_, err := svc.Authenticate(ctx, uuid.New())
		require.Error(t, err)
		var bizErr *service.BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, service.CodeUnauthorized, bizErr.Code)
		assert.Equal(t, service.MsgLoginRequired, bizErr.Message)
	})

	t.Run("expired session is rejected and removed", func(t *testing.T) {
		store := inmemory.NewStore()
		svc := service.NewAuthService(store, store, -time.Minute)

		_, err := svc.Register(ctx, "mina", "mina@example.com", "secret123")
		require.NoError(t, err)
		sess, _, err := svc.Login(ctx, "mina", "secret123")
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, sess.Token)
		require.Error(t, err)

		// the stale session was dropped on first sight
		_, err = store.GetSession(ctx, sess.Token)
		assert.Error(t, err)
	})
}
