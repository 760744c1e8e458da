package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/config"
	"taskdash/internal/service"
	"taskdash/internal/store"
	"taskdash/internal/testutil"
)

func newSessionStore(t *testing.T) (*store.Session, *testutil.FakeService, *config.Config) {
	t.Helper()
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}
	return store.NewSession(svc, cfg), svc, cfg
}

func writeUserFile(t *testing.T, cfg *config.Config, payload string) {
	t.Helper()
	require.NoError(t, os.WriteFile(cfg.UserPath(), []byte(payload), 0o600))
}

func TestSessionLogin_Success(t *testing.T) {
	sess, _, cfg := newSessionStore(t)

	ok := sess.Login(context.Background(), service.Credentials{Email: "test@example.com", Password: "secret"})
	require.True(t, ok)

	state := sess.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "Test User", state.User.Name)
	assert.Empty(t, state.Err)
	assert.False(t, state.Loading)

	// The user round-trips through the persisted file.
	data, err := os.ReadFile(cfg.UserPath())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"Test User","email":"test@example.com"}`, string(data))
}

func TestSessionLogin_WrongPassword(t *testing.T) {
	sess, _, cfg := newSessionStore(t)

	ok := sess.Login(context.Background(), service.Credentials{Email: "test@example.com", Password: "nope"})
	require.False(t, ok)

	state := sess.State()
	assert.Nil(t, state.User)
	assert.Equal(t, "Invalid email or password.", state.Err)
	assert.False(t, cfg.HasUser())
}

func TestSessionLogin_BadResponseMessage(t *testing.T) {
	sess, svc, _ := newSessionStore(t)
	svc.LoginErr = service.ErrBadResponse

	ok := sess.Login(context.Background(), service.Credentials{Email: "test@example.com", Password: "secret"})
	require.False(t, ok)
	assert.Equal(t, "Invalid server response", sess.State().Err)
}

func TestSessionLogin_TransportErrorMessage(t *testing.T) {
	sess, svc, _ := newSessionStore(t)
	svc.LoginErr = errors.New("dial tcp: connection refused")

	ok := sess.Login(context.Background(), service.Credentials{Email: "test@example.com", Password: "secret"})
	require.False(t, ok)
	assert.Equal(t, "An error occurred during login", sess.State().Err)
}

func TestSessionLogin_ClearsPreviousError(t *testing.T) {
	sess, _, _ := newSessionStore(t)
	ctx := context.Background()

	sess.Login(ctx, service.Credentials{Email: "test@example.com", Password: "nope"})
	require.NotEmpty(t, sess.State().Err)

	ok := sess.Login(ctx, service.Credentials{Email: "test@example.com", Password: "secret"})
	require.True(t, ok)
	assert.Empty(t, sess.State().Err)
}

func TestSessionValidate_LiveSession(t *testing.T) {
	sess, svc, cfg := newSessionStore(t)
	svc.SetLive(true)

	require.True(t, sess.Validate(context.Background()))
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, cfg.HasUser())
}

func TestSessionValidate_ExpiredClearsUser(t *testing.T) {
	sess, _, cfg := newSessionStore(t)
	writeUserFile(t, cfg, `{"id":"1","name":"Test User","email":"test@example.com"}`)

	require.False(t, sess.Validate(context.Background()))
	assert.False(t, sess.IsAuthenticated())
	_, err := os.Stat(cfg.UserPath())
	assert.True(t, os.IsNotExist(err))
}

func TestSessionValidate_PartialUserIsInvalid(t *testing.T) {
	sess, svc, _ := newSessionStore(t)
	svc.SetUser(service.User{ID: "1", Name: "No Email"}, "secret")
	svc.SetLive(true)

	// A structurally incomplete user body counts as no session.
	require.False(t, sess.Validate(context.Background()))
	assert.False(t, sess.IsAuthenticated())
}

func TestSessionRestore_StagesStoredUser(t *testing.T) {
	sess, svc, cfg := newSessionStore(t)
	svc.SetLive(true)
	writeUserFile(t, cfg, `{"id":"1","name":"Test User","email":"test@example.com"}`)

	sub := sess.Subscribe()
	require.True(t, sess.Restore(context.Background()))

	select {
	case <-sub:
	default:
		t.Fatal("expected a subscriber notification during restore")
	}
	require.NotNil(t, sess.State().User)
}

func TestSessionRestore_GarbageFileRemoved(t *testing.T) {
	sess, _, cfg := newSessionStore(t)
	writeUserFile(t, cfg, `{not json`)

	require.False(t, sess.Restore(context.Background()))
	_, err := os.Stat(cfg.UserPath())
	assert.True(t, os.IsNotExist(err))
}

func TestSessionRestore_IncompleteStoredUserRemoved(t *testing.T) {
	sess, _, cfg := newSessionStore(t)
	writeUserFile(t, cfg, `{"id":"1","name":"","email":"test@example.com"}`)

	require.False(t, sess.Restore(context.Background()))
	_, err := os.Stat(cfg.UserPath())
	assert.True(t, os.IsNotExist(err))
}

func TestSessionRegister_Success(t *testing.T) {
	sess, _, _ := newSessionStore(t)

	res := sess.Register(context.Background(), service.Registration{
		Name: "New User", Email: "new@example.com", Password: "pw",
	})
	assert.True(t, res.OK)
	assert.Equal(t, "User registered successfully.", res.Message)
	// Registration does not log in.
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, sess.State().Err)
}

func TestSessionRegister_GeneralFailureMirrorsError(t *testing.T) {
	sess, _, _ := newSessionStore(t)

	res := sess.Register(context.Background(), service.Registration{
		Name: "New User", Email: "test@example.com", Password: "pw",
	})
	assert.False(t, res.OK)
	assert.Equal(t, "Email is already registered.", sess.State().Err)
}

func TestSessionRegister_FieldErrorsStayOutOfStoreError(t *testing.T) {
	sess, svc, _ := newSessionStore(t)
	svc.RegisterResult = &service.RegisterResult{
		Message:     "Validation failed",
		FieldErrors: map[string]string{"email": "Invalid email address."},
	}

	res := sess.Register(context.Background(), service.Registration{
		Name: "New User", Email: "bad", Password: "pw",
	})
	assert.False(t, res.OK)
	assert.Len(t, res.FieldErrors, 1)
	// Field-level errors belong to the form, not the banner.
	assert.Empty(t, sess.State().Err)
}

func TestSessionRegister_TransportError(t *testing.T) {
	sess, svc, _ := newSessionStore(t)
	svc.RegisterErr = errors.New("dial tcp: connection refused")

	res := sess.Register(context.Background(), service.Registration{
		Name: "New User", Email: "new@example.com", Password: "pw",
	})
	assert.False(t, res.OK)
	assert.Equal(t, "An error occurred during registration", res.Message)
	assert.Equal(t, "An error occurred during registration", sess.State().Err)
}

func TestSessionLogout_ClearsEverything(t *testing.T) {
	sess, svc, cfg := newSessionStore(t)
	ctx := context.Background()
	require.True(t, sess.Login(ctx, service.Credentials{Email: "test@example.com", Password: "secret"}))
	require.NoError(t, os.WriteFile(cfg.CookiePath(), []byte(`{}`), 0o600))

	sess.Logout(ctx)

	assert.False(t, sess.IsAuthenticated())
	assert.False(t, cfg.HasUser())
	_, err := os.Stat(cfg.CookiePath())
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, svc.Calls, "Logout")
}

func TestSessionLogout_ServerErrorStillClears(t *testing.T) {
	sess, svc, cfg := newSessionStore(t)
	ctx := context.Background()
	require.True(t, sess.Login(ctx, service.Credentials{Email: "test@example.com", Password: "secret"}))
	svc.LogoutErr = errors.New("boom")

	sess.Logout(ctx)

	assert.False(t, sess.IsAuthenticated())
	assert.False(t, cfg.HasUser())
}

func TestSessionSubscribe_NonBlocking(t *testing.T) {
	sess, _, _ := newSessionStore(t)
	// Never drained; transitions must still go through.
	_ = sess.Subscribe()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		sess.Login(ctx, service.Credentials{Email: "test@example.com", Password: "secret"})
		sess.Logout(ctx)
	}
	assert.False(t, sess.IsAuthenticated())
}

func TestSessionStatePersistedPath(t *testing.T) {
	_, _, cfg := newSessionStore(t)
	assert.Equal(t, filepath.Join(cfg.Dir, "user.json"), cfg.UserPath())
}
