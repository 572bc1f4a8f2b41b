package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/lifetracker/internal/client/auth"
	clientsync "github.com/iudanet/lifetracker/internal/client/sync"
	"github.com/iudanet/lifetracker/internal/models"
)

func TestSet_SignedOut_WritesLocally(t *testing.T) {
	tc := newTestCli(t, "")

	require.NoError(t, tc.run(t, "set", "shoppingState", `{"items":[{"name":"milk"}]}`))
	assert.Contains(t, tc.out.String(), "shoppingState saved locally")

	v, ok, err := tc.cli.slices.Read(context.Background(), "shoppingState")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"items": []any{map[string]any{"name": "milk"}}}, v)
	assert.Empty(t, tc.gate.FlushCalls())
}

func TestSet_RawValueJoinsArgs(t *testing.T) {
	tc := newTestCli(t, "")

	require.NoError(t, tc.run(t, "--offline", "set", "weightGoal", "180", "lb"))
	v, _, err := tc.cli.slices.Read(context.Background(), "weightGoal")
	require.NoError(t, err)
	assert.Equal(t, "180 lb", v)
	assert.Empty(t, tc.auth.StatusCalls(), "offline never touches the session")
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown key", args: []string{"set", "mood", "ok"}, wantErr: models.ErrUnknownSlice.Error()},
		{name: "invalid json", args: []string{"set", "todoState", "{items"}, wantErr: "todoState expects JSON"},
		{name: "scalar json for structured slice", args: []string{"set", "weights", "42"}, wantErr: "expects an object or array"},
		{name: "missing value", args: []string{"set", "theme"}, wantErr: "requires at least 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCli(t, "")
			err := tc.run(t, tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Empty(t, tc.gate.QueueWriteCalls())
		})
	}
}

func TestSet_SignedIn_EngagesBeforeWriting(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)

	var order []string
	tc.gate.OnSessionChangeFunc = func(ctx context.Context, session *clientsync.Session) error {
		order = append(order, "engage:"+session.UserID)
		return nil
	}
	queue := tc.gate.QueueWriteFunc
	tc.gate.QueueWriteFunc = func(ctx context.Context, key string, value any) error {
		order = append(order, "write:"+key)
		return queue(ctx, key, value)
	}
	tc.gate.FlushFunc = func(ctx context.Context) error {
		order = append(order, "flush")
		return nil
	}

	require.NoError(t, tc.run(t, "set", "theme", "dark"))
	assert.Equal(t, []string{"engage:user-1", "write:theme", "flush"}, order)
	assert.Equal(t, "correct horse battery", tc.auth.SessionCalls()[0].MasterPassword)
	assert.Contains(t, tc.out.String(), "theme saved and synchronized")
}

func TestSet_SignedIn_ServerUnavailable(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.gate.OnSessionChangeFunc = func(ctx context.Context, session *clientsync.Session) error {
		return errors.New("connection refused")
	}

	require.NoError(t, tc.run(t, "set", "theme", "dark"))
	assert.Contains(t, tc.out.String(), "Warning: sync unavailable")
	assert.Contains(t, tc.out.String(), "theme saved locally")
	assert.Len(t, tc.gate.QueueWriteCalls(), 1)
	assert.Empty(t, tc.gate.FlushCalls())
}

func TestSet_SignedIn_FlushFails(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.gate.FlushFunc = func(ctx context.Context) error {
		return errors.New("timeout")
	}

	require.NoError(t, tc.run(t, "set", "theme", "dark"))
	assert.Contains(t, tc.out.String(), "failed to push to server: timeout")
}

func TestSet_WrongPassword(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.auth.SessionFunc = func(ctx context.Context, masterPassword string) (*clientsync.Session, error) {
		return nil, auth.ErrWrongPassword
	}

	err := tc.run(t, "set", "theme", "dark")
	assert.ErrorIs(t, err, auth.ErrWrongPassword)
	assert.Empty(t, tc.gate.QueueWriteCalls())
}

func TestGet(t *testing.T) {
	tc := newTestCli(t, "")
	ctx := context.Background()
	require.NoError(t, tc.cli.slices.Write(ctx, "goalsState", map[string]any{"goals": []any{"run"}}))

	require.NoError(t, tc.run(t, "get", "goalsState"))
	assert.Equal(t, "{\n  \"goals\": [\n    \"run\"\n  ]\n}\n", tc.out.String())

	tc.out.Reset()
	require.NoError(t, tc.run(t, "get", "weights"))
	assert.Equal(t, "[]\n", tc.out.String(), "absent structured slice shows its default")

	tc.out.Reset()
	require.NoError(t, tc.run(t, "get", "theme"))
	assert.Equal(t, "(not set)\n", tc.out.String())

	assert.ErrorIs(t, tc.run(t, "get", "nope"), models.ErrUnknownSlice)
}

func TestSnapshot(t *testing.T) {
	tc := newTestCli(t, "")
	ctx := context.Background()
	require.NoError(t, tc.cli.slices.Write(ctx, "theme", "dark"))
	require.NoError(t, tc.cli.slices.Write(ctx, "weights", []any{float64(80)}))

	require.NoError(t, tc.run(t, "snapshot"))
	out := tc.out.String()
	assert.Contains(t, out, `"theme": "dark"`)
	assert.Contains(t, out, `"weights": [`)
	assert.NotContains(t, out, "habitsState", "absent slices are omitted")
}

func TestUnset(t *testing.T) {
	tc := newTestCli(t, "")
	ctx := context.Background()
	require.NoError(t, tc.cli.slices.Write(ctx, "theme", "dark"))

	require.NoError(t, tc.run(t, "unset", "theme"))
	_, ok, err := tc.cli.slices.Read(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, tc.out.String(), "comes back on the next sync")
}

func TestSync_NotSignedIn(t *testing.T) {
	tc := newTestCli(t, "")
	assert.ErrorContains(t, tc.run(t, "sync"), "not signed in")
}

func TestSync_ServerUnreachable(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.gate.OnSessionChangeFunc = func(ctx context.Context, session *clientsync.Session) error {
		return errors.New("failed to pull remote record: connection refused")
	}

	err := tc.run(t, "sync")
	assert.ErrorIs(t, err, errSyncUnavailable)
	assert.Contains(t, tc.out.String(), "Warning: sync unavailable: failed to pull remote record")
	assert.Empty(t, tc.gate.FlushCalls())
}

func TestSync_Offline(t *testing.T) {
	tc := newTestCli(t, "")
	assert.ErrorContains(t, tc.run(t, "--offline", "sync"), "requires the server")
}

func TestSync_Success(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	require.NoError(t, tc.bolt.SaveLastSyncTimestamp(context.Background(), time.Now().Unix()))

	require.NoError(t, tc.run(t, "sync"))
	assert.Len(t, tc.gate.OnSessionChangeCalls(), 1)
	assert.Len(t, tc.gate.FlushCalls(), 1)
	assert.Contains(t, tc.out.String(), "Synchronization completed")
	assert.Contains(t, tc.out.String(), "Last exchange with server:")
}

func TestSync_FlushError(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.gate.FlushFunc = func(ctx context.Context) error {
		return errors.New("forbidden")
	}
	assert.ErrorContains(t, tc.run(t, "sync"), "synchronization failed: forbidden")
}

func TestLogin(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.auth.LoginFunc = func(ctx context.Context, username, masterPassword string) (*clientsync.Session, error) {
		return &clientsync.Session{UserID: "user-1", AccessToken: "access"}, nil
	}

	require.NoError(t, tc.run(t, "login", "alice"))
	require.Len(t, tc.auth.LoginCalls(), 1)
	assert.Equal(t, "alice", tc.auth.LoginCalls()[0].Username)
	assert.Equal(t, "user-1", tc.gate.OnSessionChangeCalls()[0].Session.UserID)
	assert.Len(t, tc.gate.FlushCalls(), 1)
	assert.Contains(t, tc.out.String(), "Local state is synchronized")
}

func TestLogin_PromptsForUsername(t *testing.T) {
	tc := newTestCli(t, "alice\n")
	tc.signedIn(t)
	tc.auth.LoginFunc = func(ctx context.Context, username, masterPassword string) (*clientsync.Session, error) {
		return &clientsync.Session{UserID: "user-1"}, nil
	}

	require.NoError(t, tc.run(t, "login"))
	assert.Equal(t, "alice", tc.auth.LoginCalls()[0].Username)
	assert.Contains(t, tc.out.String(), "Username: ")
}

func TestLogin_InitialSyncFails(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.auth.LoginFunc = func(ctx context.Context, username, masterPassword string) (*clientsync.Session, error) {
		return &clientsync.Session{UserID: "user-1"}, nil
	}
	tc.gate.OnSessionChangeFunc = func(ctx context.Context, session *clientsync.Session) error {
		return errors.New("connection refused")
	}

	require.NoError(t, tc.run(t, "login", "alice"), "login succeeds, sync is retried later")
	assert.Contains(t, tc.out.String(), "Warning: initial sync failed")
}

func TestLogin_Error(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.auth.LoginFunc = func(ctx context.Context, username, masterPassword string) (*clientsync.Session, error) {
		return nil, errors.New("login failed: invalid credentials")
	}

	assert.ErrorContains(t, tc.run(t, "login", "alice"), "invalid credentials")
	assert.Empty(t, tc.gate.OnSessionChangeCalls())
}

func TestRegister_Prompt(t *testing.T) {
	tc := newTestCli(t, "alice\nlong password 1\nlong password 1\n")
	tc.auth.RegisterFunc = func(ctx context.Context, username, masterPassword string) (*clientsync.Session, error) {
		return &clientsync.Session{UserID: "user-1"}, nil
	}
	tc.gate.OnSessionChangeFunc = func(ctx context.Context, session *clientsync.Session) error {
		return nil
	}
	tc.gate.FlushFunc = func(ctx context.Context) error {
		return nil
	}

	require.NoError(t, tc.run(t, "register"))
	require.Len(t, tc.auth.RegisterCalls(), 1)
	assert.Equal(t, "alice", tc.auth.RegisterCalls()[0].Username)
	assert.Equal(t, "long password 1", tc.auth.RegisterCalls()[0].MasterPassword)
	assert.Contains(t, tc.out.String(), "Registration successful")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	tc := newTestCli(t, "alice\nlong password 1\nlong password 2\n")

	assert.ErrorContains(t, tc.run(t, "register"), "passwords do not match")
	assert.Empty(t, tc.auth.RegisterCalls())
}

func TestRegister_Offline(t *testing.T) {
	tc := newTestCli(t, "")
	assert.ErrorContains(t, tc.run(t, "--offline", "register", "alice"), "requires the server")
}

func TestLogout(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.auth.LogoutFunc = func(ctx context.Context, masterPassword string) error {
		return nil
	}

	require.NoError(t, tc.run(t, "logout"))
	require.Len(t, tc.gate.OnSessionChangeCalls(), 1)
	assert.Nil(t, tc.gate.OnSessionChangeCalls()[0].Session)
	assert.Equal(t, "correct horse battery", tc.auth.LogoutCalls()[0].MasterPassword)
}

func TestLogout_WithoutPasswordSource(t *testing.T) {
	tc := newTestCli(t, "")
	tc.auth.LogoutFunc = func(ctx context.Context, masterPassword string) error {
		return nil
	}

	require.NoError(t, tc.run(t, "logout"))
	assert.Equal(t, "", tc.auth.LogoutCalls()[0].MasterPassword)
	assert.NotContains(t, tc.out.String(), "Master password:", "no prompt")
}

func TestStatus_SignedIn(t *testing.T) {
	tc := newTestCli(t, "")
	ctx := context.Background()
	tc.auth.StatusFunc = func(ctx context.Context) (*auth.Status, error) {
		return &auth.Status{
			Username:  "alice",
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(-2 * time.Hour),
			Expired:   true,
		}, nil
	}
	require.NoError(t, tc.cli.slices.Write(ctx, "theme", "dark"))
	require.NoError(t, tc.bolt.SaveLastSyncTimestamp(ctx, time.Now().Add(-3*time.Minute).Unix()))

	require.NoError(t, tc.run(t, "status"))
	out := tc.out.String()
	assert.Contains(t, out, "signed in as alice")
	assert.Contains(t, out, "expired 2 hours ago")
	assert.Contains(t, out, "Last sync: 3 minutes ago")
	assert.Contains(t, out, "theme          4 B")
	assert.Contains(t, out, "weights        -")
	assert.Contains(t, out, "Total: 4 B")
}

func TestWatch(t *testing.T) {
	tc := newTestCli(t, "theme dark\n\n# comment\nbogus\nweights [80.5]\nmood happy\n")
	tc.signedIn(t)

	require.NoError(t, tc.run(t, "watch"))

	calls := tc.gate.QueueWriteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "theme", calls[0].Key)
	assert.Equal(t, "dark", calls[0].Value)
	assert.Equal(t, "weights", calls[1].Key)
	assert.Equal(t, []any{80.5}, calls[1].Value)

	out := tc.out.String()
	assert.Contains(t, out, "expected `<key> <value>`")
	assert.Contains(t, out, models.ErrUnknownSlice.Error())
	assert.Len(t, tc.gate.FlushCalls(), 1)
	assert.True(t, strings.HasSuffix(out, "✓ Pending writes pushed\n"))
}

func TestWatch_NotSignedIn(t *testing.T) {
	tc := newTestCli(t, "")
	assert.ErrorContains(t, tc.run(t, "watch"), "not signed in")
}

func TestWatch_ServerUnreachable(t *testing.T) {
	tc := newTestCli(t, "")
	tc.signedIn(t)
	tc.gate.OnSessionChangeFunc = func(ctx context.Context, session *clientsync.Session) error {
		return errors.New("failed to pull remote record: connection refused")
	}

	err := tc.run(t, "watch")
	assert.ErrorIs(t, err, errSyncUnavailable)
	assert.NotErrorIs(t, err, errNotSignedIn)
	assert.Contains(t, tc.out.String(), "connection refused")
	assert.Empty(t, tc.gate.QueueWriteCalls())
}
