package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryand2626/recruitment-pipeline/internal/pipeline"
)

func TestCreateSessionReplacesExisting(t *testing.T) {
	sm := NewSessionManager()

	first, err := sm.CreateSession("client-1")
	require.NoError(t, err)

	second, err := sm.CreateSession("client-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	select {
	case <-first.Ctx.Done():
	default:
		t.Fatal("expected first session context to be cancelled")
	}

	got, ok := sm.GetSession("client-1")
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestGetSessionByID(t *testing.T) {
	sm := NewSessionManager()
	session, err := sm.CreateSession("client-1")
	require.NoError(t, err)

	got, ok := sm.GetSessionByID(session.ID)
	require.True(t, ok)
	assert.Equal(t, session, got)

	_, ok = sm.GetSessionByID("missing")
	assert.False(t, ok)
}

func TestRemoveSessionCancelsContext(t *testing.T) {
	sm := NewSessionManager()
	session, err := sm.CreateSession("client-1")
	require.NoError(t, err)

	sm.RemoveSession("client-1")

	select {
	case <-session.Ctx.Done():
	default:
		t.Fatal("expected context to be cancelled")
	}
	_, ok := sm.GetSession("client-1")
	assert.False(t, ok)

	// The run goroutine owns the progress channel, so it stays open for a
	// late writer even after the session is removed.
	session.Progress <- pipeline.ProgressUpdate{Type: "info", Message: "late"}
}

func TestRemoveBySessionID(t *testing.T) {
	sm := NewSessionManager()
	session, err := sm.CreateSession("client-1")
	require.NoError(t, err)

	sm.RemoveBySessionID(session.ID)

	_, ok := sm.GetSession("client-1")
	assert.False(t, ok)

	select {
	case <-session.Ctx.Done():
	default:
		t.Fatal("expected context to be cancelled")
	}
}

func TestCleanupStale(t *testing.T) {
	sm := NewSessionManager()
	stale, err := sm.CreateSession("old-client")
	require.NoError(t, err)
	stale.CreatedAt = time.Now().Add(-25 * time.Hour)

	fresh, err := sm.CreateSession("new-client")
	require.NoError(t, err)

	sm.CleanupStale(24 * time.Hour)

	_, ok := sm.GetSession("old-client")
	assert.False(t, ok)
	got, ok := sm.GetSession("new-client")
	require.True(t, ok)
	assert.Equal(t, fresh.ID, got.ID)
}

func TestSessionResult(t *testing.T) {
	sm := NewSessionManager()
	session, err := sm.CreateSession("client-1")
	require.NoError(t, err)

	_, done := session.Result()
	assert.False(t, done)

	session.setResult(pipeline.Result{RunID: "r-1", Status: pipeline.StatusSuccess})

	res, done := session.Result()
	require.True(t, done)
	assert.Equal(t, "r-1", res.RunID)
	assert.Equal(t, pipeline.StatusSuccess, res.Status)
}
