package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.db"))
}

func TestCreateSession_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sessions, err := st.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, id, sessions[0].SessionID)
	require.True(t, sessions[0].CreatedAt.Equal(sessions[0].UpdatedAt),
		"created_at and updated_at must match on a fresh session")
}

func TestSaveMessage_CreatesSessionWhenAbsent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveMessage(ctx, "implicit-session", "user", "hello"))

	sessions, err := st.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "implicit-session", sessions[0].SessionID)
}

func TestSaveMessage_OrderPreserved(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.CreateSession(ctx)
	require.NoError(t, err)

	contents := []string{"one", "two", "three", "four", "five"}
	for i, c := range contents {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		require.NoError(t, st.SaveMessage(ctx, id, role, c))
	}

	got, err := st.GetHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, len(contents))
	for i, m := range got {
		require.Equal(t, contents[i], m.Content)
		require.False(t, m.Timestamp.IsZero())
	}
}

func TestSaveMessage_NoDeduplication(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, st.SaveMessage(ctx, id, "user", "same"))
	require.NoError(t, st.SaveMessage(ctx, id, "user", "same"))

	got, err := st.GetHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestSaveMessage_RefreshesUpdatedAt(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.CreateSession(ctx)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, st.SaveMessage(ctx, id, "user", "bump"))

	sessions, err := st.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.True(t, sessions[0].UpdatedAt.After(sessions[0].CreatedAt))
}

func TestGetAllSessions_MostRecentFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.CreateSession(ctx)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := st.CreateSession(ctx)
	require.NoError(t, err)

	sessions, err := st.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, second, sessions[0].SessionID)

	// Activity on the older session moves it back to the front.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, st.SaveMessage(ctx, first, "user", "hello again"))

	sessions, err = st.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, first, sessions[0].SessionID)
}

func TestGetHistory_UnknownSession_Empty(t *testing.T) {
	st := newTestStore(t)

	got, err := st.GetHistory(context.Background(), "never-created")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDeleteSession_RemovesSessionAndMessages(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id, err := st.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, st.SaveMessage(ctx, id, "user", "hello"))
	require.NoError(t, st.SaveMessage(ctx, id, "assistant", "hi"))

	require.True(t, st.DeleteSession(ctx, id))

	got, err := st.GetHistory(ctx, id)
	require.NoError(t, err)
	require.Empty(t, got)

	sessions, err := st.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestDeleteSession_Unknown_ReturnsTrue(t *testing.T) {
	st := newTestStore(t)

	require.True(t, st.DeleteSession(context.Background(), "never-created"))
}
