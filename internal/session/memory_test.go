package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/trivia-exam/internal/quiz"
)

func sampleResult(score int) quiz.Result {
	return quiz.Result{
		Score:          score,
		CorrectCount:   score / 10,
		TotalQuestions: 10,
		Percentage:     float64(score),
		Feedback:       "Keep studying! Review the answers below!",
		Details: []quiz.QuestionResult{
			{QuestionID: "q1", QuestionText: "text", UserAnswer: "A", CorrectAnswer: "B", IsCorrect: false},
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveResult(ctx, "session-1", sampleResult(70)))

	got, err := store.GetResult(ctx, "session-1")
	require.NoError(t, err)
	require.Equal(t, sampleResult(70), got)
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)

	_, err := store.GetResult(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrResultNotFound)
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveResult(ctx, "session-a", sampleResult(40)))
	require.NoError(t, store.SaveResult(ctx, "session-b", sampleResult(90)))

	a, err := store.GetResult(ctx, "session-a")
	require.NoError(t, err)
	b, err := store.GetResult(ctx, "session-b")
	require.NoError(t, err)

	require.Equal(t, 40, a.Score)
	require.Equal(t, 90, b.Score)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveResult(ctx, "session-1", sampleResult(50)))

	now = now.Add(29 * time.Minute)
	_, err := store.GetResult(ctx, "session-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.GetResult(ctx, "session-1")
	require.ErrorIs(t, err, ErrResultNotFound)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveResult(ctx, "session-1", sampleResult(60)))
	require.NoError(t, store.ClearResult(ctx, "session-1"))

	_, err := store.GetResult(ctx, "session-1")
	require.ErrorIs(t, err, ErrResultNotFound)

	// Clearing an absent result is not an error.
	require.NoError(t, store.ClearResult(ctx, "session-1"))
}
