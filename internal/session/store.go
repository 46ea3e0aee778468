package session

import (
	"context"
	"errors"

	"github.com/gridiron-labs/trivia-exam/internal/quiz"
)

// ErrResultNotFound indicates no result is stored for the session, either
// because none was saved or because it expired.
var ErrResultNotFound = errors.New("result not found")

// Store keeps at most one graded result per browsing session. Implementations
// must expire entries after the configured TTL and must never leak one
// session's result to another.
type Store interface {
	SaveResult(ctx context.Context, sessionID string, result quiz.Result) error
	GetResult(ctx context.Context, sessionID string) (quiz.Result, error)
	ClearResult(ctx context.Context, sessionID string) error
}
