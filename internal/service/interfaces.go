package service

import (
	"context"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

// RecommendationClient talks to the recommendation API
type RecommendationClient interface {
	UniqueIngredients(ctx context.Context) ([]string, error)
	Recommend(ctx context.Context, req *types.RecommendationRequest) ([]types.RecipeID, error)
	GetRecipe(ctx context.Context, id types.RecipeID) (*types.RecipeDetail, error)
}

// SessionStore persists the per-browser session
type SessionStore interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// SubmitGuard allows one outstanding recommendation request per session.
// Acquire returns ErrSubmissionInFlight while another holder exists; the
// returned release func must be called on every exit path.
type SubmitGuard interface {
	Acquire(ctx context.Context, sessionID string) (release func(), err error)
	Held(ctx context.Context, sessionID string) bool
}
