package mocks

import (
	"context"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecommendationClient is a mock implementation of the recommendation client
type MockRecommendationClient struct {
	mock.Mock
}

// UniqueIngredients mocks the UniqueIngredients method
func (m *MockRecommendationClient) UniqueIngredients(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Recommend mocks the Recommend method
func (m *MockRecommendationClient) Recommend(ctx context.Context, req *types.RecommendationRequest) ([]types.RecipeID, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeID), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecommendationClient) GetRecipe(ctx context.Context, id types.RecipeID) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}
