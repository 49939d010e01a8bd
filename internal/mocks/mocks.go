package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSubmitGuard is a mock implementation of the submit guard
type MockSubmitGuard struct {
	mock.Mock
}

// Acquire mocks the Acquire method. A nil release func from the expectation
// is replaced by a no-op.
func (m *MockSubmitGuard) Acquire(ctx context.Context, sessionID string) (func(), error) {
	args := m.Called(ctx, sessionID)
	release, _ := args.Get(0).(func())
	if release == nil && args.Error(1) == nil {
		release = func() {}
	}
	return release, args.Error(1)
}

// Held mocks the Held method
func (m *MockSubmitGuard) Held(ctx context.Context, sessionID string) bool {
	args := m.Called(ctx, sessionID)
	return args.Bool(0)
}
