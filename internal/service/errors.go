package service

import (
	"errors"
)

// Messages shown to the user when the backend fails
const (
	RecommendationsUnavailableMsg = "Recommendations could not be retrieved"
	IngredientsUnavailableMsg     = "Ingredients could not be retrieved"
	DetailUnavailableMsg          = "Recipe details could not be retrieved"
)

var (
	// ErrDetailUnavailable is returned for any failed recipe detail fetch
	ErrDetailUnavailable = errors.New(DetailUnavailableMsg)
	// ErrIngredientsUnavailable is returned for any failed ingredient list fetch
	ErrIngredientsUnavailable = errors.New(IngredientsUnavailableMsg)
	// ErrSubmissionInFlight rejects a second concurrent recommendation request
	ErrSubmissionInFlight = errors.New("A search is already in progress")
	// ErrSessionNotFound is returned by stores for unknown or expired sessions
	ErrSessionNotFound = errors.New("session not found")
)

// APIError is a non-2xx answer from the recommendation endpoint
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return RecommendationsUnavailableMsg
}

// UserMessage returns the text to show for err, falling back to fallback for
// errors that carry no user-facing message.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	for _, target := range []error{ErrDetailUnavailable, ErrIngredientsUnavailable, ErrSubmissionInFlight} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return fallback
}
