package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

// maxErrorBody caps how much of a failed response is read
const maxErrorBody = 64 << 10

// RecommendationService is the HTTP client of the recommendation API.
// Every call is a single attempt bounded by the configured timeout.
type RecommendationService struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewRecommendationService creates a client for the API at baseURL
func NewRecommendationService(baseURL string, timeout time.Duration) *RecommendationService {
	return &RecommendationService{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  &http.Client{},
	}
}

// UniqueIngredients fetches every known ingredient name, most frequent first
func (s *RecommendationService) UniqueIngredients(ctx context.Context) ([]string, error) {
	resp, cancel, err := s.do(ctx, http.MethodGet, "/unique_ingredients", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngredientsUnavailable, err)
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logBackendFailure(ctx, resp, "/unique_ingredients")
		return nil, ErrIngredientsUnavailable
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrIngredientsUnavailable, err)
	}
	return names, nil
}

// Recommend posts the criteria and returns the ranked recipe IDs. A non-2xx
// answer becomes an *APIError carrying the backend's detail message if any.
func (s *RecommendationService) Recommend(ctx context.Context, req *types.RecommendationRequest) ([]types.RecipeID, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, cancel, err := s.do(ctx, http.MethodPost, "/recommend", body)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var ids []types.RecipeID
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return ids, nil
}

// GetRecipe fetches the full record of one recipe
func (s *RecommendationService) GetRecipe(ctx context.Context, id types.RecipeID) (*types.RecipeDetail, error) {
	path := "/recipe/" + url.PathEscape(id.String())
	resp, cancel, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailUnavailable, err)
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logBackendFailure(ctx, resp, path)
		return nil, ErrDetailUnavailable
	}

	var detail types.RecipeDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrDetailUnavailable, err)
	}
	return &detail, nil
}

// do sends one request under the per-request timeout. The returned cancel
// func must be called once the body has been consumed.
func (s *RecommendationService) do(ctx context.Context, method, path string, body []byte) (*http.Response, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, cancel, nil
}

// readDetail extracts a string "detail" from an error body. Bodies that are
// not JSON, or whose detail is not a string, yield "".
func readDetail(r io.Reader) string {
	var body types.ErrorBody
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&body); err != nil {
		return ""
	}
	return body.Message()
}

func logBackendFailure(ctx context.Context, resp *http.Response, path string) {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	logging.Ctx(ctx).Warn().
		Int("status", resp.StatusCode).
		Str("path", path).
		Str("body", string(b)).
		Msg("Backend request failed")
}
