package testhelpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// FakeBackend is an in-process stand-in for the recommendation API. Fields
// can be changed between requests; the zero value answers every endpoint
// with an empty 200.
type FakeBackend struct {
	*httptest.Server

	mu sync.Mutex
	// Ingredients is returned by GET /unique_ingredients
	Ingredients []string
	// RecommendBody is written verbatim by POST /recommend, with RecommendStatus
	RecommendBody   string
	RecommendStatus int
	// Recipes maps an id to the raw JSON of GET /recipe/{id}; unknown ids 404
	Recipes map[string]string
	// IngredientsStatus overrides the status of /unique_ingredients
	IngredientsStatus int
	// Block, when set, holds /recommend until it is closed
	Block chan struct{}

	// LastRequest is the decoded body of the latest /recommend call
	LastRequest map[string]any
	Calls       atomic.Int64
}

// NewFakeBackend starts a FakeBackend closed at test cleanup
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{Recipes: make(map[string]string)}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.handle))
	t.Cleanup(fb.Close)
	return fb
}

// Set updates fields under the backend's lock
func (fb *FakeBackend) Set(fn func(fb *FakeBackend)) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fn(fb)
}

// Last returns the body of the latest /recommend call
func (fb *FakeBackend) Last() map[string]any {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.LastRequest
}

func (fb *FakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	fb.Calls.Add(1)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/unique_ingredients":
		fb.mu.Lock()
		status, names := fb.IngredientsStatus, fb.Ingredients
		fb.mu.Unlock()
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"detail":"Error retrieving ingredients"}`)
			return
		}
		if names == nil {
			names = []string{}
		}
		_ = json.NewEncoder(w).Encode(names)

	case r.Method == http.MethodPost && r.URL.Path == "/recommend":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		fb.mu.Lock()
		fb.LastRequest = body
		status, payload, block := fb.RecommendStatus, fb.RecommendBody, fb.Block
		fb.mu.Unlock()

		if block != nil {
			select {
			case <-block:
			case <-r.Context().Done():
				return
			}
		}
		if status == 0 {
			status = http.StatusOK
		}
		if payload == "" {
			payload = "[]"
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/recipe/"):
		id := strings.TrimPrefix(r.URL.Path, "/recipe/")
		fb.mu.Lock()
		raw, ok := fb.Recipes[id]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Recipe with ID `+id+` not found"}`)
			return
		}
		_, _ = io.WriteString(w, raw)

	default:
		http.NotFound(w, r)
	}
}
