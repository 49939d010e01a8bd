package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/criteria"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/notify"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

// Messages raised by the form controller
const (
	ClearedMsg             = "All criteria have been cleared"
	IngredientsLoadFailMsg = "Ingredients could not be loaded. Please try again later."
	DetailLoadFailMsg      = "Recipe details could not be loaded. Please try again."
)

// FormService drives the criteria form of one session at a time: it
// reconciles posts into the session's State, submits recommendations and
// raises notifications for every failure.
type FormService struct {
	store    SessionStore
	guard    SubmitGuard
	client   RecommendationClient
	catalog  *IngredientCatalog
	notifier *notify.Center
}

func NewFormService(store SessionStore, guard SubmitGuard, client RecommendationClient, catalog *IngredientCatalog, notifier *notify.Center) *FormService {
	return &FormService{
		store:    store,
		guard:    guard,
		client:   client,
		catalog:  catalog,
		notifier: notifier,
	}
}

// Page is what a full page render needs
type Page struct {
	Session           *Session
	Summary           criteria.Summary
	Toasts            []notify.Notification
	Ingredients       []criteria.Option
	IngredientFilter  string
	Submitting        bool
	IngredientsLoaded bool
}

// Session loads the session with id, starting a fresh one when none is stored
func (s *FormService) Session(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return NewSession(id), nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Page loads everything needed to render the form. Expired toasts are pruned
// and the ingredient catalog is loaded on first use.
func (s *FormService) Page(ctx context.Context, id, ingredientFilter string) (*Page, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}

	page := &Page{Session: sess, IngredientFilter: strings.TrimSpace(ingredientFilter)}
	names, err := s.catalog.Names(ctx)
	if err != nil {
		s.notifier.Notify(&sess.Notifications, IngredientsLoadFailMsg, notify.Error)
	} else {
		page.IngredientsLoaded = true
		page.Ingredients = criteria.IngredientOptions(names, page.IngredientFilter)
	}

	page.Toasts = s.notifier.Active(&sess.Notifications)
	page.Summary = sess.Criteria.Summary()
	page.Submitting = s.guard.Held(ctx, id)

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return page, nil
}

// UpdateCriteria reconciles a full form post into the session
func (s *FormService) UpdateCriteria(ctx context.Context, id string, form url.Values) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) {
		sess.Criteria.Apply(form)
	})
}

// RemoveCriterion deselects one summary tag
func (s *FormService) RemoveCriterion(ctx context.Context, id string, group criteria.Group, band criteria.SelectID, value string) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) {
		if !sess.Criteria.Remove(group, band, value) {
			logging.Ctx(ctx).Warn().Str("group", string(group)).Str("value", value).Msg("No select found for criterion")
		}
	})
}

// ClearCriteria resets the form and confirms with an info toast
func (s *FormService) ClearCriteria(ctx context.Context, id string) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) {
		sess.Criteria.ClearAll()
		s.notifier.Notify(&sess.Notifications, ClearedMsg, notify.Info)
	})
}

// Dismiss removes one toast
func (s *FormService) Dismiss(ctx context.Context, id, notificationID string) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) {
		s.notifier.Dismiss(&sess.Notifications, notificationID)
	})
}

// Recommend reconciles the posted form, validates it and asks the backend for
// recipes. Only one submission per session runs at a time. Every failure is
// stored as an error toast and also returned.
func (s *FormService) Recommend(ctx context.Context, id string, form url.Values) (*Session, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Criteria.Apply(form)
	req := sess.Criteria.Request()

	if err := criteria.Validate(req); err != nil {
		return sess, s.fail(ctx, sess, err, err.Error())
	}

	release, err := s.guard.Acquire(ctx, id)
	if err != nil {
		return sess, s.fail(ctx, sess, err, UserMessage(err, RecommendationsUnavailableMsg))
	}
	defer release()

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int("diet_types", len(req.DietTypes)).
		Int("meal_types", len(req.MealType)).
		Int("ingredients", len(req.Ingredients)).
		Int("top_k", req.TopK).
		Msg("Requesting recommendations")

	ids, recErr := s.client.Recommend(ctx, req)

	// the session may have changed while the backend was working
	sess, err = s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if recErr != nil {
		logging.Ctx(ctx).Error().Err(recErr).Msg("Error while retrieving recommendations")
		return sess, s.fail(ctx, sess, recErr, UserMessage(recErr, RecommendationsUnavailableMsg))
	}

	sess.Criteria.SetResults(ids)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// RecipeDetail fetches one recipe for the detail modal. On failure the error
// toast is stored on the session.
func (s *FormService) RecipeDetail(ctx context.Context, id string, recipeID types.RecipeID) (*types.RecipeDetail, *Session, error) {
	detail, err := s.client.GetRecipe(ctx, recipeID)
	if err == nil {
		return detail, nil, nil
	}

	logging.Ctx(ctx).Error().Err(err).Str("recipe_id", recipeID.String()).Msg("Error while loading recipe details")
	sess, loadErr := s.Session(ctx, id)
	if loadErr != nil {
		return nil, nil, loadErr
	}
	return nil, sess, s.fail(ctx, sess, err, DetailLoadFailMsg)
}

// Toasts returns the session's active toasts, pruning expired ones
func (s *FormService) Toasts(sess *Session) []notify.Notification {
	return s.notifier.Active(&sess.Notifications)
}

// Submitting reports whether the session has a recommendation in flight
func (s *FormService) Submitting(ctx context.Context, id string) bool {
	return s.guard.Held(ctx, id)
}

func (s *FormService) mutate(ctx context.Context, id string, fn func(*Session)) (*Session, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(sess)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// fail stores an error toast with message and returns cause. A failed save
// takes precedence over cause.
func (s *FormService) fail(ctx context.Context, sess *Session, cause error, message string) error {
	s.notifier.Notify(&sess.Notifications, message, notify.Error)
	if err := s.store.Save(ctx, sess); err != nil {
		return err
	}
	return cause
}
