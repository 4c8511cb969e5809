package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(n int) *int { return &n }

func text(s string) *string { return &s }

func TestReviewService_SubmitAndList(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	notifications := service.NewNotificationService(db)
	reviews := service.NewReviewService(db, notifications)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "owner@example.com")
	cook := testhelpers.CreateUser(t, db, "cook@example.com")
	recipe := testhelpers.CreateRecipe(t, db, owner.ID, "Lasagna", "pasta", "ricotta")

	review, created, err := reviews.Submit(ctx, cook.ID, recipe.ID, types.ReviewRequest{Rating: rating(4), Comment: text(" Great bake ")})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Great bake", review.Comment)

	edited, created, err := reviews.Submit(ctx, cook.ID, recipe.ID, types.ReviewRequest{Rating: rating(2)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, review.ID, edited.ID)
	assert.Equal(t, 2, edited.Rating)
	assert.Equal(t, "Great bake", edited.Comment, "a rating-only edit keeps the comment")

	edited, _, err = reviews.Submit(ctx, cook.ID, recipe.ID, types.ReviewRequest{Comment: text("Too salty")})
	require.NoError(t, err)
	assert.Equal(t, 2, edited.Rating)
	assert.Equal(t, "Too salty", edited.Comment)

	_, _, err = reviews.Submit(ctx, owner.ID, recipe.ID, types.ReviewRequest{Rating: rating(5)})
	require.NoError(t, err)

	summary, err := reviews.List(ctx, recipe.ID, cook.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 3.5, summary.AverageRating, 0.001)
	require.NotNil(t, summary.UserRating)
	assert.Equal(t, 2, *summary.UserRating)
	for _, r := range summary.Reviews {
		assert.NotEmpty(t, r.Username)
	}

	anonymous, err := reviews.List(ctx, recipe.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Nil(t, anonymous.UserRating)

	// only the first review by someone else notifies the owner
	unread, err := notifications.Unread(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Contains(t, unread[0].Message, "Lasagna")
	assert.Contains(t, unread[0].Message, "4/5")
}

func TestReviewService_SubmitValidation(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	reviews := service.NewReviewService(db, nil)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com")
	recipe := testhelpers.CreateRecipe(t, db, user.ID, "Soup", "water")

	tests := []struct {
		name     string
		recipeID uuid.UUID
		req      types.ReviewRequest
		want     error
	}{
		{"new review without rating", recipe.ID, types.ReviewRequest{Comment: text("nice")}, service.ErrInvalidInput},
		{"rating too low", recipe.ID, types.ReviewRequest{Rating: rating(0)}, service.ErrInvalidInput},
		{"rating too high", recipe.ID, types.ReviewRequest{Rating: rating(6)}, service.ErrInvalidInput},
		{"unknown recipe", uuid.New(), types.ReviewRequest{Rating: rating(3)}, service.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := reviews.Submit(ctx, user.ID, tt.recipeID, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, _, err := reviews.Submit(ctx, user.ID, recipe.ID, types.ReviewRequest{Rating: rating(3)})
	require.NoError(t, err)
	_, _, err = reviews.Submit(ctx, user.ID, recipe.ID, types.ReviewRequest{})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = reviews.List(ctx, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestReviewService_RecentAndDelete(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	reviews := service.NewReviewService(db, nil)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com")
	soup := testhelpers.CreateRecipe(t, db, user.ID, "Soup", "water")
	stew := testhelpers.CreateRecipe(t, db, user.ID, "Stew", "beef")

	first, _, err := reviews.Submit(ctx, user.ID, soup.ID, types.ReviewRequest{Rating: rating(5)})
	require.NoError(t, err)
	_, _, err = reviews.Submit(ctx, user.ID, stew.ID, types.ReviewRequest{Rating: rating(3)})
	require.NoError(t, err)

	// reviews of deleted recipes are hidden
	require.NoError(t, db.Delete(&model.Recipe{}, "id = ?", stew.ID).Error)

	recent, err := reviews.Recent(ctx, 20)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Soup", recent[0].RecipeName)
	assert.Equal(t, first.ID, recent[0].ID)

	require.NoError(t, reviews.Delete(ctx, first.ID))
	assert.ErrorIs(t, reviews.Delete(ctx, first.ID), service.ErrNotFound)
}
