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

func TestGroceryService_Lifecycle(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	groceries := service.NewGroceryService(db)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com")
	other := testhelpers.CreateUser(t, db, "other@example.com")

	milk, err := groceries.Add(ctx, user.ID, types.GroceryItemRequest{Item: " Milk ", Quantity: "1 l"})
	require.NoError(t, err)
	assert.Equal(t, "Milk", milk.Item)

	batch, err := groceries.AddBatch(ctx, user.ID, []types.GroceryItemRequest{
		{Item: "Eggs", Quantity: "12"},
		{Item: "Bread"},
	})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	checked := true
	updated, err := groceries.Update(ctx, user.ID, milk.ID, types.UpdateGroceryItemRequest{Checked: &checked})
	require.NoError(t, err)
	assert.True(t, updated.Checked)
	assert.Equal(t, "1 l", updated.Quantity)

	items, err := groceries.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Milk", items[2].Item, "checked items sort last")

	_, err = groceries.Update(ctx, other.ID, milk.ID, types.UpdateGroceryItemRequest{Checked: &checked})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, groceries.Delete(ctx, other.ID, milk.ID), service.ErrNotFound)

	require.NoError(t, groceries.Delete(ctx, user.ID, milk.ID))
	assert.ErrorIs(t, groceries.Delete(ctx, user.ID, uuid.New()), service.ErrNotFound)

	removed, err := groceries.Clear(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	items, err = groceries.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGroceryService_BatchIsAllOrNothing(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	groceries := service.NewGroceryService(db)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com")

	_, err := groceries.AddBatch(ctx, user.ID, []types.GroceryItemRequest{{Item: "Eggs"}, {Item: "  "}})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = groceries.AddBatch(ctx, user.ID, nil)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&model.GroceryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}
